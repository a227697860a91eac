package report

import (
	"encoding/json"
	"io"

	"github.com/naka-gawa/github-diversity/internal/view"
)

// JSONWriter outputs the panel as indented JSON.
type JSONWriter struct {
	output io.Writer
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{output: output}
}

type jsonReport struct {
	State string `json:"state"`
	view.Elements
}

// Write outputs the panel in JSON format.
func (w *JSONWriter) Write(el view.Elements) (int, error) {
	data, err := json.MarshalIndent(jsonReport{State: el.State.String(), Elements: el}, "", "  ")
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	return w.output.Write(data)
}
