// Package report writes the final state of the metrics panel.
package report

import (
	"fmt"
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/naka-gawa/github-diversity/internal/config"
	"github.com/naka-gawa/github-diversity/internal/domain"
	"github.com/naka-gawa/github-diversity/internal/render"
	"github.com/naka-gawa/github-diversity/internal/view"
)

// Writer outputs the panel elements in a specific format.
type Writer interface {
	Write(el view.Elements) (int, error)
}

// NewWriter returns the writer for one of the config output formats.
func NewWriter(format string, w io.Writer) (Writer, error) {
	switch format {
	case config.OutputText:
		return NewTextWriter(w), nil
	case config.OutputMarkdown:
		return NewMarkdownWriter(w), nil
	case config.OutputJSON:
		return NewJSONWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownOutput, format)
	}
}

// A Caser keeps state between calls, so each title gets its own.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

func categoryTitle(c domain.Category) string {
	return title(string(c))
}

func familyTitle(f render.Family) string {
	return title(string(f))
}

// rendered reports whether the panel shows analysis results.
func rendered(el view.Elements) bool {
	return el.State == view.StateRenderedComparison || el.State == view.StateRenderedPlaceholder
}

// statusLine describes a panel that holds no results.
func statusLine(el view.Elements) string {
	if el.State == view.StateLoading {
		return "Analysis cancelled before a result arrived."
	}
	return "No analysis results."
}

// comparison returns the visible text of a comparison panel: the placeholder
// when it exists, otherwise the two slots.
func comparison(el view.Elements, f render.Family) []string {
	if text, ok := el.Placeholders[f]; ok && text != "" {
		return []string{text}
	}
	s := el.Slots[f]
	if s.Max == "" && s.Min == "" {
		return nil
	}
	return []string{s.Max, s.Min}
}
