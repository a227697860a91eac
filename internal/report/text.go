package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/naka-gawa/github-diversity/internal/domain"
	"github.com/naka-gawa/github-diversity/internal/render"
	"github.com/naka-gawa/github-diversity/internal/view"
)

// TextWriter outputs a plain terminal report.
type TextWriter struct {
	output io.Writer
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{output: output}
}

// Write outputs the panel as aligned text.
func (w *TextWriter) Write(el view.Elements) (int, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Repository: %s\n", el.RepoField)
	if !rendered(el) {
		sb.WriteString(statusLine(el) + "\n")
		return io.WriteString(w.output, sb.String())
	}

	if el.CommitsCaption.Visible {
		sb.WriteString(el.CommitsCaption.Text + "\n")
	}
	sb.WriteString("\n")

	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tRATIO\tCORE\tNON-CORE")
	for _, c := range domain.Categories {
		row := el.Rows[c]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", categoryTitle(c), row.Ratio, row.Core, row.NonCore)
	}
	if err := tw.Flush(); err != nil {
		return 0, err
	}
	if el.ContributorsCaption.Visible {
		sb.WriteString(el.ContributorsCaption.Text + "\n")
	}

	sb.WriteString("\nDiversity index\n")
	for _, f := range render.Families {
		fmt.Fprintf(&sb, "  %-9s %s\n", familyTitle(f)+":", strings.Join(comparison(el, f), " | "))
	}
	if el.AverageCaption.Visible {
		sb.WriteString(el.AverageCaption.Text + "\n")
	}

	return io.WriteString(w.output, sb.String())
}
