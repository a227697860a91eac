package report

import (
	"io"

	"github.com/nao1215/markdown"

	"github.com/naka-gawa/github-diversity/internal/domain"
	"github.com/naka-gawa/github-diversity/internal/render"
	"github.com/naka-gawa/github-diversity/internal/view"
)

// MarkdownWriter outputs the panel as GitHub Flavored Markdown.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write outputs the panel in Markdown format.
func (w *MarkdownWriter) Write(el view.Elements) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Diversity analysis: " + el.RepoField)
	md.PlainText("")

	if !rendered(el) {
		md.Note(statusLine(el))
		md.PlainText("")
		return len(md.String()), md.Build()
	}

	if el.CommitsCaption.Visible {
		md.PlainText(el.CommitsCaption.Text)
		md.PlainText("")
	}

	rows := make([][]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		row := el.Rows[c]
		rows = append(rows, []string{categoryTitle(c), row.Ratio, row.Core, row.NonCore})
	}
	md.H2("Contributors")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Category", "Ratio", "Core", "Non-core"},
		Rows:   rows,
	})
	md.PlainText("")
	if el.ContributorsCaption.Visible {
		md.PlainText(el.ContributorsCaption.Text)
		md.PlainText("")
	}

	md.H2("Diversity index")
	md.PlainText("")
	if el.State == view.StateRenderedComparison {
		comparisonRows := make([][]string, 0, len(render.Families))
		for _, f := range render.Families {
			s := el.Slots[f]
			comparisonRows = append(comparisonRows, []string{familyTitle(f), s.Max, s.Min})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Segment", "Higher", "Lower"},
			Rows:   comparisonRows,
		})
	} else {
		items := make([]string, 0, len(render.Families))
		for _, f := range render.Families {
			items = append(items, familyTitle(f)+": "+el.Placeholders[f])
		}
		md.BulletList(items...)
	}
	md.PlainText("")

	if el.AverageCaption.Visible {
		md.PlainText(el.AverageCaption.Text)
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}
