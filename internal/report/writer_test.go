package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/naka-gawa/github-diversity/internal/config"
	"github.com/naka-gawa/github-diversity/internal/domain"
	"github.com/naka-gawa/github-diversity/internal/render"
	"github.com/naka-gawa/github-diversity/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comparisonElements() view.Elements {
	doc := view.NewDocument()
	doc.Update(func(e *view.Elements) {
		e.RepoField = "octo/cat"
		e.State = view.StateRenderedComparison
		e.Rows[domain.Female] = view.Row{Ratio: "20%", Core: "1", NonCore: "1"}
		e.Rows[domain.Male] = view.Row{Ratio: "50%", Core: "3", NonCore: "2"}
		e.Rows[domain.Nonbinary] = view.Row{Ratio: "10%", Core: "0", NonCore: "1"}
		e.Rows[domain.Unknown] = view.Row{Ratio: "20%", Core: "1", NonCore: "1"}
		e.RemovePlaceholder(render.FamilyCore)
		e.RemovePlaceholder(render.FamilyNonCore)
		e.Slots[render.FamilyCore] = view.Slots{Max: "average - 0.5", Min: "current - 0.5"}
		e.Slots[render.FamilyNonCore] = view.Slots{Max: "0.75 - current", Min: "0.3 - average"}
		e.CommitsCaption = view.Caption{Text: "*Analyzed 250 commits (2023-04-01 <-> 2024-01-15)", Visible: true}
		e.ContributorsCaption = view.Caption{Text: "*10 contributors (5 core, 5 non-core)", Visible: true}
		e.AverageCaption = view.Caption{Text: "*Average based on 4 other repo(s) analyzed up to date", Visible: true}
	})
	return doc.Snapshot()
}

func placeholderElements() view.Elements {
	doc := view.NewDocument()
	doc.Update(func(e *view.Elements) {
		e.RepoField = "octo/cat"
		e.State = view.StateRenderedPlaceholder
		e.SetPlaceholder(render.FamilyCore, "current - 0.5")
		e.SetPlaceholder(render.FamilyNonCore, "0.75 - current")
		e.AverageCaption = view.Caption{Text: render.NoComparisonCaption, Visible: true}
	})
	return doc.Snapshot()
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	for format, expected := range map[string]Writer{
		config.OutputText:     &TextWriter{},
		config.OutputMarkdown: &MarkdownWriter{},
		config.OutputJSON:     &JSONWriter{},
	} {
		w, err := NewWriter(format, &buf)
		require.NoError(t, err)
		assert.IsType(t, expected, w)
	}

	_, err := NewWriter("html", &buf)
	assert.ErrorIs(t, err, config.ErrUnknownOutput)
}

func TestTextWriter(t *testing.T) {
	t.Run("comparison", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := NewTextWriter(&buf).Write(comparisonElements())
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "Repository: octo/cat")
		assert.Contains(t, out, "*Analyzed 250 commits")
		assert.Contains(t, out, "*10 contributors (5 core, 5 non-core)")
		assert.Contains(t, out, "Nonbinary")
		assert.Contains(t, out, "average - 0.5 | current - 0.5")
		assert.Contains(t, out, "0.75 - current | 0.3 - average")
		assert.Contains(t, out, "based on 4 other repo(s)")
		assert.Less(t, bytes.Index(buf.Bytes(), []byte("Female")), bytes.Index(buf.Bytes(), []byte("Unknown")))
	})

	t.Run("placeholder", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := NewTextWriter(&buf).Write(placeholderElements())
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "current - 0.5")
		assert.Contains(t, buf.String(), render.NoComparisonCaption)
		assert.NotContains(t, buf.String(), "average")
	})

	t.Run("cancelled", func(t *testing.T) {
		el := view.NewDocument().Snapshot()
		el.State = view.StateLoading
		var buf bytes.Buffer
		_, err := NewTextWriter(&buf).Write(el)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "cancelled")
	})
}

func TestMarkdownWriter(t *testing.T) {
	var buf bytes.Buffer
	n, err := NewMarkdownWriter(&buf).Write(comparisonElements())
	require.NoError(t, err)
	assert.Positive(t, n)

	out := buf.String()
	assert.Contains(t, out, "# Diversity analysis: octo/cat")
	assert.Contains(t, out, "Non-core")
	assert.Contains(t, out, "average - 0.5")
	assert.Contains(t, out, "0.3 - average")
	assert.Contains(t, out, "*10 contributors (5 core, 5 non-core)")

	buf.Reset()
	_, err = NewMarkdownWriter(&buf).Write(placeholderElements())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "current - 0.5")
	assert.Contains(t, buf.String(), "0.75 - current")
	assert.Contains(t, buf.String(), render.NoComparisonCaption)

	buf.Reset()
	_, err = NewMarkdownWriter(&buf).Write(view.NewDocument().Snapshot())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No analysis results.")
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewJSONWriter(&buf).Write(comparisonElements())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "rendered(comparison)", decoded["state"])
	assert.Equal(t, "octo/cat", decoded["repo"])
	slots := decoded["slots"].(map[string]any)
	assert.Equal(t, "average - 0.5", slots["core"].(map[string]any)["max"])
	assert.Empty(t, decoded["placeholders"])
	contributors := decoded["contributors_caption"].(map[string]any)
	assert.Equal(t, "*10 contributors (5 core, 5 non-core)", contributors["text"])
	assert.Equal(t, true, contributors["visible"])
}
