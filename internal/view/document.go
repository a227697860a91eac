// Package view holds the in-memory metrics panel that the controller paints.
// It plays the part of the popup's DOM: a single tree, written only while the
// popup is alive.
package view

import (
	"maps"
	"slices"
	"sync"

	"github.com/naka-gawa/github-diversity/internal/domain"
	"github.com/naka-gawa/github-diversity/internal/render"
)

// State is the state of the metrics panel.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateRenderedComparison
	StateRenderedPlaceholder
)

// String returns a human-readable name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateRenderedComparison:
		return "rendered(comparison)"
	case StateRenderedPlaceholder:
		return "rendered(placeholder)"
	default:
		return "unknown"
	}
}

// Row is one category row of the results area.
type Row struct {
	Ratio   string `json:"ratio"`
	Core    string `json:"core"`
	NonCore string `json:"non_core"`
}

// Slots are the two positions of a comparison panel.
type Slots struct {
	Max string `json:"max"`
	Min string `json:"min"`
}

// Caption is a text line that stays hidden until populated.
type Caption struct {
	Text    string `json:"text"`
	Visible bool   `json:"visible"`
}

// Elements is the full content of the panel.
type Elements struct {
	RepoField        string `json:"repo"`
	CommitCountField string `json:"commit_count"`
	State            State  `json:"-"`
	// Busy is true while the trigger control is replaced by the busy indicator.
	Busy  bool                    `json:"busy"`
	Rows  map[domain.Category]Row `json:"rows"`
	Slots map[render.Family]Slots `json:"slots"`
	// Placeholders holds only the placeholder elements that still exist.
	Placeholders        map[render.Family]string `json:"placeholders"`
	CommitsCaption      Caption                  `json:"commits_caption"`
	ContributorsCaption Caption                  `json:"contributors_caption"`
	AverageCaption      Caption                  `json:"average_caption"`
	Alerts              []string                 `json:"alerts,omitempty"`
}

func newElements() Elements {
	e := Elements{
		Rows:         make(map[domain.Category]Row, len(domain.Categories)),
		Slots:        make(map[render.Family]Slots, len(render.Families)),
		Placeholders: make(map[render.Family]string, len(render.Families)),
	}
	for _, c := range domain.Categories {
		e.Rows[c] = Row{}
	}
	for _, f := range render.Families {
		e.Slots[f] = Slots{}
		e.Placeholders[f] = ""
	}
	return e
}

// BeginLoading swaps the trigger for the busy indicator.
func (e *Elements) BeginLoading() {
	e.State = StateLoading
	e.Busy = true
}

// Fail returns the panel to idle without touching the metrics.
func (e *Elements) Fail(msg string) {
	e.Alert(msg)
	e.State = StateIdle
	e.Busy = false
}

// Alert records a blocking user-visible notification.
func (e *Elements) Alert(msg string) {
	e.Alerts = append(e.Alerts, msg)
}

// SetPlaceholder creates or updates a placeholder element.
func (e *Elements) SetPlaceholder(f render.Family, text string) {
	e.Placeholders[f] = text
}

// RemovePlaceholder removes a placeholder element. Removing an absent one is a no-op.
func (e *Elements) RemovePlaceholder(f render.Family) {
	delete(e.Placeholders, f)
}

// HasPlaceholder reports whether the placeholder element for f exists.
func (e *Elements) HasPlaceholder(f render.Family) bool {
	_, ok := e.Placeholders[f]
	return ok
}

func (e Elements) clone() Elements {
	e.Rows = maps.Clone(e.Rows)
	e.Slots = maps.Clone(e.Slots)
	e.Placeholders = maps.Clone(e.Placeholders)
	e.Alerts = slices.Clone(e.Alerts)
	return e
}

// Option configures a Document.
type Option func(*Document)

// WithAlertHandler registers a function that receives every alert as it is raised.
func WithAlertHandler(fn func(msg string)) Option {
	return func(d *Document) {
		d.onAlert = fn
	}
}

// Document guards the panel elements. Writes are serialized and become no-ops
// once the popup is torn down.
type Document struct {
	mu       sync.Mutex
	el       Elements
	tornDown bool
	onAlert  func(msg string)
}

// NewDocument creates an idle panel with both placeholders present and captions hidden.
func NewDocument(opts ...Option) *Document {
	d := &Document{el: newElements()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Update applies fn to the elements atomically. It reports false, without
// calling fn, when the document has been torn down.
func (d *Document) Update(fn func(e *Elements)) bool {
	d.mu.Lock()
	if d.tornDown {
		d.mu.Unlock()
		return false
	}
	before := len(d.el.Alerts)
	fn(&d.el)
	raised := slices.Clone(d.el.Alerts[before:])
	d.mu.Unlock()

	if d.onAlert != nil {
		for _, msg := range raised {
			d.onAlert(msg)
		}
	}
	return true
}

// TearDown freezes the document. It is safe to call more than once.
func (d *Document) TearDown() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tornDown = true
}

// TornDown reports whether the document is frozen.
func (d *Document) TornDown() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tornDown
}

// Snapshot returns a copy of the current elements.
func (d *Document) Snapshot() Elements {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.el.clone()
}
