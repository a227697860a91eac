package usecase

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/naka-gawa/github-diversity/internal/domain"
	"github.com/naka-gawa/github-diversity/internal/gateway"
	"github.com/naka-gawa/github-diversity/internal/render"
	"github.com/naka-gawa/github-diversity/internal/validator"
	"github.com/naka-gawa/github-diversity/internal/view"
)

// ErrBusy is returned when a submission is attempted while one is in flight.
var ErrBusy = errors.New("an analysis is already in progress")

// githubRepoURL matches the owner/repo pair at the start of a GitHub URL.
var githubRepoURL = regexp.MustCompile(`^https://github\.com/([^/?#]+)/([^/?#]+)(?:[/?#]|$)`)

// MatchRepository extracts "owner/repo" from a GitHub URL. Anything after the
// first two path segments is ignored.
func MatchRepository(rawURL string) (string, bool) {
	m := githubRepoURL.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1] + "/" + m[2], true
}

// PopupOption configures a Popup.
type PopupOption func(*Popup)

// WithClock overrides the clock used for the commit-range caption.
func WithClock(now func() time.Time) PopupOption {
	return func(p *Popup) {
		p.now = now
	}
}

// Popup is the request controller for one popup lifetime. It owns the single
// cancellation token and the one request that may be in flight.
type Popup struct {
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	analyzer gateway.Analyzer
	doc      *view.Document
	logger   *slog.Logger
	now      func() time.Time
}

// NewPopup creates the controller and its cancellation token. parent ending
// tears the popup down just like Close.
func NewPopup(parent context.Context, analyzer gateway.Analyzer, doc *view.Document, logger *slog.Logger, opts ...PopupOption) *Popup {
	ctx, cancel := context.WithCancel(parent)
	p := &Popup{
		ctx:      ctx,
		cancel:   cancel,
		analyzer: analyzer,
		doc:      doc,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	context.AfterFunc(ctx, p.Close)
	return p
}

// Done is closed once the popup has been torn down.
func (p *Popup) Done() <-chan struct{} {
	return p.ctx.Done()
}

// Close ends the popup lifetime. The document is frozen before the token
// fires, so no settlement can repaint it afterwards.
func (p *Popup) Close() {
	p.closeOnce.Do(func() {
		p.doc.TearDown()
		p.cancel()
		p.logger.Debug("popup closed")
	})
}

// Prefill queries the current tab once and fills the repository field when the
// tab shows a GitHub repository. The resolver is optional.
func (p *Popup) Prefill(tabs gateway.TabQuerier, resolver gateway.Resolver) (string, bool) {
	rawURL, err := tabs.CurrentURL(p.ctx)
	if err != nil {
		p.logger.Debug("current tab unavailable", "error", err)
		return "", false
	}
	repo, ok := MatchRepository(rawURL)
	if !ok {
		p.logger.Debug("current tab is not a GitHub repository", "url", rawURL)
		return "", false
	}

	if resolver != nil {
		owner, name, _ := strings.Cut(repo, "/")
		canonical, err := resolver.ResolveRepository(p.ctx, owner, name)
		if err != nil {
			p.logger.Warn("could not resolve repository, keeping the tab value", "repo", repo, "error", err)
		} else {
			repo = canonical
		}
	}

	if !p.doc.Update(func(e *view.Elements) { e.RepoField = repo }) {
		return "", false
	}
	return repo, true
}

// Trigger is the UI trigger site: it validates the raw fields and, only when
// they pass, submits the request.
func (p *Popup) Trigger(repoRaw, commitCountRaw string) error {
	p.doc.Update(func(e *view.Elements) {
		e.RepoField = repoRaw
		e.CommitCountField = commitCountRaw
	})

	req, err := validator.NewRequest(repoRaw, commitCountRaw)
	if err != nil {
		p.doc.Update(func(e *view.Elements) { e.Alert(err.Error()) })
		return err
	}
	return p.Submit(req)
}

// Submit performs one analysis and paints the result. A cancelled request
// settles silently and returns nil. Any other failure is alerted, the panel
// goes back to idle and the error is returned.
func (p *Popup) Submit(req domain.AnalysisRequest) error {
	busy := false
	alive := p.doc.Update(func(e *view.Elements) {
		if e.State == view.StateLoading {
			busy = true
			return
		}
		e.BeginLoading()
	})
	if !alive {
		return nil
	}
	if busy {
		return ErrBusy
	}

	proj, err := p.fetch(req)
	if err != nil {
		if errors.Is(err, domain.ErrCancelled) || p.ctx.Err() != nil {
			// The token only fires on teardown; make sure the panel is frozen
			// before returning, even if the AfterFunc has not run yet.
			p.Close()
			p.logger.Debug("popup closed during request", "repo", req.Repo)
			return nil
		}
		// The alert already reaches the user.
		p.logger.Debug("analysis failed", "repo", req.Repo, "error", err)
		p.doc.Update(func(e *view.Elements) { e.Fail("Error: " + err.Error()) })
		return err
	}

	if !p.doc.Update(func(e *view.Elements) { p.paint(e, proj) }) {
		p.logger.Debug("popup closed before render", "repo", req.Repo)
	}
	return nil
}

func (p *Popup) fetch(req domain.AnalysisRequest) (*Projection, error) {
	payload, err := p.analyzer.Analyze(p.ctx, req)
	if err != nil {
		return nil, err
	}
	return Project(payload)
}

// paint writes a projection into the panel and restores the trigger control.
func (p *Popup) paint(e *view.Elements, proj *Projection) {
	e.CommitsCaption = view.Caption{
		Text:    render.CommitRange(proj.Totals.SampleSize, proj.Totals.EarliestDate, p.now()),
		Visible: true,
	}
	e.ContributorsCaption = view.Caption{
		Text:    render.Contributors(proj.Totals.Contributors, proj.Result.Core.Total(), proj.Result.NonCore.Total()),
		Visible: true,
	}

	for _, row := range proj.PerCategory {
		e.Rows[row.Category] = view.Row{
			Ratio:   render.Percent(row.SegmentRatioPercent),
			Core:    strconv.Itoa(row.CoreCount),
			NonCore: strconv.Itoa(row.NonCoreCount),
		}
	}

	panels := render.Diversity(proj.Diversity)
	for _, panel := range []render.Panel{panels.Core, panels.NonCore} {
		if panel.Outcome == nil {
			e.Slots[panel.Family] = view.Slots{}
			e.SetPlaceholder(panel.Family, panel.Placeholder)
			continue
		}
		e.RemovePlaceholder(panel.Family)
		e.Slots[panel.Family] = view.Slots{
			Max: panel.Outcome.GreaterLabel,
			Min: panel.Outcome.LesserLabel,
		}
	}
	e.AverageCaption = view.Caption{Text: panels.Caption, Visible: true}

	if panels.HasComparison() {
		e.State = view.StateRenderedComparison
	} else {
		e.State = view.StateRenderedPlaceholder
	}
	e.Busy = false
}
