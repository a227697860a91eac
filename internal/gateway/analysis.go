// Package gateway provides the outbound collaborators of the popup: the
// analysis service, the current-tab provider and the GitHub API.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/naka-gawa/github-diversity/internal/domain"
)

// RepoStatsPath is the analysis endpoint path.
const RepoStatsPath = "/repo-stats"

// Analyzer defines the behavior of a transport to the analysis service.
type Analyzer interface {
	Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.Payload, error)
}

// AnalysisGateway is the resty-backed implementation of Analyzer.
type AnalysisGateway struct {
	client *resty.Client
	logger *slog.Logger
}

// repoStatsBody is the request body. The backend expects the count as a string.
type repoStatsBody struct {
	Repo  string `json:"repo"`
	Count string `json:"count"`
}

// NewAnalysisGateway creates a gateway for the analysis service at endpoint.
// Requests are never retried.
func NewAnalysisGateway(endpoint string, timeout time.Duration, logger *slog.Logger) *AnalysisGateway {
	client := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &AnalysisGateway{
		client: client,
		logger: logger,
	}
}

// Analyze posts the request and decodes the response body.
// Cancellation of ctx yields domain.ErrCancelled.
func (g *AnalysisGateway) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.Payload, error) {
	g.logger.Debug("requesting analysis", "repo", req.Repo, "count", req.CommitCount)

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(repoStatsBody{Repo: req.Repo, Count: strconv.Itoa(req.CommitCount)}).
		Post(RepoStatsPath)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: %w", domain.ErrCancelled, err)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: analysis service returned %s", domain.ErrNetwork, resp.Status())
	}

	g.logger.Debug("analysis received", "status", resp.StatusCode(), "elapsed", resp.Time())
	return domain.DecodePayload(resp.Body())
}
