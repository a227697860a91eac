package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

// Resolver maps a repository identifier to its canonical "owner/name" form.
type Resolver interface {
	ResolveRepository(ctx context.Context, owner, name string) (string, error)
}

// GitHubGateway resolves repositories through the GitHub API.
// GraphQL needs authentication, so the REST API is used when no token is set.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	useGraphQL    bool
	logger        *slog.Logger
}

// repositoryQuery fetches the canonical name of a repository, following renames.
type repositoryQuery struct {
	Repository struct {
		NameWithOwner string
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// An empty token yields an anonymous, REST-only gateway.
func NewGitHubGateway(token string, logger *slog.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Minute, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	httpClient := &http.Client{Transport: rateLimitWaiter}
	if token != "" {
		httpClient.Transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}

	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		useGraphQL:    token != "",
		logger:        logger,
	}, nil
}

// ResolveRepository returns the canonical "owner/name" of a repository.
func (g *GitHubGateway) ResolveRepository(ctx context.Context, owner, name string) (string, error) {
	if g.useGraphQL {
		return g.resolveGraphQL(ctx, owner, name)
	}
	return g.resolveREST(ctx, owner, name)
}

func (g *GitHubGateway) resolveGraphQL(ctx context.Context, owner, name string) (string, error) {
	g.logger.Debug("resolving repository via GraphQL", "owner", owner, "name", name)
	var q repositoryQuery
	variables := map[string]interface{}{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(name),
	}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return "", fmt.Errorf("failed to execute GraphQL query for repository: %w", err)
	}
	if q.Repository.NameWithOwner == "" {
		return "", fmt.Errorf("repository %s/%s not found", owner, name)
	}
	return q.Repository.NameWithOwner, nil
}

func (g *GitHubGateway) resolveREST(ctx context.Context, owner, name string) (string, error) {
	g.logger.Debug("resolving repository via REST", "owner", owner, "name", name)
	repo, _, err := g.restClient.Repositories.Get(ctx, owner, name)
	if err != nil {
		return "", fmt.Errorf("failed to get repository with REST API: %w", err)
	}
	if repo.GetFullName() == "" {
		return "", fmt.Errorf("repository %s/%s not found", owner, name)
	}
	return repo.GetFullName(), nil
}
