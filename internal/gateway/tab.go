package gateway

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// TabQuerier returns the URL the user is currently looking at.
type TabQuerier interface {
	CurrentURL(ctx context.Context) (string, error)
}

// StaticTab is a TabQuerier that always returns the same URL.
type StaticTab string

// CurrentURL returns the static URL.
func (s StaticTab) CurrentURL(context.Context) (string, error) {
	return string(s), nil
}

// GitRemoteTab treats the remote of a local git checkout as the current tab.
type GitRemoteTab struct {
	// Dir is the working tree to inspect. Empty means the current directory.
	Dir string
	// Remote is the remote name, "origin" when empty.
	Remote string
}

// CurrentURL runs `git remote get-url` and normalizes the result to an https URL.
func (g GitRemoteTab) CurrentURL(ctx context.Context) (string, error) {
	remote := g.Remote
	if remote == "" {
		remote = "origin"
	}
	args := []string{"remote", "get-url", remote}
	if g.Dir != "" {
		args = append([]string{"-C", g.Dir}, args...)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to read git remote %q: %w: %s", remote, err, strings.TrimSpace(stderr.String()))
	}
	return NormalizeRemote(strings.TrimSpace(string(out))), nil
}

// NormalizeRemote rewrites scp-like and ssh GitHub remotes to https form and
// drops a trailing ".git". Other URLs are returned unchanged apart from the suffix.
func NormalizeRemote(raw string) string {
	u := raw
	switch {
	case strings.HasPrefix(u, "git@github.com:"):
		u = "https://github.com/" + strings.TrimPrefix(u, "git@github.com:")
	case strings.HasPrefix(u, "ssh://git@github.com/"):
		u = "https://github.com/" + strings.TrimPrefix(u, "ssh://git@github.com/")
	case strings.HasPrefix(u, "http://github.com/"):
		u = "https://github.com/" + strings.TrimPrefix(u, "http://github.com/")
	}
	return strings.TrimSuffix(u, ".git")
}
