// Package validator checks the user-supplied fields before any request is made.
package validator

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/naka-gawa/github-diversity/internal/domain"
)

// Validate checks the repository identifier and the raw commit count.
// Every violated rule is reported; the returned error joins them with newlines
// and each one remains matchable with errors.Is.
func Validate(repo, commitCountRaw string) error {
	var errs []error

	if strings.TrimSpace(repo) == "" {
		errs = append(errs, domain.ErrEmptyRepoIdentifier)
	}
	if _, ok := parseCount(commitCountRaw); !ok {
		errs = append(errs, domain.ErrInvalidCommitCount)
	}

	return errors.Join(errs...)
}

// NewRequest validates the fields and builds the request that will be sent.
func NewRequest(repo, commitCountRaw string) (domain.AnalysisRequest, error) {
	if err := Validate(repo, commitCountRaw); err != nil {
		return domain.AnalysisRequest{}, err
	}
	n, _ := parseCount(commitCountRaw)
	return domain.AnalysisRequest{
		Repo:        strings.TrimSpace(repo),
		CommitCount: n,
	}, nil
}

// parseCount accepts any decimal number that is a whole value in range.
func parseCount(raw string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	if f < domain.MinCommitCount || f > domain.MaxCommitCount || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
