// Package usecase contains the business logic of the application.
package usecase

import (
	"fmt"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-diversity/internal/domain"
)

// CategoryRow is one projected category row.
type CategoryRow struct {
	Category            domain.Category `json:"category"`
	SegmentRatioPercent float64         `json:"segment_ratio_percent"`
	CoreCount           int             `json:"core_count"`
	NonCoreCount        int             `json:"non_core_count"`
}

// TotalsDisplay summarises the analyzed sample.
type TotalsDisplay struct {
	SampleSize   int       `json:"sample_size"`
	EarliestDate time.Time `json:"earliest_date"`
	Contributors int       `json:"contributors"`
}

// Projection is the payload shaped for rendering.
type Projection struct {
	Result      domain.AnalysisResult `json:"result"`
	Totals      TotalsDisplay         `json:"totals"`
	PerCategory []CategoryRow         `json:"per_category"`
	Diversity   domain.Diversity      `json:"diversity"`
}

// payloadDateLayouts are the date formats the backend has been seen to emit.
var payloadDateLayouts = []string{time.DateOnly, time.RFC3339}

func missing(field string) error {
	return fmt.Errorf("%w: missing %q", domain.ErrInvalidResponseShape, field)
}

// Project maps the backend payload onto the fixed categories and segments.
// It never fills in defaults: any absent category, partition or metric is an error.
func Project(p *domain.Payload) (*Projection, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: empty payload", domain.ErrInvalidResponseShape)
	}
	if p.Count == nil {
		return nil, missing("count")
	}
	if p.Date == nil {
		return nil, missing("date")
	}
	earliest, err := parsePayloadDate(*p.Date)
	if err != nil {
		return nil, err
	}
	if p.Core == nil {
		return nil, missing("core")
	}
	if p.NonCore == nil {
		return nil, missing("noncore")
	}

	result := domain.AnalysisResult{
		SampleSize:   *p.Count,
		EarliestDate: earliest,
		Totals:       make(map[domain.Category]float64, len(domain.Categories)),
		Core:         make(domain.CategoryCounts, len(domain.Categories)),
		NonCore:      make(domain.CategoryCounts, len(domain.Categories)),
	}
	rows := make([]CategoryRow, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		percent, ok := p.Percent(c)
		if !ok {
			return nil, missing(string(c))
		}
		core, ok := p.Core.Get(c)
		if !ok {
			return nil, missing("core." + string(c))
		}
		nonCore, ok := p.NonCore.Get(c)
		if !ok {
			return nil, missing("noncore." + string(c))
		}
		if core < 0 || nonCore < 0 {
			return nil, fmt.Errorf("%w: negative count for %q", domain.ErrInvalidResponseShape, c)
		}

		result.Totals[c] = percent
		result.Core[c] = core
		result.NonCore[c] = nonCore
		rows = append(rows, CategoryRow{
			Category:            c,
			SegmentRatioPercent: percent,
			CoreCount:           core,
			NonCoreCount:        nonCore,
		})
	}

	diversity, err := projectDiversity(p)
	if err != nil {
		return nil, err
	}
	result.Diversity = diversity

	contributors, err := countContributors(result.Core, result.NonCore)
	if err != nil {
		return nil, err
	}

	return &Projection{
		Result: result,
		Totals: TotalsDisplay{
			SampleSize:   result.SampleSize,
			EarliestDate: earliest,
			Contributors: contributors,
		},
		PerCategory: rows,
		Diversity:   diversity,
	}, nil
}

func projectDiversity(p *domain.Payload) (domain.Diversity, error) {
	fields := []struct {
		name  string
		value *float64
	}{
		{"blauCore", p.BlauCore},
		{"avgBlauCore", p.AvgBlauCore},
		{"blauNoncore", p.BlauNonCore},
		{"avgBlauNoncore", p.AvgBlauNonCore},
	}
	for _, f := range fields {
		if f.value == nil {
			return domain.Diversity{}, missing(f.name)
		}
	}
	if p.Repos == nil {
		return domain.Diversity{}, missing("repos")
	}
	return domain.Diversity{
		CoreIndex:           *p.BlauCore,
		CoreAverageIndex:    *p.AvgBlauCore,
		NonCoreIndex:        *p.BlauNonCore,
		NonCoreAverageIndex: *p.AvgBlauNonCore,
		ComparisonRepoCount: *p.Repos,
	}, nil
}

func parsePayloadDate(raw string) (time.Time, error) {
	for _, layout := range payloadDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparsable date %q", domain.ErrInvalidResponseShape, raw)
}

// countContributors adds up every segment count across both partitions.
func countContributors(segments ...domain.CategoryCounts) (int, error) {
	var data stats.Float64Data
	for _, s := range segments {
		for _, c := range domain.Categories {
			data = append(data, float64(s[c]))
		}
	}
	sum, err := stats.Sum(data)
	if err != nil {
		return 0, fmt.Errorf("failed to count contributors: %w", err)
	}
	return int(sum), nil
}
