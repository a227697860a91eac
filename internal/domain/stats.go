// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// Category is one of the fixed demographic categories reported by the analysis backend.
type Category string

const (
	Female    Category = "female"
	Male      Category = "male"
	Nonbinary Category = "nonbinary"
	Unknown   Category = "unknown"
)

// Categories is the closed set of categories in rendering order.
// The order is part of the output contract and must not change.
var Categories = []Category{Female, Male, Nonbinary, Unknown}

// CategoryCounts maps every category to a non-negative count.
type CategoryCounts map[Category]int

// Total returns the sum of all counts.
func (c CategoryCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// AnalysisRequest is a validated request for one repository analysis.
// Only the validator constructs it; invalid instances are never sent.
type AnalysisRequest struct {
	Repo        string `json:"repo"`
	CommitCount int    `json:"count"`
}

// Diversity holds the opaque diversity indices computed by the backend.
type Diversity struct {
	CoreIndex           float64 `json:"core_index"`
	CoreAverageIndex    float64 `json:"core_average_index"`
	NonCoreIndex        float64 `json:"non_core_index"`
	NonCoreAverageIndex float64 `json:"non_core_average_index"`
	ComparisonRepoCount int     `json:"comparison_repo_count"`
}

// AnalysisResult is the decoded response of one analysis.
// It lives for a single render cycle only.
type AnalysisResult struct {
	SampleSize   int       `json:"sample_size"`
	EarliestDate time.Time `json:"earliest_date"`
	// Totals holds the overall share of each category as a percentage,
	// exactly as supplied by the backend.
	Totals    map[Category]float64 `json:"totals"`
	Core      CategoryCounts       `json:"core"`
	NonCore   CategoryCounts       `json:"non_core"`
	Diversity Diversity            `json:"diversity"`
}

// ComparisonOutcome is the derived placement of a current value against its baseline.
type ComparisonOutcome struct {
	GreaterLabel string  `json:"greater_label"`
	GreaterValue float64 `json:"greater_value"`
	LesserLabel  string  `json:"lesser_label"`
	LesserValue  float64 `json:"lesser_value"`
}
