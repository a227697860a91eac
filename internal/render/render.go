// Package render turns projected numbers into display strings.
// Everything here is a pure function of its inputs.
package render

import (
	"fmt"
	"strconv"
	"time"

	"github.com/naka-gawa/github-diversity/internal/domain"
)

// Family selects the label ordering used for a comparison panel.
type Family string

const (
	// FamilyCore renders "label - value".
	FamilyCore Family = "core"
	// FamilyNonCore renders "value - label".
	FamilyNonCore Family = "non-core"
)

// Families lists the comparison panels in display order.
var Families = []Family{FamilyCore, FamilyNonCore}

const (
	LabelCurrent = "current"
	LabelAverage = "average"
)

// Captions shown under the comparison panels.
const (
	NoComparisonCaption = "*No other repos analyzed up to date for comparison"
	averageCaptionFmt   = "*Average based on %d other repo(s) analyzed up to date"
	commitRangeFmt      = "*Analyzed %d commits (%s <-> %s)"
	contributorsFmt     = "*%d contributors (%d core, %d non-core)"
	dateLayout          = "2006-01-02"
)

// Number formats a value in its shortest decimal form ("5", "0.667").
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Percent formats a category share as "v%".
func Percent(v float64) string {
	return Number(v) + "%"
}

// Slot formats one label/value pair using the family's ordering.
func Slot(f Family, label string, value float64) string {
	if f == FamilyCore {
		return label + " - " + Number(value)
	}
	return Number(value) + " - " + label
}

// Compare places current and baseline into the greater and lesser slots.
// Only a strictly greater current value takes the greater slot; on a tie the
// baseline stays on top.
func Compare(f Family, current, baseline float64) domain.ComparisonOutcome {
	if current > baseline {
		return domain.ComparisonOutcome{
			GreaterLabel: Slot(f, LabelCurrent, current),
			GreaterValue: current,
			LesserLabel:  Slot(f, LabelAverage, baseline),
			LesserValue:  baseline,
		}
	}
	return domain.ComparisonOutcome{
		GreaterLabel: Slot(f, LabelAverage, baseline),
		GreaterValue: baseline,
		LesserLabel:  Slot(f, LabelCurrent, current),
		LesserValue:  current,
	}
}

// Panel is the rendered state of one comparison family.
type Panel struct {
	Family Family
	// Placeholder is set only when no comparison data exists.
	Placeholder string
	// Outcome is nil when the placeholder is shown.
	Outcome *domain.ComparisonOutcome
}

// Panels is the rendered diversity section.
type Panels struct {
	Core    Panel
	NonCore Panel
	Caption string
}

// HasComparison reports whether the two-slot comparison is shown.
func (p Panels) HasComparison() bool {
	return p.Core.Outcome != nil
}

// Diversity renders both comparison families and the comparison caption.
// With no comparison repositories only the current value is shown.
func Diversity(d domain.Diversity) Panels {
	if d.ComparisonRepoCount == 0 {
		return Panels{
			Core:    Panel{Family: FamilyCore, Placeholder: Slot(FamilyCore, LabelCurrent, d.CoreIndex)},
			NonCore: Panel{Family: FamilyNonCore, Placeholder: Slot(FamilyNonCore, LabelCurrent, d.NonCoreIndex)},
			Caption: NoComparisonCaption,
		}
	}

	core := Compare(FamilyCore, d.CoreIndex, d.CoreAverageIndex)
	nonCore := Compare(FamilyNonCore, d.NonCoreIndex, d.NonCoreAverageIndex)
	return Panels{
		Core:    Panel{Family: FamilyCore, Outcome: &core},
		NonCore: Panel{Family: FamilyNonCore, Outcome: &nonCore},
		Caption: fmt.Sprintf(averageCaptionFmt, d.ComparisonRepoCount),
	}
}

// Contributors renders the caption with the contributor total of both segments.
func Contributors(total, core, nonCore int) string {
	return fmt.Sprintf(contributorsFmt, total, core, nonCore)
}

// CommitRange renders the caption summarising the analyzed commit window.
func CommitRange(sampleSize int, earliest, today time.Time) string {
	return fmt.Sprintf(commitRangeFmt, sampleSize, earliest.Format(dateLayout), today.Format(dateLayout))
}
