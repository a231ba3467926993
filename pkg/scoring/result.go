// Package scoring defines the canonical scoring result, the JSON Schema it is
// validated against, and the pipeline that turns raw model output into a
// validated Result.
//
// Every provider feeds the text it received into [Parse]. Parse tolerates both
// bare JSON and JSON wrapped in a ```json fence with surrounding prose, and
// reports failures as [*Error] values carrying a [Kind].
package scoring

import "github.com/germanamz/scorer/pkg/rubric"

// Result is a validated score for one article. The sum of Details is not
// required to equal Total.
type Result struct {
	Category string  `json:"category"`
	Total    int     `json:"total"`
	Details  Details `json:"details"`
	Reasons  Reasons `json:"reasons"`
	Advice   string  `json:"advice,omitempty"`
}

// Details holds the per-axis scores.
type Details struct {
	Humor        int `json:"humor"`
	Structure    int `json:"structure"`
	Format       int `json:"format"`
	Language     int `json:"language"`
	Completeness int `json:"completeness"`
}

// Reasons holds the per-axis justifications.
type Reasons struct {
	Humor        string `json:"humor"`
	Structure    string `json:"structure"`
	Format       string `json:"format"`
	Language     string `json:"language"`
	Completeness string `json:"completeness"`
}

// Band classifies a total for display.
type Band string

const (
	BandHigh Band = "high"
	BandMid  Band = "mid"
	BandLow  Band = "low"
)

// Score returns the sub-score for the given axis key.
func (r Result) Score(axis string) (int, bool) {
	switch axis {
	case rubric.Humor:
		return r.Details.Humor, true
	case rubric.Structure:
		return r.Details.Structure, true
	case rubric.Format:
		return r.Details.Format, true
	case rubric.Language:
		return r.Details.Language, true
	case rubric.Completeness:
		return r.Details.Completeness, true
	default:
		return 0, false
	}
}

// Reason returns the justification for the given axis key.
func (r Result) Reason(axis string) (string, bool) {
	switch axis {
	case rubric.Humor:
		return r.Reasons.Humor, true
	case rubric.Structure:
		return r.Reasons.Structure, true
	case rubric.Format:
		return r.Reasons.Format, true
	case rubric.Language:
		return r.Reasons.Language, true
	case rubric.Completeness:
		return r.Reasons.Completeness, true
	default:
		return "", false
	}
}

// HasAdvice reports whether the model returned improvement advice.
func (r Result) HasAdvice() bool { return r.Advice != "" }

// NeedsAdvice reports whether the rubric asks for advice at this total.
func (r Result) NeedsAdvice() bool { return r.Total < rubric.AdviceThreshold }

// Band returns the display band for the total.
func (r Result) Band() Band {
	switch {
	case r.Total >= rubric.HighThreshold:
		return BandHigh
	case r.Total >= rubric.AdviceThreshold:
		return BandMid
	default:
		return BandLow
	}
}
