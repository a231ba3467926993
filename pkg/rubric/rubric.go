// Package rubric holds the fixed scoring rubric shared by every provider: the
// system prompt sent as the first instruction, and the five scoring axes with
// their ceilings.
package rubric

// Axis is one scored dimension of an article.
type Axis struct {
	Key   string // JSON key in "details" and "reasons".
	Label string // Human-readable label.
	Max   int    // Inclusive ceiling.
}

// Axis keys.
const (
	Humor        = "humor"
	Structure    = "structure"
	Format       = "format"
	Language     = "language"
	Completeness = "completeness"
)

// Axes lists the scoring axes in display order. Their ceilings sum to MaxTotal.
var Axes = []Axis{
	{Key: Humor, Label: "ユーモア", Max: 50},
	{Key: Structure, Label: "構成一貫性", Max: 20},
	{Key: Format, Label: "記事フォーマット", Max: 10},
	{Key: Language, Label: "文章の自然さ", Max: 10},
	{Key: Completeness, Label: "完成度", Max: 10},
}

const (
	// MaxTotal is the ceiling of the overall score.
	MaxTotal = 100

	// AdviceThreshold is the total below which the model is asked to give advice.
	AdviceThreshold = 60

	// HighThreshold is the total at or above which a result is rated high.
	HighThreshold = 80

	// DefaultTemperature is the sampling temperature used unless configured otherwise.
	DefaultTemperature = 0.3
)
