package scoring_test

import (
	"encoding/json"
	"testing"

	"github.com/germanamz/scorer/pkg/rubric"
	"github.com/germanamz/scorer/pkg/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_ScoreAndReason(t *testing.T) {
	r := scoring.Result{
		Details: scoring.Details{Humor: 1, Structure: 2, Format: 3, Language: 4, Completeness: 5},
		Reasons: scoring.Reasons{Humor: "h", Structure: "s", Format: "f", Language: "l", Completeness: "c"},
	}

	wantScores := []int{1, 2, 3, 4, 5}
	wantReasons := []string{"h", "s", "f", "l", "c"}

	for i, a := range rubric.Axes {
		got, ok := r.Score(a.Key)
		require.True(t, ok)
		assert.Equal(t, wantScores[i], got)

		reason, ok := r.Reason(a.Key)
		require.True(t, ok)
		assert.Equal(t, wantReasons[i], reason)
	}

	_, ok := r.Score("bogus")
	assert.False(t, ok)
	_, ok = r.Reason("bogus")
	assert.False(t, ok)
}

func TestResult_Band(t *testing.T) {
	assert.Equal(t, scoring.BandHigh, scoring.Result{Total: 80}.Band())
	assert.Equal(t, scoring.BandMid, scoring.Result{Total: 79}.Band())
	assert.Equal(t, scoring.BandMid, scoring.Result{Total: 60}.Band())
	assert.Equal(t, scoring.BandLow, scoring.Result{Total: 59}.Band())
}

func TestResult_NeedsAdvice(t *testing.T) {
	assert.True(t, scoring.Result{Total: 59}.NeedsAdvice())
	assert.False(t, scoring.Result{Total: 60}.NeedsAdvice())
}

// The embedded schema's ceilings must track the rubric.
func TestSchema_MatchesRubric(t *testing.T) {
	var doc struct {
		Properties struct {
			Total struct {
				Maximum int `json:"maximum"`
			} `json:"total"`
			Details struct {
				Required   []string `json:"required"`
				Properties map[string]struct {
					Maximum int `json:"maximum"`
				} `json:"properties"`
			} `json:"details"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(scoring.SchemaJSON(), &doc))

	assert.Equal(t, rubric.MaxTotal, doc.Properties.Total.Maximum)
	assert.Len(t, doc.Properties.Details.Required, len(rubric.Axes))

	for _, a := range rubric.Axes {
		p, ok := doc.Properties.Details.Properties[a.Key]
		require.True(t, ok, a.Key)
		assert.Equal(t, a.Max, p.Maximum, a.Key)
	}
}
