package rubric_test

import (
	"strings"
	"testing"

	"github.com/germanamz/scorer/pkg/rubric"
	"github.com/stretchr/testify/assert"
)

func TestAxes_CeilingsSumToMaxTotal(t *testing.T) {
	sum := 0
	for _, a := range rubric.Axes {
		sum += a.Max
	}

	assert.Equal(t, rubric.MaxTotal, sum)
}

func TestAxes_Order(t *testing.T) {
	keys := make([]string, len(rubric.Axes))
	for i, a := range rubric.Axes {
		keys[i] = a.Key
	}

	assert.Equal(t, []string{"humor", "structure", "format", "language", "completeness"}, keys)
}

func TestSystemPrompt_MentionsEveryAxis(t *testing.T) {
	for _, a := range rubric.Axes {
		assert.True(t, strings.Contains(rubric.SystemPrompt, a.Key), "prompt should mention %q", a.Key)
	}
}
