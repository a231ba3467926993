// Package usage records the tokens spent by scoring calls, per model.
package usage

import (
	"sync"
	"time"
)

// TokenCount holds prompt and completion token counts.
type TokenCount struct {
	InputTokens  int
	OutputTokens int
}

// Total returns the sum of input and output tokens.
func (tc TokenCount) Total() int {
	return tc.InputTokens + tc.OutputTokens
}

// Plus returns the element-wise sum of tc and o.
func (tc TokenCount) Plus(o TokenCount) TokenCount {
	return TokenCount{
		InputTokens:  tc.InputTokens + o.InputTokens,
		OutputTokens: tc.OutputTokens + o.OutputTokens,
	}
}

// Record is the usage reported for one scoring call.
type Record struct {
	Model  string
	Tokens TokenCount
	At     time.Time
}

// Tracker accumulates usage records. It is safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	records []Record
	now     func() time.Time
}

// Record appends the usage reported for a call to model.
func (t *Tracker) Record(model string, tc TokenCount) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now
	if t.now != nil {
		now = t.now
	}

	t.records = append(t.records, Record{Model: model, Tokens: tc, At: now()})
}

// Last returns the most recent record. The bool is false when nothing was
// recorded.
func (t *Tracker) Last() (Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.records) == 0 {
		return Record{}, false
	}

	return t.records[len(t.records)-1], true
}

// Len returns the number of records.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.records)
}

// Total returns the usage summed over every record.
func (t *Tracker) Total() TokenCount {
	t.mu.Lock()
	defer t.mu.Unlock()

	var total TokenCount
	for _, r := range t.records {
		total = total.Plus(r.Tokens)
	}

	return total
}
