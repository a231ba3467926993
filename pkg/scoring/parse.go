package scoring

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// fencedJSON matches a ```json fenced block and captures its interior.
var fencedJSON = regexp.MustCompile("```json\\s*([\\s\\S]*?)\\s*```")

// ExtractJSON returns the interior of the first ```json fenced block in text,
// or the whole text trimmed when there is none.
func ExtractJSON(text string) string {
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	return strings.TrimSpace(text)
}

// Parse turns raw model output into a validated Result. Failures are
// returned as *Error with KindEmptyResponse, KindMalformedJSON or
// KindSchemaViolation.
func Parse(text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, EmptyResponse()
	}

	candidate := ExtractJSON(text)

	instance, err := jsonschema.UnmarshalJSON(strings.NewReader(candidate))
	if err != nil {
		return Result{}, &Error{Kind: KindMalformedJSON, Raw: text, Err: err}
	}

	if violations := validate(instance); len(violations) > 0 {
		return Result{}, &Error{
			Kind:       KindSchemaViolation,
			Violations: violations,
			Err:        errors.New(strings.Join(violations, "; ")),
		}
	}

	var w wireResult
	if err := json.Unmarshal([]byte(candidate), &w); err != nil {
		return Result{}, &Error{Kind: KindMalformedJSON, Raw: text, Err: err}
	}

	return w.result()
}

// wireResult mirrors Result with json.Number scores: the schema accepts
// integral values written as 42.0, which encoding/json refuses to put in an int.
type wireResult struct {
	Category string      `json:"category"`
	Total    json.Number `json:"total"`
	Details  struct {
		Humor        json.Number `json:"humor"`
		Structure    json.Number `json:"structure"`
		Format       json.Number `json:"format"`
		Language     json.Number `json:"language"`
		Completeness json.Number `json:"completeness"`
	} `json:"details"`
	Reasons Reasons `json:"reasons"`
	Advice  string  `json:"advice"`
}

func (w wireResult) result() (Result, error) {
	nums := []json.Number{
		w.Total,
		w.Details.Humor,
		w.Details.Structure,
		w.Details.Format,
		w.Details.Language,
		w.Details.Completeness,
	}

	ints := make([]int, len(nums))
	for i, n := range nums {
		f, err := n.Float64()
		if err != nil {
			return Result{}, &Error{Kind: KindSchemaViolation, Violations: []string{err.Error()}, Err: err}
		}
		ints[i] = int(math.Round(f))
	}

	return Result{
		Category: w.Category,
		Total:    ints[0],
		Details: Details{
			Humor:        ints[1],
			Structure:    ints[2],
			Format:       ints[3],
			Language:     ints[4],
			Completeness: ints[5],
		},
		Reasons: w.Reasons,
		Advice:  w.Advice,
	}, nil
}
