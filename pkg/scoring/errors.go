package scoring

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a scoring failure.
type Kind string

const (
	// KindTransport is a network failure or a non-success status from a backend.
	KindTransport Kind = "transport"
	// KindEmptyResponse is a successful reply without usable text.
	KindEmptyResponse Kind = "empty_response"
	// KindMalformedJSON is text that could not be parsed as JSON.
	KindMalformedJSON Kind = "malformed_json"
	// KindSchemaViolation is JSON that does not satisfy the result schema.
	KindSchemaViolation Kind = "schema_violation"
)

// Sentinels for errors.Is matching against an *Error of the same kind.
var (
	ErrTransport       = errors.New("transport error")
	ErrEmptyResponse   = errors.New("empty response")
	ErrMalformedJSON   = errors.New("malformed JSON")
	ErrSchemaViolation = errors.New("schema violation")
)

// Error is returned by Parse and by provider scoring calls.
type Error struct {
	Kind       Kind
	StatusCode int      // HTTP status for KindTransport; 0 when the request never completed.
	Raw        string   // Model output for KindMalformedJSON.
	Violations []string // Flattened "location: message" entries for KindSchemaViolation.
	Err        error    // Underlying cause.
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTransport:
		if e.StatusCode != 0 {
			return fmt.Sprintf("transport error (status %d): %v", e.StatusCode, e.Err)
		}
		return fmt.Sprintf("transport error: %v", e.Err)
	case KindEmptyResponse:
		return "empty response"
	case KindMalformedJSON:
		return fmt.Sprintf("malformed JSON: %v\n\nresponse: %s", e.Err, e.Raw)
	case KindSchemaViolation:
		return "schema violation: " + strings.Join(e.Violations, "; ")
	default:
		return fmt.Sprintf("scoring error: %v", e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	return target == sentinel(e.Kind)
}

func sentinel(k Kind) error {
	switch k {
	case KindTransport:
		return ErrTransport
	case KindEmptyResponse:
		return ErrEmptyResponse
	case KindMalformedJSON:
		return ErrMalformedJSON
	case KindSchemaViolation:
		return ErrSchemaViolation
	default:
		return nil
	}
}

// Transport builds a KindTransport error. status is 0 when no response was received.
func Transport(status int, err error) *Error {
	return &Error{Kind: KindTransport, StatusCode: status, Err: err}
}

// EmptyResponse builds a KindEmptyResponse error.
func EmptyResponse() *Error {
	return &Error{Kind: KindEmptyResponse}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind, true
	}

	return "", false
}

// StatusCode returns the HTTP status carried by a transport error in err's
// chain, or 0.
func StatusCode(err error) int {
	var se *Error
	if errors.As(err, &se) && se.Kind == KindTransport {
		return se.StatusCode
	}

	return 0
}
