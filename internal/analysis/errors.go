package analysis

import "fmt"

// ErrorKind classifies analysis failures so transports can map them to
// the right response without string matching.
type ErrorKind int

const (
	// KindValidation means the request itself was malformed: bad season,
	// unknown team, unparseable season type.
	KindValidation ErrorKind = iota
	// KindDataUnavailable means the request was fine but no play data
	// exists for it.
	KindDataUnavailable
	// KindComputation means play data violated an invariant during
	// aggregation.
	KindComputation
	// KindCacheConsistency means a cached entry disagreed with the
	// configuration that keyed it.
	KindCacheConsistency
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDataUnavailable:
		return "data_unavailable"
	case KindComputation:
		return "computation"
	case KindCacheConsistency:
		return "cache_consistency"
	default:
		return "unknown"
	}
}

// Error carries the failure kind alongside the underlying cause. Fields
// is populated for validation failures only, keyed by request field.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  map[string]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

func validationError(fields map[string]string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "invalid analysis request",
		Fields:  fields,
	}
}
