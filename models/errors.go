// models/errors.go
package models

// ErrorKind discriminates resolution failures. The orchestrator and the HTTP
// handlers switch on it instead of sniffing message text.
type ErrorKind int

const (
	// ErrInvalidFormat - input fails the flight-number pattern. Terminal.
	ErrInvalidFormat ErrorKind = iota
	// ErrNotFound - well-formed identifier absent from the timetable. Terminal.
	ErrNotFound
	// ErrParseFailure - retrieval output could not be interpreted as JSON. Retryable.
	ErrParseFailure
	// ErrSchemaValidation - JSON parsed but fields missing or malformed. Retryable.
	ErrSchemaValidation
	// ErrTransportFailure - network or retrieval-service error. Retryable.
	ErrTransportFailure
	// ErrExhaustedRetries - all attempts failed with a retryable cause. Terminal.
	ErrExhaustedRetries
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidFormat:
		return "InvalidFormat"
	case ErrNotFound:
		return "NotFound"
	case ErrParseFailure:
		return "ParseFailure"
	case ErrSchemaValidation:
		return "SchemaValidation"
	case ErrTransportFailure:
		return "TransportFailure"
	case ErrExhaustedRetries:
		return "ExhaustedRetries"
	}
	return "Unknown"
}

// ResolutionError is the typed failure value returned across the resolution
// boundary. It is always returned as a value, never panicked. FeedbackLink,
// when set, points at the issue-reporting destination for data gaps
// (NotFound); user-input problems carry none.
type ResolutionError struct {
	Kind         ErrorKind
	Message      string
	FeedbackLink string
}

func (e *ResolutionError) Error() string {
	return e.Message
}

// Retryable reports whether the orchestrator may retry after this failure.
func (e *ResolutionError) Retryable() bool {
	switch e.Kind {
	case ErrParseFailure, ErrSchemaValidation, ErrTransportFailure:
		return true
	}
	return false
}
