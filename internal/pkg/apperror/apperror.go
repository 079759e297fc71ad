package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the TCP layer can report it in a stable,
// machine-readable form. Kinds map 1:1 to the error taxonomy exposed to the
// calling service.
type Kind string

const (
	KindInsufficientData   Kind = "InsufficientData"
	KindAlgorithmFailure   Kind = "AlgorithmFailure"
	KindPersistenceFailure Kind = "PersistenceFailure"
	KindRunInProgress      Kind = "RunInProgress"
	KindTimeout            Kind = "Timeout"
	KindUnknownAction      Kind = "UnknownAction"
	KindInvalidRequest     Kind = "InvalidRequest"
	KindNotFound           Kind = "NotFound"
	KindInternal           Kind = "Internal"
)

// Error carries a kind alongside the human-readable message. It supports
// errors.Is/As so callers can branch on the kind without string matching.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap keeps the original error reachable via errors.Unwrap while attaching
// a kind for the response layer.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain. Unclassified errors are
// reported as Internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
