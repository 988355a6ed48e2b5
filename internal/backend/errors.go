package backend

import (
	"errors"
	"fmt"
)

// Kind categorizes a backend or dispatch failure.
type Kind string

const (
	// KindConnection marks session construction or transport failures.
	KindConnection Kind = "connection"
	// KindTimeout marks requests that exceeded the configured deadline.
	KindTimeout Kind = "timeout"
	// KindHTTPStatus marks non-success HTTP responses from the backend.
	KindHTTPStatus Kind = "http_status"
	// KindDecode marks response bodies that were not valid JSON.
	KindDecode Kind = "decode"
	// KindToolNotFound marks calls to a tool name absent from the catalog.
	KindToolNotFound Kind = "tool_not_found"
	// KindToolExecution marks any other failure raised by a tool handler.
	KindToolExecution Kind = "tool_execution"
)

// Error is a categorized failure. Op names the operation that produced it
// (a client method or tool name), Status carries the HTTP status for
// KindHTTPStatus errors.
type Error struct {
	Kind    Kind
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a categorized error.
func NewError(kind Kind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// ErrorKind returns the Kind of err, or KindToolExecution when err carries
// no category. The dispatcher relies on this to tag unexpected handler
// failures without losing categories assigned lower in the stack.
func ErrorKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindToolExecution
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// withOp tags err with the calling client method name, preserving the
// category when err is already an *Error.
func withOp(err error, op string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Op == "" {
			e.Op = op
		}
		return err
	}
	return &Error{Kind: KindConnection, Op: op, Err: err}
}
