package request

import (
	"errors"
	"strings"
)

type Kind int

const (
	// KindNetwork: no response arrived, including timeouts. Shown as a
	// generic "Request error"; transport detail never reaches the UI.
	KindNetwork Kind = iota + 1
	// KindDecode: a response body (success payload or error payload)
	// did not match the expected shape. Shown as "Data error".
	KindDecode
	// KindValidation: the server reported field errors. Shown verbatim,
	// one message per field, in the order the server sent them.
	KindValidation
)

// Error is the single failure vocabulary the pipeline hands to its
// callers: an ordered list of human-readable messages plus the kind
// they came from. The underlying cause is retained for logging only.
type Error struct {
	Kind     Kind
	Messages []string
	cause    error
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, "; ")
}

func (e *Error) Unwrap() error { return e.cause }

func networkError(cause error) *Error {
	return &Error{Kind: KindNetwork, Messages: []string{"Request error"}, cause: cause}
}

func dataError(cause error) *Error {
	return &Error{Kind: KindDecode, Messages: []string{"Data error"}, cause: cause}
}

func validationError(messages []string) *Error {
	return &Error{Kind: KindValidation, Messages: messages}
}

// Messages extracts the display messages from a pipeline failure.
func Messages(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Messages
	}
	return []string{"Request error"}
}
