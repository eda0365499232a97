package statement

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes prepare failures.
type ErrorCode string

const (
	// CodeUnrecognized means the first token is not a known verb.
	CodeUnrecognized ErrorCode = "UNRECOGNIZED"

	// CodeSyntax means the verb is known but its arguments are malformed:
	// wrong field count or an id that is not a 32-bit integer.
	CodeSyntax ErrorCode = "SYNTAX"

	// CodeNegativeID means the insert id parsed but is below zero.
	CodeNegativeID ErrorCode = "NEGATIVE_ID"

	// CodeStringTooLong means username or email exceeds its maximum length.
	CodeStringTooLong ErrorCode = "STRING_TOO_LONG"

	// CodeUnrecognizedCommand means a meta command other than ".exit".
	CodeUnrecognizedCommand ErrorCode = "UNRECOGNIZED_COMMAND"
)

// PrepareError reports why a line could not become a statement.
type PrepareError struct {
	Code  ErrorCode
	Input string
	Err   error
}

func (e *PrepareError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %q: %v", e.Code, e.Input, e.Err)
	}
	return fmt.Sprintf("%s: %q", e.Code, e.Input)
}

func (e *PrepareError) Unwrap() error {
	return e.Err
}

// CodeOf returns the code of a wrapped *PrepareError, or "" if there is none.
func CodeOf(err error) ErrorCode {
	var pe *PrepareError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

func newPrepareError(code ErrorCode, input string, err error) *PrepareError {
	return &PrepareError{Code: code, Input: input, Err: err}
}
