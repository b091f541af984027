package molprobity

import (
	"errors"
	"fmt"
)

var (
	// ErrColumnCount indicates a line with the wrong number of columns.
	ErrColumnCount = errors.New("wrong column count")
	// ErrBadNumber indicates a numeric column that does not parse as a float.
	ErrBadNumber = errors.New("invalid number")
)

// RowError ties a malformed-row failure to its input line.
type RowError struct {
	Line   int
	Column string
	Err    error
	Detail string
}

func (e *RowError) Error() string {
	if e == nil {
		return "row error"
	}
	msg := fmt.Sprintf("line %d", e.Line)
	if e.Column != "" {
		msg += " (" + e.Column + ")"
	}
	msg += ": " + e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *RowError) Unwrap() error { return e.Err }
