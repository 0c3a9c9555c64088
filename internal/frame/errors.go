package frame

import (
	"errors"
	"fmt"
)

var (
	// ErrColumnNotFound indicates a column name that is not part of the table.
	ErrColumnNotFound = errors.New("frame: column not found")
	// ErrNotNumeric indicates a numeric operation on a categorical column.
	ErrNotNumeric = errors.New("frame: column is not numeric")
	// ErrDuplicateColumn indicates two header cells resolve to the same name.
	ErrDuplicateColumn = errors.New("frame: duplicate column name")
	// ErrEmptyHeader indicates a header cell with no name.
	ErrEmptyHeader = errors.New("frame: empty column name")
	// ErrLengthMismatch indicates replacement values that do not match the row count.
	ErrLengthMismatch = errors.New("frame: value count does not match row count")
)

// ColumnError ties a failure to the column that caused it.
type ColumnError struct {
	Column string
	Err    error
}

func (e *ColumnError) Error() string {
	if e == nil {
		return "column error"
	}
	return fmt.Sprintf("column %q: %v", e.Column, e.Err)
}

func (e *ColumnError) Unwrap() error { return e.Err }

func columnErr(name string, err error) error {
	return &ColumnError{Column: name, Err: err}
}
