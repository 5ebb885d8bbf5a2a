package colgo

import (
	"errors"
	"fmt"
)

var (
	// ErrColumnNotFound is returned when a table lookup names an unknown column.
	ErrColumnNotFound = errors.New("column not found")
	// ErrEmptyTable is returned when a table is constructed without columns.
	ErrEmptyTable = errors.New("table must have at least one column")
)

// ErrDuplicateColumn indicates two table columns share a name.
type ErrDuplicateColumn struct {
	Name string
}

func (e *ErrDuplicateColumn) Error() string {
	return fmt.Sprintf("duplicate column name: %q", e.Name)
}

// ErrLengthMismatch indicates a column's row count disagrees with the table's.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrLengthMismatch struct {
	Column string
	Rows   int
	Want   int
	cause  error
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("column %q has %d rows, want %d", e.Column, e.Rows, e.Want)
}

func (e *ErrLengthMismatch) Unwrap() error { return e.cause }
