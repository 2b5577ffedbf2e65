package catalog

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned when two rows of a table share an id.
var ErrDuplicateID = errors.New("duplicate id")

// RowError locates a bad row in an exported table.
type RowError struct {
	Table string
	Row   int // zero-based index in the table's data array
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s row %d: %v", e.Table, e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
