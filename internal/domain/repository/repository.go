package repository

import "errors"

// ErrNotFound is returned by every repository lookup that matches nothing.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint rejects a write.
// Field holds the offending column.
type ErrDuplicate struct {
	Field string
}

func (e *ErrDuplicate) Error() string { return "duplicate " + e.Field }
