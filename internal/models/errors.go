package models

import "errors"

// ErrDuplicate is matched by DuplicateError, returned by repositories when a
// uniqueness constraint rejects a write.
var ErrDuplicate = errors.New("duplicate record")

// DuplicateError carries the store's message for a uniqueness violation.
type DuplicateError struct {
	Message string
}

func (e *DuplicateError) Error() string {
	return e.Message
}

// Is reports whether target is ErrDuplicate.
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}
