package render

import "errors"

var (
	// ErrConflictingClass is returned in strict mode when two inputs define the same class.
	ErrConflictingClass = errors.New("conflicting class definitions")
)
