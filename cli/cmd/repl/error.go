package repl

import "github.com/ardnew/tmpl/lang"

// Sentinel errors.
var (
	ErrOutOfBounds  = lang.NewError("history index out of range")
	ErrEditDeclined = lang.NewError("edit declined")

	ErrInvalidAssignment = lang.NewError("invalid assignment (want path=value)")
)
