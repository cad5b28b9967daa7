// Package common contains shared constants and sentinel errors used across
// pubkeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrValidation signals that a mutation was rejected locally, before any
	// network call was made.
	ErrValidation = errors.New("validation error")

	// ErrNothingToUndo signals an Undo call with an empty undo stack.
	ErrNothingToUndo = errors.New("nothing to undo")
)
