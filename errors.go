package pluton

import (
	"errors"
	"fmt"
)

// ErrNotFlat is matched by every *ValidationError via errors.Is.
var ErrNotFlat = errors.New("pluton: params must be flat")

// ErrNoFrameRunner is returned by hosts that need to drive a scene's frames
// themselves when the scene was built with a scheduler they cannot run.
var ErrNoFrameRunner = errors.New("pluton: scheduler does not implement FrameRunner")

// ValidationError reports a params write whose value is not a primitive.
type ValidationError struct {
	Key   string // offending param key
	Value any    // rejected value
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("pluton: params must be flat: %q cannot be a %T (nested mutations would not trigger redraws)", e.Key, e.Value)
}

// Is reports whether target is ErrNotFlat.
func (e *ValidationError) Is(target error) bool {
	return target == ErrNotFlat
}
