package interp

import "errors"

// Errors surfaced by execution. Execution failures return false from the
// entry points; these errors appear in logs and from registry adapters.
var (
	// ErrNoMotion indicates an unregistered motion key.
	ErrNoMotion = errors.New("interp: no motion registered for key")

	// ErrNoOperator indicates an unregistered operator key.
	ErrNoOperator = errors.New("interp: no operator registered for key")

	// ErrNoTextObject indicates an unregistered text-object key.
	ErrNoTextObject = errors.New("interp: no text object registered for key")

	// ErrNoAction indicates an unregistered action key.
	ErrNoAction = errors.New("interp: no action registered for key")

	// ErrEmptyRegister indicates a put from an empty register.
	ErrEmptyRegister = errors.New("interp: register is empty")

	// ErrRepeatDepth indicates a suppressed recursive dot-repeat.
	ErrRepeatDepth = errors.New("interp: repeat depth exceeded")

	// ErrRecording indicates a macro capture started while one is active.
	ErrRecording = errors.New("interp: already recording a macro")

	// ErrBadMacroSlot indicates an empty macro slot name.
	ErrBadMacroSlot = errors.New("interp: invalid macro slot")

	// ErrMacroDepth indicates suppressed runaway macro nesting.
	ErrMacroDepth = errors.New("interp: macro depth exceeded")
)
