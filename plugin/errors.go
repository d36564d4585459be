package plugin

import "errors"

var (
	// ErrDuplicateAction means an action name is already loaded.
	ErrDuplicateAction = errors.New("duplicate action name")

	// ErrNoEntryPoint means the script defines no execute function.
	ErrNoEntryPoint = errors.New("script defines no execute function")
)
