package normalize

import "errors"

// Errors returned by normalization.
var (
	// ErrNilCommand indicates a nil parsed command.
	ErrNilCommand = errors.New("normalize: nil command")

	// ErrUnknownKind indicates a command kind outside the closed union.
	ErrUnknownKind = errors.New("normalize: unknown command kind")
)
