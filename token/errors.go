package token

import "errors"

// Errors returned by dictionary registration.
var (
	// ErrDuplicateKey indicates a token key already exists in the dictionary.
	ErrDuplicateKey = errors.New("token: duplicate key")

	// ErrEmptyKey indicates a token with an empty key.
	ErrEmptyKey = errors.New("token: empty key")

	// ErrFrozen indicates registration on a frozen registry.
	ErrFrozen = errors.New("token: registry is frozen")
)
