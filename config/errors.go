package config

import "errors"

var (
	// ErrUnknownAlias means the disabled-alias list names a key that is
	// not one of the shortcut commands.
	ErrUnknownAlias = errors.New("unknown alias")

	// ErrInvalidRegister means the default register is not a single
	// printable character.
	ErrInvalidRegister = errors.New("invalid register name")

	// ErrInvalidToken means an extra token declaration is malformed.
	ErrInvalidToken = errors.New("invalid token declaration")
)
