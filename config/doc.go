// Package config loads interpreter settings from TOML: disabled alias
// shortcuts, the default register, and user-defined tokens.
//
// Load returns built-in defaults when the file does not exist, so hosts can
// point it at a path unconditionally. TokenRegistry applies the settings when
// building the token tables; Watch reloads the file on change with
// debouncing and keeps the last good configuration when a reload fails.
package config
