// Package config loads the interpreter's TOML configuration overlay:
// which shortcut aliases stay enabled, the default register, and extra
// vocabulary tokens. Everything is optional; a missing file yields the
// defaults.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/modal/key"
	"github.com/dshills/modal/token"
)

// Config is the interpreter configuration.
type Config struct {
	Aliases   Aliases   `toml:"aliases"`
	Registers Registers `toml:"registers"`
	Tokens    []Token   `toml:"tokens"`
}

// Aliases controls the single-letter shortcut commands.
type Aliases struct {
	// Disabled lists shortcut keys (D, C, S, Y) to leave unregistered.
	Disabled []string `toml:"disabled"`
}

// Registers configures register behavior.
type Registers struct {
	// Default is the register commands use when none is named. Empty
	// means the unnamed register.
	Default string `toml:"default"`
}

// Token declares an extra vocabulary entry.
type Token struct {
	// Key is the keystroke spelling, vim notation allowed.
	Key string `toml:"key"`

	// Kind is one of operator, motion, action, or textobject.
	Kind string `toml:"kind"`

	// CharArg marks the token as consuming a literal character.
	CharArg bool `toml:"char_arg"`

	// Doubleable marks an operator that completes linewise when doubled.
	Doubleable bool `toml:"doubleable"`
}

// shortcutKeys are the alias actions the Disabled list may name.
var shortcutKeys = map[string]bool{
	token.ActDeleteToEOL:  true,
	token.ActChangeToEOL:  true,
	token.ActSubstituteLn: true,
	token.ActYankLine:     true,
}

var tokenKinds = map[string]token.Kind{
	"operator":   token.KindOperator,
	"motion":     token.KindMotion,
	"action":     token.KindAction,
	"textobject": token.KindTextObject,
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{}
}

// Load reads and validates a configuration file. A missing file is not
// an error; it yields the default configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	for _, k := range c.Aliases.Disabled {
		if !shortcutKeys[k] {
			return fmt.Errorf("alias %q: %w", k, ErrUnknownAlias)
		}
	}
	if d := c.Registers.Default; d != "" {
		if _, ok := key.Key(d).Rune(); !ok || len(d) != 1 {
			return fmt.Errorf("register %q: %w", d, ErrInvalidRegister)
		}
	}
	for _, t := range c.Tokens {
		if t.Key == "" {
			return fmt.Errorf("token with empty key: %w", ErrInvalidToken)
		}
		if _, ok := tokenKinds[t.Kind]; !ok {
			return fmt.Errorf("token %q kind %q: %w", t.Key, t.Kind, ErrInvalidToken)
		}
	}
	return nil
}

// TokenRegistry builds the vocabulary this configuration describes.
func (c *Config) TokenRegistry() (*token.Registry, error) {
	custom := token.Customization{DisableActions: c.Aliases.Disabled}
	for _, t := range c.Tokens {
		custom.Extra = append(custom.Extra, &token.Token{
			Key:               t.Key,
			Kind:              tokenKinds[t.Kind],
			ExpectsCharArg:    t.CharArg,
			LinewiseIfDoubled: t.Doubleable,
		})
	}
	reg, err := token.BuildRegistry(custom)
	if err != nil {
		return nil, fmt.Errorf("building token registry: %w", err)
	}
	return reg, nil
}

// DefaultRegister returns the configured default register name.
func (c *Config) DefaultRegister() key.Key {
	if c.Registers.Default == "" {
		return `"`
	}
	return key.Key(c.Registers.Default)
}
