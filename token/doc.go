// Package token defines the command vocabulary and its longest-match
// dictionaries.
//
// Each dictionary is a trie keyed per logical keystroke. Matching walks
// edges from a starting index, remembers the most recent terminal token
// seen, and falls back to it if the walk dead-ends without a longer
// completion. A walk that exhausts the input on a live non-terminal prefix
// reports a partial match, which is how the grammar represents "awaiting
// more input" without lookahead.
//
// A Registry groups the five dictionaries the grammar consults (operators,
// actions, motions, forced-kind prefixes, text objects). Registries are
// built once at startup and frozen; registration after Freeze panics.
package token
