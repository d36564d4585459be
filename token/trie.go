package token

import (
	"fmt"

	"github.com/dshills/modal/key"
)

// MatchState is the outcome category of a trie walk.
type MatchState uint8

const (
	// MatchNone means no token can begin at the starting index.
	MatchNone MatchState = iota

	// MatchPartial means a valid non-terminal prefix consumed the rest of
	// the input; more keystrokes are needed.
	MatchPartial

	// MatchComplete means a terminal token was found.
	MatchComplete
)

// String returns the state name.
func (s MatchState) String() string {
	switch s {
	case MatchNone:
		return "none"
	case MatchPartial:
		return "partial"
	case MatchComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Match is the result of a trie walk.
type Match struct {
	// State categorizes the outcome.
	State MatchState

	// Token is the matched token when State is MatchComplete.
	Token *Token

	// Len is the number of keystrokes the token consumed.
	Len int
}

// node is one trie node. At most one terminal token per node; depth is
// bounded by the longest registered token.
type node struct {
	term     *Token
	children map[key.Key]*node
}

func newNode() *node {
	return &node{children: make(map[key.Key]*node)}
}

// Trie is a longest-match dictionary keyed per logical keystroke.
type Trie struct {
	root *node
	size int
}

// NewTrie creates an empty trie.
func NewTrie() *Trie {
	return &Trie{root: newNode()}
}

// Len returns the number of registered tokens.
func (t *Trie) Len() int {
	return t.size
}

// Add registers a token, inserting its spelling keystroke by keystroke.
// Duplicate keys are rejected: every key is unique within its dictionary.
func (t *Trie) Add(tok *Token) error {
	seq, err := key.Parse(tok.Key)
	if err != nil {
		return fmt.Errorf("token %q: %w", tok.Key, err)
	}
	if len(seq) == 0 {
		return fmt.Errorf("token with empty key: %w", ErrEmptyKey)
	}

	n := t.root
	for _, k := range seq {
		child, ok := n.children[k]
		if !ok {
			child = newNode()
			n.children[k] = child
		}
		n = child
	}
	if n.term != nil {
		return fmt.Errorf("token %q: %w", tok.Key, ErrDuplicateKey)
	}
	n.term = tok
	t.size++
	return nil
}

// Match walks edges from keys[index], keeps consuming while edges exist,
// and reports the longest terminal seen. A short token that prefixes a
// longer one resolves correctly: the walk only falls back to the last
// confirmed terminal when it dead-ends without a longer completion.
func (t *Trie) Match(keys key.Sequence, index int) Match {
	n := t.root
	var last *Token
	lastLen := 0
	consumed := 0

	for i := index; i < len(keys); i++ {
		child, ok := n.children[keys[i]]
		if !ok {
			break
		}
		n = child
		consumed++
		if n.term != nil {
			last = n.term
			lastLen = consumed
		}
	}

	switch {
	case last != nil:
		return Match{State: MatchComplete, Token: last, Len: lastLen}
	case consumed > 0 && index+consumed == len(keys):
		return Match{State: MatchPartial}
	default:
		return Match{State: MatchNone}
	}
}

// Lookup returns the token whose spelling is exactly keys (no prefixing),
// or nil.
func (t *Trie) Lookup(keys key.Sequence) *Token {
	n := t.root
	for _, k := range keys {
		child, ok := n.children[k]
		if !ok {
			return nil
		}
		n = child
	}
	return n.term
}
