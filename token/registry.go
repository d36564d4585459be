package token

import "fmt"

// Registry groups the five dictionaries the grammar consults. Build it
// once, register tokens, then Freeze it; the grammar treats a frozen
// registry as immutable for the process lifetime.
type Registry struct {
	operators   *Trie
	actions     *Trie
	motions     *Trie
	forcedKinds *Trie
	textObjects *Trie
	frozen      bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		operators:   NewTrie(),
		actions:     NewTrie(),
		motions:     NewTrie(),
		forcedKinds: NewTrie(),
		textObjects: NewTrie(),
	}
}

// Freeze makes the registry immutable. Registration afterwards panics.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether the registry is frozen.
func (r *Registry) Frozen() bool {
	return r.frozen
}

func (r *Registry) add(t *Trie, tok *Token) error {
	if r.frozen {
		panic(ErrFrozen)
	}
	return t.Add(tok)
}

// AddOperator registers an operator token.
func (r *Registry) AddOperator(tok *Token) error {
	tok.Kind = KindOperator
	return r.add(r.operators, tok)
}

// AddAction registers an action token.
func (r *Registry) AddAction(tok *Token) error {
	tok.Kind = KindAction
	return r.add(r.actions, tok)
}

// AddMotion registers a motion token.
func (r *Registry) AddMotion(tok *Token) error {
	tok.Kind = KindMotion
	return r.add(r.motions, tok)
}

// AddForcedKind registers a forced-kind prefix token.
func (r *Registry) AddForcedKind(tok *Token) error {
	tok.Kind = KindForcedKind
	return r.add(r.forcedKinds, tok)
}

// AddTextObject registers a text-object key token.
func (r *Registry) AddTextObject(tok *Token) error {
	tok.Kind = KindTextObject
	return r.add(r.textObjects, tok)
}

// Operators returns the operator dictionary.
func (r *Registry) Operators() *Trie { return r.operators }

// Actions returns the action dictionary.
func (r *Registry) Actions() *Trie { return r.actions }

// Motions returns the motion dictionary.
func (r *Registry) Motions() *Trie { return r.motions }

// ForcedKinds returns the forced-kind dictionary.
func (r *Registry) ForcedKinds() *Trie { return r.forcedKinds }

// TextObjects returns the text-object dictionary.
func (r *Registry) TextObjects() *Trie { return r.textObjects }

// Standard operator keys.
const (
	OpDelete      = "d"
	OpChange      = "c"
	OpYank        = "y"
	OpIndentRight = ">"
	OpIndentLeft  = "<"
	OpFormat      = "="
	OpLowercase   = "gu"
	OpUppercase   = "gU"
	OpToggleCase  = "g~"
)

// Standard action keys.
const (
	ActInsert        = "i"
	ActAppend        = "a"
	ActAppendEOL     = "A"
	ActInsertBOL     = "I"
	ActOpenBelow     = "o"
	ActOpenAbove     = "O"
	ActSubstitute    = "s"
	ActDeleteChar    = "x"
	ActDeleteBack    = "X"
	ActReplaceChar   = "r"
	ActPutAfter      = "p"
	ActPutBefore     = "P"
	ActUndo          = "u"
	ActRedo          = "<C-r>"
	ActRepeat        = "."
	ActSetMark       = "m"
	ActRecordMacro   = "q"
	ActPlayMacro     = "@"
	ActDeleteToEOL   = "D"
	ActChangeToEOL   = "C"
	ActSubstituteLn  = "S"
	ActYankLine      = "Y"
)

// Standard forced-kind prefix keys.
const (
	ForceChar  = "v"
	ForceLine  = "V"
	ForceBlock = "<C-v>"
)

// DefaultRegistry builds the standard Vim vocabulary and freezes it.
func DefaultRegistry() *Registry {
	r, err := BuildRegistry(Customization{})
	if err != nil {
		panic(fmt.Sprintf("token: default registry: %v", err))
	}
	return r
}

// Customization adjusts the standard vocabulary before it freezes.
// Configuration layers use it to disable shortcuts or register extra keys.
type Customization struct {
	// DisableActions lists standard action keys to leave unregistered.
	DisableActions []string

	// Extra tokens are added after the standard tables; each token's
	// Kind selects the dictionary it joins.
	Extra []*Token
}

// BuildRegistry builds the standard vocabulary, applies the
// customization, and freezes the result.
func BuildRegistry(c Customization) (*Registry, error) {
	r := NewRegistry()
	disabled := make(map[string]bool, len(c.DisableActions))
	for _, k := range c.DisableActions {
		disabled[k] = true
	}

	operators := []*Token{
		{Key: OpDelete, LinewiseIfDoubled: true},
		{Key: OpChange, LinewiseIfDoubled: true},
		{Key: OpYank, LinewiseIfDoubled: true},
		{Key: OpIndentRight, LinewiseIfDoubled: true},
		{Key: OpIndentLeft, LinewiseIfDoubled: true},
		{Key: OpFormat, LinewiseIfDoubled: true},
		{Key: OpLowercase, LinewiseIfDoubled: true},
		{Key: OpUppercase, LinewiseIfDoubled: true},
		{Key: OpToggleCase, LinewiseIfDoubled: true},
	}

	actions := []*Token{
		{Key: ActInsert},
		{Key: ActAppend},
		{Key: ActAppendEOL},
		{Key: ActInsertBOL},
		{Key: ActOpenBelow},
		{Key: ActOpenAbove},
		{Key: ActSubstitute},
		{Key: ActDeleteChar},
		{Key: ActDeleteBack},
		{Key: ActReplaceChar, ExpectsCharArg: true},
		{Key: ActPutAfter},
		{Key: ActPutBefore},
		{Key: ActUndo},
		{Key: ActRedo},
		{Key: ActRepeat},
		{Key: ActSetMark, ExpectsCharArg: true},
		{Key: ActRecordMacro, ExpectsCharArg: true},
		{Key: ActPlayMacro, ExpectsCharArg: true},
		{Key: ActDeleteToEOL},
		{Key: ActChangeToEOL},
		{Key: ActSubstituteLn},
		{Key: ActYankLine},
	}

	motions := []*Token{
		{Key: "h"}, {Key: "l"}, {Key: "j"}, {Key: "k"},
		{Key: "w"}, {Key: "b"}, {Key: "e"},
		{Key: "W"}, {Key: "B"}, {Key: "E"},
		{Key: "0"}, {Key: "^"}, {Key: "$"},
		{Key: "G"}, {Key: "gg"}, {Key: "ge"}, {Key: "g_"},
		{Key: "{"}, {Key: "}"}, {Key: "("}, {Key: ")"}, {Key: "%"},
		{Key: "f", ExpectsCharArg: true},
		{Key: "F", ExpectsCharArg: true},
		{Key: "t", ExpectsCharArg: true},
		{Key: "T", ExpectsCharArg: true},
		{Key: "/"}, {Key: "?"}, {Key: "n"}, {Key: "N"},
		{Key: "'", ExpectsCharArg: true},
		{Key: "`", ExpectsCharArg: true},
	}

	forced := []*Token{
		{Key: ForceChar}, {Key: ForceLine}, {Key: ForceBlock},
	}

	textObjects := []*Token{
		{Key: "w"}, {Key: "W"}, {Key: "s"}, {Key: "p"},
		{Key: "b"}, {Key: "B"}, {Key: "t"},
		{Key: "("}, {Key: ")"}, {Key: "["}, {Key: "]"},
		{Key: "{"}, {Key: "}"}, {Key: "<"}, {Key: ">"},
		{Key: `"`}, {Key: "'"}, {Key: "`"},
	}

	for _, tok := range operators {
		if err := r.AddOperator(tok); err != nil {
			return nil, err
		}
	}
	for _, tok := range actions {
		if disabled[tok.Key] {
			continue
		}
		if err := r.AddAction(tok); err != nil {
			return nil, err
		}
	}
	for _, tok := range motions {
		if err := r.AddMotion(tok); err != nil {
			return nil, err
		}
	}
	for _, tok := range forced {
		if err := r.AddForcedKind(tok); err != nil {
			return nil, err
		}
	}
	for _, tok := range textObjects {
		if err := r.AddTextObject(tok); err != nil {
			return nil, err
		}
	}

	for _, tok := range c.Extra {
		var err error
		switch tok.Kind {
		case KindOperator:
			err = r.AddOperator(tok)
		case KindAction:
			err = r.AddAction(tok)
		case KindMotion:
			err = r.AddMotion(tok)
		case KindTextObject:
			err = r.AddTextObject(tok)
		case KindForcedKind:
			err = r.AddForcedKind(tok)
		default:
			err = fmt.Errorf("unknown token kind %d", tok.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("extra token %q: %w", tok.Key, err)
		}
	}

	r.Freeze()
	return r, nil
}
