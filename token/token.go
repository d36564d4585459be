package token

import "github.com/dshills/modal/key"

// Kind categorizes tokens by the grammar role they play.
type Kind uint8

const (
	// KindOperator acts on a range produced by a target.
	KindOperator Kind = iota

	// KindMotion moves the cursor or bounds an operator.
	KindMotion

	// KindAction is a self-contained command (put, undo, mode change).
	KindAction

	// KindTextObject selects a semantic span after an i/a qualifier.
	KindTextObject

	// KindForcedKind overrides a motion's natural classification.
	KindForcedKind
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindOperator:
		return "operator"
	case KindMotion:
		return "motion"
	case KindAction:
		return "action"
	case KindTextObject:
		return "textObject"
	case KindForcedKind:
		return "forcedKind"
	default:
		return "unknown"
	}
}

// Token is one entry in a dictionary. Tokens are registered once and never
// mutated afterwards.
type Token struct {
	// Key is the token's spelling in key notation ("d", "gg", "<C-v>").
	Key string

	// Kind is the grammar role.
	Kind Kind

	// ExpectsCharArg marks tokens that consume exactly one following
	// keystroke verbatim (find/till/replace/mark-style).
	ExpectsCharArg bool

	// LinewiseIfDoubled marks operators that complete linewise when the
	// operator key repeats (dd, yy, cc).
	LinewiseIfDoubled bool
}

// Keys returns the token's spelling split into logical keystrokes.
func (t *Token) Keys() key.Sequence {
	return key.MustParse(t.Key)
}
