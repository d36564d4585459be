package parse

import "github.com/dshills/modal/key"

// CommandKind discriminates the command union.
type CommandKind uint8

const (
	// CommandAction is a self-contained command.
	CommandAction CommandKind = iota

	// CommandOperator is an operator applied to a target (or doubled).
	CommandOperator

	// CommandMotion is a bare cursor movement.
	CommandMotion
)

// String returns the kind name.
func (k CommandKind) String() string {
	switch k {
	case CommandAction:
		return "action"
	case CommandOperator:
		return "operator"
	case CommandMotion:
		return "motion"
	default:
		return "unknown"
	}
}

// Command is the parsed AST. Exactly one of the Action/Operator/Motion
// groups is populated, per Kind.
type Command struct {
	// Kind discriminates the union.
	Kind CommandKind

	// Register is the register name keystroke, or "" if unspecified.
	Register key.Key

	// Count is the leading count (0 means unspecified). For operator
	// commands this is the count before the operator.
	Count int

	// Action fields.

	// Action is the action token key.
	Action string

	// Char is the literal argument for char-consuming actions (r, m).
	Char key.Key

	// Operator fields.

	// Operator is the operator token key.
	Operator string

	// Doubled marks the linewise shorthand (dd, yy, guu).
	Doubled bool

	// CountAfter is the count between operator and target (0 = none).
	CountAfter int

	// Target is the operator's target; nil when Doubled.
	Target *Target

	// Motion field (bare motion commands).

	// Motion is the motion node.
	Motion *Motion
}

// Clone returns a deep structural copy. Retained clones back dot-repeat.
func (c *Command) Clone() *Command {
	if c == nil {
		return nil
	}
	out := *c
	out.Target = c.Target.clone()
	out.Motion = c.Motion.clone()
	return &out
}

// TargetKind discriminates the target union.
type TargetKind uint8

const (
	// TargetMotion bounds the operator with a motion.
	TargetMotion TargetKind = iota

	// TargetTextObject bounds the operator with a text object.
	TargetTextObject
)

// ObjectMode selects the inner or around variant of a text object.
type ObjectMode uint8

const (
	// ObjectInner selects the object without surrounding delimiters.
	ObjectInner ObjectMode = iota

	// ObjectAround includes surrounding delimiters or whitespace.
	ObjectAround
)

// String returns the mode name.
func (m ObjectMode) String() string {
	if m == ObjectAround {
		return "around"
	}
	return "inner"
}

// ForcedKind is an explicit override of a motion's natural classification.
type ForcedKind uint8

const (
	// ForcedNone applies the natural classification.
	ForcedNone ForcedKind = iota

	// ForcedChar forces characterwise.
	ForcedChar

	// ForcedLine forces linewise.
	ForcedLine

	// ForcedBlock forces blockwise.
	ForcedBlock
)

// String returns the forced-kind name.
func (f ForcedKind) String() string {
	switch f {
	case ForcedChar:
		return "char"
	case ForcedLine:
		return "line"
	case ForcedBlock:
		return "block"
	default:
		return "none"
	}
}

// Target is what an operator acts over.
type Target struct {
	// Kind discriminates the union.
	Kind TargetKind

	// Mode is inner/around for text objects.
	Mode ObjectMode

	// Object is the text-object token key.
	Object string

	// Motion is the target motion for TargetMotion.
	Motion *Motion

	// Forced overrides the motion's natural classification.
	Forced ForcedKind
}

func (t *Target) clone() *Target {
	if t == nil {
		return nil
	}
	out := *t
	out.Motion = t.Motion.clone()
	return &out
}

// MotionKind discriminates the motion union.
type MotionKind uint8

const (
	// MotionSimple is a plain single-token motion (w, $, }).
	MotionSimple MotionKind = iota

	// MotionChar is a character-find motion with its literal (f, F, t, T).
	MotionChar

	// MotionSearch is a pattern search (/, ?).
	MotionSearch

	// MotionSearchRepeat repeats the last search (n, N).
	MotionSearchRepeat

	// MotionMark jumps to a mark (', `).
	MotionMark

	// MotionPrefixed is a head+tail motion (gg, ge, g_).
	MotionPrefixed
)

// String returns the motion kind name.
func (k MotionKind) String() string {
	switch k {
	case MotionSimple:
		return "simple"
	case MotionChar:
		return "char"
	case MotionSearch:
		return "search"
	case MotionSearchRepeat:
		return "searchRepeat"
	case MotionMark:
		return "mark"
	case MotionPrefixed:
		return "prefixed"
	default:
		return "unknown"
	}
}

// SearchDirection orients a pattern search.
type SearchDirection uint8

const (
	// SearchForward searches toward the end of the buffer (/).
	SearchForward SearchDirection = iota

	// SearchBackward searches toward the start (?).
	SearchBackward
)

// String returns the direction name.
func (d SearchDirection) String() string {
	if d == SearchBackward {
		return "backward"
	}
	return "forward"
}

// MarkStyle selects mark-jump semantics.
type MarkStyle uint8

const (
	// MarkLine jumps to the mark's line (').
	MarkLine MarkStyle = iota

	// MarkExact jumps to the mark's exact position (`).
	MarkExact
)

// String returns the style name.
func (s MarkStyle) String() string {
	if s == MarkExact {
		return "exact"
	}
	return "line"
}

// Motion is the motion union. Key identifies the token for Simple, Char,
// and SearchRepeat variants; the remaining fields belong to one variant
// each, per Kind.
type Motion struct {
	// Kind discriminates the union.
	Kind MotionKind

	// Key is the motion token key.
	Key string

	// Char is the literal for MotionChar.
	Char key.Key

	// Direction and Pattern belong to MotionSearch.
	Direction SearchDirection
	Pattern   string

	// Style and Mark belong to MotionMark.
	Style MarkStyle
	Mark  key.Key

	// Head and Tail belong to MotionPrefixed.
	Head string
	Tail string
}

func (m *Motion) clone() *Motion {
	if m == nil {
		return nil
	}
	out := *m
	return &out
}
