package interp

import (
	"github.com/dshills/modal/key"
	"github.com/dshills/modal/parse"
)

// MotionOpts carries the per-invocation inputs a motion implementation may
// need beyond cursor, lines, and count. The executor fills the fields the
// motion variant calls for.
type MotionOpts struct {
	// Char is the literal for find/till motions.
	Char key.Key

	// Pattern and Direction drive search motions; for search repeats the
	// executor resolves them from the session before the call.
	Pattern   string
	Direction parse.SearchDirection

	// MarkStyle and Mark serve mark-jump motions. Mark looks names up in
	// the session.
	MarkStyle parse.MarkStyle
	Mark      func(name key.Key) (Position, bool)

	// TabSize is the host's tab width.
	TabSize int
}

// Motion computes a cursor destination. Implementations fill the range's
// positions only; the executor applies the classifier's kind and
// inclusiveness afterwards. False means the motion cannot resolve
// (pattern not found, mark unset, already at the edge with no count left).
type Motion interface {
	Calculate(cursor Position, lines []string, count int, opts MotionOpts) (Range, bool)
}

// MotionFunc adapts a function to Motion.
type MotionFunc func(cursor Position, lines []string, count int, opts MotionOpts) (Range, bool)

// Calculate implements Motion.
func (f MotionFunc) Calculate(cursor Position, lines []string, count int, opts MotionOpts) (Range, bool) {
	return f(cursor, lines, count, opts)
}

// OpResult is what an operator hands back to the executor.
type OpResult struct {
	// Text is the text the operator captured (deleted or yanked). The
	// executor writes it to the command's register.
	Text string

	// Captured reports that Text holds the range's content, even when
	// that content is empty. Operators that never capture (indent,
	// format, case) leave it false so registers stay untouched.
	Captured bool

	// EntersInsert asks the executor to transition to insert mode.
	EntersInsert bool
}

// Operator mutates the editing surface over a resolved range.
type Operator interface {
	Execute(r Range, ctx EditorContext) (OpResult, error)
}

// OperatorFunc adapts a function to Operator.
type OperatorFunc func(r Range, ctx EditorContext) (OpResult, error)

// Execute implements Operator.
func (f OperatorFunc) Execute(r Range, ctx EditorContext) (OpResult, error) {
	return f(r, ctx)
}

// TextObject computes the span of a semantic object containing the cursor.
// False means the cursor is not inside any instance of the object.
type TextObject interface {
	Calculate(cursor Position, lines []string, mode parse.ObjectMode) (Range, bool)
}

// TextObjectFunc adapts a function to TextObject.
type TextObjectFunc func(cursor Position, lines []string, mode parse.ObjectMode) (Range, bool)

// Calculate implements TextObject.
func (f TextObjectFunc) Calculate(cursor Position, lines []string, mode parse.ObjectMode) (Range, bool) {
	return f(cursor, lines, mode)
}

// ActionContext is the execution context handed to actions.
type ActionContext struct {
	// Editor is the editing surface.
	Editor EditorContext

	// Session is the interpreter session (registers, marks, mode).
	Session *Session

	// Count is the effective count. For per-repetition actions the
	// executor loops and passes 1.
	Count int

	// Char is the literal argument for char-consuming actions.
	Char key.Key

	// Register is the command's register name.
	Register key.Key
}

// ActionResult is what an action hands back to the executor.
type ActionResult struct {
	// Text is captured text (deleted characters). The executor
	// accumulates it across per-repetition loops and writes the
	// command's register once.
	Text string

	// Prepend means Text accumulates leftwards (backward deletes).
	Prepend bool

	// EntersInsert asks the executor to transition to insert mode.
	EntersInsert bool
}

// Action is a self-contained command implementation.
type Action interface {
	Execute(ctx ActionContext) (ActionResult, error)
}

// ActionFunc adapts a function to Action.
type ActionFunc func(ctx ActionContext) (ActionResult, error)

// Execute implements Action.
func (f ActionFunc) Execute(ctx ActionContext) (ActionResult, error) {
	return f(ctx)
}

// Registries is the keyed lookup contract the executor consumes. The
// interpreter is agnostic to registry contents; a nil return means the
// key has no implementation. Registries must be immutable once the
// interpreter starts consuming them.
type Registries interface {
	Motion(key string) Motion
	Operator(key string) Operator
	TextObject(key string) TextObject
	Action(key string) Action
}
