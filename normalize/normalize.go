package normalize

import (
	"fmt"
	"math"

	"github.com/dshills/modal/key"
	"github.com/dshills/modal/parse"
	"github.com/dshills/modal/token"
)

// Unnamed is the default register name.
const Unnamed key.Key = `"`

// Command is the canonical executable form of a parsed command.
type Command struct {
	// AST is the alias-expanded command with the register defaulted.
	// It is a private clone; callers may retain it.
	AST *parse.Command

	// Count is the folded effective count (always ≥ 1).
	Count int

	// Repeatable marks commands dot-repeat may replay.
	Repeatable bool
}

// Clone returns a deep structural copy, as retained for dot-repeat.
func (c *Command) Clone() *Command {
	if c == nil {
		return nil
	}
	return &Command{AST: c.AST.Clone(), Count: c.Count, Repeatable: c.Repeatable}
}

// alias describes one single-letter shortcut's canonical expansion.
type alias struct {
	operator string
	motion   string // target motion key; "" means doubled operator
}

// aliases is the contract mapping for the four shortcuts.
var aliases = map[string]alias{
	token.ActDeleteToEOL:  {operator: token.OpDelete, motion: "$"},
	token.ActChangeToEOL:  {operator: token.OpChange, motion: "$"},
	token.ActSubstituteLn: {operator: token.OpChange},
	token.ActYankLine:     {operator: token.OpYank},
}

// mutatingOperators mutate buffer content or enter insert mode; yank
// qualifies because it writes registers.
var mutatingOperators = map[string]bool{
	token.OpDelete:      true,
	token.OpChange:      true,
	token.OpYank:        true,
	token.OpIndentRight: true,
	token.OpIndentLeft:  true,
	token.OpFormat:      true,
	token.OpLowercase:   true,
	token.OpUppercase:   true,
	token.OpToggleCase:  true,
}

// repeatableActions mutate the buffer, registers, or enter insert mode.
// Undo, redo, repeat itself, and the macro keys are deliberately absent:
// repeating them would recurse or fight the history the host owns.
var repeatableActions = map[string]bool{
	token.ActInsert:      true,
	token.ActAppend:      true,
	token.ActAppendEOL:   true,
	token.ActInsertBOL:   true,
	token.ActOpenBelow:   true,
	token.ActOpenAbove:   true,
	token.ActSubstitute:  true,
	token.ActDeleteChar:  true,
	token.ActDeleteBack:  true,
	token.ActReplaceChar: true,
	token.ActPutAfter:    true,
	token.ActPutBefore:   true,
}

// Normalize produces the canonical form of a parsed command. The input is
// not modified.
func Normalize(cmd *parse.Command) (*Command, error) {
	if cmd == nil {
		return nil, ErrNilCommand
	}

	ast := cmd.Clone()
	if ast.Register == "" {
		ast.Register = Unnamed
	}

	if ast.Kind == parse.CommandAction {
		if a, ok := aliases[ast.Action]; ok {
			expandAlias(ast, a)
		}
	}

	out := &Command{AST: ast}

	switch ast.Kind {
	case parse.CommandOperator:
		out.Count = foldCounts(ast.Count, ast.CountAfter)
		out.Repeatable = mutatingOperators[ast.Operator]
	case parse.CommandAction:
		out.Count = effective(ast.Count)
		out.Repeatable = repeatableActions[ast.Action]
	case parse.CommandMotion:
		out.Count = effective(ast.Count)
	default:
		return nil, fmt.Errorf("command kind %d: %w", ast.Kind, ErrUnknownKind)
	}

	return out, nil
}

// expandAlias rewrites a shortcut action into the operator invocation it
// stands for, keeping the action's count as the before-count.
func expandAlias(ast *parse.Command, a alias) {
	ast.Kind = parse.CommandOperator
	ast.Action = ""
	ast.Char = ""
	ast.Operator = a.operator
	if a.motion == "" {
		ast.Doubled = true
		return
	}
	ast.Target = &parse.Target{
		Kind:   parse.TargetMotion,
		Motion: &parse.Motion{Kind: parse.MotionSimple, Key: a.motion},
	}
}

// foldCounts multiplies before- and after-counts, defaulting each missing
// count to 1, with the same overflow cap the count parser applies.
func foldCounts(before, after int) int {
	b, a := effective(before), effective(after)
	if b > math.MaxInt/a {
		return math.MaxInt / 10
	}
	return b * a
}

func effective(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}
