package parse

import (
	"math"
	"strings"

	"github.com/dshills/modal/key"
	"github.com/dshills/modal/token"
)

// Parse interprets the full accumulated keystroke sequence against the
// registry's dictionaries. It is pure: identical input yields an identical
// result, and no state survives between calls.
func Parse(reg *token.Registry, keys key.Sequence) Result {
	if len(keys) == 0 {
		return incomplete()
	}
	p := &pass{reg: reg, keys: keys}
	return p.command()
}

// pass is one parsing pass over a fixed sequence. Discarded when done.
type pass struct {
	reg  *token.Registry
	keys key.Sequence
	i    int
}

func (p *pass) done() bool {
	return p.i >= len(p.keys)
}

// command parses [Register][Count](Action | OperatorInvocation | Motion).
func (p *pass) command() Result {
	register, res, ok := p.register()
	if !ok {
		return res
	}

	count, res, ok := p.count()
	if !ok {
		return res
	}

	opM := p.reg.Operators().Match(p.keys, p.i)
	actM := p.reg.Actions().Match(p.keys, p.i)
	motM := p.reg.Motions().Match(p.keys, p.i)

	// A live prefix in any dictionary short-circuits the whole parse:
	// keystrokes arrive one at a time with no lookahead.
	if opM.State == token.MatchPartial || actM.State == token.MatchPartial || motM.State == token.MatchPartial {
		return incomplete()
	}

	switch {
	case opM.State == token.MatchComplete:
		return p.operatorInvocation(register, count, opM)
	case actM.State == token.MatchComplete:
		return p.action(register, count, actM)
	case motM.State == token.MatchComplete:
		return p.bareMotion(register, count)
	default:
		return invalid("unknown key " + string(p.keys[p.i]))
	}
}

// register parses an optional `"` name prefix. The bool is false when the
// caller should return the Result as-is.
func (p *pass) register() (key.Key, Result, bool) {
	if p.keys[p.i] != `"` {
		return "", Result{}, true
	}
	if p.i+1 >= len(p.keys) {
		return "", incomplete(), false
	}
	name := p.keys[p.i+1]
	if !validRegisterName(name) {
		return "", invalid("invalid register name " + string(name)), false
	}
	p.i += 2
	if p.done() {
		return "", incomplete(), false
	}
	return name, Result{}, true
}

// count parses an optional nonZeroDigit{digit} run. A count with nothing
// after it is an incomplete command.
func (p *pass) count() (int, Result, bool) {
	if p.done() || !p.keys[p.i].IsNonZeroDigit() {
		return 0, Result{}, true
	}
	n := 0
	for !p.done() && p.keys[p.i].IsDigit() {
		r, _ := p.keys[p.i].Rune()
		digit := int(r - '0')
		if n > (math.MaxInt-digit)/10 {
			n = math.MaxInt / 10
		} else {
			n = n*10 + digit
		}
		p.i++
	}
	if p.done() {
		return 0, incomplete(), false
	}
	return n, Result{}, true
}

// action parses a self-contained command, consuming a literal character
// argument when the token requires one.
func (p *pass) action(register key.Key, count int, m token.Match) Result {
	tok := m.Token
	p.i += m.Len

	var char key.Key
	if tok.ExpectsCharArg {
		if p.done() {
			purpose := CharForAction
			if tok.Key == token.ActSetMark {
				purpose = CharForMark
			}
			return needsChar(tok.Key, purpose)
		}
		char = p.keys[p.i]
		p.i++
	}

	if !p.done() {
		return invalid("trailing keys after action " + tok.Key)
	}

	return complete(&Command{
		Kind:     CommandAction,
		Register: register,
		Count:    count,
		Action:   tok.Key,
		Char:     char,
	})
}

// operatorInvocation parses Operator (Operator | [Count][ForcedKind](TextObject|Motion)).
func (p *pass) operatorInvocation(register key.Key, count int, m token.Match) Result {
	op := m.Token
	p.i += m.Len
	if p.done() {
		return incomplete()
	}

	// Doubling is checked before count, forced kind, and target. Both the
	// full re-match (dd, gugu) and the trailing-key shorthand for
	// multi-key operators (guu) complete linewise with no target.
	if op.LinewiseIfDoubled {
		m2 := p.reg.Operators().Match(p.keys, p.i)
		if m2.State == token.MatchPartial {
			return incomplete()
		}
		doubledLen := 0
		if m2.State == token.MatchComplete && m2.Token.Key == op.Key {
			doubledLen = m2.Len
		} else if m.Len > 1 && p.keys[p.i] == lastKeystroke(op) {
			doubledLen = 1
		}
		if doubledLen > 0 {
			p.i += doubledLen
			if !p.done() {
				return invalid("trailing keys after doubled operator " + op.Key)
			}
			return complete(&Command{
				Kind:     CommandOperator,
				Register: register,
				Count:    count,
				Operator: op.Key,
				Doubled:  true,
			})
		}
	}

	countAfter, res, ok := p.count()
	if !ok {
		return res
	}

	forced, res, ok := p.forcedKind()
	if !ok {
		return res
	}

	target, res, ok := p.target(forced)
	if !ok {
		return res
	}
	if !p.done() {
		return invalid("trailing keys after operator target")
	}

	return complete(&Command{
		Kind:       CommandOperator,
		Register:   register,
		Count:      count,
		Operator:   op.Key,
		CountAfter: countAfter,
		Target:     target,
	})
}

// forcedKind parses an optional classification-override prefix.
func (p *pass) forcedKind() (ForcedKind, Result, bool) {
	m := p.reg.ForcedKinds().Match(p.keys, p.i)
	switch m.State {
	case token.MatchPartial:
		return ForcedNone, incomplete(), false
	case token.MatchComplete:
		p.i += m.Len
		if p.done() {
			return ForcedNone, incomplete(), false
		}
		switch m.Token.Key {
		case token.ForceLine:
			return ForcedLine, Result{}, true
		case token.ForceBlock:
			return ForcedBlock, Result{}, true
		default:
			return ForcedChar, Result{}, true
		}
	default:
		return ForcedNone, Result{}, true
	}
}

// target parses (TextObject | Motion) for an operator.
func (p *pass) target(forced ForcedKind) (*Target, Result, bool) {
	if k := p.keys[p.i]; k == "i" || k == "a" {
		mode := ObjectInner
		if k == "a" {
			mode = ObjectAround
		}
		p.i++
		if p.done() {
			return nil, incomplete(), false
		}
		m := p.reg.TextObjects().Match(p.keys, p.i)
		switch m.State {
		case token.MatchPartial:
			return nil, incomplete(), false
		case token.MatchComplete:
			p.i += m.Len
			return &Target{
				Kind:   TargetTextObject,
				Mode:   mode,
				Object: m.Token.Key,
				Forced: forced,
			}, Result{}, true
		default:
			return nil, invalid("unknown text object " + string(p.keys[p.i])), false
		}
	}

	motion, res, ok := p.motion()
	if !ok {
		return nil, res, false
	}
	return &Target{Kind: TargetMotion, Motion: motion, Forced: forced}, Result{}, true
}

// bareMotion parses a motion command.
func (p *pass) bareMotion(register key.Key, count int) Result {
	motion, res, ok := p.motion()
	if !ok {
		return res
	}
	if !p.done() {
		return invalid("trailing keys after motion")
	}
	return complete(&Command{
		Kind:     CommandMotion,
		Register: register,
		Count:    count,
		Motion:   motion,
	})
}

// motion parses one motion node, including literal-character and
// search-pattern continuations.
func (p *pass) motion() (*Motion, Result, bool) {
	m := p.reg.Motions().Match(p.keys, p.i)
	switch m.State {
	case token.MatchPartial:
		return nil, incomplete(), false
	case token.MatchNone:
		return nil, invalid("unknown motion " + string(p.keys[p.i])), false
	}

	tok := m.Token
	p.i += m.Len

	switch {
	case tok.Key == "/" || tok.Key == "?":
		return p.searchMotion(tok)

	case tok.Key == "'" || tok.Key == "`":
		if p.done() {
			return nil, needsChar(tok.Key, CharForMark), false
		}
		style := MarkLine
		if tok.Key == "`" {
			style = MarkExact
		}
		mark := p.keys[p.i]
		p.i++
		return &Motion{Kind: MotionMark, Key: tok.Key, Style: style, Mark: mark}, Result{}, true

	case tok.ExpectsCharArg:
		if p.done() {
			return nil, needsChar(tok.Key, CharForMotion), false
		}
		char := p.keys[p.i]
		p.i++
		return &Motion{Kind: MotionChar, Key: tok.Key, Char: char}, Result{}, true

	case tok.Key == "n" || tok.Key == "N":
		return &Motion{Kind: MotionSearchRepeat, Key: tok.Key}, Result{}, true

	default:
		if seq := tok.Keys(); len(seq) > 1 {
			return &Motion{
				Kind: MotionPrefixed,
				Key:  tok.Key,
				Head: string(seq[0]),
				Tail: seq[1:].String(),
			}, Result{}, true
		}
		return &Motion{Kind: MotionSimple, Key: tok.Key}, Result{}, true
	}
}

// searchMotion consumes all remaining keystrokes up to the end-of-input
// sentinel as a raw pattern.
func (p *pass) searchMotion(tok *token.Token) (*Motion, Result, bool) {
	dir := SearchForward
	if tok.Key == "?" {
		dir = SearchBackward
	}

	var pattern strings.Builder
	for ; p.i < len(p.keys); p.i++ {
		if p.keys[p.i] == key.Enter {
			p.i++
			return &Motion{
				Kind:      MotionSearch,
				Key:       tok.Key,
				Direction: dir,
				Pattern:   pattern.String(),
			}, Result{}, true
		}
		pattern.WriteString(string(p.keys[p.i]))
	}
	return nil, incomplete(), false
}

// validRegisterName accepts the register names the store recognizes.
func validRegisterName(k key.Key) bool {
	r, ok := k.Rune()
	if !ok {
		return false
	}
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '"' || r == '-' || r == '_' || r == '.' || r == '+' || r == '*':
		return true
	default:
		return false
	}
}

// lastKeystroke returns the final keystroke of a token's spelling.
func lastKeystroke(tok *token.Token) key.Key {
	seq := tok.Keys()
	return seq[len(seq)-1]
}
