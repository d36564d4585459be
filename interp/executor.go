package interp

import (
	"log/slog"

	"github.com/dshills/modal/classify"
	"github.com/dshills/modal/key"
	"github.com/dshills/modal/normalize"
	"github.com/dshills/modal/parse"
	"github.com/dshills/modal/register"
	"github.com/dshills/modal/token"
)

// maxRepeatDepth bounds dot-repeat recursion. Natural depth is one; the
// guard defends against a stored command that is itself a repeat.
const maxRepeatDepth = 1

// maxMacroDepth bounds macro playback nesting: a macro may play other
// macros, but a slot that reaches itself must terminate.
const maxMacroDepth = 10

// perRepetition lists the actions the executor loops count times,
// accumulating side data per iteration. Everything else receives the
// count and interprets it itself.
var perRepetition = map[string]bool{
	token.ActPutAfter:    true,
	token.ActPutBefore:   true,
	token.ActDeleteChar:  true,
	token.ActDeleteBack:  true,
	token.ActReplaceChar: true,
	token.ActUndo:        true,
	token.ActRedo:        true,
}

// Interpreter executes normalized commands against an EditorContext.
type Interpreter struct {
	tokens     *token.Registry
	registries Registries
	session    *Session
	log        *slog.Logger

	repeatDepth int
	macroDepth  int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithSession supplies a session; by default the interpreter creates one.
func WithSession(s *Session) Option {
	return func(in *Interpreter) {
		if s != nil {
			in.session = s
		}
	}
}

// WithLogger supplies the logger for the downstream-defect guard.
func WithLogger(l *slog.Logger) Option {
	return func(in *Interpreter) {
		if l != nil {
			in.log = l
		}
	}
}

// New creates an interpreter over a frozen token registry and the host's
// implementation registries.
func New(tokens *token.Registry, registries Registries, opts ...Option) *Interpreter {
	in := &Interpreter{
		tokens:     tokens,
		registries: registries,
		session:    NewSession(),
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Session returns the interpreter's session.
func (in *Interpreter) Session() *Session { return in.session }

// Parse interprets the full accumulated keystroke sequence. Pure;
// callable with the same sequence any number of times.
func (in *Interpreter) Parse(keys key.Sequence) parse.Result {
	return parse.Parse(in.tokens, keys)
}

// CommandParseStatus tells the driver whether to keep buffering, prompt
// for a literal character, or reset on error.
func (in *Interpreter) CommandParseStatus(keys key.Sequence) parse.Status {
	return parse.Parse(in.tokens, keys).Status
}

// HandleKey is the per-keystroke driver loop: accumulate, re-parse,
// execute on completion, reset on completion or error. Escape cancels the
// pending sequence. The flag is false when the sequence was invalid or a
// completed command failed to execute, so drivers can signal the failure.
//
// During a macro capture every keystroke is recorded, except that a bare
// record key with nothing pending stops the capture instead of starting a
// command. Keystrokes replayed from a macro are not re-recorded.
func (in *Interpreter) HandleKey(k key.Key, ed EditorContext) (parse.Status, bool) {
	if rec := in.session.Macros(); in.macroDepth == 0 && rec.IsRecording() {
		if k == key.Key(token.ActRecordMacro) && len(in.session.Pending()) == 0 {
			rec.Stop()
			return parse.StatusComplete, true
		}
		rec.Record(k)
	}

	if k == key.Escape {
		in.session.ResetPending()
		return parse.StatusIncomplete, true
	}

	in.session.AppendPending(k)
	res := in.Parse(in.session.Pending())
	switch res.Status {
	case parse.StatusComplete:
		in.session.ResetPending()
		return res.Status, in.Execute(res.Command, ed)
	case parse.StatusInvalid:
		in.session.ResetPending()
		return res.Status, false
	}
	return res.Status, true
}

// Execute normalizes and runs a complete parsed command.
func (in *Interpreter) Execute(cmd *parse.Command, ed EditorContext) bool {
	n, err := normalize.Normalize(cmd)
	if err != nil {
		in.log.Error("normalize failed", "error", err)
		return false
	}
	return in.ExecuteAST(n, ed)
}

// ExecuteAST runs a normalized command. It returns false on any semantic
// or runtime failure: unresolved targets, empty registers on put,
// unregistered keys, or a panic from a downstream registry
// implementation. Failures never partially mutate the buffer and never
// corrupt dot-repeat state.
func (in *Interpreter) ExecuteAST(cmd *normalize.Command, ed EditorContext) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			in.log.Error("registry implementation panicked",
				"panic", r,
				"buffer", ed.ActiveBufferID(),
			)
			ok = false
		}
	}()

	if cmd == nil || cmd.AST == nil || ed == nil {
		return false
	}

	switch cmd.AST.Kind {
	case parse.CommandMotion:
		ok = in.execMotion(cmd, ed)
	case parse.CommandOperator:
		ok = in.execOperator(cmd, ed)
	case parse.CommandAction:
		ok = in.execAction(cmd, ed)
	default:
		return false
	}

	// Record for dot-repeat only after a successful, repeatable run.
	if ok && cmd.Repeatable {
		in.session.SetLastRepeatableCommand(cmd.Clone())
	}
	return ok
}

// execMotion moves the cursor to the resolved destination. No mutation.
func (in *Interpreter) execMotion(cmd *normalize.Command, ed EditorContext) bool {
	rng, ok := in.resolveMotion(cmd.AST.Motion, parse.ForcedNone, cmd.Count, ed)
	if !ok {
		return false
	}
	ed.SetCursorPosition(rng.Target())
	return true
}

// execOperator resolves the target to a range and applies the operator.
// An unresolved target aborts as a no-op.
func (in *Interpreter) execOperator(cmd *normalize.Command, ed EditorContext) bool {
	ast := cmd.AST
	op := in.registries.Operator(ast.Operator)
	if op == nil {
		in.log.Debug("unregistered operator", "key", ast.Operator, "error", ErrNoOperator)
		return false
	}

	var rng Range
	var ok bool
	switch {
	case ast.Doubled:
		rng = currentLines(ed, cmd.Count)
		ok = true
	case ast.Target == nil:
		return false
	case ast.Target.Kind == parse.TargetTextObject:
		rng, ok = in.resolveTextObject(ast.Target, ed)
	default:
		rng, ok = in.resolveMotion(ast.Target.Motion, ast.Target.Forced, cmd.Count, ed)
	}
	if !ok {
		return false
	}

	res, err := op.Execute(rng, ed)
	if err != nil {
		in.log.Debug("operator failed", "key", ast.Operator, "error", err)
		return false
	}

	if res.Captured {
		in.session.SetRegisterContent(ast.Register, res.Text, registerType(rng.Kind))
	}
	if res.EntersInsert {
		in.session.SetMode(ModeInsert)
	}
	return true
}

// execAction dispatches a self-contained command. Repeat is intercepted
// here: it replays the stored command through this executor's own entry
// point.
func (in *Interpreter) execAction(cmd *normalize.Command, ed EditorContext) bool {
	ast := cmd.AST
	switch ast.Action {
	case token.ActRepeat:
		return in.repeatLast(ed)
	case token.ActRecordMacro:
		return in.startRecording(ast.Char)
	case token.ActPlayMacro:
		return in.playMacro(ast.Char, cmd.Count, ed)
	}

	act := in.registries.Action(ast.Action)
	if act == nil {
		in.log.Debug("unregistered action", "key", ast.Action, "error", ErrNoAction)
		return false
	}

	actx := ActionContext{
		Editor:   ed,
		Session:  in.session,
		Count:    cmd.Count,
		Char:     ast.Char,
		Register: ast.Register,
	}

	if perRepetition[ast.Action] {
		return in.runRepeated(act, actx)
	}

	res, err := act.Execute(actx)
	if err != nil {
		in.log.Debug("action failed", "key", ast.Action, "error", err)
		return false
	}
	if res.Text != "" {
		in.session.SetRegisterContent(ast.Register, res.Text, register.Charwise)
	}
	if res.EntersInsert {
		in.session.SetMode(ModeInsert)
	}
	return true
}

// runRepeated loops a per-repetition action, concatenating captured text
// in the action's direction and writing the register once. A failure on
// the first iteration fails the command; a later failure stops the loop
// with what succeeded kept.
func (in *Interpreter) runRepeated(act Action, actx ActionContext) bool {
	count := actx.Count
	actx.Count = 1

	var captured string
	var entersInsert bool
	for i := 0; i < count; i++ {
		res, err := act.Execute(actx)
		if err != nil {
			if i == 0 {
				return false
			}
			break
		}
		if res.Prepend {
			captured = res.Text + captured
		} else {
			captured += res.Text
		}
		entersInsert = entersInsert || res.EntersInsert
	}

	if captured != "" {
		in.session.SetRegisterContent(actx.Register, captured, register.Charwise)
	}
	if entersInsert {
		in.session.SetMode(ModeInsert)
	}
	return true
}

// repeatLast replays the stored repeatable command against the current
// editor state. The depth guard keeps a defective stored command from
// recursing.
func (in *Interpreter) repeatLast(ed EditorContext) bool {
	last := in.session.LastRepeatableCommand()
	if last == nil {
		return false
	}
	if in.repeatDepth >= maxRepeatDepth {
		in.log.Warn("suppressed recursive dot-repeat", "error", ErrRepeatDepth)
		return false
	}

	in.repeatDepth++
	defer func() { in.repeatDepth-- }()
	return in.ExecuteAST(last.Clone(), ed)
}

// startRecording opens a macro capture on the named slot. The keystrokes
// that spelled the command itself are not part of the capture.
func (in *Interpreter) startRecording(slot key.Key) bool {
	if err := in.session.Macros().Start(slot); err != nil {
		in.log.Debug("macro record refused", "slot", slot, "error", err)
		return false
	}
	return true
}

// playMacro replays a recorded slot count times through the normal
// keystroke path. The play key itself names the previous slot. Playback
// stops at the first failed command; the depth guard terminates a slot
// that reaches itself.
func (in *Interpreter) playMacro(slot key.Key, count int, ed EditorContext) bool {
	rec := in.session.Macros()
	if slot == key.Key(token.ActPlayMacro) {
		prev, ok := rec.LastPlayed()
		if !ok {
			return false
		}
		slot = prev
	}

	keys, ok := rec.Get(slot)
	if !ok || len(keys) == 0 {
		in.log.Debug("empty macro slot", "slot", slot)
		return false
	}
	if in.macroDepth >= maxMacroDepth {
		in.log.Warn("suppressed nested macro playback", "slot", slot, "error", ErrMacroDepth)
		return false
	}

	in.macroDepth++
	defer func() { in.macroDepth-- }()
	for i := 0; i < count; i++ {
		for _, k := range keys {
			if _, ok := in.HandleKey(k, ed); !ok {
				return false
			}
		}
	}
	rec.SetLastPlayed(slot)
	return true
}

// resolveMotion runs a motion implementation and stamps the classifier's
// verdict onto the resulting range.
func (in *Interpreter) resolveMotion(m *parse.Motion, forced parse.ForcedKind, count int, ed EditorContext) (Range, bool) {
	if m == nil {
		return Range{}, false
	}
	impl := in.registries.Motion(m.Key)
	if impl == nil {
		in.log.Debug("unregistered motion", "key", m.Key, "error", ErrNoMotion)
		return Range{}, false
	}

	opts := MotionOpts{TabSize: ed.TabSize()}
	switch m.Kind {
	case parse.MotionChar:
		opts.Char = m.Char
	case parse.MotionSearch:
		opts.Pattern = m.Pattern
		opts.Direction = m.Direction
	case parse.MotionSearchRepeat:
		pattern, dir, ok := in.session.LastSearch()
		if !ok {
			return Range{}, false
		}
		if m.Key == "N" {
			dir = oppositeDirection(dir)
		}
		opts.Pattern = pattern
		opts.Direction = dir
	case parse.MotionMark:
		opts.MarkStyle = m.Style
		ms := in.session
		opts.Mark = func(name key.Key) (Position, bool) { return ms.Mark(name) }
		// The motion node carries the mark name as its literal.
		opts.Char = m.Mark
	}

	rng, ok := impl.Calculate(ed.Cursor(), ed.Lines(), count, opts)
	if !ok {
		return Range{}, false
	}

	cls := classify.Resolve(m, forced)
	rng.Kind = cls.Kind
	rng.Inclusive = cls.Inclusive

	if m.Kind == parse.MotionSearch {
		in.session.SetLastSearch(m.Pattern, m.Direction)
	}
	return rng, true
}

// resolveTextObject runs a text-object implementation, applying any
// forced-kind override to the resulting range.
func (in *Interpreter) resolveTextObject(t *parse.Target, ed EditorContext) (Range, bool) {
	impl := in.registries.TextObject(t.Object)
	if impl == nil {
		in.log.Debug("unregistered text object", "key", t.Object, "error", ErrNoTextObject)
		return Range{}, false
	}
	rng, ok := impl.Calculate(ed.Cursor(), ed.Lines(), t.Mode)
	if !ok {
		return Range{}, false
	}
	switch t.Forced {
	case parse.ForcedChar:
		rng.Kind = classify.Charwise
	case parse.ForcedLine:
		rng.Kind = classify.Linewise
	case parse.ForcedBlock:
		rng.Kind = classify.Blockwise
	}
	return rng, true
}

// currentLines is the range of a doubled operator: count whole lines from
// the cursor line, always linewise.
func currentLines(ed EditorContext, count int) Range {
	lines := ed.Lines()
	start := ed.Cursor().Line
	end := start + count - 1
	if end >= len(lines) {
		end = len(lines) - 1
	}
	endCol := 0
	if end >= 0 && end < len(lines) && len(lines[end]) > 0 {
		endCol = len(lines[end]) - 1
	}
	return Range{
		Start:     Position{Line: start},
		End:       Position{Line: end, Col: endCol},
		Kind:      classify.Linewise,
		Inclusive: true,
	}
}

func registerType(kind classify.Kind) register.Type {
	switch kind {
	case classify.Linewise:
		return register.Linewise
	case classify.Blockwise:
		return register.Blockwise
	default:
		return register.Charwise
	}
}

func oppositeDirection(d parse.SearchDirection) parse.SearchDirection {
	if d == parse.SearchForward {
		return parse.SearchBackward
	}
	return parse.SearchForward
}
