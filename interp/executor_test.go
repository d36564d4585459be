package interp_test

import (
	"testing"

	"github.com/dshills/modal/builtin"
	"github.com/dshills/modal/interp"
	"github.com/dshills/modal/key"
	"github.com/dshills/modal/normalize"
	"github.com/dshills/modal/parse"
	"github.com/dshills/modal/register"
	"github.com/dshills/modal/token"
)

func newInterpreter() *interp.Interpreter {
	return interp.New(token.DefaultRegistry(), builtin.Default())
}

func feed(t *testing.T, in *interp.Interpreter, buf *interp.Buffer, input string) parse.Status {
	t.Helper()
	status, _ := feedOK(t, in, buf, input)
	return status
}

func feedOK(t *testing.T, in *interp.Interpreter, buf *interp.Buffer, input string) (parse.Status, bool) {
	t.Helper()
	var status parse.Status
	ok := true
	for _, k := range key.MustParse(input) {
		status, ok = in.HandleKey(k, buf)
	}
	return status, ok
}

func unnamed(t *testing.T, in *interp.Interpreter) register.Content {
	t.Helper()
	content, _ := in.Session().GetRegisterContent(register.Unnamed)
	return content
}

func TestDeleteWordsWithCount(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("one two three four")

	if status := feed(t, in, buf, "3dw"); status != parse.StatusComplete {
		t.Fatalf("status = %v, want complete", status)
	}
	if buf.Content() != "four" {
		t.Errorf("content = %q, want %q", buf.Content(), "four")
	}
	if got := unnamed(t, in); got.Text != "one two three " {
		t.Errorf("register = %q, want %q", got.Text, "one two three ")
	}
}

func TestChangeInnerWord(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("say hello world")
	buf.SetCursorPosition(interp.Position{Col: 6})

	feed(t, in, buf, "ciw")
	if buf.Content() != "say  world" {
		t.Errorf("content = %q, want %q", buf.Content(), "say  world")
	}
	if in.Session().Mode() != interp.ModeInsert {
		t.Error("change should leave the session in insert mode")
	}
	if got := unnamed(t, in); got.Text != "hello" {
		t.Errorf("register = %q, want %q", got.Text, "hello")
	}
}

func TestDeleteLineIsLinewise(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("first\nsecond\nthird")
	buf.SetCursorPosition(interp.Position{Line: 1})

	feed(t, in, buf, "dd")
	if buf.Content() != "first\nthird" {
		t.Errorf("content = %q", buf.Content())
	}
	got := unnamed(t, in)
	if got.Text != "second" || got.Type != register.Linewise {
		t.Errorf("register = %+v, want linewise %q", got, "second")
	}
}

func TestDeleteToEOLAliasFromColumnZero(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("stop")

	feed(t, in, buf, "D")
	if buf.Content() != "" {
		t.Errorf("content = %q, want empty line", buf.Content())
	}
	if got := unnamed(t, in); got.Text != "stop" {
		t.Errorf("register = %q, want %q", got.Text, "stop")
	}
}

func TestDoubledOperatorWithCount(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("a\nb\nc\nd")

	feed(t, in, buf, "2dd")
	if buf.Content() != "c\nd" {
		t.Errorf("content = %q, want %q", buf.Content(), "c\nd")
	}
	if got := unnamed(t, in); got.Text != "a\nb" {
		t.Errorf("register = %q, want %q", got.Text, "a\nb")
	}
}

func TestBareMotionMovesCursor(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("one two three")

	feed(t, in, buf, "2w")
	if buf.Cursor() != (interp.Position{Col: 8}) {
		t.Errorf("cursor = %+v, want col 8", buf.Cursor())
	}
	feed(t, in, buf, "b")
	if buf.Cursor() != (interp.Position{Col: 4}) {
		t.Errorf("cursor = %+v, want col 4 after b", buf.Cursor())
	}
}

func TestEscapeCancelsPending(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("text here")

	feed(t, in, buf, "2d")
	if len(in.Session().Pending()) == 0 {
		t.Fatal("expected pending keystrokes")
	}
	in.HandleKey(key.Escape, buf)
	if len(in.Session().Pending()) != 0 {
		t.Error("escape did not clear the pending sequence")
	}
	// The next command starts fresh.
	feed(t, in, buf, "dw")
	if buf.Content() != "here" {
		t.Errorf("content = %q, want %q", buf.Content(), "here")
	}
}

func TestInvalidSequenceResets(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("text")

	if status := feed(t, in, buf, "dq"); status != parse.StatusInvalid {
		t.Fatalf("status = %v, want invalid", status)
	}
	if len(in.Session().Pending()) != 0 {
		t.Error("invalid sequence did not reset pending keys")
	}
	if buf.Content() != "text" {
		t.Errorf("invalid sequence mutated the buffer: %q", buf.Content())
	}
}

func TestDotRepeatUsesCurrentCursor(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("abcdef")

	feed(t, in, buf, "x")
	if buf.Content() != "bcdef" {
		t.Fatalf("content = %q", buf.Content())
	}
	buf.SetCursorPosition(interp.Position{Col: 2})
	feed(t, in, buf, ".")
	if buf.Content() != "bcef" {
		t.Errorf("repeat at new cursor = %q, want %q", buf.Content(), "bcef")
	}
}

func TestDotRepeatReplaysOperator(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("one two three four five")

	feed(t, in, buf, "2dw")
	if buf.Content() != "three four five" {
		t.Fatalf("content = %q", buf.Content())
	}
	feed(t, in, buf, ".")
	if buf.Content() != "five" {
		t.Errorf("repeat = %q, want %q", buf.Content(), "five")
	}
}

func TestMotionsAreNotRecordedForRepeat(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("one two three")

	feed(t, in, buf, "x")
	feed(t, in, buf, "w")
	feed(t, in, buf, ".")
	// The repeat re-runs the delete, not the motion.
	if buf.Content() != "ne wo three" {
		t.Errorf("content = %q, want %q", buf.Content(), "ne wo three")
	}
}

func TestRepeatOfRepeatIsSuppressed(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("abc")

	// A stored command that is itself a repeat must not recurse.
	in.Session().SetLastRepeatableCommand(&normalize.Command{
		AST:   &parse.Command{Kind: parse.CommandAction, Action: token.ActRepeat, Register: register.Unnamed},
		Count: 1,
	})
	cmd := &normalize.Command{
		AST:   &parse.Command{Kind: parse.CommandAction, Action: token.ActRepeat, Register: register.Unnamed},
		Count: 1,
	}
	if in.ExecuteAST(cmd, buf) {
		t.Error("nested repeat should fail, not recurse")
	}
	if buf.Content() != "abc" {
		t.Errorf("buffer changed: %q", buf.Content())
	}
}

func TestRepeatWithNothingStored(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("abc")
	feed(t, in, buf, ".")
	if buf.Content() != "abc" {
		t.Errorf("repeat with no history mutated the buffer: %q", buf.Content())
	}
}

func TestPerRepetitionAccumulatesRegister(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("abcdef")

	feed(t, in, buf, "3x")
	if buf.Content() != "def" {
		t.Errorf("content = %q, want %q", buf.Content(), "def")
	}
	if got := unnamed(t, in); got.Text != "abc" {
		t.Errorf("register = %q, want accumulated %q", got.Text, "abc")
	}
}

func TestBackwardDeleteAccumulatesLeftwards(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("abcdef")
	buf.SetCursorPosition(interp.Position{Col: 4})

	feed(t, in, buf, "3X")
	if buf.Content() != "aef" {
		t.Errorf("content = %q, want %q", buf.Content(), "aef")
	}
	if got := unnamed(t, in); got.Text != "bcd" {
		t.Errorf("register = %q, want document-order %q", got.Text, "bcd")
	}
}

func TestPerRepetitionStopsAtEdge(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("ab")
	buf.SetCursorPosition(interp.Position{Col: 1})

	// The second X has nothing left to delete; the first keeps its effect.
	feed(t, in, buf, "3X")
	if buf.Content() != "b" {
		t.Errorf("content = %q, want %q", buf.Content(), "b")
	}
}

func TestYankAndPut(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("one\ntwo")

	feed(t, in, buf, "yy")
	if buf.Content() != "one\ntwo" {
		t.Fatalf("yank mutated the buffer: %q", buf.Content())
	}
	feed(t, in, buf, "p")
	if buf.Content() != "one\none\ntwo" {
		t.Errorf("content = %q, want %q", buf.Content(), "one\none\ntwo")
	}
}

func TestNamedRegisterRoundTrip(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("alpha beta")

	feed(t, in, buf, `"adw`)
	got, ok := in.Session().GetRegisterContent("a")
	if !ok || got.Text != "alpha " {
		t.Fatalf("register a = %+v", got)
	}

	// The unnamed register was not touched.
	if _, ok := in.Session().GetRegisterContent(register.Unnamed); ok {
		t.Error("named delete wrote the unnamed register")
	}

	feed(t, in, buf, `"ap`)
	if buf.Content() != "balpha eta" {
		t.Errorf("content = %q", buf.Content())
	}
}

func TestUppercaseRegisterAppends(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("one two three")

	feed(t, in, buf, `"adw`)
	feed(t, in, buf, `"Adw`)
	got, _ := in.Session().GetRegisterContent("a")
	if got.Text != "one two " {
		t.Errorf("register a = %q, want appended %q", got.Text, "one two ")
	}
}

func TestPutFromEmptyRegisterIsNoOp(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("keep")

	cmd := &normalize.Command{
		AST:   &parse.Command{Kind: parse.CommandAction, Action: token.ActPutAfter, Register: register.Unnamed},
		Count: 1,
	}
	if in.ExecuteAST(cmd, buf) {
		t.Error("put from an empty register should fail")
	}
	if buf.Content() != "keep" {
		t.Errorf("buffer changed: %q", buf.Content())
	}
}

func TestFailedTextObjectIsNoOp(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("no parens here")

	feed(t, in, buf, "di(")
	if buf.Content() != "no parens here" {
		t.Errorf("buffer changed: %q", buf.Content())
	}
	if _, ok := in.Session().GetRegisterContent(register.Unnamed); ok {
		t.Error("failed target wrote a register")
	}
}

func TestFailedCommandIsNotRecordedForRepeat(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("word (x)")

	feed(t, in, buf, "dw")
	feed(t, in, buf, "X") // fails: cursor is at column 0
	feed(t, in, buf, ".")
	if buf.Content() != "x)" {
		t.Errorf("content = %q, want %q from the repeated delete", buf.Content(), "x)")
	}
}

func TestSearchRecordsAndRepeats(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("alpha\nbeta\nalpha")

	feed(t, in, buf, "/alpha")
	in.HandleKey(key.Enter, buf)
	if buf.Cursor() != (interp.Position{Line: 2}) {
		t.Fatalf("cursor = %+v, want line 2", buf.Cursor())
	}

	// n continues forward (wrapping), N reverses.
	feed(t, in, buf, "n")
	if buf.Cursor() != (interp.Position{Line: 0}) {
		t.Errorf("n cursor = %+v, want line 0", buf.Cursor())
	}
	feed(t, in, buf, "N")
	if buf.Cursor() != (interp.Position{Line: 2}) {
		t.Errorf("N cursor = %+v, want line 2", buf.Cursor())
	}
}

func TestSearchRepeatWithoutHistoryFails(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("text")
	feed(t, in, buf, "n")
	if buf.Cursor() != (interp.Position{}) {
		t.Errorf("n with no search history moved the cursor to %+v", buf.Cursor())
	}
}

func TestMarkSetAndJump(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("  one\ntwo\nthree")
	buf.SetCursorPosition(interp.Position{Line: 0, Col: 4})

	feed(t, in, buf, "ma")
	buf.SetCursorPosition(interp.Position{Line: 2})

	feed(t, in, buf, "`a")
	if buf.Cursor() != (interp.Position{Line: 0, Col: 4}) {
		t.Errorf("backtick jump = %+v, want exact mark", buf.Cursor())
	}

	buf.SetCursorPosition(interp.Position{Line: 2})
	feed(t, in, buf, "'a")
	if buf.Cursor() != (interp.Position{Line: 0, Col: 2}) {
		t.Errorf("apostrophe jump = %+v, want first non-blank", buf.Cursor())
	}
}

func TestUndoRedoThroughInterpreter(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("hello world")

	feed(t, in, buf, "dw")
	if buf.Content() != "world" {
		t.Fatalf("content = %q", buf.Content())
	}
	feed(t, in, buf, "u")
	if buf.Content() != "hello world" {
		t.Errorf("undo content = %q", buf.Content())
	}
	feed(t, in, buf, "<C-r>")
	if buf.Content() != "world" {
		t.Errorf("redo content = %q", buf.Content())
	}
}

func TestForcedLinewiseDelete(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("one\ntwo\nthree")

	// dVj deletes whole lines even though j's span is charwise.
	feed(t, in, buf, "dVj")
	if buf.Content() != "three" {
		t.Errorf("content = %q, want %q", buf.Content(), "three")
	}
	if got := unnamed(t, in); got.Type != register.Linewise {
		t.Errorf("register type = %v, want linewise", got.Type)
	}
}

type panickingAction struct{}

func (panickingAction) Execute(interp.ActionContext) (interp.ActionResult, error) {
	panic("defective host implementation")
}

func TestRegistryPanicIsContained(t *testing.T) {
	r := builtin.NewRegistry()
	r.RegisterAction(token.ActInsert, panickingAction{})
	in := interp.New(token.DefaultRegistry(), r)
	buf := interp.NewBuffer("safe")

	cmd := &normalize.Command{
		AST:   &parse.Command{Kind: parse.CommandAction, Action: token.ActInsert, Register: register.Unnamed},
		Count: 1,
	}
	if in.ExecuteAST(cmd, buf) {
		t.Error("panicking action reported success")
	}
	if buf.Content() != "safe" {
		t.Errorf("buffer changed: %q", buf.Content())
	}
}

func TestHandleKeyReportsExecutionResult(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("ab")

	if status, ok := in.HandleKey("d", buf); status != parse.StatusIncomplete || !ok {
		t.Errorf("pending = %v, %v; want incomplete, true", status, ok)
	}
	if status, ok := in.HandleKey("q", buf); status != parse.StatusInvalid || ok {
		t.Errorf("invalid = %v, %v; want invalid, false", status, ok)
	}
	if status, ok := feedOK(t, in, buf, "x"); status != parse.StatusComplete || !ok {
		t.Errorf("success = %v, %v; want complete, true", status, ok)
	}
	// X at column 0 completes but has nothing to delete.
	if status, ok := feedOK(t, in, buf, "X"); status != parse.StatusComplete || ok {
		t.Errorf("failure = %v, %v; want complete, false", status, ok)
	}
}

func TestYankEmptyLineClearsStaleRegister(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("")

	in.Session().SetRegisterContent(register.Unnamed, "stale", register.Charwise)
	if status, ok := feedOK(t, in, buf, "yy"); status != parse.StatusComplete || !ok {
		t.Fatalf("status = %v, %v", status, ok)
	}
	if got, ok := in.Session().GetRegisterContent(register.Unnamed); ok {
		t.Errorf("register = %+v, want the stale content replaced", got)
	}
}

func TestIndentDoesNotTouchRegisters(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("line")

	in.Session().SetRegisterContent(register.Unnamed, "kept", register.Charwise)
	feed(t, in, buf, ">>")
	if got := unnamed(t, in); got.Text != "kept" {
		t.Errorf("register = %q, want %q", got.Text, "kept")
	}
}

func TestMacroRecordAndReplay(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("abcdef")

	if status, ok := feedOK(t, in, buf, "qa"); status != parse.StatusComplete || !ok {
		t.Fatalf("record start = %v, %v", status, ok)
	}
	feed(t, in, buf, "x")
	if status, ok := feedOK(t, in, buf, "q"); status != parse.StatusComplete || !ok {
		t.Fatalf("record stop = %v, %v", status, ok)
	}
	if buf.Content() != "bcdef" {
		t.Fatalf("content during recording = %q", buf.Content())
	}

	// The capture holds the command keys only, not the stop key.
	keys, ok := in.Session().Macros().Get("a")
	if !ok || keys.String() != "x" {
		t.Fatalf("macro a = %q, %v; want %q", keys.String(), ok, "x")
	}

	feed(t, in, buf, "@a")
	if buf.Content() != "cdef" {
		t.Errorf("replay content = %q, want %q", buf.Content(), "cdef")
	}
	feed(t, in, buf, "@@")
	if buf.Content() != "def" {
		t.Errorf("repeat-last content = %q, want %q", buf.Content(), "def")
	}
	feed(t, in, buf, "2@a")
	if buf.Content() != "f" {
		t.Errorf("counted replay content = %q, want %q", buf.Content(), "f")
	}
}

func TestMacroReplayedKeysAreNotReRecorded(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("abcdef")

	if err := in.Session().Macros().Set("a", key.MustParse("x")); err != nil {
		t.Fatal(err)
	}
	feed(t, in, buf, "qb")
	feed(t, in, buf, "@a")
	feed(t, in, buf, "q")

	keys, ok := in.Session().Macros().Get("b")
	if !ok || keys.String() != "@a" {
		t.Errorf("macro b = %q, %v; want the play keys, not their expansion", keys.String(), ok)
	}
}

func TestMacroEmptySlotFails(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("text")

	if status, ok := feedOK(t, in, buf, "@z"); status != parse.StatusComplete || ok {
		t.Errorf("status = %v, %v; want complete, false", status, ok)
	}
	if buf.Content() != "text" {
		t.Errorf("empty slot mutated the buffer: %q", buf.Content())
	}
}

func TestMacroPlaybackStopsOnFailedCommand(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("a")

	if err := in.Session().Macros().Set("a", key.MustParse("xx")); err != nil {
		t.Fatal(err)
	}
	// The second x has nothing to delete; the first keeps its effect.
	if _, ok := feedOK(t, in, buf, "@a"); ok {
		t.Error("playback with a failing command reported success")
	}
	if buf.Content() != "" {
		t.Errorf("content = %q, want empty line", buf.Content())
	}
}

func TestMacroSelfReferenceTerminates(t *testing.T) {
	in := newInterpreter()
	buf := interp.NewBuffer("text")

	if err := in.Session().Macros().Set("b", key.MustParse("@b")); err != nil {
		t.Fatal(err)
	}
	if _, ok := feedOK(t, in, buf, "@b"); ok {
		t.Error("self-referencing macro reported success")
	}
	if buf.Content() != "text" {
		t.Errorf("buffer changed: %q", buf.Content())
	}
}

func TestUnregisteredKeysFailCleanly(t *testing.T) {
	in := interp.New(token.DefaultRegistry(), builtin.NewRegistry())
	buf := interp.NewBuffer("text")

	feed(t, in, buf, "dw")
	if buf.Content() != "text" {
		t.Errorf("unregistered operator mutated the buffer: %q", buf.Content())
	}
}
