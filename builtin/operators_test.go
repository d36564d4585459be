package builtin

import (
	"testing"

	"github.com/dshills/modal/classify"
	"github.com/dshills/modal/interp"
)

func runOperator(t *testing.T, name string, buf *interp.Buffer, rng interp.Range) interp.OpResult {
	t.Helper()
	op := Default().Operator(name)
	if op == nil {
		t.Fatalf("no operator registered for %q", name)
	}
	res, err := op.Execute(rng, buf)
	if err != nil {
		t.Fatalf("%s failed: %v", name, err)
	}
	return res
}

func charRange(start, end interp.Position, inclusive bool) interp.Range {
	return interp.Range{Start: start, End: end, Kind: classify.Charwise, Inclusive: inclusive}
}

func lineRange(start, end int) interp.Range {
	return interp.Range{
		Start:     interp.Position{Line: start},
		End:       interp.Position{Line: end},
		Kind:      classify.Linewise,
		Inclusive: true,
	}
}

func TestDeleteCharwise(t *testing.T) {
	buf := interp.NewBuffer("one two three four")

	res := runOperator(t, "d", buf, charRange(interp.Position{}, interp.Position{Col: 14}, false))
	if buf.Content() != "four" {
		t.Errorf("content = %q, want %q", buf.Content(), "four")
	}
	if res.Text != "one two three " {
		t.Errorf("captured = %q, want %q", res.Text, "one two three ")
	}
	if buf.Cursor() != (interp.Position{}) {
		t.Errorf("cursor = %+v, want origin", buf.Cursor())
	}
}

func TestDeleteInclusiveToLineEnd(t *testing.T) {
	buf := interp.NewBuffer("stop")

	res := runOperator(t, "d", buf, charRange(interp.Position{}, interp.Position{Col: 3}, true))
	if buf.Content() != "" {
		t.Errorf("content = %q, want empty line", buf.Content())
	}
	if res.Text != "stop" {
		t.Errorf("captured = %q, want %q", res.Text, "stop")
	}
}

func TestDeleteLinewise(t *testing.T) {
	buf := interp.NewBuffer("first\nsecond\nthird")
	buf.SetCursorPosition(interp.Position{Line: 1, Col: 3})

	res := runOperator(t, "d", buf, lineRange(1, 1))
	if buf.Content() != "first\nthird" {
		t.Errorf("content = %q, want %q", buf.Content(), "first\nthird")
	}
	if res.Text != "second" {
		t.Errorf("captured = %q, want %q", res.Text, "second")
	}
	if buf.Cursor().Line != 1 {
		t.Errorf("cursor line = %d, want 1", buf.Cursor().Line)
	}
}

func TestDeleteAllLinesLeavesEmptyBuffer(t *testing.T) {
	buf := interp.NewBuffer("only\nlines")
	runOperator(t, "d", buf, lineRange(0, 1))
	if buf.Content() != "" {
		t.Errorf("content = %q, want single empty line", buf.Content())
	}
}

func TestDeleteMultiLineCharwise(t *testing.T) {
	buf := interp.NewBuffer("alpha\nbeta\ngamma")

	runOperator(t, "d", buf, charRange(interp.Position{Col: 2}, interp.Position{Line: 2, Col: 1}, true))
	if buf.Content() != "almma" {
		t.Errorf("content = %q, want %q", buf.Content(), "almma")
	}
}

func TestChangeCharwiseEntersInsert(t *testing.T) {
	buf := interp.NewBuffer("say hello world")

	res := runOperator(t, "c", buf, charRange(interp.Position{Col: 4}, interp.Position{Col: 8}, true))
	if buf.Content() != "say  world" {
		t.Errorf("content = %q, want %q", buf.Content(), "say  world")
	}
	if res.Text != "hello" {
		t.Errorf("captured = %q, want %q", res.Text, "hello")
	}
	if !res.EntersInsert {
		t.Error("change should enter insert mode")
	}
}

func TestChangeLinewiseKeepsEmptyLine(t *testing.T) {
	buf := interp.NewBuffer("first\nsecond\nthird")

	res := runOperator(t, "c", buf, lineRange(1, 1))
	if buf.Content() != "first\n\nthird" {
		t.Errorf("content = %q, want %q", buf.Content(), "first\n\nthird")
	}
	if !res.EntersInsert {
		t.Error("change should enter insert mode")
	}
	if buf.Cursor() != (interp.Position{Line: 1}) {
		t.Errorf("cursor = %+v, want start of the emptied line", buf.Cursor())
	}
}

func TestYankLeavesBufferIntact(t *testing.T) {
	buf := interp.NewBuffer("keep me whole")
	buf.SetCursorPosition(interp.Position{Col: 5})

	res := runOperator(t, "y", buf, charRange(interp.Position{Col: 5}, interp.Position{Col: 6}, true))
	if buf.Content() != "keep me whole" {
		t.Errorf("yank mutated the buffer: %q", buf.Content())
	}
	if res.Text != "me" {
		t.Errorf("captured = %q, want %q", res.Text, "me")
	}
	if buf.Cursor() != (interp.Position{Col: 5}) {
		t.Errorf("cursor = %+v, want range start", buf.Cursor())
	}
}

func TestIndentAndDedent(t *testing.T) {
	buf := interp.NewBuffer("a\nb")
	runOperator(t, ">", buf, lineRange(0, 1))
	if buf.Content() != "    a\n    b" {
		t.Errorf("indent = %q", buf.Content())
	}
	runOperator(t, "<", buf, lineRange(0, 0))
	if buf.Content() != "a\n    b" {
		t.Errorf("dedent = %q", buf.Content())
	}
}

func TestIndentSkipsEmptyLines(t *testing.T) {
	buf := interp.NewBuffer("a\n\nb")
	runOperator(t, ">", buf, lineRange(0, 2))
	if buf.Content() != "    a\n\n    b" {
		t.Errorf("indent = %q", buf.Content())
	}
}

func TestFormatNormalizesIndent(t *testing.T) {
	buf := interp.NewBuffer("\tone  \n  two\t")
	runOperator(t, "=", buf, lineRange(0, 1))
	if buf.Content() != "    one\n  two" {
		t.Errorf("format = %q", buf.Content())
	}
}

func TestCaseOperators(t *testing.T) {
	tests := []struct {
		op   string
		in   string
		rng  interp.Range
		want string
	}{
		{"gU", "hello there", charRange(interp.Position{}, interp.Position{Col: 4}, true), "HELLO there"},
		{"gu", "LOUD words", charRange(interp.Position{}, interp.Position{Col: 3}, true), "loud words"},
		{"g~", "MiXed", charRange(interp.Position{}, interp.Position{Col: 4}, true), "mIxED"},
		{"gU", "a\nb\nc", lineRange(0, 2), "A\nB\nC"},
	}
	for _, tt := range tests {
		buf := interp.NewBuffer(tt.in)
		res := runOperator(t, tt.op, buf, tt.rng)
		if buf.Content() != tt.want {
			t.Errorf("%s on %q = %q, want %q", tt.op, tt.in, buf.Content(), tt.want)
		}
		if res.Text != "" {
			t.Errorf("%s should capture nothing, got %q", tt.op, res.Text)
		}
	}
}

func TestCaseOperatorMultiLineCharwise(t *testing.T) {
	buf := interp.NewBuffer("abc\ndef\nghi")
	rng := charRange(interp.Position{Col: 1}, interp.Position{Line: 2, Col: 0}, true)
	runOperator(t, "gU", buf, rng)
	if buf.Content() != "aBC\nDEF\nGhi" {
		t.Errorf("gU across lines = %q", buf.Content())
	}
}
