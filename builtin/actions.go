package builtin

import (
	"fmt"
	"strings"

	"github.com/dshills/modal/interp"
	"github.com/dshills/modal/register"
	"github.com/dshills/modal/token"
)

func registerActions(r *Registry) {
	r.RegisterAction(token.ActInsert, interp.ActionFunc(actInsert))
	r.RegisterAction(token.ActAppend, interp.ActionFunc(actAppend))
	r.RegisterAction(token.ActAppendEOL, interp.ActionFunc(actAppendEOL))
	r.RegisterAction(token.ActInsertBOL, interp.ActionFunc(actInsertBOL))
	r.RegisterAction(token.ActOpenBelow, openLineAction(1))
	r.RegisterAction(token.ActOpenAbove, openLineAction(0))
	r.RegisterAction(token.ActSubstitute, interp.ActionFunc(actSubstitute))
	r.RegisterAction(token.ActDeleteChar, interp.ActionFunc(actDeleteChar))
	r.RegisterAction(token.ActDeleteBack, interp.ActionFunc(actDeleteBack))
	r.RegisterAction(token.ActReplaceChar, interp.ActionFunc(actReplaceChar))
	r.RegisterAction(token.ActPutAfter, putAction(true))
	r.RegisterAction(token.ActPutBefore, putAction(false))
	r.RegisterAction(token.ActUndo, interp.ActionFunc(actUndo))
	r.RegisterAction(token.ActRedo, interp.ActionFunc(actRedo))
	r.RegisterAction(token.ActSetMark, interp.ActionFunc(actSetMark))
}

func actInsert(ctx interp.ActionContext) (interp.ActionResult, error) {
	return interp.ActionResult{EntersInsert: true}, nil
}

// actAppend enters insert mode after the cursor character; the insertion
// point may sit one past the last character.
func actAppend(ctx interp.ActionContext) (interp.ActionResult, error) {
	cur := ctx.Editor.Cursor()
	line := ctx.Editor.Lines()[cur.Line]
	if len(line) > 0 {
		ctx.Editor.SetCursorPosition(interp.Position{Line: cur.Line, Col: cur.Col + 1})
	}
	return interp.ActionResult{EntersInsert: true}, nil
}

func actAppendEOL(ctx interp.ActionContext) (interp.ActionResult, error) {
	cur := ctx.Editor.Cursor()
	line := ctx.Editor.Lines()[cur.Line]
	ctx.Editor.SetCursorPosition(interp.Position{Line: cur.Line, Col: len(line)})
	return interp.ActionResult{EntersInsert: true}, nil
}

func actInsertBOL(ctx interp.ActionContext) (interp.ActionResult, error) {
	cur := ctx.Editor.Cursor()
	line := ctx.Editor.Lines()[cur.Line]
	ctx.Editor.SetCursorPosition(interp.Position{Line: cur.Line, Col: firstNonBlank(line)})
	return interp.ActionResult{EntersInsert: true}, nil
}

// openLineAction inserts a blank line below (offset 1) or above
// (offset 0) the cursor line and enters insert mode on it.
func openLineAction(offset int) interp.ActionFunc {
	return func(ctx interp.ActionContext) (interp.ActionResult, error) {
		cur := ctx.Editor.Cursor()
		lines := ctx.Editor.Lines()
		at := cur.Line + offset

		out := make([]string, 0, len(lines)+1)
		out = append(out, lines[:at]...)
		out = append(out, "")
		out = append(out, lines[at:]...)
		ctx.Editor.UpdateContent(strings.Join(out, "\n"))
		ctx.Editor.SetCursorPosition(interp.Position{Line: at})
		return interp.ActionResult{EntersInsert: true}, nil
	}
}

// actSubstitute deletes count characters at the cursor and enters insert
// mode. The count is its own; substitution is not looped per repetition.
func actSubstitute(ctx interp.ActionContext) (interp.ActionResult, error) {
	cur := ctx.Editor.Cursor()
	lines := ctx.Editor.Lines()
	line := lines[cur.Line]
	if cur.Col >= len(line) {
		return interp.ActionResult{EntersInsert: true}, nil
	}
	end := cur.Col + ctx.Count
	if end > len(line) {
		end = len(line)
	}
	deleted := line[cur.Col:end]

	out := append([]string{}, lines...)
	out[cur.Line] = line[:cur.Col] + line[end:]
	ctx.Editor.UpdateContent(strings.Join(out, "\n"))
	ctx.Editor.SetCursorPosition(cur)
	return interp.ActionResult{Text: deleted, EntersInsert: true}, nil
}

// actDeleteChar deletes the character under the cursor. Called once per
// repetition; an empty line is a failure so the loop stops.
func actDeleteChar(ctx interp.ActionContext) (interp.ActionResult, error) {
	cur := ctx.Editor.Cursor()
	lines := ctx.Editor.Lines()
	line := lines[cur.Line]
	if cur.Col >= len(line) {
		return interp.ActionResult{}, fmt.Errorf("nothing to delete at line %d col %d", cur.Line, cur.Col)
	}
	deleted := line[cur.Col : cur.Col+1]

	out := append([]string{}, lines...)
	out[cur.Line] = line[:cur.Col] + line[cur.Col+1:]
	ctx.Editor.UpdateContent(strings.Join(out, "\n"))
	ctx.Editor.SetCursorPosition(clampTo(out, cur))
	return interp.ActionResult{Text: deleted}, nil
}

// actDeleteBack deletes the character before the cursor; captured text
// accumulates leftwards across repetitions.
func actDeleteBack(ctx interp.ActionContext) (interp.ActionResult, error) {
	cur := ctx.Editor.Cursor()
	if cur.Col == 0 {
		return interp.ActionResult{}, fmt.Errorf("nothing before the cursor on line %d", cur.Line)
	}
	lines := ctx.Editor.Lines()
	line := lines[cur.Line]
	deleted := line[cur.Col-1 : cur.Col]

	out := append([]string{}, lines...)
	out[cur.Line] = line[:cur.Col-1] + line[cur.Col:]
	ctx.Editor.UpdateContent(strings.Join(out, "\n"))
	ctx.Editor.SetCursorPosition(interp.Position{Line: cur.Line, Col: cur.Col - 1})
	return interp.ActionResult{Text: deleted, Prepend: true}, nil
}

// actReplaceChar overwrites the cursor character with the literal
// argument and steps right, so repetitions replace a run.
func actReplaceChar(ctx interp.ActionContext) (interp.ActionResult, error) {
	r, ok := ctx.Char.Rune()
	if !ok {
		return interp.ActionResult{}, fmt.Errorf("replacement %q is not a literal character", ctx.Char)
	}
	cur := ctx.Editor.Cursor()
	lines := ctx.Editor.Lines()
	line := lines[cur.Line]
	if cur.Col >= len(line) {
		return interp.ActionResult{}, fmt.Errorf("nothing to replace at line %d col %d", cur.Line, cur.Col)
	}

	out := append([]string{}, lines...)
	out[cur.Line] = line[:cur.Col] + string(r) + line[cur.Col+1:]
	ctx.Editor.UpdateContent(strings.Join(out, "\n"))
	ctx.Editor.SetCursorPosition(interp.Position{Line: cur.Line, Col: cur.Col + 1})
	return interp.ActionResult{}, nil
}

// putAction pastes the command's register after or before the cursor.
// Linewise content opens new lines; charwise content splices into the
// current line. An empty register is a failing no-op.
func putAction(after bool) interp.ActionFunc {
	return func(ctx interp.ActionContext) (interp.ActionResult, error) {
		content, ok := ctx.Session.GetRegisterContent(ctx.Register)
		if !ok {
			return interp.ActionResult{}, interp.ErrEmptyRegister
		}

		cur := ctx.Editor.Cursor()
		lines := ctx.Editor.Lines()

		if content.Type == register.Linewise {
			at := cur.Line
			if after {
				at++
			}
			pasted := strings.Split(content.Text, "\n")
			out := make([]string, 0, len(lines)+len(pasted))
			out = append(out, lines[:at]...)
			out = append(out, pasted...)
			out = append(out, lines[at:]...)
			ctx.Editor.UpdateContent(strings.Join(out, "\n"))
			ctx.Editor.SetCursorPosition(interp.Position{Line: at, Col: firstNonBlank(pasted[0])})
			return interp.ActionResult{}, nil
		}

		line := lines[cur.Line]
		at := cur.Col
		if after && len(line) > 0 {
			at++
		}
		out := append([]string{}, lines...)
		if parts := strings.Split(content.Text, "\n"); len(parts) > 1 {
			head := line[:at] + parts[0]
			tail := parts[len(parts)-1] + line[at:]
			spliced := append([]string{head}, parts[1:len(parts)-1]...)
			spliced = append(spliced, tail)
			rest := append(spliced, out[cur.Line+1:]...)
			out = append(out[:cur.Line], rest...)
			ctx.Editor.UpdateContent(strings.Join(out, "\n"))
			ctx.Editor.SetCursorPosition(interp.Position{Line: cur.Line, Col: at})
			return interp.ActionResult{}, nil
		}
		out[cur.Line] = line[:at] + content.Text + line[at:]
		ctx.Editor.UpdateContent(strings.Join(out, "\n"))
		end := at + len(content.Text) - 1
		if end < 0 {
			end = 0
		}
		ctx.Editor.SetCursorPosition(interp.Position{Line: cur.Line, Col: end})
		return interp.ActionResult{}, nil
	}
}

// actUndo reverts the last change when the editor exposes history.
func actUndo(ctx interp.ActionContext) (interp.ActionResult, error) {
	h, ok := ctx.Editor.(interp.HistoryProvider)
	if !ok {
		return interp.ActionResult{}, fmt.Errorf("editor has no undo history")
	}
	if !h.Undo() {
		return interp.ActionResult{}, fmt.Errorf("nothing to undo")
	}
	return interp.ActionResult{}, nil
}

func actRedo(ctx interp.ActionContext) (interp.ActionResult, error) {
	h, ok := ctx.Editor.(interp.HistoryProvider)
	if !ok {
		return interp.ActionResult{}, fmt.Errorf("editor has no undo history")
	}
	if !h.Redo() {
		return interp.ActionResult{}, fmt.Errorf("nothing to redo")
	}
	return interp.ActionResult{}, nil
}

// actSetMark records the cursor position under the mark name given as
// the literal argument.
func actSetMark(ctx interp.ActionContext) (interp.ActionResult, error) {
	if _, ok := ctx.Char.Rune(); !ok {
		return interp.ActionResult{}, fmt.Errorf("mark name %q is not a letter", ctx.Char)
	}
	ctx.Session.SetMark(ctx.Char, ctx.Editor.Cursor())
	return interp.ActionResult{}, nil
}
