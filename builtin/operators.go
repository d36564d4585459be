package builtin

import (
	"strings"
	"unicode"

	"github.com/dshills/modal/interp"
	"github.com/dshills/modal/token"
)

func registerOperators(r *Registry) {
	r.RegisterOperator(token.OpDelete, interp.OperatorFunc(opDelete))
	r.RegisterOperator(token.OpChange, interp.OperatorFunc(opChange))
	r.RegisterOperator(token.OpYank, interp.OperatorFunc(opYank))
	r.RegisterOperator(token.OpIndentRight, indentOperator(+1))
	r.RegisterOperator(token.OpIndentLeft, indentOperator(-1))
	r.RegisterOperator(token.OpFormat, interp.OperatorFunc(opFormat))
	r.RegisterOperator(token.OpLowercase, caseOperator(unicode.ToLower))
	r.RegisterOperator(token.OpUppercase, caseOperator(unicode.ToUpper))
	r.RegisterOperator(token.OpToggleCase, caseOperator(toggleCase))
}

// opDelete removes the range's text, captures it, and leaves the cursor
// at the range start.
func opDelete(r interp.Range, ed interp.EditorContext) (interp.OpResult, error) {
	text := rangeText(ed.Lines(), r)
	remaining, cur := removeRange(ed.Lines(), r)
	ed.UpdateContent(strings.Join(remaining, "\n"))
	ed.SetCursorPosition(cur)
	return interp.OpResult{Text: text, Captured: true}, nil
}

// opChange is delete followed by insert mode. A linewise change keeps one
// empty line where the deleted lines were.
func opChange(r interp.Range, ed interp.EditorContext) (interp.OpResult, error) {
	text := rangeText(ed.Lines(), r)
	if r.Linewise() {
		lo, hi := lineSpan(ed.Lines(), r)
		lines := ed.Lines()
		out := make([]string, 0, len(lines)-(hi-lo))
		out = append(out, lines[:lo]...)
		out = append(out, "")
		out = append(out, lines[hi+1:]...)
		ed.UpdateContent(strings.Join(out, "\n"))
		ed.SetCursorPosition(interp.Position{Line: lo})
		return interp.OpResult{Text: text, Captured: true, EntersInsert: true}, nil
	}
	remaining, cur := removeRange(ed.Lines(), r)
	ed.UpdateContent(strings.Join(remaining, "\n"))
	ed.SetCursorPosition(cur)
	return interp.OpResult{Text: text, Captured: true, EntersInsert: true}, nil
}

// opYank captures the range's text without mutation and moves the cursor
// to the range start.
func opYank(r interp.Range, ed interp.EditorContext) (interp.OpResult, error) {
	text := rangeText(ed.Lines(), r)
	ed.SetCursorPosition(r.Start)
	return interp.OpResult{Text: text, Captured: true}, nil
}

// indentOperator shifts the range's lines by one tab stop in dir. Indent
// and dedent always act on whole lines regardless of the range's kind.
func indentOperator(dir int) interp.OperatorFunc {
	return func(r interp.Range, ed interp.EditorContext) (interp.OpResult, error) {
		lines := ed.Lines()
		lo, hi := lineSpan(lines, r)
		unit := strings.Repeat(" ", ed.TabSize())

		out := append([]string{}, lines...)
		for ln := lo; ln <= hi; ln++ {
			if dir > 0 {
				if out[ln] != "" {
					out[ln] = unit + out[ln]
				}
				continue
			}
			out[ln] = dedent(out[ln], ed.TabSize())
		}
		ed.UpdateContent(strings.Join(out, "\n"))
		ed.SetCursorPosition(interp.Position{Line: lo, Col: firstNonBlank(out[lo])})
		return interp.OpResult{}, nil
	}
}

// opFormat normalizes the range's lines: leading tabs become spaces at
// the host's tab width and trailing whitespace is trimmed.
func opFormat(r interp.Range, ed interp.EditorContext) (interp.OpResult, error) {
	lines := ed.Lines()
	lo, hi := lineSpan(lines, r)
	unit := strings.Repeat(" ", ed.TabSize())

	out := append([]string{}, lines...)
	for ln := lo; ln <= hi; ln++ {
		line := out[ln]
		lead := 0
		for lead < len(line) && (line[lead] == ' ' || line[lead] == '\t') {
			lead++
		}
		indent := strings.ReplaceAll(line[:lead], "\t", unit)
		out[ln] = strings.TrimRight(indent+line[lead:], " \t")
	}
	ed.UpdateContent(strings.Join(out, "\n"))
	ed.SetCursorPosition(interp.Position{Line: lo, Col: firstNonBlank(out[lo])})
	return interp.OpResult{}, nil
}

// caseOperator applies a rune transform in place over the range. Case
// operators capture nothing.
func caseOperator(transform func(rune) rune) interp.OperatorFunc {
	return func(r interp.Range, ed interp.EditorContext) (interp.OpResult, error) {
		lines := ed.Lines()
		out := append([]string{}, lines...)

		if r.Linewise() {
			lo, hi := lineSpan(lines, r)
			for ln := lo; ln <= hi; ln++ {
				out[ln] = strings.Map(transform, out[ln])
			}
		} else {
			mapCharRange(out, r, transform)
		}
		ed.UpdateContent(strings.Join(out, "\n"))
		ed.SetCursorPosition(clampTo(out, r.Start))
		return interp.OpResult{}, nil
	}
}

func toggleCase(r rune) rune {
	switch {
	case unicode.IsUpper(r):
		return unicode.ToLower(r)
	case unicode.IsLower(r):
		return unicode.ToUpper(r)
	}
	return r
}

// --- range plumbing ---

// lineSpan returns the clamped first and last line the range covers.
func lineSpan(lines []string, r interp.Range) (int, int) {
	lo, hi := r.Start.Line, r.End.Line
	if lo < 0 {
		lo = 0
	}
	if hi >= len(lines) {
		hi = len(lines) - 1
	}
	return lo, hi
}

// endBound is the exclusive end column of a charwise range on its last
// line.
func endBound(lines []string, r interp.Range) int {
	end := r.End.Col
	if r.Inclusive {
		end++
	}
	if max := len(lines[r.End.Line]); end > max {
		end = max
	}
	return end
}

func clampIdx(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}

// rangeText extracts the text a range covers. Linewise ranges yield whole
// lines joined with newlines; multi-line charwise ranges keep interior
// newlines.
func rangeText(lines []string, r interp.Range) string {
	if r.Linewise() {
		lo, hi := lineSpan(lines, r)
		return strings.Join(lines[lo:hi+1], "\n")
	}
	end := endBound(lines, r)
	if r.Start.Line == r.End.Line {
		line := lines[r.Start.Line]
		s := clampIdx(r.Start.Col, len(line))
		e := clampIdx(end, len(line))
		if s >= e {
			return ""
		}
		return line[s:e]
	}
	var b strings.Builder
	first := lines[r.Start.Line]
	b.WriteString(first[clampIdx(r.Start.Col, len(first)):])
	for ln := r.Start.Line + 1; ln < r.End.Line; ln++ {
		b.WriteByte('\n')
		b.WriteString(lines[ln])
	}
	last := lines[r.End.Line]
	b.WriteByte('\n')
	b.WriteString(last[:clampIdx(end, len(last))])
	return b.String()
}

// removeRange deletes a range from a copy of lines and returns the copy
// together with where the cursor lands.
func removeRange(lines []string, r interp.Range) ([]string, interp.Position) {
	if r.Linewise() {
		lo, hi := lineSpan(lines, r)
		out := make([]string, 0, len(lines)-(hi-lo+1))
		out = append(out, lines[:lo]...)
		out = append(out, lines[hi+1:]...)
		if len(out) == 0 {
			out = []string{""}
		}
		cur := interp.Position{Line: lo}
		if cur.Line >= len(out) {
			cur.Line = len(out) - 1
		}
		cur.Col = firstNonBlank(out[cur.Line])
		return out, cur
	}

	end := endBound(lines, r)
	out := append([]string{}, lines...)
	if r.Start.Line == r.End.Line {
		line := out[r.Start.Line]
		s := clampIdx(r.Start.Col, len(line))
		e := clampIdx(end, len(line))
		out[r.Start.Line] = line[:s] + line[e:]
	} else {
		first := out[r.Start.Line]
		last := out[r.End.Line]
		merged := first[:clampIdx(r.Start.Col, len(first))] + last[clampIdx(end, len(last)):]
		tail := append([]string{merged}, out[r.End.Line+1:]...)
		out = append(out[:r.Start.Line], tail...)
	}
	return out, clampTo(out, r.Start)
}

// mapCharRange applies a rune transform to the charwise span of r inside
// out, in place.
func mapCharRange(out []string, r interp.Range, transform func(rune) rune) {
	end := endBound(out, r)
	apply := func(ln, from, to int) {
		line := out[ln]
		from = clampIdx(from, len(line))
		to = clampIdx(to, len(line))
		out[ln] = line[:from] + strings.Map(transform, line[from:to]) + line[to:]
	}
	if r.Start.Line == r.End.Line {
		apply(r.Start.Line, r.Start.Col, end)
		return
	}
	apply(r.Start.Line, r.Start.Col, len(out[r.Start.Line]))
	for ln := r.Start.Line + 1; ln < r.End.Line; ln++ {
		apply(ln, 0, len(out[ln]))
	}
	apply(r.End.Line, 0, end)
}

// dedent removes one tab stop of leading whitespace: a single tab, or up
// to width spaces.
func dedent(line string, width int) string {
	if strings.HasPrefix(line, "\t") {
		return line[1:]
	}
	n := 0
	for n < width && n < len(line) && line[n] == ' ' {
		n++
	}
	return line[n:]
}
