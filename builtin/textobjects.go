package builtin

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dshills/modal/classify"
	"github.com/dshills/modal/interp"
	"github.com/dshills/modal/parse"
)

func registerTextObjects(r *Registry) {
	r.RegisterTextObject("w", wordObject(false))
	r.RegisterTextObject("W", wordObject(true))
	r.RegisterTextObject("s", interp.TextObjectFunc(sentenceObject))
	r.RegisterTextObject("p", interp.TextObjectFunc(paragraphObject))
	r.RegisterTextObject("t", interp.TextObjectFunc(tagObject))

	pairs := map[string][2]byte{
		"b": {'(', ')'}, "(": {'(', ')'}, ")": {'(', ')'},
		"B": {'{', '}'}, "{": {'{', '}'}, "}": {'{', '}'},
		"[": {'[', ']'}, "]": {'[', ']'},
		"<": {'<', '>'}, ">": {'<', '>'},
	}
	for k, p := range pairs {
		r.RegisterTextObject(k, pairObject(p[0], p[1]))
	}
	for _, q := range []string{`"`, "'", "`"} {
		r.RegisterTextObject(q, quoteObject(q[0]))
	}
}

// wordObject spans the word run under the cursor; around mode extends
// over trailing whitespace, or leading whitespace when there is none
// trailing. On whitespace the inner object is the whitespace run itself.
func wordObject(big bool) interp.TextObjectFunc {
	return func(cur interp.Position, lines []string, mode parse.ObjectMode) (interp.Range, bool) {
		line := lines[cur.Line]
		if len(line) == 0 || cur.Col >= len(line) {
			return interp.Range{}, false
		}
		cls := charClass(rune(line[cur.Col]), big)
		start, end := cur.Col, cur.Col
		for start > 0 && charClass(rune(line[start-1]), big) == cls {
			start--
		}
		for end+1 < len(line) && charClass(rune(line[end+1]), big) == cls {
			end++
		}

		if mode == parse.ObjectAround && cls != 0 {
			grew := false
			for end+1 < len(line) && unicode.IsSpace(rune(line[end+1])) {
				end++
				grew = true
			}
			if !grew {
				for start > 0 && unicode.IsSpace(rune(line[start-1])) {
					start--
				}
			}
		}
		return interp.Range{
			Start:     interp.Position{Line: cur.Line, Col: start},
			End:       interp.Position{Line: cur.Line, Col: end},
			Inclusive: true,
		}, true
	}
}

// sentenceObject spans the sentence containing the cursor, terminator
// included; around mode also takes the whitespace that follows.
func sentenceObject(cur interp.Position, lines []string, mode parse.ObjectMode) (interp.Range, bool) {
	text := strings.Join(lines, "\n")
	off := offsetOf(lines, cur)
	if off >= len(text) {
		return interp.Range{}, false
	}

	start := 0
	for i := off - 1; i >= 0; i-- {
		if isSentenceEnd(rune(text[i])) {
			j := i + 1
			for j < len(text) && unicode.IsSpace(rune(text[j])) {
				j++
			}
			if j <= off {
				start = j
				break
			}
		}
	}

	end := len(text) - 1
	for i := off; i < len(text); i++ {
		if isSentenceEnd(rune(text[i])) {
			end = i
			break
		}
	}
	if mode == parse.ObjectAround {
		for end+1 < len(text) && unicode.IsSpace(rune(text[end+1])) {
			end++
		}
	}
	return interp.Range{
		Start:     positionAt(lines, start),
		End:       positionAt(lines, end),
		Inclusive: true,
	}, true
}

// paragraphObject spans the blank-line-delimited block around the cursor,
// linewise. Around mode also takes the trailing blank lines, or the
// leading ones when nothing trails.
func paragraphObject(cur interp.Position, lines []string, mode parse.ObjectMode) (interp.Range, bool) {
	blank := func(ln int) bool { return strings.TrimSpace(lines[ln]) == "" }
	onBlank := blank(cur.Line)

	lo, hi := cur.Line, cur.Line
	for lo > 0 && blank(lo-1) == onBlank {
		lo--
	}
	for hi+1 < len(lines) && blank(hi+1) == onBlank {
		hi++
	}

	if mode == parse.ObjectAround && !onBlank {
		grew := false
		for hi+1 < len(lines) && blank(hi+1) {
			hi++
			grew = true
		}
		if !grew {
			for lo > 0 && blank(lo-1) {
				lo--
			}
		}
	}
	return interp.Range{
		Start:     interp.Position{Line: lo},
		End:       interp.Position{Line: hi, Col: lastCol(lines[hi])},
		Kind:      classify.Linewise,
		Inclusive: true,
	}, true
}

// pairObject spans the innermost open/close pair enclosing the cursor,
// honoring nesting and crossing lines. Inner mode excludes the brackets
// and fails on an empty interior.
func pairObject(open, close byte) interp.TextObjectFunc {
	return func(cur interp.Position, lines []string, mode parse.ObjectMode) (interp.Range, bool) {
		text := strings.Join(lines, "\n")
		off := offsetOf(lines, cur)
		if off >= len(text) {
			off = len(text) - 1
		}
		if off < 0 {
			return interp.Range{}, false
		}
		openOff, closeOff, ok := enclosingPair(text, off, open, close)
		if !ok {
			return interp.Range{}, false
		}
		if mode == parse.ObjectInner {
			if closeOff-openOff < 2 {
				return interp.Range{}, false
			}
			openOff++
			closeOff--
		}
		return interp.Range{
			Start:     positionAt(lines, openOff),
			End:       positionAt(lines, closeOff),
			Inclusive: true,
		}, true
	}
}

// quoteObject spans a quoted string on the cursor's line. Quotes pair up
// left to right; the object is the pair containing the cursor, or the
// next one after it on the same line.
func quoteObject(quote byte) interp.TextObjectFunc {
	return func(cur interp.Position, lines []string, mode parse.ObjectMode) (interp.Range, bool) {
		line := lines[cur.Line]
		var marks []int
		for i := 0; i < len(line); i++ {
			if line[i] == quote && (i == 0 || line[i-1] != '\\') {
				marks = append(marks, i)
			}
		}
		for i := 0; i+1 < len(marks); i += 2 {
			lo, hi := marks[i], marks[i+1]
			if cur.Col > hi {
				continue
			}
			if mode == parse.ObjectInner {
				if hi-lo < 2 {
					return interp.Range{}, false
				}
				lo++
				hi--
			} else {
				for hi+1 < len(line) && line[hi+1] == ' ' {
					hi++
				}
			}
			return interp.Range{
				Start:     interp.Position{Line: cur.Line, Col: lo},
				End:       interp.Position{Line: cur.Line, Col: hi},
				Inclusive: true,
			}, true
		}
		return interp.Range{}, false
	}
}

var (
	openTagRe  = regexp.MustCompile(`<([A-Za-z][A-Za-z0-9-]*)(?:\s[^<>]*)?>`)
	closeTagRe = regexp.MustCompile(`</([A-Za-z][A-Za-z0-9-]*)>`)
)

// tagObject spans the innermost markup element enclosing the cursor.
// Inner mode is the element's content; around mode includes both tags.
func tagObject(cur interp.Position, lines []string, mode parse.ObjectMode) (interp.Range, bool) {
	text := strings.Join(lines, "\n")
	off := offsetOf(lines, cur)

	type tagMark struct {
		name       string
		start, end int
	}
	var stack []tagMark
	best := tagMark{start: -1}
	bestClose := tagMark{}

	i := 0
	for i < len(text) {
		openLoc := openTagRe.FindStringSubmatchIndex(text[i:])
		closeLoc := closeTagRe.FindStringSubmatchIndex(text[i:])
		switch {
		case closeLoc != nil && (openLoc == nil || closeLoc[0] < openLoc[0]):
			name := text[i+closeLoc[2] : i+closeLoc[3]]
			mark := tagMark{name: name, start: i + closeLoc[0], end: i + closeLoc[1]}
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.name != name {
					continue
				}
				if top.start <= off && off < mark.end && top.start > best.start {
					best = top
					bestClose = mark
				}
				break
			}
			i = mark.end
		case openLoc != nil:
			// Self-closing tags never enclose anything.
			if !strings.HasSuffix(text[i+openLoc[0]:i+openLoc[1]], "/>") {
				stack = append(stack, tagMark{
					name:  text[i+openLoc[2] : i+openLoc[3]],
					start: i + openLoc[0],
					end:   i + openLoc[1],
				})
			}
			i += openLoc[1]
		default:
			i = len(text)
		}
	}
	if best.start < 0 {
		return interp.Range{}, false
	}

	lo, hi := best.start, bestClose.end-1
	if mode == parse.ObjectInner {
		if bestClose.start <= best.end {
			return interp.Range{}, false
		}
		lo, hi = best.end, bestClose.start-1
	}
	return interp.Range{
		Start:     positionAt(lines, lo),
		End:       positionAt(lines, hi),
		Inclusive: true,
	}, true
}

// enclosingPair finds the innermost open/close bracket pair around off in
// text, tracking nesting in both directions.
func enclosingPair(text string, off int, open, close byte) (int, int, bool) {
	openOff := -1
	depth := 0
	for i := off; i >= 0; i-- {
		switch text[i] {
		case close:
			if i != off {
				depth++
			}
		case open:
			if depth == 0 {
				openOff = i
			} else {
				depth--
			}
		}
		if openOff >= 0 {
			break
		}
	}
	if openOff < 0 {
		return 0, 0, false
	}
	depth = 0
	for i := openOff + 1; i < len(text); i++ {
		switch text[i] {
		case open:
			depth++
		case close:
			if depth == 0 {
				return openOff, i, true
			}
			depth--
		}
	}
	return 0, 0, false
}

// offsetOf converts a line/column position to a byte offset in the
// newline-joined buffer text.
func offsetOf(lines []string, p interp.Position) int {
	off := 0
	for ln := 0; ln < p.Line && ln < len(lines); ln++ {
		off += len(lines[ln]) + 1
	}
	return off + p.Col
}

// positionAt converts a byte offset in the newline-joined buffer text
// back to a line/column position.
func positionAt(lines []string, off int) interp.Position {
	for ln, line := range lines {
		if off <= len(line) {
			return interp.Position{Line: ln, Col: off}
		}
		off -= len(line) + 1
	}
	last := len(lines) - 1
	return interp.Position{Line: last, Col: lastCol(lines[last])}
}
