package builtin

import (
	"strings"
	"unicode"

	"github.com/dshills/modal/interp"
	"github.com/dshills/modal/parse"
)

func registerMotions(r *Registry) {
	r.RegisterMotion("h", interp.MotionFunc(motionLeft))
	r.RegisterMotion("l", interp.MotionFunc(motionRight))
	r.RegisterMotion("j", interp.MotionFunc(motionDown))
	r.RegisterMotion("k", interp.MotionFunc(motionUp))
	r.RegisterMotion("0", interp.MotionFunc(motionLineStart))
	r.RegisterMotion("^", interp.MotionFunc(motionFirstNonBlank))
	r.RegisterMotion("$", interp.MotionFunc(motionLineEnd))
	r.RegisterMotion("g_", interp.MotionFunc(motionLastNonBlank))
	r.RegisterMotion("w", wordMotion(false))
	r.RegisterMotion("W", wordMotion(true))
	r.RegisterMotion("b", wordBackMotion(false))
	r.RegisterMotion("B", wordBackMotion(true))
	r.RegisterMotion("e", wordEndMotion(false))
	r.RegisterMotion("E", wordEndMotion(true))
	r.RegisterMotion("ge", interp.MotionFunc(motionWordEndBack))
	r.RegisterMotion("gg", interp.MotionFunc(motionDocumentStart))
	r.RegisterMotion("G", interp.MotionFunc(motionDocumentEnd))
	r.RegisterMotion("{", interp.MotionFunc(motionParagraphBack))
	r.RegisterMotion("}", interp.MotionFunc(motionParagraphForward))
	r.RegisterMotion("(", interp.MotionFunc(motionSentenceBack))
	r.RegisterMotion(")", interp.MotionFunc(motionSentenceForward))
	r.RegisterMotion("%", interp.MotionFunc(motionMatchPair))
	r.RegisterMotion("f", charMotion(+1, false))
	r.RegisterMotion("F", charMotion(-1, false))
	r.RegisterMotion("t", charMotion(+1, true))
	r.RegisterMotion("T", charMotion(-1, true))
	r.RegisterMotion("/", interp.MotionFunc(motionSearch))
	r.RegisterMotion("?", interp.MotionFunc(motionSearch))
	r.RegisterMotion("n", interp.MotionFunc(motionSearch))
	r.RegisterMotion("N", interp.MotionFunc(motionSearch))
	r.RegisterMotion("'", interp.MotionFunc(motionMark))
	r.RegisterMotion("`", interp.MotionFunc(motionMark))
}

func motionLeft(cur interp.Position, lines []string, count int, _ interp.MotionOpts) (interp.Range, bool) {
	col := cur.Col - count
	if col < 0 {
		col = 0
	}
	return interp.Span(cur, interp.Position{Line: cur.Line, Col: col}), true
}

func motionRight(cur interp.Position, lines []string, count int, _ interp.MotionOpts) (interp.Range, bool) {
	col := cur.Col + count
	if max := lastCol(lines[cur.Line]); col > max {
		col = max
	}
	return interp.Span(cur, interp.Position{Line: cur.Line, Col: col}), true
}

func motionDown(cur interp.Position, lines []string, count int, _ interp.MotionOpts) (interp.Range, bool) {
	ln := cur.Line + count
	if ln >= len(lines) {
		ln = len(lines) - 1
	}
	return interp.Span(cur, clampTo(lines, interp.Position{Line: ln, Col: cur.Col})), true
}

func motionUp(cur interp.Position, lines []string, count int, _ interp.MotionOpts) (interp.Range, bool) {
	ln := cur.Line - count
	if ln < 0 {
		ln = 0
	}
	return interp.Span(cur, clampTo(lines, interp.Position{Line: ln, Col: cur.Col})), true
}

func motionLineStart(cur interp.Position, _ []string, _ int, _ interp.MotionOpts) (interp.Range, bool) {
	return interp.Span(cur, interp.Position{Line: cur.Line}), true
}

func motionFirstNonBlank(cur interp.Position, lines []string, _ int, _ interp.MotionOpts) (interp.Range, bool) {
	return interp.Span(cur, interp.Position{Line: cur.Line, Col: firstNonBlank(lines[cur.Line])}), true
}

func motionLineEnd(cur interp.Position, lines []string, _ int, _ interp.MotionOpts) (interp.Range, bool) {
	return interp.Span(cur, interp.Position{Line: cur.Line, Col: lastCol(lines[cur.Line])}), true
}

func motionLastNonBlank(cur interp.Position, lines []string, _ int, _ interp.MotionOpts) (interp.Range, bool) {
	line := lines[cur.Line]
	col := len(strings.TrimRight(line, " \t")) - 1
	if col < 0 {
		col = 0
	}
	return interp.Span(cur, interp.Position{Line: cur.Line, Col: col}), true
}

// motionDocumentStart is gg: first line, or line count with an explicit
// count greater than one.
func motionDocumentStart(cur interp.Position, lines []string, count int, _ interp.MotionOpts) (interp.Range, bool) {
	ln := 0
	if count > 1 {
		ln = count - 1
		if ln >= len(lines) {
			ln = len(lines) - 1
		}
	}
	return interp.Span(cur, interp.Position{Line: ln, Col: firstNonBlank(lines[ln])}), true
}

// motionDocumentEnd is G: last line, or line count with an explicit count
// greater than one.
func motionDocumentEnd(cur interp.Position, lines []string, count int, _ interp.MotionOpts) (interp.Range, bool) {
	ln := len(lines) - 1
	if count > 1 && count-1 < len(lines) {
		ln = count - 1
	}
	return interp.Span(cur, interp.Position{Line: ln, Col: firstNonBlank(lines[ln])}), true
}

func wordMotion(big bool) interp.MotionFunc {
	return func(cur interp.Position, lines []string, count int, _ interp.MotionOpts) (interp.Range, bool) {
		dest := cur
		for i := 0; i < count; i++ {
			dest = nextWordStart(lines, dest, big)
		}
		return interp.Span(cur, dest), true
	}
}

func wordBackMotion(big bool) interp.MotionFunc {
	return func(cur interp.Position, lines []string, count int, _ interp.MotionOpts) (interp.Range, bool) {
		dest := cur
		for i := 0; i < count; i++ {
			dest = prevWordStart(lines, dest, big)
		}
		return interp.Span(cur, dest), true
	}
}

func wordEndMotion(big bool) interp.MotionFunc {
	return func(cur interp.Position, lines []string, count int, _ interp.MotionOpts) (interp.Range, bool) {
		dest := cur
		for i := 0; i < count; i++ {
			dest = nextWordEnd(lines, dest, big)
		}
		return interp.Span(cur, dest), true
	}
}

func motionWordEndBack(cur interp.Position, lines []string, count int, _ interp.MotionOpts) (interp.Range, bool) {
	dest := cur
	for i := 0; i < count; i++ {
		dest = prevWordEnd(lines, dest)
	}
	return interp.Span(cur, dest), true
}

func motionParagraphForward(cur interp.Position, lines []string, count int, _ interp.MotionOpts) (interp.Range, bool) {
	ln := cur.Line
	for i := 0; i < count; i++ {
		ln = nextBlankLine(lines, ln)
	}
	return interp.Span(cur, interp.Position{Line: ln}), true
}

func motionParagraphBack(cur interp.Position, lines []string, count int, _ interp.MotionOpts) (interp.Range, bool) {
	ln := cur.Line
	for i := 0; i < count; i++ {
		ln = prevBlankLine(lines, ln)
	}
	return interp.Span(cur, interp.Position{Line: ln}), true
}

func motionSentenceForward(cur interp.Position, lines []string, count int, _ interp.MotionOpts) (interp.Range, bool) {
	dest := cur
	for i := 0; i < count; i++ {
		dest = nextSentence(lines, dest)
	}
	return interp.Span(cur, dest), true
}

func motionSentenceBack(cur interp.Position, lines []string, count int, _ interp.MotionOpts) (interp.Range, bool) {
	dest := cur
	for i := 0; i < count; i++ {
		dest = prevSentence(lines, dest)
	}
	return interp.Span(cur, dest), true
}

// motionMatchPair jumps between matching bracket pairs, scanning right on
// the current line for the first bracket when the cursor is not on one.
func motionMatchPair(cur interp.Position, lines []string, _ int, _ interp.MotionOpts) (interp.Range, bool) {
	line := []rune(lines[cur.Line])
	col := cur.Col
	for col < len(line) && !isBracket(line[col]) {
		col++
	}
	if col >= len(line) {
		return interp.Range{}, false
	}
	dest, ok := matchBracket(lines, interp.Position{Line: cur.Line, Col: col})
	if !ok {
		return interp.Range{}, false
	}
	return interp.Span(cur, dest), true
}

// charMotion builds find/till motions. dir is +1 or -1; till stops one
// short of the found character.
func charMotion(dir int, till bool) interp.MotionFunc {
	return func(cur interp.Position, lines []string, count int, opts interp.MotionOpts) (interp.Range, bool) {
		target, ok := opts.Char.Rune()
		if !ok {
			return interp.Range{}, false
		}
		line := []rune(lines[cur.Line])
		col := cur.Col
		for i := 0; i < count; i++ {
			col += dir
			for col >= 0 && col < len(line) && line[col] != target {
				col += dir
			}
			if col < 0 || col >= len(line) {
				return interp.Range{}, false
			}
		}
		if till {
			col -= dir
		}
		return interp.Span(cur, interp.Position{Line: cur.Line, Col: col}), true
	}
}

// motionSearch serves /, ?, n, and N: the executor resolves pattern and
// direction before the call. The pattern is matched literally with
// wrap-around.
func motionSearch(cur interp.Position, lines []string, count int, opts interp.MotionOpts) (interp.Range, bool) {
	if opts.Pattern == "" {
		return interp.Range{}, false
	}
	pos := cur
	for i := 0; i < count; i++ {
		next, ok := findPattern(lines, pos, opts.Pattern, opts.Direction)
		if !ok {
			return interp.Range{}, false
		}
		pos = next
	}
	return interp.Span(cur, pos), true
}

func motionMark(cur interp.Position, lines []string, _ int, opts interp.MotionOpts) (interp.Range, bool) {
	if opts.Mark == nil {
		return interp.Range{}, false
	}
	pos, ok := opts.Mark(opts.Char)
	if !ok || pos.Line >= len(lines) {
		return interp.Range{}, false
	}
	if opts.MarkStyle == parse.MarkLine {
		pos = interp.Position{Line: pos.Line, Col: firstNonBlank(lines[pos.Line])}
	}
	return interp.Span(cur, clampTo(lines, pos)), true
}

// --- helpers ---

// charClass buckets runes the way word motions need: whitespace, word
// characters, and everything else. Big words collapse the last two.
func charClass(r rune, big bool) int {
	switch {
	case unicode.IsSpace(r):
		return 0
	case big, r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
		return 1
	default:
		return 2
	}
}

func nextWordStart(lines []string, p interp.Position, big bool) interp.Position {
	ln, col := p.Line, p.Col
	runes := []rune(lines[ln])
	if col < len(runes) {
		if cls := charClass(runes[col], big); cls != 0 {
			for col < len(runes) && charClass(runes[col], big) == cls {
				col++
			}
		}
	}
	for {
		runes = []rune(lines[ln])
		for col < len(runes) && charClass(runes[col], big) == 0 {
			col++
		}
		if col < len(runes) {
			return interp.Position{Line: ln, Col: col}
		}
		if ln == len(lines)-1 {
			return interp.Position{Line: ln, Col: lastColRunes(runes)}
		}
		ln++
		col = 0
	}
}

func prevWordStart(lines []string, p interp.Position, big bool) interp.Position {
	ln, col := p.Line, p.Col-1
	for {
		if col < 0 {
			if ln == 0 {
				return interp.Position{}
			}
			ln--
			col = len([]rune(lines[ln])) - 1
			if col < 0 {
				return interp.Position{Line: ln}
			}
		}
		runes := []rune(lines[ln])
		if charClass(runes[col], big) == 0 {
			col--
			continue
		}
		cls := charClass(runes[col], big)
		for col-1 >= 0 && charClass(runes[col-1], big) == cls {
			col--
		}
		return interp.Position{Line: ln, Col: col}
	}
}

func nextWordEnd(lines []string, p interp.Position, big bool) interp.Position {
	ln, col := p.Line, p.Col+1
	for {
		runes := []rune(lines[ln])
		if col >= len(runes) {
			if ln == len(lines)-1 {
				return interp.Position{Line: ln, Col: lastColRunes(runes)}
			}
			ln++
			col = 0
			continue
		}
		if charClass(runes[col], big) == 0 {
			col++
			continue
		}
		cls := charClass(runes[col], big)
		for col+1 < len(runes) && charClass(runes[col+1], big) == cls {
			col++
		}
		return interp.Position{Line: ln, Col: col}
	}
}

func prevWordEnd(lines []string, p interp.Position) interp.Position {
	ln, col := p.Line, p.Col-1
	for {
		if col < 0 {
			if ln == 0 {
				return interp.Position{}
			}
			ln--
			col = len([]rune(lines[ln])) - 1
			if col < 0 {
				continue
			}
		}
		runes := []rune(lines[ln])
		if charClass(runes[col], false) == 0 {
			col--
			continue
		}
		return interp.Position{Line: ln, Col: col}
	}
}

func nextBlankLine(lines []string, from int) int {
	for ln := from + 1; ln < len(lines); ln++ {
		if strings.TrimSpace(lines[ln]) == "" {
			return ln
		}
	}
	return len(lines) - 1
}

func prevBlankLine(lines []string, from int) int {
	for ln := from - 1; ln >= 0; ln-- {
		if strings.TrimSpace(lines[ln]) == "" {
			return ln
		}
	}
	return 0
}

// nextSentence finds the start of the sentence after the terminator
// following p, falling back to the next paragraph boundary.
func nextSentence(lines []string, p interp.Position) interp.Position {
	ln, col := p.Line, p.Col
	for ln < len(lines) {
		runes := []rune(lines[ln])
		for ; col < len(runes); col++ {
			if !isSentenceEnd(runes[col]) {
				continue
			}
			// Skip closing punctuation and whitespace after the terminator.
			next := col + 1
			for next < len(runes) && (runes[next] == ')' || runes[next] == '"' || runes[next] == '\'') {
				next++
			}
			for next < len(runes) && unicode.IsSpace(runes[next]) {
				next++
			}
			if next < len(runes) {
				return interp.Position{Line: ln, Col: next}
			}
		}
		ln++
		col = 0
		if ln < len(lines) && strings.TrimSpace(lines[ln]) == "" {
			return interp.Position{Line: ln}
		}
	}
	last := len(lines) - 1
	return interp.Position{Line: last, Col: lastCol(lines[last])}
}

// prevSentence finds the start of the sentence before p: the first
// non-blank after the nearest preceding terminator.
func prevSentence(lines []string, p interp.Position) interp.Position {
	ln := p.Line
	col := p.Col - 2 // a terminator directly before the cursor starts this sentence
	for ln >= 0 {
		runes := []rune(lines[ln])
		if col >= len(runes) {
			col = len(runes) - 1
		}
		for ; col >= 0; col-- {
			if !isSentenceEnd(runes[col]) {
				continue
			}
			start := col + 1
			for start < len(runes) && unicode.IsSpace(runes[start]) {
				start++
			}
			if start >= len(runes) {
				continue
			}
			if ln < p.Line || start < p.Col {
				return interp.Position{Line: ln, Col: start}
			}
		}
		ln--
		col = 1 << 30
		if ln >= 0 && strings.TrimSpace(lines[ln]) == "" {
			return interp.Position{Line: ln}
		}
	}
	return interp.Position{}
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

var bracketPairs = map[rune]rune{
	'(': ')', '[': ']', '{': '}',
	')': '(', ']': '[', '}': '{',
}

var bracketOpens = map[rune]bool{'(': true, '[': true, '{': true}

func isBracket(r rune) bool {
	_, ok := bracketPairs[r]
	return ok
}

// matchBracket finds the partner of the bracket at p, honoring nesting.
func matchBracket(lines []string, p interp.Position) (interp.Position, bool) {
	open := []rune(lines[p.Line])[p.Col]
	close := bracketPairs[open]
	forward := bracketOpens[open]
	depth := 0

	ln, col := p.Line, p.Col
	for {
		runes := []rune(lines[ln])
		if col >= 0 && col < len(runes) {
			switch runes[col] {
			case open:
				depth++
			case close:
				depth--
				if depth == 0 {
					return interp.Position{Line: ln, Col: col}, true
				}
			}
		}
		if forward {
			col++
			if col >= len(runes) {
				ln++
				col = 0
				if ln >= len(lines) {
					return interp.Position{}, false
				}
			}
		} else {
			col--
			if col < 0 {
				ln--
				if ln < 0 {
					return interp.Position{}, false
				}
				col = len([]rune(lines[ln])) - 1
				if col < 0 {
					col = 0
				}
			}
		}
	}
}

// findPattern locates the next literal occurrence of pattern, wrapping
// around the buffer.
func findPattern(lines []string, from interp.Position, pattern string, dir parse.SearchDirection) (interp.Position, bool) {
	n := len(lines)
	if dir == parse.SearchForward {
		// Remainder of the current line first, after the cursor.
		if idx := indexFrom(lines[from.Line], from.Col+1, pattern); idx >= 0 {
			return interp.Position{Line: from.Line, Col: idx}, true
		}
		for i := 1; i <= n; i++ {
			ln := (from.Line + i) % n
			limit := -1
			if ln == from.Line {
				limit = from.Col
			}
			idx := strings.Index(lines[ln], pattern)
			if idx >= 0 && (limit < 0 || idx <= limit) {
				return interp.Position{Line: ln, Col: idx}, true
			}
		}
		return interp.Position{}, false
	}

	// Backward: before the cursor on the current line first.
	if from.Col > 0 {
		head := lines[from.Line]
		if len(head) > from.Col {
			head = head[:from.Col]
		}
		if idx := strings.LastIndex(head, pattern); idx >= 0 {
			return interp.Position{Line: from.Line, Col: idx}, true
		}
	}
	for i := 1; i <= n; i++ {
		ln := ((from.Line-i)%n + n) % n
		if idx := strings.LastIndex(lines[ln], pattern); idx >= 0 {
			return interp.Position{Line: ln, Col: idx}, true
		}
	}
	return interp.Position{}, false
}

func indexFrom(s string, start int, pattern string) int {
	if start >= len(s) {
		return -1
	}
	idx := strings.Index(s[start:], pattern)
	if idx < 0 {
		return -1
	}
	return start + idx
}

func firstNonBlank(line string) int {
	for i, r := range line {
		if !unicode.IsSpace(r) {
			return i
		}
	}
	return 0
}

func lastCol(line string) int {
	if len(line) == 0 {
		return 0
	}
	return len(line) - 1
}

func lastColRunes(runes []rune) int {
	if len(runes) == 0 {
		return 0
	}
	return len(runes) - 1
}

func clampTo(lines []string, p interp.Position) interp.Position {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(lines) {
		p.Line = len(lines) - 1
	}
	if max := lastCol(lines[p.Line]); p.Col > max {
		p.Col = max
	}
	if p.Col < 0 {
		p.Col = 0
	}
	return p
}
