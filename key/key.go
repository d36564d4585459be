package key

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Key is a single logical keystroke. Printable keys are their own rune
// ("a", "$", "3"); special keys and control combos use angle-bracket
// notation ("<CR>", "<Esc>", "<C-v>").
type Key string

// Special keystrokes used by the grammar.
const (
	// Enter is the carriage-return sentinel that terminates search patterns.
	Enter Key = "<CR>"

	// Escape cancels a pending sequence. The driver handles it; the
	// grammar never sees it.
	Escape Key = "<Esc>"

	// Tab is the tab key.
	Tab Key = "<Tab>"

	// Backspace is the backspace key.
	Backspace Key = "<BS>"

	// CtrlV is the blockwise forced-kind prefix.
	CtrlV Key = "<C-v>"

	// CtrlR is the redo action key.
	CtrlR Key = "<C-r>"
)

// IsNotation returns true if the key uses angle-bracket notation.
func (k Key) IsNotation() bool {
	return len(k) > 1 && strings.HasPrefix(string(k), "<") && strings.HasSuffix(string(k), ">")
}

// Rune returns the key's rune and true for single-rune keys.
// Notation keys return 0 and false.
func (k Key) Rune() (rune, bool) {
	if k.IsNotation() {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(string(k))
	if r == utf8.RuneError || size != len(k) {
		return 0, false
	}
	return r, true
}

// IsDigit returns true for keys "0" through "9".
func (k Key) IsDigit() bool {
	r, ok := k.Rune()
	return ok && r >= '0' && r <= '9'
}

// IsNonZeroDigit returns true for keys "1" through "9".
func (k Key) IsNonZeroDigit() bool {
	r, ok := k.Rune()
	return ok && r >= '1' && r <= '9'
}

// Sequence is an ordered list of logical keystrokes. The driving layer owns
// it: append on each keystroke, clear on completion or cancel.
type Sequence []Key

// String joins the sequence into its notation form.
func (s Sequence) String() string {
	var b strings.Builder
	for _, k := range s {
		b.WriteString(string(k))
	}
	return b.String()
}

// Clone returns a copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Parse splits a notation string into logical keystrokes. An angle-bracket
// unit ("<CR>", "<C-v>") becomes one keystroke when it closes over a body
// of at least two characters; any other "<" is the literal keystroke, so
// "<<" and "di<" parse the way they are typed.
//
//	Parse("3dw")      → ["3" "d" "w"]
//	Parse("d<C-v>j")  → ["d" "<C-v>" "j"]
//	Parse("<<")       → ["<" "<"]
func Parse(s string) (Sequence, error) {
	var seq Sequence
	for i := 0; i < len(s); {
		if s[i] == '<' {
			if end := strings.IndexByte(s[i+1:], '>'); end >= 2 && !strings.Contains(s[i+1:i+1+end], "<") {
				seq = append(seq, Key(s[i:i+end+2]))
				i += end + 2
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError {
			return nil, fmt.Errorf("key: invalid UTF-8 at byte %d", i)
		}
		seq = append(seq, Key(s[i:i+size]))
		i += size
	}
	return seq, nil
}

// MustParse is Parse that panics on invalid input. Intended for fixed
// tables and tests.
func MustParse(s string) Sequence {
	seq, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return seq
}
