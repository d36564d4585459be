// Package key models logical keystrokes as consumed by the command grammar.
//
// A logical keystroke is a single unit of input: a printable rune ("d", "$"),
// or a notation unit for keys that have no single-rune spelling ("<CR>",
// "<Esc>", "<C-v>"). The driving layer owns the accumulated Sequence and
// clears it when a command completes or is cancelled.
//
// The package also translates tcell key events into logical keystrokes so a
// terminal driver can feed the grammar directly.
package key
