package key

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// FromTcell translates a tcell key event into a logical keystroke.
// The second return is false for events the grammar has no spelling for
// (function keys, mouse-adjacent keys); drivers should ignore those.
func FromTcell(ev *tcell.EventKey) (Key, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return Key(fmt.Sprintf("<A-%c>", r)), true
		}
		return Key(string(r)), true
	case tcell.KeyEnter:
		return Enter, true
	case tcell.KeyEscape:
		return Escape, true
	case tcell.KeyTab:
		return Tab, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Backspace, true
	}

	// Control combos arrive as dedicated key codes.
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		letter := rune('a' + (k - tcell.KeyCtrlA))
		return Key(fmt.Sprintf("<C-%c>", letter)), true
	}

	return "", false
}
