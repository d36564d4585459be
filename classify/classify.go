package classify

import "github.com/dshills/modal/parse"

// Kind is the spatial shape of a motion.
type Kind uint8

const (
	// Charwise spans characters within and across lines.
	Charwise Kind = iota

	// Linewise spans whole lines.
	Linewise

	// Blockwise spans a rectangular block.
	Blockwise
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Charwise:
		return "charwise"
	case Linewise:
		return "linewise"
	case Blockwise:
		return "blockwise"
	default:
		return "unknown"
	}
}

// Class is a motion's semantic shape. Inclusive means the end position's
// character is part of the range an operator affects.
type Class struct {
	Kind      Kind
	Inclusive bool
}

// linewiseMotions are naturally linewise. Prefixed motions appear by
// concatenated head+tail.
var linewiseMotions = map[string]bool{
	"j":  true,
	"k":  true,
	"G":  true,
	"gg": true,
}

// inclusiveMotions include the character under the end position.
var inclusiveMotions = map[string]bool{
	"e":  true,
	"E":  true,
	"$":  true,
	"%":  true,
	"G":  true,
	"g_": true,
	"ge": true,
}

// Classify returns a motion's natural classification.
func Classify(m *parse.Motion) Class {
	if m == nil {
		return Class{Kind: Charwise}
	}

	switch m.Kind {
	case parse.MotionChar, parse.MotionSearch, parse.MotionSearchRepeat:
		// Character-find and search motions are always inclusive.
		return Class{Kind: Charwise, Inclusive: true}

	case parse.MotionMark:
		if m.Style == parse.MarkLine {
			return Class{Kind: Linewise}
		}
		return Class{Kind: Charwise}

	case parse.MotionPrefixed:
		return lookup(m.Head + m.Tail)

	default:
		return lookup(m.Key)
	}
}

// Resolve applies a forced-kind override to a motion's classification.
// The override always wins; inclusiveness stays natural.
func Resolve(m *parse.Motion, forced parse.ForcedKind) Class {
	c := Classify(m)
	switch forced {
	case parse.ForcedChar:
		c.Kind = Charwise
	case parse.ForcedLine:
		c.Kind = Linewise
	case parse.ForcedBlock:
		c.Kind = Blockwise
	}
	return c
}

func lookup(key string) Class {
	switch {
	case linewiseMotions[key]:
		return Class{Kind: Linewise, Inclusive: inclusiveMotions[key]}
	case inclusiveMotions[key]:
		return Class{Kind: Charwise, Inclusive: true}
	default:
		return Class{Kind: Charwise}
	}
}
