package parse

// Status categorizes a parse result.
type Status uint8

const (
	// StatusIncomplete means a valid prefix; keep buffering keystrokes.
	StatusIncomplete Status = iota

	// StatusComplete means a full command was parsed.
	StatusComplete

	// StatusNeedsChar means the next raw keystroke is a literal argument.
	StatusNeedsChar

	// StatusInvalid means the sequence can never complete; reset it.
	StatusInvalid
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIncomplete:
		return "incomplete"
	case StatusComplete:
		return "complete"
	case StatusNeedsChar:
		return "needsChar"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// CharPurpose says what the awaited literal character is for.
type CharPurpose uint8

const (
	// CharForMotion is the target of a find/till motion.
	CharForMotion CharPurpose = iota

	// CharForMark is a mark name (set or jump).
	CharForMark

	// CharForAction is an action argument (replace character).
	CharForAction
)

// String returns the purpose name.
func (p CharPurpose) String() string {
	switch p {
	case CharForMotion:
		return "motion"
	case CharForMark:
		return "mark"
	case CharForAction:
		return "action"
	default:
		return "unknown"
	}
}

// CharContext describes a pending literal-character request. The driver
// must capture exactly one more raw keystroke, including special ones,
// before re-parsing.
type CharContext struct {
	// Pending is the token key awaiting its literal.
	Pending string

	// Purpose says what the literal is for.
	Purpose CharPurpose
}

// Result is the outcome of parsing a keystroke sequence.
type Result struct {
	// Status categorizes the result.
	Status Status

	// Command is populated when Status is StatusComplete.
	Command *Command

	// NeedsChar is populated when Status is StatusNeedsChar.
	NeedsChar *CharContext

	// Reason is populated when Status is StatusInvalid.
	Reason string
}

func incomplete() Result {
	return Result{Status: StatusIncomplete}
}

func complete(cmd *Command) Result {
	return Result{Status: StatusComplete, Command: cmd}
}

func needsChar(pending string, purpose CharPurpose) Result {
	return Result{
		Status:    StatusNeedsChar,
		NeedsChar: &CharContext{Pending: pending, Purpose: purpose},
	}
}

func invalid(reason string) Result {
	return Result{Status: StatusInvalid, Reason: reason}
}
