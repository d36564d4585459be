package interp

import "github.com/dshills/modal/classify"

// Range is the span an operator affects, produced by resolving a target.
// Start never follows End; Reverse records that the motion's destination
// is Start rather than End (backward motions).
type Range struct {
	Start Position
	End   Position

	// Kind is the range's shape after classification and any forced-kind
	// override.
	Kind classify.Kind

	// Inclusive means End's character is part of the range.
	Inclusive bool

	// Reverse marks a backward motion: the cursor destination is Start.
	Reverse bool
}

// Linewise reports whether the range spans whole lines.
func (r Range) Linewise() bool { return r.Kind == classify.Linewise }

// Target returns the motion's destination: Start when reversed, End
// otherwise. Bare motions move the cursor here.
func (r Range) Target() Position {
	if r.Reverse {
		return r.Start
	}
	return r.End
}

// Span builds an ordered range from the cursor and a motion destination,
// upholding Start ≤ End.
func Span(cursor, dest Position) Range {
	if dest.Before(cursor) {
		return Range{Start: dest, End: cursor, Reverse: true}
	}
	return Range{Start: cursor, End: dest}
}
