// Package interp executes normalized commands against an abstract editing
// surface.
//
// The interpreter owns no text: it resolves an operator's target to a
// range, hands the range to a pluggable operator implementation, routes
// action commands through a pluggable action registry, moves the cursor
// for bare motions, and manages register I/O, mode transitions,
// dot-repeat, and macro record/replay. All mutable interpreter state
// (registers, marks, macros, last search, last repeatable command, mode,
// the pending key sequence) lives in an explicit Session passed by
// reference; parsing stays pure and session-free.
//
// Execution is single-threaded and synchronous: one call per keystroke,
// run to completion, no suspension. The only recursion is dot-repeat and
// macro replay, each bounded by an explicit depth guard. A panic from a
// downstream registry implementation is caught at the top level, logged,
// and converted to a false return; the interpreter never crashes the
// driver.
package interp
