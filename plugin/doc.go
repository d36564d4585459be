// Package plugin runs Lua scripts as interpreter actions.
//
// A script defines a global execute(ctx) function; the host loads it under a
// name and binds the returned action to a token, so scripted commands flow
// through the same dispatch path as built-in ones. The ctx table exposes the
// cursor, count, register, and buffer lines, plus update_content, set_cursor,
// and set_register for mutation. Script panics and Lua errors surface as
// ordinary action errors and never unwind into the interpreter.
package plugin
