package interp

import (
	"github.com/dshills/modal/key"
	"github.com/dshills/modal/normalize"
	"github.com/dshills/modal/parse"
	"github.com/dshills/modal/register"
)

// Session holds all mutable interpreter state: the pending key sequence,
// the register bank, marks, macros, the last search, the last repeatable
// command, and the ambient mode. It is passed by reference into executor calls and
// owned by one goroutine.
type Session struct {
	registers *register.Store
	macros    *Recorder
	mode      Mode

	pending key.Sequence

	lastRepeat *normalize.Command

	marks map[key.Key]Position

	searchPattern   string
	searchDirection parse.SearchDirection
	hasSearch       bool
}

// NewSession creates a session with an empty register bank in normal mode.
func NewSession() *Session {
	return &Session{
		registers: register.NewStore(),
		macros:    NewRecorder(),
		marks:     make(map[key.Key]Position),
	}
}

// Registers returns the session's register bank.
func (s *Session) Registers() *register.Store { return s.registers }

// Macros returns the session's macro recorder.
func (s *Session) Macros() *Recorder { return s.macros }

// GetRegisterContent reads a register.
func (s *Session) GetRegisterContent(name key.Key) (register.Content, bool) {
	return s.registers.Get(name)
}

// SetRegisterContent writes a register.
func (s *Session) SetRegisterContent(name key.Key, text string, typ register.Type) {
	s.registers.Set(name, text, typ)
}

// Mode returns the ambient mode.
func (s *Session) Mode() Mode { return s.mode }

// SetMode transitions the ambient mode.
func (s *Session) SetMode(m Mode) { s.mode = m }

// LastRepeatableCommand returns the stored dot-repeat command, or nil.
func (s *Session) LastRepeatableCommand() *normalize.Command {
	return s.lastRepeat
}

// SetLastRepeatableCommand stores the command dot-repeat replays.
func (s *Session) SetLastRepeatableCommand(cmd *normalize.Command) {
	s.lastRepeat = cmd
}

// Mark returns a named mark position.
func (s *Session) Mark(name key.Key) (Position, bool) {
	pos, ok := s.marks[name]
	return pos, ok
}

// SetMark records a named mark position.
func (s *Session) SetMark(name key.Key, pos Position) {
	s.marks[name] = pos
}

// LastSearch returns the most recent search pattern and direction.
func (s *Session) LastSearch() (string, parse.SearchDirection, bool) {
	return s.searchPattern, s.searchDirection, s.hasSearch
}

// SetLastSearch records a search for n/N repeats.
func (s *Session) SetLastSearch(pattern string, dir parse.SearchDirection) {
	s.searchPattern = pattern
	s.searchDirection = dir
	s.hasSearch = true
}

// Pending returns the accumulated key sequence.
func (s *Session) Pending() key.Sequence { return s.pending }

// AppendPending adds a keystroke to the accumulated sequence.
func (s *Session) AppendPending(k key.Key) {
	s.pending = append(s.pending, k)
}

// ResetPending discards the accumulated sequence, e.g. on escape or after
// a command completes.
func (s *Session) ResetPending() {
	s.pending = s.pending[:0]
}
