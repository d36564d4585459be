package register

import (
	"sync"

	"github.com/dshills/modal/key"
)

// Well-known register names.
const (
	// Unnamed is the default register.
	Unnamed key.Key = `"`

	// BlackHole discards everything written to it.
	BlackHole key.Key = "_"

	// SmallDelete receives deletes smaller than one line.
	SmallDelete key.Key = "-"
)

// Type categorizes register content by how a put reinserts it.
type Type uint8

const (
	// Charwise content inserts at the cursor column.
	Charwise Type = iota

	// Linewise content inserts as whole lines.
	Linewise

	// Blockwise content inserts as a rectangular block.
	Blockwise
)

// String returns the type name.
func (t Type) String() string {
	switch t {
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

// Content is a register's text plus its type.
type Content struct {
	Text string
	Type Type
}

// Store holds all registers.
type Store struct {
	mu   sync.RWMutex
	regs map[key.Key]Content
}

// NewStore creates an empty register store.
func NewStore() *Store {
	return &Store{regs: make(map[key.Key]Content)}
}

// Get returns a register's content. The bool is false when the register
// is empty or unknown. The black hole always reads empty.
func (s *Store) Get(name key.Key) (Content, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if name == BlackHole {
		return Content{}, false
	}
	c, ok := s.regs[normalizeName(name)]
	if !ok || c.Text == "" {
		return Content{}, false
	}
	return c, true
}

// Set writes a register. Writes to the black hole are discarded. An
// uppercase name appends to its lowercase register, keeping the existing
// type.
func (s *Store) Set(name key.Key, text string, typ Type) {
	if name == BlackHole {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if isUpperName(name) {
		lower := normalizeName(name)
		existing := s.regs[lower]
		if existing.Text != "" {
			existing.Text += text
			s.regs[lower] = existing
			return
		}
		s.regs[lower] = Content{Text: text, Type: typ}
		return
	}

	s.regs[name] = Content{Text: text, Type: typ}
}

// Clear empties every register.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regs = make(map[key.Key]Content)
}

// normalizeName maps uppercase names onto their lowercase register.
func normalizeName(name key.Key) key.Key {
	r, ok := name.Rune()
	if ok && r >= 'A' && r <= 'Z' {
		return key.Key(string(r - 'A' + 'a'))
	}
	return name
}

func isUpperName(name key.Key) bool {
	r, ok := name.Rune()
	return ok && r >= 'A' && r <= 'Z'
}
