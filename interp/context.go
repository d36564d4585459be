package interp

import (
	"strings"

	"github.com/google/uuid"
)

// Position is a cursor location, zero-based line and column.
type Position struct {
	Line int
	Col  int
}

// Before reports whether p precedes q in buffer order.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

// Mode is the ambient editing mode.
type Mode uint8

const (
	// ModeNormal interprets keystrokes as commands.
	ModeNormal Mode = iota

	// ModeInsert passes keystrokes to the buffer.
	ModeInsert
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeInsert {
		return "insert"
	}
	return "normal"
}

// EditorContext is the external text-editing surface the interpreter
// mutates. The buffer, its rendering, and its undo history belong to the
// host; the interpreter only reads lines and issues whole-content updates
// and cursor moves.
type EditorContext interface {
	// Lines returns the buffer's lines without terminators.
	Lines() []string

	// Content returns the whole buffer text.
	Content() string

	// Cursor returns the current cursor position.
	Cursor() Position

	// ActiveBufferID identifies the buffer being edited.
	ActiveBufferID() string

	// UpdateContent replaces the whole buffer text.
	UpdateContent(text string)

	// SetCursorPosition moves the cursor, clamping to the buffer.
	SetCursorPosition(pos Position)

	// TabSize returns the host's tab width.
	TabSize() int
}

// HistoryProvider is the optional undo surface a host may expose on its
// EditorContext. The undo and redo actions no-op without it.
type HistoryProvider interface {
	// Undo reverts the last content update. False when nothing to undo.
	Undo() bool

	// Redo reapplies the last undone update. False when nothing to redo.
	Redo() bool
}

// Buffer is an in-memory EditorContext with snapshot undo, suitable for
// hosts without their own buffer and for tests.
type Buffer struct {
	id      string
	lines   []string
	cursor  Position
	tabSize int
	undo    []snapshot
	redo    []snapshot
}

type snapshot struct {
	lines  []string
	cursor Position
}

// BufferOption configures a Buffer.
type BufferOption func(*Buffer)

// WithTabSize sets the buffer's tab width.
func WithTabSize(n int) BufferOption {
	return func(b *Buffer) {
		if n > 0 {
			b.tabSize = n
		}
	}
}

// NewBuffer creates a buffer holding text.
func NewBuffer(text string, opts ...BufferOption) *Buffer {
	b := &Buffer{
		id:      uuid.NewString(),
		lines:   splitLines(text),
		tabSize: 4,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Lines implements EditorContext.
func (b *Buffer) Lines() []string { return b.lines }

// Content implements EditorContext.
func (b *Buffer) Content() string { return strings.Join(b.lines, "\n") }

// Cursor implements EditorContext.
func (b *Buffer) Cursor() Position { return b.cursor }

// ActiveBufferID implements EditorContext.
func (b *Buffer) ActiveBufferID() string { return b.id }

// TabSize implements EditorContext.
func (b *Buffer) TabSize() int { return b.tabSize }

// UpdateContent implements EditorContext, recording an undo snapshot.
func (b *Buffer) UpdateContent(text string) {
	b.undo = append(b.undo, snapshot{lines: b.lines, cursor: b.cursor})
	b.redo = nil
	b.lines = splitLines(text)
	b.clampCursor()
}

// SetCursorPosition implements EditorContext.
func (b *Buffer) SetCursorPosition(pos Position) {
	b.cursor = pos
	b.clampCursor()
}

// Undo implements HistoryProvider.
func (b *Buffer) Undo() bool {
	if len(b.undo) == 0 {
		return false
	}
	last := b.undo[len(b.undo)-1]
	b.undo = b.undo[:len(b.undo)-1]
	b.redo = append(b.redo, snapshot{lines: b.lines, cursor: b.cursor})
	b.lines = last.lines
	b.cursor = last.cursor
	return true
}

// Redo implements HistoryProvider.
func (b *Buffer) Redo() bool {
	if len(b.redo) == 0 {
		return false
	}
	last := b.redo[len(b.redo)-1]
	b.redo = b.redo[:len(b.redo)-1]
	b.undo = append(b.undo, snapshot{lines: b.lines, cursor: b.cursor})
	b.lines = last.lines
	b.cursor = last.cursor
	return true
}

func (b *Buffer) clampCursor() {
	if len(b.lines) == 0 {
		b.lines = []string{""}
	}
	if b.cursor.Line < 0 {
		b.cursor.Line = 0
	}
	if b.cursor.Line >= len(b.lines) {
		b.cursor.Line = len(b.lines) - 1
	}
	if b.cursor.Col < 0 {
		b.cursor.Col = 0
	}
	if max := len(b.lines[b.cursor.Line]); b.cursor.Col > max {
		b.cursor.Col = max
	}
}

func splitLines(text string) []string {
	if text == "" {
		return []string{""}
	}
	return strings.Split(text, "\n")
}
