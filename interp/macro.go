package interp

import "github.com/dshills/modal/key"

// Recorder captures keystroke sequences into named macro slots for later
// replay. Like the rest of the session it is owned by one goroutine.
type Recorder struct {
	recording  bool
	slot       key.Key
	keys       key.Sequence
	macros     map[key.Key]key.Sequence
	lastPlayed key.Key
}

// NewRecorder creates a recorder with empty slots.
func NewRecorder() *Recorder {
	return &Recorder{macros: make(map[key.Key]key.Sequence)}
}

// Start begins capturing into the named slot, discarding the slot's
// previous content when the capture ends.
func (r *Recorder) Start(slot key.Key) error {
	if slot == "" {
		return ErrBadMacroSlot
	}
	if r.recording {
		return ErrRecording
	}
	r.recording = true
	r.slot = slot
	r.keys = nil
	return nil
}

// Stop ends the capture and saves it to its slot. An empty capture leaves
// the slot untouched. Stop is a no-op when not recording.
func (r *Recorder) Stop() {
	if !r.recording {
		return
	}
	r.recording = false
	if len(r.keys) > 0 {
		r.macros[r.slot] = r.keys
	}
	r.keys = nil
}

// IsRecording reports whether a capture is active.
func (r *Recorder) IsRecording() bool { return r.recording }

// Recording reports whether a capture is active and its slot.
func (r *Recorder) Recording() (key.Key, bool) {
	if !r.recording {
		return "", false
	}
	return r.slot, true
}

// Record appends a keystroke to the active capture. No-op when idle.
func (r *Recorder) Record(k key.Key) {
	if r.recording {
		r.keys = append(r.keys, k)
	}
}

// Get returns a copy of the named slot's sequence.
func (r *Recorder) Get(slot key.Key) (key.Sequence, bool) {
	keys, ok := r.macros[slot]
	if !ok {
		return nil, false
	}
	return keys.Clone(), true
}

// Set stores a sequence in a slot, replacing any existing content. Hosts
// use it to preload macros.
func (r *Recorder) Set(slot key.Key, keys key.Sequence) error {
	if slot == "" {
		return ErrBadMacroSlot
	}
	r.macros[slot] = keys.Clone()
	return nil
}

// LastPlayed returns the slot of the most recent successful playback.
func (r *Recorder) LastPlayed() (key.Key, bool) {
	if r.lastPlayed == "" {
		return "", false
	}
	return r.lastPlayed, true
}

// SetLastPlayed records the slot a playback ran from.
func (r *Recorder) SetLastPlayed(slot key.Key) {
	r.lastPlayed = slot
}
