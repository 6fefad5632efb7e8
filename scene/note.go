package scene

// ChannelsCount is the number of distinct channel sets a note can be colored with
const ChannelsCount = 8

// Position of each semitone on a 7-step white key scale, and whether it is a black key
var (
	noteShift   = [12]int{0, 0, 1, 1, 2, 3, 3, 4, 4, 5, 5, 6}
	noteIsMinor = [12]bool{false, true, false, true, false, false, true, false, true, false, true, false}
)

// Note is a single record of the note buffer, laid out the way the renderer uploads it
type Note struct {
	Note     float32 // scale-shifted position
	Duration float32
	Start    float32
	Set      float32
	IsMinor  float32
}

// End returns the time the note stops sounding
func (n Note) End() float32 {
	return n.Start + n.Duration
}

// NoteInfo keeps the originating pitch and channel for a buffer slot
type NoteInfo struct {
	Pitch   uint8
	Channel uint8
}

// ShiftedPosition maps a MIDI pitch onto the white-key scale used for display
func ShiftedPosition(pitch uint8) float32 {
	return float32(int(pitch/12)*7 + noteShift[pitch%12])
}

// IsMinor reports whether the pitch falls on a black key
func IsMinor(pitch uint8) bool {
	return noteIsMinor[pitch%12]
}

// span tracks the smallest contiguous slot range written during one update
type span struct {
	min, max int
}

func emptySpan(capacity int) span {
	return span{min: capacity, max: 0}
}

func (s *span) add(i int) {
	if i < s.min {
		s.min = i
	}
	if i > s.max {
		s.max = i
	}
}

func (s span) empty() bool {
	return s.min > s.max
}

// NoteBuffer is a fixed-capacity ring of notes, written in arrival order
type NoteBuffer struct {
	notes []Note
	infos []NoteInfo
	count int // notes ever created; count % len(notes) is the next slot
}

// NewNoteBuffer creates a ring buffer holding capacity notes
func NewNoteBuffer(capacity int) *NoteBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &NoteBuffer{
		notes: make([]Note, capacity),
		infos: make([]NoteInfo, capacity),
	}
}

// Cap returns the number of slots
func (b *NoteBuffer) Cap() int {
	return len(b.notes)
}

// Count returns the number of notes ever created
func (b *NoteBuffer) Count() int {
	return b.count
}

// Len returns how many slots hold a note
func (b *NoteBuffer) Len() int {
	return min(b.count, len(b.notes))
}

// Next returns the slot the next claimed note will be written to
func (b *NoteBuffer) Next() int {
	return b.count % len(b.notes)
}

// Claim writes a new note starting at t into the next slot and returns the slot.
// Once the buffer is full the oldest note is overwritten.
func (b *NoteBuffer) Claim(pitch, channel uint8, t float64) int {
	slot := b.Next()
	set := channel % ChannelsCount
	b.infos[slot] = NoteInfo{Pitch: pitch, Channel: set}

	minor := float32(0)
	if IsMinor(pitch) {
		minor = 1
	}
	b.notes[slot] = Note{
		Note:     ShiftedPosition(pitch),
		Duration: 0,
		Start:    float32(t),
		Set:      float32(set),
		IsMinor:  minor,
	}
	b.count++
	return slot
}

// Extend sets the duration of the note in slot so that it ends at t
func (b *NoteBuffer) Extend(slot int, t float64) {
	n := &b.notes[slot]
	n.Duration = float32(t - float64(n.Start))
}

// At returns the note and its info stored in slot
func (b *NoteBuffer) At(slot int) (Note, NoteInfo) {
	return b.notes[slot], b.infos[slot]
}

// Notes returns the backing slice; callers must not keep it past the next update
func (b *NoteBuffer) Notes() []Note {
	return b.notes
}
