package scene

import (
	"io"
	"math"

	"go-midiscene/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// DefaultCapacity is the number of notes kept in flight
const DefaultCapacity = 1024

// Source is a non-blocking queue of raw MIDI messages
type Source interface {
	// Next returns the oldest pending message, or false when the queue is empty
	Next() ([]byte, bool)
}

// Renderer receives the note buffer whenever it changes
type Renderer interface {
	Upload(notes []Note)
	UploadRange(notes []Note, min, max int)
}

// Options sizes a Live scene
type Options struct {
	Capacity  int
	Particles int
}

// Live turns a stream of incoming MIDI messages into the set of visible notes,
// particles and pedal levels at the current playback time. It is not safe for
// concurrent use; Update is meant to be called once per frame.
type Live struct {
	src      Source
	renderer Renderer

	buffer    *NoteBuffer
	keys      Keys
	particles *ParticlePool
	pedals    Pedals
	tempo     Tempo

	buffered int // slots eligible for the replay scan
	prevTime float64
	maxTime  float64
}

// NewLive creates a scene reading from src. The scene owns src from now on
// and closes it in Close if it implements io.Closer.
func NewLive(src Source, renderer Renderer, opts Options) *Live {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.Particles <= 0 {
		opts.Particles = DefaultParticles
	}
	return &Live{
		src:       src,
		renderer:  renderer,
		buffer:    NewNoteBuffer(opts.Capacity),
		particles: NewParticlePool(opts.Particles),
		tempo:     NewTempo(),
		prevTime:  math.Inf(-1),
	}
}

// Close releases the event source
func (l *Live) Close() error {
	if c, ok := l.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Update advances the scene to playback time t at the given speed
func (l *Live) Update(t, speed float64) {
	if t == l.prevTime {
		// Paused: drop whatever arrived so it does not pile up.
		l.discard()
		return
	}

	touched := emptySpan(l.buffer.Cap())

	l.particles.Update(t, speed)

	for p := range l.keys {
		k := &l.keys[p]
		switch k.Kind {
		case KeyReplayed:
			*k = KeyState{}
		case KeyRecording:
			l.buffer.Extend(k.Slot, t)
			touched.add(k.Slot)
		}
	}

	for {
		raw, ok := l.src.Next()
		if !ok {
			break
		}
		l.handle(raw, t, &touched)
	}

	l.scan(t)

	l.buffered = l.buffer.Len()
	l.prevTime = t
	l.maxTime = max(l.maxTime, t)

	if !touched.empty() && l.renderer != nil {
		l.renderer.UploadRange(l.buffer.Notes(), touched.min, touched.max)
	}
}

func (l *Live) discard() {
	n := 0
	for {
		if _, ok := l.src.Next(); !ok {
			break
		}
		n++
	}
	if n > 0 {
		debug.LogEvery(50, "scene", "paused, discarded %d messages", n)
	}
}

func (l *Live) handle(raw []byte, t float64, touched *span) {
	msg := gomidi.Message(raw)
	var ch, key, vel, cc, val uint8

	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		l.keys.Retire(key)
		l.startNote(key&0x7F, ch, t, touched)

	case msg.GetNoteEnd(&ch, &key):
		l.keys.Retire(key)

	case msg.GetControlChange(&ch, &cc, &val):
		l.pedals.Apply(cc, val)

	default:
		l.handleMeta(smf.Message(raw))
	}
}

func (l *Live) startNote(pitch, channel uint8, t float64, touched *span) {
	slot := l.buffer.Next()
	if l.buffer.Count() >= l.buffer.Cap() {
		debug.LogEvery(l.buffer.Cap(), "scene", "note buffer wrapped, overwriting slot %d", slot)
		if held, ok := l.keys.RecordingIn(slot); ok {
			l.keys.Retire(held)
		}
	}

	slot = l.buffer.Claim(pitch, channel, t)
	set := float32(channel % ChannelsCount)
	l.keys.Record(pitch, slot, set)
	touched.add(slot)

	if !l.particles.Allocate(int(pitch), set, float32(t), LiveParticleDuration) {
		debug.LogEvery(100, "scene", "particle pool full, dropped live particle for %d", pitch)
	}
}

func (l *Live) handleMeta(msg smf.Message) {
	switch {
	case msg.Is(smf.MetaTimeSigMsg):
		if len(msg) < 5 {
			return
		}
		l.tempo.UpdateSignature(msg[3], msg[4])

	case msg.Is(smf.MetaTempoMsg):
		if len(msg) < 6 {
			return
		}
		l.tempo.UpdateTempo(decodeTempo(msg[3:6]))
	}
}

// scan brings buffered notes that overlap t back into the key state, and
// starts particles for notes whose onset was crossed since the previous update.
func (l *Live) scan(t float64) {
	ft := float32(t)
	prev := float32(l.prevTime)
	for slot := 0; slot < l.buffered; slot++ {
		note, info := l.buffer.At(slot)
		if l.keys[info.Pitch&0x7F].Active() {
			continue
		}
		end := note.End()
		if end > prev && end <= ft {
			continue
		}
		if note.Start <= ft && end >= ft {
			l.keys.Replay(info.Pitch, slot, note.Set)
		}
		if note.Start > prev && note.Start <= ft {
			if !l.particles.Allocate(int(info.Pitch), note.Set, note.Start, ReplayParticleDuration(note.Duration)) {
				debug.LogEvery(100, "scene", "particle pool full, dropped replay particle for %d", info.Pitch)
			}
		}
	}
}

// UpdateSets recomputes the set of every buffered note and uploads the whole buffer
func (l *Live) UpdateSets(opts SetOptions) {
	notes := l.buffer.Notes()
	for slot := 0; slot < l.buffer.Len(); slot++ {
		notes[slot].Set = opts.setFor(l.buffer.infos[slot])
	}
	if l.renderer != nil {
		l.renderer.Upload(notes)
	}
}

// Duration returns the latest playback time seen
func (l *Live) Duration() float64 {
	return l.maxTime
}

// SecondsPerMeasure returns the measure duration at the current tempo
func (l *Live) SecondsPerMeasure() float64 {
	return l.tempo.SecondsPerMeasure()
}

// Tempo returns the current tempo and signature
func (l *Live) Tempo() Tempo {
	return l.tempo
}

// NotesCount returns the number of notes created since the scene was opened
func (l *Live) NotesCount() int {
	return l.buffer.Count()
}

// Pedals returns the current pedal levels
func (l *Live) Pedals() Pedals {
	return l.pedals
}

// Particles returns a copy of the particle pool
func (l *Live) Particles() []Particle {
	return l.particles.Snapshot()
}

// Keys returns a copy of the per-pitch key states
func (l *Live) Keys() Keys {
	return l.keys
}

// Notes returns a copy of the buffered notes in slot order
func (l *Live) Notes() []Note {
	n := l.buffer.Len()
	out := make([]Note, n)
	copy(out, l.buffer.Notes()[:n])
	return out
}

// Buffer exposes the note ring buffer for inspection
func (l *Live) Buffer() *NoteBuffer {
	return l.buffer
}
