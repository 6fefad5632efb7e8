package scene

// KeyCount is the number of MIDI pitches tracked
const KeyCount = 128

// KeyKind tells whether a pitch is sounding and where its note comes from
type KeyKind uint8

const (
	KeyInactive  KeyKind = iota
	KeyRecording         // live note, duration still being extended
	KeyReplayed          // buffered note passing through the playback window
)

func (k KeyKind) String() string {
	switch k {
	case KeyRecording:
		return "recording"
	case KeyReplayed:
		return "replayed"
	default:
		return "inactive"
	}
}

// KeyState is the state of one pitch. Slot and Set are meaningful only when active.
type KeyState struct {
	Kind KeyKind
	Slot int
	Set  float32
}

// Active reports whether the pitch currently has a sounding occurrence
func (k KeyState) Active() bool {
	return k.Kind != KeyInactive
}

// Keys holds one state per pitch; a pitch has at most one active occurrence
type Keys [KeyCount]KeyState

// Record marks pitch as live-recording into slot
func (k *Keys) Record(pitch uint8, slot int, set float32) {
	k[pitch&0x7F] = KeyState{Kind: KeyRecording, Slot: slot, Set: set}
}

// Replay marks pitch as visible through the buffered note in slot
func (k *Keys) Replay(pitch uint8, slot int, set float32) {
	k[pitch&0x7F] = KeyState{Kind: KeyReplayed, Slot: slot, Set: set}
}

// Retire makes pitch inactive and reports whether it was active before
func (k *Keys) Retire(pitch uint8) bool {
	p := pitch & 0x7F
	was := k[p].Active()
	k[p] = KeyState{}
	return was
}

// RecordingIn returns the pitch recording into slot, if any
func (k *Keys) RecordingIn(slot int) (uint8, bool) {
	for p := range k {
		if k[p].Kind == KeyRecording && k[p].Slot == slot {
			return uint8(p), true
		}
	}
	return 0, false
}

// ActiveCount returns the number of sounding pitches
func (k *Keys) ActiveCount() int {
	n := 0
	for p := range k {
		if k[p].Active() {
			n++
		}
	}
	return n
}
