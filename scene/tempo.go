package scene

// DefaultTempo is 120 BPM expressed in microseconds per quarter note
const DefaultTempo = 500000

// Tempo converts tempo and time signature meta data into a measure duration
type Tempo struct {
	micros            int     // microseconds per quarter note
	signature         float64 // beats per measure over beat unit
	secondsPerMeasure float64
}

// NewTempo returns 120 BPM in 4/4
func NewTempo() Tempo {
	t := Tempo{micros: DefaultTempo, signature: 1.0}
	t.recompute()
	return t
}

// UpdateSignature sets the signature from a numerator and a power-of-two denominator exponent
func (t *Tempo) UpdateSignature(numerator, denominatorExponent uint8) {
	if numerator == 0 {
		return
	}
	t.signature = float64(numerator) / float64(uint64(1)<<min(denominatorExponent, 63))
	t.recompute()
}

// UpdateTempo sets microseconds per quarter note. Zero is ignored.
func (t *Tempo) UpdateTempo(micros int) {
	if micros <= 0 {
		return
	}
	t.micros = micros
	t.recompute()
}

func (t *Tempo) recompute() {
	t.secondsPerMeasure = 4.0 * t.signature * float64(t.micros) / 1e6
}

// Micros returns the tempo in microseconds per quarter note
func (t Tempo) Micros() int { return t.micros }

// Signature returns the time signature as a ratio (4/4 is 1.0)
func (t Tempo) Signature() float64 { return t.signature }

// SecondsPerMeasure returns the measure duration for the current tempo and signature
func (t Tempo) SecondsPerMeasure() float64 { return t.secondsPerMeasure }

// BPM returns quarter notes per minute
func (t Tempo) BPM() float64 {
	return 60e6 / float64(t.micros)
}

// decodeTempo reads a 24-bit big-endian microseconds value
func decodeTempo(b []byte) int {
	return int(b[0])<<16 | int(b[1])<<8 | int(b[2])
}
