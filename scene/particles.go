package scene

const (
	// DefaultParticles is the number of particle systems available at once
	DefaultParticles = 256

	// LiveParticleDuration is the effect length for notes played live
	LiveParticleDuration = 10.0

	// particleLeadIn lets the animation start slightly before the onset
	particleLeadIn = 0.25
)

// Particle is one visual effect bound to a note onset. Note < 0 marks a free slot.
type Particle struct {
	Note     int
	Set      float32
	Start    float32
	Duration float32
	Elapsed  float32
}

func (p Particle) free() bool {
	return p.Note < 0
}

// ReplayParticleDuration returns the effect length for a buffered note of duration d
func ReplayParticleDuration(d float32) float32 {
	return max(2*d, d+1.2)
}

// ParticlePool is a fixed set of reusable particle slots
type ParticlePool struct {
	slots []Particle
}

// NewParticlePool creates a pool with size free slots
func NewParticlePool(size int) *ParticlePool {
	p := &ParticlePool{slots: make([]Particle, size)}
	for i := range p.slots {
		p.slots[i] = Particle{Note: -1, Set: -1}
	}
	return p
}

// Allocate binds the first free slot to a note. When the pool is full the
// particle is dropped and false is returned.
func (p *ParticlePool) Allocate(note int, set, start, duration float32) bool {
	for i := range p.slots {
		if !p.slots[i].free() {
			continue
		}
		p.slots[i] = Particle{
			Note:     note,
			Set:      set,
			Start:    start,
			Duration: duration,
		}
		return true
	}
	return false
}

// Update recomputes progress of every particle and frees those outside [start, start+duration)
func (p *ParticlePool) Update(t, speed float64) {
	ft := float32(t)
	for i := range p.slots {
		s := &p.slots[i]
		s.Elapsed = (ft - s.Start + particleLeadIn) / (float32(speed) * s.Duration)
		if ft >= s.Start+s.Duration || ft < s.Start {
			*s = Particle{Note: -1, Set: -1}
		}
	}
}

// Active returns the number of occupied slots
func (p *ParticlePool) Active() int {
	n := 0
	for _, s := range p.slots {
		if !s.free() {
			n++
		}
	}
	return n
}

// Size returns the number of slots
func (p *ParticlePool) Size() int {
	return len(p.slots)
}

// Snapshot copies all slots, free ones included
func (p *ParticlePool) Snapshot() []Particle {
	out := make([]Particle, len(p.slots))
	copy(out, p.slots)
	return out
}
