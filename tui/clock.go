package tui

import "time"

// Clock is the playback time fed to the scene. It advances with wall time
// scaled by speed while playing and stands still while paused.
type Clock struct {
	time    float64
	speed   float64
	playing bool
	last    time.Time
}

// NewClock starts playing at time 0
func NewClock(speed float64) *Clock {
	if speed <= 0 {
		speed = 1
	}
	return &Clock{speed: speed, playing: true}
}

// Advance moves the clock to wall time now and returns the playback time
func (c *Clock) Advance(now time.Time) float64 {
	if c.playing && !c.last.IsZero() {
		c.time += now.Sub(c.last).Seconds() * c.speed
	}
	c.last = now
	return c.time
}

// Time returns the playback time without advancing
func (c *Clock) Time() float64 { return c.time }

// Speed returns the playback speed multiplier
func (c *Clock) Speed() float64 { return c.speed }

// Playing reports whether time advances
func (c *Clock) Playing() bool { return c.playing }

// Toggle pauses or resumes
func (c *Clock) Toggle() {
	c.playing = !c.playing
}

// Seek jumps by delta seconds, never before 0
func (c *Clock) Seek(delta float64) {
	c.time = max(c.time+delta, 0)
}

// SetSpeed changes the speed multiplier, clamped to [0.1, 8]
func (c *Clock) SetSpeed(s float64) {
	c.speed = min(max(s, 0.1), 8)
}
