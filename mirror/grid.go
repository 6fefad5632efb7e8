// Package mirror shows the active keys of a scene on a pad grid controller.
package mirror

import (
	"go-midiscene/debug"
	"go-midiscene/midi"
	"go-midiscene/scene"
	"go-midiscene/theme"
)

// DefaultLowest puts C2 on the bottom-left pad, so the grid covers C2..D#7
const DefaultLowest = 36

type pad [2]int

// Grid maps 64 consecutive pitches onto an 8x8 grid, bottom row first, and
// only sends the pads that changed since the previous flush.
type Grid struct {
	ctrl   midi.Controller
	theme  *theme.Theme
	lowest int
	prev   map[pad]midi.LEDUpdate
}

// New creates a mirror for ctrl starting at pitch lowest
func New(ctrl midi.Controller, th *theme.Theme, lowest int) *Grid {
	return &Grid{
		ctrl:   ctrl,
		theme:  th,
		lowest: lowest,
		prev:   make(map[pad]midi.LEDUpdate),
	}
}

// Controller returns the mirrored device
func (g *Grid) Controller() midi.Controller {
	return g.ctrl
}

func (g *Grid) padFor(pitch int) (pad, bool) {
	i := pitch - g.lowest
	if i < 0 || i >= midi.GridRows*midi.GridCols {
		return pad{}, false
	}
	return pad{i / midi.GridCols, i % midi.GridCols}, true
}

// Render returns the lit pads for keys
func (g *Grid) Render(keys scene.Keys) map[pad]midi.LEDUpdate {
	lit := make(map[pad]midi.LEDUpdate)
	for p, k := range keys {
		if !k.Active() {
			continue
		}
		at, ok := g.padFor(p)
		if !ok {
			continue
		}
		ch := midi.ChannelStatic
		if k.Kind == scene.KeyReplayed {
			ch = midi.ChannelPulse
		}
		lit[at] = midi.LEDUpdate{Row: at[0], Col: at[1], Color: g.theme.SetRGB(k.Set), Channel: ch}
	}
	return lit
}

// Diff returns the updates turning the previous frame into next
func (g *Grid) Diff(next map[pad]midi.LEDUpdate) []midi.LEDUpdate {
	var updates []midi.LEDUpdate
	for at, led := range next {
		if prev, ok := g.prev[at]; !ok || prev != led {
			updates = append(updates, led)
		}
	}
	for at := range g.prev {
		if _, ok := next[at]; !ok {
			updates = append(updates, midi.LEDUpdate{Row: at[0], Col: at[1]})
		}
	}
	return updates
}

// Flush sends the pads that changed since the last call
func (g *Grid) Flush(keys scene.Keys) error {
	next := g.Render(keys)
	updates := g.Diff(next)
	if len(updates) == 0 {
		return nil
	}
	if err := g.ctrl.SetLEDBatch(updates); err != nil {
		debug.Log("mirror", "flush %s: %v", g.ctrl.ID(), err)
		return err
	}
	g.prev = next
	return nil
}
