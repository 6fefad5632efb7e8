package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"go-midiscene/scene"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	WhiteKey  rune // ▁ idle white key
	BlackKey  rune // ▔ idle black key
	Recording rune // █ live key
	Replayed  rune // ▓ key lit by a buffered note
	Particle  rune // ✦ particle
	BarFull   rune // pedal bar filled cell
	BarEmpty  rune // pedal bar empty cell
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = Plasma
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			WhiteKey:  '▁',
			BlackKey:  '▔',
			Recording: '█',
			Replayed:  '▓',
			Particle:  '✦',
			BarFull:   '█',
			BarEmpty:  '·',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG     = 0.0
	RoleMuted  = 0.2
	RoleFG     = 0.4
	RoleAccent = 0.5
	RoleActive = 0.7
	RoleWarn   = 0.8
)

func (t *Theme) FG() lipgloss.Color     { return t.Color(RoleFG) }
func (t *Theme) Accent() lipgloss.Color { return t.Color(RoleAccent) }
func (t *Theme) Muted() lipgloss.Color  { return t.Color(RoleMuted) }
func (t *Theme) Active() lipgloss.Color { return t.Color(RoleActive) }
func (t *Theme) Warning() lipgloss.Color {
	return t.Color(RoleWarn)
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return Hex(t.Palette.Lookup(norm))
}

// SetRGB spreads note sets across the bright half of the palette
func (t *Theme) SetRGB(set float32) RGB {
	s := min(max(float64(set), 0), scene.ChannelsCount-1)
	return t.Palette.Lookup(0.3 + 0.7*s/(scene.ChannelsCount-1))
}

// SetColor is SetRGB as a lipgloss color
func (t *Theme) SetColor(set float32) lipgloss.Color {
	return Hex(t.SetRGB(set))
}

// Hex converts an RGB triple to a lipgloss color
func Hex(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
