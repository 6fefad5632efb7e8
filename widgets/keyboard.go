package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-midiscene/scene"
	"go-midiscene/theme"
)

// KeyRange is the span of pitches drawn, inclusive
type KeyRange struct {
	Lo, Hi int
}

// Piano is the 88 key range A0..C8
var Piano = KeyRange{Lo: 21, Hi: 108}

// Width returns the number of columns the range takes
func (r KeyRange) Width() int {
	return r.Hi - r.Lo + 1
}

// RenderKeyboard draws one cell per pitch: idle keys dim, sounding keys in
// the color of their set
func RenderKeyboard(keys scene.Keys, r KeyRange, th *theme.Theme) string {
	idle := lipgloss.NewStyle().Foreground(th.Muted())
	var out strings.Builder
	for p := r.Lo; p <= r.Hi; p++ {
		k := keys[p&0x7F]
		switch k.Kind {
		case scene.KeyRecording:
			out.WriteString(lipgloss.NewStyle().Foreground(th.SetColor(k.Set)).Render(string(th.Symbols.Recording)))
		case scene.KeyReplayed:
			out.WriteString(lipgloss.NewStyle().Foreground(th.SetColor(k.Set)).Render(string(th.Symbols.Replayed)))
		default:
			sym := th.Symbols.WhiteKey
			if scene.IsMinor(uint8(p)) {
				sym = th.Symbols.BlackKey
			}
			out.WriteString(idle.Render(string(sym)))
		}
	}
	return out.String()
}

// RenderParticles draws live particles above their key, fading as they age
func RenderParticles(particles []scene.Particle, r KeyRange, th *theme.Theme) string {
	cells := make([]string, r.Width())
	for i := range cells {
		cells[i] = " "
	}
	for _, p := range particles {
		if p.Note < r.Lo || p.Note > r.Hi {
			continue
		}
		fade := 1 - float64(p.Elapsed)
		c := theme.Hex(th.SetRGB(p.Set).Scale(0.3 + 0.7*fade))
		cells[p.Note-r.Lo] = lipgloss.NewStyle().Foreground(c).Render(string(th.Symbols.Particle))
	}
	return strings.Join(cells, "")
}

// RenderPedals draws one labeled bar per pedal
func RenderPedals(p scene.Pedals, width int, th *theme.Theme) string {
	label := lipgloss.NewStyle().Foreground(th.FG())
	lines := []string{
		label.Render("damper ") + RenderBar(p.Damper, width, th),
		label.Render("sosten ") + RenderBar(p.Sostenuto, width, th),
		label.Render("soft   ") + RenderBar(p.Soft, width, th),
		label.Render("expr   ") + RenderBar(p.Expression, width, th),
	}
	return strings.Join(lines, "\n")
}

// RenderBar draws a horizontal gauge for a value in [0,1]
func RenderBar(v float32, width int, th *theme.Theme) string {
	filled := int(float32(width)*min(max(v, 0), 1) + 0.5)
	on := lipgloss.NewStyle().Foreground(th.Active())
	off := lipgloss.NewStyle().Foreground(th.Muted())
	return on.Render(strings.Repeat(string(th.Symbols.BarFull), filled)) +
		off.Render(strings.Repeat(string(th.Symbols.BarEmpty), width-filled)) +
		fmt.Sprintf(" %3.0f%%", v*100)
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
