package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"go-midiscene/scene"
	"go-midiscene/theme"
)

func TestRenderKeyboardWidth(t *testing.T) {
	th := theme.New(nil)
	var keys scene.Keys
	keys.Record(60, 0, 1)
	keys.Replay(62, 1, 2)

	out := RenderKeyboard(keys, Piano, th)
	if w := lipgloss.Width(out); w != Piano.Width() {
		t.Errorf("width = %d, want %d", w, Piano.Width())
	}
	if !strings.ContainsRune(out, th.Symbols.Recording) || !strings.ContainsRune(out, th.Symbols.Replayed) {
		t.Error("active keys not drawn")
	}
}

func TestRenderParticles(t *testing.T) {
	th := theme.New(nil)
	r := KeyRange{Lo: 60, Hi: 71}
	particles := []scene.Particle{
		{Note: 64, Set: 0, Duration: 1, Elapsed: 0.5},
		{Note: -1},
		{Note: 100, Duration: 1}, // outside the range
	}
	out := RenderParticles(particles, r, th)
	if w := lipgloss.Width(out); w != r.Width() {
		t.Errorf("width = %d, want %d", w, r.Width())
	}
	if n := strings.Count(out, string(th.Symbols.Particle)); n != 1 {
		t.Errorf("drew %d particles, want 1", n)
	}
}

func TestRenderBar(t *testing.T) {
	th := theme.New(nil)
	out := RenderBar(0.5, 10, th)
	if n := strings.Count(out, string(th.Symbols.BarFull)); n != 5 {
		t.Errorf("filled %d cells, want 5", n)
	}
	if !strings.Contains(out, "50%") {
		t.Errorf("bar = %q", out)
	}
}
