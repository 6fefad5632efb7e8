package theme

import (
	"strings"
	"testing"
)

const gpl = `GIMP Palette
Name: test
Columns: 2
# comment
  0   0   0	black
255 255 255	white
300 0 0 out of range
`

func TestParseGPL(t *testing.T) {
	p, err := ParseGPL(strings.NewReader(gpl))
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "test" || len(p.Colors) != 2 {
		t.Fatalf("palette = %+v", p)
	}
	if got := p.Lookup(0.5); got != (RGB{127, 127, 127}) {
		t.Errorf("Lookup(0.5) = %v", got)
	}
	if got := p.Lookup(2); got != (RGB{255, 255, 255}) {
		t.Errorf("Lookup(2) = %v", got)
	}
}

func TestParseGPLEmpty(t *testing.T) {
	if _, err := ParseGPL(strings.NewReader("GIMP Palette\n")); err == nil {
		t.Error("expected error for palette without colors")
	}
}

func TestSetColorsDiffer(t *testing.T) {
	th := New(nil)
	if th.SetRGB(0) == th.SetRGB(7) {
		t.Error("first and last set share a color")
	}
	if th.SetRGB(-3) != th.SetRGB(0) || th.SetRGB(42) != th.SetRGB(7) {
		t.Error("out of range sets should clamp")
	}
}
