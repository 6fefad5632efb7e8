package mirror

import (
	"testing"

	"go-midiscene/midi"
	"go-midiscene/scene"
	"go-midiscene/theme"
)

type fakePads struct {
	batches [][]midi.LEDUpdate
}

func (f *fakePads) ID() string                { return "fake" }
func (f *fakePads) Type() midi.ControllerType { return midi.ControllerLaunchpad }
func (f *fakePads) ClearLEDs() error          { return nil }
func (f *fakePads) Close() error              { return nil }
func (f *fakePads) SetLEDBatch(u []midi.LEDUpdate) error {
	f.batches = append(f.batches, u)
	return nil
}

func TestGridPadLayout(t *testing.T) {
	g := New(&fakePads{}, theme.New(nil), DefaultLowest)
	tests := []struct {
		pitch int
		at    pad
		ok    bool
	}{
		{36, pad{0, 0}, true},
		{43, pad{0, 7}, true},
		{44, pad{1, 0}, true},
		{99, pad{7, 7}, true},
		{35, pad{}, false},
		{100, pad{}, false},
	}
	for _, tt := range tests {
		at, ok := g.padFor(tt.pitch)
		if ok != tt.ok || at != tt.at {
			t.Errorf("padFor(%d) = %v,%v want %v,%v", tt.pitch, at, ok, tt.at, tt.ok)
		}
	}
}

func TestGridFlushDiffs(t *testing.T) {
	pads := &fakePads{}
	g := New(pads, theme.New(nil), DefaultLowest)

	var keys scene.Keys
	keys.Record(36, 0, 0)
	keys.Replay(45, 1, 2)
	keys.Record(20, 2, 0) // below the grid

	if err := g.Flush(keys); err != nil {
		t.Fatal(err)
	}
	if len(pads.batches) != 1 || len(pads.batches[0]) != 2 {
		t.Fatalf("batches = %+v, want one batch of 2", pads.batches)
	}
	for _, u := range pads.batches[0] {
		if u.Row == 1 && u.Col == 1 && u.Channel != midi.ChannelPulse {
			t.Errorf("replayed key should pulse: %+v", u)
		}
	}

	// unchanged state sends nothing
	g.Flush(keys)
	if len(pads.batches) != 1 {
		t.Errorf("unchanged flush sent %d batches", len(pads.batches)-1)
	}

	// releasing a key turns its pad off
	keys.Retire(36)
	g.Flush(keys)
	last := pads.batches[len(pads.batches)-1]
	if len(last) != 1 || last[0].Row != 0 || last[0].Col != 0 || last[0].Color != [3]uint8{} {
		t.Errorf("release batch = %+v, want pad 0,0 off", last)
	}
}
