package midi

import (
	"errors"
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestPadNote(t *testing.T) {
	tests := []struct {
		row, col int
		note     uint8
		ok       bool
	}{
		{0, 0, 11, true},
		{0, 7, 18, true},
		{7, 0, 81, true},
		{7, 8, 89, true}, // scene button
		{8, 0, 0, false},
		{-1, 0, 0, false},
		{0, 9, 0, false},
	}
	for _, tt := range tests {
		note, ok := padNote(tt.row, tt.col)
		if ok != tt.ok || note != tt.note {
			t.Errorf("padNote(%d,%d) = %d,%v want %d,%v", tt.row, tt.col, note, ok, tt.note, tt.ok)
		}
	}
}

func TestNearestColor(t *testing.T) {
	if got := nearestColor([3]uint8{0, 0, 0}); got != ColorOff {
		t.Errorf("black = %d, want off", got)
	}
	if got := nearestColor([3]uint8{250, 5, 5}); got != ColorRed {
		t.Errorf("red = %d, want %d", got, ColorRed)
	}
	if got := nearestColor([3]uint8{255, 255, 250}); got != ColorBrightWhite {
		t.Errorf("white = %d, want %d", got, ColorBrightWhite)
	}
}

func TestLaunchpadBatch(t *testing.T) {
	var sent []gomidi.Message
	lp, err := newLaunchpad("test", func(msg gomidi.Message) error {
		sent = append(sent, msg)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(sent) != len(launchpadSysEx) {
		t.Fatalf("init sent %d messages, want %d", len(sent), len(launchpadSysEx))
	}

	sent = nil
	err = lp.SetLEDBatch([]LEDUpdate{
		{Row: 0, Col: 0, Color: [3]uint8{255, 0, 0}},
		{Row: 9, Col: 0, Color: [3]uint8{255, 0, 0}}, // off grid, skipped
		{Row: 1, Col: 2, Color: [3]uint8{0, 0, 255}, Channel: ChannelPulse},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(sent))
	}
	var ch, key, vel uint8
	if !sent[0].GetNoteOn(&ch, &key, &vel) || key != 11 || vel != ColorRed {
		t.Errorf("first = %v", sent[0])
	}
	if !sent[1].GetNoteOn(&ch, &key, &vel) || ch != ChannelPulse || key != 23 || vel != ColorBlue {
		t.Errorf("second = %v", sent[1])
	}

	sent = nil
	if err := lp.ClearLEDs(); err != nil {
		t.Fatal(err)
	}
	if len(sent) != GridRows*(GridCols+1) {
		t.Errorf("clear sent %d messages, want %d", len(sent), GridRows*(GridCols+1))
	}
}

func TestLaunchpadInitError(t *testing.T) {
	_, err := newLaunchpad("broken", func(gomidi.Message) error { return errors.New("unplugged") })
	if err == nil {
		t.Error("expected init error")
	}
}
