package scene

import "testing"

func TestSetFor(t *testing.T) {
	tests := []struct {
		name string
		opts SetOptions
		info NoteInfo
		want float32
	}{
		{"channel", SetOptions{Mode: SetChannel}, NoteInfo{Pitch: 60, Channel: 3}, 3},
		{"channel wraps", SetOptions{Mode: SetChannel}, NoteInfo{Pitch: 60, Channel: 11}, 3},
		{"below key", SetOptions{Mode: SetKey, Key: 64}, NoteInfo{Pitch: 63}, 0},
		{"at key", SetOptions{Mode: SetKey, Key: 64}, NoteInfo{Pitch: 64}, 1},
		{"flat", SetOptions{Mode: SetFlat}, NoteInfo{Pitch: 100, Channel: 7}, 0},
	}
	for _, tt := range tests {
		if got := tt.opts.setFor(tt.info); got != tt.want {
			t.Errorf("%s: set = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseSetMode(t *testing.T) {
	for _, m := range []SetMode{SetChannel, SetKey, SetFlat} {
		got, err := ParseSetMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseSetMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseSetMode("rainbow"); err == nil {
		t.Error("unknown mode accepted")
	}
}
