package scene

import (
	"fmt"
	"strings"
)

// SetMode selects how notes are grouped for coloring
type SetMode int

const (
	SetChannel SetMode = iota // one set per MIDI channel
	SetKey                    // below or above a pitch threshold
	SetFlat                   // every note in set 0
)

func (m SetMode) String() string {
	switch m {
	case SetKey:
		return "key"
	case SetFlat:
		return "flat"
	default:
		return "channel"
	}
}

// ParseSetMode accepts the names produced by SetMode.String
func ParseSetMode(s string) (SetMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "channel":
		return SetChannel, nil
	case "key":
		return SetKey, nil
	case "flat":
		return SetFlat, nil
	}
	return SetChannel, fmt.Errorf("unknown set mode %q", s)
}

// SetOptions configures UpdateSets
type SetOptions struct {
	Mode SetMode
	Key  uint8 // threshold pitch for SetKey
}

func (o SetOptions) setFor(info NoteInfo) float32 {
	switch o.Mode {
	case SetChannel:
		return float32(info.Channel % ChannelsCount)
	case SetKey:
		if info.Pitch < o.Key {
			return 0
		}
		return 1
	default:
		return 0
	}
}
