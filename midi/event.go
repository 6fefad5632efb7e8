package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// MIDI status bytes (channel bits cleared)
const (
	NoteOff         uint8 = 0x80
	NoteOn          uint8 = 0x90
	PolyAftertouch  uint8 = 0xA0
	CC              uint8 = 0xB0
	ProgramChange   uint8 = 0xC0
	ChannelPressure uint8 = 0xD0
	PitchBend       uint8 = 0xE0

	SysExStart uint8 = 0xF0
	SysExEnd   uint8 = 0xF7
	Meta       uint8 = 0xFF
)

// Meta message sub-types understood by the scene
const (
	MetaTempo   uint8 = 0x51
	MetaTimeSig uint8 = 0x58
)

// dataLength returns how many data bytes follow a status byte, or -1 for
// variable length/unsupported messages.
func dataLength(status uint8) int {
	switch status & 0xF0 {
	case NoteOff, NoteOn, PolyAftertouch, CC, PitchBend:
		return 2
	case ProgramChange, ChannelPressure:
		return 1
	}
	switch status {
	case 0xF1, 0xF3: // MTC quarter frame, song select
		return 1
	case 0xF2: // song position
		return 2
	case 0xF6: // tune request
		return 0
	}
	return -1
}

// isRealtime reports single-byte clock/transport messages that may appear
// anywhere in a stream, even between data bytes.
func isRealtime(b uint8) bool {
	return b >= 0xF8
}

// Describe renders a raw message for logs and the diagnostics tool
func Describe(raw []byte) string {
	if len(raw) > 0 && raw[0] == Meta {
		return smf.Message(raw).String()
	}
	return gomidi.Message(raw).String()
}

// TempoMessage builds a tempo meta message from microseconds per quarter note
func TempoMessage(micros int) []byte {
	return []byte{Meta, MetaTempo, 0x03, byte(micros >> 16), byte(micros >> 8), byte(micros)}
}

// TimeSigMessage builds a time signature meta message; denominator is given
// as a power-of-two exponent the way the file format stores it.
func TimeSigMessage(numerator, denominatorExponent uint8) []byte {
	return []byte{Meta, MetaTimeSig, 0x04, numerator, denominatorExponent, 24, 8}
}
