package midi

// ControllerType identifies the kind of controller
type ControllerType int

const (
	ControllerUnknown ControllerType = iota
	ControllerLaunchpad
)

// LEDUpdate sets one pad of a grid controller
type LEDUpdate struct {
	Row, Col int
	Color    [3]uint8
	Channel  uint8
}

// Controller is a MIDI device with a pad grid used as a secondary display
type Controller interface {
	ID() string
	Type() ControllerType

	// Output to the controller
	SetLEDBatch(updates []LEDUpdate) error
	ClearLEDs() error

	// Lifecycle
	Close() error
}

// Launchpad X color palette (velocity values 0-127)
// See Programmer's Reference Manual for full palette
const (
	ColorOff         uint8 = 0
	ColorRed         uint8 = 5
	ColorOrange      uint8 = 9
	ColorYellow      uint8 = 13
	ColorGreen       uint8 = 21
	ColorCyan        uint8 = 37
	ColorBlue        uint8 = 45
	ColorPurple      uint8 = 49
	ColorPink        uint8 = 53
	ColorBrightWhite uint8 = 119

	// Channel modes for LEDUpdate
	ChannelStatic uint8 = 0 // solid color
	ChannelPulse  uint8 = 2 // pulsing (fades)
)
