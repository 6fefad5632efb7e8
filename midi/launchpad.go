package midi

import (
	"fmt"
	"sync/atomic"

	"go-midiscene/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Launchpad X programmer mode layout: row 0 (bottom) is notes 11-18, row 7 is
// notes 81-88. Column 8 holds the scene buttons (19, 29, ... 89).
const (
	GridRows = 8
	GridCols = 8
)

var launchpadSysEx = [][]byte{
	{0x00, 0x20, 0x29, 0x02, 0x0C, 0x00, 0x7F}, // programmer mode
	{0x00, 0x20, 0x29, 0x02, 0x0C, 0x08, 0x7F}, // full brightness
}

// Launchpad is a Launchpad X used as a pad display
type Launchpad struct {
	id    string
	send  func(msg gomidi.Message) error
	sent  atomic.Uint64
	clear []LEDUpdate
}

// NewLaunchpad opens outPort and switches the device to programmer mode
func NewLaunchpad(id string, outPort drivers.Out) (*Launchpad, error) {
	if outPort == nil {
		return nil, fmt.Errorf("open output: no port for %s", id)
	}
	send, err := gomidi.SendTo(outPort)
	if err != nil {
		return nil, fmt.Errorf("open output: %w", err)
	}
	return newLaunchpad(id, send)
}

func newLaunchpad(id string, send func(msg gomidi.Message) error) (*Launchpad, error) {
	lp := &Launchpad{id: id, send: send}
	for _, data := range launchpadSysEx {
		if err := lp.send(gomidi.SysEx(data)); err != nil {
			return nil, fmt.Errorf("init %s: %w", id, err)
		}
	}
	for row := 0; row < GridRows; row++ {
		for col := 0; col <= GridCols; col++ {
			lp.clear = append(lp.clear, LEDUpdate{Row: row, Col: col})
		}
	}
	return lp, nil
}

func (lp *Launchpad) ID() string {
	return lp.id
}

func (lp *Launchpad) Type() ControllerType {
	return ControllerLaunchpad
}

// SetLEDBatch lights pads with the nearest palette color
func (lp *Launchpad) SetLEDBatch(updates []LEDUpdate) error {
	for _, u := range updates {
		note, ok := padNote(u.Row, u.Col)
		if !ok {
			continue
		}
		if err := lp.send(gomidi.NoteOn(u.Channel, note, nearestColor(u.Color))); err != nil {
			return fmt.Errorf("set led %d,%d: %w", u.Row, u.Col, err)
		}
	}
	total := lp.sent.Add(uint64(len(updates)))
	debug.LogEvery(50, "lp-send", "batch=%d total=%d", len(updates), total)
	return nil
}

// ClearLEDs turns every pad off
func (lp *Launchpad) ClearLEDs() error {
	return lp.SetLEDBatch(lp.clear)
}

// Close blanks the grid. The output port itself belongs to the driver.
func (lp *Launchpad) Close() error {
	return lp.ClearLEDs()
}

// padNote maps a grid position to the note that addresses its LED
func padNote(row, col int) (uint8, bool) {
	if row < 0 || row >= GridRows || col < 0 || col > GridCols {
		return 0, false
	}
	return uint8((row+1)*10 + col + 1), true
}

// launchpadPalette is {velocity, R, G, B} for a spread of palette entries
var launchpadPalette = [][4]uint8{
	{ColorOff, 0, 0, 0},
	{ColorRed, 255, 0, 0},
	{7, 180, 60, 60},
	{ColorOrange, 255, 100, 0},
	{ColorYellow, 255, 200, 0},
	{19, 0, 100, 0},
	{ColorGreen, 0, 255, 0},
	{ColorCyan, 0, 200, 200},
	{43, 40, 60, 120},
	{ColorBlue, 0, 100, 255},
	{ColorPurple, 150, 0, 200},
	{ColorPink, 255, 80, 180},
	{84, 255, 150, 50},
	{97, 180, 180, 60},
	{ColorBrightWhite, 255, 255, 255},
}

// nearestColor finds the palette velocity closest to rgb
func nearestColor(rgb [3]uint8) uint8 {
	best := ColorOff
	bestDist := -1
	r, g, b := int(rgb[0]), int(rgb[1]), int(rgb[2])
	for _, p := range launchpadPalette {
		dr, dg, db := r-int(p[1]), g-int(p[2]), b-int(p[3])
		dist := dr*dr + dg*dg + db*db
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			best = p[0]
		}
	}
	return best
}
