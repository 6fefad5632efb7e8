package midi

import (
	"fmt"
	"sync"
	"sync/atomic"

	"go-midiscene/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// DefaultInputBuffer is the number of messages an Input holds between frames
const DefaultInputBuffer = 4096

// Input is a live MIDI input port. Messages arrive on the driver goroutine and
// wait in a bounded channel until drained with Next; when the channel is full
// new messages are dropped.
//
// Only one Input should be listening to a given port at a time. Close the
// current port before opening another one.
type Input struct {
	mu       sync.Mutex
	ports    []drivers.In
	port     drivers.In
	stopFunc func()

	msgChan chan []byte
	dropped atomic.Uint64
}

// NewInput creates a closed input and takes a first look at the available ports
func NewInput(bufferSize int) *Input {
	if bufferSize <= 0 {
		bufferSize = DefaultInputBuffer
	}
	in := &Input{msgChan: make(chan []byte, bufferSize)}
	in.Refresh()
	return in
}

// Refresh re-reads the list of input ports from the driver
func (in *Input) Refresh() {
	ports := gomidi.GetInPorts()
	in.mu.Lock()
	in.ports = ports
	in.mu.Unlock()
}

// PortCount returns the number of known input ports
func (in *Input) PortCount() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.ports)
}

// PortName returns the name of port i, or "" if out of range
func (in *Input) PortName(i int) string {
	in.mu.Lock()
	defer in.mu.Unlock()
	if i < 0 || i >= len(in.ports) {
		return ""
	}
	return in.ports[i].String()
}

// Ports returns the names of all known input ports
func (in *Input) Ports() []string {
	in.mu.Lock()
	defer in.mu.Unlock()
	names := make([]string, len(in.ports))
	for i, p := range in.ports {
		names[i] = p.String()
	}
	return names
}

// PortIndex finds a port by name
func (in *Input) PortIndex(name string) (int, bool) {
	for i, n := range in.Ports() {
		if n == name {
			return i, true
		}
	}
	return -1, false
}

// Open starts listening on port i, closing any port opened before
func (in *Input) Open(i int) error {
	if err := in.Close(); err != nil {
		return err
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	if i < 0 || i >= len(in.ports) {
		return fmt.Errorf("open input: no port %d (%d available)", i, len(in.ports))
	}
	port := in.ports[i]
	if err := port.Open(); err != nil {
		return fmt.Errorf("open input %q: %w", port.String(), err)
	}

	stop, err := gomidi.ListenTo(port, func(msg gomidi.Message, timestampms int32) {
		in.push(msg)
	}, gomidi.HandleError(func(err error) {
		debug.Log("input", "listener error on %s: %v", port.String(), err)
	}))
	if err != nil {
		port.Close()
		return fmt.Errorf("open input %q: %w", port.String(), err)
	}

	in.port = port
	in.stopFunc = stop
	debug.Log("input", "opened %d: %s", i, port.String())
	return nil
}

func (in *Input) push(msg []byte) {
	c := make([]byte, len(msg))
	copy(c, msg)
	select {
	case in.msgChan <- c:
	default:
		n := in.dropped.Add(1)
		debug.LogEvery(100, "input", "queue full, dropped %d messages", n)
	}
}

// Next returns the oldest pending message without blocking
func (in *Input) Next() ([]byte, bool) {
	select {
	case msg := <-in.msgChan:
		return msg, true
	default:
		return nil, false
	}
}

// Current returns the name of the open port, or ""
func (in *Input) Current() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.port == nil {
		return ""
	}
	return in.port.String()
}

// Dropped returns how many messages were lost to a full queue
func (in *Input) Dropped() uint64 {
	return in.dropped.Load()
}

// Close stops listening. Pending messages stay queued.
func (in *Input) Close() error {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.stopFunc != nil {
		in.stopFunc()
		in.stopFunc = nil
	}
	if in.port == nil {
		return nil
	}
	name := in.port.String()
	err := in.port.Close()
	in.port = nil
	if err != nil {
		return fmt.Errorf("close input %q: %w", name, err)
	}
	debug.Log("input", "closed %s", name)
	return nil
}

// CloseDriver releases the MIDI driver; call once on exit after all ports are closed
func CloseDriver() {
	gomidi.CloseDriver()
}
