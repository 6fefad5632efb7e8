package midi

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go-midiscene/debug"

	"go.bug.st/serial"
)

// DefaultBaud is the MIDI DIN baud rate
const DefaultBaud = 31250

// StreamParser reassembles complete messages from a raw MIDI byte stream.
// It follows running status, skips SysEx and drops realtime bytes.
type StreamParser struct {
	status  uint8
	need    int
	buf     []byte
	inSysEx bool
}

// Feed consumes one byte and returns a message once one is complete
func (p *StreamParser) Feed(b uint8) ([]byte, bool) {
	if isRealtime(b) {
		return nil, false
	}

	if b&0x80 != 0 {
		switch {
		case b == SysExStart:
			p.inSysEx = true
			p.status = 0
			return nil, false
		case b == SysExEnd:
			p.inSysEx = false
			return nil, false
		}
		p.inSysEx = false

		n := dataLength(b)
		if n < 0 {
			p.status = 0
			return nil, false
		}
		if n == 0 {
			p.status = 0
			return []byte{b}, true
		}
		p.status = b
		p.need = n
		p.buf = append(p.buf[:0], b)
		return nil, false
	}

	if p.inSysEx || p.status == 0 {
		return nil, false
	}
	if len(p.buf) == 0 {
		// running status
		p.buf = append(p.buf, p.status)
	}
	p.buf = append(p.buf, b)
	if len(p.buf) < p.need+1 {
		return nil, false
	}

	msg := make([]byte, len(p.buf))
	copy(msg, p.buf)
	p.buf = p.buf[:0]
	if p.status >= 0xF0 {
		// system common messages do not establish running status
		p.status = 0
	}
	return msg, true
}

// readStream parses r until it fails and pushes every message to q
func readStream(r io.Reader, q *Queue) error {
	var parser StreamParser
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			if msg, ok := parser.Feed(b); ok {
				q.Push(msg)
			}
		}
		if err != nil {
			return err
		}
	}
}

// SerialInput reads MIDI from a serial device, e.g. a DIN-to-UART adapter or
// a microcontroller forwarding a keyboard.
type SerialInput struct {
	name  string
	port  serial.Port
	queue *Queue

	done      chan struct{}
	closeOnce sync.Once
}

// OpenSerial opens the named serial device and starts reading from it
func OpenSerial(name string, baud int) (*SerialInput, error) {
	if baud <= 0 {
		baud = DefaultBaud
	}
	mode := &serial.Mode{BaudRate: baud}
	p, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", name, err)
	}
	if err := p.SetReadTimeout(100 * time.Millisecond); err != nil {
		p.Close()
		return nil, fmt.Errorf("open serial %s: %w", name, err)
	}

	s := &SerialInput{
		name:  name,
		port:  p,
		queue: NewQueue(),
		done:  make(chan struct{}),
	}
	go s.run()
	debug.Log("serial", "opened %s at %d baud", name, baud)
	return s, nil
}

func (s *SerialInput) run() {
	defer close(s.done)
	err := readStream(s.port, s.queue)
	if err != nil && !errors.Is(err, io.EOF) {
		debug.Log("serial", "read %s stopped: %v", s.name, err)
	}
}

// Next returns the oldest parsed message without blocking
func (s *SerialInput) Next() ([]byte, bool) {
	return s.queue.Next()
}

// String returns the device name
func (s *SerialInput) String() string {
	return s.name
}

// Close stops reading and closes the device
func (s *SerialInput) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.port.Close()
		<-s.done
		debug.Log("serial", "closed %s", s.name)
	})
	return err
}
