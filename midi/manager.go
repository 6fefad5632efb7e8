package midi

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"go-midiscene/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// DeviceEvent is emitted when controllers connect/disconnect or the set of
// input ports changes
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
	Ports      []string // input port names, for PortsChanged
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
	PortsChanged
)

// portLister returns the current ports; swapped out in tests
type portLister func() ([]drivers.In, []drivers.Out)

func driverPorts() ([]drivers.In, []drivers.Out) {
	return gomidi.GetInPorts(), gomidi.GetOutPorts()
}

// DeviceManager polls the driver for port changes and Launchpad hot-plug.
// Port discovery stays out of the scene; the TUI only reacts to its events.
type DeviceManager struct {
	controllers map[string]Controller
	ports       []string
	mu          sync.RWMutex
	events      chan DeviceEvent
	pollRate    time.Duration
	timeout     time.Duration
	list        portLister
	connect     func(id string, out drivers.Out) (Controller, error)
}

// NewDeviceManager creates a new device manager
func NewDeviceManager() *DeviceManager {
	return &DeviceManager{
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		pollRate:    time.Second,
		timeout:     3 * time.Second,
		list:        driverPorts,
		connect: func(id string, out drivers.Out) (Controller, error) {
			return NewLaunchpad(id, out)
		},
	}
}

// Events returns a channel of device events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

func (dm *DeviceManager) scan() {
	type portsResult struct {
		ins  []drivers.In
		outs []drivers.Out
	}

	// CoreMIDI can hang; give up on this scan rather than block forever
	ch := make(chan portsResult, 1)
	go func() {
		ins, outs := dm.list()
		ch <- portsResult{ins: ins, outs: outs}
	}()

	var res portsResult
	select {
	case res = <-ch:
	case <-time.After(dm.timeout):
		debug.Log("devices", "port scan timed out")
		return
	}

	names := make([]string, len(res.ins))
	for i, in := range res.ins {
		names[i] = in.String()
	}
	dm.mu.Lock()
	changed := !slices.Equal(names, dm.ports)
	dm.ports = names
	dm.mu.Unlock()
	if changed {
		debug.Log("devices", "input ports: %s", strings.Join(names, ", "))
		dm.emit(DeviceEvent{Type: PortsChanged, Ports: slices.Clone(names)})
	}

	seen := make(map[string]bool)
	for _, out := range res.outs {
		id := out.String()
		if !isLaunchpad(id) {
			continue
		}
		seen[id] = true

		dm.mu.RLock()
		_, exists := dm.controllers[id]
		dm.mu.RUnlock()
		if exists {
			continue
		}

		c, err := dm.connect(id, out)
		if err != nil {
			debug.Log("devices", "connect %s: %v", id, err)
			continue
		}
		dm.mu.Lock()
		dm.controllers[id] = c
		dm.mu.Unlock()
		dm.emit(DeviceEvent{Type: DeviceConnected, Controller: c, ID: id})
	}

	dm.mu.Lock()
	var gone []string
	for id, c := range dm.controllers {
		if !seen[id] {
			c.Close()
			delete(dm.controllers, id)
			gone = append(gone, id)
		}
	}
	dm.mu.Unlock()
	for _, id := range gone {
		dm.emit(DeviceEvent{Type: DeviceDisconnected, ID: id})
	}
}

func (dm *DeviceManager) emit(e DeviceEvent) {
	select {
	case dm.events <- e:
	default:
		debug.Log("devices", "event dropped: %v %s", e.Type, e.ID)
	}
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}

func isLaunchpad(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "launchpad") && strings.Contains(name, "midi")
}
