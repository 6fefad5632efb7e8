package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"go-midiscene/midi"
	"go-midiscene/scene"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch os.Args[1] {
	case "list":
		err = listPorts()
	case "monitor":
		err = monitor(arg(2))
	case "serial":
		err = monitorSerial(arg(2))
	case "scene":
		err = runScene(arg(2))
	case "poll":
		pollDevices()
	default:
		usage()
	}
	midi.CloseDriver()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func arg(i int) string {
	if len(os.Args) > i {
		return os.Args[i]
	}
	return ""
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list            - List MIDI input ports")
	fmt.Println("  monitor <port>  - Print messages arriving on an input port")
	fmt.Println("  serial <device> - Print messages parsed from a serial device")
	fmt.Println("  scene <port>    - Run the scene headless and print its state every second")
	fmt.Println("  poll            - Watch for port and Launchpad changes")
}

// interrupted returns a context cancelled on Ctrl+C
func interrupted() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func openPort(s string) (*midi.Input, error) {
	in := midi.NewInput(0)
	idx, err := strconv.Atoi(s)
	if err != nil {
		var ok bool
		if idx, ok = in.PortIndex(s); !ok {
			return nil, fmt.Errorf("MIDI input %q not found", s)
		}
	}
	if err := in.Open(idx); err != nil {
		return nil, err
	}
	fmt.Printf("Listening on %s (Ctrl+C to stop)\n", in.Current())
	return in, nil
}

func listPorts() error {
	fmt.Println("=== MIDI Input Ports ===")
	in := midi.NewInput(0)
	for i := 0; i < in.PortCount(); i++ {
		fmt.Printf("  %d: %s\n", i, in.PortName(i))
	}
	if in.PortCount() == 0 {
		fmt.Println("  (none)")
	}
	return nil
}

// drainLoop prints every message from src until ctx is done
func drainLoop(ctx context.Context, src scene.Source) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for {
				msg, ok := src.Next()
				if !ok {
					break
				}
				fmt.Printf("[%s] % X  %s\n", time.Now().Format("15:04:05.000"), msg, midi.Describe(msg))
			}
		}
	}
}

func monitor(port string) error {
	in, err := openPort(port)
	if err != nil {
		return err
	}
	defer in.Close()

	ctx, cancel := interrupted()
	defer cancel()
	drainLoop(ctx, in)
	if n := in.Dropped(); n > 0 {
		fmt.Printf("%d messages dropped\n", n)
	}
	return nil
}

func monitorSerial(dev string) error {
	if dev == "" {
		return fmt.Errorf("serial: device required")
	}
	s, err := midi.OpenSerial(dev, midi.DefaultBaud)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := interrupted()
	defer cancel()
	drainLoop(ctx, s)
	return nil
}

func runScene(port string) error {
	in, err := openPort(port)
	if err != nil {
		return err
	}
	live := scene.NewLive(in, nil, scene.Options{})
	defer live.Close()

	ctx, cancel := interrupted()
	defer cancel()

	start := time.Now()
	frame := time.NewTicker(time.Second / 30)
	report := time.NewTicker(time.Second)
	defer frame.Stop()
	defer report.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-frame.C:
			live.Update(now.Sub(start).Seconds(), 1.0)
		case <-report.C:
			keys := live.Keys()
			p := live.Pedals()
			fmt.Printf("t=%6.1fs notes=%d active=%d damper=%.2f soft=%.2f %.2fs/measure\n",
				live.Duration(), live.NotesCount(), keys.ActiveCount(), p.Damper, p.Soft, live.SecondsPerMeasure())
		}
	}
}

func pollDevices() {
	fmt.Println("Polling for device changes...")
	fmt.Println("Connect/disconnect devices to test. Ctrl+C to exit.")

	ctx, cancel := interrupted()
	defer cancel()

	dm := midi.NewDeviceManager()
	go dm.Run(ctx)

	for event := range dm.Events() {
		ts := time.Now().Format("15:04:05")
		switch event.Type {
		case midi.PortsChanged:
			fmt.Printf("[%s] Inputs: %v\n", ts, event.Ports)
		case midi.DeviceConnected:
			fmt.Printf("[%s] Launchpad connected: %s\n", ts, event.ID)
		case midi.DeviceDisconnected:
			fmt.Printf("[%s] Launchpad disconnected: %s\n", ts, event.ID)
		}
	}
}
