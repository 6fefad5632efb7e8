package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"go-midiscene/config"
	"go-midiscene/debug"
	"go-midiscene/midi"
	"go-midiscene/scene"
	"go-midiscene/theme"
	"go-midiscene/tui"
)

func main() {
	cfgPath := flag.String("config", "", "config file (default ~/.config/go-midiscene/config.json)")
	port := flag.Int("port", -1, "MIDI input port index")
	portName := flag.String("port-name", "", "MIDI input port name")
	serialDev := flag.String("serial", "", "read MIDI from a serial device instead of a port")
	baud := flag.Int("baud", 0, "serial baud rate")
	speed := flag.Float64("speed", 0, "playback speed")
	dbg := flag.Bool("debug", false, "write ~/.config/go-midiscene/debug.log")
	save := flag.Bool("save", false, "write the effective settings back to the config file and exit")
	flag.Parse()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *port >= 0 {
		cfg.Input.PortIndex = *port
		cfg.Input.PortName = ""
	}
	if *portName != "" {
		cfg.Input.PortName = *portName
	}
	if *serialDev != "" {
		cfg.Input.Serial = *serialDev
	}
	if *baud > 0 {
		cfg.Input.Baud = *baud
	}
	if *speed > 0 {
		cfg.UI.Speed = *speed
	}
	cfg.Debug = cfg.Debug || *dbg

	if *save {
		if err := saveConfig(cfg, *cfgPath); err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if cfg.Debug {
		if err := debug.Enable(); err != nil {
			fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	src, name, err := openSource(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "input: %v\n", err)
		os.Exit(1)
	}
	defer midi.CloseDriver()

	palette := theme.Plasma
	if cfg.UI.Palette != "" {
		if palette, err = theme.LoadGPL(cfg.UI.Palette); err != nil {
			fmt.Fprintf(os.Stderr, "theme: %v\n", err)
			palette = theme.Plasma
		}
	}
	th := theme.New(palette)

	// The scene owns the input from here on and closes it.
	uploads := &tui.UploadStats{}
	live := scene.NewLive(src, uploads, cfg.SceneOptions())
	defer live.Close()
	live.UpdateSets(cfg.SetOptions())

	deviceMgr := midi.NewDeviceManager()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go deviceMgr.Run(ctx)

	m := tui.NewModel(live, uploads, tui.NewClock(cfg.UI.Speed), th)
	m.DeviceMgr = deviceMgr
	m.Source = name
	m.FPS = cfg.UI.FPS
	m.Sets = cfg.SetOptions()
	m.Mirror = cfg.UI.Mirror

	debug.Log("main", "starting on %s, capacity=%d particles=%d", name, cfg.Scene.Capacity, cfg.Scene.Particles)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func saveConfig(cfg *config.Config, path string) error {
	if path != "" {
		return cfg.SaveTo(path)
	}
	return cfg.Save()
}

// openSource opens the serial device if one is configured, otherwise the MIDI
// input port chosen by name or index.
func openSource(cfg *config.Config) (scene.Source, string, error) {
	if cfg.Input.Serial != "" {
		s, err := midi.OpenSerial(cfg.Input.Serial, cfg.Input.Baud)
		if err != nil {
			return nil, "", err
		}
		return s, s.String(), nil
	}

	in := midi.NewInput(cfg.Input.Buffer)
	if in.PortCount() == 0 {
		return nil, "", fmt.Errorf("no MIDI input ports found")
	}
	idx := cfg.Input.PortIndex
	if cfg.Input.PortName != "" {
		i, ok := in.PortIndex(cfg.Input.PortName)
		if !ok {
			return nil, "", fmt.Errorf("MIDI input %q not found", cfg.Input.PortName)
		}
		idx = i
	}
	if err := in.Open(idx); err != nil {
		return nil, "", err
	}
	return in, in.Current(), nil
}
