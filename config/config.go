package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go-midiscene/scene"
)

// InputConfig selects where MIDI comes from. A serial device wins over a port.
type InputConfig struct {
	PortName  string `json:"portName,omitempty"`
	PortIndex int    `json:"portIndex"`
	Serial    string `json:"serial,omitempty"`
	Baud      int    `json:"baud,omitempty"`
	Buffer    int    `json:"buffer,omitempty"` // messages held between frames
}

// SceneConfig sizes the note buffer and particle pool and picks note coloring
type SceneConfig struct {
	Capacity  int    `json:"capacity"`
	Particles int    `json:"particles"`
	SetMode   string `json:"setMode"`
	Key       int    `json:"key"` // split point for setMode "key"
}

// UIConfig stores UI preferences
type UIConfig struct {
	FPS     int     `json:"fps"`
	Speed   float64 `json:"speed"`
	Palette string  `json:"palette,omitempty"` // GIMP .gpl file
	Mirror  bool    `json:"mirror"`            // show active keys on a Launchpad
}

// Config is the main configuration structure
type Config struct {
	Input InputConfig `json:"input"`
	Scene SceneConfig `json:"scene"`
	UI    UIConfig    `json:"ui"`
	Debug bool        `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Baud:   31250,
			Buffer: 4096,
		},
		Scene: SceneConfig{
			Capacity:  scene.DefaultCapacity,
			Particles: scene.DefaultParticles,
			SetMode:   scene.SetChannel.String(),
			Key:       64,
		},
		UI: UIConfig{
			FPS:    30,
			Speed:  1.0,
			Mirror: true,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-midiscene"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. Missing fields keep their defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating its directory
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate clamps out-of-range values and rejects unknown set modes
func (c *Config) Validate() error {
	if _, err := scene.ParseSetMode(c.Scene.SetMode); err != nil {
		return err
	}
	if c.Scene.Capacity <= 0 {
		c.Scene.Capacity = scene.DefaultCapacity
	}
	if c.Scene.Particles <= 0 {
		c.Scene.Particles = scene.DefaultParticles
	}
	c.Scene.Key = min(max(c.Scene.Key, 0), 127)
	if c.UI.FPS <= 0 || c.UI.FPS > 240 {
		c.UI.FPS = 30
	}
	if c.UI.Speed <= 0 {
		c.UI.Speed = 1.0
	}
	if c.Input.Baud <= 0 {
		c.Input.Baud = 31250
	}
	if c.Input.Buffer <= 0 {
		c.Input.Buffer = 4096
	}
	return nil
}

// SetOptions returns the note coloring for the scene
func (c *Config) SetOptions() scene.SetOptions {
	mode, _ := scene.ParseSetMode(c.Scene.SetMode)
	return scene.SetOptions{Mode: mode, Key: uint8(c.Scene.Key)}
}

// SceneOptions returns the buffer sizes for the scene
func (c *Config) SceneOptions() scene.Options {
	return scene.Options{Capacity: c.Scene.Capacity, Particles: c.Scene.Particles}
}
