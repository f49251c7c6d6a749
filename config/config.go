// Package config loads the viewer settings from YAML.
package config

import (
	"io/ioutil"
	"sort"

	"github.com/mogaika/heliview/input"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Window struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Samples   int    `yaml:"samples"`
	Resizable bool   `yaml:"resizable"`
}

type Projection struct {
	FOV    float32 `yaml:"fov"`
	Aspect float32 `yaml:"aspect"` // 0 takes the window ratio
	Near   float32 `yaml:"near"`
	Far    float32 `yaml:"far"`
}

type Camera struct {
	TransStep float32 `yaml:"trans_step"`
	RotStep   float32 `yaml:"rot_step"`
	Radius    float32 `yaml:"chase_radius"`
	Gain      float32 `yaml:"chase_gain"`
	Chase     bool    `yaml:"start_in_chase"`
}

type Pilot struct {
	Index     int     `yaml:"index"` // -1 disables piloting
	TransStep float32 `yaml:"trans_step"`
	RotStep   float32 `yaml:"rot_step"`
}

type Scene struct {
	Helicopters   int     `yaml:"helicopters"`
	PhaseOffset   float64 `yaml:"phase_offset"`
	MainRotorRate float32 `yaml:"main_rotor_rate"`
	TailRotorRate float32 `yaml:"tail_rotor_rate"`
	PathPeriod    float64 `yaml:"path_period"`
	PathSize      float64 `yaml:"path_size"`
	Altitude      float32 `yaml:"altitude"`
	Model         string  `yaml:"model"` // glTF file with named parts, empty for boxes
	TerrainSize   float32 `yaml:"terrain_size"`
	TerrainCells  int     `yaml:"terrain_cells"`
}

type Config struct {
	Window     Window            `yaml:"window"`
	Projection Projection        `yaml:"projection"`
	Camera     Camera            `yaml:"camera"`
	Pilot      Pilot             `yaml:"pilot"`
	Scene      Scene             `yaml:"scene"`
	Keys       map[string]string `yaml:"keys"` // command name -> key name
	Inspector  string            `yaml:"inspector"`
}

// DefaultKeys follows the classic layout: WASD to move, HJKL to look, R/T to
// roll, arrows and page keys to fly the piloted helicopter.
func DefaultKeys() map[string]string {
	return map[string]string{
		"camera_forward":    "W",
		"camera_back":       "S",
		"camera_left":       "A",
		"camera_right":      "D",
		"camera_up":         "SPACE",
		"camera_down":       "LEFT_SHIFT",
		"camera_yaw_left":   "H",
		"camera_yaw_right":  "L",
		"camera_pitch_up":   "J",
		"camera_pitch_down": "K",
		"camera_roll_left":  "R",
		"camera_roll_right": "T",
		"camera_reset":      "ENTER",
		"toggle_chase":      "C",
		"quit":              "ESCAPE",
		"pilot_forward":     "UP",
		"pilot_back":        "DOWN",
		"pilot_turn_left":   "LEFT",
		"pilot_turn_right":  "RIGHT",
		"pilot_ascend":      "PAGE_UP",
		"pilot_descend":     "PAGE_DOWN",
	}
}

func Default() *Config {
	return &Config{
		Window: Window{
			Width:   1280,
			Height:  720,
			Title:   "heliview",
			Samples: 4,
		},
		Projection: Projection{FOV: 40, Near: 1, Far: 1000},
		Camera: Camera{
			TransStep: 1,
			RotStep:   0.03,
			Radius:    30,
			Gain:      0.02,
		},
		Pilot: Pilot{Index: -1, TransStep: 1, RotStep: 0.03},
		Scene: Scene{
			Helicopters:   5,
			PhaseOffset:   0.8,
			MainRotorRate: 20,
			TailRotorRate: 5,
			PathPeriod:    24,
			PathSize:      60,
			Altitude:      15,
			TerrainSize:   400,
			TerrainCells:  64,
		},
		Keys:      DefaultKeys(),
		Inspector: ":8000",
	}
}

// Load reads path over the defaults. Keys listed in the file replace the
// default binding of their command only.
func Load(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read config")
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrapf(err, "Failed to parse config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports the first bad value.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.Errorf("window size %dx%d", c.Window.Width, c.Window.Height)
	case c.Projection.FOV <= 0 || c.Projection.FOV >= 180:
		return errors.Errorf("projection fov %v out of (0, 180)", c.Projection.FOV)
	case c.Projection.Aspect < 0:
		return errors.Errorf("projection aspect %v", c.Projection.Aspect)
	case c.Projection.Near <= 0 || c.Projection.Far <= c.Projection.Near:
		return errors.Errorf("projection planes near %v far %v", c.Projection.Near, c.Projection.Far)
	case c.Camera.Radius < 0:
		return errors.Errorf("chase radius %v", c.Camera.Radius)
	case c.Camera.Gain <= 0 || c.Camera.Gain > 1:
		return errors.Errorf("chase gain %v out of (0, 1]", c.Camera.Gain)
	case c.Scene.Helicopters < 1:
		return errors.Errorf("scene helicopters %d", c.Scene.Helicopters)
	case c.Pilot.Index < -1 || c.Pilot.Index >= c.Scene.Helicopters:
		return errors.Errorf("pilot index %d out of %d helicopters", c.Pilot.Index, c.Scene.Helicopters)
	case c.Scene.PathPeriod <= 0 || c.Scene.PathSize <= 0:
		return errors.Errorf("path period %v size %v", c.Scene.PathPeriod, c.Scene.PathSize)
	case c.Scene.TerrainSize <= 0 || c.Scene.TerrainCells < 1:
		return errors.Errorf("terrain size %v cells %d", c.Scene.TerrainSize, c.Scene.TerrainCells)
	}

	for _, name := range c.sortedKeys() {
		if _, err := input.ParseCommand(name); err != nil {
			return errors.Wrapf(err, "keys")
		}
		if c.Keys[name] == "" {
			return errors.Errorf("keys: %q has no key", name)
		}
	}
	return nil
}

// Bindings resolves the key map into commands.
func (c *Config) Bindings() (map[input.Command]string, error) {
	bindings := make(map[input.Command]string, len(c.Keys))
	for _, name := range c.sortedKeys() {
		cmd, err := input.ParseCommand(name)
		if err != nil {
			return nil, err
		}
		bindings[cmd] = c.Keys[name]
	}
	return bindings, nil
}

// AspectFor returns the configured aspect or width/height when unset.
func (c *Config) AspectFor(width, height int) float32 {
	switch {
	case c.Projection.Aspect > 0:
		return c.Projection.Aspect
	case width <= 0 || height <= 0:
		return 16.0 / 9.0
	}
	return float32(width) / float32(height)
}

func (c *Config) sortedKeys() []string {
	names := make([]string, 0, len(c.Keys))
	for name := range c.Keys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
