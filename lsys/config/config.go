// Package config loads the growth configuration from YAML and turns it into the
// values the grammar, turtle and playback packages expect.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"arbor/lsys/expansion"
	"arbor/lsys/grammar"
	"arbor/lsys/playback"
	"arbor/lsys/quarkgl"
	"arbor/lsys/turtle"
)

// Vec is a 3D vector written as a YAML sequence: [x, y, z].
type Vec [3]float64

func (v Vec) V3() quarkgl.Vec3 { return quarkgl.V3(v[0], v[1], v[2]) }

// Limits caps unbounded growth. Zero values are unlimited.
type Limits struct {
	MaxGeneration int    `yaml:"max_generation"`
	MaxSymbols    uint64 `yaml:"max_symbols"`
	// OnLimit is "freeze" or "stop".
	OnLimit string `yaml:"on_limit"`
}

// View configures the host window and HUD.
type View struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	TPS        int     `yaml:"tps"`
	AutoRotate float64 `yaml:"auto_rotate"`
	// TrackerAlpha is the per-frame blend of the camera target toward the bounds center.
	TrackerAlpha float64 `yaml:"tracker_alpha"`
	HUD          bool    `yaml:"hud"`
}

// Log configures logging.
type Log struct {
	Level string `yaml:"level"`
	// JSONFile, when set, receives a JSON copy of every record.
	JSONFile string `yaml:"json_file"`
}

// Config is the full configuration, fixed at startup.
type Config struct {
	Axiom       string            `yaml:"axiom"`
	Rules       map[string]string `yaml:"rules"`
	Generations int               `yaml:"generations"`
	// Angle is the turn angle in degrees.
	Angle       float64       `yaml:"angle"`
	Step        float64       `yaml:"step"`
	Heading     Vec           `yaml:"heading"`
	Axis        Vec           `yaml:"axis"`
	SettleDelay time.Duration `yaml:"settle_delay"`
	// Underflow is "ignore" or "error".
	Underflow string `yaml:"underflow"`
	Limits    Limits `yaml:"limits"`

	View View `yaml:"view"`
	Log  Log  `yaml:"log"`
	// Listen is the introspection HTTP address; empty disables it.
	Listen string `yaml:"listen"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Axiom: "XX",
		Rules: map[string]string{
			"X": "F+[[X]-X]-F[-FX]+X",
			"F": "FF",
		},
		Generations: 6,
		Angle:       90,
		Step:        5,
		Heading:     Vec{-1, 0, 0},
		Axis:        Vec{0, 1, 0},
		SettleDelay: 300 * time.Millisecond,
		Underflow:   "ignore",
		Limits:      Limits{OnLimit: "freeze"},
		View: View{
			Width:        320,
			Height:       320,
			TPS:          60,
			AutoRotate:   0.25,
			TrackerAlpha: 0.001,
			HUD:          true,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads a YAML file on top of Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	cfg := Default()
	cfg.Rules = nil
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if cfg.Rules == nil {
		cfg.Rules = Default().Rules
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.Grammar(); err != nil {
		errs = append(errs, err)
	}
	if c.Generations < 0 {
		errs = append(errs, fmt.Errorf("generations must be >= 0, got %d", c.Generations))
	}
	if c.Step <= 0 {
		errs = append(errs, fmt.Errorf("step must be > 0, got %v", c.Step))
	}
	if c.Heading == (Vec{}) {
		errs = append(errs, errors.New("heading must be non-zero"))
	}
	if c.Axis == (Vec{}) {
		errs = append(errs, errors.New("axis must be non-zero"))
	}
	if c.SettleDelay < 0 {
		errs = append(errs, fmt.Errorf("settle_delay must be >= 0, got %v", c.SettleDelay))
	}
	if _, err := c.UnderflowPolicy(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.CapPolicy(); err != nil {
		errs = append(errs, err)
	}
	if c.Limits.MaxGeneration < 0 {
		errs = append(errs, fmt.Errorf("limits.max_generation must be >= 0, got %d", c.Limits.MaxGeneration))
	}
	if c.Limits.MaxGeneration > 0 && c.Generations > c.Limits.MaxGeneration {
		errs = append(errs, fmt.Errorf("generations %d exceeds limits.max_generation %d", c.Generations, c.Limits.MaxGeneration))
	}
	if c.View.Width <= 0 || c.View.Height <= 0 {
		errs = append(errs, fmt.Errorf("view size must be positive, got %dx%d", c.View.Width, c.View.Height))
	}
	if c.View.TPS <= 0 {
		errs = append(errs, fmt.Errorf("view.tps must be > 0, got %d", c.View.TPS))
	}
	if c.View.TrackerAlpha < 0 || c.View.TrackerAlpha > 1 {
		errs = append(errs, fmt.Errorf("view.tracker_alpha must be within [0,1], got %v", c.View.TrackerAlpha))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Grammar parses the axiom and rules.
func (c Config) Grammar() (*grammar.Grammar, error) {
	g, err := grammar.Parse(c.Axiom, c.Rules)
	if err != nil {
		return nil, fmt.Errorf("grammar: %w", err)
	}
	return g, nil
}

func (c Config) UnderflowPolicy() (turtle.UnderflowPolicy, error) {
	switch strings.ToLower(c.Underflow) {
	case "", "ignore":
		return turtle.UnderflowIgnore, nil
	case "error":
		return turtle.UnderflowError, nil
	}
	return 0, fmt.Errorf("underflow must be ignore|error, got %q", c.Underflow)
}

func (c Config) CapPolicy() (playback.CapPolicy, error) {
	switch strings.ToLower(c.Limits.OnLimit) {
	case "", "freeze":
		return playback.CapFreeze, nil
	case "stop":
		return playback.CapStop, nil
	}
	return 0, fmt.Errorf("limits.on_limit must be freeze|stop, got %q", c.Limits.OnLimit)
}

func (c Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// Turtle returns the turtle geometry. Call Validate first.
func (c Config) Turtle() turtle.Config {
	u, _ := c.UnderflowPolicy()
	return turtle.Config{
		Angle:     quarkgl.DegToRad(c.Angle),
		Step:      c.Step,
		Axis:      c.Axis.V3(),
		Heading:   c.Heading.V3(),
		Underflow: u,
	}
}

func (c Config) ExpansionLimits() expansion.Limits {
	return expansion.Limits{
		MaxGeneration: c.Limits.MaxGeneration,
		MaxSymbols:    c.Limits.MaxSymbols,
	}
}
