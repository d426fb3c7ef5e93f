package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/rovsim/internal/control"
	"github.com/san-kum/rovsim/internal/dynamo"
	"github.com/san-kum/rovsim/internal/history"
	"github.com/san-kum/rovsim/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultKp         = 1.2
	DefaultKi         = 0.1
	DefaultKd         = 0.5
	DefaultSetpoint   = 10.0
	DefaultDt         = 0.1
	DefaultTickPeriod = 100 * time.Millisecond
)

type Config struct {
	Controller    string        `yaml:"controller"`
	Gains         control.Gains `yaml:"gains"`
	Setpoint      float64       `yaml:"setpoint"`
	Dt            float64       `yaml:"dt"`
	MaxThrust     float64       `yaml:"max_thrust"`
	IntegralLimit float64       `yaml:"integral_limit"`
	Plant         PlantConfig   `yaml:"plant"`
	History       HistoryConfig `yaml:"history"`
	Loop          LoopConfig    `yaml:"loop"`
}

type PlantConfig struct {
	Gain         float64 `yaml:"gain"`
	InitialDepth float64 `yaml:"initial_depth"`
}

type HistoryConfig struct {
	MaxPoints int `yaml:"max_points"`
}

type LoopConfig struct {
	TickPeriod time.Duration `yaml:"tick_period"`
	// MaxTicks stops the loop after that many ticks; 0 runs until stopped.
	MaxTicks int `yaml:"max_ticks"`
}

func DefaultConfig() *Config {
	return &Config{
		Controller: "pid",
		Gains: control.Gains{
			Kp: DefaultKp,
			Ki: DefaultKi,
			Kd: DefaultKd,
		},
		Setpoint:  DefaultSetpoint,
		Dt:        DefaultDt,
		MaxThrust: control.DefaultMaxThrust,
		Plant: PlantConfig{
			Gain: physics.DefaultGain,
		},
		History: HistoryConfig{
			MaxPoints: history.DefaultMaxPoints,
		},
		Loop: LoopConfig{
			TickPeriod: DefaultTickPeriod,
		},
	}
}

// Load reads a YAML file on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto reads a YAML file on top of a copy of base. Keys missing from
// the file keep base's values.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate rejects values the loop cannot run with. The first offending
// field is reported as a *dynamo.ConfigError.
func (c *Config) Validate() error {
	reals := []struct {
		field string
		v     float64
	}{
		{"gains.kp", c.Gains.Kp},
		{"gains.ki", c.Gains.Ki},
		{"gains.kd", c.Gains.Kd},
		{"setpoint", c.Setpoint},
		{"dt", c.Dt},
		{"max_thrust", c.MaxThrust},
		{"integral_limit", c.IntegralLimit},
		{"plant.gain", c.Plant.Gain},
		{"plant.initial_depth", c.Plant.InitialDepth},
	}
	for _, r := range reals {
		if !dynamo.IsFinite(r.v) {
			return &dynamo.ConfigError{Field: r.field, Value: r.v, Reason: "must be finite"}
		}
	}

	switch {
	case !control.Known(c.Controller):
		return &dynamo.ConfigError{Field: "controller", Value: c.Controller, Reason: fmt.Sprintf("is not one of %v", control.Names())}
	case c.Dt <= 0:
		return &dynamo.ConfigError{Field: "dt", Value: c.Dt, Reason: "must be positive"}
	case c.MaxThrust <= 0:
		return &dynamo.ConfigError{Field: "max_thrust", Value: c.MaxThrust, Reason: "must be positive"}
	case c.IntegralLimit < 0:
		return &dynamo.ConfigError{Field: "integral_limit", Value: c.IntegralLimit, Reason: "must not be negative"}
	case c.History.MaxPoints <= 0:
		return &dynamo.ConfigError{Field: "history.max_points", Value: c.History.MaxPoints, Reason: "must be positive"}
	case c.Loop.TickPeriod <= 0:
		return &dynamo.ConfigError{Field: "loop.tick_period", Value: c.Loop.TickPeriod, Reason: "must be positive"}
	case c.Loop.MaxTicks < 0:
		return &dynamo.ConfigError{Field: "loop.max_ticks", Value: c.Loop.MaxTicks, Reason: "must not be negative"}
	}
	return nil
}

// ControllerParams is what the controller registry needs from the config.
func (c *Config) ControllerParams() control.Params {
	return control.Params{
		Gains:         c.Gains,
		Setpoint:      c.Setpoint,
		Dt:            c.Dt,
		MaxThrust:     c.MaxThrust,
		IntegralLimit: c.IntegralLimit,
	}
}

// Set assigns a tunable field by its flat name.
func (c *Config) Set(name string, v float64) error {
	switch name {
	case "kp":
		c.Gains.Kp = v
	case "ki":
		c.Gains.Ki = v
	case "kd":
		c.Gains.Kd = v
	case "target", "setpoint":
		c.Setpoint = v
	case "dt":
		c.Dt = v
	case "max_thrust":
		c.MaxThrust = v
	case "integral_limit":
		c.IntegralLimit = v
	case "gain":
		c.Plant.Gain = v
	case "initial_depth":
		c.Plant.InitialDepth = v
	default:
		return fmt.Errorf("unknown parameter %q (available: %v)", name, ParamNames())
	}
	return nil
}

// Apply sets every entry of params and validates the result.
func (c *Config) Apply(params map[string]float64) error {
	for k, v := range params {
		if err := c.Set(k, v); err != nil {
			return err
		}
	}
	return c.Validate()
}

// ParamNames lists the names Set accepts.
func ParamNames() []string {
	return []string{"kp", "ki", "kd", "target", "dt", "max_thrust", "integral_limit", "gain", "initial_depth"}
}
