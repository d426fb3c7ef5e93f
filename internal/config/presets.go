package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/rovsim/internal/control"
	"github.com/san-kum/rovsim/internal/dynamo"
)

var Presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"gentle": func(c *Config) {
		c.Gains = control.Gains{Kp: 0.6, Ki: 0.02, Kd: 0.2}
	},
	"aggressive": func(c *Config) {
		c.Gains = control.Gains{Kp: 3.0, Ki: 0.5, Kd: 1.0}
	},
	"guarded": func(c *Config) {
		c.IntegralLimit = 20
	},
	"surface": func(c *Config) {
		c.Plant.InitialDepth = 10
		c.Setpoint = 2
	},
	"einride": func(c *Config) {
		c.Controller = "einride"
	},
}

// GetPreset returns a fresh config with the named preset applied.
func GetPreset(name string) (*Config, error) {
	apply, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownPreset, name, ListPresets())
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
