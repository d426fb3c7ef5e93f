package control

import (
	"fmt"
	"sort"

	"github.com/san-kum/rovsim/internal/dynamo"
)

// Params carries everything a controller constructor may need.
type Params struct {
	Gains         Gains
	Setpoint      float64
	Dt            float64
	MaxThrust     float64
	IntegralLimit float64
}

func (p Params) options() []Option {
	opts := []Option{WithIntegralLimit(p.IntegralLimit)}
	if p.MaxThrust != 0 {
		opts = append(opts, WithMaxThrust(p.MaxThrust))
	}
	return opts
}

type Factory func(p Params) (dynamo.Controller, error)

var factories = map[string]Factory{
	"pid": func(p Params) (dynamo.Controller, error) {
		return NewPID(p.Gains, p.Setpoint, p.Dt, p.options()...)
	},
	"einride": func(p Params) (dynamo.Controller, error) {
		return NewEinride(p.Gains, p.Setpoint, p.Dt, p.options()...)
	},
	"none": func(p Params) (dynamo.Controller, error) {
		if err := checkPeriod(p.Dt); err != nil {
			return nil, err
		}
		return NewNone(p.Setpoint), nil
	},
}

// New builds the named controller.
func New(name string, p Params) (dynamo.Controller, error) {
	fn, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownController, name, Names())
	}
	return fn(p)
}

// Known reports whether name is a registered controller.
func Known(name string) bool {
	_, ok := factories[name]
	return ok
}

func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
