package control

import (
	"github.com/san-kum/rovsim/internal/dynamo"
)

// DefaultMaxThrust bounds the controller output symmetrically.
const DefaultMaxThrust = 10.0

type Gains struct {
	Kp float64 `yaml:"kp"`
	Ki float64 `yaml:"ki"`
	Kd float64 `yaml:"kd"`
}

type settings struct {
	maxThrust     float64
	integralLimit float64
}

type Option func(*settings)

// WithMaxThrust overrides the saturation bound.
func WithMaxThrust(v float64) Option {
	return func(s *settings) { s.maxThrust = v }
}

// WithIntegralLimit clamps the integral accumulator to [-v, v].
// Zero leaves the accumulator unbounded.
func WithIntegralLimit(v float64) Option {
	return func(s *settings) { s.integralLimit = v }
}

func newSettings(opts []Option) (settings, error) {
	s := settings{maxThrust: DefaultMaxThrust}
	for _, opt := range opts {
		opt(&s)
	}
	if !(s.maxThrust > 0) {
		return s, &dynamo.ConfigError{Field: "max_thrust", Value: s.maxThrust, Reason: "must be positive"}
	}
	if s.integralLimit < 0 {
		return s, &dynamo.ConfigError{Field: "integral_limit", Value: s.integralLimit, Reason: "must not be negative"}
	}
	return s, nil
}

func checkPeriod(dt float64) error {
	if !(dt > 0) || !dynamo.IsFinite(dt) {
		return &dynamo.ConfigError{Field: "dt", Value: dt, Reason: "must be positive"}
	}
	return nil
}

// PID is a discrete PID controller with rectangular integration and a
// backward-difference derivative. The output is clamped to
// [-maxThrust, maxThrust]; the integral keeps accumulating while the
// output is saturated unless an integral limit was configured.
type PID struct {
	gains    Gains
	setpoint float64
	dt       float64
	settings

	integral float64
	prevErr  float64
	terms    dynamo.PIDTerms
}

func NewPID(g Gains, setpoint, dt float64, opts ...Option) (*PID, error) {
	if err := checkPeriod(dt); err != nil {
		return nil, err
	}
	s, err := newSettings(opts)
	if err != nil {
		return nil, err
	}
	return &PID{
		gains:    g,
		setpoint: setpoint,
		dt:       dt,
		settings: s,
	}, nil
}

func (p *PID) Compute(measurement float64) float64 {
	err := p.setpoint - measurement

	p.integral += err * p.dt
	if p.integralLimit > 0 {
		p.integral = dynamo.Clamp(p.integral, -p.integralLimit, p.integralLimit)
	}
	derivative := (err - p.prevErr) / p.dt

	pTerm := p.gains.Kp * err
	iTerm := p.gains.Ki * p.integral
	dTerm := p.gains.Kd * derivative
	raw := pTerm + iTerm + dTerm

	p.prevErr = err

	out := dynamo.Clamp(raw, -p.maxThrust, p.maxThrust)
	p.terms = dynamo.PIDTerms{
		Error:      err,
		Integral:   p.integral,
		Derivative: derivative,
		P:          pTerm,
		I:          iTerm,
		D:          dTerm,
		Raw:        raw,
		Output:     out,
	}
	return out
}

func (p *PID) Setpoint() float64 { return p.setpoint }

// Terms returns the breakdown of the last Compute call.
func (p *PID) Terms() dynamo.PIDTerms { return p.terms }

// Reset clears the integral and the previous error.
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.terms = dynamo.PIDTerms{}
}
