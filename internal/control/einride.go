package control

import (
	"math"
	"time"

	"github.com/san-kum/rovsim/internal/dynamo"
	"go.einride.tech/pid"
)

// Einride runs the depth loop on go.einride.tech/pid. The library's plain
// controller uses the same discrete law as PID; saturation is applied
// here because the library controller is unbounded.
type Einride struct {
	ctrl      pid.Controller
	setpoint  float64
	interval  time.Duration
	maxThrust float64
	terms     dynamo.PIDTerms
}

func NewEinride(g Gains, setpoint, dt float64, opts ...Option) (*Einride, error) {
	if err := checkPeriod(dt); err != nil {
		return nil, err
	}
	s, err := newSettings(opts)
	if err != nil {
		return nil, err
	}
	if s.integralLimit > 0 {
		return nil, &dynamo.ConfigError{Field: "integral_limit", Value: s.integralLimit, Reason: "is not supported by the einride controller"}
	}
	// The library derives its sampling period from a Duration, so dt must
	// be a whole number of nanoseconds.
	interval := time.Duration(math.Round(dt * float64(time.Second)))
	if interval <= 0 || interval.Seconds() != dt {
		return nil, &dynamo.ConfigError{Field: "dt", Value: dt, Reason: "must be a whole number of nanoseconds for the einride controller"}
	}
	return &Einride{
		ctrl: pid.Controller{
			Config: pid.ControllerConfig{
				ProportionalGain: g.Kp,
				IntegralGain:     g.Ki,
				DerivativeGain:   g.Kd,
			},
		},
		setpoint:  setpoint,
		interval:  interval,
		maxThrust: s.maxThrust,
	}, nil
}

func (e *Einride) Compute(measurement float64) float64 {
	e.ctrl.Update(pid.ControllerInput{
		ReferenceSignal:  e.setpoint,
		ActualSignal:     measurement,
		SamplingInterval: e.interval,
	})

	st := e.ctrl.State
	raw := st.ControlSignal
	out := dynamo.Clamp(raw, -e.maxThrust, e.maxThrust)
	e.terms = dynamo.PIDTerms{
		Error:      st.ControlError,
		Integral:   st.ControlErrorIntegral,
		Derivative: st.ControlErrorDerivative,
		P:          e.ctrl.Config.ProportionalGain * st.ControlError,
		I:          e.ctrl.Config.IntegralGain * st.ControlErrorIntegral,
		D:          e.ctrl.Config.DerivativeGain * st.ControlErrorDerivative,
		Raw:        raw,
		Output:     out,
	}
	return out
}

func (e *Einride) Setpoint() float64 { return e.setpoint }

func (e *Einride) Terms() dynamo.PIDTerms { return e.terms }

func (e *Einride) Reset() {
	e.ctrl.State = pid.ControllerState{}
	e.terms = dynamo.PIDTerms{}
}
