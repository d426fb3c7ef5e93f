package metrics

import (
	"math"

	"github.com/san-kum/rovsim/internal/dynamo"
)

// IAE integrates the absolute depth error over time.
type IAE struct {
	dt  float64
	sum float64
}

func NewIAE(dt float64) *IAE { return &IAE{dt: dt} }

func (m *IAE) Name() string            { return "iae" }
func (m *IAE) Observe(s dynamo.Sample) { m.sum += math.Abs(s.Error()) * m.dt }
func (m *IAE) Value() float64          { return m.sum }
func (m *IAE) Reset()                  { m.sum = 0 }

// ISE integrates the squared depth error over time.
type ISE struct {
	dt  float64
	sum float64
}

func NewISE(dt float64) *ISE { return &ISE{dt: dt} }

func (m *ISE) Name() string { return "ise" }

func (m *ISE) Observe(s dynamo.Sample) {
	e := s.Error()
	m.sum += e * e * m.dt
}

func (m *ISE) Value() float64 { return m.sum }
func (m *ISE) Reset()         { m.sum = 0 }

// Overshoot is how far the vehicle went past the target, as a percentage
// of the distance from the first sample to the target.
type Overshoot struct {
	started bool
	start   float64
	target  float64
	peak    float64
}

func NewOvershoot() *Overshoot { return &Overshoot{} }

func (o *Overshoot) Name() string { return "overshoot" }

func (o *Overshoot) Observe(s dynamo.Sample) {
	if !o.started {
		o.started = true
		o.start = s.Depth
		o.target = s.Setpoint
	}
	var past float64
	if o.target >= o.start {
		past = s.Depth - o.target
	} else {
		past = o.target - s.Depth
	}
	o.peak = math.Max(o.peak, past)
}

func (o *Overshoot) Value() float64 {
	step := math.Abs(o.target - o.start)
	if !o.started || step == 0 {
		return 0
	}
	return 100 * o.peak / step
}

func (o *Overshoot) Reset() { *o = Overshoot{} }

// SettlingTime is the time of the first sample after which the error
// stays within band (a fraction of the step size, 0.02 by default). It is
// +Inf while the run has not settled.
type SettlingTime struct {
	band    float64
	started bool
	start   float64
	settled bool
	at      float64
}

func NewSettlingTime(band float64) *SettlingTime {
	if band <= 0 {
		band = 0.02
	}
	return &SettlingTime{band: band}
}

func (st *SettlingTime) Name() string { return "settling_time" }

func (st *SettlingTime) Observe(s dynamo.Sample) {
	if !st.started {
		st.started = true
		st.start = s.Depth
	}
	tol := st.band * math.Abs(s.Setpoint-st.start)
	if tol == 0 {
		tol = st.band
	}
	if math.Abs(s.Error()) <= tol {
		if !st.settled {
			st.settled = true
			st.at = s.Time
		}
	} else {
		st.settled = false
	}
}

func (st *SettlingTime) Value() float64 {
	if !st.settled {
		return math.Inf(1)
	}
	return st.at
}

func (st *SettlingTime) Reset() {
	band := st.band
	*st = SettlingTime{band: band}
}
