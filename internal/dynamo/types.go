package dynamo

import "math"

// Controller turns a depth measurement into a thrust command.
type Controller interface {
	Compute(measurement float64) float64
	Setpoint() float64
}

// Resetter is implemented by controllers whose accumulated state can be cleared.
type Resetter interface {
	Reset()
}

// Plant is the simulated vehicle.
type Plant interface {
	ApplyThrust(thrust float64)
	Depth() float64
}

// Metric reduces the samples of a run to a single value.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// PIDTerms is a read-only view of the last controller computation.
type PIDTerms struct {
	Error      float64
	Integral   float64
	Derivative float64
	P, I, D    float64
	Raw        float64
	Output     float64
}

// Saturated reports whether the clamp changed the raw output.
func (t PIDTerms) Saturated() bool {
	return t.Raw != t.Output
}

// TermsReporter is implemented by controllers that expose their last terms.
type TermsReporter interface {
	Terms() PIDTerms
}

// Sample is one tick of the loop: the depth that was read and the
// command that was computed from it.
type Sample struct {
	Tick     int
	Time     float64
	Depth    float64
	Signal   float64
	Setpoint float64
}

// Error returns setpoint minus depth.
func (s Sample) Error() float64 {
	return s.Setpoint - s.Depth
}

type Result struct {
	Samples    []Sample
	Metrics    map[string]float64
	TicksTaken int
	FinalDepth float64
}

// Depths returns the depth column of the run.
func (r *Result) Depths() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Depth
	}
	return out
}

// Signals returns the control column of the run.
func (r *Result) Signals() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Signal
	}
	return out
}

// Times returns the time column of the run.
func (r *Result) Times() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Time
	}
	return out
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(math.Min(v, hi), lo)
}
