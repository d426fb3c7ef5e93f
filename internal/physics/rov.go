package physics

// DefaultGain is the depth change per unit of thrust per tick.
const DefaultGain = 0.05

type ROV struct {
	depth float64
	gain  float64
}

func NewROV(initialDepth, gain float64) *ROV {
	return &ROV{
		depth: initialDepth,
		gain:  gain,
	}
}

// ApplyThrust moves the vehicle by thrust*gain. Positive thrust dives.
func (r *ROV) ApplyThrust(thrust float64) {
	r.depth += thrust * r.gain
}

func (r *ROV) Depth() float64 { return r.depth }
