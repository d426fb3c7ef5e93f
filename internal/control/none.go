package control

// None never pushes. Useful as an open-loop baseline.
type None struct {
	setpoint float64
}

func NewNone(setpoint float64) *None {
	return &None{setpoint: setpoint}
}

func (n *None) Compute(measurement float64) float64 { return 0 }

func (n *None) Setpoint() float64 { return n.setpoint }
