package metrics

import (
	"math"

	"github.com/san-kum/rovsim/internal/dynamo"
)

// ControlEffort is the mean absolute thrust command.
type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "control_effort",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(s dynamo.Sample) {
	c.sum += math.Abs(s.Signal)
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

// Saturation is the fraction of ticks where the command sat on a limit.
type Saturation struct {
	limit     float64
	saturated int
	samples   int
}

func NewSaturation(maxThrust float64) *Saturation {
	return &Saturation{limit: maxThrust}
}

func (s *Saturation) Name() string { return "saturation" }

func (s *Saturation) Observe(sm dynamo.Sample) {
	s.samples++
	if math.Abs(sm.Signal) >= s.limit {
		s.saturated++
	}
}

func (s *Saturation) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.saturated) / float64(s.samples)
}

func (s *Saturation) Reset() {
	s.saturated = 0
	s.samples = 0
}
