package metrics

import (
	"math"

	"github.com/san-kum/rovsim/internal/dynamo"
)

// Stability is the fraction of ticks spent within threshold metres of
// the target.
type Stability struct {
	name      string
	threshold float64
	inBand    int
	samples   int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(sm dynamo.Sample) {
	s.samples++
	if math.Abs(sm.Error()) <= s.threshold {
		s.inBand++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.inBand) / float64(s.samples)
}

func (s *Stability) Reset() {
	s.inBand = 0
	s.samples = 0
}
