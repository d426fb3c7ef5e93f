// Package history keeps the sliding window of samples the display draws.
package history

// DefaultMaxPoints is the window size the display is laid out for.
const DefaultMaxPoints = 100

// History is a fixed-capacity ring of (depth, control) pairs. Once full,
// recording a new pair evicts the oldest one. Depths and Controls always
// have the same length and are returned oldest first.
type History struct {
	depth   []float64
	control []float64
	pos     int
	full    bool
}

func New(maxPoints int) *History {
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}
	return &History{
		depth:   make([]float64, maxPoints),
		control: make([]float64, maxPoints),
	}
}

func (h *History) Record(depth, control float64) {
	h.depth[h.pos] = depth
	h.control[h.pos] = control
	h.pos++
	if h.pos == len(h.depth) {
		h.pos = 0
		h.full = true
	}
}

func (h *History) Len() int {
	if h.full {
		return len(h.depth)
	}
	return h.pos
}

// Depths returns a copy of the depth samples in recording order.
func (h *History) Depths() []float64 { return h.ordered(h.depth) }

// Controls returns a copy of the control samples in recording order.
func (h *History) Controls() []float64 { return h.ordered(h.control) }

func (h *History) Clear() {
	h.pos = 0
	h.full = false
}

func (h *History) ordered(buf []float64) []float64 {
	out := make([]float64, h.Len())
	if h.full {
		n := copy(out, buf[h.pos:])
		copy(out[n:], buf[:h.pos])
	} else {
		copy(out, buf[:h.pos])
	}
	return out
}
