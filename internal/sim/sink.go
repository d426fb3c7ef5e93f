package sim

import (
	"errors"

	"github.com/san-kum/rovsim/internal/dynamo"
)

// Frame is what a sink gets once per tick. The slices are copies owned
// by the receiver.
type Frame struct {
	Tick     int
	Time     float64
	Depths   []float64
	Controls []float64
	Depth    float64
	Signal   float64
	Setpoint float64
	PID      dynamo.PIDTerms
}

// Sink displays or forwards frames. Open is called once before the first
// tick and Close once after the last.
type Sink interface {
	Open() error
	Render(f Frame)
	Close() error
}

// Stopper is implemented by sinks that can ask the loop to end, such as
// a window that was closed.
type Stopper interface {
	ShouldStop() bool
}

// Restarter is implemented by sinks that can ask for a fresh run with a
// new target depth.
type Restarter interface {
	RestartRequested() (setpoint float64, ok bool)
}

// Discard drops every frame.
type Discard struct{}

func (Discard) Open() error  { return nil }
func (Discard) Render(Frame) {}
func (Discard) Close() error { return nil }

// Tee fans frames out to several sinks.
type Tee []Sink

func (t Tee) Open() error {
	for i, s := range t {
		if err := s.Open(); err != nil {
			for j := i - 1; j >= 0; j-- {
				t[j].Close()
			}
			return err
		}
	}
	return nil
}

func (t Tee) Render(f Frame) {
	for _, s := range t {
		s.Render(f)
	}
}

func (t Tee) Close() error {
	var errs []error
	for _, s := range t {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t Tee) ShouldStop() bool {
	for _, s := range t {
		if st, ok := s.(Stopper); ok && st.ShouldStop() {
			return true
		}
	}
	return false
}

func (t Tee) RestartRequested() (float64, bool) {
	for _, s := range t {
		if r, ok := s.(Restarter); ok {
			if sp, ok := r.RestartRequested(); ok {
				return sp, true
			}
		}
	}
	return 0, false
}
