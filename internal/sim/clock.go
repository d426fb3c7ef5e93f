package sim

import "time"

// Ticker delivers loop ticks.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock schedules the fixed-period loop.
type Clock interface {
	NewTicker(period time.Duration) Ticker
}

// WallClock paces the loop in real time.
type WallClock struct{}

func (WallClock) NewTicker(period time.Duration) Ticker {
	return &wallTicker{t: time.NewTicker(period)}
}

type wallTicker struct {
	t *time.Ticker
}

func (w *wallTicker) C() <-chan time.Time { return w.t.C }
func (w *wallTicker) Stop()               { w.t.Stop() }

// VirtualClock never waits. Every receive on its ticker returns at once,
// so a loop driven by it runs as fast as it can compute.
type VirtualClock struct{}

func (VirtualClock) NewTicker(period time.Duration) Ticker {
	ch := make(chan time.Time)
	close(ch)
	return virtualTicker(ch)
}

type virtualTicker chan time.Time

func (v virtualTicker) C() <-chan time.Time { return v }
func (v virtualTicker) Stop()               {}
