package sim

import (
	"context"
	"sync"

	"github.com/san-kum/rovsim/internal/config"
	"github.com/san-kum/rovsim/internal/control"
	"github.com/san-kum/rovsim/internal/dynamo"
	"github.com/san-kum/rovsim/internal/history"
	"github.com/san-kum/rovsim/internal/physics"
	"go.uber.org/zap"
)

// Driver owns the plant, the controller and the history and advances
// them once per tick.
type Driver struct {
	cfg     *config.Config
	clock   Clock
	log     *zap.Logger
	metrics []dynamo.Metric
	fixed   dynamo.Controller

	mu       sync.Mutex
	setpoint float64
	plant    dynamo.Plant
	ctrl     dynamo.Controller
	hist     *history.History
	tick     int
	last     Frame
	samples  []dynamo.Sample
}

type Option func(*Driver)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(d *Driver) { d.clock = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) { d.log = l }
}

// WithMetrics registers metrics that observe every sample.
func WithMetrics(ms ...dynamo.Metric) Option {
	return func(d *Driver) { d.metrics = append(d.metrics, ms...) }
}

// WithController bypasses the controller registry. On restart the
// controller is reset if it supports it, never rebuilt.
func WithController(c dynamo.Controller) Option {
	return func(d *Driver) { d.fixed = c }
}

// New validates cfg and builds a driver ready to run.
func New(cfg *config.Config, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Driver{
		cfg:      cfg.Clone(),
		clock:    WallClock{},
		log:      zap.NewNop(),
		setpoint: cfg.Setpoint,
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.build(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Driver) build() error {
	ctrl := d.fixed
	if ctrl == nil {
		p := d.cfg.ControllerParams()
		p.Setpoint = d.setpoint
		c, err := control.New(d.cfg.Controller, p)
		if err != nil {
			return err
		}
		ctrl = c
	} else if r, ok := ctrl.(dynamo.Resetter); ok {
		r.Reset()
	}

	d.ctrl = ctrl
	d.plant = physics.NewROV(d.cfg.Plant.InitialDepth, d.cfg.Plant.Gain)
	d.hist = history.New(d.cfg.History.MaxPoints)
	d.tick = 0
	d.last = Frame{Depth: d.plant.Depth(), Setpoint: ctrl.Setpoint()}
	d.samples = d.samples[:0]
	for _, m := range d.metrics {
		m.Reset()
	}
	return nil
}

// Restart discards the current run and starts over from the initial
// depth with a new target.
func (d *Driver) Restart(setpoint float64) error {
	if !dynamo.IsFinite(setpoint) {
		return &dynamo.ConfigError{Field: "setpoint", Value: setpoint, Reason: "must be finite"}
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	prev := d.setpoint
	d.setpoint = setpoint
	if err := d.build(); err != nil {
		d.setpoint = prev
		return err
	}
	d.log.Info("run restarted", zap.Float64("setpoint", setpoint))
	return nil
}

// Step runs one tick: read depth, compute, apply, record. The returned
// frame is also what Snapshot reports until the next tick.
func (d *Driver) Step() Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.step()
}

func (d *Driver) step() Frame {
	depth := d.plant.Depth()
	signal := d.ctrl.Compute(depth)
	d.plant.ApplyThrust(signal)
	d.hist.Record(depth, signal)

	s := dynamo.Sample{
		Tick:     d.tick,
		Time:     float64(d.tick) * d.cfg.Dt,
		Depth:    depth,
		Signal:   signal,
		Setpoint: d.ctrl.Setpoint(),
	}
	d.samples = append(d.samples, s)
	for _, m := range d.metrics {
		m.Observe(s)
	}

	f := Frame{
		Tick:     s.Tick,
		Time:     s.Time,
		Depths:   d.hist.Depths(),
		Controls: d.hist.Controls(),
		Depth:    depth,
		Signal:   signal,
		Setpoint: s.Setpoint,
	}
	if tr, ok := d.ctrl.(dynamo.TermsReporter); ok {
		f.PID = tr.Terms()
	}

	if ce := d.log.Check(zap.DebugLevel, "tick"); ce != nil {
		ce.Write(
			zap.Int("tick", f.Tick),
			zap.Float64("depth", depth),
			zap.Float64("signal", signal),
			zap.Float64("integral", f.PID.Integral),
			zap.Bool("saturated", f.PID.Saturated()),
		)
	}

	d.tick++
	d.last = f
	return f
}

// Snapshot returns the most recent frame. It is safe to call from any
// goroutine.
func (d *Driver) Snapshot() Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	f := d.last
	f.Depths = append([]float64(nil), f.Depths...)
	f.Controls = append([]float64(nil), f.Controls...)
	return f
}

// Run opens sink and ticks until the sink asks to stop, MaxTicks is
// reached or ctx is done. A sink that fails to open is reported as
// dynamo.ErrSinkInit and no tick runs.
func (d *Driver) Run(ctx context.Context, sink Sink) (*dynamo.Result, error) {
	if err := sink.Open(); err != nil {
		return nil, &dynamo.SinkError{Sink: sinkName(sink), Wrapped: err}
	}
	defer func() {
		if err := sink.Close(); err != nil {
			d.log.Warn("sink close failed", zap.Error(err))
		}
	}()

	ticker := d.clock.NewTicker(d.cfg.Loop.TickPeriod)
	defer ticker.Stop()

	stopper, _ := sink.(Stopper)
	restarter, _ := sink.(Restarter)
	maxTicks := d.cfg.Loop.MaxTicks

	d.log.Info("control loop started",
		zap.String("controller", d.cfg.Controller),
		zap.Float64("setpoint", d.setpoint),
		zap.Duration("period", d.cfg.Loop.TickPeriod),
		zap.Int("max_ticks", maxTicks),
	)

	ticks := 0
	reason := "context done"
loop:
	for {
		if ctx.Err() != nil {
			break
		}

		sink.Render(d.Step())
		ticks++

		if stopper != nil && stopper.ShouldStop() {
			reason = "sink requested stop"
			break
		}
		if maxTicks > 0 && ticks >= maxTicks {
			reason = "tick limit reached"
			break
		}
		if restarter != nil {
			if sp, ok := restarter.RestartRequested(); ok {
				if err := d.Restart(sp); err != nil {
					d.log.Warn("restart rejected", zap.Error(err))
				}
			}
		}

		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C():
		}
	}

	res := d.result()
	d.log.Info("control loop stopped",
		zap.String("reason", reason),
		zap.Int("ticks", res.TicksTaken),
		zap.Float64("final_depth", res.FinalDepth),
	)
	return res, nil
}

func (d *Driver) result() *dynamo.Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	res := &dynamo.Result{
		Samples:    append([]dynamo.Sample(nil), d.samples...),
		Metrics:    make(map[string]float64, len(d.metrics)),
		TicksTaken: d.tick,
		FinalDepth: d.plant.Depth(),
	}
	for _, m := range d.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res
}

// Setpoint returns the target depth of the current run.
func (d *Driver) Setpoint() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.setpoint
}

type named interface {
	Name() string
}

func sinkName(s Sink) string {
	if n, ok := s.(named); ok {
		return n.Name()
	}
	return "sink"
}
