package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/rovsim/internal/config"
	"github.com/san-kum/rovsim/internal/dynamo"
	"github.com/san-kum/rovsim/internal/sim"
	"go.uber.org/zap"
)

// DefaultTicks bounds a headless run whose config has no tick limit.
const DefaultTicks = 1000

// Experiment is one headless run of the loop on a virtual clock.
type Experiment struct {
	cfg     *config.Config
	log     *zap.Logger
	sink    sim.Sink
	clock   sim.Clock
	metrics []dynamo.Metric
}

type Option func(*Experiment)

func WithLogger(l *zap.Logger) Option {
	return func(e *Experiment) { e.log = l }
}

// WithSink forwards every frame to s.
func WithSink(s sim.Sink) Option {
	return func(e *Experiment) { e.sink = s }
}

// WithClock paces the run; the default never waits.
func WithClock(c sim.Clock) Option {
	return func(e *Experiment) { e.clock = c }
}

func WithMetrics(ms ...dynamo.Metric) Option {
	return func(e *Experiment) { e.metrics = append(e.metrics, ms...) }
}

func New(cfg *config.Config, opts ...Option) *Experiment {
	e := &Experiment{
		cfg:   cfg.Clone(),
		log:   zap.NewNop(),
		sink:  sim.Discard{},
		clock: sim.VirtualClock{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cfg.Loop.MaxTicks == 0 {
		e.cfg.Loop.MaxTicks = DefaultTicks
	}
	return e
}

// Config returns the configuration the run will use.
func (e *Experiment) Config() *config.Config {
	return e.cfg
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	d, err := sim.New(e.cfg,
		sim.WithClock(e.clock),
		sim.WithLogger(e.log),
		sim.WithMetrics(e.metrics...),
	)
	if err != nil {
		return nil, fmt.Errorf("experiment setup: %w", err)
	}
	return d.Run(ctx, e.sink)
}
