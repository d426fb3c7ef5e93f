package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/rovsim/internal/config"
	"github.com/san-kum/rovsim/internal/dynamo"
	"github.com/san-kum/rovsim/internal/metrics"
)

// Registry builds metrics by name for a given configuration.
type Registry struct {
	metrics map[string]func(*config.Config) dynamo.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func(*config.Config) dynamo.Metric),
	}

	r.metrics["iae"] = func(c *config.Config) dynamo.Metric { return metrics.NewIAE(c.Dt) }
	r.metrics["ise"] = func(c *config.Config) dynamo.Metric { return metrics.NewISE(c.Dt) }
	r.metrics["overshoot"] = func(c *config.Config) dynamo.Metric { return metrics.NewOvershoot() }
	r.metrics["settling_time"] = func(c *config.Config) dynamo.Metric { return metrics.NewSettlingTime(0.02) }
	r.metrics["stability"] = func(c *config.Config) dynamo.Metric { return metrics.NewStability(0.1) }
	r.metrics["control_effort"] = func(c *config.Config) dynamo.Metric { return metrics.NewControlEffort() }
	r.metrics["saturation"] = func(c *config.Config) dynamo.Metric { return metrics.NewSaturation(c.MaxThrust) }

	return r
}

func (r *Registry) GetMetric(name string, cfg *config.Config) (dynamo.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s (available: %v)", name, r.ListMetrics())
	}
	return fn(cfg), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns a fresh instance of the standard metric set.
func (r *Registry) DefaultMetrics(cfg *config.Config) []dynamo.Metric {
	return metrics.Standard(cfg.Dt, cfg.MaxThrust)
}
