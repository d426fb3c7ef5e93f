package automation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/san-kum/rovsim/internal/config"
	"github.com/san-kum/rovsim/internal/dynamo"
	"github.com/san-kum/rovsim/internal/experiment"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario
type ScenarioStep struct {
	Name       string             `yaml:"name"`
	Preset     string             `yaml:"preset"`
	Controller string             `yaml:"controller"`
	Ticks      int                `yaml:"ticks"`
	Params     map[string]float64 `yaml:"params"`
}

// StepResult pairs a step with the config it ran and its result
type StepResult struct {
	Name   string
	Config *config.Config
	Result *dynamo.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}

	return &scenario, nil
}

// Config builds the configuration of one step on top of base
func (s ScenarioStep) Config(base *config.Config) (*config.Config, error) {
	cfg := base.Clone()
	if s.Preset != "" {
		p, err := config.GetPreset(s.Preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}
	if s.Controller != "" {
		cfg.Controller = s.Controller
	}
	if s.Ticks > 0 {
		cfg.Loop.MaxTicks = s.Ticks
	}
	if err := cfg.Apply(s.Params); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunScenario executes all steps in a scenario
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, registry *experiment.Registry, log *zap.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		log.Info("running scenario step",
			zap.String("scenario", scenario.Name),
			zap.String("step", name),
			zap.Int("index", i+1),
			zap.Int("of", len(scenario.Steps)),
		)

		cfg, err := step.Config(base)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg,
			experiment.WithLogger(log),
			experiment.WithMetrics(registry.DefaultMetrics(cfg)...),
		)
		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Name: name, Config: exp.Config(), Result: result})
	}

	return results, nil
}

// ParameterSweep runs the loop across a range of one parameter
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Ticks     int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue float64
	FinalDepth float64
	Metrics    map[string]float64
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry, log *zap.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := sweep.Base.Clone()
		if sweep.Ticks > 0 {
			cfg.Loop.MaxTicks = sweep.Ticks
		}
		if err := cfg.Apply(map[string]float64{sweep.ParamName: paramVal}); err != nil {
			return results, fmt.Errorf("%s=%.4f: %w", sweep.ParamName, paramVal, err)
		}

		exp := experiment.New(cfg, experiment.WithMetrics(registry.DefaultMetrics(cfg)...))
		result, err := exp.Run(ctx)
		if err != nil {
			return results, err
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			FinalDepth: result.FinalDepth,
			Metrics:    result.Metrics,
		})

		log.Debug("sweep point done",
			zap.String("param", sweep.ParamName),
			zap.Float64("value", paramVal),
			zap.Int("index", i+1),
			zap.Int("of", sweep.NumSteps),
		)
	}

	return results, nil
}

// MonteCarloConfig defines randomized start-depth trials
type MonteCarloConfig struct {
	Base        *config.Config
	DepthSpread float64
	NumTrials   int
	Ticks       int
	Tolerance   float64
	Seed        int64
}

// MonteCarloResult holds the outcome of one trial
type MonteCarloResult struct {
	TrialID      int
	InitialDepth float64
	FinalDepth   float64
	Settled      bool // finished within Tolerance of the target
}

// RunMonteCarlo starts the vehicle at random depths around the configured
// initial depth and checks that every run reaches the target.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, log *zap.Logger) ([]MonteCarloResult, error) {
	if cfg.NumTrials < 1 {
		return nil, fmt.Errorf("monte carlo needs at least one trial, got %d", cfg.NumTrials)
	}
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	tol := cfg.Tolerance
	if tol <= 0 {
		tol = 0.1
	}

	for trial := 0; trial < cfg.NumTrials; trial++ {
		run := cfg.Base.Clone()
		run.Plant.InitialDepth += (rng.Float64() - 0.5) * 2 * cfg.DepthSpread
		if cfg.Ticks > 0 {
			run.Loop.MaxTicks = cfg.Ticks
		}

		result, err := experiment.New(run).Run(ctx)
		if err != nil {
			return results, err
		}

		results = append(results, MonteCarloResult{
			TrialID:      trial,
			InitialDepth: run.Plant.InitialDepth,
			FinalDepth:   result.FinalDepth,
			Settled:      math.Abs(run.Setpoint-result.FinalDepth) <= tol,
		})

		if (trial+1)%10 == 0 {
			log.Info("monte carlo progress", zap.Int("done", trial+1), zap.Int("of", cfg.NumTrials))
		}
	}

	return results, nil
}

// MonteCarloStats counts settled and unsettled trials
func MonteCarloStats(results []MonteCarloResult) (settled int, unsettled int) {
	for _, r := range results {
		if r.Settled {
			settled++
		} else {
			unsettled++
		}
	}
	return
}
