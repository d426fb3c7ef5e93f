package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/san-kum/rovsim/internal/automation"
	"github.com/san-kum/rovsim/internal/config"
	"github.com/san-kum/rovsim/internal/experiment"
	"github.com/san-kum/rovsim/internal/metrics"
	"github.com/san-kum/rovsim/internal/optim"
	"github.com/spf13/cobra"
)

var (
	metricName string
	tuneTicks  int
	tuneSteps  int
	sweepTicks int
	sweepSteps int
	mcTicks    int
	workers    int
	kpRange    []float64
	kiRange    []float64
	kdRange    []float64
	bestOut    string
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	trials     int
	spread     float64
	tolerance  float64
	seed       int64
)

func tuneCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "tune",
		Short: "grid search kp, ki and kd for the lowest metric",
		RunE:  runTune,
	}
	c.Flags().StringVar(&metricName, "metric", "iae", "metric to minimise")
	c.Flags().IntVar(&tuneTicks, "ticks", 500, "ticks per trial")
	c.Flags().IntVar(&tuneSteps, "steps", 5, "grid points per gain")
	c.Flags().IntVar(&workers, "workers", 0, "parallel trials (default: all CPUs)")
	c.Flags().Float64SliceVar(&kpRange, "kp-range", []float64{0.5, 3}, "kp min,max")
	c.Flags().Float64SliceVar(&kiRange, "ki-range", []float64{0, 0.5}, "ki min,max")
	c.Flags().Float64SliceVar(&kdRange, "kd-range", []float64{0, 2}, "kd min,max")
	c.Flags().StringVar(&bestOut, "out", "", "save the best configuration to this yaml file")
	return c
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log, cleanup, err := newLogger()
	if err != nil {
		return err
	}
	defer cleanup()
	defer log.Sync()

	registry := experiment.NewRegistry()
	if _, err := registry.GetMetric(metricName, cfg); err != nil {
		return err
	}

	ranges := make([][]float64, 0, 3)
	for _, r := range []struct {
		name string
		v    []float64
	}{{"kp", kpRange}, {"ki", kiRange}, {"kd", kdRange}} {
		if len(r.v) != 2 {
			return fmt.Errorf("--%s-range needs min,max, got %v", r.name, r.v)
		}
		ranges = append(ranges, optim.Linspace(r.v[0], r.v[1], tuneSteps))
	}

	gs := optim.NewGridSearch([]string{"kp", "ki", "kd"}, ranges)
	gs.SetWorkers(workers)

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		c := cfg.Clone()
		c.Loop.MaxTicks = tuneTicks
		if err := c.Apply(params); err != nil {
			return nil, err
		}
		m, err := registry.GetMetric(metricName, c)
		if err != nil {
			return nil, err
		}
		return experiment.New(c, experiment.WithMetrics(m)), nil
	}

	ctx, stop := signalContext()
	defer stop()

	fmt.Printf("searching %d gain combinations...\n", gs.Size())
	best, score, _, err := gs.Search(ctx, build, metricName)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.6f\n", metricName, score)
	for _, name := range optim.SortedNames(best) {
		fmt.Printf("  %s = %.4f\n", name, best[name])
	}

	if bestOut != "" {
		out := cfg.Clone()
		if err := out.Apply(best); err != nil {
			return err
		}
		if err := config.Save(bestOut, out); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", bestOut)
	}
	return nil
}

func sweepCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter and tabulate the metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			log, cleanup, err := newLogger()
			if err != nil {
				return err
			}
			defer cleanup()
			defer log.Sync()

			ctx, stop := signalContext()
			defer stop()

			results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
				Base:      cfg,
				ParamName: sweepParam,
				ParamMin:  sweepMin,
				ParamMax:  sweepMax,
				NumSteps:  sweepSteps,
				Ticks:     sweepTicks,
			}, experiment.NewRegistry(), log)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\tfinal depth\tiae\tovershoot %%\tsettling s\n", sweepParam)
			for _, r := range results {
				fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.2f\t%.1f\n",
					r.ParamValue, r.FinalDepth, r.Metrics["iae"], r.Metrics["overshoot"], r.Metrics["settling_time"])
			}
			return w.Flush()
		},
	}
	c.Flags().StringVar(&sweepParam, "param", "kp", fmt.Sprintf("parameter to sweep %v", config.ParamNames()))
	c.Flags().Float64Var(&sweepMin, "min", 0.2, "first value")
	c.Flags().Float64Var(&sweepMax, "max", 3, "last value")
	c.Flags().IntVar(&sweepSteps, "steps", 10, "number of values")
	c.Flags().IntVar(&sweepTicks, "ticks", 500, "ticks per run")
	return c
}

func scenarioCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			sc, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}
			log, cleanup, err := newLogger()
			if err != nil {
				return err
			}
			defer cleanup()
			defer log.Sync()

			ctx, stop := signalContext()
			defer stop()

			results, err := automation.RunScenario(ctx, sc, cfg, experiment.NewRegistry(), log)
			if err != nil {
				return err
			}

			fmt.Printf("scenario %s\n", sc.Name)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "step\tcontroller\ttarget\tticks\tfinal depth\tiae")
			for _, r := range results {
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%d\t%.4f\t%.4f\n",
					r.Name, r.Config.Controller, r.Config.Setpoint, r.Result.TicksTaken, r.Result.FinalDepth, r.Result.Metrics["iae"])
			}
			return w.Flush()
		},
	}
}

func monteCarloCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "montecarlo",
		Short: "start from random depths and check every run reaches the target",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			log, cleanup, err := newLogger()
			if err != nil {
				return err
			}
			defer cleanup()
			defer log.Sync()

			ctx, stop := signalContext()
			defer stop()

			results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
				Base:        cfg,
				DepthSpread: spread,
				NumTrials:   trials,
				Ticks:       mcTicks,
				Tolerance:   tolerance,
				Seed:        seed,
			}, log)
			if err != nil {
				return err
			}

			settled, unsettled := automation.MonteCarloStats(results)
			finals := make([]float64, len(results))
			for i, r := range results {
				finals[i] = r.FinalDepth
			}
			sum, err := metrics.Summarize(finals)
			if err != nil {
				return err
			}

			fmt.Printf("%d trials: %d settled, %d did not\n", len(results), settled, unsettled)
			fmt.Printf("final depth mean %.4f  std %.4f  min %.4f  max %.4f\n", sum.Mean, sum.StdDev, sum.Min, sum.Max)
			return nil
		},
	}
	c.Flags().IntVar(&trials, "trials", 50, "number of runs")
	c.Flags().Float64Var(&spread, "spread", 5, "start depth spread in meters")
	c.Flags().IntVar(&mcTicks, "ticks", 1500, "ticks per run")
	c.Flags().Float64Var(&tolerance, "tolerance", 0.1, "settled band around the target")
	c.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	return c
}

func presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p, err := config.GetPreset(name)
				if err != nil {
					return err
				}
				fmt.Printf("  %-11s %-8s kp=%.2f ki=%.2f kd=%.2f target=%.1fm\n",
					name, p.Controller, p.Gains.Kp, p.Gains.Ki, p.Gains.Kd, p.Setpoint)
			}
			return nil
		},
	}
}
