package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/rovsim/internal/analysis"
	"github.com/san-kum/rovsim/internal/bus"
	"github.com/san-kum/rovsim/internal/dynamo"
	"github.com/san-kum/rovsim/internal/experiment"
	"github.com/san-kum/rovsim/internal/export"
	"github.com/san-kum/rovsim/internal/gui"
	"github.com/san-kum/rovsim/internal/logging"
	"github.com/san-kum/rovsim/internal/sim"
	"github.com/san-kum/rovsim/internal/tui"
	"github.com/san-kum/rovsim/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	ticks     int
	fast      bool
	redraw    bool
	analyze   bool
	reportDir string
	canIface  string
	theme     string
)

func liveCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "live",
		Short: "run the loop with the live terminal view",
		RunE:  runLive,
	}
	c.Flags().StringVar(&theme, "theme", viz.ThemeOcean.Name, "color theme, cycle with t while running")
	return c
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	th, ok := viz.GetTheme(theme)
	if !ok {
		return fmt.Errorf("unknown theme %q, want one of %s", theme, strings.Join(viz.ThemeNames(), ", "))
	}
	log, cleanup, err := logging.Quiet(logLevel, logFile)
	if err != nil {
		return err
	}
	defer cleanup()
	defer log.Sync()

	d, err := sim.New(cfg, sim.WithLogger(log))
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	sink := viz.NewSink(cfg.Setpoint, cfg.MaxThrust)
	sink.SetTheme(th)
	res, err := d.Run(ctx, sink)
	if err != nil {
		return err
	}
	fmt.Printf("stopped after %d ticks at %.2fm (target %.2fm)\n", res.TicksTaken, res.FinalDepth, d.Setpoint())
	return nil
}

func guiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "run the loop in a graphics window",
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

			d, err := sim.New(cfg, sim.WithLogger(log))
			if err != nil {
				return err
			}

			ctx, stop := signalContext()
			defer stop()

			// raylib needs the main thread, which cobra runs us on.
			res, err := d.Run(ctx, gui.NewSink(cfg.History.MaxPoints))
			if err != nil {
				return err
			}
			fmt.Printf("stopped after %d ticks at %.2fm\n", res.TicksTaken, res.FinalDepth)
			return nil
		},
	}
}

func runCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "run",
		Short: "run the loop headless, one line per tick",
		RunE:  runHeadless,
	}
	c.Flags().IntVar(&ticks, "ticks", experiment.DefaultTicks, "number of ticks")
	c.Flags().BoolVar(&fast, "fast", false, "do not wait between ticks")
	c.Flags().BoolVar(&redraw, "redraw", false, "redraw a depth gauge in place")
	c.Flags().BoolVar(&analyze, "analyze", false, "print the spectrum and phase portrait of the error")
	c.Flags().StringVar(&reportDir, "report", "", "write CSV and charts to this directory")
	c.Flags().StringVar(&canIface, "can", "", "also send thruster commands on this SocketCAN interface")
	return c
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Loop.MaxTicks = ticks

	log, cleanup, err := newLogger()
	if err != nil {
		return err
	}
	defer cleanup()
	defer log.Sync()

	sinks := sim.Tee{tui.NewConsole(os.Stdout, redraw)}
	if canIface != "" {
		sinks = append(sinks, bus.NewThrusterSink(canIface, bus.WithLogger(log)))
	}
	var clock sim.Clock = sim.WallClock{}
	if fast {
		clock = sim.VirtualClock{}
	}

	registry := experiment.NewRegistry()
	exp := experiment.New(cfg,
		experiment.WithLogger(log),
		experiment.WithSink(sinks),
		experiment.WithClock(clock),
		experiment.WithMetrics(registry.DefaultMetrics(cfg)...),
	)

	ctx, stop := signalContext()
	defer stop()

	start := time.Now()
	res, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("\ncompleted %d ticks in %v, final depth %.4fm\n", res.TicksTaken, time.Since(start).Round(time.Millisecond), res.FinalDepth)
	printMetrics(res.Metrics)

	if analyze {
		if err := printAnalysis(res, cfg.Dt); err != nil {
			log.Warn("analysis skipped", zap.Error(err))
		}
	}

	if reportDir != "" {
		paths, err := export.WriteReport(reportDir, res)
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
		for _, p := range paths {
			fmt.Printf("wrote %s\n", p)
		}
	}

	return nil
}

func printMetrics(m map[string]float64) {
	if len(m) == 0 {
		return
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.6f\n", name, m[name])
	}
	w.Flush()
}

func printAnalysis(res *dynamo.Result, dt float64) error {
	report, err := analysis.Analyze(res, dt)
	if err != nil {
		return err
	}
	fmt.Println("\nerror spectrum:")
	fmt.Printf("  dominant frequency  %.4f Hz\n", report.DominantHz)
	fmt.Printf("  dominant power      %.4f\n", report.DominantPower)
	fmt.Printf("  zero crossings      %d\n", report.ZeroCrossings)

	portrait := analysis.ErrorPhasePortrait(res, dt)
	fmt.Println("\nphase portrait (error vs error rate):")
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 60, 20))
	return nil
}
