package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/san-kum/rovsim/internal/config"
	"github.com/san-kum/rovsim/internal/dynamo"
	"github.com/san-kum/rovsim/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	preset     string
	controller string
	logLevel   string
	logFile    string
	kp         float64
	ki         float64
	kd         float64
	target     float64
	dt         float64
)

// main registers the commands and runs the live terminal view when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:           "rovsim",
		Short:         "ROV depth control loop",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.StringVar(&controller, "controller", "pid", "controller")
	pf.Float64Var(&kp, "kp", config.DefaultKp, "proportional gain")
	pf.Float64Var(&ki, "ki", config.DefaultKi, "integral gain")
	pf.Float64Var(&kd, "kd", config.DefaultKd, "derivative gain")
	pf.Float64Var(&target, "target", config.DefaultSetpoint, "target depth in meters")
	pf.Float64Var(&dt, "dt", config.DefaultDt, "controller time step in seconds")
	pf.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(
		liveCommand(),
		guiCommand(),
		runCommand(),
		tuneCommand(),
		sweepCommand(),
		scenarioCommand(),
		monteCarloCommand(),
		presetsCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		switch {
		case errors.Is(err, dynamo.ErrInvalidConfig):
			fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		case errors.Is(err, dynamo.ErrSinkInit):
			fmt.Fprintln(os.Stderr, "display could not start:", err)
		case errors.Is(err, dynamo.ErrUnknownPreset):
			fmt.Fprintln(os.Stderr, err)
		default:
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// resolveConfig layers defaults, the preset, the config file and the
// flags set on the command line, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("controller") {
		cfg.Controller = controller
	}
	overrides := make(map[string]float64)
	for name, v := range map[string]float64{"kp": kp, "ki": ki, "kd": kd, "target": target, "dt": dt} {
		if flags.Changed(name) {
			overrides[name] = v
		}
	}
	if err := cfg.Apply(overrides); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger() (*zap.Logger, func(), error) {
	return logging.New(logLevel, logFile)
}

// signalContext is cancelled on Ctrl+C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
