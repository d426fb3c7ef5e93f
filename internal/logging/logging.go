// Package logging builds the zap logger shared by the CLI and the loop.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a level name to a zap level. Unknown names are an error.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(s) {
	case "debug", "trace":
		return zap.DebugLevel, nil
	case "", "info":
		return zap.InfoLevel, nil
	case "warn", "warning":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	case "critical", "fatal":
		return zap.FatalLevel, nil
	default:
		return zap.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// New returns a console logger at level writing to file, or to stderr
// when file is empty. stdout belongs to the display. The returned func
// closes the file and must be called once the logger is done.
func New(level, file string) (*zap.Logger, func(), error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	out := zapcore.Lock(os.Stderr)
	cleanup := func() {}
	if file != "" {
		ws, closeFile, err := zap.Open(file)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, cleanup = ws, closeFile
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), out, lvl)
	return zap.New(core, zap.AddCaller()), cleanup, nil
}

// Quiet is New for full screen views: with no file it logs nothing, since
// stderr shares the terminal with the view.
func Quiet(level, file string) (*zap.Logger, func(), error) {
	if file == "" {
		if _, err := ParseLevel(level); err != nil {
			return nil, nil, err
		}
		return zap.NewNop(), func() {}, nil
	}
	return New(level, file)
}
