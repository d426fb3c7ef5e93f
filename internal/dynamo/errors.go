package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for loop construction and execution.
var (
	// ErrInvalidConfig indicates a configuration value that cannot drive the loop.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrSinkInit indicates the display sink could not be opened; no tick ran.
	ErrSinkInit = errors.New("dynamo: display sink failed to initialize")

	// ErrUnknownController indicates a controller name with no registered constructor.
	ErrUnknownController = errors.New("dynamo: unknown controller")

	// ErrUnknownPreset indicates a preset name that is not in the preset table.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrNoSamples indicates an operation that needs at least one sample got none.
	ErrNoSamples = errors.New("dynamo: no samples")
)

// ConfigError names the field that failed validation.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s=%v %s", ErrInvalidConfig, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// SinkError wraps a sink failure with the sink's name.
type SinkError struct {
	Sink    string
	Wrapped error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrSinkInit, e.Sink, e.Wrapped)
}

func (e *SinkError) Unwrap() []error {
	return []error{ErrSinkInit, e.Wrapped}
}
