package types

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Config holds the settings the cookiejar CLI builds a jar and its
// collaborators from.
type Config struct {
	Capacity int    `json:"capacity" yaml:"capacity"`
	Marker   string `json:"marker" yaml:"marker"`
	IDs      string `json:"ids" yaml:"ids"`
	LogLevel string `json:"log_level" yaml:"log_level"`
	Color    bool   `json:"color" yaml:"color"`
}

// Config validation errors.
var (
	ErrMarkerEmpty     = errors.New("marker must not be empty")
	ErrLogLevelUnknown = errors.New("unknown log level")
)

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Capacity: DefaultCapacity,
		Marker:   DefaultMarker,
		IDs:      IDSchemeSequence,
		LogLevel: "warn",
		Color:    true,
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Capacity < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, c.Capacity)
	}
	if c.Marker == "" {
		return ErrMarkerEmpty
	}
	if c.IDs != IDSchemeSequence && c.IDs != IDSchemeUUID {
		return fmt.Errorf("%w: %q", ErrUnknownIDScheme, c.IDs)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level converts LogLevel to a slog.Level. An empty LogLevel means warn.
func (c Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrLogLevelUnknown, c.LogLevel)
	}
}
