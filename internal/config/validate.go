package config

import (
	"errors"
	"fmt"

	"github.com/jward/rsmeta"
	"github.com/jward/rsmeta/internal/heuristic"
)

var (
	// ErrInvalidTier indicates an unknown extraction tier.
	ErrInvalidTier = errors.New("invalid tier")

	// ErrInvalidMode indicates an unknown heuristic mode.
	ErrInvalidMode = errors.New("invalid heuristic mode")

	// ErrInvalidFormat indicates an unknown output format.
	ErrInvalidFormat = errors.New("invalid format")
)

// Formats lists the accepted output formats.
var Formats = []string{"json", "yaml", "text"}

// Validate checks that every setting names a known value.
func Validate(cfg *Config) error {
	var errs []error

	if _, err := rsmeta.ParseTier(cfg.Tier); err != nil {
		errs = append(errs, fmt.Errorf("%w: must be auto, exact or heuristic, got %q", ErrInvalidTier, cfg.Tier))
	}
	if _, err := heuristic.ParseMode(cfg.HeuristicMode); err != nil {
		errs = append(errs, fmt.Errorf("%w: must be pattern or lines, got %q", ErrInvalidMode, cfg.HeuristicMode))
	}
	if !validFormat(cfg.Format) {
		errs = append(errs, fmt.Errorf("%w: must be json, yaml or text, got %q", ErrInvalidFormat, cfg.Format))
	}

	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	return fmt.Errorf("validation failed: %w", errors.Join(errs...))
}

func validFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}
