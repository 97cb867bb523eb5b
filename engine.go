package rsmeta

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/jward/rsmeta/internal/heuristic"
)

// Extractor produces a Schema from one Rust source unit. Both tiers
// implement it.
type Extractor interface {
	// Name is the parser name stamped on the output document.
	Name() string
	Extract(ctx context.Context, src []byte) (*Schema, error)
}

// Tier selects which extractor an Engine uses.
type Tier string

const (
	// TierAuto picks the exact tier when it is compiled in and the heuristic
	// tier otherwise.
	TierAuto Tier = "auto"
	// TierExact requires the tree-sitter grammar.
	TierExact Tier = "exact"
	// TierHeuristic forces the grammar-free tier.
	TierHeuristic Tier = "heuristic"
)

// ParseTier validates a tier name. The empty string means TierAuto.
func ParseTier(s string) (Tier, error) {
	switch t := Tier(s); t {
	case TierAuto, TierExact, TierHeuristic:
		return t, nil
	case "":
		return TierAuto, nil
	}
	return "", fmt.Errorf("rsmeta: unknown tier %q", s)
}

// HeuristicMode selects the heuristic tier's scanning strategy.
type HeuristicMode = heuristic.Mode

const (
	ModePattern = heuristic.ModePattern
	ModeLines   = heuristic.ModeLines
)

// ErrExactUnavailable is returned by New for TierExact in a build without the
// tree-sitter grammar.
var ErrExactUnavailable = errors.New("rsmeta: exact tier not available in this build")

// Engine reads Rust source and runs the extractor chosen at construction.
type Engine struct {
	extractor Extractor
	tier      Tier
	mode      HeuristicMode
	logger    zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithTier selects the extraction tier. The default is TierAuto.
func WithTier(t Tier) Option {
	return func(e *Engine) {
		e.tier = t
	}
}

// WithHeuristicMode selects the heuristic scanning strategy. It has no effect
// when the exact tier is chosen.
func WithHeuristicMode(m HeuristicMode) Option {
	return func(e *Engine) {
		e.mode = m
	}
}

// WithLogger sets the logger passed down to the extractors.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an Engine and selects its extractor. The choice depends only on
// the options and the build, never on input.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		tier:   TierAuto,
		mode:   ModePattern,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	mode, err := heuristic.ParseMode(string(e.mode))
	if err != nil {
		return nil, fmt.Errorf("rsmeta: %w", err)
	}
	e.mode = mode

	switch e.tier {
	case TierAuto:
		if ExactAvailable() {
			e.extractor = newExactExtractor(e.logger)
		} else {
			e.extractor = e.newHeuristic()
		}
	case TierExact:
		if !ExactAvailable() {
			return nil, ErrExactUnavailable
		}
		e.extractor = newExactExtractor(e.logger)
	case TierHeuristic:
		e.extractor = e.newHeuristic()
	default:
		return nil, fmt.Errorf("rsmeta: unknown tier %q", e.tier)
	}

	e.logger.Debug().
		Str("tier", string(e.tier)).
		Str("parser", e.extractor.Name()).
		Msg("extractor selected")
	return e, nil
}

func (e *Engine) newHeuristic() Extractor {
	return heuristic.New(heuristic.WithMode(e.mode), heuristic.WithLogger(e.logger))
}

// Parser returns the parser name of the selected extractor: "tree-sitter" or
// "heuristic".
func (e *Engine) Parser() string {
	return e.extractor.Name()
}

// ExtractFile reads the whole file at path and extracts its declarations.
func (e *Engine) ExtractFile(ctx context.Context, path string) (*Schema, error) {
	src, err := e.ReadSource(path)
	if err != nil {
		return nil, err
	}
	return e.ExtractSource(ctx, src)
}

// ReadSource reads the whole file at path. A read failure is returned as
// *IOError; a missing file also satisfies errors.Is(err, fs.ErrNotExist).
func (e *Engine) ReadSource(path string) ([]byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		var pe *fs.PathError
		if errors.As(err, &pe) {
			err = pe.Err
		}
		return nil, &IOError{Path: path, Err: err}
	}
	e.logger.Debug().Str("path", path).Int("bytes", len(src)).Msg("read source")
	return src, nil
}

// ExtractSource extracts declarations from src.
func (e *Engine) ExtractSource(ctx context.Context, src []byte) (*Schema, error) {
	return e.extractor.Extract(ctx, src)
}
