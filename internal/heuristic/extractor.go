// Package heuristic extracts top-level Rust declarations without a grammar.
// It recovers names, visibility and function qualifiers from a lexically
// masked view of the source. Anything it cannot recognize is left out rather
// than reported as an error.
package heuristic

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jward/rsmeta/internal/meta"
)

// ParserName identifies this tier in the output document.
const ParserName = "heuristic"

// Mode selects the scanning strategy. Both modes produce the same Schema.
type Mode string

const (
	// ModePattern runs one multi-line pattern pass per declaration kind.
	ModePattern Mode = "pattern"
	// ModeLines classifies each line independently.
	ModeLines Mode = "lines"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModePattern, ModeLines:
		return m, nil
	case "":
		return ModePattern, nil
	}
	return "", fmt.Errorf("heuristic: unknown mode %q", s)
}

// Extractor is the grammar-free extraction tier.
type Extractor struct {
	mode   Mode
	logger zerolog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMode sets the scanning strategy. The default is ModePattern.
func WithMode(m Mode) Option {
	return func(x *Extractor) {
		x.mode = m
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(x *Extractor) {
		x.logger = l
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	x := &Extractor{mode: ModePattern, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Name returns ParserName.
func (x *Extractor) Name() string { return ParserName }

// Extract scans src for top-level declarations. Malformed input yields fewer
// declarations, never an error; the only error is a cancelled context.
func (x *Extractor) Extract(ctx context.Context, src []byte) (*meta.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	code, top := mask(src)
	var decls []decl
	if x.mode == ModeLines {
		decls = scanLines(top)
	} else {
		decls = scanPattern(top)
	}

	s := meta.New()
	for _, d := range decls {
		x.apply(s, code, d)
	}

	x.logger.Debug().
		Str("mode", string(x.mode)).
		Int("structs", len(s.Structs)).
		Int("enums", len(s.Enums)).
		Int("traits", len(s.Traits)).
		Int("functions", len(s.Functions)).
		Int("modules", len(s.Modules)).
		Int("uses", len(s.Uses)).
		Int("constants", len(s.Constants)).
		Int("types", len(s.Types)).
		Msg("heuristic extraction complete")
	return s, nil
}

func (x *Extractor) apply(s *meta.Schema, code []byte, d decl) {
	pub := hasPub(d.qualifiers)
	switch d.kind {
	case kindStruct:
		s.Structs = append(s.Structs, meta.Struct{
			Name:     d.name,
			IsPublic: pub,
			Generics: []string{},
			Fields:   []meta.Field{},
			Derives:  []string{},
		})
	case kindEnum:
		s.Enums = append(s.Enums, meta.Enum{
			Name:     d.name,
			IsPublic: pub,
			Generics: []string{},
			Variants: []string{},
			Derives:  []string{},
		})
	case kindTrait:
		s.Traits = append(s.Traits, meta.Trait{
			Name:     d.name,
			IsPublic: pub,
			Generics: []string{},
			Methods:  []string{},
		})
	case kindFunction:
		isAsync, isConst, isUnsafe := fnFlags(d.qualifiers)
		s.Functions = append(s.Functions, meta.Function{
			Name:       d.name,
			IsPublic:   pub,
			IsAsync:    isAsync,
			IsConst:    isConst,
			IsUnsafe:   isUnsafe,
			Generics:   []string{},
			Parameters: []meta.Param{},
		})
	case kindModule:
		s.Modules = append(s.Modules, meta.Module{Name: d.name, IsPublic: pub})
	case kindConstant:
		s.Constants = append(s.Constants, meta.Constant{Name: d.name, IsPublic: pub})
	case kindTypeAlias:
		s.Types = append(s.Types, meta.TypeAlias{Name: d.name, IsPublic: pub})
	case kindUse:
		rendered, complete := RenderUse(useText(code, d.at))
		if !complete {
			x.logger.Debug().Str("use", rendered).Msg("malformed use group")
		}
		if rendered != "" {
			s.Uses = append(s.Uses, rendered)
		}
	}
}
