package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jward/rsmeta"
	"github.com/jward/rsmeta/internal/config"
	"github.com/jward/rsmeta/internal/runtime"
	"github.com/jward/rsmeta/internal/store"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the exit status. stdout receives
// output only when the whole run succeeds; on failure stderr receives the
// error document.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		stderr.Write(rsmeta.ErrorDocument(err.Error()))
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "rsmeta [flags] <file>",
		Short:         "Extract top-level declaration metadata from a Rust source file",
		Long:          "rsmeta reads one Rust source file and prints its structs, enums, traits, functions, impls, modules, uses, constants and type aliases as a JSON document.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) == 0:
				return fmt.Errorf("%w: expected a source file path", rsmeta.ErrInvalidInvocation)
			case len(args) > 1:
				return fmt.Errorf("%w: expected one source file path, got %d arguments", rsmeta.ErrInvalidInvocation, len(args))
			}

			opts := []config.LoaderOption{config.WithFlags(cmd.Flags())}
			if configFile != "" {
				opts = append(opts, config.WithConfigFile(configFile))
			}
			cfg, err := config.Load(opts...)
			if err != nil {
				return err
			}

			logger := newLogger(stderr, cfg.Verbose)
			if !rsmeta.IsRustFile(args[0]) {
				logger.Debug().Str("path", args[0]).Msg("input does not have a .rs extension")
			}
			out, err := extract(cmd.Context(), args[0], cfg, logger)
			if err != nil {
				return err
			}
			_, err = stdout.Write(out)
			return err
		},
	}

	f := cmd.Flags()
	f.String("tier", "auto", "extraction tier: auto|exact|heuristic")
	f.String("heuristic-mode", "pattern", "heuristic scanning strategy: pattern|lines")
	f.String("format", "json", "output format: json|yaml|text")
	f.Bool("indent", false, "indent JSON output")
	f.String("query", "", "Risor expression evaluated against the document (@file reads a script)")
	f.String("sqlite", "", "also write the declarations to this SQLite database")
	f.StringVar(&configFile, "config", "", "config file (default: .rsmeta.yaml in the working directory)")
	f.BoolP("verbose", "v", false, "debug logging on stderr")
	return cmd
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()
}

// extract runs the configured pipeline for path and returns the bytes to
// print.
func extract(ctx context.Context, path string, cfg *config.Config, logger zerolog.Logger) ([]byte, error) {
	tier, err := rsmeta.ParseTier(cfg.Tier)
	if err != nil {
		return nil, err
	}
	engine, err := rsmeta.New(
		rsmeta.WithTier(tier),
		rsmeta.WithHeuristicMode(rsmeta.HeuristicMode(cfg.HeuristicMode)),
		rsmeta.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	src, err := engine.ReadSource(path)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	schema, err := engine.ExtractSource(ctx, src)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("path", path).
		Str("parser", engine.Parser()).
		Dur("elapsed", time.Since(start)).
		Msg("extracted")

	if cfg.SQLite != "" {
		if err := export(cfg.SQLite, path, src, schema, engine.Parser()); err != nil {
			return nil, err
		}
		logger.Debug().Str("db", cfg.SQLite).Msg("exported")
	}

	if cfg.Query != "" {
		return query(ctx, cfg.Query, schema, engine.Parser(), logger)
	}

	var buf bytes.Buffer
	if err := render(&buf, cfg.Format, cfg.Indent, schema, engine.Parser()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// export replaces the rows for path in the database at dbPath. src is the
// text schema was extracted from.
func export(dbPath, path string, src []byte, schema *rsmeta.Schema, parser string) error {
	s, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	f := &store.File{
		Path:    path,
		Hash:    store.ContentHash(src),
		Parser:  parser,
		Version: rsmeta.SchemaVersion,
	}
	return s.ReplaceFile(f, store.NewBatch(schema))
}

// query evaluates the --query expression against the rendered document and
// returns its result as JSON.
func query(ctx context.Context, arg string, schema *rsmeta.Schema, parser string, logger zerolog.Logger) ([]byte, error) {
	expr, err := runtime.LoadScript(arg)
	if err != nil {
		return nil, err
	}
	doc, err := rsmeta.DocumentMap(schema, parser)
	if err != nil {
		return nil, err
	}
	result, err := runtime.Eval(ctx, expr, doc, runtime.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return nil, fmt.Errorf("encode query result: %w", err)
	}
	return buf.Bytes(), nil
}
