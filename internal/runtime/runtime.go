// Package runtime evaluates Risor expressions against an extracted document.
// The document is bound to the global meta, alongside a few host functions
// for picking declarations out of it.
package runtime

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/risor-io/risor"
	"github.com/risor-io/risor/object"
	"github.com/rs/zerolog"
)

// DocumentGlobal is the name the document is bound to in expressions.
const DocumentGlobal = "meta"

// Runtime embeds a Risor VM configured with the document host functions.
type Runtime struct {
	logger zerolog.Logger
	extra  map[string]any
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*Runtime)

// WithLogger routes the log.info/warn/error calls of expressions to l.
func WithLogger(l zerolog.Logger) RuntimeOption {
	return func(r *Runtime) {
		r.logger = l
	}
}

// WithGlobals adds globals to every evaluation. They override the built-in
// host functions of the same name, but never the document itself.
func WithGlobals(globals map[string]any) RuntimeOption {
	return func(r *Runtime) {
		for k, v := range globals {
			r.extra[k] = v
		}
	}
}

// NewRuntime creates a Runtime.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	r := &Runtime{
		logger: zerolog.Nop(),
		extra:  map[string]any{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Eval evaluates expr with doc bound to meta and returns the result as a
// plain Go value: maps, slices, strings, numbers, bools or nil.
func (r *Runtime) Eval(ctx context.Context, expr string, doc map[string]any) (any, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("runtime: empty expression")
	}

	var opts []risor.Option
	for name, val := range r.buildGlobals(doc) {
		opts = append(opts, risor.WithGlobal(name, val))
	}

	result, err := risor.Eval(ctx, expr, opts...)
	if err != nil {
		return nil, fmt.Errorf("runtime: eval: %w", err)
	}
	if errObj, ok := result.(*object.Error); ok {
		return nil, fmt.Errorf("runtime: eval: %w", errObj.Value())
	}
	r.logger.Debug().Str("type", string(result.Type())).Msg("expression evaluated")
	return result.Interface(), nil
}

// Eval evaluates expr against doc with a Runtime built from opts.
func Eval(ctx context.Context, expr string, doc map[string]any, opts ...RuntimeOption) (any, error) {
	return NewRuntime(opts...).Eval(ctx, expr, doc)
}

// LoadScript returns the expression to evaluate for a query argument. An
// argument of the form @path names a file holding the script; anything else
// is the expression itself.
func LoadScript(arg string) (string, error) {
	path, ok := strings.CutPrefix(arg, "@")
	if !ok {
		return arg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("runtime: loading script %s: %w", path, err)
	}
	return string(data), nil
}

// buildGlobals constructs the full set of globals exposed to expressions.
func (r *Runtime) buildGlobals(doc map[string]any) map[string]any {
	globals := map[string]any{
		"names":  makeNamesFn(),
		"public": makePublicFn(),
		"find":   makeFindFn(),
		"log":    mustProxy(&logObject{logger: r.logger}),
	}
	for k, v := range r.extra {
		globals[k] = v
	}
	if doc == nil {
		doc = map[string]any{}
	}
	globals[DocumentGlobal] = doc
	return globals
}

func mustProxy(v any) object.Object {
	p, err := object.NewProxy(v)
	if err != nil {
		panic(fmt.Sprintf("runtime: proxy error: %v", err))
	}
	return p
}
