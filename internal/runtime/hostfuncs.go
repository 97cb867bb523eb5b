package runtime

import (
	"context"

	"github.com/risor-io/risor/object"
	"github.com/rs/zerolog"
)

// declarations unwraps a list argument into the maps it holds. Entries that
// are not maps, such as use paths, are skipped.
func declarations(fn string, arg object.Object) ([]*object.Map, *object.Error) {
	list, ok := arg.(*object.List)
	if !ok {
		return nil, object.Errorf("%s: expected a list, got %s", fn, arg.Type())
	}
	var out []*object.Map
	for _, item := range list.Value() {
		if m, ok := item.(*object.Map); ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// field returns m[key], or nil when the key is absent.
func field(m *object.Map, key string) object.Object {
	if v, ok := m.Value()[key]; ok {
		return v
	}
	return nil
}

// makeNamesFn creates the "names" host function.
//
// names(items) → list of the name of each declaration
func makeNamesFn() *object.Builtin {
	return object.NewBuiltin("names", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("names", 1, len(args))
		}
		decls, errObj := declarations("names", args[0])
		if errObj != nil {
			return errObj
		}
		out := make([]object.Object, 0, len(decls))
		for _, m := range decls {
			if name, ok := field(m, "name").(*object.String); ok {
				out = append(out, name)
			}
		}
		return object.NewList(out)
	})
}

// makePublicFn creates the "public" host function.
//
// public(items) → the declarations whose isPublic is true
func makePublicFn() *object.Builtin {
	return object.NewBuiltin("public", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("public", 1, len(args))
		}
		decls, errObj := declarations("public", args[0])
		if errObj != nil {
			return errObj
		}
		out := make([]object.Object, 0, len(decls))
		for _, m := range decls {
			if pub, ok := field(m, "isPublic").(*object.Bool); ok && pub.Value() {
				out = append(out, m)
			}
		}
		return object.NewList(out)
	})
}

// makeFindFn creates the "find" host function.
//
// find(items, name) → the first declaration with that name, or nil
func makeFindFn() *object.Builtin {
	return object.NewBuiltin("find", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 2 {
			return object.NewArgsError("find", 2, len(args))
		}
		decls, errObj := declarations("find", args[0])
		if errObj != nil {
			return errObj
		}
		want, ok := args[1].(*object.String)
		if !ok {
			return object.Errorf("find: name must be a string, got %s", args[1].Type())
		}
		for _, m := range decls {
			if name, ok := field(m, "name").(*object.String); ok && name.Value() == want.Value() {
				return m
			}
		}
		return object.Nil
	})
}

// logObject provides log.info/warn/error methods for expressions.
type logObject struct {
	logger zerolog.Logger
}

func (l *logObject) Info(msg string) {
	l.logger.Info().Str("source", "query").Msg(msg)
}

func (l *logObject) Warn(msg string) {
	l.logger.Warn().Str("source", "query").Msg(msg)
}

func (l *logObject) Error(msg string) {
	l.logger.Error().Str("source", "query").Msg(msg)
}
