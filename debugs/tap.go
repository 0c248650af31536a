package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/pf/logs"
	"github.com/reusee/pf/pfvm"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Tap opens a starlark REPL on stdin over a routine table snapshot
type Tap func(ctx context.Context, what string, state pfvm.State)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, state pfvm.State) {
		globals := stateGlobals(state)
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		thread := &starlark.Thread{
			Name: "repl",
		}
		repl.REPLOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		}, thread, globals)
	}
}

func stateGlobals(state pfvm.State) starlark.StringDict {
	routine := func(i int) *pfvm.RoutineState {
		if i < 0 || i >= len(state.Routines) {
			return nil
		}
		return &state.Routines[i]
	}

	globals := map[string]any{
		"config":   state.Config,
		"routines": state.Routines,

		"live": func(i int) bool {
			r := routine(i)
			return r != nil && r.Alive
		},

		"tape": func(i int) []byte {
			if r := routine(i); r != nil {
				return r.Tape
			}
			return nil
		},

		"user": func(i int) []byte {
			if r := routine(i); r != nil {
				return r.UserCells(state.Config)
			}
			return nil
		},

		"cell": func(i int, n int) int {
			r := routine(i)
			if r == nil || n < 0 || n >= len(r.Tape) {
				return -1
			}
			return int(r.Tape[n])
		},
	}

	ret := make(starlark.StringDict, len(globals))
	for name, value := range globals {
		ret[name] = toStarlarkValue(value)
	}
	return ret
}
