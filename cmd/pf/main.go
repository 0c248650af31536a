package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/goforj/godump"
	"github.com/reusee/dscope"
	"github.com/reusee/pf/cmds"
	"github.com/reusee/pf/debugs"
	"github.com/reusee/pf/logs"
	"github.com/reusee/pf/modes"
	"github.com/reusee/pf/pfrun"
	"github.com/reusee/pf/pfvm"
	"golang.org/x/term"
)

var (
	programFile = cmds.Var[string]("-file", "-f")
	tapFlag     = cmds.Switch("-tap")
	dumpFlag    = cmds.Switch("-dump")
)

func main() {
	if err := cmds.ExecuteOSArgs(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmds.PrintUsage()
		os.Exit(2)
	}

	if *programFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -file (or -f) <program> is required")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	scope := dscope.New(
		new(pfrun.Module),
		new(debugs.Module),
		modes.ForProduction(),
	)

	exitCode := 1
	scope.Call(func(
		newRunner pfrun.NewRunner,
		config pfvm.Config,
		logger logs.Logger,
		tap debugs.Tap,
	) {
		src, err := pfrun.OpenFile(*programFile)
		if err != nil {
			logger.Error("open program", "path", *programFile, "error", err)
			return
		}
		runner, err := newRunner(src, nil)
		if err != nil {
			src.Close()
			logger.Error("load program", "path", *programFile, "error", err)
			return
		}

		if term.IsTerminal(int(os.Stderr.Fd())) {
			fmt.Fprintf(os.Stderr, "pf: %s (cache %d, memory %d, special %d, privileged %v)\n",
				*programFile,
				config.CacheSize,
				config.MemorySize,
				config.SpecialMemory,
				config.Privileged,
			)
		}

		host := pfrun.NewHost()
		runner.Host = host
		watchSignals(ctx, host, logger)

		result, err := runner.Run(ctx)
		if err != nil {
			logger.Error("run", "error", err)
		}
		if result.Faulted() {
			logger.Warn("main routine faulted",
				"code", uint8(result.Code),
				"reason", result.Code.String(),
			)
		}

		if *dumpFlag {
			godump.Dump(result.State)
		}
		if *tapFlag {
			tap(ctx, "final state", result.State)
		}

		exitCode = result.ExitCode
	})

	stop()
	os.Exit(exitCode)
}

// summary logs one line per routine
func summary(ctx context.Context, logger logs.Logger, vm *pfvm.VM) {
	for _, r := range vm.State().Routines {
		if !r.Alive {
			continue
		}
		logger.InfoContext(ctx, "routine",
			"index", r.Index,
			"cursor", r.Cursor,
			"pointer", r.Pointer-vm.Config().SpecialMemory,
			"source", r.SourceLen,
			"forked", r.SharesSource,
		)
	}
}
