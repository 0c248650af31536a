//go:build unix

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/reusee/pf/logs"
	"github.com/reusee/pf/pfrun"
	"github.com/reusee/pf/pfvm"
)

// watchSignals logs a routine summary on SIGUSR1
func watchSignals(ctx context.Context, host *pfrun.Host, logger logs.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGUSR1)
	go func() {
		defer signal.Stop(c)
		for {
			select {
			case <-ctx.Done():
				return
			case <-c:
				if err := host.Do(ctx, func(vm *pfvm.VM) {
					summary(ctx, logger, vm)
				}); err != nil {
					logger.Warn("summary", "error", err)
					return
				}
			}
		}
	}()
}
