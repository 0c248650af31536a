//go:build !unix

package main

import (
	"context"

	"github.com/reusee/pf/logs"
	"github.com/reusee/pf/pfrun"
)

func watchSignals(ctx context.Context, host *pfrun.Host, logger logs.Logger) {
}
