package pfrun

import (
	"fmt"
	"os"
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/pf/logs"
	"github.com/reusee/pf/pfconfigs"
	"github.com/reusee/pf/pfvm"
)

type Module struct {
	dscope.Module
	Configs pfconfigs.Module
	Logs    logs.Module
}

// NewRunner creates a VM whose main routine runs src.
// If it fails, src is still owned by the caller.
type NewRunner func(src pfvm.Source, options *pfvm.Options) (*Runner, error)

func (Module) NewRunner(
	config pfvm.Config,
	logger logs.Logger,
	newSpan logs.NewSpan,
	stepLimit pfconfigs.StepLimit,
	idle pfconfigs.Idle,
	keepGoing pfconfigs.KeepGoing,
	corePath pfconfigs.CorePath,
) NewRunner {
	return func(src pfvm.Source, options *pfvm.Options) (*Runner, error) {
		var opts pfvm.Options
		if options != nil {
			opts = *options
		}
		if opts.Logger == nil {
			opts.Logger = logger
		}
		vm, err := pfvm.New(config, &opts)
		if err != nil {
			return nil, fmt.Errorf("new vm: %w", err)
		}
		if _, err := vm.Create(src); err != nil {
			return nil, fmt.Errorf("create main routine: %w", err)
		}
		return &Runner{
			VM:        vm,
			Logger:    opts.Logger,
			NewSpan:   newSpan,
			StepLimit: int(stepLimit),
			Idle:      time.Duration(idle),
			KeepGoing: bool(keepGoing),
			CorePath:  string(corePath),
		}, nil
	}
}

// OpenFile opens path as a program source
func OpenFile(path string) (pfvm.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}
