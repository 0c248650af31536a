package pfrun

import (
	"context"
	"fmt"
	"time"

	"github.com/reusee/pf/logs"
	"github.com/reusee/pf/pfvm"
	"github.com/reusee/pf/procs"
)

// Runner polls the main routine of a VM until it stops, then shuts the VM down
type Runner struct {
	VM        *pfvm.VM
	Logger    logs.Logger
	NewSpan   logs.NewSpan
	StepLimit int           // instructions per poll, zero for unbounded
	Idle      time.Duration // pause between polls
	KeepGoing bool          // continue after failed mailbox commands
	CorePath  string        // core file written when the main routine faults
	Host      *Host         // optional, served between polls
}

type Result struct {
	Code     pfvm.Code // last code returned by the main routine
	ExitCode int       // first user cell of the main routine at shutdown
	Polls    int
	State    pfvm.State // taken before shutdown
}

// Faulted reports whether the main routine stopped on anything but the end of its program
func (r Result) Faulted() bool {
	return r.Code.Terminal() && r.Code != pfvm.CodeEndOfProgram
}

type run struct {
	*Runner
	result      *Result
	interrupted error
}

func (r *Runner) Run(ctx context.Context) (result Result, err error) {
	if r.NewSpan != nil {
		ctx, _ = r.NewSpan(ctx, "run")
	}
	defer func() {
		err = logs.WrapSpan(ctx, err)
	}()

	if !r.VM.IsLive(pfvm.MainRoutine) {
		return result, fmt.Errorf("main routine: %w", pfvm.ErrNotLive)
	}

	current := &run{
		Runner: r,
		result: &result,
	}
	if err := procs.Drive(ctx, procs.Proc[context.Context](procs.Procs[context.Context]{
		procs.Func[context.Context](current.poll),
		procs.Func[context.Context](current.shutdown),
	})); err != nil {
		return result, err
	}
	if current.interrupted != nil {
		return result, fmt.Errorf("interrupted: %w", current.interrupted)
	}
	return result, nil
}

func (r *run) poll(ctx context.Context) (procs.Proc[context.Context], error) {
	if err := ctx.Err(); err != nil {
		r.interrupted = err
		return nil, nil
	}

	r.Host.serve(r.VM)

	code := r.VM.Step(pfvm.MainRoutine, r.StepLimit)
	r.result.Polls++
	r.result.Code = code

	switch {
	case code.Soft() && r.KeepGoing:
		r.Logger.WarnContext(ctx, "command failed",
			"code", uint8(code),
			"reason", code.String(),
		)
	case code.Terminal():
		r.Logger.InfoContext(ctx, "main routine stopped",
			"code", uint8(code),
			"reason", code.String(),
			"polls", r.result.Polls,
		)
		return nil, nil
	}

	if r.Idle > 0 {
		timer := time.NewTimer(r.Idle)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			r.interrupted = ctx.Err()
			return nil, nil
		case <-timer.C:
		}
	}

	return procs.Func[context.Context](r.poll), nil
}

func (r *run) shutdown(ctx context.Context) (procs.Proc[context.Context], error) {
	r.result.State = r.VM.State()

	var err error
	if r.result.Faulted() && r.CorePath != "" {
		if e := WriteCore(r.CorePath, Core{
			Code:  r.result.Code,
			Polls: r.result.Polls,
			State: r.result.State,
		}); e != nil {
			err = fmt.Errorf("write core: %w", e)
		} else {
			r.Logger.InfoContext(ctx, "core written", "path", r.CorePath)
		}
	}

	r.result.ExitCode = r.VM.Shutdown()
	r.Host.Close()
	r.Logger.InfoContext(ctx, "shutdown",
		"exit", r.result.ExitCode,
	)

	return nil, err
}
