package pfrun

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/reusee/pf/pfconfigs"
	"github.com/reusee/pf/pfvm"
)

func TestRun(t *testing.T) {
	runner, stdout := newTestRunner(t,
		testScope(t, stepLimit(3)),
		"++++++++[>++++++++<-]>+.<+++",
	)
	result, err := runner.Run(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "A" {
		t.Fatalf("got %q", stdout.String())
	}
	if result.Code != pfvm.CodeEndOfProgram {
		t.Fatalf("got %v", result.Code)
	}
	if result.Faulted() {
		t.Fatal()
	}
	if result.ExitCode != 3 {
		t.Fatalf("got %v", result.ExitCode)
	}
	if result.Polls < 10 {
		t.Fatalf("got %v", result.Polls)
	}
	if !result.State.Routines[pfvm.MainRoutine].Alive {
		t.Fatal("state should be taken before shutdown")
	}
	if runner.VM.IsLive(pfvm.MainRoutine) {
		t.Fatal("should be shut down")
	}
}

func TestRunUnbounded(t *testing.T) {
	runner, _ := newTestRunner(t,
		testScope(t, stepLimit(0)),
		"+++",
	)
	result, err := runner.Run(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if result.Polls != 1 {
		t.Fatalf("got %v", result.Polls)
	}
	if result.ExitCode != 3 {
		t.Fatalf("got %v", result.ExitCode)
	}
}

func TestRunNotLive(t *testing.T) {
	runner, _ := newTestRunner(t, testScope(t), "+")
	runner.VM.Destroy(pfvm.MainRoutine)
	_, err := runner.Run(t.Context())
	if !errors.Is(err, pfvm.ErrNotLive) {
		t.Fatalf("got %v", err)
	}
}

func TestRunFaultWritesCore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pf.core")
	runner, _ := newTestRunner(t,
		testScope(t, func() pfconfigs.CorePath {
			return pfconfigs.CorePath(path)
		}),
		"++<",
	)
	result, err := runner.Run(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if result.Code != pfvm.CodePointerOutOfBounds || !result.Faulted() {
		t.Fatalf("got %v", result.Code)
	}
	if result.ExitCode != 2 {
		t.Fatalf("got %v", result.ExitCode)
	}

	core, err := ReadCore(path)
	if err != nil {
		t.Fatal(err)
	}
	if core.Code != pfvm.CodePointerOutOfBounds {
		t.Fatalf("got %v", core.Code)
	}
	if core.Polls != result.Polls {
		t.Fatalf("got %v", core.Polls)
	}
	main := core.State.Routines[pfvm.MainRoutine]
	if main.UserCells(core.State.Config)[0] != 2 {
		t.Fatalf("got %+v", main)
	}
}

func TestRunNoCoreOnEndOfProgram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pf.core")
	runner, _ := newTestRunner(t,
		testScope(t, func() pfconfigs.CorePath {
			return pfconfigs.CorePath(path)
		}),
		"+",
	)
	if _, err := runner.Run(t.Context()); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCore(path); err == nil {
		t.Fatal("should not write core")
	}
}

// privileged program: unknown opcode 9, ring the doorbell, then set the exit status
const failingCommand = "<<+++++++++>+>+++"

func TestRunStopsOnFailedCommand(t *testing.T) {
	runner, _ := newTestRunner(t, testScope(t, privileged), failingCommand)
	result, err := runner.Run(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if result.Code != pfvm.CodeUnknownCommand {
		t.Fatalf("got %v", result.Code)
	}
	if result.ExitCode != 0 {
		t.Fatalf("got %v", result.ExitCode)
	}
}

func TestRunKeepGoing(t *testing.T) {
	runner, _ := newTestRunner(t,
		testScope(t, privileged, func() pfconfigs.KeepGoing {
			return true
		}),
		failingCommand,
	)
	result, err := runner.Run(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if result.Code != pfvm.CodeEndOfProgram {
		t.Fatalf("got %v", result.Code)
	}
	if result.ExitCode != 3 {
		t.Fatalf("got %v", result.ExitCode)
	}
}

func TestRunCancel(t *testing.T) {
	runner, _ := newTestRunner(t,
		testScope(t, stepLimit(100), idle(time.Millisecond)),
		"+[]",
	)
	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()
	result, err := runner.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v", err)
	}
	if result.Code != pfvm.CodeOK {
		t.Fatalf("got %v", result.Code)
	}
	if result.ExitCode != 1 {
		t.Fatalf("got %v", result.ExitCode)
	}
	if runner.VM.IsLive(pfvm.MainRoutine) {
		t.Fatal("should be shut down")
	}
}
