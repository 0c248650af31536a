package pfvm

import (
	"errors"
	"io"
	"log/slog"
	"os"
)

// index of the routine allowed to issue mailbox commands
const MainRoutine = 0

var ErrNotLive = errors.New("routine not live")

type TraceFunc func(routine int, position int32, op byte)

type Options struct {
	Stdin  io.Reader    // if nil, default to os.Stdin
	Stdout io.Writer    // if nil, default to os.Stdout
	Logger *slog.Logger // if nil, default to slog.Default()
	Trace  TraceFunc    // called before each instruction is interpreted
}

// VM holds the routine table. It is not safe for concurrent use.
type VM struct {
	config   Config
	routines []*Routine

	stdin  io.Reader
	stdout io.Writer
	logger *slog.Logger
	trace  TraceFunc

	inputBuf  [1]byte
	outputBuf [1]byte
}

func New(config Config, options *Options) (*VM, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	vm := &VM{
		config: config,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		logger: slog.Default(),
	}
	if options != nil {
		if options.Stdin != nil {
			vm.stdin = options.Stdin
		}
		if options.Stdout != nil {
			vm.stdout = options.Stdout
		}
		if options.Logger != nil {
			vm.logger = options.Logger
		}
		vm.trace = options.Trace
	}
	return vm, nil
}

func (v *VM) Config() Config {
	return v.config
}

// Len returns the size of the routine table, dead slots included
func (v *VM) Len() int {
	return len(v.routines)
}

// Routine returns the routine at index, or nil if the index is out of range
func (v *VM) Routine(index int) *Routine {
	if index < 0 || index >= len(v.routines) {
		return nil
	}
	return v.routines[index]
}

func (v *VM) IsLive(index int) bool {
	r := v.Routine(index)
	return r != nil && r.alive
}
