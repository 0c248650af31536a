package pfconfigs

import (
	"time"

	"github.com/reusee/pf/cmds"
	"github.com/reusee/pf/configs"
	"github.com/reusee/pf/logs"
	"github.com/reusee/pf/vars"
)

const (
	DefaultStepLimit = 500
	DefaultIdle      = 100 * time.Microsecond
)

// StepLimit is the instruction budget of each driver poll. Zero means unbounded
type StepLimit int

var stepLimitFlag = cmds.Var[*int]("-limit")

func (Module) StepLimit(
	loader configs.Loader,
	environ Environ,
) StepLimit {
	// zero is meaningful, so unset is nil
	limit := vars.FirstNonZero(
		*stepLimitFlag,
		environ.StepLimit,
		configs.First[*int](loader, "step_limit"),
	)
	if limit == nil {
		return DefaultStepLimit
	}
	return StepLimit(max(*limit, 0))
}

// Idle is the pause between driver polls
type Idle time.Duration

var idleFlag = cmds.Var[time.Duration]("-idle")

func (Module) Idle(
	loader configs.Loader,
	logger logs.Logger,
) Idle {
	if *idleFlag > 0 {
		return Idle(*idleFlag)
	}
	if str := configs.First[string](loader, "idle"); str != "" {
		d, err := time.ParseDuration(str)
		if err != nil {
			logger.Warn("bad idle duration in config", "idle", str, "error", err)
		} else if d >= 0 {
			return Idle(d)
		}
	}
	return Idle(DefaultIdle)
}

// KeepGoing makes the driver continue past failed mailbox commands
type KeepGoing bool

var keepGoingFlag = cmds.Switch("-keep-going")

func (Module) KeepGoing(
	loader configs.Loader,
) KeepGoing {
	return KeepGoing(vars.FirstNonZero(
		*keepGoingFlag,
		configs.First[bool](loader, "keep_going"),
	))
}

// CorePath is where the driver writes the core file when the main routine faults. Empty disables it
type CorePath string

var coreFlag = cmds.Var[string]("-core")

func (Module) CorePath(
	loader configs.Loader,
) CorePath {
	return CorePath(vars.FirstNonZero(
		*coreFlag,
		configs.First[string](loader, "core"),
	))
}
