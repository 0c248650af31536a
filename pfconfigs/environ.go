package pfconfigs

import (
	"github.com/xyproto/env/v2"
)

// Environ holds the settings read from PF_* environment variables
type Environ struct {
	CacheSize     int
	MemorySize    int
	SpecialMemory int
	Privileged    bool
	StepLimit     *int
}

func (Module) Environ() Environ {
	ret := Environ{
		CacheSize:     env.Int("PF_CACHE_SIZE", 0),
		MemorySize:    env.Int("PF_MEMORY_SIZE", 0),
		SpecialMemory: env.Int("PF_SPECIAL_MEMORY", 0),
		Privileged:    env.Bool("PF_PRIVILEGED"),
	}
	if env.Has("PF_STEP_LIMIT") {
		limit := env.Int("PF_STEP_LIMIT", DefaultStepLimit)
		ret.StepLimit = &limit
	}
	return ret
}
