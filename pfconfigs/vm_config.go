package pfconfigs

import (
	"github.com/reusee/pf/cmds"
	"github.com/reusee/pf/configs"
	"github.com/reusee/pf/pfvm"
	"github.com/reusee/pf/vars"
)

var (
	cacheSizeFlag         = cmds.Var[int]("-cache-size")
	memorySizeFlag        = cmds.Var[int]("-memory-size")
	specialMemoryFlag     = cmds.Var[int]("-special-memory")
	privilegedFlag        = cmds.Switch("-p")
	legacyStaleWindowFlag = cmds.Switch("-legacy-stale-window")
	legacyOriginScanFlag  = cmds.Switch("-legacy-origin-scan")
)

// VMConfig merges flags, environment, config files and defaults, in that order
func (Module) VMConfig(
	loader configs.Loader,
	environ Environ,
) pfvm.Config {
	return pfvm.Config{
		CacheSize: vars.FirstNonZero(
			*cacheSizeFlag,
			environ.CacheSize,
			configs.First[int](loader, "cache_size"),
			pfvm.DefaultCacheSize,
		),
		MemorySize: vars.FirstNonZero(
			*memorySizeFlag,
			environ.MemorySize,
			configs.First[int](loader, "memory_size"),
			pfvm.DefaultMemorySize,
		),
		SpecialMemory: vars.FirstNonZero(
			*specialMemoryFlag,
			environ.SpecialMemory,
			configs.First[int](loader, "special_memory"),
			pfvm.DefaultSpecialMemory,
		),
		Privileged: vars.FirstNonZero(
			*privilegedFlag,
			environ.Privileged,
			configs.First[bool](loader, "privileged"),
		),
		LegacyStaleWindow: vars.FirstNonZero(
			*legacyStaleWindowFlag,
			configs.First[bool](loader, "legacy_stale_window"),
		),
		LegacyOriginScan: vars.FirstNonZero(
			*legacyOriginScanFlag,
			configs.First[bool](loader, "legacy_origin_scan"),
		),
	}
}
