package pfvm

import "fmt"

type Config struct {
	CacheSize     int // bytes per source window
	MemorySize    int // user cells per routine
	SpecialMemory int // mailbox cells per routine, placed below the user cells

	// Privileged allows the pointer to move into the mailbox region
	Privileged bool

	// LegacyStaleWindow keeps bytes of the previously loaded window behind a short read near the end of the source,
	// where they can run as instructions. When false the tail of the window is zeroed.
	LegacyStaleWindow bool

	// LegacyOriginScan stops the backward bracket scan at offset 1,
	// so a '[' at offset 0 can never be reached from its ']'.
	LegacyOriginScan bool
}

const (
	DefaultCacheSize     = 600
	DefaultMemorySize    = 100
	DefaultSpecialMemory = 100

	// doorbell, opcode, two arguments, two result cells
	MinSpecialMemory = 6
)

func DefaultConfig() Config {
	return Config{
		CacheSize:     DefaultCacheSize,
		MemorySize:    DefaultMemorySize,
		SpecialMemory: DefaultSpecialMemory,
	}
}

func (c Config) Validate() error {
	if c.CacheSize <= 0 {
		return fmt.Errorf("bad cache size: %d", c.CacheSize)
	}
	if c.MemorySize <= 0 {
		return fmt.Errorf("bad memory size: %d", c.MemorySize)
	}
	if c.SpecialMemory < MinSpecialMemory {
		return fmt.Errorf("special memory must be at least %d, got %d", MinSpecialMemory, c.SpecialMemory)
	}
	return nil
}

// TapeSize returns the number of cells of a routine tape
func (c Config) TapeSize() int {
	return c.SpecialMemory + c.MemorySize
}
