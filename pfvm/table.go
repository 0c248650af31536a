package pfvm

import (
	"fmt"
	"slices"
)

// freeSlot returns the lowest dead index, or the index one past the end of the table
func (v *VM) freeSlot() int {
	for i, r := range v.routines {
		if !r.alive {
			return i
		}
	}
	return len(v.routines)
}

func (v *VM) place(r *Routine) int {
	index := v.freeSlot()
	if index == len(v.routines) {
		v.routines = append(v.routines, r)
	} else {
		v.routines[index] = r
	}
	return index
}

// Create loads src as a new routine and returns its index.
// On failure the table is unchanged and src stays owned by the caller.
func (v *VM) Create(src Source) (int, error) {
	length, err := sourceLength(src)
	if err != nil {
		v.logger.Error("get source length", "error", err)
		return -1, fmt.Errorf("get source length: %w", err)
	}
	r := &Routine{
		alive:   true,
		tape:    make([]byte, v.config.TapeSize()),
		pointer: v.config.SpecialMemory,
		cache:   make([]byte, v.config.CacheSize),
		length:  length,
	}
	if err := v.readWindow(src, 0, r.cache); err != nil {
		v.logger.Error("load first cache window", "error", err)
		return -1, fmt.Errorf("load first cache window: %w", err)
	}
	r.source = newSharedSource(src)
	index := v.place(r)
	v.logger.Debug("routine created", "routine", index, "length", length)
	return index, nil
}

// Fork duplicates the routine at index into a new or reused slot.
// The fork references the origin's source without owning it.
func (v *VM) Fork(index int) (int, error) {
	if !v.IsLive(index) {
		return -1, fmt.Errorf("fork %d: %w", index, ErrNotLive)
	}
	origin := v.routines[index]
	forked := v.place(&Routine{
		alive:   true,
		tape:    slices.Clone(origin.tape),
		pointer: origin.pointer,
		cursor:  origin.cursor,
		cache:   slices.Clone(origin.cache),
		window:  origin.window,
		source:  origin.source.acquire(),
		length:  origin.length,
		forked:  true,
		budget:  origin.budget,
	})
	v.logger.Debug("routine forked", "routine", index, "fork", forked)
	return forked, nil
}

// Exec replaces the program of the routine at index with src.
// It returns false and leaves the routine untouched if src cannot be measured or its first window cannot be read;
// in that case src stays owned by the caller.
func (v *VM) Exec(index int, src Source) bool {
	if !v.IsLive(index) {
		return false
	}
	r := v.routines[index]
	length, err := sourceLength(src)
	if err != nil {
		v.logger.Error("exec: get source length", "routine", index, "error", err)
		return false
	}
	// the new window is read over a copy of the current one, so LegacyStaleWindow applies to exec too
	cache := slices.Clone(r.cache)
	if err := v.readWindow(src, 0, cache); err != nil {
		v.logger.Error("exec: load first cache window", "routine", index, "error", err)
		return false
	}
	v.releaseSource(index, r)
	r.source = newSharedSource(src)
	r.length = length
	r.cache = cache
	r.window = 0
	r.reset(v.config.SpecialMemory)
	v.logger.Debug("routine exec", "routine", index, "length", length)
	return true
}

// Destroy marks the routine dead and drops its source reference.
// Dead slots are reused lowest index first.
func (v *VM) Destroy(index int) {
	if !v.IsLive(index) {
		return
	}
	r := v.routines[index]
	v.releaseSource(index, r)
	r.source = nil
	r.alive = false
	v.logger.Debug("routine destroyed", "routine", index)
}

func (v *VM) releaseSource(index int, r *Routine) {
	closed, err := r.source.release()
	if err != nil {
		v.logger.Warn("close routine source", "routine", index, "error", err)
		return
	}
	if closed {
		v.logger.Debug("routine source closed", "routine", index)
	}
}

// Shutdown destroys every live routine and returns the first user cell of the main routine
func (v *VM) Shutdown() int {
	var exitCode int
	if len(v.routines) > 0 {
		exitCode = int(v.routines[MainRoutine].tape[v.config.SpecialMemory])
	}
	for i := range v.routines {
		v.Destroy(i)
	}
	return exitCode
}
