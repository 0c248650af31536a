package pfvm

import "slices"

type RoutineState struct {
	Index        int
	Alive        bool
	Cursor       int32
	Pointer      int
	Tape         []byte
	Window       int64
	SourceLen    int64
	SharesSource bool
	Budget       int32
}

type State struct {
	Config   Config
	Routines []RoutineState
}

// State returns a copy of the routine table
func (v *VM) State() State {
	state := State{
		Config: v.config,
	}
	for i, r := range v.routines {
		state.Routines = append(state.Routines, RoutineState{
			Index:        i,
			Alive:        r.alive,
			Cursor:       r.cursor,
			Pointer:      r.pointer,
			Tape:         slices.Clone(r.tape),
			Window:       r.window,
			SourceLen:    r.length,
			SharesSource: r.forked,
			Budget:       r.budget,
		})
	}
	return state
}

// UserCells returns the user region of the tape
func (s RoutineState) UserCells(config Config) []byte {
	return s.Tape[config.SpecialMemory:]
}
