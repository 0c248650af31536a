package pfvm

import (
	"errors"
	"io"
	"math"
)

// Step runs the routine at index for at most limit instructions, or until a terminal or command code when limit <= 0.
// It returns CodeOK when the budget runs out.
func (v *VM) Step(index int, limit int) Code {
	if !v.IsLive(index) {
		return CodeNotLive
	}
	r := v.routines[index]
	if limit > 0 {
		r.budget = int32(min(limit, math.MaxInt32))
	} else {
		r.budget = -1
	}

	for {
		if r.budget == 0 {
			return CodeOK
		}
		if r.budget > 0 {
			r.budget--
		}

		position := r.cursor
		op := v.fetch(r, position)
		r.cursor++
		if v.trace != nil {
			v.trace(index, position, op)
		}

		if code, stop := v.interpret(index, r, op); stop {
			return code
		}
		if code, ok := v.checkMailbox(index, r); ok {
			return code
		}
	}
}

func (v *VM) interpret(index int, r *Routine, op byte) (Code, bool) {
	switch op {

	case '+':
		r.tape[r.pointer]++

	case '-':
		r.tape[r.pointer]--

	case '>':
		if r.pointer+1 >= len(r.tape) {
			v.logger.Warn("pointer out of bounds",
				"routine", index,
				"pointer", r.pointer+1-v.config.SpecialMemory,
				"max", v.config.MemorySize-1,
			)
			return CodePointerOutOfBounds, true
		}
		r.pointer++

	case '<':
		lower := v.config.SpecialMemory
		if v.config.Privileged {
			lower = 0
		}
		if r.pointer-1 < lower {
			v.logger.Warn("pointer out of bounds",
				"routine", index,
				"pointer", r.pointer-1-v.config.SpecialMemory,
				"min", lower-v.config.SpecialMemory,
				"privileged", v.config.Privileged,
			)
			return CodePointerOutOfBounds, true
		}
		r.pointer--

	case '.':
		v.outputBuf[0] = r.tape[r.pointer]
		if _, err := v.stdout.Write(v.outputBuf[:]); err != nil {
			v.logger.Warn("write output", "routine", index, "error", err)
		}

	case ',':
		r.tape[r.pointer] = v.readInput(index)

	case '[':
		if r.tape[r.pointer] == 0 {
			end, ok := v.findMatchingClose(r, r.cursor)
			if !ok {
				return CodeUnmatchedOpen, true
			}
			r.cursor = end
		}

	case ']':
		if r.tape[r.pointer] != 0 {
			start, ok := v.findMatchingOpen(r, r.cursor-1)
			if !ok {
				return CodeUnmatchedClose, true
			}
			r.cursor = start
		}

	case 0:
		return CodeEndOfProgram, true

	}
	return CodeOK, false
}

// readInput returns the next input byte, or 0xff at end of input
func (v *VM) readInput(index int) byte {
	if _, err := io.ReadFull(v.stdin, v.inputBuf[:]); err != nil {
		if !errors.Is(err, io.EOF) {
			v.logger.Warn("read input", "routine", index, "error", err)
		}
		return 0xff
	}
	return v.inputBuf[0]
}
