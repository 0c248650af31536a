package pfvm

type Opcode byte

const (
	OpFork    Opcode = 0
	OpResume  Opcode = 1
	OpNoop    Opcode = 2
	OpDestroy Opcode = 3
)

func (o Opcode) String() string {
	switch o {
	case OpFork:
		return "fork"
	case OpResume:
		return "resume"
	case OpNoop:
		return "noop"
	case OpDestroy:
		return "destroy"
	}
	return "unknown"
}

// result cells, as offsets into the mailbox region
const (
	StatusCell = 0
	ValueCell  = 1
)

// Command is a decoded mailbox command
type Command struct {
	Op   Opcode
	Args []byte
}

func (c Command) Arg(i int) byte {
	if i < len(c.Args) {
		return c.Args[i]
	}
	return 0
}

// DoorbellCell returns the tape index of the cell that triggers dispatch when nonzero
func (c Config) DoorbellCell() int {
	return c.SpecialMemory - 1
}

// DecodeCommand reads a command from the mailbox region of a tape.
// Cells below the doorbell are stored highest address first: the opcode sits at SpecialMemory-2,
// the first argument at SpecialMemory-3, and so on down to cell 0.
func DecodeCommand(mailbox []byte) Command {
	n := len(mailbox) - 1
	buf := make([]byte, n)
	for i := range n {
		buf[i] = mailbox[n-1-i]
	}
	return Command{
		Op:   Opcode(buf[0]),
		Args: buf[1:],
	}
}

// EncodeCommand writes cmd into the mailbox region of a tape and rings the doorbell
func EncodeCommand(mailbox []byte, cmd Command) {
	n := len(mailbox) - 1
	mailbox[n-1] = byte(cmd.Op)
	for i, arg := range cmd.Args {
		if pos := n - 2 - i; pos >= 0 {
			mailbox[pos] = arg
		}
	}
	mailbox[n] = 1
}

func (v *VM) checkMailbox(index int, r *Routine) (Code, bool) {
	doorbell := v.config.DoorbellCell()
	if r.tape[doorbell] == 0 {
		return CodeOK, false
	}
	r.tape[doorbell] = 0
	cmd := DecodeCommand(r.tape[:v.config.SpecialMemory])
	return v.dispatch(index, r, cmd), true
}

func (v *VM) dispatch(index int, r *Routine, cmd Command) Code {
	v.logger.Debug("mailbox command",
		"routine", index,
		"op", cmd.Op,
		"arg0", cmd.Arg(0),
		"arg1", cmd.Arg(1),
	)

	if index != MainRoutine {
		v.logger.Warn("command from unprivileged routine", "routine", index, "op", cmd.Op)
		return v.fail(r, CodePrivileged)
	}

	switch cmd.Op {

	case OpFork:
		forked, err := v.Fork(MainRoutine)
		if err != nil {
			// unreachable while the main routine is running
			panic(err)
		}
		r.tape[StatusCell] = 0
		r.tape[ValueCell] = byte(forked)
		return CodeOK

	case OpResume:
		target := int(cmd.Arg(0))
		limit := int(cmd.Arg(1))
		if target == MainRoutine || !v.IsLive(target) {
			return v.fail(r, CodeResumeNotLive)
		}
		result := v.Step(target, limit)
		if result == CodeOK {
			copy(r.tape, v.routines[target].tape)
		}
		r.tape[StatusCell] = byte(result)
		return CodeOK

	case OpNoop:
		return CodeNoop

	case OpDestroy:
		target := int(cmd.Arg(0))
		if target == MainRoutine || !v.IsLive(target) {
			return v.fail(r, CodeNotLive)
		}
		v.Destroy(target)
		r.tape[StatusCell] = 0
		return CodeOK

	}

	return v.fail(r, CodeUnknownCommand)
}

// fail writes code into the status cell of the issuing routine
func (v *VM) fail(r *Routine, code Code) Code {
	r.tape[StatusCell] = byte(code)
	return code
}
