package pfvm

import "fmt"

// Code is the result of a Step call
type Code uint8

const (
	// CodeOK means the instruction budget ran out or a command completed
	CodeOK Code = 0
	// CodeNoop is returned after the explicit no-op command
	CodeNoop Code = 2

	CodePointerOutOfBounds Code = 4
	CodeUnmatchedClose     Code = 6
	CodeUnmatchedOpen      Code = 7
	CodeEndOfProgram       Code = 8
	CodePrivileged         Code = 9
	CodeUnknownCommand     Code = 11
	CodeResumeNotLive      Code = 14
	CodeNotLive            Code = 15
)

// Terminal reports whether the caller must stop stepping the routine
func (c Code) Terminal() bool {
	return c >= 3
}

// Soft reports whether the code is a mailbox command error.
// Soft errors are also written into the status cell of the issuing routine.
func (c Code) Soft() bool {
	switch c {
	case CodePrivileged, CodeUnknownCommand, CodeResumeNotLive, CodeNotLive:
		return true
	}
	return false
}

func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeNoop:
		return "no-op"
	case CodePointerOutOfBounds:
		return "pointer out of bounds"
	case CodeUnmatchedClose:
		return "unmatched ]"
	case CodeUnmatchedOpen:
		return "unmatched ["
	case CodeEndOfProgram:
		return "end of program"
	case CodePrivileged:
		return "privileged operation"
	case CodeUnknownCommand:
		return "unknown command"
	case CodeResumeNotLive:
		return "resume target not live"
	case CodeNotLive:
		return "routine not live"
	}
	return fmt.Sprintf("code %d", uint8(c))
}

type CodeError struct {
	Code Code
}

func (e *CodeError) Error() string {
	return fmt.Sprintf("routine stopped: %s (%d)", e.Code, uint8(e.Code))
}

// Err returns a *CodeError for terminal codes, nil otherwise
func (c Code) Err() error {
	if !c.Terminal() {
		return nil
	}
	return &CodeError{
		Code: c,
	}
}
