package emulator

import (
	"errors"
	"fmt"
)

// Every one of these is fatal for the running program. The host decides whether to
// halt, reset or report and carry on.
var (
	ErrInvalidOpcode  = errors.New("invalid opcode")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrOutOfBounds    = errors.New("out of bounds")

	// ErrHalted is returned by a Runner with halt on loop enabled once the program
	// jumps to its own address.
	ErrHalted = errors.New("program halted")
)

// OpcodeError wraps a failure raised while executing the instruction at PC.
type OpcodeError struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("0x%03X: %04X (%s): %v", e.PC, e.Opcode, Disassemble(e.Opcode), e.Err)
}

func (e *OpcodeError) Unwrap() error {
	return e.Err
}
