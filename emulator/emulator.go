package emulator

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

const STACK_DEPTH = 16

// Chip8 is the complete machine state. It owns its memory, registers and framebuffer.
// Keyboard and display are borrowed from the host per call, so the machine runs without any backend.
type Chip8 struct {
	// Chip8 has 16 8-bit registers
	// VF doubles as the carry, borrow and collision flag
	registers [16]byte

	memory Memory

	// The Index Register is a special register used to store memory addresses for use in operations
	// It's a 16-bit register because the maximum memory address (0xFFF) is too big for an 8-bit register
	indexRegister uint16

	// The Program Counter (PC) holds the address of the next instruction to execute
	programCounter uint16

	// 16-level stack used to hold return addresses of subroutine calls
	stack [STACK_DEPTH]uint16

	// The Stack Pointer keeps track of our position in the stack
	stackPointer byte

	// If the timer value is zero, it stays zero
	// Both timers are decremented once per cycle, the host picks the cycle rate
	delayTimer byte
	soundTimer byte

	// The instruction currently being executed
	opcode uint16

	screen Framebuffer

	// only set for the duration of a Cycle call
	input Input

	quirks Quirks
	random func() byte
	logger *log.Logger
	trace  bool

	// kept for Reset
	rom []byte
}

// New returns a machine with the fontset loaded and PC pointing at START_ADDRESS.
func New(opts ...Option) *Chip8 {
	c8 := &Chip8{
		random: randomByte,
	}
	for _, opt := range opts {
		opt(c8)
	}
	c8.screen.wrap = c8.quirks.WrapSprites
	c8.reset()
	return c8
}

func (c8 *Chip8) reset() {
	c8.memory.reset()
	c8.registers = [16]byte{}
	c8.stack = [STACK_DEPTH]uint16{}
	c8.indexRegister = 0
	c8.stackPointer = 0
	c8.delayTimer = 0
	c8.soundTimer = 0
	c8.opcode = 0
	c8.programCounter = START_ADDRESS
	c8.screen.Clear()
}

// LoadROM writes the program into memory at START_ADDRESS.
func (c8 *Chip8) LoadROM(data []byte) error {
	if err := c8.memory.WriteBlock(START_ADDRESS, data); err != nil {
		return fmt.Errorf("loading %d byte program: %w", len(data), err)
	}
	c8.rom = append([]byte(nil), data...)

	if c8.logger != nil {
		c8.logger.Debug("Program loaded", log.Int("size", len(data)))
	}
	return nil
}

// Reset puts the machine back into its power-on state and reloads the last program.
func (c8 *Chip8) Reset() {
	c8.reset()
	if len(c8.rom) > 0 {
		// it fitted when it was first loaded
		_ = c8.memory.WriteBlock(START_ADDRESS, c8.rom)
	}

	if c8.logger != nil {
		c8.logger.Info("Machine reset")
	}
}

/*
When we talk about one cycle of this primitive CPU, we're talking about it doing three things:
- Fetch the next instruction in the form of an opcode
- Decode the instruction to determine what operation needs to occur
- Execute the instruction
After that both timers count down by one.

If the instruction fails, the returned error wraps one of the Err* values and the machine
is left with PC pointing at the failing instruction and the timers untouched.
*/
func (c8 *Chip8) Cycle(in Input) error {
	if in == nil {
		in = Keypad{}
	}

	// Fetch
	pc := c8.programCounter
	opcode, err := c8.memory.ReadWord(pc)
	if err != nil {
		return fmt.Errorf("fetching instruction at 0x%03X: %w", pc, err)
	}
	c8.opcode = opcode

	// Increment the PC before we execute anything
	c8.programCounter += 2

	// Decode and Execute
	ins, ok := decode(opcode)
	if !ok {
		c8.programCounter = pc
		return &OpcodeError{PC: pc, Opcode: opcode, Err: ErrInvalidOpcode}
	}

	if c8.trace && c8.logger != nil {
		c8.logger.Debug("Executing instruction",
			log.String("pc", fmt.Sprintf("0x%03X", pc)),
			log.String("opcode", fmt.Sprintf("%04X", opcode)),
			log.String("instruction", ins.disassemble(opcode)))
	}

	c8.input = in
	err = ins.exec(c8)
	c8.input = nil
	if err != nil {
		c8.programCounter = pc
		return &OpcodeError{PC: pc, Opcode: opcode, Err: err}
	}

	c8.tickTimers()
	return nil
}

// Screen returns the framebuffer for presentation.
func (c8 *Chip8) Screen() *Framebuffer {
	return &c8.screen
}

// Memory returns the address space, mostly useful to debuggers and tests.
func (c8 *Chip8) Memory() *Memory {
	return &c8.memory
}

func (c8 *Chip8) PC() uint16 {
	return c8.programCounter
}

func (c8 *Chip8) I() uint16 {
	return c8.indexRegister
}

// V returns register Vx.
func (c8 *Chip8) V(x byte) byte {
	return c8.registers[x&0xF]
}

func (c8 *Chip8) StackDepth() int {
	return int(c8.stackPointer)
}

// String dumps the registers in a single line.
func (c8 *Chip8) String() string {
	return fmt.Sprintf("pc=0x%03X i=0x%03X sp=%d dt=%d st=%d v=% X",
		c8.programCounter, c8.indexRegister, c8.stackPointer, c8.delayTimer, c8.soundTimer, c8.registers[:])
}
