package emulator

import (
	"errors"
	"fmt"
)

/*
INSTRUCTIONS IMPLEMENTATION

The following section is the set of all instruction operations allowed in CHIP-8.
See this documentation for more details:
https://github.com/mattmikolay/chip-8/wiki/Mastering-CHIP%E2%80%908
https://github.com/mattmikolay/chip-8/wiki/CHIP%E2%80%908-Instruction-Set

Every handler runs after PC has already been advanced past the instruction.
*/

// x returns the register index in the second nibble
func (c8 *Chip8) x() byte {
	return byte((c8.opcode & 0x0F00) >> 8)
}

// y returns the register index in the third nibble
func (c8 *Chip8) y() byte {
	return byte((c8.opcode & 0x00F0) >> 4)
}

func (c8 *Chip8) n() byte {
	return byte(c8.opcode & 0x000F)
}

func (c8 *Chip8) kk() byte {
	return byte(c8.opcode & 0x00FF)
}

func (c8 *Chip8) nnn() uint16 {
	return c8.opcode & 0x0FFF
}

// skipIf jumps over the next instruction. PC was already incremented in Cycle().
func (c8 *Chip8) skipIf(cond bool) {
	if cond {
		c8.programCounter += 2
	}
}

/*
00E0: CLS
Clear the display
*/
func (c8 *Chip8) op00E0() error {
	c8.screen.Clear()
	return nil
}

/*
00EE: RET
Return from a subroutine
*/
func (c8 *Chip8) op00EE() error {
	if c8.stackPointer == 0 {
		return ErrStackUnderflow
	}
	c8.stackPointer -= 1
	c8.programCounter = c8.stack[c8.stackPointer]
	return nil
}

/*
1nnn: JP addr
Jump to location nnn. A jump doesn't remember its origin, so no stack interaction required.
*/
func (c8 *Chip8) op1nnn() error {
	c8.programCounter = c8.nnn()
	return nil
}

/*
2nnn - CALL addr
Call subroutine at nnn. The already incremented PC is the return address.
*/
func (c8 *Chip8) op2nnn() error {
	if int(c8.stackPointer) == len(c8.stack) {
		return ErrStackOverflow
	}
	c8.stack[c8.stackPointer] = c8.programCounter
	c8.stackPointer += 1
	c8.programCounter = c8.nnn()
	return nil
}

// 3xkk - SE Vx, byte
func (c8 *Chip8) op3xkk() error {
	c8.skipIf(c8.registers[c8.x()] == c8.kk())
	return nil
}

// 4xkk - SNE Vx, byte
func (c8 *Chip8) op4xkk() error {
	c8.skipIf(c8.registers[c8.x()] != c8.kk())
	return nil
}

// 5xy0 - SE Vx, Vy
func (c8 *Chip8) op5xy0() error {
	c8.skipIf(c8.registers[c8.x()] == c8.registers[c8.y()])
	return nil
}

// 6xkk - LD Vx, byte
func (c8 *Chip8) op6xkk() error {
	c8.registers[c8.x()] = c8.kk()
	return nil
}

/*
7xkk - ADD Vx, byte
Set Vx = Vx + kk. The sum wraps and VF is left alone, only 8xy4 produces a carry.
*/
func (c8 *Chip8) op7xkk() error {
	c8.registers[c8.x()] += c8.kk()
	return nil
}

// 8xy0 - LD Vx, Vy
func (c8 *Chip8) op8xy0() error {
	c8.registers[c8.x()] = c8.registers[c8.y()]
	return nil
}

// 8xy1 - OR Vx, Vy
func (c8 *Chip8) op8xy1() error {
	c8.registers[c8.x()] |= c8.registers[c8.y()]
	return nil
}

// 8xy2 - AND Vx, Vy
func (c8 *Chip8) op8xy2() error {
	c8.registers[c8.x()] &= c8.registers[c8.y()]
	return nil
}

// 8xy3 - XOR Vx, Vy
func (c8 *Chip8) op8xy3() error {
	c8.registers[c8.x()] ^= c8.registers[c8.y()]
	return nil
}

/*
8xy4 - ADD Vx, Vy
Set Vx = Vx + Vy, set VF = carry.
Only the lowest 8 bits of the result are kept. The flag is written last so it wins when x is F.
*/
func (c8 *Chip8) op8xy4() error {
	sum := uint16(c8.registers[c8.x()]) + uint16(c8.registers[c8.y()])
	c8.registers[c8.x()] = byte(sum)
	c8.setFlag(sum > 0xFF)
	return nil
}

/*
8xy5 - SUB Vx, Vy
Set Vx = Vx - Vy, set VF = NOT borrow.
*/
func (c8 *Chip8) op8xy5() error {
	vx, vy := c8.registers[c8.x()], c8.registers[c8.y()]
	c8.registers[c8.x()] = vx - vy
	c8.setFlag(vx >= vy)
	return nil
}

/*
8xy6 - SHR Vx {, Vy}
Shift right by one, the bit shifted out goes to VF.
*/
func (c8 *Chip8) op8xy6() error {
	src := c8.shiftSource()
	c8.registers[c8.x()] = src >> 1
	c8.registers[0xF] = src & 0x1
	return nil
}

/*
8xy7 - SUBN Vx, Vy
Set Vx = Vy - Vx, set VF = NOT borrow.
*/
func (c8 *Chip8) op8xy7() error {
	vx, vy := c8.registers[c8.x()], c8.registers[c8.y()]
	c8.registers[c8.x()] = vy - vx
	c8.setFlag(vy >= vx)
	return nil
}

/*
8xyE - SHL Vx {, Vy}
Shift left by one, the bit shifted out goes to VF.
*/
func (c8 *Chip8) op8xyE() error {
	src := c8.shiftSource()
	c8.registers[c8.x()] = src << 1
	c8.registers[0xF] = (src & 0x80) >> 7
	return nil
}

func (c8 *Chip8) shiftSource() byte {
	if c8.quirks.ShiftUsesVY {
		return c8.registers[c8.y()]
	}
	return c8.registers[c8.x()]
}

func (c8 *Chip8) setFlag(set bool) {
	if set {
		c8.registers[0xF] = 1
	} else {
		c8.registers[0xF] = 0
	}
}

// 9xy0 - SNE Vx, Vy
func (c8 *Chip8) op9xy0() error {
	c8.skipIf(c8.registers[c8.x()] != c8.registers[c8.y()])
	return nil
}

// Annn - LD I, addr
func (c8 *Chip8) opAnnn() error {
	c8.indexRegister = c8.nnn()
	return nil
}

// Bnnn - JP V0, addr
func (c8 *Chip8) opBnnn() error {
	c8.programCounter = uint16(c8.registers[0]) + c8.nnn()
	return nil
}

// Cxkk - RND Vx, byte
func (c8 *Chip8) opCxkk() error {
	c8.registers[c8.x()] = c8.random() & c8.kk()
	return nil
}

/*
Dxyn - DRW Vx, Vy, nibble
Display n-byte sprite starting at memory location I at (Vx, Vy), set VF = collision.
Each sprite byte is one row, blitted one line further down than the previous one.
When vertical wrapping is off, rows below the screen are clipped.
*/
func (c8 *Chip8) opDxyn() error {
	x := int(c8.registers[c8.x()])
	y := int(c8.registers[c8.y()])

	sprite, err := c8.memory.ReadBlock(c8.indexRegister, int(c8.n()))
	if err != nil {
		return err
	}

	c8.registers[0xF] = 0
	for row, b := range sprite {
		collision, err := c8.screen.Blit(x, y+row, b)
		if errors.Is(err, ErrOutOfBounds) {
			continue
		}
		if collision {
			c8.registers[0xF] = 1
		}
	}
	c8.screen.markDirty()
	return nil
}

// key returns Vx as a key code. There are only 16 keys.
func (c8 *Chip8) key() (byte, error) {
	key := c8.registers[c8.x()]
	if key > 0xF {
		return 0, fmt.Errorf("%w: key %d", ErrOutOfBounds, key)
	}
	return key, nil
}

// Ex9E - SKP Vx
func (c8 *Chip8) opEx9E() error {
	key, err := c8.key()
	if err != nil {
		return err
	}
	c8.skipIf(c8.input.IsHeld(key))
	return nil
}

// ExA1 - SKNP Vx
func (c8 *Chip8) opExA1() error {
	key, err := c8.key()
	if err != nil {
		return err
	}
	c8.skipIf(!c8.input.IsHeld(key))
	return nil
}

// Fx07 - LD Vx, DT
func (c8 *Chip8) opFx07() error {
	c8.registers[c8.x()] = c8.delayTimer
	return nil
}

/*
Fx0A - LD Vx, K
Wait for a key press, store the value of the key in Vx.
The "wait" moves the PC back by 2 whenever no key is held, which runs the same instruction again next cycle.
*/
func (c8 *Chip8) opFx0A() error {
	key, ok := c8.input.FirstPressed()
	if !ok {
		c8.programCounter -= 2
		return nil
	}
	c8.registers[c8.x()] = key
	return nil
}

// Fx15 - LD DT, Vx
func (c8 *Chip8) opFx15() error {
	c8.delayTimer = c8.registers[c8.x()]
	return nil
}

// Fx18 - LD ST, Vx
func (c8 *Chip8) opFx18() error {
	c8.soundTimer = c8.registers[c8.x()]
	return nil
}

// Fx1E - ADD I, Vx
func (c8 *Chip8) opFx1E() error {
	c8.indexRegister += uint16(c8.registers[c8.x()])
	return nil
}

/*
Fx29 - LD F, Vx
Set I = location of sprite for digit Vx.
The font characters are five bytes each starting at FONTSET_START_ADDRESS.
Values above 0xF are not reduced, I then points past the fontset.
*/
func (c8 *Chip8) opFx29() error {
	digit := uint16(c8.registers[c8.x()])
	c8.indexRegister = FONTSET_START_ADDRESS + GLYPH_SIZE*digit
	return nil
}

/*
Fx33 - LD B, Vx
Store BCD representation of Vx in memory locations I, I+1, and I+2.
*/
func (c8 *Chip8) opFx33() error {
	value := c8.registers[c8.x()]
	bcd := []byte{value / 100, (value / 10) % 10, value % 10}
	return c8.memory.WriteBlock(c8.indexRegister, bcd)
}

/*
Fx55 - LD [I], Vx
Store registers V0 through Vx in memory starting at location I. I itself is not changed.
*/
func (c8 *Chip8) opFx55() error {
	return c8.memory.WriteBlock(c8.indexRegister, c8.registers[:c8.x()+1])
}

/*
Fx65 - LD Vx, [I]
Read registers V0 through Vx from memory starting at location I.
*/
func (c8 *Chip8) opFx65() error {
	block, err := c8.memory.ReadBlock(c8.indexRegister, int(c8.x())+1)
	if err != nil {
		return err
	}
	copy(c8.registers[:], block)
	return nil
}
