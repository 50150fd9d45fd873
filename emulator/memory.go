package emulator

import "fmt"

/*
There is relatively little register-space, so a computer needs a large chunk of general memory dedicated to holding
program instructions, long-term data, and short-term data. It references different locations in that memory using an
address.

The CHIP-8 has 4096 bytes of memory, meaning the address space is from 0x000 to 0xFFF.
The address space is segmented into three sections:

	0x000-0x1FF: Originally reserved for the CHIP-8 interpreter. We never read from or write to it, except for...
	0x050-0x0A0: Storage space for the 16 built-in characters (0 through F). ROMs expect these to be present.
	0x200-0xFFF: Instructions from the ROM are stored starting at 0x200, anything after the ROM's space is free to use.
*/
const MEMORY_SIZE = 4096
const START_ADDRESS uint16 = 0x200
const FONTSET_START_ADDRESS uint16 = 0x50

// Each glyph in the fontset is 5 rows of 8 pixels (only the high nibble is used)
const GLYPH_SIZE = 5

var fontset = [16 * GLYPH_SIZE]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat 4k address space of the machine. Every access is bounds checked.
type Memory [MEMORY_SIZE]byte

func (m *Memory) reset() {
	for k := range m {
		m[k] = 0
	}
	copy(m[FONTSET_START_ADDRESS:], fontset[:])
}

// checkRange reports ErrOutOfBounds unless [addr, addr+n) lies inside memory.
func checkRange(addr uint16, n int) error {
	if n < 0 || int(addr)+n > MEMORY_SIZE {
		return fmt.Errorf("%w: %d bytes at address 0x%04X", ErrOutOfBounds, n, addr)
	}
	return nil
}

// Read returns the byte at addr.
func (m *Memory) Read(addr uint16) (byte, error) {
	if err := checkRange(addr, 1); err != nil {
		return 0, err
	}
	return m[addr], nil
}

// Write stores v at addr.
func (m *Memory) Write(addr uint16, v byte) error {
	if err := checkRange(addr, 1); err != nil {
		return err
	}
	m[addr] = v
	return nil
}

// ReadWord returns the big-endian 16-bit value stored at addr and addr+1.
func (m *Memory) ReadWord(addr uint16) (uint16, error) {
	if err := checkRange(addr, 2); err != nil {
		return 0, err
	}
	return uint16(m[addr])<<8 | uint16(m[addr+1]), nil
}

// ReadBlock returns a copy of the n bytes starting at addr.
func (m *Memory) ReadBlock(addr uint16, n int) ([]byte, error) {
	if err := checkRange(addr, n); err != nil {
		return nil, err
	}
	block := make([]byte, n)
	copy(block, m[addr:])
	return block, nil
}

// WriteBlock copies data into memory starting at addr. Nothing is written if any
// byte of data would fall outside of memory.
func (m *Memory) WriteBlock(addr uint16, data []byte) error {
	if err := checkRange(addr, len(data)); err != nil {
		return err
	}
	copy(m[addr:], data)
	return nil
}
