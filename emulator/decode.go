package emulator

// instruction is one entry of the dispatch table.
type instruction struct {
	name     string
	exec     func(c8 *Chip8) error
	operands func(opcode uint16) string
}

// selector picks the part of the opcode that tells instructions with the same high nibble apart.
type selector func(opcode uint16) uint16

func selectNone(uint16) uint16 { return 0 }

func selectC(opcode uint16) uint16 { return (opcode & 0x00F0) >> 4 }

func selectD(opcode uint16) uint16 { return opcode & 0x000F }

func selectCD(opcode uint16) uint16 { return opcode & 0x00FF }

type opGroup struct {
	sel selector
	ops map[uint16]instruction
}

/*
The instruction table is keyed first on the high nibble and then on that group's selector.
It is the only place that knows which bit patterns are valid, the disassembler reads it too.
*/
var instructionTable = [16]opGroup{
	0x0: {sel: selectD, ops: map[uint16]instruction{
		0x0: {"CLS", (*Chip8).op00E0, noOperands},
		0xE: {"RET", (*Chip8).op00EE, noOperands},
	}},
	0x1: {sel: selectNone, ops: map[uint16]instruction{
		0: {"JP", (*Chip8).op1nnn, addrOperand},
	}},
	0x2: {sel: selectNone, ops: map[uint16]instruction{
		0: {"CALL", (*Chip8).op2nnn, addrOperand},
	}},
	0x3: {sel: selectNone, ops: map[uint16]instruction{
		0: {"SE", (*Chip8).op3xkk, vxByteOperands},
	}},
	0x4: {sel: selectNone, ops: map[uint16]instruction{
		0: {"SNE", (*Chip8).op4xkk, vxByteOperands},
	}},
	0x5: {sel: selectD, ops: map[uint16]instruction{
		0x0: {"SE", (*Chip8).op5xy0, vxVyOperands},
	}},
	0x6: {sel: selectNone, ops: map[uint16]instruction{
		0: {"LD", (*Chip8).op6xkk, vxByteOperands},
	}},
	0x7: {sel: selectNone, ops: map[uint16]instruction{
		0: {"ADD", (*Chip8).op7xkk, vxByteOperands},
	}},
	0x8: {sel: selectD, ops: map[uint16]instruction{
		0x0: {"LD", (*Chip8).op8xy0, vxVyOperands},
		0x1: {"OR", (*Chip8).op8xy1, vxVyOperands},
		0x2: {"AND", (*Chip8).op8xy2, vxVyOperands},
		0x3: {"XOR", (*Chip8).op8xy3, vxVyOperands},
		0x4: {"ADD", (*Chip8).op8xy4, vxVyOperands},
		0x5: {"SUB", (*Chip8).op8xy5, vxVyOperands},
		0x6: {"SHR", (*Chip8).op8xy6, vxVyOperands},
		0x7: {"SUBN", (*Chip8).op8xy7, vxVyOperands},
		0xE: {"SHL", (*Chip8).op8xyE, vxVyOperands},
	}},
	0x9: {sel: selectD, ops: map[uint16]instruction{
		0x0: {"SNE", (*Chip8).op9xy0, vxVyOperands},
	}},
	0xA: {sel: selectNone, ops: map[uint16]instruction{
		0: {"LD", (*Chip8).opAnnn, indexAddrOperands},
	}},
	0xB: {sel: selectNone, ops: map[uint16]instruction{
		0: {"JP", (*Chip8).opBnnn, v0AddrOperands},
	}},
	0xC: {sel: selectNone, ops: map[uint16]instruction{
		0: {"RND", (*Chip8).opCxkk, vxByteOperands},
	}},
	0xD: {sel: selectNone, ops: map[uint16]instruction{
		0: {"DRW", (*Chip8).opDxyn, drawOperands},
	}},
	0xE: {sel: selectC, ops: map[uint16]instruction{
		0x9: {"SKP", (*Chip8).opEx9E, vxOperand},
		0xA: {"SKNP", (*Chip8).opExA1, vxOperand},
	}},
	0xF: {sel: selectCD, ops: map[uint16]instruction{
		0x07: {"LD", (*Chip8).opFx07, vxWith("V%X, DT")},
		0x0A: {"LD", (*Chip8).opFx0A, vxWith("V%X, K")},
		0x15: {"LD", (*Chip8).opFx15, vxWith("DT, V%X")},
		0x18: {"LD", (*Chip8).opFx18, vxWith("ST, V%X")},
		0x1E: {"ADD", (*Chip8).opFx1E, vxWith("I, V%X")},
		0x29: {"LD", (*Chip8).opFx29, vxWith("F, V%X")},
		0x33: {"LD", (*Chip8).opFx33, vxWith("B, V%X")},
		0x55: {"LD", (*Chip8).opFx55, vxWith("[I], V%X")},
		0x65: {"LD", (*Chip8).opFx65, vxWith("V%X, [I]")},
	}},
}

func decode(opcode uint16) (instruction, bool) {
	group := instructionTable[opcode>>12]
	ins, ok := group.ops[group.sel(opcode)]
	return ins, ok
}
