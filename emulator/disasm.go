package emulator

import "fmt"

// Disassemble returns the assembly mnemonic of opcode, for example "LD V1, $2A".
// Words that are not instructions come back as a data directive.
func Disassemble(opcode uint16) string {
	ins, ok := decode(opcode)
	if !ok {
		return fmt.Sprintf("DW $%04X", opcode)
	}
	return ins.disassemble(opcode)
}

func (ins instruction) disassemble(opcode uint16) string {
	if operands := ins.operands(opcode); operands != "" {
		return ins.name + " " + operands
	}
	return ins.name
}

func noOperands(uint16) string {
	return ""
}

func addrOperand(opcode uint16) string {
	return fmt.Sprintf("$%03X", opcode&0x0FFF)
}

func vxOperand(opcode uint16) string {
	return fmt.Sprintf("V%X", (opcode&0x0F00)>>8)
}

func vxByteOperands(opcode uint16) string {
	return fmt.Sprintf("V%X, $%02X", (opcode&0x0F00)>>8, opcode&0x00FF)
}

func vxVyOperands(opcode uint16) string {
	return fmt.Sprintf("V%X, V%X", (opcode&0x0F00)>>8, (opcode&0x00F0)>>4)
}

func indexAddrOperands(opcode uint16) string {
	return "I, " + addrOperand(opcode)
}

func v0AddrOperands(opcode uint16) string {
	return "V0, " + addrOperand(opcode)
}

func drawOperands(opcode uint16) string {
	return fmt.Sprintf("V%X, V%X, %d", (opcode&0x0F00)>>8, (opcode&0x00F0)>>4, opcode&0x000F)
}

// vxWith formats the x register into one of the fixed Fx.. operand layouts.
func vxWith(layout string) func(uint16) string {
	return func(opcode uint16) string {
		return fmt.Sprintf(layout, (opcode&0x0F00)>>8)
	}
}
