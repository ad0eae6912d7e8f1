package cpu

import (
	"fmt"
	"strings"
)

// Disassemble formats the instruction at pc and returns it with its length.
// Operands are read with Peek so tracing never disturbs I/O registers.
func (c *CPU) Disassemble(pc uint16) (string, int) {
	in := instructions[c.bus.Peek(pc)]
	lo := c.bus.Peek(pc + 1)
	word := uint16(c.bus.Peek(pc+2))<<8 | uint16(lo)

	name := in.op.String()
	if in.unofficial {
		name = "*" + name
	}

	var operand string
	switch in.mode {
	case modeAccumulator:
		operand = "A"
	case modeImmediate:
		operand = fmt.Sprintf("#$%02X", lo)
	case modeZeroPage:
		operand = fmt.Sprintf("$%02X", lo)
	case modeZeroPageX:
		operand = fmt.Sprintf("$%02X,X", lo)
	case modeZeroPageY:
		operand = fmt.Sprintf("$%02X,Y", lo)
	case modeAbsolute:
		operand = fmt.Sprintf("$%04X", word)
	case modeAbsoluteX:
		operand = fmt.Sprintf("$%04X,X", word)
	case modeAbsoluteY:
		operand = fmt.Sprintf("$%04X,Y", word)
	case modeIndirect:
		operand = fmt.Sprintf("($%04X)", word)
	case modeIndexedIndirect:
		operand = fmt.Sprintf("($%02X,X)", lo)
	case modeIndirectIndexed:
		operand = fmt.Sprintf("($%02X),Y", lo)
	case modeRelative:
		operand = fmt.Sprintf("$%04X", pc+2+uint16(int8(lo)))
	}
	if operand == "" {
		return name, int(in.mode.size())
	}
	return name + " " + operand, int(in.mode.size())
}

// Trace renders the next instruction and the register file in the layout
// of the nestest reference log, minus the PPU column.
func (c *CPU) Trace() string {
	text, n := c.Disassemble(c.PC)
	raw := make([]string, n)
	for i := range raw {
		raw[i] = fmt.Sprintf("%02X", c.bus.Peek(c.PC+uint16(i)))
	}
	// Unofficial mnemonics carry a '*' that eats the separator column.
	pad := " "
	if strings.HasPrefix(text, "*") {
		pad = ""
	}
	return fmt.Sprintf("%04X  %-8s %s%-31s A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		c.PC, strings.Join(raw, " "), pad, text, c.A, c.X, c.Y, c.P, c.SP, c.Cycles)
}
