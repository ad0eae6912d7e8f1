// Package cpu implements the 2A03's 6502 core. Decimal mode is wired off on
// this chip, so ADC and SBC are always binary.
package cpu

import (
	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/bus"
)

// Status flags in P.
const (
	FlagC byte = 1 << iota // carry
	FlagZ                  // zero
	FlagI                  // interrupt disable
	FlagD                  // decimal, stored but ignored
	FlagB                  // break, only exists on the stack
	FlagU                  // unused, always pushed as 1
	FlagV                  // overflow
	FlagN                  // negative
)

const (
	vectorNMI   = 0xFFFA
	vectorReset = 0xFFFC
	vectorIRQ   = 0xFFFE

	stackBase = 0x0100

	nmiCycles   = 7
	resetCycles = 7
)

type CPU struct {
	A, X, Y byte
	P       byte
	SP      byte
	PC      uint16

	// Cycles counts every cycle since power-on, DMA stalls included.
	Cycles uint64

	bus *bus.Bus
}

func New(b *bus.Bus) *CPU {
	return &CPU{bus: b, SP: 0xFD, P: FlagI | FlagU}
}

// Bus exposes the underlying bus for tests/tools.
func (c *CPU) Bus() *bus.Bus { return c.bus }

// SetPC allows tests and the CPU-only runner to start somewhere other than the reset vector.
func (c *CPU) SetPC(pc uint16) { c.PC = pc }

// Reset loads the power-on register state and jumps through the reset vector.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.P = FlagI | FlagU
	c.PC = c.bus.Read16(vectorReset)
	c.Cycles = resetCycles
}

// NMI pushes PC and P and jumps through the NMI vector. It returns the
// cycles the sequence takes.
func (c *CPU) NMI() int {
	c.push16(c.PC)
	c.push(c.P&^FlagB | FlagU)
	c.P |= FlagI
	c.PC = c.bus.Read16(vectorNMI)
	c.Cycles += nmiCycles
	return nmiCycles
}

// Step executes one instruction and returns the cycles it used, including
// page-cross and branch penalties and any OAM DMA stall it triggered.
func (c *CPU) Step() int {
	opcode := c.bus.Read(c.PC)
	in := instructions[opcode]

	addr, crossed := c.operandAddress(in.mode)
	c.PC += in.mode.size()

	cycles := int(in.cycles)
	if crossed && in.page {
		cycles++
	}
	cycles += c.execute(in, addr)

	if stall := c.bus.TakeDMAStall(); stall > 0 {
		if (c.Cycles+uint64(cycles))%2 == 1 {
			stall++
		}
		cycles += stall
	}
	c.Cycles += uint64(cycles)
	return cycles
}

func pagesDiffer(a, b uint16) bool { return a&0xFF00 != b&0xFF00 }

// operandAddress resolves the effective address for the instruction at PC.
// Immediate operands resolve to PC+1 so every operand is read through the bus.
func (c *CPU) operandAddress(m mode) (addr uint16, crossed bool) {
	operand := c.PC + 1
	switch m {
	case modeImmediate:
		return operand, false
	case modeZeroPage:
		return uint16(c.bus.Read(operand)), false
	case modeZeroPageX:
		return uint16(c.bus.Read(operand) + c.X), false
	case modeZeroPageY:
		return uint16(c.bus.Read(operand) + c.Y), false
	case modeAbsolute:
		return c.bus.Read16(operand), false
	case modeAbsoluteX:
		base := c.bus.Read16(operand)
		addr = base + uint16(c.X)
		return addr, pagesDiffer(base, addr)
	case modeAbsoluteY:
		base := c.bus.Read16(operand)
		addr = base + uint16(c.Y)
		return addr, pagesDiffer(base, addr)
	case modeIndirect:
		return c.read16Bug(c.bus.Read16(operand)), false
	case modeIndexedIndirect:
		return c.read16ZeroPage(c.bus.Read(operand) + c.X), false
	case modeIndirectIndexed:
		base := c.read16ZeroPage(c.bus.Read(operand))
		addr = base + uint16(c.Y)
		return addr, pagesDiffer(base, addr)
	case modeRelative:
		offset := int8(c.bus.Read(operand))
		return c.PC + 2 + uint16(offset), false
	}
	return 0, false
}

// read16Bug reproduces JMP ($xxFF): the high byte comes from $xx00.
func (c *CPU) read16Bug(addr uint16) uint16 {
	lo := uint16(c.bus.Read(addr))
	hi := uint16(c.bus.Read(addr&0xFF00 | uint16(byte(addr)+1)))
	return hi<<8 | lo
}

// read16ZeroPage reads a pointer that wraps inside page zero.
func (c *CPU) read16ZeroPage(zp byte) uint16 {
	lo := uint16(c.bus.Read(uint16(zp)))
	hi := uint16(c.bus.Read(uint16(zp + 1)))
	return hi<<8 | lo
}

func (c *CPU) push(v byte) {
	c.bus.Write(stackBase|uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pull() byte {
	c.SP++
	return c.bus.Read(stackBase | uint16(c.SP))
}

func (c *CPU) push16(v uint16) {
	c.push(byte(v >> 8))
	c.push(byte(v))
}

func (c *CPU) pull16() uint16 {
	lo := uint16(c.pull())
	hi := uint16(c.pull())
	return hi<<8 | lo
}

func (c *CPU) flag(f byte) bool { return c.P&f != 0 }

func (c *CPU) setFlag(f byte, on bool) {
	if on {
		c.P |= f
	} else {
		c.P &^= f
	}
}

func (c *CPU) setZN(v byte) {
	c.setFlag(FlagZ, v == 0)
	c.setFlag(FlagN, v&0x80 != 0)
}
