package cpu

// execute performs the operation of in on the effective address addr and
// returns any cycles beyond the table cost (taken branches only).
func (c *CPU) execute(in instruction, addr uint16) int {
	b := c.bus
	switch in.op {
	// loads and stores
	case opLDA:
		c.A = b.Read(addr)
		c.setZN(c.A)
	case opLDX:
		c.X = b.Read(addr)
		c.setZN(c.X)
	case opLDY:
		c.Y = b.Read(addr)
		c.setZN(c.Y)
	case opSTA:
		b.Write(addr, c.A)
	case opSTX:
		b.Write(addr, c.X)
	case opSTY:
		b.Write(addr, c.Y)

	// transfers
	case opTAX:
		c.X = c.A
		c.setZN(c.X)
	case opTAY:
		c.Y = c.A
		c.setZN(c.Y)
	case opTXA:
		c.A = c.X
		c.setZN(c.A)
	case opTYA:
		c.A = c.Y
		c.setZN(c.A)
	case opTSX:
		c.X = c.SP
		c.setZN(c.X)
	case opTXS:
		c.SP = c.X

	// stack
	case opPHA:
		c.push(c.A)
	case opPHP:
		c.push(c.P | FlagB | FlagU)
	case opPLA:
		c.A = c.pull()
		c.setZN(c.A)
	case opPLP:
		c.P = c.pull()&^FlagB | FlagU

	// arithmetic and logic
	case opADC:
		c.adc(b.Read(addr))
	case opSBC:
		c.adc(^b.Read(addr))
	case opAND:
		c.A &= b.Read(addr)
		c.setZN(c.A)
	case opORA:
		c.A |= b.Read(addr)
		c.setZN(c.A)
	case opEOR:
		c.A ^= b.Read(addr)
		c.setZN(c.A)
	case opCMP:
		c.compare(c.A, b.Read(addr))
	case opCPX:
		c.compare(c.X, b.Read(addr))
	case opCPY:
		c.compare(c.Y, b.Read(addr))
	case opBIT:
		v := b.Read(addr)
		c.setFlag(FlagZ, c.A&v == 0)
		c.setFlag(FlagV, v&0x40 != 0)
		c.setFlag(FlagN, v&0x80 != 0)

	// increments
	case opINC:
		v := b.Read(addr) + 1
		b.Write(addr, v)
		c.setZN(v)
	case opDEC:
		v := b.Read(addr) - 1
		b.Write(addr, v)
		c.setZN(v)
	case opINX:
		c.X++
		c.setZN(c.X)
	case opINY:
		c.Y++
		c.setZN(c.Y)
	case opDEX:
		c.X--
		c.setZN(c.X)
	case opDEY:
		c.Y--
		c.setZN(c.Y)

	// shifts
	case opASL:
		c.modify(in.mode, addr, c.asl)
	case opLSR:
		c.modify(in.mode, addr, c.lsr)
	case opROL:
		c.modify(in.mode, addr, c.rol)
	case opROR:
		c.modify(in.mode, addr, c.ror)

	// jumps and returns
	case opJMP:
		c.PC = addr
	case opJSR:
		c.push16(c.PC - 1)
		c.PC = addr
	case opRTS:
		c.PC = c.pull16() + 1
	case opRTI:
		c.P = c.pull()&^FlagB | FlagU
		c.PC = c.pull16()
	case opBRK:
		c.push16(c.PC + 1)
		c.push(c.P | FlagB | FlagU)
		c.P |= FlagI
		c.PC = b.Read16(vectorIRQ)

	// branches
	case opBCC:
		return c.branch(!c.flag(FlagC), addr)
	case opBCS:
		return c.branch(c.flag(FlagC), addr)
	case opBNE:
		return c.branch(!c.flag(FlagZ), addr)
	case opBEQ:
		return c.branch(c.flag(FlagZ), addr)
	case opBPL:
		return c.branch(!c.flag(FlagN), addr)
	case opBMI:
		return c.branch(c.flag(FlagN), addr)
	case opBVC:
		return c.branch(!c.flag(FlagV), addr)
	case opBVS:
		return c.branch(c.flag(FlagV), addr)

	// flags
	case opCLC:
		c.P &^= FlagC
	case opSEC:
		c.P |= FlagC
	case opCLI:
		c.P &^= FlagI
	case opSEI:
		c.P |= FlagI
	case opCLD:
		c.P &^= FlagD
	case opSED:
		c.P |= FlagD
	case opCLV:
		c.P &^= FlagV

	// stable unofficial opcodes
	case opLAX:
		c.A = b.Read(addr)
		c.X = c.A
		c.setZN(c.A)
	case opSAX:
		b.Write(addr, c.A&c.X)
	case opDCP:
		v := b.Read(addr) - 1
		b.Write(addr, v)
		c.compare(c.A, v)
	case opISB:
		v := b.Read(addr) + 1
		b.Write(addr, v)
		c.adc(^v)
	case opSLO:
		v := c.asl(b.Read(addr))
		b.Write(addr, v)
		c.A |= v
		c.setZN(c.A)
	case opRLA:
		v := c.rol(b.Read(addr))
		b.Write(addr, v)
		c.A &= v
		c.setZN(c.A)
	case opSRE:
		v := c.lsr(b.Read(addr))
		b.Write(addr, v)
		c.A ^= v
		c.setZN(c.A)
	case opRRA:
		v := c.ror(b.Read(addr))
		b.Write(addr, v)
		c.adc(v)
	case opANC:
		c.A &= b.Read(addr)
		c.setZN(c.A)
		c.setFlag(FlagC, c.A&0x80 != 0)
	case opALR:
		c.A = c.lsr(c.A & b.Read(addr))
	case opARR:
		v := c.A & b.Read(addr)
		c.A = v >> 1
		if c.flag(FlagC) {
			c.A |= 0x80
		}
		c.setZN(c.A)
		c.setFlag(FlagC, c.A&0x40 != 0)
		c.setFlag(FlagV, (c.A>>6^c.A>>5)&1 != 0)
	case opAXS:
		ax := c.A & c.X
		v := b.Read(addr)
		c.setFlag(FlagC, ax >= v)
		c.X = ax - v
		c.setZN(c.X)

	case opNOP, opJAM, opXAA, opLXA, opSHA, opTAS, opSHY, opSHX, opLAS:
		// no effect; length and cost come from the table
	}
	return 0
}

func (c *CPU) adc(v byte) {
	carry := uint16(0)
	if c.flag(FlagC) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(v) + carry
	r := byte(sum)
	c.setFlag(FlagC, sum > 0xFF)
	c.setFlag(FlagV, (c.A^r)&(v^r)&0x80 != 0)
	c.A = r
	c.setZN(r)
}

func (c *CPU) compare(reg, v byte) {
	c.setZN(reg - v)
	c.setFlag(FlagC, reg >= v)
}

// branch jumps to target when cond holds: one extra cycle, two when the
// target is on another page.
func (c *CPU) branch(cond bool, target uint16) int {
	if !cond {
		return 0
	}
	extra := 1
	if pagesDiffer(c.PC, target) {
		extra++
	}
	c.PC = target
	return extra
}

// modify applies a read-modify-write shift to A or to memory.
func (c *CPU) modify(m mode, addr uint16, f func(byte) byte) {
	if m == modeAccumulator {
		c.A = f(c.A)
		return
	}
	c.bus.Write(addr, f(c.bus.Read(addr)))
}

func (c *CPU) asl(v byte) byte {
	c.setFlag(FlagC, v&0x80 != 0)
	v <<= 1
	c.setZN(v)
	return v
}

func (c *CPU) lsr(v byte) byte {
	c.setFlag(FlagC, v&1 != 0)
	v >>= 1
	c.setZN(v)
	return v
}

func (c *CPU) rol(v byte) byte {
	in := c.P & FlagC
	c.setFlag(FlagC, v&0x80 != 0)
	v = v<<1 | in
	c.setZN(v)
	return v
}

func (c *CPU) ror(v byte) byte {
	in := (c.P & FlagC) << 7
	c.setFlag(FlagC, v&1 != 0)
	v = v>>1 | in
	c.setZN(v)
	return v
}
