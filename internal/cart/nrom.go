package cart

// NROM (mapper 0) has no bank switching. A single 16 KiB PRG bank shows up
// at both 0x8000 and 0xC000.
type NROM struct {
	*board
}

func newNROM(b *board) *NROM {
	return &NROM{board: b}
}

func (c *NROM) CPURead(addr uint16) byte {
	if addr >= 0x8000 {
		return c.prgAt(int(addr - 0x8000))
	}
	return c.readRAM(addr)
}

func (c *NROM) CPUWrite(addr uint16, value byte) {
	c.writeRAM(addr, value)
}

func (c *NROM) PPURead(addr uint16) byte          { return c.chrAt(int(addr & 0x1FFF)) }
func (c *NROM) PPUWrite(addr uint16, value byte) { c.setCHR(int(addr&0x1FFF), value) }
