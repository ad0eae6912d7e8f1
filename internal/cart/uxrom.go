package cart

// UxROM (mapper 2) switches a 16 KiB bank at 0x8000 and keeps the last
// bank fixed at 0xC000. CHR is almost always 8 KiB of RAM.
type UxROM struct {
	*board
	bank int
}

func newUxROM(b *board) *UxROM {
	return &UxROM{board: b}
}

func (c *UxROM) CPURead(addr uint16) byte {
	switch {
	case addr >= 0xC000:
		return c.prgAt((c.prgBanks()-1)*prgBankSize + int(addr-0xC000))
	case addr >= 0x8000:
		return c.prgAt(c.bank*prgBankSize + int(addr-0x8000))
	}
	return c.readRAM(addr)
}

func (c *UxROM) CPUWrite(addr uint16, value byte) {
	if addr >= 0x8000 {
		c.bank = int(value&0x0F) % c.prgBanks()
		return
	}
	c.writeRAM(addr, value)
}

func (c *UxROM) PPURead(addr uint16) byte          { return c.chrAt(int(addr & 0x1FFF)) }
func (c *UxROM) PPUWrite(addr uint16, value byte) { c.setCHR(int(addr&0x1FFF), value) }
