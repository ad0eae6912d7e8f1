package cart

// CNROM (mapper 3) has fixed PRG like NROM and a switchable 8 KiB CHR bank.
type CNROM struct {
	*board
	chrBank int
}

func newCNROM(b *board) *CNROM {
	return &CNROM{board: b}
}

func (c *CNROM) CPURead(addr uint16) byte {
	if addr >= 0x8000 {
		return c.prgAt(int(addr - 0x8000))
	}
	return c.readRAM(addr)
}

func (c *CNROM) CPUWrite(addr uint16, value byte) {
	if addr >= 0x8000 {
		// Bus conflicts: the written value is ANDed with the ROM byte under it.
		value &= c.CPURead(addr)
		c.chrBank = int(value&0x03) % c.chrBanks()
		return
	}
	c.writeRAM(addr, value)
}

func (c *CNROM) PPURead(addr uint16) byte {
	return c.chrAt(c.chrBank*chrBankSize + int(addr&0x1FFF))
}

func (c *CNROM) PPUWrite(addr uint16, value byte) {
	c.setCHR(c.chrBank*chrBankSize+int(addr&0x1FFF), value)
}
