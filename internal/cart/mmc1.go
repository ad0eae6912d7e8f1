package cart

// MMC1 (mapper 1) is loaded one bit at a time through a 5-bit shift
// register. The fifth write commits the value to one of four internal
// registers selected by address bits 13-14.
type MMC1 struct {
	*board

	shift   byte
	control byte // mirroring (bits 0-1), PRG mode (2-3), CHR mode (4)
	chr0    byte
	chr1    byte
	prgBank byte

	prgOffsets [2]int // 16 KiB windows at 0x8000 and 0xC000
	chrOffsets [2]int // 4 KiB windows at 0x0000 and 0x1000
}

func newMMC1(b *board) *MMC1 {
	m := &MMC1{board: b, shift: 0x10, control: 0x0C}
	m.updateOffsets()
	return m
}

func (m *MMC1) CPURead(addr uint16) byte {
	switch {
	case addr >= 0xC000:
		return m.prgAt(m.prgOffsets[1] + int(addr-0xC000))
	case addr >= 0x8000:
		return m.prgAt(m.prgOffsets[0] + int(addr-0x8000))
	}
	return m.readRAM(addr)
}

func (m *MMC1) CPUWrite(addr uint16, value byte) {
	if addr < 0x8000 {
		m.writeRAM(addr, value)
		return
	}
	if value&0x80 != 0 {
		m.shift = 0x10
		m.control |= 0x0C
		m.updateOffsets()
		return
	}
	full := m.shift&1 == 1
	m.shift = m.shift>>1 | (value&1)<<4
	if !full {
		return
	}
	switch {
	case addr < 0xA000:
		m.control = m.shift
		m.mirror = [4]Mirroring{MirrorSingleLower, MirrorSingleUpper, MirrorVertical, MirrorHorizontal}[m.control&3]
	case addr < 0xC000:
		m.chr0 = m.shift
	case addr < 0xE000:
		m.chr1 = m.shift
	default:
		m.prgBank = m.shift & 0x0F
	}
	m.shift = 0x10
	m.updateOffsets()
}

func (m *MMC1) PPURead(addr uint16) byte {
	return m.chrAt(m.chrOffset(addr))
}

func (m *MMC1) PPUWrite(addr uint16, value byte) {
	m.setCHR(m.chrOffset(addr), value)
}

func (m *MMC1) chrOffset(addr uint16) int {
	a := int(addr & 0x1FFF)
	return m.chrOffsets[a/0x1000] + a%0x1000
}

func (m *MMC1) updateOffsets() {
	last := m.prgBanks() - 1
	bank := int(m.prgBank)
	switch (m.control >> 2) & 3 {
	case 0, 1:
		m.prgOffsets[0] = (bank &^ 1) * prgBankSize
		m.prgOffsets[1] = (bank | 1) * prgBankSize
	case 2:
		m.prgOffsets[0] = 0
		m.prgOffsets[1] = bank * prgBankSize
	case 3:
		m.prgOffsets[0] = bank * prgBankSize
		m.prgOffsets[1] = last * prgBankSize
	}

	if m.control&0x10 == 0 {
		m.chrOffsets[0] = int(m.chr0&^1) * 0x1000
		m.chrOffsets[1] = int(m.chr0|1) * 0x1000
	} else {
		m.chrOffsets[0] = int(m.chr0) * 0x1000
		m.chrOffsets[1] = int(m.chr1) * 0x1000
	}
}
