package ppu

import "github.com/FabianRolfMatthiasNoll/NESEmulator/internal/cart"

// read serves the PPU's 14-bit address space: pattern tables on the
// cartridge, nametables with cartridge mirroring, then palette RAM.
func (p *PPU) read(addr uint16) byte {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return p.cart.PPURead(addr)
	case addr < 0x3F00:
		return p.nametables[p.nametableIndex(addr)]
	default:
		return p.readPalette(addr)
	}
}

func (p *PPU) write(addr uint16, value byte) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.cart.PPUWrite(addr, value)
	case addr < 0x3F00:
		p.nametables[p.nametableIndex(addr)] = value
	default:
		p.writePalette(addr, value)
	}
}

var mirrorTables = [...][4]int{
	cart.MirrorHorizontal:  {0, 0, 1, 1},
	cart.MirrorVertical:    {0, 1, 0, 1},
	cart.MirrorSingleLower: {0, 0, 0, 0},
	cart.MirrorSingleUpper: {1, 1, 1, 1},
	cart.MirrorFourScreen:  {0, 1, 2, 3},
}

// nametableIndex folds 0x2000–0x3EFF onto physical nametable RAM.
func (p *PPU) nametableIndex(addr uint16) int {
	a := int(addr-0x2000) % 0x1000
	table := mirrorTables[p.cart.Mirroring()][a/0x400]
	return table*0x400 + a%0x400
}

// paletteIndex folds the 0x3F00–0x3FFF window onto 32 bytes. The sprite
// backdrop entries 0x10/0x14/0x18/0x1C are the background ones.
func paletteIndex(addr uint16) uint16 {
	i := addr & 0x1F
	if i >= 0x10 && i%4 == 0 {
		i -= 0x10
	}
	return i
}

func (p *PPU) readPalette(addr uint16) byte {
	return p.palette[paletteIndex(addr)] & 0x3F
}

func (p *PPU) writePalette(addr uint16, value byte) {
	p.palette[paletteIndex(addr)] = value & 0x3F
}
