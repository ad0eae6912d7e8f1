package ppu

func (p *PPU) renderPixel() {
	x, y := p.dot-1, p.scanline

	var color byte
	if p.renderingEnabled() {
		bg := p.backgroundPixel()
		i, sprite := p.spritePixel()
		if x < 8 && p.mask&maskLeftBG == 0 {
			bg = 0
		}
		if x < 8 && p.mask&maskLeftSprites == 0 {
			sprite = 0
		}
		b := bg%4 != 0
		s := sprite%4 != 0
		switch {
		case !b && !s:
			color = 0
		case !b && s:
			color = sprite | 0x10
		case b && !s:
			color = bg
		default:
			if p.spriteIndexes[i] == 0 && x < 255 {
				p.status |= statusSpriteZero
			}
			if p.spriteBehind[i] {
				color = bg
			} else {
				color = sprite | 0x10
			}
		}
	} else if p.v&0x3F00 == 0x3F00 {
		// Rendering off with v inside palette RAM shows that entry instead of the backdrop.
		color = byte(p.v & 0x1F)
	}

	idx := p.readPalette(uint16(color))
	if p.mask&maskGreyscale != 0 {
		idx &= 0x30
	}
	rgb := Palette[idx]
	o := (y*Width + x) * 4
	p.back[o+0] = byte(rgb >> 16)
	p.back[o+1] = byte(rgb >> 8)
	p.back[o+2] = byte(rgb)
	p.back[o+3] = 0xFF
}

func (p *PPU) backgroundPixel() byte {
	if p.mask&maskShowBG == 0 {
		return 0
	}
	data := uint32(p.tileData>>32) >> ((7 - p.x) * 4)
	return byte(data & 0x0F)
}

// spritePixel returns the slot and 4-bit colour of the first opaque sprite
// covering the current dot.
func (p *PPU) spritePixel() (int, byte) {
	if p.mask&maskShowSprites == 0 {
		return 0, 0
	}
	for i := 0; i < p.spriteCount; i++ {
		offset := p.dot - 1 - int(p.spriteX[i])
		if offset < 0 || offset > 7 {
			continue
		}
		color := byte(p.spritePatterns[i]>>((7-offset)*4)) & 0x0F
		if color%4 == 0 {
			continue
		}
		return i, color
	}
	return 0, 0
}

func (p *PPU) spriteHeight() int {
	if p.ctrl&ctrlSpriteSize16 != 0 {
		return 16
	}
	return 8
}

// evaluateSprites picks the first eight sprites in range of the current
// line. A ninth one sets the overflow flag.
func (p *PPU) evaluateSprites() {
	h := p.spriteHeight()
	count := 0
	for i := 0; i < 64; i++ {
		y := p.oam[i*4+0]
		a := p.oam[i*4+2]
		x := p.oam[i*4+3]
		row := p.scanline - int(y)
		if row < 0 || row >= h {
			continue
		}
		if count == 8 {
			p.status |= statusOverflow
			break
		}
		p.spritePatterns[count] = p.fetchSpritePattern(i, row)
		p.spriteX[count] = x
		p.spriteBehind[count] = a&0x20 != 0
		p.spriteIndexes[count] = byte(i)
		count++
	}
	p.spriteCount = count
}

// fetchSpritePattern packs one row of sprite i into eight 4-bit pixels
// (palette bits 2-3, pattern bits 0-1), leftmost pixel in the high nibble.
func (p *PPU) fetchSpritePattern(i, row int) uint32 {
	tile := p.oam[i*4+1]
	attr := p.oam[i*4+2]

	var addr uint16
	if p.spriteHeight() == 8 {
		if attr&0x80 != 0 {
			row = 7 - row
		}
		table := uint16(0)
		if p.ctrl&ctrlSpriteTable != 0 {
			table = 0x1000
		}
		addr = table + uint16(tile)*16 + uint16(row)
	} else {
		if attr&0x80 != 0 {
			row = 15 - row
		}
		table := uint16(tile&1) * 0x1000
		tile &= 0xFE
		if row > 7 {
			tile++
			row -= 8
		}
		addr = table + uint16(tile)*16 + uint16(row)
	}

	lo := p.read(addr)
	hi := p.read(addr + 8)
	pal := (attr & 3) << 2

	var data uint32
	for n := 0; n < 8; n++ {
		var p1, p2 byte
		if attr&0x40 != 0 {
			p1 = lo & 1
			p2 = (hi & 1) << 1
			lo >>= 1
			hi >>= 1
		} else {
			p1 = (lo & 0x80) >> 7
			p2 = (hi & 0x80) >> 6
			lo <<= 1
			hi <<= 1
		}
		data = data<<4 | uint32(pal|p1|p2)
	}
	return data
}

func (p *PPU) bgTable() uint16 {
	if p.ctrl&ctrlBGTable != 0 {
		return 0x1000
	}
	return 0
}

func (p *PPU) fetchNametableByte() {
	p.ntByte = p.read(0x2000 | p.v&0x0FFF)
}

func (p *PPU) fetchAttributeByte() {
	v := p.v
	addr := 0x23C0 | v&0x0C00 | (v>>4)&0x38 | (v>>2)&0x07
	shift := (v>>4)&4 | v&2
	p.atByte = ((p.read(addr) >> shift) & 3) << 2
}

func (p *PPU) fetchLowTileByte() {
	fineY := (p.v >> 12) & 7
	p.loByte = p.read(p.bgTable() + uint16(p.ntByte)*16 + fineY)
}

func (p *PPU) fetchHighTileByte() {
	fineY := (p.v >> 12) & 7
	p.hiByte = p.read(p.bgTable() + uint16(p.ntByte)*16 + fineY + 8)
}

func (p *PPU) storeTileData() {
	var data uint32
	for n := 0; n < 8; n++ {
		p1 := (p.loByte & 0x80) >> 7
		p2 := (p.hiByte & 0x80) >> 6
		p.loByte <<= 1
		p.hiByte <<= 1
		data = data<<4 | uint32(p.atByte|p1|p2)
	}
	p.tileData |= uint64(data)
}

// incrementX moves v to the next tile, wrapping into the neighbouring nametable.
func (p *PPU) incrementX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

// incrementY moves v down one pixel row. Coarse Y wraps at 29 into the
// other nametable; 30 and 31 wrap without switching.
func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = p.v&^0x03E0 | y<<5
}

func (p *PPU) copyX() {
	p.v = p.v&0xFBE0 | p.t&0x041F
}

func (p *PPU) copyY() {
	p.v = p.v&0x841F | p.t&0x7BE0
}
