package ppu

import "fmt"

// ReadRegister serves CPU reads of $2000–$3FFF; only the low three address
// bits matter. Write-only registers return the open-bus latch.
func (p *PPU) ReadRegister(addr uint16) byte {
	switch addr & 7 {
	case 2:
		return p.readStatus()
	case 4:
		return p.readOAMData()
	case 7:
		return p.readData()
	}
	return p.latch
}

// WriteRegister serves CPU writes of $2000–$3FFF.
func (p *PPU) WriteRegister(addr uint16, value byte) {
	p.latch = value
	switch addr & 7 {
	case 0:
		p.writeControl(value)
	case 1:
		p.mask = value
	case 3:
		p.oamAddr = value
	case 4:
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 5:
		p.writeScroll(value)
	case 6:
		p.writeAddress(value)
	case 7:
		p.write(p.v, value)
		p.incrementV()
	}
}

// WriteOAMDMA copies a 256-byte CPU page into OAM starting at OAMADDR.
func (p *PPU) WriteOAMDMA(page []byte) {
	for _, b := range page {
		p.oam[p.oamAddr] = b
		p.oamAddr++
	}
}

func (p *PPU) writeControl(value byte) {
	wasEnabled := p.ctrl&ctrlNMI != 0
	p.ctrl = value
	p.t = p.t&0xF3FF | uint16(value&0x03)<<10
	// Enabling NMI while VBlank is already flagged fires one immediately.
	if !wasEnabled && value&ctrlNMI != 0 && p.status&statusVBlank != 0 {
		p.nmiPending = true
	}
}

func (p *PPU) readStatus() byte {
	result := p.status&0xE0 | p.latch&0x1F
	p.status &^= statusVBlank
	p.w = false
	return result
}

func (p *PPU) readOAMData() byte {
	data := p.oam[p.oamAddr]
	if p.oamAddr&0x03 == 0x02 {
		// attribute bytes have no bits 2-4
		data &= 0xE3
	}
	return data
}

func (p *PPU) writeScroll(value byte) {
	if !p.w {
		p.t = p.t&0xFFE0 | uint16(value)>>3
		p.x = value & 0x07
	} else {
		p.t = p.t&0x8FFF | (uint16(value)&0x07)<<12
		p.t = p.t&0xFC1F | (uint16(value)&0xF8)<<2
	}
	p.w = !p.w
}

func (p *PPU) writeAddress(value byte) {
	if !p.w {
		p.t = p.t&0x80FF | uint16(value&0x3F)<<8
	} else {
		p.t = p.t&0xFF00 | uint16(value)
		p.v = p.t
	}
	p.w = !p.w
}

// readData returns the read-ahead buffer and refills it, except for palette
// RAM which answers directly. The buffer then receives the nametable byte
// hidden underneath the palette.
func (p *PPU) readData() byte {
	addr := p.v & 0x3FFF
	value := p.read(addr)
	if addr < 0x3F00 {
		value, p.buffer = p.buffer, value
	} else {
		p.buffer = p.read(addr - 0x1000)
	}
	p.incrementV()
	return value
}

func (p *PPU) incrementV() {
	if p.ctrl&ctrlIncrement32 != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= 0x7FFF
}

// Registers is a snapshot of the PPU's visible and internal registers.
type Registers struct {
	Ctrl, Mask, Status, OAMAddr byte
	V, T                        uint16
	X                           byte
	W                           bool
	Buffer                      byte
	Scanline, Dot               int
	Frame                       uint64
}

// Registers returns a snapshot without touching any read side effects.
func (p *PPU) Registers() Registers {
	return Registers{
		Ctrl:     p.ctrl,
		Mask:     p.mask,
		Status:   p.status,
		OAMAddr:  p.oamAddr,
		V:        p.v,
		T:        p.t,
		X:        p.x,
		W:        p.w,
		Buffer:   p.buffer,
		Scanline: p.scanline,
		Dot:      p.dot,
		Frame:    p.frame,
	}
}

func (r Registers) String() string {
	w := 0
	if r.W {
		w = 1
	}
	return fmt.Sprintf("CTRL:%02X MASK:%02X STATUS:%02X OAMADDR:%02X V:%04X T:%04X X:%d W:%d BUF:%02X LINE:%3d DOT:%3d FRAME:%d",
		r.Ctrl, r.Mask, r.Status, r.OAMAddr, r.V, r.T, r.X, w, r.Buffer, r.Scanline, r.Dot, r.Frame)
}
