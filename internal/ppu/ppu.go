package ppu

import (
	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/cart"
)

const (
	Width  = 256
	Height = 240

	DotsPerLine    = 341
	LinesPerFrame  = 262
	DotsPerFrame   = DotsPerLine * LinesPerFrame
	vblankLine     = 241
	preRenderLine  = 261
	lastVisibleDot = 256
)

// Status is what a single Step reports back to the caller.
type Status uint8

const (
	// StatusNMI means the CPU's NMI line was pulled this step.
	StatusNMI Status = 1 << iota
	// StatusFrameReady means a complete picture was just published to the front buffer.
	StatusFrameReady
)

// PPUCTRL bits
const (
	ctrlIncrement32  byte = 1 << 2
	ctrlSpriteTable  byte = 1 << 3
	ctrlBGTable      byte = 1 << 4
	ctrlSpriteSize16 byte = 1 << 5
	ctrlNMI          byte = 1 << 7
)

// PPUMASK bits
const (
	maskGreyscale   byte = 1 << 0
	maskLeftBG      byte = 1 << 1
	maskLeftSprites byte = 1 << 2
	maskShowBG      byte = 1 << 3
	maskShowSprites byte = 1 << 4
)

// PPUSTATUS bits
const (
	statusOverflow   byte = 1 << 5
	statusSpriteZero byte = 1 << 6
	statusVBlank     byte = 1 << 7
)

// PPU models the 2C02: its register file, nametable/palette/OAM memory and
// the dot-by-dot rendering pipeline. It draws into a back buffer and only
// copies to the front buffer once the last dot of a frame has run.
type PPU struct {
	cart cart.Cartridge

	nametables [0x1000]byte // 2 KiB used unless the board is four-screen
	palette    [32]byte
	oam        [256]byte

	ctrl    byte
	mask    byte
	status  byte
	oamAddr byte
	latch   byte // last value written to any register, seen in open-bus reads

	v      uint16 // current VRAM address (15 bits)
	t      uint16 // temporary VRAM address (15 bits)
	x      byte   // fine X scroll (3 bits)
	w      bool   // write toggle shared by $2005/$2006
	buffer byte   // $2007 read-ahead

	scanline int
	dot      int
	frame    uint64
	odd      bool

	nmiPending bool

	// background pipeline
	ntByte   byte
	atByte   byte
	loByte   byte
	hiByte   byte
	tileData uint64

	// sprites for the current line
	spriteCount    int
	spritePatterns [8]uint32
	spriteX        [8]byte
	spriteBehind   [8]bool
	spriteIndexes  [8]byte

	back  []byte
	front []byte
}

func New(c cart.Cartridge) *PPU {
	p := &PPU{
		cart:  c,
		back:  make([]byte, Width*Height*4),
		front: make([]byte, Width*Height*4),
	}
	p.Reset()
	return p
}

// Reset puts the PPU at the top of a fresh frame with rendering off.
// Memory contents survive, as on hardware.
func (p *PPU) Reset() {
	p.ctrl, p.mask, p.status, p.oamAddr = 0, 0, 0, 0
	p.v, p.t, p.x, p.w = 0, 0, 0, false
	p.buffer = 0
	p.scanline, p.dot = 0, 0
	p.frame = 0
	p.odd = false
	p.nmiPending = false
	p.spriteCount = 0
}

func (p *PPU) renderingEnabled() bool {
	return p.mask&(maskShowBG|maskShowSprites) != 0
}

// Step runs the current dot and advances to the next one.
func (p *PPU) Step() Status {
	var st Status

	rendering := p.renderingEnabled()
	visibleLine := p.scanline < Height
	preLine := p.scanline == preRenderLine
	renderLine := visibleLine || preLine
	visibleDot := p.dot >= 1 && p.dot <= lastVisibleDot
	prefetchDot := p.dot >= 321 && p.dot <= 336
	fetchDot := visibleDot || prefetchDot

	if visibleLine && visibleDot {
		p.renderPixel()
	}

	if rendering {
		if renderLine && fetchDot {
			p.tileData <<= 4
			switch p.dot % 8 {
			case 1:
				p.fetchNametableByte()
			case 3:
				p.fetchAttributeByte()
			case 5:
				p.fetchLowTileByte()
			case 7:
				p.fetchHighTileByte()
			case 0:
				p.storeTileData()
				p.incrementX()
			}
		}
		if renderLine {
			switch {
			case p.dot == 256:
				p.incrementY()
			case p.dot == 257:
				p.copyX()
				if visibleLine {
					p.evaluateSprites()
				} else {
					p.spriteCount = 0
				}
			case preLine && p.dot >= 280 && p.dot <= 304:
				p.copyY()
			}
		}
	}

	if p.scanline == vblankLine && p.dot == 1 {
		p.status |= statusVBlank
		if p.ctrl&ctrlNMI != 0 {
			p.nmiPending = true
		}
	}
	if preLine && p.dot == 1 {
		p.status &^= statusVBlank | statusSpriteZero | statusOverflow
	}

	// Odd frames drop the last dot of the pre-render line while rendering.
	if preLine && p.dot == 339 && p.odd && rendering {
		p.dot++
	}
	p.dot++
	if p.dot >= DotsPerLine {
		p.dot = 0
		p.scanline++
		if p.scanline >= LinesPerFrame {
			p.scanline = 0
			p.frame++
			p.odd = !p.odd
			copy(p.front, p.back)
			clear(p.back)
			st |= StatusFrameReady
		}
	}

	if p.nmiPending {
		p.nmiPending = false
		st |= StatusNMI
	}
	return st
}

// Frame returns the last completed picture as packed RGBA, Width*Height*4 bytes.
// The slice is overwritten when the next frame completes.
func (p *PPU) Frame() []byte { return p.front }

// Position reports the scanline and dot the next Step will run.
func (p *PPU) Position() (scanline, dot int) { return p.scanline, p.dot }

// FrameCount is the number of completed frames since Reset.
func (p *PPU) FrameCount() uint64 { return p.frame }

// RawOAM exposes sprite memory for debugging tools.
func (p *PPU) RawOAM(i byte) byte { return p.oam[i] }
