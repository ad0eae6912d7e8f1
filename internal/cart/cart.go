package cart

import (
	"bytes"
	"fmt"
)

// Cartridge is what the CPU bus and the PPU see of a loaded game.
// CPU addresses are the full 0x4020–0xFFFF window, PPU addresses are the
// pattern table range 0x0000–0x1FFF. Bank registers stay private to each board.
type Cartridge interface {
	CPURead(addr uint16) byte
	CPUWrite(addr uint16, value byte)
	PPURead(addr uint16) byte
	PPUWrite(addr uint16, value byte)
	// Mirroring is the current nametable arrangement. Boards like MMC1 change it at runtime.
	Mirroring() Mirroring
	Header() *Header
}

// Load validates rom and builds the board selected by its mapper number.
func Load(rom []byte) (Cartridge, error) {
	h, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}
	if len(rom) < h.ImageSize() {
		return nil, fmt.Errorf("%w: have %d bytes, header declares %d", ErrTruncated, len(rom), h.ImageSize())
	}
	b := newBoard(h, rom)
	switch h.Mapper {
	case 0:
		return newNROM(b), nil
	case 1:
		return newMMC1(b), nil
	case 2:
		return newUxROM(b), nil
	case 3:
		return newCNROM(b), nil
	default:
		return nil, fmt.Errorf("%w: %d (%s)", ErrUnsupportedMapper, h.Mapper, MapperName(h.Mapper))
	}
}

// board holds the memory every mapper shares: PRG ROM, CHR ROM or RAM,
// and the 8 KiB work RAM at 0x6000–0x7FFF.
type board struct {
	header *Header
	prg    []byte
	chr    []byte
	chrRAM bool
	prgRAM []byte
	mirror Mirroring
}

func newBoard(h *Header, rom []byte) *board {
	b := &board{header: h, mirror: h.Mirroring, prgRAM: make([]byte, prgRAMSize)}
	off := headerSize
	if h.Trainer {
		copy(b.prgRAM[0x1000:], rom[off:off+trainerSize])
		off += trainerSize
	}
	// The cartridge owns its ROM; the caller may reuse rom after Load.
	b.prg = bytes.Clone(rom[off : off+h.PRGBanks*prgBankSize])
	off += h.PRGBanks * prgBankSize
	if h.CHRBanks == 0 {
		b.chr = make([]byte, chrBankSize)
		b.chrRAM = true
	} else {
		b.chr = bytes.Clone(rom[off : off+h.CHRBanks*chrBankSize])
	}
	return b
}

func (b *board) Header() *Header      { return b.header }
func (b *board) Mirroring() Mirroring { return b.mirror }

// prgAt reads PRG ROM at an absolute offset; offsets past the end wrap,
// which is also how a 16 KiB image appears twice in the 32 KiB window.
func (b *board) prgAt(off int) byte {
	return b.prg[off%len(b.prg)]
}

func (b *board) chrAt(off int) byte {
	return b.chr[off%len(b.chr)]
}

func (b *board) setCHR(off int, value byte) {
	if b.chrRAM {
		b.chr[off%len(b.chr)] = value
	}
}

func (b *board) prgBanks() int { return len(b.prg) / prgBankSize }
func (b *board) chrBanks() int { return len(b.chr) / chrBankSize }

// readRAM serves 0x6000–0x7FFF. Everything between the APU window and
// work RAM is open bus and reads as zero.
func (b *board) readRAM(addr uint16) byte {
	if addr >= 0x6000 && addr < 0x8000 {
		return b.prgRAM[addr-0x6000]
	}
	return 0
}

func (b *board) writeRAM(addr uint16, value byte) {
	if addr >= 0x6000 && addr < 0x8000 {
		b.prgRAM[addr-0x6000] = value
	}
}
