package cart

import (
	"errors"
	"fmt"
)

const (
	headerSize  = 16
	trainerSize = 512
	prgBankSize = 0x4000 // 16 KiB
	chrBankSize = 0x2000 // 8 KiB
	prgRAMSize  = 0x2000
)

var magic = [4]byte{'N', 'E', 'S', 0x1A}

// Load errors. Callers can match them with errors.Is; the returned errors
// carry the offending values.
var (
	ErrBadMagic          = errors.New("not an iNES image")
	ErrTruncated         = errors.New("ROM image truncated")
	ErrNoPRG             = errors.New("ROM declares no PRG banks")
	ErrUnsupportedMapper = errors.New("unsupported mapper")
)

// Mirroring describes how the two physical nametables appear in the
// PPU's four logical nametable slots.
type Mirroring byte

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorFourScreen
	MirrorSingleLower
	MirrorSingleUpper
)

func (m Mirroring) String() string {
	switch m {
	case MirrorHorizontal:
		return "horizontal"
	case MirrorVertical:
		return "vertical"
	case MirrorFourScreen:
		return "four-screen"
	case MirrorSingleLower:
		return "single-lower"
	case MirrorSingleUpper:
		return "single-upper"
	}
	return fmt.Sprintf("Mirroring(%d)", byte(m))
}

type Header struct {
	PRGBanks  int // 16 KiB units
	CHRBanks  int // 8 KiB units, 0 means the board carries CHR RAM
	Flags6    byte
	Flags7    byte
	Mapper    byte
	Mirroring Mirroring
	Battery   bool
	Trainer   bool
	NES2      bool
}

// ParseHeader validates the 16-byte iNES header at the start of rom.
// It does not check that the image is long enough for the banks it declares;
// Load does that.
func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d for the header", ErrTruncated, len(rom), headerSize)
	}
	if [4]byte(rom[0:4]) != magic {
		return nil, fmt.Errorf("%w: magic % X", ErrBadMagic, rom[0:4])
	}

	h := &Header{
		PRGBanks: int(rom[4]),
		CHRBanks: int(rom[5]),
		Flags6:   rom[6],
		Flags7:   rom[7],
	}
	if h.PRGBanks == 0 {
		return nil, ErrNoPRG
	}

	h.NES2 = h.Flags7&0x0C == 0x08
	h.Battery = h.Flags6&0x02 != 0
	h.Trainer = h.Flags6&0x04 != 0
	switch {
	case h.Flags6&0x08 != 0:
		h.Mirroring = MirrorFourScreen
	case h.Flags6&0x01 != 0:
		h.Mirroring = MirrorVertical
	default:
		h.Mirroring = MirrorHorizontal
	}

	// Old dumping tools wrote a signature into bytes 7..15; the high mapper
	// nibble is garbage when the padding is not zero.
	lo := h.Flags6 >> 4
	hi := h.Flags7 & 0xF0
	if !h.NES2 && (rom[12] != 0 || rom[13] != 0 || rom[14] != 0 || rom[15] != 0) {
		hi = 0
	}
	h.Mapper = hi | lo

	return h, nil
}

// ImageSize is the number of bytes the header says the file should have.
func (h *Header) ImageSize() int {
	n := headerSize + h.PRGBanks*prgBankSize + h.CHRBanks*chrBankSize
	if h.Trainer {
		n += trainerSize
	}
	return n
}

func (h *Header) String() string {
	return fmt.Sprintf("mapper=%d (%s) prg=%dx16K chr=%dx8K mirroring=%s battery=%v trainer=%v",
		h.Mapper, MapperName(h.Mapper), h.PRGBanks, h.CHRBanks, h.Mirroring, h.Battery, h.Trainer)
}

// MapperName returns the common board name for an iNES mapper number.
func MapperName(id byte) string {
	switch id {
	case 0:
		return "NROM"
	case 1:
		return "MMC1"
	case 2:
		return "UxROM"
	case 3:
		return "CNROM"
	default:
		return "Other/unknown"
	}
}
