// Package bus decodes the 2A03's 16-bit address space.
package bus

import (
	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/cart"
	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/controller"
	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/ppu"
)

const (
	ramMirror = 0x07FF
	ppuMirror = 0x0007

	regOAMDMA = 0x4014
	regJoy1   = 0x4016
	regJoy2   = 0x4017

	// OAM DMA halts the CPU for 513 cycles, 514 when it starts on an odd cycle.
	dmaCycles = 513
)

// noCopy makes go vet flag accidental copies of a Bus.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Bus is the single address decoder shared by the CPU and DMA. It owns the
// 2 KiB of work RAM, the PPU and both joypad ports.
type Bus struct {
	noCopy noCopy

	ram  [0x800]byte
	io   [0x20]byte // $4000–$401F, APU and test registers
	ppu  *ppu.PPU
	cart cart.Cartridge
	pads [2]*controller.Controller

	dmaStall int
}

func New(c cart.Cartridge) *Bus {
	return &Bus{
		cart: c,
		ppu:  ppu.New(c),
		pads: [2]*controller.Controller{controller.New(nil), controller.New(nil)},
	}
}

func (b *Bus) PPU() *ppu.PPU        { return b.ppu }
func (b *Bus) Cart() cart.Cartridge { return b.cart }

// Controller returns joypad port 0 ($4016) or 1 ($4017).
func (b *Bus) Controller(port int) *controller.Controller { return b.pads[port&1] }

func (b *Bus) Read(addr uint16) byte {
	switch {
	case addr < 0x2000:
		return b.ram[addr&ramMirror]
	case addr < 0x4000:
		return b.ppu.ReadRegister(0x2000 + addr&ppuMirror)
	case addr == regJoy1:
		return b.pads[0].Read() | 0x40
	case addr == regJoy2:
		return b.pads[1].Read() | 0x40
	case addr < 0x4020:
		return b.io[addr-0x4000]
	default:
		return b.cart.CPURead(addr)
	}
}

func (b *Bus) Write(addr uint16, value byte) {
	switch {
	case addr < 0x2000:
		b.ram[addr&ramMirror] = value
	case addr < 0x4000:
		b.ppu.WriteRegister(0x2000+addr&ppuMirror, value)
	case addr == regOAMDMA:
		b.oamDMA(value)
	case addr == regJoy1:
		// One strobe line feeds both ports.
		b.pads[0].Write(value)
		b.pads[1].Write(value)
		b.io[addr-0x4000] = value
	case addr < 0x4020:
		b.io[addr-0x4000] = value
	default:
		b.cart.CPUWrite(addr, value)
	}
}

// Peek reads without side effects, for tracing and disassembly. Registers
// whose reads change state report 0.
func (b *Bus) Peek(addr uint16) byte {
	switch {
	case addr < 0x2000:
		return b.ram[addr&ramMirror]
	case addr < 0x4000, addr == regJoy1, addr == regJoy2:
		return 0
	case addr < 0x4020:
		return b.io[addr-0x4000]
	default:
		return b.cart.CPURead(addr)
	}
}

// Read16 reads a little-endian word.
func (b *Bus) Read16(addr uint16) uint16 {
	lo := uint16(b.Read(addr))
	hi := uint16(b.Read(addr + 1))
	return hi<<8 | lo
}

// Write16 writes a little-endian word.
func (b *Bus) Write16(addr uint16, value uint16) {
	b.Write(addr, byte(value))
	b.Write(addr+1, byte(value>>8))
}

func (b *Bus) oamDMA(page byte) {
	var data [256]byte
	base := uint16(page) << 8
	for i := range data {
		data[i] = b.Read(base + uint16(i))
	}
	b.ppu.WriteOAMDMA(data[:])
	b.dmaStall += dmaCycles
	b.io[regOAMDMA-0x4000] = page
}

// TakeDMAStall returns the CPU cycles owed to OAM DMA since the last call
// and clears them. The CPU adds one more when it is on an odd cycle.
func (b *Bus) TakeDMAStall() int {
	n := b.dmaStall
	b.dmaStall = 0
	return n
}
