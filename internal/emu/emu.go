package emu

import (
	"fmt"
	"log"

	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/bus"
	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/cart"
	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/controller"
	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/ppu"
)

// FrameSink receives every completed frame as packed RGBA, ppu.Width*ppu.Height*4
// bytes. The slice is only valid for the duration of the call.
type FrameSink interface {
	Present(frame []byte)
}

// Stats are the synchronizer's running totals since the last reset.
// PPUDots+PendingDots always equals 3*CPUCycles.
type Stats struct {
	CPUCycles   uint64
	PPUDots     uint64
	PendingDots int
	Frames      uint64
}

// Machine owns one console: cartridge, bus, CPU and PPU. Everything runs on
// the caller's goroutine.
type Machine struct {
	cfg     Config
	romPath string

	cart cart.Cartridge
	bus  *bus.Bus
	cpu  *cpu.CPU
	ppu  *ppu.PPU

	sink    FrameSink
	inputs  [2]controller.InputSource
	limiter *Limiter
	blank   []byte

	nmi       bool // PPU raised NMI, CPU services it before its next instruction
	pending   int  // PPU dots owed for CPU cycles already executed
	cpuCycles uint64
	ppuDots   uint64
	frames    uint64
}

func New(cfg Config) *Machine {
	m := &Machine{cfg: cfg, blank: make([]byte, ppu.Width*ppu.Height*4)}
	if cfg.LimitFPS {
		m.limiter = NewLimiter(60, SystemClock())
	}
	return m
}

// LoadCartridge parses an iNES image, builds a fresh bus/CPU/PPU around it
// and resets. On error the previously loaded game keeps running.
func (m *Machine) LoadCartridge(rom []byte) error {
	c, err := cart.Load(rom)
	if err != nil {
		return fmt.Errorf("load cartridge: %w", err)
	}
	m.cart = c
	m.bus = bus.New(c)
	m.cpu = cpu.New(m.bus)
	m.ppu = m.bus.PPU()
	for port, src := range m.inputs {
		m.bus.Controller(port).SetSource(src)
	}
	m.Reset()
	return nil
}

// Reset is the console's reset button: CPU and PPU restart, the cartridge
// and RAM contents stay.
func (m *Machine) Reset() {
	if m.cpu == nil {
		return
	}
	m.ppu.Reset()
	m.cpu.Reset()
	m.nmi = false
	m.frames = 0
	m.ppuDots = 0
	// The reset sequence itself takes CPU time the PPU has to catch up on.
	m.cpuCycles = m.cpu.Cycles
	m.pending = int(3 * m.cpu.Cycles)
}

// StepFrame runs the console until the PPU finishes a frame, then hands the
// frame to the sink. Dots left over from the last CPU instruction carry into
// the next call.
func (m *Machine) StepFrame() {
	if m.cpu == nil {
		return
	}
	for {
		if m.pending == 0 {
			var n int
			if m.nmi {
				m.nmi = false
				n = m.cpu.NMI()
			} else {
				if m.cfg.Trace {
					log.Print(m.cpu.Trace())
				}
				n = m.cpu.Step()
			}
			m.cpuCycles += uint64(n)
			m.pending += 3 * n
		}
		for m.pending > 0 {
			st := m.ppu.Step()
			m.pending--
			m.ppuDots++
			if st&ppu.StatusNMI != 0 {
				m.nmi = true
			}
			if st&ppu.StatusFrameReady != 0 {
				m.frames++
				m.present()
				return
			}
		}
	}
}

func (m *Machine) present() {
	if m.cfg.Trace {
		log.Printf("ppu: %s", m.ppu.Registers())
	}
	if m.sink != nil {
		m.sink.Present(m.ppu.Frame())
	}
}

// WaitFrame sleeps until the next 60 Hz frame boundary when Config.LimitFPS is set.
func (m *Machine) WaitFrame() {
	if m.limiter != nil {
		m.limiter.Wait()
	}
}

// SetFrameSink registers where completed frames go. nil disables delivery.
func (m *Machine) SetFrameSink(s FrameSink) { m.sink = s }

// SetInput attaches a host input source to joypad port 0 or 1. The binding
// survives cartridge changes.
func (m *Machine) SetInput(port int, src controller.InputSource) {
	m.inputs[port&1] = src
	if m.bus != nil {
		m.bus.Controller(port).SetSource(src)
	}
}

// Framebuffer returns the last completed frame (RGBA), or a transparent
// buffer before any cartridge is loaded.
func (m *Machine) Framebuffer() []byte {
	if m.ppu == nil {
		return m.blank
	}
	return m.ppu.Frame()
}

func (m *Machine) Stats() Stats {
	return Stats{CPUCycles: m.cpuCycles, PPUDots: m.ppuDots, PendingDots: m.pending, Frames: m.frames}
}

// Loaded reports whether a cartridge is in the machine.
func (m *Machine) Loaded() bool { return m.cart != nil }

// Header returns the loaded cartridge's header, or nil.
func (m *Machine) Header() *cart.Header {
	if m.cart == nil {
		return nil
	}
	return m.cart.Header()
}

// ROMPath returns the path the UI associated with the current cartridge, if any.
func (m *Machine) ROMPath() string { return m.romPath }

// SetROMPath records where the current cartridge came from. Call it only
// after a successful LoadCartridge.
func (m *Machine) SetROMPath(path string) { m.romPath = path }

// CPU and Bus expose the components for tests and tools.
func (m *Machine) CPU() *cpu.CPU { return m.cpu }
func (m *Machine) Bus() *bus.Bus { return m.bus }
