package emu

import (
	"errors"
	"testing"

	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/cart"
	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/controller"
	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/ppu"
)

// buildROM returns an NROM image running main at $8000 with the NMI
// handler nmi at $9000.
func buildROM(main, nmi []byte) []byte {
	rom := make([]byte, 16+0x4000)
	copy(rom, "NES\x1A")
	rom[4] = 1
	prg := rom[16:]
	copy(prg, main)
	copy(prg[0x1000:], nmi)
	prg[0x3FFA], prg[0x3FFB] = 0x00, 0x90
	prg[0x3FFC], prg[0x3FFD] = 0x00, 0x80
	prg[0x3FFE], prg[0x3FFF] = 0x00, 0x90
	return rom
}

var (
	// LDA #$80; STA $2000; loop: INX; JMP loop
	mainNMIOn = []byte{0xA9, 0x80, 0x8D, 0x00, 0x20, 0xE8, 0x4C, 0x05, 0x80}
	// loop: INX; JMP loop
	mainNMIOff = []byte{0xE8, 0x4C, 0x00, 0x80}
	// INC $10; RTI
	nmiCount = []byte{0xE6, 0x10, 0x40}
)

func newMachine(t *testing.T, main, nmi []byte) *Machine {
	t.Helper()
	m := New(Config{})
	if err := m.LoadCartridge(buildROM(main, nmi)); err != nil {
		t.Fatalf("LoadCartridge: %v", err)
	}
	return m
}

func TestMachine_ClockRatioNeverDrifts(t *testing.T) {
	m := newMachine(t, mainNMIOn, nmiCount)
	for f := 1; f <= 30; f++ {
		m.StepFrame()
		s := m.Stats()
		if s.PPUDots+uint64(s.PendingDots) != 3*s.CPUCycles {
			t.Fatalf("frame %d: dots %d + pending %d != 3 * cycles %d", f, s.PPUDots, s.PendingDots, s.CPUCycles)
		}
		if s.PendingDots < 0 || s.PendingDots >= 3*8 {
			t.Fatalf("frame %d: pending dots %d out of range", f, s.PendingDots)
		}
		if s.PPUDots != uint64(f)*ppu.DotsPerFrame {
			t.Fatalf("frame %d: PPU stepped %d dots want %d", f, s.PPUDots, uint64(f)*ppu.DotsPerFrame)
		}
		if s.CPUCycles != m.CPU().Cycles {
			t.Fatalf("frame %d: synchronizer saw %d cycles, CPU counted %d", f, s.CPUCycles, m.CPU().Cycles)
		}
	}
}

func TestMachine_OneNMIPerVBlank(t *testing.T) {
	m := newMachine(t, mainNMIOn, nmiCount)
	for f := 1; f <= 5; f++ {
		m.StepFrame()
		if got := m.Bus().Read(0x10); int(got) != f {
			t.Fatalf("after frame %d NMI handler ran %d times", f, got)
		}
	}
}

func TestMachine_NoNMIWhenDisabled(t *testing.T) {
	m := newMachine(t, mainNMIOff, nmiCount)
	for f := 0; f < 5; f++ {
		m.StepFrame()
	}
	if got := m.Bus().Read(0x10); got != 0 {
		t.Fatalf("NMI handler ran %d times with NMI disabled", got)
	}
	if m.Stats().Frames != 5 {
		t.Fatalf("Frames got %d want 5", m.Stats().Frames)
	}
}

type recordingSink struct {
	frames   int
	complete bool
}

func (s *recordingSink) Present(frame []byte) {
	s.frames++
	s.complete = len(frame) == ppu.Width*ppu.Height*4
	for i := 3; i < len(frame); i += 4 {
		if frame[i] != 0xFF {
			s.complete = false
			return
		}
	}
}

func TestMachine_PresentsEachFrameOnce(t *testing.T) {
	m := newMachine(t, mainNMIOff, nil)
	sink := &recordingSink{}
	m.SetFrameSink(sink)
	for f := 1; f <= 3; f++ {
		m.StepFrame()
		if sink.frames != f {
			t.Fatalf("sink got %d frames after %d steps", sink.frames, f)
		}
		if !sink.complete {
			t.Fatalf("frame %d presented with unwritten pixels", f)
		}
	}
}

func TestMachine_ControllerInput(t *testing.T) {
	// loop: LDA #1; STA $4016; LDA #0; STA $4016; LDA $4016; STA $11; LDA $4016; STA $12; JMP loop
	main := []byte{
		0xA9, 0x01, 0x8D, 0x16, 0x40,
		0xA9, 0x00, 0x8D, 0x16, 0x40,
		0xAD, 0x16, 0x40, 0x85, 0x11,
		0xAD, 0x16, 0x40, 0x85, 0x12,
		0x4C, 0x00, 0x80,
	}
	m := New(Config{})
	m.SetInput(0, controller.Buttons{controller.B: true})
	if err := m.LoadCartridge(buildROM(main, nil)); err != nil {
		t.Fatalf("LoadCartridge: %v", err)
	}
	m.StepFrame()
	if a, b := m.Bus().Read(0x11), m.Bus().Read(0x12); a != 0x40 || b != 0x41 {
		t.Fatalf("joypad reads got A=%02X B=%02X want 40/41", a, b)
	}

	m.SetInput(0, controller.Buttons{controller.A: true})
	m.StepFrame()
	if a := m.Bus().Read(0x11); a != 0x41 {
		t.Fatalf("joypad A after rebinding got %02X want 41", a)
	}
}

func TestMachine_LoadErrors(t *testing.T) {
	m := New(Config{})
	err := m.LoadCartridge([]byte("not a rom at all"))
	if !errors.Is(err, cart.ErrBadMagic) {
		t.Fatalf("LoadCartridge err got %v want ErrBadMagic", err)
	}
	if m.Loaded() {
		t.Fatalf("machine reports a cartridge after a failed load")
	}
	// Stepping an empty machine is a no-op.
	m.StepFrame()
	if s := m.Stats(); s != (Stats{}) {
		t.Fatalf("empty machine stats got %+v", s)
	}
	if len(m.Framebuffer()) != ppu.Width*ppu.Height*4 {
		t.Fatalf("empty framebuffer size got %d", len(m.Framebuffer()))
	}
}

func TestMachine_Reset(t *testing.T) {
	m := newMachine(t, mainNMIOn, nmiCount)
	m.StepFrame()
	m.StepFrame()
	m.Reset()
	if m.CPU().PC != 0x8000 {
		t.Fatalf("PC after reset got %04X want 8000", m.CPU().PC)
	}
	s := m.Stats()
	if s.Frames != 0 || s.PPUDots != 0 || s.PendingDots != 21 || s.CPUCycles != 7 {
		t.Fatalf("stats after reset got %+v", s)
	}
	// RAM survives a reset.
	if got := m.Bus().Read(0x10); got != 2 {
		t.Fatalf("RAM after reset got %02X want 02", got)
	}
}
