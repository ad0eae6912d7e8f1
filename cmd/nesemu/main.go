package main

import (
	"flag"
	"fmt"
	"hash/crc32"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/emu"
	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/ui"
)

type CLIFlags struct {
	ROMPath string
	ROMsDir string
	Scale   int
	Title   string
	Trace   bool
	ShowFPS bool

	// headless
	Headless bool
	Frames   int
	PNGOut   string
	Expect   string // expected framebuffer CRC32 hex (e.g., "1a2b3c4d")
	Limit    bool
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.ROMPath, "rom", "", "path to ROM (.nes)")
	flag.StringVar(&f.ROMsDir, "roms", "roms", "directory listed by the Switch ROM menu")
	flag.IntVar(&f.Scale, "scale", 3, "window scale")
	flag.StringVar(&f.Title, "title", "nesemu", "window title")
	flag.BoolVar(&f.Trace, "trace", false, "log every CPU instruction in nestest format")
	flag.BoolVar(&f.ShowFPS, "showfps", false, "draw the frame rate in the window")

	// headless options
	flag.BoolVar(&f.Headless, "headless", false, "run without a window")
	flag.IntVar(&f.Frames, "frames", 300, "frames to run in headless mode")
	flag.StringVar(&f.PNGOut, "outpng", "", "write last framebuffer to PNG at path")
	flag.StringVar(&f.Expect, "expect", "", "assert framebuffer CRC32 (hex)")
	flag.BoolVar(&f.Limit, "limit", false, "pace headless runs to 60 frames per second")
	flag.Parse()
	return f
}

func runHeadless(m *emu.Machine, frames int, pngPath, expectCRC string) error {
	if !m.Loaded() {
		return fmt.Errorf("headless mode needs -rom")
	}
	if frames <= 0 {
		frames = 1
	}

	start := time.Now()
	for i := 0; i < frames; i++ {
		m.StepFrame()
		m.WaitFrame()
	}
	dur := time.Since(start)

	fb := m.Framebuffer()
	crc := crc32.ChecksumIEEE(fb)
	fps := float64(frames) / dur.Seconds()
	st := m.Stats()

	log.Printf("headless: frames=%d cycles=%d elapsed=%s fps=%.2f fb_crc32=%08x",
		st.Frames, st.CPUCycles, dur.Truncate(time.Millisecond), fps, crc)

	if pngPath != "" {
		if err := ui.WritePNG(pngPath, fb); err != nil {
			return fmt.Errorf("write PNG: %w", err)
		}
		log.Printf("wrote %s", pngPath)
	}

	if expectCRC != "" {
		// normalize expected hex (allow with/without 0x, upper/lowercase)
		want := strings.TrimPrefix(strings.ToLower(expectCRC), "0x")
		got := fmt.Sprintf("%08x", crc)
		if got != want {
			return fmt.Errorf("checksum mismatch: got %s, want %s", got, want)
		}
	}
	return nil
}

func main() {
	f := parseFlags()

	m := emu.New(emu.Config{
		Trace:    f.Trace,
		LimitFPS: f.Headless && f.Limit, // the window paces itself
	})
	if f.ROMPath != "" {
		rom, err := os.ReadFile(f.ROMPath)
		if err != nil {
			log.Fatalf("read %s: %v", f.ROMPath, err)
		}
		if err := m.LoadCartridge(rom); err != nil {
			log.Fatalf("%s: %v", f.ROMPath, err)
		}
		path := f.ROMPath
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		m.SetROMPath(path)
		log.Printf("ROM: %s %s", filepath.Base(path), m.Header())
	}

	if f.Headless {
		if err := runHeadless(m, f.Frames, f.PNGOut, f.Expect); err != nil {
			log.Fatal(err)
		}
		return
	}

	uiCfg := ui.Config{Title: f.Title, Scale: f.Scale, ROMsDir: f.ROMsDir, ShowFPS: f.ShowFPS}
	app := ui.NewApp(uiCfg, m)
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
