package emu

// Config contains settings that affect emulation behavior.
type Config struct {
	Trace    bool // log every CPU instruction and a PPU register dump per frame
	LimitFPS bool // WaitFrame throttles to 60 Hz (useful for headless runs watched by a human)
}
