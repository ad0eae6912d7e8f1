package ui

// Config contains window/input related settings.
type Config struct {
	Title   string // window title
	Scale   int    // integer upscaling factor
	ROMsDir string // directory to browse for ROMs
	ShowFPS bool   // draw the actual TPS/FPS in the corner
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "nesemu"
	}
	if c.Scale <= 0 {
		c.Scale = 3
	}
	if c.ROMsDir == "" {
		c.ROMsDir = "roms"
	}
}
