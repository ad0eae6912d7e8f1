package ui

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/controller"
	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/emu"
	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/ppu"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

// fastFrames is how many frames one update runs while fast-forwarding.
const fastFrames = 5

// keyboard maps the host keyboard onto joypad 1.
type keyboard struct{}

var keyBindings = map[controller.Button]ebiten.Key{
	controller.A:      ebiten.KeyZ,
	controller.B:      ebiten.KeyX,
	controller.Select: ebiten.KeyShiftRight,
	controller.Start:  ebiten.KeyEnter,
	controller.Up:     ebiten.KeyArrowUp,
	controller.Down:   ebiten.KeyArrowDown,
	controller.Left:   ebiten.KeyArrowLeft,
	controller.Right:  ebiten.KeyArrowRight,
}

func (keyboard) IsPressed(b controller.Button) bool {
	k, ok := keyBindings[b]
	return ok && ebiten.IsKeyPressed(k)
}

type App struct {
	cfg    Config
	m      *emu.Machine
	tex    *ebiten.Image
	shade  *ebiten.Image
	frame  []byte
	paused bool
	fast   bool

	// overlay/menu
	showMenu    bool
	menuMode    string // "main", "rom", "settings", "keys"
	menuIdx     int
	settingsOff int
	keysOff     int

	romList []string
	romSel  int
	romOff  int

	editingROMDir bool
	romDirInput   string
	inputBuf      []rune

	toastMsg   string
	toastUntil time.Time

	curW, curH int
}

// NewApp wires the app into the machine as its frame sink and as joypad 1.
func NewApp(cfg Config, m *emu.Machine) *App {
	cfg.Defaults()
	a := &App{
		cfg:      cfg,
		m:        m,
		frame:    make([]byte, ppu.Width*ppu.Height*4),
		menuMode: "main",
		curW:     ppu.Width,
		curH:     ppu.Height,
	}
	m.SetFrameSink(a)
	m.SetInput(0, keyboard{})
	ebiten.SetWindowTitle(a.windowTitle())
	a.applyWindowSize()
	ebiten.SetTPS(60)
	return a
}

func (a *App) Run() error { return ebiten.RunGame(a) }

// Present keeps a copy of every completed frame for Draw.
func (a *App) Present(frame []byte) { copy(a.frame, frame) }

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && !a.editingROMDir {
		if !a.showMenu {
			a.showMenu = true
			a.menuMode = "main"
			a.menuIdx = 0
		} else if a.menuMode == "main" {
			a.showMenu = false
		}
	}
	if a.showMenu {
		switch a.menuMode {
		case "rom":
			a.updateRomMenu()
		case "settings":
			a.updateSettingsMenu()
		case "keys":
			a.updateKeysMenu()
		default:
			if quit := a.updateMainMenu(); quit {
				return ebiten.Termination
			}
		}
		return nil
	}

	// Pause toggle (P)
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}

	// Fast-forward (Tab): while held, run multiple frames per Ebiten update
	a.fast = ebiten.IsKeyPressed(ebiten.KeyTab)

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.m.Reset()
		a.toast("Reset")
	}

	// Frame-step when paused (N)
	if a.paused && inpututil.IsKeyJustPressed(ebiten.KeyN) {
		a.m.StepFrame()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if name, err := a.saveScreenshot(); err != nil {
			a.toast("Screenshot failed: " + err.Error())
		} else {
			a.toast("Saved " + name)
		}
	}

	if !a.paused && a.m.Loaded() {
		n := 1
		if a.fast {
			n = fastFrames
		}
		for i := 0; i < n; i++ {
			a.m.StepFrame()
		}
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(ppu.Width, ppu.Height)
	}
	a.tex.WritePixels(a.frame)
	screen.DrawImage(a.tex, nil)

	if !a.m.Loaded() && !a.showMenu {
		a.print(screen, "No cartridge", 10, 10, colornames.White)
		a.print(screen, "Esc: menu", 10, 24, colornames.Lightgray)
	}
	if a.paused && !a.showMenu {
		a.print(screen, "PAUSED", a.curW-7*6-4, 4, colornames.Yellow)
	}
	if a.cfg.ShowFPS {
		a.print(screen, fmt.Sprintf("%.0f fps", ebiten.ActualFPS()), 4, a.curH-16, colornames.Lime)
	}

	if a.showMenu {
		if a.shade == nil {
			a.shade = ebiten.NewImage(ppu.Width, ppu.Height)
			a.shade.Fill(color.RGBA{0, 0, 0, 176})
		}
		screen.DrawImage(a.shade, nil)
		switch a.menuMode {
		case "rom":
			a.drawRomMenu(screen)
		case "settings":
			a.drawSettingsMenu(screen)
		case "keys":
			a.drawKeysMenu(screen)
		default:
			a.drawMainMenu(screen)
		}
	}

	if a.toastMsg != "" && time.Now().Before(a.toastUntil) {
		a.print(screen, a.truncateText(a.toastMsg, a.maxCharsForText(4)), 4, a.curH-30, colornames.Orange)
	}
}

func (a *App) Layout(outW, outH int) (int, int) { return ppu.Width, ppu.Height }

// print draws s with its top-left corner at (x, y).
func (a *App) print(screen *ebiten.Image, s string, x, y int, clr color.Color) {
	text.Draw(screen, s, basicfont.Face7x13, x, y+basicfont.Face7x13.Ascent, clr)
}

func (a *App) toast(msg string) {
	a.toastMsg = msg
	a.toastUntil = time.Now().Add(2 * time.Second)
}

func (a *App) windowTitle() string {
	if p := a.m.ROMPath(); p != "" {
		return a.cfg.Title + " - [" + filepath.Base(p) + "]"
	}
	return a.cfg.Title
}

func (a *App) applyWindowSize() {
	ebiten.SetWindowSize(ppu.Width*a.cfg.Scale, ppu.Height*a.cfg.Scale)
}

// loadROM swaps the cartridge. A bad file leaves the running game alone.
func (a *App) loadROM(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := a.m.LoadCartridge(data); err != nil {
		return err
	}
	a.m.SetROMPath(path)
	log.Printf("loaded %s: %s", path, a.m.Header())
	ebiten.SetWindowTitle(a.windowTitle())
	a.paused = false
	return nil
}

func (a *App) saveScreenshot() (string, error) {
	name := fmt.Sprintf("screenshot_%s.png", time.Now().Format("20060102_150405"))
	if err := WritePNG(name, a.frame); err != nil {
		return "", err
	}
	return name, nil
}
