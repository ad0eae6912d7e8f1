package ui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var mainMenuItems = []string{"Resume", "Reset", "Switch ROM", "Settings", "Keybindings", "Close emulator"}

// updateMainMenu reports whether the user asked to quit.
func (a *App) updateMainMenu() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.menuIdx > 0 {
		a.menuIdx--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.menuIdx < len(mainMenuItems)-1 {
		a.menuIdx++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		switch a.menuIdx {
		case 0:
			a.showMenu = false
		case 1:
			a.m.Reset()
			a.toast("Reset")
			a.showMenu = false
		case 2:
			a.romList = findROMs(a.cfg.ROMsDir)
			a.romSel = 0
			a.romOff = 0
			a.menuMode = "rom"
		case 3:
			a.menuMode = "settings"
			a.menuIdx = 0
			a.settingsOff = 0
			a.editingROMDir = false
		case 4:
			a.menuMode = "keys"
			a.keysOff = 0
		case 5:
			return true
		}
	}
	// Back with Backspace
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.showMenu = false
	}
	return false
}

// findROMs lists the .nes files directly under dir, sorted by name.
func findROMs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".nes") {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out
}

// scrollWindow clamps off so that sel stays within rows visible entries.
func scrollWindow(sel, off, rows, n int) int {
	if rows < 1 {
		rows = 1
	}
	if sel < off {
		off = sel
	}
	if sel >= off+rows {
		off = sel - rows + 1
	}
	if off > n-1 {
		off = n - 1
	}
	if off < 0 {
		off = 0
	}
	return off
}

func (a *App) updateRomMenu() {
	back := inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace)
	n := len(a.romList)
	if n == 0 {
		if back || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			a.menuMode = "main"
		}
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.romSel > 0 {
		a.romSel--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.romSel < n-1 {
		a.romSel++
	}
	a.romOff = scrollWindow(a.romSel, a.romOff, (a.curH-romListY)/lineHeight, n)
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		path := a.romList[a.romSel]
		if err := a.loadROM(path); err == nil {
			a.toast("Loaded ROM: " + filepath.Base(path))
			a.showMenu = false
		} else {
			a.toast("ROM load failed: " + err.Error())
		}
		a.menuMode = "main"
		return
	}
	if back {
		a.menuMode = "main"
	}
}

func (a *App) updateKeysMenu() {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.keysOff > 0 {
		a.keysOff--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.keysOff < len(keyHelp)-1 {
		a.keysOff++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.menuMode = "main"
	}
}

// Settings rows.
const (
	settingScale = iota
	settingShowFPS
	settingROMsDir
	settingCount
)

func (a *App) updateSettingsMenu() {
	if a.editingROMDir {
		a.updateROMDirInput()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.menuIdx > 0 {
		a.menuIdx--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.menuIdx < settingCount-1 {
		a.menuIdx++
	}
	a.settingsOff = scrollWindow(a.menuIdx, a.settingsOff, (a.curH-a.settingsListY())/lineHeight, settingCount)

	left := inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft)
	right := inpututil.IsKeyJustPressed(ebiten.KeyArrowRight)
	enter := inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	switch a.menuIdx {
	case settingScale:
		if left && a.cfg.Scale > 1 {
			a.cfg.Scale--
			a.applyWindowSize()
		}
		if right && a.cfg.Scale < 10 {
			a.cfg.Scale++
			a.applyWindowSize()
		}
	case settingShowFPS:
		if left || right || enter {
			a.cfg.ShowFPS = !a.cfg.ShowFPS
		}
	case settingROMsDir:
		if enter {
			a.editingROMDir = true
			a.romDirInput = a.cfg.ROMsDir
			return
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.menuMode = "main"
		a.menuIdx = 3
	}
}

func (a *App) updateROMDirInput() {
	a.inputBuf = ebiten.AppendInputChars(a.inputBuf[:0])
	for _, r := range a.inputBuf {
		if r != '\n' && r != '\r' {
			a.romDirInput += string(r)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(a.romDirInput) > 0 {
		a.romDirInput = a.romDirInput[:len(a.romDirInput)-1]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if val := strings.TrimSpace(a.romDirInput); val != "" {
			a.cfg.ROMsDir = val
			a.toast("ROMs dir set")
		}
		a.editingROMDir = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.editingROMDir = false
		a.romDirInput = a.cfg.ROMsDir
	}
}
