package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/cart"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"
)

const (
	lineHeight = 14
	charWidth  = 7 // basicfont.Face7x13 advance
	romListY   = 40
)

var keyHelp = []string{
	"Z: A",
	"X: B",
	"Enter: Start",
	"RightShift: Select",
	"Arrows: D-Pad",
	"P: Pause",
	"N: Step (when paused)",
	"Tab: Fast-forward",
	"R: Reset",
	"F12: Screenshot",
	"Esc: Open/Close Menu",
}

func (a *App) drawMainMenu(screen *ebiten.Image) {
	a.print(screen, "Menu:", 10, 10, colornames.White)
	for i, s := range mainMenuItems {
		prefix, clr := "  ", colornames.White
		if i == a.menuIdx {
			prefix, clr = "> ", colornames.Yellow
		}
		a.print(screen, prefix+s, 10, 10+(i+1)*lineHeight, clr)
	}
	y := 10 + (len(mainMenuItems)+2)*lineHeight
	if h := a.m.Header(); h != nil {
		info := fmt.Sprintf("Mapper %d (%s), %s", h.Mapper, cart.MapperName(h.Mapper), h.Mirroring)
		for _, w := range a.wrapText(info, a.maxCharsForText(10)) {
			a.print(screen, w, 10, y, colornames.Lightgray)
			y += lineHeight
		}
	}
	a.print(screen, a.truncateText("Backspace: Back", a.maxCharsForText(10)), 10, y, colornames.Gray)
}

func (a *App) drawRomMenu(screen *ebiten.Image) {
	a.print(screen, a.truncateText("Select ROM (Enter loads)", a.maxCharsForText(10)), 10, 10, colornames.White)
	a.print(screen, a.truncateText("Dir: "+a.cfg.ROMsDir, a.maxCharsForText(10)), 10, 24, colornames.Lightgray)
	if len(a.romList) == 0 {
		a.print(screen, "No ROMs found", 10, romListY, colornames.White)
		return
	}
	maxRows := (a.curH - romListY) / lineHeight
	if maxRows < 1 {
		maxRows = 1
	}
	end := min(a.romOff+maxRows, len(a.romList))
	maxChars := max(a.maxCharsForText(10)-2, 1) // account for "> " prefix
	for i, p := range a.romList[a.romOff:end] {
		prefix, clr := "  ", colornames.White
		if a.romOff+i == a.romSel {
			prefix, clr = "> ", colornames.Yellow
		}
		a.print(screen, prefix+a.truncateText(filepath.Base(p), maxChars), 10, romListY+i*lineHeight, clr)
	}
	// scroll indicators
	if a.romOff > 0 {
		a.print(screen, "^", 2, romListY, colornames.White)
	}
	if end < len(a.romList) {
		a.print(screen, "v", 2, romListY+(maxRows-1)*lineHeight, colornames.White)
	}
}

func (a *App) drawKeysMenu(screen *ebiten.Image) {
	cursorY := 10
	for _, w := range a.wrapText("Keybindings (Up/Down scroll, Esc returns)", a.maxCharsForText(10)) {
		a.print(screen, w, 10, cursorY, colornames.White)
		cursorY += lineHeight
	}
	baseY := cursorY + 4
	maxRows := max((a.curH-baseY)/lineHeight, 1)
	end := min(a.keysOff+maxRows, len(keyHelp))
	maxChars := a.maxCharsForText(10)
	for i := a.keysOff; i < end; i++ {
		a.print(screen, a.truncateText(keyHelp[i], maxChars), 10, baseY+(i-a.keysOff)*lineHeight, colornames.Lightgray)
	}
	if a.keysOff > 0 {
		a.print(screen, "^", 2, baseY, colornames.White)
	}
	if end < len(keyHelp) {
		a.print(screen, "v", 2, baseY+(maxRows-1)*lineHeight, colornames.White)
	}
}

const settingsTitle = "Settings (Left/Right change, Enter edits, Esc returns)"

func (a *App) settingsListY() int {
	return 10 + lineHeight*len(a.wrapText(settingsTitle, a.maxCharsForText(10))) + 4
}

func (a *App) drawSettingsMenu(screen *ebiten.Image) {
	cursorY := 10
	for _, w := range a.wrapText(settingsTitle, a.maxCharsForText(10)) {
		a.print(screen, w, 10, cursorY, colornames.White)
		cursorY += lineHeight
	}
	romDir := a.cfg.ROMsDir
	if a.editingROMDir {
		romDir = a.romDirInput + "_"
	}
	onOff := map[bool]string{true: "On", false: "Off"}
	items := [settingCount]string{
		settingScale:   fmt.Sprintf("Scale: %dx", a.cfg.Scale),
		settingShowFPS: "Show FPS: " + onOff[a.cfg.ShowFPS],
		settingROMsDir: "ROMs Dir: " + romDir,
	}
	baseY := a.settingsListY()
	maxRows := max((a.curH-baseY)/lineHeight, 1)
	end := min(a.settingsOff+maxRows, len(items))
	for i := a.settingsOff; i < end; i++ {
		prefix, clr := "  ", colornames.White
		if i == a.menuIdx {
			prefix, clr = "> ", colornames.Yellow
		}
		a.print(screen, a.truncateText(prefix+items[i], a.maxCharsForText(10)), 10, baseY+(i-a.settingsOff)*lineHeight, clr)
	}
}

// maxCharsForText is how many glyphs fit between x and the right edge.
func (a *App) maxCharsForText(x int) int {
	n := (a.curW - x - 2) / charWidth
	if n < 1 {
		return 1
	}
	return n
}

// truncateText shortens s to n characters, marking the cut with "..".
func (a *App) truncateText(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 2 {
		return string(r[:n])
	}
	return string(r[:n-2]) + ".."
}

// wrapText breaks s on spaces into lines of at most n characters. Words
// longer than a line are split.
func (a *App) wrapText(s string, n int) []string {
	if n < 1 {
		n = 1
	}
	var lines []string
	var line []rune
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		for len(w) > n {
			if len(line) > 0 {
				lines = append(lines, string(line))
				line = nil
			}
			lines = append(lines, string(w[:n]))
			w = w[n:]
		}
		switch {
		case len(line) == 0:
			line = w
		case len(line)+1+len(w) <= n:
			line = append(append(line, ' '), w...)
		default:
			lines = append(lines, string(line))
			line = w
		}
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}
