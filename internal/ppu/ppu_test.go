package ppu

import (
	"testing"

	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/cart"
)

// newTestPPU builds a PPU on an NROM board with 8 KiB of CHR RAM so tests
// can upload pattern data through $2007.
func newTestPPU(t *testing.T, vertical bool) *PPU {
	t.Helper()
	rom := make([]byte, 16+0x4000)
	copy(rom, "NES\x1A")
	rom[4] = 1
	if vertical {
		rom[6] = 0x01
	}
	c, err := cart.Load(rom)
	if err != nil {
		t.Fatalf("cart.Load: %v", err)
	}
	return New(c)
}

func setAddr(p *PPU, addr uint16) {
	p.WriteRegister(0x2006, byte(addr>>8))
	p.WriteRegister(0x2006, byte(addr))
}

// stepTo runs the PPU until the next Step would execute (line, dot),
// OR-ing together every status it reports on the way.
func stepTo(p *PPU, line, dot int) Status {
	var all Status
	for {
		l, d := p.Position()
		if l == line && d == dot {
			return all
		}
		all |= p.Step()
	}
}

func TestPPU_FrameReadyExactlyOncePerFrame(t *testing.T) {
	p := newTestPPU(t, false)
	ready := 0
	for i := 0; i < DotsPerFrame; i++ {
		st := p.Step()
		if st&StatusFrameReady != 0 {
			ready++
			if i != DotsPerFrame-1 {
				t.Fatalf("frame ready at step %d want %d", i, DotsPerFrame-1)
			}
		}
	}
	if ready != 1 {
		t.Fatalf("frame ready raised %d times want 1", ready)
	}
	if p.FrameCount() != 1 {
		t.Fatalf("FrameCount got %d want 1", p.FrameCount())
	}
	fb := p.Frame()
	if len(fb) != Width*Height*4 {
		t.Fatalf("frame size got %d want %d", len(fb), Width*Height*4)
	}
	for i := 3; i < len(fb); i += 4 {
		if fb[i] != 0xFF {
			px := i / 4
			t.Fatalf("pixel (%d,%d) never written", px%Width, px/Width)
		}
	}
}

func TestPPU_OddFrameSkipsDotWhenRendering(t *testing.T) {
	p := newTestPPU(t, false)
	p.WriteRegister(0x2001, maskShowBG)

	// Frame 0 is even and full length.
	n := 0
	for p.Step()&StatusFrameReady == 0 {
		n++
	}
	if n+1 != DotsPerFrame {
		t.Fatalf("even frame took %d dots want %d", n+1, DotsPerFrame)
	}
	n = 0
	for p.Step()&StatusFrameReady == 0 {
		n++
	}
	if n+1 != DotsPerFrame-1 {
		t.Fatalf("odd frame took %d dots want %d", n+1, DotsPerFrame-1)
	}
}

func TestPPU_VBlankRaisesNMIWhenEnabled(t *testing.T) {
	p := newTestPPU(t, false)
	p.WriteRegister(0x2000, ctrlNMI)

	nmis := 0
	for i := 0; i < DotsPerFrame; i++ {
		if p.Step()&StatusNMI != 0 {
			nmis++
			if l, d := p.Position(); l != vblankLine || d != 2 {
				t.Fatalf("NMI reported before (%d,%d) want (241,2)", l, d)
			}
		}
	}
	if nmis != 1 {
		t.Fatalf("NMI count got %d want 1", nmis)
	}
}

func TestPPU_VBlankWithoutNMI(t *testing.T) {
	p := newTestPPU(t, false)
	if st := stepTo(p, vblankLine, 2); st&StatusNMI != 0 {
		t.Fatalf("NMI raised with PPUCTRL bit 7 clear")
	}
	if p.Registers().Status&statusVBlank == 0 {
		t.Fatalf("VBlank flag not set at line 241")
	}
	stepTo(p, preRenderLine, 2)
	if p.Registers().Status&statusVBlank != 0 {
		t.Fatalf("VBlank flag not cleared on the pre-render line")
	}
}

func TestPPU_EnableNMIInsideVBlankFiresImmediately(t *testing.T) {
	p := newTestPPU(t, false)
	stepTo(p, 250, 0)
	p.WriteRegister(0x2000, ctrlNMI)
	if st := p.Step(); st&StatusNMI == 0 {
		t.Fatalf("no NMI after enabling it during VBlank")
	}
	// Rewriting the same value is not a new edge.
	p.WriteRegister(0x2000, ctrlNMI)
	if st := p.Step(); st&StatusNMI != 0 {
		t.Fatalf("second NMI without a 0->1 edge")
	}
}

func TestPPU_StatusReadClearsVBlankAndToggle(t *testing.T) {
	p := newTestPPU(t, false)
	stepTo(p, vblankLine, 2)
	p.WriteRegister(0x2005, 0x10) // first write, toggle now set
	if !p.Registers().W {
		t.Fatalf("write toggle not set after first $2005 write")
	}
	if got := p.ReadRegister(0x2002); got&statusVBlank == 0 {
		t.Fatalf("$2002 got %02X want bit 7 set", got)
	}
	r := p.Registers()
	if r.W {
		t.Fatalf("write toggle not reset by $2002 read")
	}
	if r.Status&statusVBlank != 0 {
		t.Fatalf("VBlank not cleared by $2002 read")
	}
	// Mirrored register address behaves the same.
	if got := p.ReadRegister(0x3FFA); got&statusVBlank != 0 {
		t.Fatalf("second $2002 read got %02X want bit 7 clear", got)
	}
}

func TestPPU_StatusLowBitsAreOpenBus(t *testing.T) {
	p := newTestPPU(t, false)
	p.WriteRegister(0x2003, 0x1F)
	if got := p.ReadRegister(0x2002); got != 0x1F {
		t.Fatalf("$2002 got %02X want 1F", got)
	}
}

func TestPPU_ScrollAndAddressComposeT(t *testing.T) {
	p := newTestPPU(t, false)
	p.WriteRegister(0x2000, 0x03) // nametable 3
	p.WriteRegister(0x2005, 0x7D) // coarse X 15, fine X 5
	p.WriteRegister(0x2005, 0x5E) // coarse Y 11, fine Y 6
	r := p.Registers()
	if r.T != 0x6D6F || r.X != 5 {
		t.Fatalf("T/X got %04X/%d want 6D6F/5", r.T, r.X)
	}
	setAddr(p, 0x3D12)
	r = p.Registers()
	if r.V != 0x3D12 || r.T != 0x3D12 {
		t.Fatalf("V/T got %04X/%04X want 3D12", r.V, r.T)
	}
}

func TestPPU_BufferedDataRead(t *testing.T) {
	p := newTestPPU(t, false)
	setAddr(p, 0x2108)
	p.WriteRegister(0x2007, 0xAB)
	p.WriteRegister(0x2007, 0xCD)

	setAddr(p, 0x2108)
	if got := p.ReadRegister(0x2007); got != 0x00 {
		t.Fatalf("first read got %02X want stale 00", got)
	}
	if got := p.ReadRegister(0x2007); got != 0xAB {
		t.Fatalf("second read got %02X want AB", got)
	}
	if got := p.ReadRegister(0x2007); got != 0xCD {
		t.Fatalf("third read got %02X want CD", got)
	}
}

func TestPPU_Increment32(t *testing.T) {
	p := newTestPPU(t, false)
	p.WriteRegister(0x2000, ctrlIncrement32)
	setAddr(p, 0x2000)
	p.WriteRegister(0x2007, 0x11)
	p.WriteRegister(0x2007, 0x22)
	if p.Registers().V != 0x2040 {
		t.Fatalf("V got %04X want 2040", p.Registers().V)
	}
	if got := p.read(0x2020); got != 0x22 {
		t.Fatalf("0x2020 got %02X want 22", got)
	}
}

func TestPPU_PaletteReadsAreDirect(t *testing.T) {
	p := newTestPPU(t, false)
	setAddr(p, 0x2F00)
	p.WriteRegister(0x2007, 0x77) // nametable byte under the palette
	setAddr(p, 0x3F10)
	p.WriteRegister(0x2007, 0x21) // sprite backdrop mirrors 0x3F00

	setAddr(p, 0x3F00)
	if got := p.ReadRegister(0x2007); got != 0x21 {
		t.Fatalf("palette read got %02X want 21", got)
	}
	if got := p.Registers().Buffer; got != 0x77 {
		t.Fatalf("buffer after palette read got %02X want 77", got)
	}
	// Palette RAM repeats every 32 bytes.
	if got := p.read(0x3FE0); got != 0x21 {
		t.Fatalf("0x3FE0 got %02X want 21", got)
	}
}

func TestPPU_NametableMirroring(t *testing.T) {
	h := newTestPPU(t, false)
	h.write(0x2000, 0x11)
	h.write(0x2800, 0x22)
	if h.read(0x2400) != 0x11 || h.read(0x2C00) != 0x22 {
		t.Fatalf("horizontal mirroring: 2400=%02X 2C00=%02X", h.read(0x2400), h.read(0x2C00))
	}
	if h.read(0x3000) != 0x11 {
		t.Fatalf("0x3000 does not mirror 0x2000")
	}

	v := newTestPPU(t, true)
	v.write(0x2000, 0x33)
	v.write(0x2400, 0x44)
	if v.read(0x2800) != 0x33 || v.read(0x2C00) != 0x44 {
		t.Fatalf("vertical mirroring: 2800=%02X 2C00=%02X", v.read(0x2800), v.read(0x2C00))
	}
}

func TestPPU_OAMPortAndDMA(t *testing.T) {
	p := newTestPPU(t, false)
	p.WriteRegister(0x2003, 0x10)
	p.WriteRegister(0x2004, 0xAA)
	if p.RawOAM(0x10) != 0xAA || p.Registers().OAMAddr != 0x11 {
		t.Fatalf("OAMDATA write: oam=%02X addr=%02X", p.RawOAM(0x10), p.Registers().OAMAddr)
	}

	page := make([]byte, 256)
	for i := range page {
		page[i] = byte(i)
	}
	p.WriteRegister(0x2003, 0xFE)
	p.WriteOAMDMA(page)
	if p.RawOAM(0xFE) != 0x00 || p.RawOAM(0x00) != 0x02 || p.RawOAM(0xFD) != 0xFF {
		t.Fatalf("DMA did not wrap from OAMADDR")
	}
	// Attribute bytes read back without bits 2-4.
	p.WriteRegister(0x2003, 0x02)
	p.WriteRegister(0x2004, 0xFF)
	p.WriteRegister(0x2003, 0x02)
	if got := p.ReadRegister(0x2004); got != 0xE3 {
		t.Fatalf("attribute read got %02X want E3", got)
	}
}

func TestPPU_RegisterDumpHasNoSideEffects(t *testing.T) {
	p := newTestPPU(t, false)
	stepTo(p, vblankLine, 2)
	p.WriteRegister(0x2006, 0x21)
	before := p.Registers()
	_ = before.String()
	after := p.Registers()
	if before != after {
		t.Fatalf("Registers changed state:\n%s\n%s", before, after)
	}
	if after.Status&statusVBlank == 0 || !after.W {
		t.Fatalf("dump cleared VBlank or the write toggle")
	}
}

func pixel(p *PPU, x, y int) uint32 {
	o := (y*Width + x) * 4
	fb := p.Frame()
	return uint32(fb[o])<<16 | uint32(fb[o+1])<<8 | uint32(fb[o+2])
}

func TestPPU_BackdropWhenRenderingOff(t *testing.T) {
	p := newTestPPU(t, false)
	setAddr(p, 0x3F00)
	p.WriteRegister(0x2007, 0x21)
	setAddr(p, 0x0000)
	stepTo(p, 0, 0)
	p.Step()
	stepTo(p, 0, 0)
	if got := pixel(p, 10, 10); got != Palette[0x21] {
		t.Fatalf("backdrop got %06X want %06X", got, Palette[0x21])
	}
}

// writeTile uploads one 8x8 pattern. Bits set in lo give colour 1, in hi colour 2.
func writeTile(p *PPU, tile int, lo, hi [8]byte) {
	setAddr(p, uint16(tile)*16)
	for _, b := range lo {
		p.WriteRegister(0x2007, b)
	}
	for _, b := range hi {
		p.WriteRegister(0x2007, b)
	}
}

var (
	solid   = [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	leftCol = [8]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80}
	topRow  = [8]byte{0xFF}
	blank   [8]byte
)

func fillNametable(p *PPU, tile byte) {
	setAddr(p, 0x2000)
	for i := 0; i < 960; i++ {
		p.WriteRegister(0x2007, tile)
	}
}

func writeVRAM(p *PPU, addr uint16, values ...byte) {
	setAddr(p, addr)
	for _, v := range values {
		p.WriteRegister(0x2007, v)
	}
}

func setSprite(p *PPU, i int, y, tile, attr, x byte) {
	p.WriteRegister(0x2003, byte(i*4))
	for _, b := range []byte{y, tile, attr, x} {
		p.WriteRegister(0x2004, b)
	}
}

// startRendering points v/t at nametable 0 with the given fine X, then
// writes PPUCTRL and PPUMASK.
func startRendering(p *PPU, fineX, ctrl, mask byte) {
	setAddr(p, 0x0000)
	p.WriteRegister(0x2005, fineX)
	p.WriteRegister(0x2005, 0)
	p.WriteRegister(0x2000, ctrl)
	p.WriteRegister(0x2001, mask)
}

// renderFrame runs two whole frames so that the published one was drawn
// entirely with the current settings, prefetch included.
func renderFrame(p *PPU) {
	for n := 0; n < 2; n++ {
		for p.Step()&StatusFrameReady == 0 {
		}
	}
}

// solidTileScene uploads an all-ones tile 1, fills nametable 0 with it and
// places sprite 0 over it.
func solidTileScene(p *PPU) {
	writeTile(p, 1, solid, blank)
	fillNametable(p, 0x01)
	writeVRAM(p, 0x3F00, 0x0F, 0x30)
	writeVRAM(p, 0x3F11, 0x16)
	setSprite(p, 0, 30, 1, 0, 40)

	setAddr(p, 0x0000)
	p.WriteRegister(0x2005, 0)
	p.WriteRegister(0x2005, 0)
}

const (
	showAll  = maskShowBG | maskShowSprites | maskLeftBG | maskLeftSprites
	backdrop = 0x0F
	bgColor  = 0x30
	sprColor = 0x27
)

func TestPPU_FineXScroll(t *testing.T) {
	p := newTestPPU(t, false)
	writeTile(p, 2, leftCol, blank)
	fillNametable(p, 0x02)
	writeVRAM(p, 0x3F00, backdrop, bgColor)
	startRendering(p, 3, 0, maskShowBG|maskLeftBG)
	renderFrame(p)

	for _, x := range []int{5, 13, 21} {
		if got := pixel(p, x, 10); got != Palette[bgColor] {
			t.Fatalf("column pixel at x=%d got %06X want %06X", x, got, Palette[bgColor])
		}
		if got := pixel(p, x+1, 10); got != Palette[backdrop] {
			t.Fatalf("pixel at x=%d got %06X want backdrop", x+1, got)
		}
	}
	if got := pixel(p, 0, 10); got != Palette[backdrop] {
		t.Fatalf("pixel at x=0 got %06X want backdrop", got)
	}
}

func TestPPU_AttributePaletteSelection(t *testing.T) {
	p := newTestPPU(t, false)
	writeTile(p, 1, solid, blank)
	fillNametable(p, 0x01)
	// Quadrants of the first 32x32 block: TL=0, TR=1, BL=2, BR=3.
	writeVRAM(p, 0x23C0, 0xE4)
	writeVRAM(p, 0x3F00, backdrop, 0x30, 0, 0, 0, 0x16, 0, 0, 0, 0x2A, 0, 0, 0, 0x12)
	startRendering(p, 0, 0, maskShowBG|maskLeftBG)
	renderFrame(p)

	tests := []struct {
		x, y int
		want byte
	}{
		{4, 4, 0x30},
		{20, 4, 0x16},
		{4, 20, 0x2A},
		{20, 20, 0x12},
		{36, 4, 0x30}, // next attribute byte is zero
	}
	for _, tt := range tests {
		if got := pixel(p, tt.x, tt.y); got != Palette[tt.want] {
			t.Fatalf("pixel (%d,%d) got %06X want colour %02X", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestPPU_Greyscale(t *testing.T) {
	p := newTestPPU(t, false)
	writeTile(p, 1, solid, blank)
	fillNametable(p, 0x01)
	writeVRAM(p, 0x3F00, backdrop, 0x16)
	startRendering(p, 0, 0, maskShowBG|maskLeftBG)
	renderFrame(p)
	if got := pixel(p, 50, 50); got != Palette[0x16] {
		t.Fatalf("colour pixel got %06X want %06X", got, Palette[0x16])
	}

	p.WriteRegister(0x2001, maskShowBG|maskLeftBG|maskGreyscale)
	renderFrame(p)
	if got := pixel(p, 50, 50); got != Palette[0x10] {
		t.Fatalf("greyscale pixel got %06X want %06X", got, Palette[0x10])
	}
}

func TestPPU_LeftColumnClipping(t *testing.T) {
	p := newTestPPU(t, false)
	writeTile(p, 1, solid, blank)
	fillNametable(p, 0x01)
	writeVRAM(p, 0x3F00, backdrop, bgColor)
	startRendering(p, 0, 0, maskShowBG)
	renderFrame(p)
	if got := pixel(p, 3, 10); got != Palette[backdrop] {
		t.Fatalf("clipped bg pixel got %06X want backdrop", got)
	}
	if got := pixel(p, 8, 10); got != Palette[bgColor] {
		t.Fatalf("bg pixel at x=8 got %06X want %06X", got, Palette[bgColor])
	}

	// Sprites clip on their own bit.
	q := newTestPPU(t, false)
	writeTile(q, 1, solid, blank)
	writeVRAM(q, 0x3F00, backdrop)
	writeVRAM(q, 0x3F11, sprColor)
	setSprite(q, 0, 30, 1, 0, 2)
	startRendering(q, 0, 0, maskShowSprites)
	renderFrame(q)
	for x := 2; x < 8; x++ {
		if got := pixel(q, x, 33); got != Palette[backdrop] {
			t.Fatalf("clipped sprite pixel at x=%d got %06X want backdrop", x, got)
		}
	}
	if got := pixel(q, 8, 33); got != Palette[sprColor] {
		t.Fatalf("sprite pixel at x=8 got %06X want %06X", got, Palette[sprColor])
	}
}

func TestPPU_SpritePlacement(t *testing.T) {
	p := newTestPPU(t, false)
	writeTile(p, 1, solid, blank)
	writeVRAM(p, 0x3F00, backdrop)
	writeVRAM(p, 0x3F11, sprColor)
	setSprite(p, 0, 30, 1, 0, 40)
	startRendering(p, 0, 0, maskShowSprites|maskLeftSprites)
	renderFrame(p)

	for y := 29; y <= 40; y++ {
		for x := 38; x <= 49; x++ {
			want := Palette[backdrop]
			if y >= 31 && y <= 38 && x >= 40 && x <= 47 {
				want = Palette[sprColor]
			}
			if got := pixel(p, x, y); got != want {
				t.Fatalf("pixel (%d,%d) got %06X want %06X", x, y, got, want)
			}
		}
	}
}

func TestPPU_SpriteFlips(t *testing.T) {
	tests := []struct {
		name string
		tile [8]byte
		attr byte
		x, y int // the one set pixel column or row, checked on line 33 or column 102
	}{
		{"no flip column", leftCol, 0x00, 100, -1},
		{"horizontal flip column", leftCol, 0x40, 107, -1},
		{"no flip row", topRow, 0x00, -1, 31},
		{"vertical flip row", topRow, 0x80, -1, 38},
	}
	for _, tt := range tests {
		p := newTestPPU(t, false)
		writeTile(p, 3, tt.tile, blank)
		writeVRAM(p, 0x3F00, backdrop)
		writeVRAM(p, 0x3F11, sprColor)
		setSprite(p, 0, 30, 3, tt.attr, 100)
		startRendering(p, 0, 0, maskShowSprites|maskLeftSprites)
		renderFrame(p)

		if tt.x >= 0 {
			for x := 100; x < 108; x++ {
				want := Palette[backdrop]
				if x == tt.x {
					want = Palette[sprColor]
				}
				if got := pixel(p, x, 33); got != want {
					t.Fatalf("%s: pixel (%d,33) got %06X want %06X", tt.name, x, got, want)
				}
			}
			continue
		}
		for y := 31; y <= 38; y++ {
			want := Palette[backdrop]
			if y == tt.y {
				want = Palette[sprColor]
			}
			if got := pixel(p, 102, y); got != want {
				t.Fatalf("%s: pixel (102,%d) got %06X want %06X", tt.name, y, got, want)
			}
		}
	}
}

func TestPPU_TallSprites(t *testing.T) {
	const colour2 = 0x1A
	for _, flip := range []bool{false, true} {
		p := newTestPPU(t, false)
		writeTile(p, 6, topRow, blank) // top half: colour 1 on its first row
		writeTile(p, 7, blank, solid)  // bottom half: colour 2 everywhere
		writeVRAM(p, 0x3F00, backdrop)
		writeVRAM(p, 0x3F11, sprColor, colour2)
		attr := byte(0)
		if flip {
			attr = 0x80
		}
		setSprite(p, 0, 40, 6, attr, 60)
		startRendering(p, 0, ctrlSpriteSize16, maskShowSprites|maskLeftSprites)
		renderFrame(p)

		want := map[int]byte{41: sprColor, 42: backdrop, 48: backdrop, 49: colour2, 56: colour2, 57: backdrop}
		if flip {
			want = map[int]byte{41: colour2, 48: colour2, 49: backdrop, 55: backdrop, 56: sprColor, 57: backdrop}
		}
		for y, c := range want {
			if got := pixel(p, 62, y); got != Palette[c] {
				t.Fatalf("flip=%t: pixel (62,%d) got %06X want colour %02X", flip, y, got, c)
			}
		}
	}
}

func TestPPU_SpriteBehindBackground(t *testing.T) {
	for _, behind := range []bool{false, true} {
		p := newTestPPU(t, false)
		writeTile(p, 1, solid, blank)
		writeTile(p, 2, leftCol, blank)
		fillNametable(p, 0x02)
		writeVRAM(p, 0x3F00, backdrop, bgColor)
		writeVRAM(p, 0x3F11, sprColor)
		attr := byte(0)
		if behind {
			attr = 0x20
		}
		setSprite(p, 0, 30, 1, attr, 40)
		startRendering(p, 0, 0, showAll)
		renderFrame(p)

		// x=40 has an opaque background pixel, x=42 a transparent one.
		front := Palette[sprColor]
		if behind {
			front = Palette[bgColor]
		}
		if got := pixel(p, 40, 33); got != front {
			t.Fatalf("behind=%t: overlap pixel got %06X want %06X", behind, got, front)
		}
		if got := pixel(p, 42, 33); got != Palette[sprColor] {
			t.Fatalf("behind=%t: sprite over transparent bg got %06X want %06X", behind, got, Palette[sprColor])
		}
	}
}

func TestPPU_SpriteZeroHit(t *testing.T) {
	p := newTestPPU(t, false)
	solidTileScene(p)
	p.WriteRegister(0x2001, maskShowBG|maskShowSprites|maskLeftBG|maskLeftSprites)

	// Run a full frame so the pre-render line loads v from t.
	stepTo(p, 0, 0)
	p.Step()
	stepTo(p, 0, 0)
	if p.Registers().Status&statusSpriteZero != 0 {
		t.Fatalf("sprite zero flag should be cleared by the pre-render line")
	}
	stepTo(p, 31, 30)
	if p.Registers().Status&statusSpriteZero != 0 {
		t.Fatalf("sprite zero hit before the sprite's first pixel")
	}
	stepTo(p, 31, 60)
	if p.Registers().Status&statusSpriteZero == 0 {
		t.Fatalf("sprite zero hit not set on line 31")
	}
	if got := pixel(p, 100, 100); got != Palette[0x30] {
		t.Fatalf("previous frame bg pixel got %06X want %06X", got, Palette[0x30])
	}
}

func TestPPU_SpriteOverflow(t *testing.T) {
	p := newTestPPU(t, false)
	p.WriteRegister(0x2003, 0)
	for i := 0; i < 64; i++ {
		y := byte(0xF0) // off screen
		if i < 9 {
			y = 50
		}
		p.WriteRegister(0x2004, y)
		p.WriteRegister(0x2004, 0)
		p.WriteRegister(0x2004, 0)
		p.WriteRegister(0x2004, byte(i*8))
	}
	p.WriteRegister(0x2001, maskShowSprites)
	stepTo(p, 49, 300)
	if p.Registers().Status&statusOverflow != 0 {
		t.Fatalf("overflow set before the crowded line")
	}
	stepTo(p, 50, 300)
	if p.Registers().Status&statusOverflow == 0 {
		t.Fatalf("overflow not set with nine sprites on line 50")
	}
	if p.spriteCount != 8 {
		t.Fatalf("sprites kept got %d want 8", p.spriteCount)
	}
}
