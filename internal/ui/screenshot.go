package ui

import (
	"image"
	"image/png"
	"os"

	"github.com/FabianRolfMatthiasNoll/NESEmulator/internal/ppu"
)

// WritePNG encodes a packed RGBA frame (ppu.Width x ppu.Height) to path.
func WritePNG(path string, frame []byte) error {
	img := &image.RGBA{
		Pix:    make([]byte, len(frame)),
		Stride: 4 * ppu.Width,
		Rect:   image.Rect(0, 0, ppu.Width, ppu.Height),
	}
	copy(img.Pix, frame)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
