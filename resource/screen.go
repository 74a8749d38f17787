package resource

import (
	"fmt"
	"image"
	"image/color"
)

const (
	ScreenWidth  = 320
	ScreenHeight = 200
	ScreenSize   = ScreenWidth * ScreenHeight
)

// NewScreen wraps a full-screen 8-bit bitmap. A nil palette yields a
// grayscale image.
func NewScreen(b []byte, pal color.Palette) (*image.Paletted, error) {
	if len(b) != ScreenSize {
		return nil, fmt.Errorf("screen: expected(%d) != actual(%d) bytes", ScreenSize, len(b))
	}
	if pal == nil {
		pal = grayscale
	}

	img := image.NewPaletted(image.Rect(0, 0, ScreenWidth, ScreenHeight), pal)
	copy(img.Pix, b)
	return img, nil
}
