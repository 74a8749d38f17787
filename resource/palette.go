package resource

import (
	"fmt"
	"image/color"

	clr "github.com/lucasb-eyer/go-colorful"
)

const PaletteSize = 256 * 3

// NewPalette reads 256 RGB triples of 6-bit VGA DAC values.
func NewPalette(b []byte) (color.Palette, error) {
	if len(b) != PaletteSize {
		return nil, fmt.Errorf("palette: expected(%d) != actual(%d) bytes", PaletteSize, len(b))
	}

	pal := make(color.Palette, 256)
	for i := range pal {
		rgb := b[i*3 : i*3+3]
		pal[i] = clr.Color{
			R: dac6(rgb[0]),
			G: dac6(rgb[1]),
			B: dac6(rgb[2]),
		}.Clamped()
	}
	return pal, nil
}

// dac6 widens a 6-bit DAC level to 8 bits, returned as a unit fraction.
func dac6(c uint8) float64 {
	return float64(255*uint16(c)/63) / 255
}

var grayscale = func() color.Palette {
	pal := make(color.Palette, 256)
	for i := range pal {
		pal[i] = color.Gray{Y: uint8(i)}
	}
	return pal
}()
