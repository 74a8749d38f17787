package resource

import (
	"image"
	"image/color"
)

type Mapping interface {
	Entry() Entry
	Resource() (*Resource, error)
}

type PaletteMapping struct{ Mapping }

func (pal PaletteMapping) Palette() (color.Palette, error) {
	res, err := pal.Resource()
	if err != nil {
		return nil, err
	}
	return NewPalette(res.Bytes())
}

// ScreenMapping pairs a screen with the palette it is drawn in. A nil
// Palette renders in grayscale.
type ScreenMapping struct {
	Mapping
	Palette Mapping
}

func (scr ScreenMapping) Render() (*image.Paletted, error) {
	res, err := scr.Resource()
	if err != nil {
		return nil, err
	}

	var pal color.Palette
	if scr.Palette != nil {
		if pal, err = (PaletteMapping{scr.Palette}).Palette(); err != nil {
			return nil, err
		}
	}

	return NewScreen(res.Bytes(), pal)
}

type SampleMapping struct{ Mapping }

func (s SampleMapping) Sample() (Sample, error) {
	res, err := s.Resource()
	if err != nil {
		return Sample{}, err
	}
	return NewSample(res.Bytes()), nil
}
