package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/32bitkid/sky"
	"github.com/32bitkid/sky/internal/config"
	"github.com/32bitkid/sky/resource"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var dumpCommand = cli.Command{
	Name:      "dump",
	Usage:     "write every resource out as raw bytes, images and audio",
	ArgsUsage: "PATH",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  outputFlag + ", o",
			Usage: "directory receiving the dump",
		},
		cli.IntFlag{
			Name:  parallelismFlag + ", j",
			Usage: "number of resources decoded at once",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, root, err := setup(c)
		if err != nil {
			return err
		}
		defer root.Close()

		d := dumper{cfg: cfg, root: root}
		for _, dir := range []string{"raw", "palette", "screen", "audio"} {
			if err := os.MkdirAll(filepath.Join(cfg.OutputDir, dir), 0o755); err != nil {
				return err
			}
		}

		logrus.WithField("output", cfg.OutputDir).Info("dumping resources")
		return root.Walk(context.Background(), d.dump)
	},
}

type dumper struct {
	cfg  *config.Config
	root *sky.Root
}

func (d dumper) path(kind string, n resource.Number, ext string) string {
	return filepath.Join(d.cfg.OutputDir, kind, fmt.Sprintf("%05d.%s", n, ext))
}

func (d dumper) dump(res *resource.Resource) error {
	e := res.Entry
	log := logrus.WithField("number", e.Number)

	raw, err := d.root.Raw(e)
	if err != nil {
		return err
	}
	if err := os.WriteFile(d.path("raw", e.Number, "dmp"), raw, 0o644); err != nil {
		return err
	}

	switch {
	case !e.HasFileHeader && len(res.Data) == resource.PaletteSize:
		log.Debug("palette")
		return d.palette(res)
	case len(res.Data) == resource.ScreenSize:
		log.Debug("screen")
		return d.screen(res)
	case res.Header != nil && res.Header.X&0x8000 != 0:
		log.Debug("audio")
		return d.audio(res)
	}
	return nil
}

// palette draws the 256 colours as a 16x16 grid of swatches.
func (d dumper) palette(res *resource.Resource) error {
	const swatch = 16

	pal, err := resource.NewPalette(res.Data)
	if err != nil {
		return err
	}

	img := image.NewPaletted(image.Rect(0, 0, 16*swatch, 16*swatch), pal)
	for y := 0; y < img.Rect.Dy(); y++ {
		for x := 0; x < img.Rect.Dx(); x++ {
			img.SetColorIndex(x, y, uint8(16*(y/swatch)+x/swatch))
		}
	}
	return writePNG(d.path("palette", res.Number(), "png"), img)
}

func (d dumper) screen(res *resource.Resource) error {
	m, err := d.root.Mapping(res.Number())
	if err != nil {
		return err
	}

	scr := resource.ScreenMapping{Mapping: m, Palette: d.neighbourPalette(res.Number())}
	if scr.Palette == nil {
		logrus.WithField("number", res.Number()).Debug("no palette next to screen, using grayscale")
	}

	img, err := scr.Render()
	if err != nil {
		return err
	}
	return writePNG(d.path("screen", res.Number(), "png"), img)
}

// neighbourPalette finds the palette stored right after or right before a
// screen.
func (d dumper) neighbourPalette(n resource.Number) resource.Mapping {
	for _, candidate := range []resource.Number{n + 1, n - 1} {
		m, err := d.root.Mapping(candidate)
		if err != nil {
			continue
		}
		if _, err := (resource.PaletteMapping{Mapping: m}).Palette(); err != nil {
			continue
		}
		return m
	}
	return nil
}

func (d dumper) audio(res *resource.Resource) error {
	m, err := d.root.Mapping(res.Number())
	if err != nil {
		return err
	}
	sample, err := (resource.SampleMapping{Mapping: m}).Sample()
	if err != nil {
		return err
	}
	sample.Rate = d.cfg.SampleRate

	f, err := os.Create(d.path("audio", res.Number(), "wav"))
	if err != nil {
		return err
	}
	defer f.Close()

	if err := sample.WriteWAV(f); err != nil {
		return err
	}
	return f.Close()
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return err
	}
	return f.Close()
}
