package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/32bitkid/sky"
	"github.com/32bitkid/sky/internal/config"
	"github.com/32bitkid/sky/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type archive struct {
	dnr, dsk []byte
	count    uint32
}

func (a *archive) add(number uint16, size uint32, payload []byte) {
	offset := uint32(len(a.dsk))
	a.count++
	a.dnr = binary.LittleEndian.AppendUint16(a.dnr, number)
	a.dnr = append(a.dnr, byte(offset), byte(offset>>8), byte(offset>>16))
	a.dnr = append(a.dnr, byte(size), byte(size>>8), byte(size>>16))
	a.dsk = append(a.dsk, payload...)
}

func (a *archive) directory() []byte {
	return append(binary.LittleEndian.AppendUint32(nil, a.count), a.dnr...)
}

func TestDump(t *testing.T) {
	a := &archive{}

	palette := make([]byte, resource.PaletteSize)
	copy(palette[3:], []byte{63, 0, 0})
	screen := make([]byte, resource.ScreenSize)
	screen[0] = 1

	var sample bytes.Buffer
	binary.Write(&sample, binary.LittleEndian, &resource.Header{X: 0x8000})
	sample.Write([]byte{0x80, 0x7f, 0x80})

	a.add(10, 0x800000|resource.PaletteSize, palette)
	a.add(11, 0x800000|resource.ScreenSize, screen)
	a.add(12, uint32(sample.Len()), sample.Bytes())

	root, err := sky.New(bytes.NewReader(a.directory()), bytes.NewReader(a.dsk))
	require.NoError(t, err)

	cfg := config.NewConfig()
	cfg.OutputDir = t.TempDir()
	for _, dir := range []string{"raw", "palette", "screen", "audio"} {
		require.NoError(t, os.MkdirAll(filepath.Join(cfg.OutputDir, dir), 0o755))
	}

	d := dumper{cfg: cfg, root: root}
	require.NoError(t, root.Walk(context.Background(), d.dump))

	for _, name := range []string{"00010.dmp", "00011.dmp", "00012.dmp"} {
		assert.FileExists(t, filepath.Join(cfg.OutputDir, "raw", name))
	}
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "palette", "00010.png"))
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "audio", "00012.wav"))

	f, err := os.Open(filepath.Join(cfg.OutputDir, "screen", "00011.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0}, []uint32{r, g, b})
}

func TestListRecord(t *testing.T) {
	res := &resource.Resource{
		Entry: resource.Entry{Number: 5, Offset: 16, HasFileHeader: true, UsesFileHeader: true},
		Data:  []byte("abc"),
	}
	record := listRecord(res)
	assert.Len(t, record, len(listColumns))
	assert.Equal(t, []string{"5", "16", "3", "true", "true", "false", "false"}, record[:7])

	res.Header = &resource.Header{Flags: 0x80, OffsetX: -3}
	record = listRecord(res)
	assert.Len(t, record, len(listColumns))
	assert.Equal(t, "true", record[5])
	assert.Equal(t, "true", record[6])
	assert.Equal(t, "0x0080", record[8])
	assert.Equal(t, "-3", record[16])
}
