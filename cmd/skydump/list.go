package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/32bitkid/sky/resource"
	"github.com/cespare/xxhash/v2"
	"github.com/urfave/cli"
)

const fileFlag = "file"

var listCommand = cli.Command{
	Name:      "list",
	Aliases:   []string{"ls"},
	Usage:     "write the resource table as CSV",
	ArgsUsage: "PATH",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  fileFlag + ", f",
			Usage: "write to a file instead of stdout",
		},
	},
	Action: func(c *cli.Context) error {
		_, root, err := setup(c)
		if err != nil {
			return err
		}
		defer root.Close()

		var w io.Writer = os.Stdout
		if out := c.String(fileFlag); out != "" {
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}

		table := csv.NewWriter(w)
		if err := table.Write(listColumns); err != nil {
			return err
		}
		err = root.Walk(context.Background(), func(res *resource.Resource) error {
			return table.Write(listRecord(res))
		})
		if err != nil {
			return err
		}
		table.Flush()
		return table.Error()
	},
}

var listColumns = []string{
	"id", "offset", "size", "has_header", "uses_header", "compressed", "decoded", "xxhash",
	"flags", "x", "y", "width", "height", "sp_size", "tot_size", "n_sprites",
	"offset_x", "offset_y", "compressed_size",
}

func listRecord(res *resource.Resource) []string {
	e := res.Entry
	record := []string{
		strconv.Itoa(int(e.Number)),
		strconv.FormatUint(uint64(e.Offset), 10),
		strconv.Itoa(len(res.Data)),
		strconv.FormatBool(e.HasFileHeader),
		strconv.FormatBool(e.UsesFileHeader),
		strconv.FormatBool(res.IsCompressed()),
		strconv.FormatBool(res.IsCompressed() && res.DecodeErr == nil),
		fmt.Sprintf("%016x", xxhash.Sum64(res.Data)),
	}

	h := res.Header
	if h == nil {
		return append(record, make([]string, 11)...)
	}
	return append(record,
		fmt.Sprintf("0x%04x", h.Flags),
		strconv.Itoa(int(h.X)),
		strconv.Itoa(int(h.Y)),
		strconv.Itoa(int(h.Width)),
		strconv.Itoa(int(h.Height)),
		strconv.Itoa(int(h.SpriteSize)),
		strconv.Itoa(int(h.TotalSize)),
		strconv.Itoa(int(h.Sprites)),
		strconv.Itoa(int(h.OffsetX)),
		strconv.Itoa(int(h.OffsetY)),
		strconv.Itoa(int(h.CompressedSize)),
	)
}
