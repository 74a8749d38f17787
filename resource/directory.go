package resource

import (
	"fmt"
	"io"

	"github.com/32bitkid/sky/internal/byteio"
)

type Number uint16

const (
	noHeaderFlag  = 1 << 23
	unusedHdrFlag = 1 << 22
	sizeMask      = 1<<22 - 1
)

// Entry locates one resource inside the data file.
type Entry struct {
	Number Number
	Offset uint32
	Size   uint32

	HasFileHeader  bool
	UsesFileHeader bool
}

func newEntry(number uint16, offset, raw uint32) Entry {
	return Entry{
		Number:         Number(number),
		Offset:         offset,
		Size:           raw & sizeMask,
		HasFileHeader:  raw&noHeaderFlag == 0,
		UsesFileHeader: raw&unusedHdrFlag == 0,
	}
}

// Directory lists entries in file order.
type Directory []Entry

func (d Directory) Find(n Number) (Entry, bool) {
	for _, e := range d {
		if e.Number == n {
			return e, true
		}
	}
	return Entry{}, false
}

// ReadDirectory parses the entry table: a little-endian entry count
// followed by a 16-bit number, 24-bit offset and 24-bit size per entry.
func ReadDirectory(r io.Reader) (Directory, error) {
	br := byteio.NewReader(r)

	count, err := br.LEU32()
	if err != nil {
		return nil, fmt.Errorf("directory: entry count: %w", unexpected(err))
	}

	directory := make(Directory, 0, min(int(count), 1<<16))
	for i := uint32(0); i < count; i++ {
		number, err := br.LEU16()
		if err != nil {
			return nil, fmt.Errorf("directory: entry %d: %w", i, unexpected(err))
		}
		offset, err := br.LEU24()
		if err != nil {
			return nil, fmt.Errorf("directory: entry %d: %w", i, unexpected(err))
		}
		size, err := br.LEU24()
		if err != nil {
			return nil, fmt.Errorf("directory: entry %d: %w", i, unexpected(err))
		}

		directory = append(directory, newEntry(number, offset, size))
	}

	return directory, nil
}

// ReadEntry reads the raw bytes of e from a seekable data file.
func ReadEntry(r io.ReadSeeker, e Entry) ([]byte, error) {
	if _, err := r.Seek(int64(e.Offset), io.SeekStart); err != nil {
		return nil, err
	}
	return readEntry(r, e)
}

// ReadEntryAt is ReadEntry for sources shared between goroutines.
func ReadEntryAt(r io.ReaderAt, e Entry) ([]byte, error) {
	return readEntry(io.NewSectionReader(r, int64(e.Offset), int64(e.Size)), e)
}

func readEntry(r io.Reader, e Entry) ([]byte, error) {
	buf := make([]byte, e.Size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("resource %d: truncated archive: %w", e.Number, unexpected(err))
	}
	return buf, nil
}

func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
