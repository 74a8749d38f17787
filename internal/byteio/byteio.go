// Package byteio reads fixed-width integers from a byte stream.
package byteio

import (
	"encoding/binary"
	"io"
)

type Reader struct {
	r   io.Reader
	buf [4]byte
}

func NewReader(r io.Reader) *Reader {
	if br, ok := r.(*Reader); ok {
		return br
	}
	return &Reader{r: r}
}

func (br *Reader) Read(p []byte) (int, error) {
	return br.r.Read(p)
}

func (br *Reader) fill(n int) ([]byte, error) {
	b := br.buf[:n]
	if _, err := io.ReadFull(br.r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (br *Reader) U8() (uint8, error) {
	b, err := br.fill(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (br *Reader) LEU16() (uint16, error) {
	b, err := br.fill(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (br *Reader) LEI16() (int16, error) {
	v, err := br.LEU16()
	return int16(v), err
}

// LEU24 reads a three byte little-endian value into the low bits of a uint32.
func (br *Reader) LEU24() (uint32, error) {
	b, err := br.fill(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16, nil
}

func (br *Reader) LEU32() (uint32, error) {
	b, err := br.fill(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (br *Reader) BEU16() (uint16, error) {
	b, err := br.fill(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (br *Reader) BEU32() (uint32, error) {
	b, err := br.fill(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}
