package resource

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/32bitkid/sky/decompression"
)

// HeaderSize is the length of the optional per-resource header.
const HeaderSize = 22

const compressedFlag = 0x80

// Header precedes the payload of entries with HasFileHeader set. All fields
// are little-endian.
type Header struct {
	Flags          uint16
	X              uint16
	Y              uint16
	Width          uint16
	Height         uint16
	SpriteSize     uint16
	TotalSize      uint16
	Sprites        uint16
	OffsetX        int16
	OffsetY        int16
	CompressedSize uint16
}

func (h Header) IsCompressed() bool {
	return h.Flags&compressedFlag != 0
}

func (h Header) Method() decompression.Method {
	if h.IsCompressed() {
		return decompression.MethodRNC1
	}
	return decompression.MethodNone
}

// Resource is an entry together with its header, if any, and its payload.
type Resource struct {
	Entry  Entry
	Header *Header
	Data   []byte

	// DecodeErr is why decompression failed when Data holds the raw,
	// still compressed payload instead.
	DecodeErr error
}

func (res *Resource) Number() Number { return res.Entry.Number }
func (res *Resource) Bytes() []byte  { return res.Data }

func (res *Resource) IsCompressed() bool {
	return res.Header != nil && res.Header.IsCompressed()
}

// Parse interprets the raw bytes of an entry. A payload that fails to
// decompress is kept as is, with the failure recorded in DecodeErr.
func Parse(e Entry, raw []byte, lut decompression.LUT) (*Resource, error) {
	if !e.HasFileHeader {
		return &Resource{Entry: e, Data: raw}, nil
	}

	if lut == nil {
		lut = decompression.Decompressors
	}

	var header Header
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("resource %d: header: %w", e.Number, unexpected(err))
	}
	payload := raw[HeaderSize:]

	method := header.Method()
	decompressor, ok := lut[method]
	if !ok {
		return nil, fmt.Errorf("resource %d: unhandled compression type: %s", e.Number, method)
	}

	res := &Resource{Entry: e, Header: &header}

	data, err := decompressor(bytes.NewReader(payload))
	switch {
	case err == nil:
		res.Data = data
	case method == decompression.MethodNone:
		return nil, fmt.Errorf("resource %d: %w", e.Number, err)
	default:
		res.Data = payload
		res.DecodeErr = err
	}

	return res, nil
}
