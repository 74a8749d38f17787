package decompression

import (
	"bytes"
	"fmt"
	"io"

	"github.com/32bitkid/bitreader"
)

// HeaderSize is the length of the RNC1 header on disk.
const HeaderSize = 18

var signature = [4]byte{'R', 'N', 'C', 0x01}

// Header is the RNC1 container header. The CRC fields are carried along but
// never checked against the decoded data.
type Header struct {
	Signature   [4]byte
	UnpackedLen uint32
	PackedLen   uint32
	CRCUnpacked uint16
	CRCPacked   uint16
	Overlap     uint8
	Blocks      uint8
}

func (h Header) Valid() bool {
	return h.Signature == signature
}

// ReadHeader reads the header fields. It does not validate the signature.
func ReadHeader(r io.Reader) (Header, error) {
	var raw [HeaderSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return Header{}, err
	}

	var h Header
	copy(h.Signature[:], raw[:4])

	br := bitreader.NewReader(bytes.NewReader(raw[4:]))
	var err error
	if h.UnpackedLen, err = br.Read32(32); err != nil {
		return Header{}, err
	}
	if h.PackedLen, err = br.Read32(32); err != nil {
		return Header{}, err
	}
	if h.CRCUnpacked, err = br.Read16(16); err != nil {
		return Header{}, err
	}
	if h.CRCPacked, err = br.Read16(16); err != nil {
		return Header{}, err
	}
	if h.Overlap, err = br.Read8(8); err != nil {
		return Header{}, err
	}
	if h.Blocks, err = br.Read8(8); err != nil {
		return Header{}, err
	}

	return h, nil
}

// Decoder unpacks a single RNC1 stream. A Decoder is not safe for concurrent
// use; decode distinct streams with distinct decoders.
type Decoder struct {
	src    byteSource
	queue  bitQueue
	header Header
	output []byte
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{src: newByteSource(r)}
}

// Header returns the header read by Decode.
func (d *Decoder) Header() Header { return d.header }

func (d *Decoder) Decode() ([]byte, error) {
	header, err := ReadHeader(d.src)
	if err != nil {
		return nil, fmt.Errorf("rnc1: header: %w", err)
	}
	if !header.Valid() {
		return nil, ErrSignature
	}
	d.header = header

	d.output = make([]byte, 0, header.UnpackedLen)
	d.queue = bitQueue{}
	d.queue.readBits(d.src, 2)

	for block := 0; block < int(header.Blocks); block++ {
		if err := d.decodeBlock(); err != nil {
			return nil, fmt.Errorf("rnc1: block %d: %w", block, err)
		}
	}

	return d.output, nil
}

func (d *Decoder) decodeBlock() error {
	literals := d.readTable()
	distances := d.readTable()
	counts := d.readTable()

	subchunks := int(d.queue.readBits(d.src, 16))
	for s := 0; s < subchunks; s++ {
		run, err := d.readValue(&literals, "literal")
		if err != nil {
			return err
		}
		if err := d.copyLiterals(int(run)); err != nil {
			return err
		}

		if s == subchunks-1 {
			break
		}

		distance, err := d.readValue(&distances, "distance")
		if err != nil {
			return err
		}
		count, err := d.readValue(&counts, "count")
		if err != nil {
			return err
		}
		if err := d.copyMatch(int(distance)+1, int(count)+2); err != nil {
			return err
		}
	}

	return nil
}

// copyLiterals moves n bytes from the source to the output, bypassing the
// bit queue.
func (d *Decoder) copyLiterals(n int) error {
	if n == 0 {
		return nil
	}

	start := len(d.output)
	d.output = append(d.output, make([]byte, n)...)
	if _, err := io.ReadFull(d.src, d.output[start:]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("literal run of %d: %w", n, err)
	}
	return nil
}

// copyMatch appends count bytes starting distance bytes back. The copy runs
// a byte at a time since the source range may overlap what is being written.
func (d *Decoder) copyMatch(distance, count int) error {
	if distance > len(d.output) {
		return fmt.Errorf("distance %d with %d bytes of output: %w", distance, len(d.output), ErrDistance)
	}

	from := len(d.output) - distance
	for j := 0; j < count; j++ {
		d.output = append(d.output, d.output[from+j])
	}
	return nil
}
