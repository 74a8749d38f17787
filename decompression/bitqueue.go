package decompression

import (
	"bufio"
	"io"
)

type byteSource interface {
	io.Reader
	io.ByteReader
	Peek(n int) ([]byte, error)
}

func newByteSource(r io.Reader) byteSource {
	if src, ok := r.(byteSource); ok {
		return src
	}
	return bufio.NewReader(r)
}

// bitQueue buffers bits pulled from the source in little-endian 16-bit
// words. Bits are consumed from the least significant end. Between calls
// the queue never holds more than 15 bits.
type bitQueue struct {
	queue uint32
	bits  uint16
}

// refill appends the next word above the buffered bits. An exhausted source
// yields zero bytes, so the end of the stream reads as an endless run of
// zero bits.
func (q *bitQueue) refill(src io.ByteReader) {
	b0, err := src.ReadByte()
	if err != nil {
		b0 = 0
	}
	b1, err := src.ReadByte()
	if err != nil {
		b1 = 0
	}

	word := uint32(b1)<<8 | uint32(b0)
	q.queue |= word << q.bits
	q.bits += 16
}

// peek returns the next 16 bits of the stream without consuming anything.
func (q *bitQueue) peek(src byteSource) (uint16, error) {
	p, err := src.Peek(2)
	if err != nil && err != io.EOF {
		return 0, err
	}

	var word uint32
	if len(p) > 0 {
		word = uint32(p[0])
	}
	if len(p) > 1 {
		word |= uint32(p[1]) << 8
	}

	return uint16(word<<q.bits | q.queue), nil
}

func (q *bitQueue) readBits(src io.ByteReader, n uint8) uint16 {
	if n > 16 {
		panic("decompression: bit queue read wider than 16 bits")
	}

	w := uint16(n)
	if w > q.bits {
		q.refill(src)
	}

	mask := uint32(1)<<w - 1
	v := uint16(q.queue & mask)

	q.queue >>= w
	q.bits -= w
	return v
}
