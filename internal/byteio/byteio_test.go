package byteio

import (
	"bytes"
	"io"
	"testing"
)

func TestWidths(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{
		0x7f,
		0x34, 0x12,
		0xfe, 0xff,
		0x56, 0x34, 0x12,
		0x78, 0x56, 0x34, 0x12,
		0x12, 0x34,
		0x12, 0x34, 0x56, 0x78,
	}))

	if v, err := r.U8(); err != nil || v != 0x7f {
		t.Fatalf("U8: %#x, %v", v, err)
	}
	if v, err := r.LEU16(); err != nil || v != 0x1234 {
		t.Fatalf("LEU16: %#x, %v", v, err)
	}
	if v, err := r.LEI16(); err != nil || v != -2 {
		t.Fatalf("LEI16: %d, %v", v, err)
	}
	if v, err := r.LEU24(); err != nil || v != 0x123456 {
		t.Fatalf("LEU24: %#x, %v", v, err)
	}
	if v, err := r.LEU32(); err != nil || v != 0x12345678 {
		t.Fatalf("LEU32: %#x, %v", v, err)
	}
	if v, err := r.BEU16(); err != nil || v != 0x1234 {
		t.Fatalf("BEU16: %#x, %v", v, err)
	}
	if v, err := r.BEU32(); err != nil || v != 0x12345678 {
		t.Fatalf("BEU32: %#x, %v", v, err)
	}
	if _, err := r.U8(); err != io.EOF {
		t.Fatalf("expected(io.EOF) != actual(%v)", err)
	}
}

func TestTruncated(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x01, 0x02}))
	if _, err := r.LEU24(); err != io.ErrUnexpectedEOF {
		t.Fatalf("expected(io.ErrUnexpectedEOF) != actual(%v)", err)
	}
}
