package decompression

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTableCanonical(t *testing.T) {
	table := buildTable([]uint16{2, 1, 3, 3})

	// canonical codes before reversal: 10, 0, 110, 111
	want := []huffmanNode{
		{code: 0b01, depth: 2},
		{code: 0b0, depth: 1},
		{code: 0b011, depth: 3},
		{code: 0b111, depth: 3},
	}
	assert.Equal(t, want, table[:4])
	for i := 4; i < len(table); i++ {
		assert.Zero(t, table[i].depth, "slot %d", i)
	}

	// shorter codes are numerically smaller and no code prefixes another
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			a, b := table[i], table[j]
			if i == j || a.depth > b.depth {
				continue
			}
			ca := reverseBits(a.code, a.depth)
			cb := reverseBits(b.code, b.depth)
			assert.NotEqual(t, ca, cb>>(b.depth-a.depth), "code %d prefixes code %d", i, j)
			if a.depth < b.depth {
				assert.Less(t, ca<<(b.depth-a.depth), cb)
			}
		}
	}
}

func TestBuildTableClampsLeaves(t *testing.T) {
	depths := make([]uint16, 20)
	for i := range depths {
		depths[i] = 4
	}
	table := buildTable(depths)
	for i, node := range table {
		assert.Equal(t, uint16(4), node.depth)
		assert.Equal(t, reverseBits(uint32(i), 4), node.code)
	}
}

func TestReverseBits(t *testing.T) {
	tests := []struct {
		v    uint32
		n    uint16
		want uint32
	}{
		{0b1, 1, 0b1},
		{0b10, 2, 0b01},
		{0b110, 3, 0b011},
		{0b1101, 4, 0b1011},
		{0x8001, 16, 0x8001},
		{0x0001, 16, 0x8000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, reverseBits(tt.v, tt.n), "reverseBits(%b, %d)", tt.v, tt.n)
	}
}

func newTestDecoder(data []byte) *Decoder {
	return NewDecoder(bufio.NewReader(bytes.NewReader(data)))
}

func TestReadTable(t *testing.T) {
	w := &rncWriter{}
	w.table([]uint16{2, 1, 3, 3})
	w.bits(0, 5)

	d := newTestDecoder(w.bytes())
	assert.Equal(t, buildTable([]uint16{2, 1, 3, 3}), d.readTable())
	assert.Equal(t, huffmanTable{}, d.readTable())
}

func TestReadValueEscapes(t *testing.T) {
	depths := []uint16{4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4}
	table := buildTable(depths)

	w := &rncWriter{}
	w.value(table, 0)
	w.value(table, 1)
	w.bits(table[5].code, 4)
	w.bits(0b1010, 4)
	w.value(table, 31)
	w.value(table, 2)
	w.value(table, 1<<14)

	d := newTestDecoder(w.bytes())
	for _, want := range []uint16{0, 1, 0b11010, 31, 2, 1 << 14} {
		got, err := d.readValue(&table, "test")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestReadValueIndexFiveRange(t *testing.T) {
	table := buildTable([]uint16{0, 0, 0, 0, 0, 1})
	for extra := uint32(0); extra < 16; extra++ {
		w := &rncWriter{}
		w.bits(table[5].code, 1)
		w.bits(extra, 4)

		got, err := newTestDecoder(w.bytes()).readValue(&table, "test")
		require.NoError(t, err)
		assert.Equal(t, uint16(16+extra), got)
	}
}

func TestReadValueNoMatch(t *testing.T) {
	table := buildTable([]uint16{2})

	w := &rncWriter{}
	w.bits(0b11, 2)
	_, err := newTestDecoder(w.bytes()).readValue(&table, "literal")
	assert.ErrorIs(t, err, ErrNoMatch)

	var empty huffmanTable
	_, err = newTestDecoder(w.bytes()).readValue(&empty, "literal")
	assert.ErrorIs(t, err, ErrNoMatch)
}
