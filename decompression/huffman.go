package decompression

import "fmt"

const maxLeaves = 16

type huffmanNode struct {
	code  uint32
	depth uint16
}

// huffmanTable is indexed by symbol. Symbols 0 and 1 decode to themselves;
// any higher symbol i names a value of i-1 extra bits with an implied
// leading one.
type huffmanTable [maxLeaves]huffmanNode

// buildTable assigns canonical codes to the given depths. The stored code
// is bit-reversed over its own depth because the bit queue hands out the
// least significant bit first.
func buildTable(depths []uint16) huffmanTable {
	var table huffmanTable
	if len(depths) > maxLeaves {
		depths = depths[:maxLeaves]
	}
	for i, depth := range depths {
		table[i].depth = depth
	}

	var val uint32
	div := uint32(0x8000_0000)
	for depth := uint16(1); depth <= 16; depth++ {
		for i := range depths {
			if table[i].depth != depth {
				continue
			}
			table[i].code = reverseBits(val/div, depth)
			val += div
		}
		div >>= 1
	}

	return table
}

func reverseBits(v uint32, n uint16) uint32 {
	var r uint32
	for i := uint16(0); i < n; i++ {
		r = r<<1 | v&1
		v >>= 1
	}
	return r
}

func (d *Decoder) readTable() huffmanTable {
	leaves := d.queue.readBits(d.src, 5)
	if leaves > maxLeaves {
		leaves = maxLeaves
	}
	if leaves == 0 {
		return huffmanTable{}
	}

	depths := make([]uint16, leaves)
	for i := range depths {
		depths[i] = d.queue.readBits(d.src, 4)
	}
	return buildTable(depths)
}

func (d *Decoder) readValue(table *huffmanTable, name string) (uint16, error) {
	peek, err := d.queue.peek(d.src)
	if err != nil {
		return 0, err
	}

	for i := range table {
		node := table[i]
		if node.depth == 0 {
			continue
		}

		mask := uint32(1)<<node.depth - 1
		if node.code != uint32(peek)&mask {
			continue
		}

		d.queue.readBits(d.src, uint8(node.depth))
		if i < 2 {
			return uint16(i), nil
		}

		extra := d.queue.readBits(d.src, uint8(i-1))
		return extra | 1<<uint(i-1), nil
	}

	return 0, fmt.Errorf("%s table: %w", name, ErrNoMatch)
}
