package decompression

import "errors"

var (
	ErrSignature = errors.New("rnc1: invalid signature")
	ErrNoMatch   = errors.New("rnc1: no huffman code matches the input")
	ErrDistance  = errors.New("rnc1: match distance reaches before the start of the output")
)
