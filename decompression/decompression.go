package decompression

import (
	"io"
)

type Method uint8

const (
	MethodNone Method = iota
	MethodRNC1
)

func (m Method) String() string {
	switch m {
	case MethodNone:
		return "Method(None)"
	case MethodRNC1:
		return "Method(RNC1)"
	}
	return "Method(UNKNOWN)"
}

type Decompressor = func(src io.Reader) ([]byte, error)

type LUT map[Method]Decompressor

func DecompressNone(src io.Reader) ([]byte, error) {
	return io.ReadAll(src)
}

func DecompressRNC1(src io.Reader) ([]byte, error) {
	return NewDecoder(src).Decode()
}

var Decompressors = LUT{
	MethodNone: DecompressNone,
	MethodRNC1: DecompressRNC1,
}
