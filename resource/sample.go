package resource

import (
	"encoding/binary"
	"io"
)

const DefaultSampleRate = 11025

// Sample is unsigned 8-bit mono PCM.
type Sample struct {
	Rate uint32
	Data []byte
}

func NewSample(b []byte) Sample {
	return Sample{Rate: DefaultSampleRate, Data: b}
}

func (s Sample) WriteWAV(w io.Writer) error {
	const (
		pcm           = 1
		channels      = 1
		bitsPerSample = 8
		blockAlign    = channels * bitsPerSample / 8
	)

	rate := s.Rate
	if rate == 0 {
		rate = DefaultSampleRate
	}

	header := struct {
		Riff       [4]byte
		RiffSize   uint32
		Wave       [4]byte
		Fmt        [4]byte
		FmtSize    uint32
		Format     uint16
		Channels   uint16
		Rate       uint32
		ByteRate   uint32
		BlockAlign uint16
		Bits       uint16
		DataTag    [4]byte
		DataSize   uint32
	}{
		Riff:       [4]byte{'R', 'I', 'F', 'F'},
		RiffSize:   uint32(len(s.Data)) + 36,
		Wave:       [4]byte{'W', 'A', 'V', 'E'},
		Fmt:        [4]byte{'f', 'm', 't', ' '},
		FmtSize:    16,
		Format:     pcm,
		Channels:   channels,
		Rate:       rate,
		ByteRate:   rate * blockAlign,
		BlockAlign: blockAlign,
		Bits:       bitsPerSample,
		DataTag:    [4]byte{'d', 'a', 't', 'a'},
		DataSize:   uint32(len(s.Data)),
	}

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	_, err := w.Write(s.Data)
	return err
}
