package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

var ErrUnsupportedFormat = errors.New("unsupported audio format")

// EncodeWAV wraps mono 16-bit samples in a canonical RIFF/WAVE header.
func EncodeWAV(samples []int16, sampleRate int) []byte {
	var buf bytes.Buffer

	dataSize := len(samples) * 2
	fileSize := 36 + dataSize

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, int32(fileSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, int32(16))
	binary.Write(&buf, binary.LittleEndian, int16(1))
	binary.Write(&buf, binary.LittleEndian, int16(1))
	binary.Write(&buf, binary.LittleEndian, int32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, int32(sampleRate*2))
	binary.Write(&buf, binary.LittleEndian, int16(2))
	binary.Write(&buf, binary.LittleEndian, int16(16))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, int32(dataSize))
	binary.Write(&buf, binary.LittleEndian, samples)

	return buf.Bytes()
}

// PCM is decoded 16-bit audio, interleaved when Channels > 1.
type PCM struct {
	Samples    []int16
	SampleRate int
	Channels   int
}

// DecodeWAV reads a 16-bit PCM WAV file. Chunks other than "fmt " and
// "data" are skipped.
func DecodeWAV(data []byte) (PCM, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return PCM{}, fmt.Errorf("%w: not a RIFF/WAVE file", ErrUnsupportedFormat)
	}

	var (
		pcm           PCM
		haveFmt       bool
		bitsPerSample uint16
	)

	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		pos += 8
		if size < 0 || pos+size > len(data) {
			size = len(data) - pos
		}
		chunk := data[pos : pos+size]

		switch id {
		case "fmt ":
			if len(chunk) < 16 {
				return PCM{}, fmt.Errorf("%w: short fmt chunk", ErrUnsupportedFormat)
			}
			if format := binary.LittleEndian.Uint16(chunk[0:2]); format != 1 {
				return PCM{}, fmt.Errorf("%w: encoding %d", ErrUnsupportedFormat, format)
			}
			pcm.Channels = int(binary.LittleEndian.Uint16(chunk[2:4]))
			pcm.SampleRate = int(binary.LittleEndian.Uint32(chunk[4:8]))
			bitsPerSample = binary.LittleEndian.Uint16(chunk[14:16])
			haveFmt = true
		case "data":
			if !haveFmt {
				return PCM{}, fmt.Errorf("%w: data before fmt", ErrUnsupportedFormat)
			}
			if bitsPerSample != 16 {
				return PCM{}, fmt.Errorf("%w: %d bits per sample", ErrUnsupportedFormat, bitsPerSample)
			}
			pcm.Samples = make([]int16, len(chunk)/2)
			for i := range pcm.Samples {
				pcm.Samples[i] = int16(binary.LittleEndian.Uint16(chunk[i*2:]))
			}
			return pcm, nil
		}

		pos += size + size%2
	}

	return PCM{}, fmt.Errorf("%w: no data chunk", ErrUnsupportedFormat)
}
