package recorder

import (
	"bytes"
	"encoding/binary"
	"math"
)

const (
	wavHeaderSize    = 44
	wavBitsPerSample = 16
	wavBytesPerSamp  = wavBitsPerSample / 8
	wavFormatPCM     = 1
)

// wavHeader is the 44-byte RIFF/WAVE header for uncompressed PCM.
type wavHeader struct {
	RiffID   [4]byte
	RiffSize uint32
	WaveID   [4]byte

	FmtID         [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16

	DataID   [4]byte
	DataSize uint32
}

// EncodeWAV serializes captured samples into a complete 16-bit PCM WAV
// payload. Samples are clamped to [-1.0, 1.0] and scaled to signed 16-bit
// little-endian. The function is pure: identical input yields byte-identical
// output.
func EncodeWAV(format Format, samples []float32) []byte {
	dataSize := uint32(len(samples) * wavBytesPerSamp)

	h := wavHeader{
		RiffID:        [4]byte{'R', 'I', 'F', 'F'},
		RiffSize:      wavHeaderSize - 8 + dataSize,
		WaveID:        [4]byte{'W', 'A', 'V', 'E'},
		FmtID:         [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   wavFormatPCM,
		NumChannels:   uint16(format.Channels),
		SampleRate:    uint32(format.SampleRate),
		ByteRate:      uint32(format.SampleRate * format.Channels * wavBytesPerSamp),
		BlockAlign:    uint16(format.Channels * wavBytesPerSamp),
		BitsPerSample: wavBitsPerSample,
		DataID:        [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}

	buf := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+int(dataSize)))
	// Writing fixed-size values into a bytes.Buffer cannot fail.
	_ = binary.Write(buf, binary.LittleEndian, &h)

	for _, s := range samples {
		clamped := s
		if clamped > 1.0 {
			clamped = 1.0
		} else if clamped < -1.0 {
			clamped = -1.0
		}
		val := int16(math.Round(float64(clamped) * 32767.0))
		_ = binary.Write(buf, binary.LittleEndian, val)
	}

	return buf.Bytes()
}
