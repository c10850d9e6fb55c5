package capture

import (
	"encoding/binary"
	"io"
	"time"
)

// Format describes the interleaved sample layout produced by a source.
type Format struct {
	SampleRate int
	Channels   int
}

// SamplesFor returns how many interleaved samples cover d.
func (f Format) SamplesFor(d time.Duration) int {
	return int(int64(f.SampleRate) * int64(f.Channels) * int64(d) / int64(time.Second))
}

// decodeS16LE converts little-endian 16-bit PCM bytes into samples.
// A trailing odd byte is returned so the caller can prepend it to the next read.
func decodeS16LE(dst []int16, src []byte) ([]int16, []byte) {
	n := len(src) / 2
	for i := 0; i < n; i++ {
		dst = append(dst, int16(binary.LittleEndian.Uint16(src[2*i:])))
	}
	return dst, src[2*n:]
}

// floatToS16 converts a [-1, 1] sample to 16-bit PCM, clipping overflow.
func floatToS16(v float64) int16 {
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	return int16(v * 32767)
}

// ReadS16LE decodes raw little-endian PCM from r into sink until EOF.
func ReadS16LE(r io.Reader, sink Sink) error {
	raw := make([]byte, 4096)
	samples := make([]int16, 0, len(raw)/2)
	var carry []byte
	for {
		n, err := r.Read(raw[len(carry):])
		if n > 0 {
			chunk := raw[:len(carry)+n]
			samples, carry = decodeS16LE(samples[:0], chunk)
			if len(samples) > 0 {
				sink.Write(samples)
			}
			// At most one byte is carried; move it to the front.
			copy(raw, carry)
			carry = raw[:len(carry)]
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
