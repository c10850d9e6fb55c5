package sfx

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestBlipLengthAndDecay(t *testing.T) {
	sr := beep.SampleRate(1000)
	s := Blip(sr, 50, 100*time.Millisecond, 0.5)

	buf := make([][2]float64, 300)
	n, _ := s.Stream(buf)
	if n != 100 {
		t.Fatalf("Stream() = %d frames, expected 100", n)
	}
	for i := 0; i < n; i++ {
		if math.Abs(buf[i][0]) > 0.5 {
			t.Fatalf("frame %d = %f exceeds volume", i, buf[i][0])
		}
	}
	if _, ok := s.Stream(buf); ok {
		t.Error("Stream() after end should report exhausted")
	}
}
