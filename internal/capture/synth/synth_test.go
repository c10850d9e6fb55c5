package synth

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/hakusyu/internal/capture"
)

func meanAbs(frames [][2]float64) float64 {
	var sum float64
	for _, f := range frames {
		sum += math.Abs(f[0])
	}
	return sum / float64(len(frames))
}

func testOptions() Options {
	return Options{
		Floor:    0.02,
		Peak:     0.9,
		Decay:    100 * time.Millisecond,
		Seed:     7,
		Interval: time.Millisecond,
	}
}

func TestGeneratorFloorStaysQuiet(t *testing.T) {
	g := NewGenerator(beep.SampleRate(8000), testOptions())
	frames := make([][2]float64, 800)
	g.Stream(frames)

	for i, f := range frames {
		if math.Abs(f[0]) > 0.02 {
			t.Fatalf("frame %d = %f, expected within noise floor", i, f[0])
		}
	}
}

func TestGeneratorClapIsLouder(t *testing.T) {
	g := NewGenerator(beep.SampleRate(8000), testOptions())
	quiet := make([][2]float64, 80)
	g.Stream(quiet)

	g.Clap()
	loud := make([][2]float64, 80)
	g.Stream(loud)

	if meanAbs(loud) <= 5*meanAbs(quiet) {
		t.Errorf("clap mean %f not clearly above floor mean %f", meanAbs(loud), meanAbs(quiet))
	}
}

func TestGeneratorEnvelopeDecays(t *testing.T) {
	g := NewGenerator(beep.SampleRate(8000), testOptions())
	g.Clap()
	if g.Level() != 1 {
		t.Fatalf("Level() after Clap = %f, expected 1", g.Level())
	}

	// 100ms at 8kHz is 800 frames; stream past it.
	frames := make([][2]float64, 1000)
	g.Stream(frames)
	if g.Level() != 0 {
		t.Errorf("Level() after decay = %f, expected 0", g.Level())
	}
}

func TestSourceImplementsClapper(t *testing.T) {
	b := New(testOptions())
	devs, err := b.Devices()
	if err != nil || len(devs) != 1 {
		t.Fatalf("Devices() = %v, %v; expected one device", devs, err)
	}
	src, err := b.Open(devs[0], capture.Format{SampleRate: 8000, Channels: 2})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	if _, ok := src.(capture.Clapper); !ok {
		t.Error("synth source should implement capture.Clapper")
	}
}
