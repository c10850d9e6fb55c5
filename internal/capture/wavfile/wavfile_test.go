package wavfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/hakusyu/internal/capture"
)

// writeTone encodes one second of a constant-level signal.
func writeTone(t *testing.T, path string, level float64) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}
	tone := beep.Take(8000, beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{level, level}
		}
		return len(samples), true
	}))
	if err := wav.Encode(f, tone, format); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
}

func TestDevicesSkipEmptyPaths(t *testing.T) {
	b := New(time.Millisecond, "", "/tmp/a.wav")
	devs, err := b.Devices()
	if err != nil {
		t.Fatalf("Devices() error = %v", err)
	}
	if len(devs) != 1 || devs[0].Name != "WAV replay: a.wav" {
		t.Errorf("Devices() = %+v, expected one a.wav device", devs)
	}
}

func TestOpenMissingFile(t *testing.T) {
	b := New(time.Millisecond)
	_, err := b.Open(capture.Device{ID: filepath.Join(t.TempDir(), "nope.wav")}, capture.Format{SampleRate: 8000, Channels: 1})
	if err == nil {
		t.Error("Open() should fail for a missing file")
	}
}

func TestReplayFeedsBuffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	writeTone(t, path, 0.5)

	b := New(time.Millisecond, path)
	devs, _ := b.Devices()
	src, err := b.Open(devs[0], capture.Format{SampleRate: 8000, Channels: 1})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	buf := capture.NewBuffer(200)
	buf.Resume()
	if err := src.Start(buf); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for buf.Len() < buf.Cap() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if err := src.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	buf.Pause()

	if buf.Len() != buf.Cap() {
		t.Fatalf("Len() = %d, expected %d", buf.Len(), buf.Cap())
	}
	want := decodedLevel(t, path)
	if want == 0 {
		t.Fatal("decoded tone is silent")
	}
	for i, v := range buf.Samples() {
		if v != want {
			t.Fatalf("Samples()[%d] = %d, expected %d", i, v, want)
		}
	}
}

// decodedLevel returns the first frame of path as the mono sample the
// replay source should produce.
func decodedLevel(t *testing.T, path string) int16 {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	streamer, _, err := wav.Decode(f)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer streamer.Close()

	frame := make([][2]float64, 1)
	if n, _ := streamer.Stream(frame); n != 1 {
		t.Fatalf("Stream() = %d frames, expected 1", n)
	}
	return capture.Interleave(nil, frame, 1)[0]
}
