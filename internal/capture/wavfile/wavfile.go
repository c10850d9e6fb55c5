// Package wavfile replays a WAV recording as if it were a live microphone.
package wavfile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/hakusyu/internal/capture"
)

// BackendName is the registry key for this backend.
const BackendName = "wav"

// Backend exposes one device per configured file.
type Backend struct {
	paths []string
	chunk time.Duration
}

// New creates a backend over the given files. Empty paths are ignored.
func New(chunk time.Duration, paths ...string) *Backend {
	b := &Backend{chunk: chunk}
	for _, p := range paths {
		if p != "" {
			b.paths = append(b.paths, p)
		}
	}
	return b
}

// Devices implements capture.Backend.
func (b *Backend) Devices() ([]capture.Device, error) {
	devs := make([]capture.Device, 0, len(b.paths))
	for _, p := range b.paths {
		devs = append(devs, capture.Device{
			Backend: BackendName,
			ID:      p,
			Name:    "WAV replay: " + filepath.Base(p),
		})
	}
	return devs, nil
}

// Open implements capture.Backend. The file loops forever and is resampled
// to the requested rate when it differs.
func (b *Backend) Open(dev capture.Device, format capture.Format) (capture.Source, error) {
	f, err := os.Open(dev.ID)
	if err != nil {
		return nil, fmt.Errorf("wav: cannot open %s: %w", dev.ID, err)
	}
	streamer, fileFormat, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("wav: cannot decode %s: %w", dev.ID, err)
	}

	var s beep.Streamer = beep.Loop(-1, streamer)
	want := beep.SampleRate(format.SampleRate)
	if fileFormat.SampleRate != want {
		s = beep.Resample(4, fileFormat.SampleRate, want, s)
	}
	return capture.NewStreamSource(dev.Name, s, format, b.chunk, streamer.Close), nil
}
