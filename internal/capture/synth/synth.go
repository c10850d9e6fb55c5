// Package synth is a capture backend that needs no microphone. It produces a
// low noise floor and turns each Clap into a short decaying noise burst, so
// the game can be played from a keyboard or over SSH.
package synth

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/hakusyu/internal/capture"
)

// BackendName is the registry key for this backend.
const BackendName = "synth"

// Options tunes the generated signal.
type Options struct {
	Floor    float64       // Noise floor amplitude in [0, 1]
	Peak     float64       // Burst amplitude in [0, 1]
	Decay    time.Duration // Burst length
	Seed     int64
	Interval time.Duration // Pump chunk length
}

// DefaultOptions returns a quiet floor with 150ms claps.
func DefaultOptions() Options {
	return Options{
		Floor:    0.02,
		Peak:     0.9,
		Decay:    150 * time.Millisecond,
		Seed:     time.Now().UnixNano(),
		Interval: 10 * time.Millisecond,
	}
}

// Backend exposes a single synthetic device.
type Backend struct {
	opts Options
}

// New creates a synth backend.
func New(opts Options) *Backend {
	return &Backend{opts: opts}
}

// Devices implements capture.Backend.
func (b *Backend) Devices() ([]capture.Device, error) {
	return []capture.Device{{
		Backend: BackendName,
		ID:      "clap",
		Name:    "Keyboard clap synthesizer",
	}}, nil
}

// Open implements capture.Backend.
func (b *Backend) Open(dev capture.Device, format capture.Format) (capture.Source, error) {
	gen := NewGenerator(beep.SampleRate(format.SampleRate), b.opts)
	return &Source{
		StreamSource: capture.NewStreamSource(dev.Name, gen, format, b.opts.Interval, nil),
		gen:          gen,
	}, nil
}

// Source is a capture.Source that also implements capture.Clapper.
type Source struct {
	*capture.StreamSource
	gen *Generator
}

// Clap triggers a burst.
func (s *Source) Clap() { s.gen.Clap() }

// Generator is an endless beep.Streamer of noise shaped by a clap envelope.
type Generator struct {
	sr   beep.SampleRate
	opts Options
	rng  *rand.Rand

	mu       sync.Mutex
	envelope *gween.Tween
	level    float32
}

// NewGenerator creates a generator at the given sample rate.
func NewGenerator(sr beep.SampleRate, opts Options) *Generator {
	return &Generator{
		sr:   sr,
		opts: opts,
		rng:  rand.New(rand.NewSource(opts.Seed)),
	}
}

// Clap restarts the envelope at full level.
func (g *Generator) Clap() {
	g.mu.Lock()
	g.envelope = gween.New(1, 0, float32(g.opts.Decay.Seconds()), ease.OutQuad)
	g.level = 1
	g.mu.Unlock()
}

// Level returns the current envelope level in [0, 1].
func (g *Generator) Level() float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.level
}

// Stream implements beep.Streamer.
func (g *Generator) Stream(samples [][2]float64) (n int, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	dt := float32(1 / float64(g.sr))
	for i := range samples {
		if g.envelope != nil {
			level, finished := g.envelope.Update(dt)
			g.level = level
			if finished {
				g.envelope = nil
				g.level = 0
			}
		}
		amp := g.opts.Floor + float64(g.level)*(g.opts.Peak-g.opts.Floor)
		v := amp * (g.rng.Float64()*2 - 1)
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (g *Generator) Err() error { return nil }
