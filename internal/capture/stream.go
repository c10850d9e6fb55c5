package capture

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep"
)

// StreamSource adapts a beep.Streamer into a Source. Frames are pulled at
// wall-clock pace, one chunk per tick, and written to the sink as
// interleaved 16-bit samples.
type StreamSource struct {
	name     string
	streamer beep.Streamer
	format   Format
	chunk    time.Duration
	closer   func() error

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	closed bool
}

// NewStreamSource wraps s. The closer, if non-nil, runs once on Close.
func NewStreamSource(name string, s beep.Streamer, format Format, chunk time.Duration, closer func() error) *StreamSource {
	if chunk <= 0 {
		chunk = 10 * time.Millisecond
	}
	if format.Channels < 1 {
		format.Channels = 1
	}
	return &StreamSource{
		name:     name,
		streamer: s,
		format:   format,
		chunk:    chunk,
		closer:   closer,
	}
}

// Name implements Source.
func (s *StreamSource) Name() string { return s.name }

// Start implements Source.
func (s *StreamSource) Start(sink Sink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx, sink)
	return nil
}

func (s *StreamSource) run(ctx context.Context, sink Sink) {
	defer close(s.done)

	frames := beep.SampleRate(s.format.SampleRate).N(s.chunk)
	if frames < 1 {
		frames = 1
	}
	buf := make([][2]float64, frames)
	out := make([]int16, 0, frames*s.format.Channels)

	ticker := time.NewTicker(s.chunk)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		n, ok := s.streamer.Stream(buf)
		out = Interleave(out[:0], buf[:n], s.format.Channels)
		if len(out) > 0 {
			sink.Write(out)
		}
		if !ok {
			return
		}
	}
}

// Close implements Source. It waits for the pump goroutine to exit.
func (s *StreamSource) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	if s.closer != nil {
		return s.closer()
	}
	return nil
}

// Interleave converts stereo float frames into 16-bit samples with the given
// channel count. Mono output averages both sides; extra channels repeat the
// left side.
func Interleave(dst []int16, frames [][2]float64, channels int) []int16 {
	for _, f := range frames {
		switch channels {
		case 1:
			dst = append(dst, floatToS16((f[0]+f[1])/2))
		default:
			dst = append(dst, floatToS16(f[0]), floatToS16(f[1]))
			for c := 2; c < channels; c++ {
				dst = append(dst, floatToS16(f[0]))
			}
		}
	}
	return dst
}
