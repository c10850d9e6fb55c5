// Package amplitude turns captured audio into one loudness value per closed
// window and maps it onto [0, 1] through a two-point calibration.
package amplitude

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/hakusyu/internal/capture"
)

// ErrNotActivated is returned when recording before a device is bound.
var ErrNotActivated = errors.New("amplitude: no capture device activated")

// State is the recording lifecycle.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Timing sizes the capture buffer and the recording windows.
type Timing struct {
	Buffer        time.Duration // Total capture buffer
	MaxRecord     time.Duration // Window is force-closed past this
	SuggestedClip time.Duration // Game loop closes the window past this
}

// DefaultTiming returns a 2s buffer, 1s max window and 10ms suggested clip.
func DefaultTiming() Timing {
	return Timing{
		Buffer:        2 * time.Second,
		MaxRecord:     time.Second,
		SuggestedClip: 10 * time.Millisecond,
	}
}

// Recorder owns one capture source and its buffer. All methods are called
// from the game loop; only the source's producer runs concurrently, and it
// only touches the buffer.
type Recorder struct {
	format capture.Format
	timing Timing

	src    capture.Source
	buf    *capture.Buffer
	state  State
	window int     // Samples in the last closed window
	avg    float64 // Mean |sample| of the last closed window

	maxSamples     int
	suggestSamples int

	cal Calibration
}

// NewRecorder creates an unbound recorder.
func NewRecorder(format capture.Format, timing Timing) *Recorder {
	return &Recorder{
		format:         format,
		timing:         timing,
		maxSamples:     format.SamplesFor(timing.MaxRecord),
		suggestSamples: format.SamplesFor(timing.SuggestedClip),
	}
}

// Format returns the capture format.
func (r *Recorder) Format() capture.Format { return r.format }

// Activate binds src, replacing any previous source. The source starts
// producing immediately, but nothing is kept until StartRecording.
func (r *Recorder) Activate(src capture.Source) error {
	if r.src != nil {
		r.src.Close()
	}
	r.buf = capture.NewBuffer(r.format.SamplesFor(r.timing.Buffer))
	r.src = src
	r.state = StateIdle
	r.window = 0
	r.avg = 0
	if err := src.Start(r.buf); err != nil {
		r.src = nil
		r.buf = nil
		return fmt.Errorf("amplitude: cannot start %s: %w", src.Name(), err)
	}
	return nil
}

// Active reports whether a source is bound.
func (r *Recorder) Active() bool { return r.src != nil }

// Source returns the bound source, or nil.
func (r *Recorder) Source() capture.Source { return r.src }

// State returns the recording state.
func (r *Recorder) State() State { return r.state }

// StartRecording opens a new window. It does nothing while already recording.
func (r *Recorder) StartRecording() error {
	if r.buf == nil {
		return ErrNotActivated
	}
	if r.state == StateRecording {
		return nil
	}
	r.buf.Resume()
	r.state = StateRecording
	return nil
}

// StopRecording closes the current window and computes its average.
func (r *Recorder) StopRecording() {
	if r.buf == nil || r.state != StateRecording {
		return
	}
	r.buf.Pause()
	samples := r.buf.Samples()
	r.window = len(samples)
	r.avg = meanAbs(samples)
	r.state = StateStopped
}

// Tick force-closes a window that ran past the maximum record length.
func (r *Recorder) Tick() {
	if r.state == StateRecording && r.buf.Len() > r.maxSamples {
		r.StopRecording()
	}
}

// Captured returns the number of samples in the current or last window.
func (r *Recorder) Captured() int {
	if r.state == StateRecording {
		return r.buf.Len()
	}
	return r.window
}

// ClipReady reports whether the open window has passed the suggested clip.
func (r *Recorder) ClipReady() bool {
	return r.state == StateRecording && r.buf.Len() > r.suggestSamples
}

// SuggestedClip returns the suggested window length in samples.
func (r *Recorder) SuggestedClip() int { return r.suggestSamples }

// MaxRecord returns the forced window length in samples.
func (r *Recorder) MaxRecord() int { return r.maxSamples }

// CanStartRecording reports whether a new window can be opened.
func (r *Recorder) CanStartRecording() bool {
	return r.buf != nil && (r.state == StateIdle || r.state == StateStopped)
}

// HasStopped reports whether a closed window is waiting to be consumed.
func (r *Recorder) HasStopped() bool { return r.state == StateStopped }

// AverageAmplitude returns the mean absolute sample of the last closed window,
// or 0 when it was empty or dropped.
func (r *Recorder) AverageAmplitude() float64 { return r.avg }

// DropRecordingResult discards the last closed window.
func (r *Recorder) DropRecordingResult() {
	r.window = 0
	r.avg = 0
}

// Calibrate stores the calibration. A degenerate pair is stored anyway, and
// reported with ErrDegenerateCalibration.
func (r *Recorder) Calibrate(min, max float64) error {
	r.cal = Calibration{Min: min, Max: max}
	return r.cal.Validate()
}

// Calibration returns the stored calibration.
func (r *Recorder) Calibration() Calibration { return r.cal }

// Normalize maps raw through the stored calibration.
func (r *Recorder) Normalize(raw float64) float64 { return r.cal.Normalize(raw) }

// Close releases the source.
func (r *Recorder) Close() error {
	if r.src == nil {
		return nil
	}
	err := r.src.Close()
	r.src = nil
	r.buf = nil
	r.state = StateIdle
	return err
}

func meanAbs(samples []int16) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum int64
	for _, s := range samples {
		v := int64(s)
		if v < 0 {
			v = -v
		}
		sum += v
	}
	return float64(sum) / float64(len(samples))
}
