// Package config provides YAML-based tuning configuration and difficulty
// presets for the game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config contains all tunable values of a session.
type Config struct {
	Viewport  Viewport  `yaml:"viewport"`
	Character Character `yaml:"character"`
	Physics   Physics   `yaml:"physics"`
	Blocks    Blocks    `yaml:"blocks"`
	Capture   Capture   `yaml:"capture"`
	Backends  []string  `yaml:"backends"` // Capture backends, enumerated in order
}

// Viewport is the logical playfield in pixels.
type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Character is the player box. X is fixed for the whole session.
type Character struct {
	X      int `yaml:"x"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Physics defines forces and impulse scaling.
type Physics struct {
	Gravity           float64 `yaml:"gravity"`
	DragX             float64 `yaml:"drag_x"`
	DragY             float64 `yaml:"drag_y"`
	VerticalImpulse   float64 `yaml:"vertical_impulse"`   // Upward impulse at full loudness
	HorizontalImpulse float64 `yaml:"horizontal_impulse"` // Forward impulse at full loudness
}

// Blocks defines block generation. Widths are fractions of the lane width
// (viewport width / division), heights fractions of the viewport height.
type Blocks struct {
	Division  int     `yaml:"division"`
	MinWidth  float64 `yaml:"min_width"`
	MaxWidth  float64 `yaml:"max_width"`
	MinHeight float64 `yaml:"min_height"`
	MaxHeight float64 `yaml:"max_height"`
	GapMin    int     `yaml:"gap_min"`
	GapMax    int     `yaml:"gap_max"`
}

// Capture defines the audio format and window lengths.
type Capture struct {
	SampleRate         int `yaml:"sample_rate"`
	Channels           int `yaml:"channels"`
	BufferMS           int `yaml:"buffer_ms"`
	MaxRecordMS        int `yaml:"max_record_ms"`
	SuggestedClipMS    int `yaml:"suggested_clip_ms"`
	CalibrationDelayMS int `yaml:"calibration_delay_ms"`
}

// Buffer returns the capture buffer length.
func (c Capture) Buffer() time.Duration { return ms(c.BufferMS) }

// MaxRecord returns the forced window length.
func (c Capture) MaxRecord() time.Duration { return ms(c.MaxRecordMS) }

// SuggestedClip returns the gameplay window length.
func (c Capture) SuggestedClip() time.Duration { return ms(c.SuggestedClipMS) }

// CalibrationDelay returns the pause before the loud calibration window.
func (c Capture) CalibrationDelay() time.Duration { return ms(c.CalibrationDelayMS) }

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }

// Validate rejects values the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Viewport.Width > 0 && c.Viewport.Height > 0,
		"viewport must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height)
	check(c.Character.Width > 0 && c.Character.Height > 0,
		"character size must be positive, got %dx%d", c.Character.Width, c.Character.Height)
	check(c.Character.X >= 0 && c.Character.X < c.Viewport.Width,
		"character x %d outside viewport", c.Character.X)
	check(c.Character.Height < c.Viewport.Height,
		"character height %d does not fit viewport", c.Character.Height)
	check(c.Physics.DragX >= 0 && c.Physics.DragY >= 0, "drag must not be negative")
	check(c.Blocks.Division > 0, "blocks.division must be positive, got %d", c.Blocks.Division)
	check(c.Blocks.MinWidth > 0 && c.Blocks.MinWidth <= c.Blocks.MaxWidth,
		"blocks width range [%g, %g] is invalid", c.Blocks.MinWidth, c.Blocks.MaxWidth)
	check(c.Blocks.MinHeight > 0 && c.Blocks.MinHeight <= c.Blocks.MaxHeight && c.Blocks.MaxHeight < 1,
		"blocks height range [%g, %g] is invalid", c.Blocks.MinHeight, c.Blocks.MaxHeight)
	check(c.Blocks.GapMin >= 0 && c.Blocks.GapMin <= c.Blocks.GapMax,
		"blocks gap range [%d, %d] is invalid", c.Blocks.GapMin, c.Blocks.GapMax)
	check(c.Capture.SampleRate > 0 && c.Capture.Channels > 0,
		"capture format %d Hz x %d must be positive", c.Capture.SampleRate, c.Capture.Channels)
	check(c.Capture.SuggestedClipMS > 0 && c.Capture.SuggestedClipMS <= c.Capture.MaxRecordMS,
		"capture.suggested_clip_ms %d must be in (0, max_record_ms]", c.Capture.SuggestedClipMS)
	check(c.Capture.MaxRecordMS < c.Capture.BufferMS,
		"capture.max_record_ms %d must be below buffer_ms %d", c.Capture.MaxRecordMS, c.Capture.BufferMS)
	check(c.Capture.CalibrationDelayMS >= 0, "capture.calibration_delay_ms must not be negative")
	check(len(c.Backends) > 0, "at least one capture backend is required")

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
