package config

import (
	_ "embed"
)

//go:embed defaults/hakusyu.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in tuning.
func DefaultConfig() Config {
	return Config{
		Viewport: Viewport{
			Width:  800,
			Height: 680,
		},
		Character: Character{
			X:      80,
			Width:  32,
			Height: 32,
		},
		Physics: DefaultPhysics(),
		Blocks: Blocks{
			Division:  6,
			MinWidth:  0.3,
			MaxWidth:  0.6,
			MinHeight: 0.2,
			MaxHeight: 0.6,
			GapMin:    0,
			GapMax:    0,
		},
		Capture: Capture{
			SampleRate:         44100,
			Channels:           2,
			BufferMS:           2000,
			MaxRecordMS:        1000,
			SuggestedClipMS:    10,
			CalibrationDelayMS: 2000,
		},
		Backends: []string{"system", "synth"},
	}
}

// DefaultPhysics returns the reference physics tuning.
func DefaultPhysics() Physics {
	return Physics{
		Gravity:           500,
		DragX:             0.05,
		DragY:             0.001,
		VerticalImpulse:   50,
		HorizontalImpulse: 30,
	}
}
