package game

import (
	"github.com/vovakirdan/hakusyu/internal/amplitude"
	"github.com/vovakirdan/hakusyu/internal/blocks"
	"github.com/vovakirdan/hakusyu/internal/core"
	"github.com/vovakirdan/hakusyu/internal/physics"
)

// Snapshot is a copy of everything a renderer or test needs.
type Snapshot struct {
	State       State
	Score       int
	Blocks      []blocks.Block
	Character   core.Rect
	LastHit     physics.HitResult
	Loudness    float64 // Normalized loudness of the last closed window
	EndReason   EndReason
	Calibration amplitude.Calibration
	Device      string
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:       s.state,
		Score:       s.score,
		Blocks:      s.stream.Blocks(),
		Character:   s.body.Box(),
		LastHit:     s.lastHit,
		Loudness:    s.lastNorm,
		EndReason:   s.endReason,
		Calibration: s.recorder.Calibration(),
		Device:      s.device.Name,
	}
}
