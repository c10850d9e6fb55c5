package amplitude

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/hakusyu/internal/core"
)

// ErrDegenerateCalibration is returned when max does not exceed min.
var ErrDegenerateCalibration = errors.New("amplitude: calibration max must exceed min")

// Calibration maps raw averages onto [0, 1]: Min maps to 0, Max to 1.
type Calibration struct {
	Min float64
	Max float64
}

// Validate reports ErrDegenerateCalibration when Max <= Min.
func (c Calibration) Validate() error {
	if c.Max <= c.Min {
		return fmt.Errorf("%w (min %.2f, max %.2f)", ErrDegenerateCalibration, c.Min, c.Max)
	}
	return nil
}

// Normalize returns (raw-Min)/(Max-Min) clamped to [0, 1]. With a degenerate
// calibration anything above Min saturates to 1.
func (c Calibration) Normalize(raw float64) float64 {
	if c.Max <= c.Min {
		if raw > c.Min {
			return 1
		}
		return 0
	}
	return core.ClampF((raw-c.Min)/(c.Max-c.Min), 0, 1)
}
