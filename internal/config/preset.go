package config

import "fmt"

// Preset represents a named difficulty level.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
	PresetFixed  Preset = "fixed" // Keep the loaded physics untouched
)

// Presets lists the accepted preset names.
var Presets = []Preset{PresetEasy, PresetNormal, PresetHard, PresetFixed}

// ParsePreset validates a preset name.
func ParsePreset(s string) (Preset, error) {
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown preset %q (want easy, normal, hard or fixed)", s)
}

// ApplyPreset rewrites physics for the preset. Easy and hard scale the
// reference tuning: stronger impulses with lighter gravity make the
// character easier to keep airborne.
func ApplyPreset(cfg *Config, preset Preset) {
	base := DefaultPhysics()
	switch preset {
	case PresetEasy:
		base.Gravity *= 0.8
		base.VerticalImpulse *= 1.2
		base.HorizontalImpulse *= 1.2
	case PresetHard:
		base.Gravity *= 1.25
		base.VerticalImpulse *= 0.85
		base.HorizontalImpulse *= 0.85
	case PresetNormal:
	default:
		return
	}
	cfg.Physics = base
}
