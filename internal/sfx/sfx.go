// Package sfx plays short feedback sounds through the system speaker.
package sfx

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes blips into a single speaker stream.
type Player struct {
	mixer  *beep.Mixer
	volume float64
}

// New initializes the speaker. It fails when no output device is available.
func New(volume float64) (*Player, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("sfx: cannot initialize speaker: %w", err)
	}
	p := &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
	speaker.Play(p.mixer)
	return p, nil
}

// Hit plays the scoring blip.
func (p *Player) Hit() {
	speaker.Lock()
	p.mixer.Add(Blip(sampleRate, 880, 60*time.Millisecond, p.volume))
	speaker.Unlock()
}

// Over plays the game over tone.
func (p *Player) Over() {
	speaker.Lock()
	p.mixer.Add(Blip(sampleRate, 220, 250*time.Millisecond, p.volume))
	speaker.Unlock()
}

// Close stops playback.
func (p *Player) Close() {
	speaker.Clear()
	speaker.Close()
}

// Blip is a sine tone with a linear decay, length d.
func Blip(sr beep.SampleRate, freq float64, d time.Duration, volume float64) beep.Streamer {
	total := sr.N(d)
	pos := 0
	return beep.Take(total, beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			env := 1 - float64(pos)/float64(total)
			v := volume * env * math.Sin(2*math.Pi*freq*float64(pos)/float64(sr))
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return len(samples), true
	}))
}
