// Package game drives one Hakusyu session: help pages, device selection,
// two-point loudness calibration, and the scrolling platformer itself.
//
// Session contains pure logic with no terminal dependencies. The platform
// feeds it one InputFrame per tick and renders it into a core.Screen.
package game

import (
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hakusyu/internal/amplitude"
	"github.com/vovakirdan/hakusyu/internal/blocks"
	"github.com/vovakirdan/hakusyu/internal/capture"
	"github.com/vovakirdan/hakusyu/internal/config"
	"github.com/vovakirdan/hakusyu/internal/core"
	"github.com/vovakirdan/hakusyu/internal/physics"
	"github.com/vovakirdan/hakusyu/internal/storage"
)

// Devices enumerates and opens capture devices. *capture.Catalog satisfies it.
type Devices interface {
	Devices() []capture.Device
	Open(index int, format capture.Format) (capture.Source, error)
}

// Profiles persists calibrations per device. *storage.Store satisfies it.
type Profiles interface {
	SaveProfile(device string, min, max float64) error
	Profile(device string) (storage.Profile, bool, error)
}

// Sounds plays feedback. *sfx.Player satisfies it.
type Sounds interface {
	Hit()
	Over()
}

// Options configures a Session.
type Options struct {
	Config  config.Config
	Devices Devices

	Profiles         Profiles // Optional
	ReuseCalibration bool     // Skip calibration when a stored profile exists
	Sounds           Sounds   // Optional
	Logger           *log.Logger
	Clock            physics.Clock // Defaults to time.Now
	Seed             int64         // 0 means time-based
}

// Session is the game loop state machine.
type Session struct {
	cfg      config.Config
	devices  Devices
	profiles Profiles
	reuse    bool
	sounds   Sounds
	logger   *log.Logger
	now      physics.Clock
	rng      *rand.Rand

	state      State
	helpPage   int
	deviceList []capture.Device
	device     capture.Device
	exit       bool

	recorder   *amplitude.Recorder
	phase      calPhase
	delayUntil time.Time
	minimum    float64
	retry      bool // Last calibration window was silent

	body      *physics.Body
	stream    *blocks.Stream
	score     int
	lastHit   physics.HitResult
	lastNorm  float64
	endReason EndReason
	games     int
}

// NewSession creates a session in the help state.
func NewSession(opts Options) *Session {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	format := capture.Format{SampleRate: cfg.Capture.SampleRate, Channels: cfg.Capture.Channels}
	timing := amplitude.Timing{
		Buffer:        cfg.Capture.Buffer(),
		MaxRecord:     cfg.Capture.MaxRecord(),
		SuggestedClip: cfg.Capture.SuggestedClip(),
	}

	return &Session{
		cfg:      cfg,
		devices:  opts.Devices,
		profiles: opts.Profiles,
		reuse:    opts.ReuseCalibration,
		sounds:   opts.Sounds,
		logger:   logger,
		now:      now,
		rng:      rand.New(rand.NewSource(seed)),
		state:    StateHelp,
		recorder: amplitude.NewRecorder(format, timing),
		body:     physics.NewBody(now, physics.Bounds{Top: 0, Bottom: cfg.Viewport.Height}),
		stream:   blocks.NewStream(streamConfig(cfg), seed),
	}
}

func streamConfig(cfg config.Config) blocks.Config {
	return blocks.Config{
		ViewportW: cfg.Viewport.Width,
		ViewportH: cfg.Viewport.Height,
		Division:  cfg.Blocks.Division,
		MinWidth:  cfg.Blocks.MinWidth,
		MaxWidth:  cfg.Blocks.MaxWidth,
		MinHeight: cfg.Blocks.MinHeight,
		MaxHeight: cfg.Blocks.MaxHeight,
		GapMin:    cfg.Blocks.GapMin,
		GapMax:    cfg.Blocks.GapMax,
	}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Score returns the score of the current or last game.
func (s *Session) Score() int { return s.score }

// Done reports whether the player asked to exit.
func (s *Session) Done() bool { return s.exit }

// Close releases the capture device.
func (s *Session) Close() error { return s.recorder.Close() }

func (s *Session) setState(next State) {
	if next == s.state {
		return
	}
	s.logger.Debug("state change", "from", s.state, "to", next)
	s.state = next
}

// Step advances the session by one tick.
func (s *Session) Step(in core.InputFrame) {
	if in.Has(core.ActionQuit) {
		s.exit = true
		return
	}
	if in.Has(core.ActionClap) {
		if c, ok := s.recorder.Source().(capture.Clapper); ok {
			c.Clap()
		}
	}

	s.recorder.Tick()

	switch s.state {
	case StateHelp:
		s.stepHelp(in)
	case StateSelectDevice:
		s.stepSelectDevice(in)
	case StateWaitingToExit:
		if in.Has(core.ActionAny) {
			s.exit = true
		}
	case StateCalibrateMin:
		s.stepCalibrateMin(in)
	case StateCalibrateMax:
		s.stepCalibrateMax(in)
	case StateReadyForGame, StateGameEnd:
		if in.Has(core.ActionConfirm) {
			s.beginGame()
		}
	case StateGaming:
		s.stepGaming()
	}
}

func (s *Session) stepHelp(in core.InputFrame) {
	if !in.Has(core.ActionConfirm) {
		return
	}
	s.helpPage++
	if s.helpPage >= len(helpPages) {
		s.helpPage = 0
		s.enterSelectDevice()
	}
}

func (s *Session) enterSelectDevice() {
	if s.devices != nil {
		s.deviceList = s.devices.Devices()
	}
	if len(s.deviceList) == 0 {
		s.logger.Warn("no capture devices found")
		s.setState(StateWaitingToExit)
		return
	}
	s.setState(StateSelectDevice)
}

func (s *Session) stepSelectDevice(in core.InputFrame) {
	idx, ok := in.Digit()
	if !ok {
		return
	}
	if idx >= len(s.deviceList) {
		s.logger.Debug("no device at index", "index", idx)
		return
	}
	src, err := s.devices.Open(idx, s.recorder.Format())
	if err != nil {
		s.logger.Error("cannot open capture device", "index", idx, "err", err)
		return
	}
	if err := s.recorder.Activate(src); err != nil {
		s.logger.Error("cannot activate capture device", "index", idx, "err", err)
		src.Close()
		return
	}
	s.device = s.deviceList[idx]
	s.logger.Info("capture device active", "device", s.device.Name)

	if s.reuse && s.loadProfile() {
		s.setState(StateReadyForGame)
		return
	}
	s.phase = calWaiting
	s.retry = false
	s.setState(StateCalibrateMin)
}

// loadProfile applies a stored non-degenerate calibration for the device.
func (s *Session) loadProfile() bool {
	if s.profiles == nil {
		return false
	}
	p, ok, err := s.profiles.Profile(s.device.Name)
	if err != nil {
		s.logger.Warn("cannot load calibration profile", "err", err)
		return false
	}
	if !ok {
		return false
	}
	if err := s.recorder.Calibrate(p.Min, p.Max); err != nil {
		s.logger.Warn("stored calibration unusable", "err", err)
		return false
	}
	s.logger.Info("reusing calibration", "device", p.Device, "min", p.Min, "max", p.Max)
	return true
}

func (s *Session) stepCalibrateMin(in core.InputFrame) {
	switch s.phase {
	case calWaiting:
		if in.Has(core.ActionConfirm) {
			s.startWindow()
		}
	case calRecording:
		avg, ok := s.takeCalibrationWindow()
		if !ok {
			return
		}
		s.minimum = avg
		s.logger.Info("minimum recorded", "avg", avg)
		s.setState(StateCalibrateMax)
	}
}

func (s *Session) stepCalibrateMax(in core.InputFrame) {
	switch s.phase {
	case calWaiting:
		if in.Has(core.ActionConfirm) {
			s.phase = calDelaying
			s.delayUntil = s.now().Add(s.cfg.Capture.CalibrationDelay())
		}
	case calDelaying:
		if !s.now().Before(s.delayUntil) {
			s.startWindow()
		}
	case calRecording:
		avg, ok := s.takeCalibrationWindow()
		if !ok {
			return
		}
		s.finishCalibration(avg)
	}
}

func (s *Session) startWindow() {
	if err := s.recorder.StartRecording(); err != nil {
		s.logger.Error("cannot start recording", "err", err)
		return
	}
	s.phase = calRecording
	s.retry = false
}

// takeCalibrationWindow consumes a stopped window. A silent window is
// dropped and the phase returns to waiting for confirm.
func (s *Session) takeCalibrationWindow() (float64, bool) {
	if !s.recorder.HasStopped() {
		return 0, false
	}
	avg := s.recorder.AverageAmplitude()
	s.recorder.DropRecordingResult()
	s.phase = calWaiting
	if avg <= 0 {
		s.logger.Warn("calibration window was silent")
		s.retry = true
		return 0, false
	}
	return avg, true
}

func (s *Session) finishCalibration(max float64) {
	err := s.recorder.Calibrate(s.minimum, max)
	switch {
	case errors.Is(err, amplitude.ErrDegenerateCalibration):
		s.logger.Warn("degenerate calibration, loudness will saturate", "min", s.minimum, "max", max)
	default:
		s.logger.Info("calibration complete", "min", s.minimum, "max", max)
	}
	if s.profiles != nil {
		if err := s.profiles.SaveProfile(s.device.Name, s.minimum, max); err != nil {
			s.logger.Warn("cannot save calibration profile", "err", err)
		}
	}
	s.setState(StateReadyForGame)
}

// beginGame starts a new game and restarts capture with a fresh window.
func (s *Session) beginGame() {
	s.StartNewGame()
	s.recorder.StopRecording()
	s.recorder.DropRecordingResult()
	if err := s.recorder.StartRecording(); err != nil {
		s.logger.Error("cannot start recording", "err", err)
	}
	s.setState(StateGaming)
}

// Calibration returns the active calibration.
func (s *Session) Calibration() amplitude.Calibration { return s.recorder.Calibration() }

// Device returns the selected capture device.
func (s *Session) Device() capture.Device { return s.device }
