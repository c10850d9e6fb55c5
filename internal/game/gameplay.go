package game

import (
	"github.com/vovakirdan/hakusyu/internal/core"
	"github.com/vovakirdan/hakusyu/internal/physics"
)

// StartNewGame resets score and blocks, and stands the character on the
// first block at its fixed horizontal position.
func (s *Session) StartNewGame() {
	s.games++
	s.score = 0
	s.lastHit = physics.HitResult{}
	s.lastNorm = 0
	s.endReason = EndNone

	ch := s.cfg.Character
	s.stream.Reset(s.rng.Int63(), ch.X)

	first := s.stream.Front().Box
	s.body.Init(core.NewRect(ch.X, first.Y-ch.Height, ch.Width, ch.Height))
	s.body.ApplyForce(0, s.cfg.Physics.Gravity)
	s.body.SetDrag(s.cfg.Physics.DragX, s.cfg.Physics.DragY)

	s.logger.Debug("new game", "game", s.games, "first_block", first)
}

// stepGaming runs one gameplay tick.
func (s *Session) stepGaming() {
	if s.recorder.ClipReady() {
		s.recorder.StopRecording()
	}
	if s.recorder.HasStopped() {
		s.lastNorm = s.recorder.Normalize(s.recorder.AverageAmplitude())
		s.recorder.DropRecordingResult()
		s.body.ApplyImpulse(
			s.lastNorm*s.cfg.Physics.HorizontalImpulse,
			-s.lastNorm*s.cfg.Physics.VerticalImpulse,
		)
		s.startRecording()
	}

	hit := s.body.Update(s.stream)
	s.lastHit = hit

	switch {
	case hit.LowerBorder:
		s.endGame(EndLowerBorder)
		return
	case hit.UpperBorder:
		s.endGame(EndUpperBorder)
		return
	}

	if i, ok := hit.Block(); ok && !s.stream.At(i).Hit {
		if s.stream.PrefixHit() < i {
			s.endGame(EndSkippedBlock)
			return
		}
		s.stream.MarkHit(i)
		s.score++
		if s.sounds != nil {
			s.sounds.Hit()
		}
	}

	s.stream.Scroll(s.body.DeltaX())

	if s.recorder.CanStartRecording() {
		s.startRecording()
	}
}

func (s *Session) startRecording() {
	if err := s.recorder.StartRecording(); err != nil {
		s.logger.Error("cannot start recording", "err", err)
	}
}

func (s *Session) endGame(reason EndReason) {
	s.endReason = reason
	s.recorder.StopRecording()
	s.recorder.DropRecordingResult()
	if s.sounds != nil {
		s.sounds.Over()
	}
	s.logger.Info("game over", "reason", string(reason), "score", s.score)
	s.setState(StateGameEnd)
}
