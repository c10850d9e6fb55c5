package game

import "fmt"

// State is the session state shown to the player.
type State int

const (
	StateHelp State = iota
	StateSelectDevice
	StateCalibrateMin
	StateCalibrateMax
	StateReadyForGame
	StateGaming
	StateGameEnd
	StateWaitingToExit
)

func (s State) String() string {
	switch s {
	case StateHelp:
		return "help"
	case StateSelectDevice:
		return "select-device"
	case StateCalibrateMin:
		return "calibrate-min"
	case StateCalibrateMax:
		return "calibrate-max"
	case StateReadyForGame:
		return "ready"
	case StateGaming:
		return "gaming"
	case StateGameEnd:
		return "game-end"
	case StateWaitingToExit:
		return "waiting-to-exit"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// calPhase tracks progress inside a calibration state.
type calPhase int

const (
	calWaiting   calPhase = iota // Waiting for confirm
	calDelaying                  // Confirmed, waiting for the delay to pass
	calRecording                 // Window open
)

// EndReason says why a game ended.
type EndReason string

const (
	EndNone         EndReason = ""
	EndLowerBorder  EndReason = "fell off the bottom"
	EndUpperBorder  EndReason = "flew off the top"
	EndSkippedBlock EndReason = "skipped a block"
)
