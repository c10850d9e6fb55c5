package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/hakusyu/internal/core"
)

// Cell glyphs and colours.
const (
	blockRune     = '█'
	characterRune = '▓'

	colorBlockHit   = core.ColorBlue
	colorBlockUnhit = core.ColorWhite
	colorCharacter  = core.ColorYellow
	colorHUD        = core.ColorGreen
)

// Render draws the session into dst. The viewport is scaled onto the
// screen; the screen is cleared first.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()

	switch s.state {
	case StateGaming:
		s.renderPlayfield(dst)
		s.renderHUD(dst)
	case StateGameEnd:
		s.renderPlayfield(dst)
		lines := append([]string(nil), gameEndPrompt...)
		lines = append(lines, fmt.Sprintf("Your score: %d", s.score))
		if s.endReason != EndNone {
			lines = append(lines, fmt.Sprintf("(you %s)", s.endReason))
		}
		renderPanel(dst, lines)
	default:
		renderLines(dst, s.promptLines())
	}
}

// promptLines returns the text for non-playfield states.
func (s *Session) promptLines() []string {
	switch s.state {
	case StateHelp:
		return helpPages[s.helpPage]
	case StateSelectDevice:
		return devicePrompt(s.deviceList)
	case StateWaitingToExit:
		return noDevicePrompt
	case StateCalibrateMin:
		return s.calibrationLines(calibrateMinPrompt, "Recording... keep quiet")
	case StateCalibrateMax:
		return s.calibrationLines(calibrateMaxPrompt, "Recording... clap now!")
	case StateReadyForGame:
		return append(append([]string(nil), readyPrompt...), calibrationLine(s.recorder.Calibration()))
	}
	return nil
}

func (s *Session) calibrationLines(base []string, recording string) []string {
	lines := append([]string(nil), base...)
	switch s.phase {
	case calWaiting:
		if s.retry {
			lines = append(lines, "", "Nothing was captured. Press Enter to try again.")
		}
	case calDelaying:
		left := s.delayUntil.Sub(s.now()).Seconds()
		lines = append(lines, "", fmt.Sprintf("Get ready... %d", int(math.Ceil(left))))
	case calRecording:
		lines = append(lines, "", recording)
	}
	return lines
}

func (s *Session) renderPlayfield(dst *core.Screen) {
	vp := s.cfg.Viewport
	for _, b := range s.stream.Blocks() {
		c := colorBlockUnhit
		if b.Hit {
			c = colorBlockHit
		}
		dst.DrawRect(scaleRect(b.Box, vp.Width, vp.Height, dst.Width(), dst.Height()), blockRune, c)
	}
	dst.DrawRect(scaleRect(s.body.Box(), vp.Width, vp.Height, dst.Width(), dst.Height()), characterRune, colorCharacter)
}

func (s *Session) renderHUD(dst *core.Screen) {
	loudness := core.Clamp(int(math.Floor(s.lastNorm*100)), 0, 100)
	hud := fmt.Sprintf(" Score: %d  Loudness: %d ", s.score, loudness)
	for i, r := range []rune(hud) {
		dst.SetCell(i, 0, r, colorHUD)
	}
}

// renderLines centres lines vertically and horizontally.
func renderLines(dst *core.Screen, lines []string) {
	top := (dst.Height() - len(lines)) / 2
	if top < 0 {
		top = 0
	}
	for i, l := range lines {
		dst.DrawTextCentered(top+i, l)
	}
}

// renderPanel draws lines centred inside a blank framed box.
func renderPanel(dst *core.Screen, lines []string) {
	w := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > w {
			w = n
		}
	}
	w += 4
	h := len(lines) + 2
	frame := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
	dst.DrawRect(frame, ' ', core.ColorDefault)
	dst.DrawBox(frame)
	for i, l := range lines {
		dst.DrawTextCentered(frame.Y+1+i, l)
	}
}

// scaleRect maps a viewport rect onto a cell grid. Any visible rect
// covers at least one cell.
func scaleRect(r core.Rect, vw, vh, cw, ch int) core.Rect {
	x0 := floorDiv(r.X*cw, vw)
	y0 := floorDiv(r.Y*ch, vh)
	x1 := ceilDiv(r.Right()*cw, vw)
	y1 := ceilDiv(r.Bottom()*ch, vh)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
