package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/hakusyu/internal/amplitude"
	"github.com/vovakirdan/hakusyu/internal/capture"
)

// helpPages are shown one per confirm before device selection.
var helpPages = [][]string{
	{
		"Welcome to Hakusyu!",
		"A platformer you steer with the loudness of your claps.",
		"Louder claps push you higher and further.",
		"Land on every block from left to right. Skip one and the run ends.",
		"Press <Esc> at any time to quit.",
		"",
		"<Press Enter to continue>",
	},
	{
		"Next, pick the microphone to listen to.",
		"Press its number key. Any listed recorder will do.",
		"No microphone? Pick the clap synthesizer and clap with <Space>.",
		"",
		"<Press Enter to continue>",
	},
}

var noDevicePrompt = []string{
	"No capture device was found.",
	"A microphone (or the clap synthesizer backend) is required to play.",
	"",
	"<Press any key to exit>",
}

var selectDeviceHeader = []string{
	"Press a number key to select a capture device",
	"",
}

var calibrateMinPrompt = []string{
	"Please keep quiet.",
	"We will now record your quietest level.",
	"",
	"<Press Enter to start>",
}

var calibrateMaxPrompt = []string{
	"Now clap as loudly as you can.",
	"We will record your loudest level.",
	"",
	"<Press Enter to start>",
}

var readyPrompt = []string{
	"You are all set!",
	"<Press Enter to start the game>",
	"",
	"Calibration:",
}

var gameEndPrompt = []string{
	"Game over!",
	"Press <Enter> to start a new game.",
	"",
}

// devicePrompt lists devices as "index: name", limited to the digit keys.
func devicePrompt(devs []capture.Device) []string {
	lines := append([]string(nil), selectDeviceHeader...)
	for i, d := range devs {
		if i > 9 {
			break
		}
		lines = append(lines, fmt.Sprintf("%d: %s", i, d.Name))
	}
	return lines
}

// calibrationLine formats the min, max and slope of a calibration.
func calibrationLine(c amplitude.Calibration) string {
	slope := math.Inf(1)
	if c.Max > c.Min {
		slope = 1 / (c.Max - c.Min)
	}
	return fmt.Sprintf("Minimum %.6g Maximum %.6g Slope %s", c.Min, c.Max, formatSlope(slope))
}

func formatSlope(v float64) string {
	if math.IsInf(v, 0) {
		return "inf"
	}
	return fmt.Sprintf("%.6g", v)
}
