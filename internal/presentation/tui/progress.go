package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// ProgressBar renders a colored completion bar like "[████░░░░░░] 40%".
// Width is the number of bar cells, not counting brackets and the label.
func ProgressBar(percent, width int) string {
	if width <= 0 {
		width = 20
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := percent * width / 100
	p := termenv.ColorProfile()
	full := termenv.String(strings.Repeat("█", filled)).Foreground(p.Color("#2dd4bf"))
	rest := termenv.String(strings.Repeat("░", width-filled)).Faint()

	return fmt.Sprintf("[%s%s] %d%%", full, rest, percent)
}
