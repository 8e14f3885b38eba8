package tui

import (
	"os"

	"golang.org/x/term"
)

// GetTerminalWidth returns the current terminal width, defaulting to 80 if unable to detect
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		// Default to 80 if we can't detect terminal size
		return 80
	}
	return width
}
