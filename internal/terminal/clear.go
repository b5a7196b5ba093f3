// Package terminal provides helpers for prompts on an interactive terminal.
package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const defaultWidth = 80

// Width returns the width of stdout, or 80 when it is not a terminal.
func Width() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

// ClearPreviousLines erases a prompt of textLength characters that was
// answered with Enter, assuming lines wrap at width.
// The cursor ends at the start of the first cleared line.
func ClearPreviousLines(w io.Writer, textLength, width int) {
	if width <= 0 {
		width = defaultWidth
	}
	lines := (textLength + width - 1) / width
	if lines < 1 {
		lines = 1
	}
	// Enter leaves the cursor on one more line below the input.
	lines++

	for i := 0; i < lines; i++ {
		fmt.Fprint(w, "\r\x1b[2K")
		if i < lines-1 {
			fmt.Fprint(w, "\x1b[1A")
		}
	}
}
