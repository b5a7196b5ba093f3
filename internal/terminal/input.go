package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// ReadPassword prompts on stdout and reads a line from stdin without echo.
// On a terminal the prompt is erased once answered.
// When stdin is not a terminal the line is read as is, so passwords can be piped.
func ReadPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fmt.Fprint(os.Stdout, prompt)
		return ReadLine(os.Stdin)
	}
	return readSecret(os.Stdout, prompt, Width(), func() ([]byte, error) {
		return term.ReadPassword(fd)
	})
}

func readSecret(w io.Writer, prompt string, width int, read func() ([]byte, error)) (string, error) {
	fmt.Fprint(w, prompt)
	b, err := read()
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	ClearPreviousLines(w, utf8.RuneCountInString(prompt), width)
	return string(b), nil
}

// ReadLine reads one line from r without the trailing newline.
func ReadLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
