package utils

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// ErrPasswordMismatch is returned when a confirmation prompt does not match.
var ErrPasswordMismatch = errors.New("entries do not match")

// ReadPassword prompts on stderr and reads a line from stdin without echo.
// Returns an error if stdin is not a terminal.
func ReadPassword(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot prompt for input: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return password, nil
}

// ReadPasswordConfirmed prompts twice and fails with ErrPasswordMismatch if
// the entries differ.
func ReadPasswordConfirmed(prompt, confirmPrompt string) ([]byte, error) {
	first, err := ReadPassword(prompt)
	if err != nil {
		return nil, err
	}

	second, err := ReadPassword(confirmPrompt)
	if err != nil {
		wipe(first)
		return nil, err
	}
	defer wipe(second)

	if !bytes.Equal(first, second) {
		wipe(first)
		return nil, ErrPasswordMismatch
	}

	return first, nil
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
