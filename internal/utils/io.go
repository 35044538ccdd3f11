package utils

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// maxSecretSize bounds how much is read from a pipe for a single password.
const maxSecretSize = 64 * 1024

// ReadSecret reads a password from stdin. Exactly one trailing line ending
// is stripped, so `echo pw | kete add svc` stores "pw".
// Returns an error if stdin is a terminal (no piped data) or cannot be read.
func ReadSecret() (string, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat stdin: %w", err)
	}

	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", fmt.Errorf("no data provided on stdin (hint: pipe the password to this command)")
	}

	return readSecretFrom(os.Stdin)
}

func readSecretFrom(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSecretSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}
	if len(data) > maxSecretSize {
		return "", fmt.Errorf("stdin exceeds %d bytes", maxSecretSize)
	}

	data = bytes.TrimSuffix(data, []byte("\n"))
	data = bytes.TrimSuffix(data, []byte("\r"))

	return string(data), nil
}
