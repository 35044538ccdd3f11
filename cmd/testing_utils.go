// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up test environments,
// running the CLI in-process and capturing its output.
package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// testEnv holds the paths of an isolated kete environment.
type testEnv struct {
	dir       string
	keyPath   string
	vaultPath string
	auditPath string
}

// setupTestEnvironment points HOME and the config directory at a temp dir so
// no real user files are read, and returns paths for a fresh vault.
func setupTestEnvironment(t *testing.T) testEnv {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("NO_COLOR", "1")
	t.Setenv(PassphraseEnv, "")

	t.Cleanup(ResetGlobalState)

	return testEnv{
		dir:       dir,
		keyPath:   filepath.Join(dir, "secret.key"),
		vaultPath: filepath.Join(dir, "passwords.json"),
		auditPath: filepath.Join(dir, "audit.jsonl"),
	}
}

// args prefixes the vault location flags to a command line.
func (e testEnv) args(args ...string) []string {
	return append([]string{"--key", e.keyPath, "--vault", e.vaultPath}, args...)
}

// run executes kete in-process with the env's vault flags and returns the
// combined output.
func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCLI(t, e.args(args...)...)
}

// runCLI executes the root command with args and returns stdout and stderr
// combined.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stdout, stderr, err := runCLISplit(t, args...)
	return stdout + stderr, err
}

// runCLISplit executes the root command with args and returns stdout and
// stderr separately.
func runCLISplit(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	ResetGlobalState()
	RootCmd.SetArgs(args)
	return captureStreams(RootCmd.Execute)
}

// withStdin replaces os.Stdin with a pipe holding data for the rest of the test.
func withStdin(t *testing.T, data string) {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	if _, err := w.WriteString(data); err != nil {
		t.Fatalf("Failed to write to pipe: %v", err)
	}
	w.Close()

	original := os.Stdin
	os.Stdin = r
	t.Cleanup(func() {
		os.Stdin = original
		r.Close()
	})
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	stdout, stderr, err := captureStreams(fn)
	return stdout + stderr, err
}

// captureStreams captures stdout and stderr separately during function execution.
func captureStreams(fn func() error) (string, string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stdoutReader)
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stderrReader)
		stderrChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan, <-stderrChan, err
}
