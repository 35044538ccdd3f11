package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/kete/internal/ui"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"TildeOnly", "~", home},
		{"TildeSlash", "~/.kete/secret.key", filepath.Join(home, ".kete", "secret.key")},
		{"Absolute", "/var/lib/kete/vault.json", "/var/lib/kete/vault.json"},
		{"Relative", "passwords.json", "passwords.json"},
		{"TildeUser", "~alice/vault.json", "~alice/vault.json"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExpandHome(tc.input)
			if err != nil {
				t.Fatalf("ExpandHome(%q) failed: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ExpandHome(%q) = %q, expected %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestFormatList(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	got := FormatList([]string{"github", "email"}, ui.Service)
	want := "    - 'github'\n    - 'email'\n"
	if got != want {
		t.Errorf("FormatList() = %q, expected %q", got, want)
	}

	if FormatList(nil, ui.Service) != "" {
		t.Error("FormatList(nil) should be empty")
	}
}

func TestReadSecretFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"TrailingNewline", "hunter2\n", "hunter2"},
		{"CRLF", "hunter2\r\n", "hunter2"},
		{"NoNewline", "hunter2", "hunter2"},
		{"OnlyOneNewlineStripped", "hunter2\n\n", "hunter2\n"},
		{"InnerWhitespaceKept", "  spaced out  \n", "  spaced out  "},
		{"Empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := readSecretFrom(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("readSecretFrom failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("readSecretFrom(%q) = %q, expected %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestReadSecretFrom_TooLarge(t *testing.T) {
	_, err := readSecretFrom(strings.NewReader(strings.Repeat("a", maxSecretSize+1)))
	if err == nil {
		t.Error("Expected error for oversized input")
	}
}

func TestGetUsername(t *testing.T) {
	name, err := GetUsername()
	if err != nil {
		t.Skipf("no current user in this environment: %v", err)
	}
	if name == "" {
		t.Error("Expected non-empty username")
	}
}

func TestReadPassword_NotTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	orig := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = orig }()

	if IsTerminal() {
		t.Fatal("pipe should not be a terminal")
	}
	if _, err := ReadPassword("Password: "); err == nil {
		t.Error("Expected error when stdin is not a terminal")
	}
}
