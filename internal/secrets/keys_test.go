package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/kete/internal/errors"
)

func TestGenerateKey_WritesOwnerOnlyFile(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "secret.key")

	key, err := GenerateKey(keyPath)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	defer key.Destroy()

	info, err := os.Stat(keyPath)
	if err != nil {
		t.Fatalf("Key file was not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != KeyFilePermissions {
		t.Errorf("Expected permissions %o, got %o", KeyFilePermissions, perm)
	}

	_, tooOpen, err := KeyFileMode(keyPath)
	if err != nil {
		t.Fatalf("Failed to read key file mode: %v", err)
	}
	if tooOpen {
		t.Errorf("Freshly generated key file should not be reported as too open")
	}
}

func TestGenerateKey_CreatesParentDirectory(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "nested", "dir", "secret.key")

	key, err := GenerateKey(keyPath)
	if err != nil {
		t.Fatalf("Failed to generate key in nested directory: %v", err)
	}
	key.Destroy()
}

func TestGenerateKey_RefusesToOverwrite(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "secret.key")

	first, err := GenerateKey(keyPath)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	defer first.Destroy()

	original, err := os.ReadFile(keyPath)
	if err != nil {
		t.Fatalf("Failed to read key file: %v", err)
	}

	_, err = GenerateKey(keyPath)
	if !errors.Is(err, kerrors.ErrKeyFileExists) {
		t.Fatalf("Expected ErrKeyFileExists, got: %v", err)
	}

	after, err := os.ReadFile(keyPath)
	if err != nil {
		t.Fatalf("Failed to read key file: %v", err)
	}
	if string(after) != string(original) {
		t.Errorf("Existing key file was modified")
	}
}

func TestLoadKey_RoundTrip(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "secret.key")

	generated, err := GenerateKey(keyPath)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	defer generated.Destroy()

	loaded, err := LoadKey(keyPath)
	if err != nil {
		t.Fatalf("Failed to load key: %v", err)
	}
	defer loaded.Destroy()

	sealed, err := Seal(generated, []byte("hunter2"), []byte("svc"))
	if err != nil {
		t.Fatalf("Failed to seal: %v", err)
	}
	plaintext, err := Open(loaded, sealed, []byte("svc"))
	if err != nil {
		t.Fatalf("Loaded key could not open data sealed by generated key: %v", err)
	}
	if string(plaintext) != "hunter2" {
		t.Errorf("Expected hunter2, got %q", plaintext)
	}
}

func TestLoadKey_Missing(t *testing.T) {
	_, err := LoadKey(filepath.Join(t.TempDir(), "absent.key"))
	if !errors.Is(err, kerrors.ErrKeyFileMissing) {
		t.Fatalf("Expected ErrKeyFileMissing, got: %v", err)
	}
}

func TestLoadKey_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"not base64", "this is not a key!!\n"},
		{"too short", keyEncoding.EncodeToString([]byte("short"))},
		{"too long", keyEncoding.EncodeToString([]byte(strings.Repeat("x", KeySize+1)))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keyPath := filepath.Join(t.TempDir(), "secret.key")
			if err := os.WriteFile(keyPath, []byte(tt.content), 0600); err != nil {
				t.Fatalf("Failed to write key file: %v", err)
			}

			_, err := LoadKey(keyPath)
			if !errors.Is(err, kerrors.ErrKeyFormat) {
				t.Errorf("Expected ErrKeyFormat, got: %v", err)
			}
		})
	}
}

func TestKeyFileMode_DetectsLoosePermissions(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "secret.key")
	key, err := GenerateKey(keyPath)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	key.Destroy()

	if err := os.Chmod(keyPath, 0644); err != nil {
		t.Fatalf("Failed to chmod key file: %v", err)
	}

	perm, tooOpen, err := KeyFileMode(keyPath)
	if err != nil {
		t.Fatalf("Failed to read key file mode: %v", err)
	}
	if !tooOpen {
		t.Errorf("Expected %o to be reported as too open", perm)
	}
}

func TestMasterKey_DestroyPreventsUse(t *testing.T) {
	key, err := GenerateKey(filepath.Join(t.TempDir(), "secret.key"))
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}

	key.Destroy()
	if !key.IsDestroyed() {
		t.Fatalf("Expected key to report destroyed")
	}

	_, err = Seal(key, []byte("data"), nil)
	if !errors.Is(err, kerrors.ErrVaultClosed) {
		t.Errorf("Expected ErrVaultClosed after Destroy, got: %v", err)
	}
}

func TestNewMasterKey_WipesSource(t *testing.T) {
	raw := []byte(strings.Repeat("k", KeySize))

	key, err := NewMasterKey(raw)
	if err != nil {
		t.Fatalf("Failed to create master key: %v", err)
	}
	defer key.Destroy()

	for i, b := range raw {
		if b != 0 {
			t.Fatalf("Expected source byte %d to be wiped, got %d", i, b)
		}
	}
}
