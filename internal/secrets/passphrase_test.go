package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/PolarWolf314/kete/internal/errors"
)

// testKDFParams keeps Argon2id fast in tests.
var testKDFParams = KDFParams{Time: 1, Memory: 1024, Threads: 1}

func TestDeriveKey_Deterministic(t *testing.T) {
	saltPath := SaltPath(filepath.Join(t.TempDir(), "secret.key"))

	salt, err := CreateSalt(saltPath)
	if err != nil {
		t.Fatalf("Failed to create salt: %v", err)
	}

	first, err := DeriveKey([]byte("correct horse"), salt, testKDFParams)
	if err != nil {
		t.Fatalf("Failed to derive key: %v", err)
	}
	defer first.Destroy()

	loadedSalt, err := LoadSalt(saltPath)
	if err != nil {
		t.Fatalf("Failed to load salt: %v", err)
	}

	second, err := DeriveKey([]byte("correct horse"), loadedSalt, testKDFParams)
	if err != nil {
		t.Fatalf("Failed to derive key: %v", err)
	}
	defer second.Destroy()

	sealed, err := Seal(first, []byte("secret"), nil)
	if err != nil {
		t.Fatalf("Failed to seal: %v", err)
	}
	if _, err := Open(second, sealed, nil); err != nil {
		t.Errorf("Same passphrase and salt should derive the same key: %v", err)
	}

	other, err := DeriveKey([]byte("wrong horse"), loadedSalt, testKDFParams)
	if err != nil {
		t.Fatalf("Failed to derive key: %v", err)
	}
	defer other.Destroy()

	if _, err := Open(other, sealed, nil); !errors.Is(err, kerrors.ErrAuthentication) {
		t.Errorf("Expected ErrAuthentication with a different passphrase, got: %v", err)
	}
}

func TestCreateSalt_RefusesToOverwrite(t *testing.T) {
	saltPath := filepath.Join(t.TempDir(), "secret.key.salt")

	if _, err := CreateSalt(saltPath); err != nil {
		t.Fatalf("Failed to create salt: %v", err)
	}
	if _, err := CreateSalt(saltPath); !errors.Is(err, kerrors.ErrKeyFileExists) {
		t.Errorf("Expected ErrKeyFileExists, got: %v", err)
	}
}

func TestLoadSalt_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSalt(filepath.Join(dir, "missing.salt")); !errors.Is(err, kerrors.ErrKeyFileMissing) {
		t.Errorf("Expected ErrKeyFileMissing, got: %v", err)
	}

	badPath := filepath.Join(dir, "bad.salt")
	if err := os.WriteFile(badPath, []byte("AAAA\n"), 0600); err != nil {
		t.Fatalf("Failed to write salt file: %v", err)
	}
	if _, err := LoadSalt(badPath); !errors.Is(err, kerrors.ErrKeyFormat) {
		t.Errorf("Expected ErrKeyFormat, got: %v", err)
	}
}

func TestDeriveKey_RejectsEmptyPassphrase(t *testing.T) {
	salt := make([]byte, SaltSize)
	if _, err := DeriveKey(nil, salt, testKDFParams); !errors.Is(err, kerrors.ErrKeyFormat) {
		t.Errorf("Expected ErrKeyFormat, got: %v", err)
	}
}
