package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/kete/internal/errors"
	"github.com/PolarWolf314/kete/internal/secrets"
)

func testRecord(fill byte) Record {
	return Record{
		Ciphertext: bytes.Repeat([]byte{fill}, 10),
		Nonce:      bytes.Repeat([]byte{fill}, secrets.NonceSize),
		Tag:        bytes.Repeat([]byte{fill}, secrets.TagSize),
	}
}

// writeVault is a helper to write raw vault file content.
func writeVault(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write vault file: %v", err)
	}
}

func TestLoad_MissingFileIsEmptyVault(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "passwords.json"))
	if err != nil {
		t.Fatalf("Expected no error for missing vault, got: %v", err)
	}
	if len(f.Records) != 0 {
		t.Errorf("Expected empty vault, got %d records", len(f.Records))
	}
	if f.Version != FormatVersion {
		t.Errorf("Expected version %d, got %d", FormatVersion, f.Version)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passwords.json")

	f := NewFile()
	f.VaultID = "vault-id"
	kc := testRecord(9)
	f.KeyCheck = &kc
	f.Records["github"] = testRecord(1)
	f.Records["email"] = testRecord(2)

	if err := Save(path, f); err != nil {
		t.Fatalf("Failed to save vault: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load vault: %v", err)
	}

	if loaded.VaultID != "vault-id" {
		t.Errorf("Expected vault ID to survive, got %q", loaded.VaultID)
	}
	if loaded.KeyCheck == nil || !bytes.Equal(loaded.KeyCheck.Tag, kc.Tag) {
		t.Errorf("Key check did not survive the round trip")
	}
	if len(loaded.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(loaded.Records))
	}
	if !bytes.Equal(loaded.Records["github"].Ciphertext, f.Records["github"].Ciphertext) {
		t.Errorf("Record ciphertext changed across save/load")
	}
}

func TestSave_OwnerOnlyPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passwords.json")
	if err := Save(path, NewFile()); err != nil {
		t.Fatalf("Failed to save vault: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat vault: %v", err)
	}
	if perm := info.Mode().Perm(); perm != FilePermissions {
		t.Errorf("Expected permissions %o, got %o", FilePermissions, perm)
	}
}

func TestSave_WritesVersionAndCipher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passwords.json")
	if err := Save(path, &File{}); err != nil {
		t.Fatalf("Failed to save vault: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read vault: %v", err)
	}
	if !strings.Contains(string(data), `"version": 1`) {
		t.Errorf("Expected version field in vault file, got: %s", data)
	}
	if !strings.Contains(string(data), secrets.CipherName) {
		t.Errorf("Expected cipher name in vault file, got: %s", data)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	nonce := strings.Repeat("A", 32)
	tag := strings.Repeat("A", 22) + "=="

	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"truncated", `{"version": 1, "cipher": "xchacha20-poly1305", "records": {`},
		{"not json", "service=password"},
		{"missing version", `{"records": {}}`},
		{"records wrong type", `{"version": 1, "cipher": "xchacha20-poly1305", "records": {"svc": "gAAAAA"}}`},
		{"bad base64", `{"version": 1, "cipher": "xchacha20-poly1305", "records": {"svc": {"ciphertext": "***", "nonce": "` + nonce + `", "tag": "` + tag + `"}}}`},
		{"short nonce", `{"version": 1, "cipher": "xchacha20-poly1305", "records": {"svc": {"ciphertext": "", "nonce": "AAAA", "tag": "` + tag + `"}}}`},
		{"missing tag", `{"version": 1, "cipher": "xchacha20-poly1305", "records": {"svc": {"ciphertext": "", "nonce": "` + nonce + `"}}}`},
		{"empty service", `{"version": 1, "cipher": "xchacha20-poly1305", "records": {"": {"ciphertext": "", "nonce": "` + nonce + `", "tag": "` + tag + `"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "passwords.json")
			writeVault(t, path, tt.content)

			_, err := Load(path)
			if !errors.Is(err, kerrors.ErrVaultCorrupt) {
				t.Errorf("Expected ErrVaultCorrupt, got: %v", err)
			}
		})
	}
}

func TestLoad_UnsupportedVersion(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"future version", `{"version": 2, "cipher": "xchacha20-poly1305", "records": {}}`},
		{"zero version", `{"version": 0, "records": {}}`},
		{"unknown cipher", `{"version": 1, "cipher": "fernet", "records": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "passwords.json")
			writeVault(t, path, tt.content)

			_, err := Load(path)
			if !errors.Is(err, kerrors.ErrUnsupportedVaultVersion) {
				t.Errorf("Expected ErrUnsupportedVaultVersion, got: %v", err)
			}
		})
	}
}

func TestLoad_EmptyCiphertextIsValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passwords.json")

	f := NewFile()
	rec := testRecord(3)
	rec.Ciphertext = nil
	f.Records["empty-password"] = rec
	if err := Save(path, f); err != nil {
		t.Fatalf("Failed to save vault: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Expected a record with empty ciphertext to load, got: %v", err)
	}
	if _, ok := loaded.Records["empty-password"]; !ok {
		t.Errorf("Expected record to be present")
	}
}

func TestClone_IsDeep(t *testing.T) {
	f := NewFile()
	f.Records["svc"] = testRecord(1)

	c := f.Clone()
	c.Records["svc"].Ciphertext[0] = 0xFF
	c.Records["other"] = testRecord(2)

	if f.Records["svc"].Ciphertext[0] == 0xFF {
		t.Errorf("Modifying the clone changed the original record")
	}
	if _, ok := f.Records["other"]; ok {
		t.Errorf("Adding to the clone changed the original map")
	}
}
