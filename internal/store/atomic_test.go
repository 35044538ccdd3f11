package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// A crash between writing the temp file and renaming it must leave the
// previous vault intact and loadable.
func TestSave_CrashBeforeRenameKeepsPreviousVault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "passwords.json")

	original := NewFile()
	original.Records["github"] = testRecord(1)
	if err := Save(path, original); err != nil {
		t.Fatalf("Failed to save initial vault: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read vault: %v", err)
	}

	crash := errors.New("simulated crash")
	var sawTemp bool
	beforeRename = func(tmpPath string) error {
		if _, err := os.Stat(tmpPath); err == nil {
			sawTemp = true
		}
		return crash
	}
	t.Cleanup(func() { beforeRename = func(string) error { return nil } })

	updated := original.Clone()
	updated.Records["email"] = testRecord(2)
	if err := Save(path, updated); !errors.Is(err, crash) {
		t.Fatalf("Expected simulated crash error, got: %v", err)
	}
	if !sawTemp {
		t.Errorf("Expected the temp file to exist before rename")
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read vault after crash: %v", err)
	}
	if string(after) != string(before) {
		t.Errorf("Vault file changed despite the failed save")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Previous vault is not loadable: %v", err)
	}
	if len(loaded.Records) != 1 {
		t.Errorf("Expected 1 record after crash, got %d", len(loaded.Records))
	}
}

// A temp file left behind by a crashed writer does not affect loading.
func TestLoad_IgnoresLeftoverTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "passwords.json")

	f := NewFile()
	f.Records["github"] = testRecord(1)
	if err := Save(path, f); err != nil {
		t.Fatalf("Failed to save vault: %v", err)
	}

	leftover := filepath.Join(dir, ".passwords.json.tmp-123")
	if err := os.WriteFile(leftover, []byte(`{"version": 1, "rec`), 0600); err != nil {
		t.Fatalf("Failed to write leftover temp file: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load vault: %v", err)
	}
	if _, ok := loaded.Records["github"]; !ok {
		t.Errorf("Expected github record to be present")
	}

	leftovers, err := TempFiles(path)
	if err != nil {
		t.Fatalf("TempFiles failed: %v", err)
	}
	if len(leftovers) != 1 || leftovers[0] != leftover {
		t.Errorf("Expected TempFiles to report %s, got %v", leftover, leftovers)
	}
}

func TestTempFiles_MissingDirectory(t *testing.T) {
	leftovers, err := TempFiles(filepath.Join(t.TempDir(), "missing", "passwords.json"))
	if err != nil || len(leftovers) != 0 {
		t.Errorf("Expected no leftovers and no error, got %v, %v", leftovers, err)
	}
}

func TestSave_NoTempFilesRemain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "passwords.json")

	for i := 0; i < 3; i++ {
		if err := Save(path, NewFile()); err != nil {
			t.Fatalf("Failed to save vault: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("Unexpected temp file left behind: %s", e.Name())
		}
	}
	if leftovers, _ := TempFiles(path); len(leftovers) != 0 {
		t.Errorf("TempFiles reported %v after clean saves", leftovers)
	}
}

func TestSave_CreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "vault", "passwords.json")
	if err := Save(path, NewFile()); err != nil {
		t.Fatalf("Failed to save vault into a missing directory: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Vault file was not created: %v", err)
	}
}
