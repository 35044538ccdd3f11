package secrets

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/kete/internal/errors"
	"github.com/awnumar/memguard"
)

const (
	// KeyFilePermissions restricts key and salt files to the owner.
	KeyFilePermissions os.FileMode = 0600

	// KeyDirPermissions is used when creating a missing parent directory.
	KeyDirPermissions os.FileMode = 0700
)

var keyEncoding = base64.URLEncoding

// GenerateKey creates a new random master key and writes it to path.
// It never overwrites an existing file.
func GenerateKey(path string) (*MasterKey, error) {
	raw := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	encoded := make([]byte, keyEncoding.EncodedLen(KeySize)+1)
	keyEncoding.Encode(encoded, raw)
	encoded[len(encoded)-1] = '\n'
	defer memguard.WipeBytes(encoded)

	if err := writeExclusive(path, encoded); err != nil {
		memguard.WipeBytes(raw)
		return nil, err
	}

	return NewMasterKey(raw)
}

// LoadKey reads and validates the master key stored at path.
func LoadKey(path string) (*MasterKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrKeyFileMissing, path)
		}
		return nil, fmt.Errorf("failed to read key file %s: %w", path, err)
	}
	defer memguard.WipeBytes(data)

	trimmed := bytes.TrimSpace(data)
	raw := make([]byte, keyEncoding.DecodedLen(len(trimmed)))
	n, err := keyEncoding.Decode(raw, trimmed)
	if err != nil {
		memguard.WipeBytes(raw)
		return nil, fmt.Errorf("%w: %s is not valid base64url", kerrors.ErrKeyFormat, path)
	}

	return NewMasterKey(raw[:n])
}

// KeyFileMode returns the permission bits of the key file and whether they
// grant access to anyone other than the owner.
func KeyFileMode(path string) (os.FileMode, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, false, err
	}
	perm := info.Mode().Perm()
	return perm, perm&0077 != 0, nil
}

// writeExclusive creates path with owner-only permissions, failing if it exists.
func writeExclusive(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), KeyDirPermissions); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, KeyFilePermissions)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", kerrors.ErrKeyFileExists, path)
		}
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}

	return f.Close()
}
