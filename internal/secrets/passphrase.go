package secrets

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	kerrors "github.com/PolarWolf314/kete/internal/errors"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of the Argon2id salt in bytes.
const SaltSize = 16

// KDFParams are the Argon2id cost parameters.
type KDFParams struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// DefaultKDFParams follows the RFC 9106 second recommended option.
var DefaultKDFParams = KDFParams{Time: 3, Memory: 64 * 1024, Threads: 4}

// SaltPath returns where the salt for a passphrase-derived key is stored.
func SaltPath(keyPath string) string {
	return keyPath + ".salt"
}

// CreateSalt writes a new random salt to path. It never overwrites an existing file.
func CreateSalt(path string) ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(salt) + "\n"
	if err := writeExclusive(path, []byte(encoded)); err != nil {
		return nil, err
	}

	return salt, nil
}

// LoadSalt reads a salt previously written by CreateSalt.
func LoadSalt(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrKeyFileMissing, path)
		}
		return nil, fmt.Errorf("failed to read salt file %s: %w", path, err)
	}

	salt, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace(data)))
	if err != nil || len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: %s is not a valid salt file", kerrors.ErrKeyFormat, path)
	}

	return salt, nil
}

// DeriveKey derives a master key from a passphrase with Argon2id.
func DeriveKey(passphrase, salt []byte, params KDFParams) (*MasterKey, error) {
	if len(passphrase) == 0 {
		return nil, fmt.Errorf("%w: passphrase is empty", kerrors.ErrKeyFormat)
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt must be %d bytes", kerrors.ErrKeyFormat, SaltSize)
	}

	raw := argon2.IDKey(passphrase, salt, params.Time, params.Memory, params.Threads, KeySize)
	return NewMasterKey(raw)
}
