package secrets

import (
	"fmt"

	kerrors "github.com/PolarWolf314/kete/internal/errors"
	"github.com/awnumar/memguard"
)

// KeySize is the length of the master key in bytes.
const KeySize = 32

// MasterKey holds the vault key inside an encrypted memguard enclave.
type MasterKey struct {
	enclave *memguard.Enclave
}

// NewMasterKey seals raw into an enclave. raw is wiped, even on error.
func NewMasterKey(raw []byte) (*MasterKey, error) {
	if len(raw) != KeySize {
		memguard.WipeBytes(raw)
		return nil, fmt.Errorf("%w: expected %d bytes, got %d bytes", kerrors.ErrKeyFormat, KeySize, len(raw))
	}

	buf := memguard.NewBufferFromBytes(raw)
	return &MasterKey{enclave: buf.Seal()}, nil
}

// withKey decrypts the key into locked memory for the duration of fn.
func (k *MasterKey) withKey(fn func(key []byte) error) error {
	if k.IsDestroyed() {
		return kerrors.ErrVaultClosed
	}

	buf, err := k.enclave.Open()
	if err != nil {
		return fmt.Errorf("failed to open key enclave: %w", err)
	}
	defer buf.Destroy()

	return fn(buf.Bytes())
}

// Destroy releases the enclave. The key cannot be used afterwards.
func (k *MasterKey) Destroy() {
	if k != nil {
		k.enclave = nil
	}
}

// IsDestroyed returns true if the key was destroyed or never initialized.
func (k *MasterKey) IsDestroyed() bool {
	return k == nil || k.enclave == nil
}
