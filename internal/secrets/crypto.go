package secrets

import (
	"crypto/rand"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/kete/internal/errors"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// CipherName identifies the record cipher in the vault file header.
	CipherName = "xchacha20-poly1305"

	// NonceSize is the length of the random per-record nonce.
	NonceSize = chacha20poly1305.NonceSizeX

	// TagSize is the length of the Poly1305 authentication tag.
	TagSize = chacha20poly1305.Overhead
)

// Sealed is the encrypted form of a single secret.
type Sealed struct {
	Ciphertext []byte
	Nonce      []byte
	Tag        []byte
}

// Seal encrypts plaintext under key with a fresh random nonce.
// additionalData is authenticated but not encrypted.
func Seal(key *MasterKey, plaintext, additionalData []byte) (*Sealed, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	var sealed *Sealed
	err := key.withKey(func(k []byte) error {
		aead, err := chacha20poly1305.NewX(k)
		if err != nil {
			return fmt.Errorf("failed to create cipher: %w", err)
		}

		out := aead.Seal(nil, nonce, plaintext, additionalData)
		split := len(out) - TagSize
		sealed = &Sealed{
			Ciphertext: out[:split:split],
			Nonce:      nonce,
			Tag:        out[split:],
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sealed, nil
}

// Open authenticates and decrypts a sealed record.
// It returns ErrAuthentication if the tag does not verify.
func Open(key *MasterKey, sealed *Sealed, additionalData []byte) ([]byte, error) {
	if sealed == nil || len(sealed.Nonce) != NonceSize || len(sealed.Tag) != TagSize {
		return nil, fmt.Errorf("%w: malformed nonce or tag", kerrors.ErrAuthentication)
	}

	box := make([]byte, 0, len(sealed.Ciphertext)+TagSize)
	box = append(box, sealed.Ciphertext...)
	box = append(box, sealed.Tag...)

	var plaintext []byte
	err := key.withKey(func(k []byte) error {
		aead, err := chacha20poly1305.NewX(k)
		if err != nil {
			return fmt.Errorf("failed to create cipher: %w", err)
		}

		out, err := aead.Open(nil, sealed.Nonce, box, additionalData)
		if err != nil {
			return kerrors.ErrAuthentication
		}
		plaintext = out
		return nil
	})
	if err != nil {
		return nil, err
	}

	return plaintext, nil
}
