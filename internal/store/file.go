package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	kerrors "github.com/PolarWolf314/kete/internal/errors"
	"github.com/PolarWolf314/kete/internal/secrets"
)

// FormatVersion is the only vault file version this build reads and writes.
const FormatVersion = 1

// Record is the on-disk form of one sealed secret.
type Record struct {
	Ciphertext []byte `json:"ciphertext"`
	Nonce      []byte `json:"nonce"`
	Tag        []byte `json:"tag"`
}

// File is the on-disk representation of a vault.
type File struct {
	Version  int               `json:"version"`
	Cipher   string            `json:"cipher"`
	VaultID  string            `json:"vault_id,omitempty"`
	KeyCheck *Record           `json:"key_check,omitempty"`
	Records  map[string]Record `json:"records"`
}

// NewFile returns an empty vault in the current format.
func NewFile() *File {
	return &File{
		Version: FormatVersion,
		Cipher:  secrets.CipherName,
		Records: make(map[string]Record),
	}
}

// Clone returns a deep copy of the file so callers can modify it freely.
func (f *File) Clone() *File {
	out := &File{
		Version: f.Version,
		Cipher:  f.Cipher,
		VaultID: f.VaultID,
		Records: make(map[string]Record, len(f.Records)),
	}
	if f.KeyCheck != nil {
		kc := f.KeyCheck.clone()
		out.KeyCheck = &kc
	}
	for service, rec := range f.Records {
		out.Records[service] = rec.clone()
	}
	return out
}

// Sealed converts the record into the form the secrets package opens.
func (r Record) Sealed() *secrets.Sealed {
	return &secrets.Sealed{Ciphertext: r.Ciphertext, Nonce: r.Nonce, Tag: r.Tag}
}

// RecordFromSealed converts sealed secret output into a storable record.
func RecordFromSealed(s *secrets.Sealed) Record {
	return Record{Ciphertext: s.Ciphertext, Nonce: s.Nonce, Tag: s.Tag}
}

func (r Record) clone() Record {
	return Record{
		Ciphertext: append([]byte(nil), r.Ciphertext...),
		Nonce:      append([]byte(nil), r.Nonce...),
		Tag:        append([]byte(nil), r.Tag...),
	}
}

func (r Record) validate() error {
	if len(r.Nonce) != secrets.NonceSize {
		return fmt.Errorf("nonce must be %d bytes, got %d", secrets.NonceSize, len(r.Nonce))
	}
	if len(r.Tag) != secrets.TagSize {
		return fmt.Errorf("tag must be %d bytes, got %d", secrets.TagSize, len(r.Tag))
	}
	return nil
}

// Load reads the vault file at path. A missing file yields an empty vault.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewFile(), nil
		}
		return nil, fmt.Errorf("failed to read vault file %s: %w", path, err)
	}

	return Decode(data)
}

// Decode parses and validates a serialized vault.
func Decode(data []byte) (*File, error) {
	// Check the version before the full decode so a future layout is
	// reported as unsupported rather than corrupt.
	var header struct {
		Version *int `json:"version"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrVaultCorrupt, err)
	}
	if header.Version == nil {
		return nil, fmt.Errorf("%w: missing format version", kerrors.ErrVaultCorrupt)
	}
	if *header.Version != FormatVersion {
		return nil, fmt.Errorf("%w: version %d (supported: %d)", kerrors.ErrUnsupportedVaultVersion, *header.Version, FormatVersion)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrVaultCorrupt, err)
	}

	if f.Cipher != secrets.CipherName {
		return nil, fmt.Errorf("%w: cipher %q", kerrors.ErrUnsupportedVaultVersion, f.Cipher)
	}

	if f.KeyCheck != nil {
		if err := f.KeyCheck.validate(); err != nil {
			return nil, fmt.Errorf("%w: key check: %v", kerrors.ErrVaultCorrupt, err)
		}
	}

	if f.Records == nil {
		f.Records = make(map[string]Record)
	}
	for service, rec := range f.Records {
		if service == "" {
			return nil, fmt.Errorf("%w: record with empty service name", kerrors.ErrVaultCorrupt)
		}
		if err := rec.validate(); err != nil {
			return nil, fmt.Errorf("%w: record %q: %v", kerrors.ErrVaultCorrupt, service, err)
		}
	}

	return &f, nil
}

// Encode serializes the vault in the current format.
func Encode(f *File) ([]byte, error) {
	out := *f
	out.Version = FormatVersion
	out.Cipher = secrets.CipherName
	if out.Records == nil {
		out.Records = make(map[string]Record)
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode vault: %w", err)
	}
	return append(data, '\n'), nil
}

// Save atomically replaces the vault file at path.
func Save(path string, f *File) error {
	data, err := Encode(f)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data, FilePermissions)
}
