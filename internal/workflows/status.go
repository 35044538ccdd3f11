package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/PolarWolf314/kete/internal/secrets"
	"github.com/PolarWolf314/kete/internal/store"
)

// StatusOptions configures the status workflow.
type StatusOptions struct {
	VaultOptions
}

// StatusResult describes the vault without decrypting anything.
type StatusResult struct {
	// KeyPath is the key file, or the salt file in passphrase mode.
	KeyPath    string
	KeyExists  bool
	KeyMode    os.FileMode
	Passphrase bool

	VaultPath   string
	VaultExists bool
	VaultID     string
	Version     int
	Cipher      string
	Records     int
	ModTime     time.Time

	AuditPath string
}

// Status reads the vault header and reports where everything lives. It does
// not need the master key.
//
// Returns ErrVaultCorrupt or ErrUnsupportedVaultVersion if the vault file
// cannot be read.
func Status(ctx context.Context, opts StatusOptions) (*StatusResult, error) {
	result := &StatusResult{
		KeyPath:    opts.KeyPath,
		Passphrase: opts.UsePassphrase,
		VaultPath:  opts.VaultPath,
		AuditPath:  opts.AuditPath,
	}
	if opts.UsePassphrase {
		result.KeyPath = secrets.SaltPath(opts.KeyPath)
	}

	mode, _, err := secrets.KeyFileMode(result.KeyPath)
	switch {
	case err == nil:
		result.KeyExists = true
		result.KeyMode = mode
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("checking key file: %w", err)
	}

	info, err := os.Stat(opts.VaultPath)
	if errors.Is(err, os.ErrNotExist) {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("checking vault file: %w", err)
	}
	result.VaultExists = true
	result.ModTime = info.ModTime()

	st := store.New(opts.VaultPath, opts.LockTimeout)
	release, err := st.RLock(ctx)
	if err != nil {
		return nil, err
	}
	f, err := st.Load()
	_ = release()
	if err != nil {
		return nil, err
	}

	result.VaultID = f.VaultID
	result.Version = f.Version
	result.Cipher = f.Cipher
	result.Records = len(f.Records)

	return result, nil
}
