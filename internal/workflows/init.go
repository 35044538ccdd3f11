package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/kete/internal/audit"
	kerrors "github.com/PolarWolf314/kete/internal/errors"
	"github.com/PolarWolf314/kete/internal/secrets"
	"github.com/PolarWolf314/kete/internal/store"
	"github.com/PolarWolf314/kete/internal/vault"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	VaultOptions
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// KeyPath is the key file that was created. Empty in passphrase mode.
	KeyPath string

	// SaltPath is the salt file that was created in passphrase mode.
	SaltPath string

	VaultPath string
	VaultID   string
}

// Init creates a new master key, or a salt in passphrase mode, and writes
// an empty vault protected by it.
//
// Returns ErrKeyFileExists if the key or salt file already exists.
// Returns ErrVaultExists if a vault file is already present, since a new
// key could never open it.
// Returns ErrPassphraseRequired in passphrase mode without a passphrase.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	if _, err := os.Stat(opts.VaultPath); err == nil {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrVaultExists, opts.VaultPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking vault file: %w", err)
	}

	result := &InitResult{VaultPath: opts.VaultPath}

	key, created, err := createKey(opts.VaultOptions)
	if err != nil {
		return nil, err
	}
	if opts.UsePassphrase {
		result.SaltPath = created
	} else {
		result.KeyPath = created
	}

	eng, err := vault.Open(ctx, vault.Options{
		VaultPath:   opts.VaultPath,
		Key:         key,
		LockTimeout: opts.LockTimeout,
	})
	if err != nil {
		_ = os.Remove(created)
		return nil, err
	}
	defer eng.Close()

	if err := eng.Initialize(ctx); err != nil {
		_ = os.Remove(created)
		_ = os.Remove(store.LockPath(opts.VaultPath))
		return nil, err
	}
	result.VaultID = eng.VaultID()

	entry := audit.NewEntry(audit.OpInit)
	entry.KeyPath = created
	entry.VaultID = result.VaultID
	audit.Log(opts.AuditPath, entry)

	return result, nil
}

// createKey writes the new key material and returns the key along with the
// path of the file it created.
func createKey(o VaultOptions) (*secrets.MasterKey, string, error) {
	if !o.UsePassphrase {
		key, err := secrets.GenerateKey(o.KeyPath)
		if err != nil {
			return nil, "", err
		}
		return key, o.KeyPath, nil
	}

	if len(o.Passphrase) == 0 {
		return nil, "", kerrors.ErrPassphraseRequired
	}

	saltPath := secrets.SaltPath(o.KeyPath)
	salt, err := secrets.CreateSalt(saltPath)
	if err != nil {
		return nil, "", err
	}

	key, err := secrets.DeriveKey(o.Passphrase, salt, o.kdfParams())
	if err != nil {
		_ = os.Remove(saltPath)
		return nil, "", err
	}
	return key, saltPath, nil
}
