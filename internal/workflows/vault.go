package workflows

import (
	"context"
	"time"

	"github.com/PolarWolf314/kete/internal/audit"
	kerrors "github.com/PolarWolf314/kete/internal/errors"
	"github.com/PolarWolf314/kete/internal/secrets"
	"github.com/PolarWolf314/kete/internal/vault"
)

// VaultOptions locates the vault and describes how to obtain its key.
// It is embedded in the options of every workflow that opens the vault.
type VaultOptions struct {
	KeyPath   string
	VaultPath string

	// AuditPath is the audit log. Empty disables auditing.
	AuditPath string

	LockTimeout time.Duration

	// UsePassphrase derives the key from Passphrase and the salt stored
	// next to KeyPath instead of reading KeyPath.
	UsePassphrase bool
	Passphrase    []byte

	// KDFParams overrides the Argon2id cost. Nil uses the defaults.
	KDFParams *secrets.KDFParams
}

func (o VaultOptions) kdfParams() secrets.KDFParams {
	if o.KDFParams != nil {
		return *o.KDFParams
	}
	return secrets.DefaultKDFParams
}

// loadKey loads the master key from disk, or derives it in passphrase mode.
func (o VaultOptions) loadKey() (*secrets.MasterKey, error) {
	if !o.UsePassphrase {
		return secrets.LoadKey(o.KeyPath)
	}

	if len(o.Passphrase) == 0 {
		return nil, kerrors.ErrPassphraseRequired
	}

	salt, err := secrets.LoadSalt(secrets.SaltPath(o.KeyPath))
	if err != nil {
		return nil, err
	}

	return secrets.DeriveKey(o.Passphrase, salt, o.kdfParams())
}

// openEngine opens the vault described by o. The caller must close it.
func openEngine(ctx context.Context, o VaultOptions) (*vault.Engine, error) {
	key, err := o.loadKey()
	if err != nil {
		return nil, err
	}

	return vault.Open(ctx, vault.Options{
		VaultPath:   o.VaultPath,
		Key:         key,
		LockTimeout: o.LockTimeout,
	})
}

// record appends an audit entry for a vault operation.
func (o VaultOptions) record(op, service, vaultID string) {
	entry := audit.NewEntry(op)
	entry.Service = service
	entry.VaultID = vaultID
	audit.Log(o.AuditPath, entry)
}

func contains(sorted []string, s string) bool {
	for _, v := range sorted {
		if v == s {
			return true
		}
	}
	return false
}
