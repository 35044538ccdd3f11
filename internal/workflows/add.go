package workflows

import (
	"context"

	"github.com/PolarWolf314/kete/internal/audit"
	kerrors "github.com/PolarWolf314/kete/internal/errors"
)

// AddOptions configures the add workflow.
type AddOptions struct {
	VaultOptions

	Service  string
	Password string
}

// AddResult contains the outcome of an add operation.
type AddResult struct {
	Service string

	// Replaced is true when the service already had a password.
	Replaced bool

	VaultID string
}

// Add stores a password for a service, replacing any existing one.
//
// Returns ErrInvalidServiceName if the service is empty.
// Returns ErrEmptyPassword if the password is empty.
// Returns ErrLockTimeout if another process holds the vault for too long.
func Add(ctx context.Context, opts AddOptions) (*AddResult, error) {
	if opts.Service == "" {
		return nil, kerrors.ErrInvalidServiceName
	}
	if opts.Password == "" {
		return nil, kerrors.ErrEmptyPassword
	}

	eng, err := openEngine(ctx, opts.VaultOptions)
	if err != nil {
		return nil, err
	}
	defer eng.Close()

	replaced := contains(eng.List(), opts.Service)

	if err := eng.Add(ctx, opts.Service, opts.Password); err != nil {
		return nil, err
	}

	result := &AddResult{
		Service:  opts.Service,
		Replaced: replaced,
		VaultID:  eng.VaultID(),
	}
	opts.record(audit.OpAdd, opts.Service, result.VaultID)

	return result, nil
}
