package workflows

import (
	"context"

	"github.com/PolarWolf314/kete/internal/audit"
	kerrors "github.com/PolarWolf314/kete/internal/errors"
)

// RemoveOptions configures the remove workflow.
type RemoveOptions struct {
	VaultOptions

	Service string
}

// RemoveResult contains the outcome of a remove operation.
type RemoveResult struct {
	Service string

	// Removed is false when the service was not in the vault.
	Removed bool
}

// Remove deletes the entry for a service. Removing an absent service
// succeeds with Removed set to false.
func Remove(ctx context.Context, opts RemoveOptions) (*RemoveResult, error) {
	if opts.Service == "" {
		return nil, kerrors.ErrInvalidServiceName
	}

	eng, err := openEngine(ctx, opts.VaultOptions)
	if err != nil {
		return nil, err
	}
	defer eng.Close()

	existed := contains(eng.List(), opts.Service)

	if err := eng.Remove(ctx, opts.Service); err != nil {
		return nil, err
	}

	// The engine reloads under the lock, so this reflects the saved state.
	removed := existed && !contains(eng.List(), opts.Service)
	if removed {
		opts.record(audit.OpRemove, opts.Service, eng.VaultID())
	}

	return &RemoveResult{Service: opts.Service, Removed: removed}, nil
}
