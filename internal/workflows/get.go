package workflows

import (
	"context"

	"github.com/PolarWolf314/kete/internal/audit"
	kerrors "github.com/PolarWolf314/kete/internal/errors"
)

// GetOptions configures the get workflow.
type GetOptions struct {
	VaultOptions

	Service string
}

// GetResult contains the outcome of a get operation.
type GetResult struct {
	Service  string
	Password string

	// Found is false when the vault has no entry for Service.
	Found bool
}

// Get decrypts the password stored for a service. A missing service is not
// an error; check Found.
//
// Returns ErrAuthentication if the stored record has been tampered with.
func Get(ctx context.Context, opts GetOptions) (*GetResult, error) {
	if opts.Service == "" {
		return nil, kerrors.ErrInvalidServiceName
	}

	eng, err := openEngine(ctx, opts.VaultOptions)
	if err != nil {
		return nil, err
	}
	defer eng.Close()

	password, found, err := eng.Get(opts.Service)
	if err != nil {
		return nil, err
	}

	if found {
		opts.record(audit.OpGet, opts.Service, eng.VaultID())
	}

	return &GetResult{
		Service:  opts.Service,
		Password: password,
		Found:    found,
	}, nil
}
