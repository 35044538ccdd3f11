package workflows

import (
	"context"

	"github.com/PolarWolf314/kete/internal/audit"
	"github.com/PolarWolf314/kete/internal/secrets"
)

// GenerateOptions configures the generate workflow.
type GenerateOptions struct {
	VaultOptions

	Length  int
	Charset string

	// SaveAs stores the generated password under this service when set.
	SaveAs string
}

// GenerateResult contains the outcome of a generate operation.
type GenerateResult struct {
	Password string

	// Service is where the password was saved. Empty when not saved.
	Service  string
	Replaced bool
}

// Generate creates a random password drawn uniformly from Charset. The vault
// is only opened when SaveAs is set.
//
// Returns ErrInvalidLength if Length is not positive.
// Returns ErrInvalidCharset if Charset is empty.
func Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	password, err := secrets.GeneratePassword(opts.Length, opts.Charset)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{Password: password}
	if opts.SaveAs == "" {
		return result, nil
	}

	eng, err := openEngine(ctx, opts.VaultOptions)
	if err != nil {
		return nil, err
	}
	defer eng.Close()

	result.Replaced = contains(eng.List(), opts.SaveAs)

	if err := eng.Add(ctx, opts.SaveAs, password); err != nil {
		return nil, err
	}
	result.Service = opts.SaveAs
	opts.record(audit.OpAdd, opts.SaveAs, eng.VaultID())

	return result, nil
}
