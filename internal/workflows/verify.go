package workflows

import (
	"context"
)

// VerifyOptions configures the verify workflow.
type VerifyOptions struct {
	VaultOptions
}

// VerifyResult contains the outcome of a verify operation.
type VerifyResult struct {
	// Checked is the number of records that were authenticated.
	Checked int

	// Failed lists services whose records fail authentication, sorted.
	Failed []string
}

// OK reports whether every record authenticated.
func (r *VerifyResult) OK() bool {
	return len(r.Failed) == 0
}

// Verify decrypts every record to detect tampering or corruption. Plaintext
// is discarded immediately.
func Verify(ctx context.Context, opts VerifyOptions) (*VerifyResult, error) {
	eng, err := openEngine(ctx, opts.VaultOptions)
	if err != nil {
		return nil, err
	}
	defer eng.Close()

	failed, err := eng.Verify()
	if err != nil {
		return nil, err
	}

	return &VerifyResult{
		Checked: len(eng.List()),
		Failed:  failed,
	}, nil
}
