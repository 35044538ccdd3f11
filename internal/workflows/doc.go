// Package workflows provides high-level orchestration for Kete commands.
//
// Workflows coordinate the secrets, store, vault and audit packages to
// implement complete user-facing features. Each workflow handles a single
// command's business logic, independent of CLI concerns like flag parsing,
// prompts, spinners and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Collects passwords and passphrases from the user
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Loading or deriving the master key
//   - Opening the vault and closing it again
//   - Performing the core operation
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - Init: Creates a master key (or passphrase salt) and an empty vault
//   - Add, Get, List, Remove: Vault operations on a single service
//   - Generate: Creates a random password and optionally stores it
//   - Verify: Authenticates every record in the vault
//   - Status: Summarizes the key, vault and audit log
//   - Doctor: Runs health checks and suggests fixes
//   - Log: Reads and filters the audit log
//   - ConfigInit: Writes a default config file
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package. Use
// errors.Is() to check for specific conditions:
//
//	result, err := workflows.Get(ctx, opts)
//	if errors.Is(err, kerrors.ErrKeyFileMissing) {
//	    // Suggest running kete init
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// It bounds how long a workflow waits for the vault lock.
package workflows
