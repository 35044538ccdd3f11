// Package errors provides typed error values for the Kete application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Key errors: Master key file issues (ErrKeyFileMissing, ErrKeyFormat)
//   - Vault errors: Vault file state issues (ErrVaultCorrupt, ErrVaultKeyMismatch)
//   - Crypto errors: Authentication failures (ErrAuthentication)
//   - Input errors: Invalid arguments (ErrInvalidServiceName, ErrInvalidCharset)
//   - Concurrency errors: Lock acquisition (ErrLockTimeout)
//
// # Usage
//
// Return errors from internal packages:
//
//	if service == "" {
//	    return errors.ErrInvalidServiceName
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Get(ctx, opts)
//	if errors.Is(err, kerrors.ErrKeyFileMissing) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("opening record for %s: %w", service, errors.ErrAuthentication)
package errors
