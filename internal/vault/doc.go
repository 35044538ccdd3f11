// Package vault implements the credential vault engine.
//
// An Engine ties together a master key (secrets package), record encryption
// (secrets package) and the vault file (store package):
//
//	eng, err := vault.Open(ctx, vault.Options{KeyPath: "secret.key", VaultPath: "passwords.json"})
//	if err != nil {
//	    return err
//	}
//	defer eng.Close()
//
//	if err := eng.Add(ctx, "github", "hunter2"); err != nil {
//	    return err
//	}
//	password, found, err := eng.Get("github")
//
// # Key Verification
//
// The first save, or Initialize, seals a fixed verifier under the master key
// and stores it in the vault header. Open decrypts it and fails with
// ErrVaultKeyMismatch when a different key is supplied. Records themselves
// are decrypted lazily in Get, so a tampered record is reported as
// ErrAuthentication for that service only. Plaintext is never held for
// records that are not requested.
//
// # Mutations
//
// Add and Remove take the store's exclusive lock, reload the vault from disk,
// apply the change and save the whole file before releasing the lock. Changes
// made by another process in the meantime are therefore never lost. The
// in-memory view is only replaced after a successful save, so it is never
// ahead of what is on disk.
//
// # Ordering
//
// List returns service names sorted lexicographically.
package vault
