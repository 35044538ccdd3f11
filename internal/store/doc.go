// Package store persists the encrypted vault to a single file on local disk.
//
// The vault file is versioned JSON. Every record is stored as the
// ciphertext, nonce and tag produced by the secrets package, base64 encoded:
//
//	{
//	  "version": 1,
//	  "cipher": "xchacha20-poly1305",
//	  "vault_id": "7f6c...",
//	  "key_check": {"ciphertext": "...", "nonce": "...", "tag": "..."},
//	  "records": {
//	    "github": {"ciphertext": "...", "nonce": "...", "tag": "..."}
//	  }
//	}
//
// A missing file loads as an empty vault. A file that cannot be parsed, or
// whose records are structurally invalid, fails with ErrVaultCorrupt. A file
// written with a different format version or cipher fails with
// ErrUnsupportedVaultVersion so it is never silently misinterpreted.
//
// # Durability
//
// Save never writes the destination in place. It writes a temporary file in
// the same directory, fsyncs it, renames it over the destination and then
// fsyncs the directory. A crash at any point leaves either the old or the new
// vault on disk, never a truncated one.
//
// # Locking
//
// Store guards the vault with an advisory lock on a sibling file
// (<vault>.lock). The lock file is separate from the vault because the vault
// inode is replaced on every save. Writers take the lock exclusively for
// the whole reload-modify-save span; readers take it shared while loading.
// With a lock timeout configured, acquisition fails with ErrLockTimeout
// instead of blocking forever on a stale holder.
package store
