// Package secrets provides the cryptographic primitives for Kete.
//
// This package handles master key management, authenticated encryption of
// individual vault records, and password generation. It knows nothing about
// the vault file format; the store and vault packages build on it.
//
// # Master Key
//
// The master key is a random 256-bit key. It is written once to a key file
// (default secret.key) with 0600 permissions, encoded as base64url text:
//
//	GenerateKey(path)  // fails with ErrKeyFileExists if the file exists
//	LoadKey(path)      // fails with ErrKeyFileMissing or ErrKeyFormat
//
// At runtime the key lives inside a memguard Enclave. It is only decrypted
// into locked memory for the duration of a single Seal or Open call, and
// MasterKey.Destroy drops the enclave so the key cannot be used again.
//
// A passphrase variant derives the master key with Argon2id from a passphrase
// and a random salt stored next to the key path (<key>.salt). No key file is
// written in that mode.
//
// # Record Encryption
//
// Records are sealed with XChaCha20-Poly1305. Every call to Seal draws a fresh
// random 24-byte nonce, so nonces are never reused under the same key. The
// 16-byte Poly1305 tag is stored separately from the ciphertext. Callers pass
// associated data (the service name) that is authenticated but not
// encrypted, which binds a record to the service it was stored under.
//
// Open never returns plaintext unless the tag verifies. Any failure,
// including a wrong key, is reported as ErrAuthentication.
//
// # Password Generation
//
// GeneratePassword draws characters uniformly from a charset using
// crypto/rand. The default charset is ASCII letters, digits and punctuation.
package secrets
