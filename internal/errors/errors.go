package errors

import "errors"

// Key errors indicate issues with the master key file.
var (
	// ErrKeyFileMissing indicates the master key file does not exist.
	ErrKeyFileMissing = errors.New("key file not found")

	// ErrKeyFileExists indicates a key file already exists and will not be overwritten.
	ErrKeyFileExists = errors.New("key file already exists")

	// ErrKeyFormat indicates the key file content is malformed or has the wrong length.
	ErrKeyFormat = errors.New("key file is malformed")

	// ErrPassphraseRequired indicates passphrase mode is enabled but no passphrase was given.
	ErrPassphraseRequired = errors.New("passphrase required")
)

// Vault errors indicate issues with the vault file or its relationship to the key.
var (
	// ErrVaultCorrupt indicates the vault file structure could not be parsed.
	ErrVaultCorrupt = errors.New("vault file is corrupt")

	// ErrVaultKeyMismatch indicates the loaded key cannot open the existing vault.
	ErrVaultKeyMismatch = errors.New("key does not match vault")

	// ErrUnsupportedVaultVersion indicates the vault was written in an unknown format version.
	ErrUnsupportedVaultVersion = errors.New("unsupported vault format version")

	// ErrVaultExists indicates init found a vault file that a new key could not open.
	ErrVaultExists = errors.New("vault file already exists")

	// ErrVaultClosed indicates the vault engine has been closed.
	ErrVaultClosed = errors.New("vault is closed")
)

// Cryptographic errors indicate failures during encryption or decryption operations.
var (
	// ErrAuthentication indicates a record failed integrity verification.
	ErrAuthentication = errors.New("authentication failed: record tampered or wrong key")
)

// Input errors indicate invalid arguments supplied by the caller.
var (
	// ErrInvalidServiceName indicates the service name is empty.
	ErrInvalidServiceName = errors.New("service name must not be empty")

	// ErrInvalidCharset indicates the password charset is empty or unusable.
	ErrInvalidCharset = errors.New("invalid password charset")

	// ErrInvalidLength indicates the requested password length is not positive.
	ErrInvalidLength = errors.New("password length must be positive")

	// ErrEmptyPassword indicates no password was provided for a service.
	ErrEmptyPassword = errors.New("password must not be empty")

	// ErrInvalidDateFormat indicates a date filter is not in YYYY-MM-DD format.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// Concurrency errors indicate failures coordinating with other processes.
var (
	// ErrLockTimeout indicates the vault lock could not be acquired in time.
	ErrLockTimeout = errors.New("timed out waiting for vault lock")
)

// Config and file errors.
var (
	// ErrInvalidConfig indicates the configuration file is malformed.
	ErrInvalidConfig = errors.New("configuration is invalid")

	// ErrConfigExists indicates a configuration file already exists.
	ErrConfigExists = errors.New("configuration file already exists")

	// ErrNoFilesFound indicates an expected file (such as the audit log) does not exist.
	ErrNoFilesFound = errors.New("no matching files found")
)
