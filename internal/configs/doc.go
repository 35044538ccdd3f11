// Package configs manages configuration for Kete.
//
// Configuration is stored in TOML format. The file is optional; every field
// has a built-in default:
//
//	[vault]
//	key_path = "secret.key"
//	vault_path = "passwords.json"
//	audit_path = ""        # default: audit.jsonl next to the vault, "-" disables
//	lock_timeout = "30s"   # "0" waits for the vault lock indefinitely
//	passphrase = false     # derive the master key from a passphrase
//
//	[generator]
//	length = 16
//	charset = ""           # default: letters, digits and punctuation
//
// The default location is $XDG_CONFIG_HOME/kete/config.toml (or the
// platform equivalent reported by os.UserConfigDir). The --config flag
// selects a different file.
//
// # Settings
//
// Resolve merges the loaded Config with command-line overrides into a
// Settings value. Precedence is flags, then the config file, then defaults.
// Environment variables are never consulted for vault paths, so the same
// flags and config always address the same vault.
package configs
