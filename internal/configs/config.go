package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/kete/internal/errors"
)

// Config is the on-disk configuration file.
type Config struct {
	Vault     VaultConfig     `toml:"vault"`
	Generator GeneratorConfig `toml:"generator"`
}

// VaultConfig locates the key, vault and audit files.
type VaultConfig struct {
	KeyPath     string `toml:"key_path"`
	VaultPath   string `toml:"vault_path"`
	AuditPath   string `toml:"audit_path"`
	LockTimeout string `toml:"lock_timeout"`
	Passphrase  bool   `toml:"passphrase"`
}

// GeneratorConfig configures password generation.
type GeneratorConfig struct {
	Length  int    `toml:"length"`
	Charset string `toml:"charset"`
}

// DefaultConfigPath returns the default location of the config file.
func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error getting config directory: %w", err)
	}
	return filepath.Join(configDir, "kete", "config.toml"), nil
}

// DefaultConfig returns a config populated with the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Vault: VaultConfig{
			KeyPath:     DefaultKeyPath,
			VaultPath:   DefaultVaultPath,
			LockTimeout: DefaultLockTimeout.String(),
		},
		Generator: GeneratorConfig{
			Length: DefaultPasswordLength,
		},
	}
}

// LoadConfig loads the config file at path. A missing file yields an empty
// config unless required is set.
func LoadConfig(path string, required bool) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if required {
			return nil, fmt.Errorf("%w: %s does not exist", kerrors.ErrInvalidConfig, path)
		}
		return config, nil
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidConfig, path, err)
	}

	return config, nil
}

// InitConfig writes the default config to path. It refuses to replace an
// existing file unless force is set.
func InitConfig(path string, force bool) (*Config, error) {
	if _, err := os.Stat(path); err == nil && !force {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrConfigExists, path)
	}

	config := DefaultConfig()
	if err := SaveTOML(path, config); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return config, nil
}
