package configs

import (
	"fmt"
	"path/filepath"
	"time"

	kerrors "github.com/PolarWolf314/kete/internal/errors"
	"github.com/PolarWolf314/kete/internal/secrets"
	"github.com/PolarWolf314/kete/internal/utils"
)

const (
	DefaultKeyPath        = "secret.key"
	DefaultVaultPath      = "passwords.json"
	DefaultAuditFileName  = "audit.jsonl"
	DefaultLockTimeout    = 30 * time.Second
	DefaultPasswordLength = secrets.DefaultPasswordLength

	// AuditDisabled as audit_path turns the audit log off.
	AuditDisabled = "-"
)

// Settings are the resolved values commands operate on.
type Settings struct {
	ConfigPath     string
	KeyPath        string
	VaultPath      string
	AuditPath      string // empty when auditing is disabled
	LockTimeout    time.Duration
	Passphrase     bool
	PasswordLength int
	Charset        string
}

// Overrides carries values given on the command line. Empty fields fall
// through to the config file.
type Overrides struct {
	KeyPath     string
	VaultPath   string
	AuditPath   string
	LockTimeout string
	Passphrase  bool
}

// Resolve merges overrides, config and defaults.
func Resolve(configPath string, config *Config, o Overrides) (*Settings, error) {
	if config == nil {
		config = &Config{}
	}

	s := &Settings{
		ConfigPath:     configPath,
		KeyPath:        firstNonEmpty(o.KeyPath, config.Vault.KeyPath, DefaultKeyPath),
		VaultPath:      firstNonEmpty(o.VaultPath, config.Vault.VaultPath, DefaultVaultPath),
		Passphrase:     o.Passphrase || config.Vault.Passphrase,
		PasswordLength: config.Generator.Length,
		Charset:        firstNonEmpty(config.Generator.Charset, secrets.DefaultCharset),
	}

	switch audit := firstNonEmpty(o.AuditPath, config.Vault.AuditPath); audit {
	case AuditDisabled:
		s.AuditPath = ""
	case "":
		s.AuditPath = filepath.Join(filepath.Dir(s.VaultPath), DefaultAuditFileName)
	default:
		s.AuditPath = audit
	}

	timeout := firstNonEmpty(o.LockTimeout, config.Vault.LockTimeout)
	if timeout == "" {
		s.LockTimeout = DefaultLockTimeout
	} else {
		d, err := time.ParseDuration(timeout)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("%w: lock_timeout %q is not a valid duration", kerrors.ErrInvalidConfig, timeout)
		}
		s.LockTimeout = d
	}

	switch {
	case s.PasswordLength == 0:
		s.PasswordLength = DefaultPasswordLength
	case s.PasswordLength < 0:
		return nil, fmt.Errorf("%w: generator length must be positive, got %d", kerrors.ErrInvalidConfig, s.PasswordLength)
	}

	for _, p := range []*string{&s.KeyPath, &s.VaultPath, &s.AuditPath} {
		expanded, err := utils.ExpandHome(*p)
		if err != nil {
			return nil, err
		}
		*p = expanded
	}

	return s, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Config returns the settings as a config file would express them.
func (s *Settings) Config() *Config {
	audit := s.AuditPath
	if audit == "" {
		audit = AuditDisabled
	}
	return &Config{
		Vault: VaultConfig{
			KeyPath:     s.KeyPath,
			VaultPath:   s.VaultPath,
			AuditPath:   audit,
			LockTimeout: s.LockTimeout.String(),
			Passphrase:  s.Passphrase,
		},
		Generator: GeneratorConfig{
			Length:  s.PasswordLength,
			Charset: s.Charset,
		},
	}
}
