package configs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	kerrors "github.com/PolarWolf314/kete/internal/errors"
	"github.com/PolarWolf314/kete/internal/secrets"
)

// writeConfig is a helper to write a config file into a temp directory.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig_MissingOptionalFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"), false)
	if err != nil {
		t.Fatalf("Expected no error for missing optional config, got: %v", err)
	}
	if config.Vault.KeyPath != "" {
		t.Errorf("Expected empty config, got key path %q", config.Vault.KeyPath)
	}
}

func TestLoadConfig_MissingRequiredFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"), true)
	if !errors.Is(err, kerrors.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got: %v", err)
	}
}

func TestLoadConfig_ParsesValues(t *testing.T) {
	path := writeConfig(t, `
[vault]
key_path = "/keys/secret.key"
vault_path = "/data/passwords.json"
lock_timeout = "5s"
passphrase = true

[generator]
length = 24
charset = "abc"
`)

	config, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Vault.KeyPath != "/keys/secret.key" {
		t.Errorf("Expected key path /keys/secret.key, got %s", config.Vault.KeyPath)
	}
	if config.Vault.VaultPath != "/data/passwords.json" {
		t.Errorf("Expected vault path /data/passwords.json, got %s", config.Vault.VaultPath)
	}
	if !config.Vault.Passphrase {
		t.Errorf("Expected passphrase mode to be enabled")
	}
	if config.Generator.Length != 24 || config.Generator.Charset != "abc" {
		t.Errorf("Unexpected generator config: %+v", config.Generator)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", "[vault\nkey_path = "},
		{"wrong type", "[generator]\nlength = \"long\"\n"},
		{"unknown key", "[vault]\nkey_pth = \"typo.key\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := LoadConfig(path, true); !errors.Is(err, kerrors.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got: %v", err)
			}
		})
	}
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kete", "config.toml")

	if _, err := InitConfig(path, false); err != nil {
		t.Fatalf("Failed to init config: %v", err)
	}

	loaded, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("Failed to load generated config: %v", err)
	}
	if loaded.Vault.KeyPath != DefaultKeyPath || loaded.Vault.VaultPath != DefaultVaultPath {
		t.Errorf("Unexpected defaults written: %+v", loaded.Vault)
	}

	if _, err := InitConfig(path, false); !errors.Is(err, kerrors.ErrConfigExists) {
		t.Errorf("Expected ErrConfigExists, got: %v", err)
	}
	if _, err := InitConfig(path, true); err != nil {
		t.Errorf("Expected --force to overwrite, got: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat config: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected config permissions 0600, got %o", perm)
	}
}

func TestResolve_Defaults(t *testing.T) {
	s, err := Resolve("", nil, Overrides{})
	if err != nil {
		t.Fatalf("Failed to resolve: %v", err)
	}

	if s.KeyPath != DefaultKeyPath {
		t.Errorf("Expected %s, got %s", DefaultKeyPath, s.KeyPath)
	}
	if s.VaultPath != DefaultVaultPath {
		t.Errorf("Expected %s, got %s", DefaultVaultPath, s.VaultPath)
	}
	if s.AuditPath != DefaultAuditFileName {
		t.Errorf("Expected audit log next to the vault, got %s", s.AuditPath)
	}
	if s.LockTimeout != DefaultLockTimeout {
		t.Errorf("Expected %s, got %s", DefaultLockTimeout, s.LockTimeout)
	}
	if s.PasswordLength != 16 || s.Charset != secrets.DefaultCharset {
		t.Errorf("Unexpected generator defaults: %d %q", s.PasswordLength, s.Charset)
	}
}

func TestResolve_Precedence(t *testing.T) {
	config := &Config{
		Vault: VaultConfig{
			KeyPath:     "from-config.key",
			VaultPath:   "/cfg/vault.json",
			LockTimeout: "1m",
		},
	}

	s, err := Resolve("cfg.toml", config, Overrides{KeyPath: "from-flag.key", LockTimeout: "0"})
	if err != nil {
		t.Fatalf("Failed to resolve: %v", err)
	}

	if s.KeyPath != "from-flag.key" {
		t.Errorf("Flag should win over config, got %s", s.KeyPath)
	}
	if s.VaultPath != "/cfg/vault.json" {
		t.Errorf("Config should win over default, got %s", s.VaultPath)
	}
	if s.AuditPath != filepath.Join("/cfg", DefaultAuditFileName) {
		t.Errorf("Expected audit log next to the vault, got %s", s.AuditPath)
	}
	if s.LockTimeout != 0 {
		t.Errorf("Expected lock timeout 0, got %s", s.LockTimeout)
	}
	if s.ConfigPath != "cfg.toml" {
		t.Errorf("Expected config path to be recorded, got %s", s.ConfigPath)
	}
}

func TestResolve_AuditDisabled(t *testing.T) {
	s, err := Resolve("", &Config{Vault: VaultConfig{AuditPath: AuditDisabled}}, Overrides{})
	if err != nil {
		t.Fatalf("Failed to resolve: %v", err)
	}
	if s.AuditPath != "" {
		t.Errorf("Expected auditing disabled, got %s", s.AuditPath)
	}
}

func TestResolve_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	config := &Config{Vault: VaultConfig{KeyPath: "~/.kete/secret.key", VaultPath: "~/.kete/passwords.json"}}
	s, err := Resolve("", config, Overrides{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if want := filepath.Join(home, ".kete", "secret.key"); s.KeyPath != want {
		t.Errorf("Expected key path %s, got %s", want, s.KeyPath)
	}
	if want := filepath.Join(home, ".kete", "audit.jsonl"); s.AuditPath != want {
		t.Errorf("Expected audit path %s, got %s", want, s.AuditPath)
	}
}

func TestResolve_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		o      Overrides
	}{
		{"bad duration", &Config{Vault: VaultConfig{LockTimeout: "soon"}}, Overrides{}},
		{"negative duration", nil, Overrides{LockTimeout: "-1s"}},
		{"negative length", &Config{Generator: GeneratorConfig{Length: -4}}, Overrides{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve("", tt.config, tt.o)
			if !errors.Is(err, kerrors.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got: %v", err)
			}
		})
	}
}

func TestDefaultConfig_LockTimeoutParses(t *testing.T) {
	d, err := time.ParseDuration(DefaultConfig().Vault.LockTimeout)
	if err != nil || d != DefaultLockTimeout {
		t.Errorf("Default lock timeout does not round trip: %v %v", d, err)
	}
}

func TestSettingsConfig_RoundTrip(t *testing.T) {
	s, err := Resolve("", &Config{Vault: VaultConfig{LockTimeout: "5s", AuditPath: AuditDisabled}}, Overrides{})
	if err != nil {
		t.Fatalf("Failed to resolve: %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveTOML(path, s.Config()); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	again, err := Resolve(path, loaded, Overrides{})
	if err != nil {
		t.Fatalf("Failed to resolve saved config: %v", err)
	}

	if again.LockTimeout != 5*time.Second || again.AuditPath != "" || again.KeyPath != s.KeyPath {
		t.Errorf("Settings changed across save: before %+v, after %+v", s, again)
	}
}
