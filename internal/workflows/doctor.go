package workflows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/kete/internal/configs"
	"github.com/PolarWolf314/kete/internal/secrets"
	"github.com/PolarWolf314/kete/internal/store"
)

// CheckStatus represents the result status of a health check.
type CheckStatus int

const (
	// CheckPass means the check passed.
	CheckPass CheckStatus = iota
	// CheckWarning means the check found a non-critical issue.
	CheckWarning
	// CheckError means the check found a critical issue.
	CheckError
)

// String returns a string representation of CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarning:
		return "warning"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for CheckStatus.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckResult holds the result of a single health check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// DoctorResult holds the complete result of the doctor workflow.
type DoctorResult struct {
	Checks      []CheckResult `json:"checks"`
	Summary     DoctorSummary `json:"summary"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// DoctorSummary holds counts of checks by status.
type DoctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// DoctorOptions configures the doctor workflow.
type DoctorOptions struct {
	VaultOptions

	// ConfigPath is the config file to validate. Empty skips the check.
	ConfigPath string
}

// Doctor runs health checks on the key, the vault and the config.
//
// The doctor workflow checks:
//   - Config file validity
//   - Key (or salt) file existence and permissions
//   - Vault file format and permissions
//   - Temp files left by interrupted saves
//   - Whether the key opens the vault and every record authenticates
//
// The last check is skipped in passphrase mode when no passphrase is given.
func Doctor(ctx context.Context, opts DoctorOptions) (*DoctorResult, error) {
	checks := []func() CheckResult{
		func() CheckResult { return checkConfig(opts.ConfigPath) },
		func() CheckResult { return checkKeyFile(opts.VaultOptions) },
		func() CheckResult { return checkVaultFile(opts.VaultPath) },
		func() CheckResult { return checkTempFiles(opts.VaultPath) },
		func() CheckResult { return checkRecords(ctx, opts.VaultOptions) },
	}

	var results []CheckResult
	for _, check := range checks {
		results = append(results, check())
	}

	var suggestions []string
	seen := make(map[string]bool)
	for _, result := range results {
		if result.Suggestion != "" && result.Status != CheckPass && !seen[result.Suggestion] {
			suggestions = append(suggestions, result.Suggestion)
			seen[result.Suggestion] = true
		}
	}

	return &DoctorResult{
		Checks:      results,
		Summary:     calculateDoctorSummary(results),
		Suggestions: suggestions,
	}, nil
}

func checkConfig(path string) CheckResult {
	const name = "Configuration"

	if path == "" {
		return CheckResult{Name: name, Status: CheckPass, Message: "No config file in use (defaults apply)"}
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CheckResult{Name: name, Status: CheckPass, Message: "No config file found (defaults apply)"}
	}

	if _, err := configs.LoadConfig(path, true); err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to parse config: %v", err),
			Suggestion: fmt.Sprintf("Check %s for syntax errors or unknown keys", path),
		}
	}

	return CheckResult{Name: name, Status: CheckPass, Message: "Config file valid"}
}

func checkKeyFile(o VaultOptions) CheckResult {
	name, path := "Key file", o.KeyPath
	if o.UsePassphrase {
		name, path = "Salt file", secrets.SaltPath(o.KeyPath)
	}

	mode, tooOpen, err := secrets.KeyFileMode(path)
	if errors.Is(err, os.ErrNotExist) {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("%s not found", path),
			Suggestion: "Run 'kete init' to create a key and vault",
		}
	}
	if err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to stat %s: %v", path, err),
			Suggestion: "Check that the key file is accessible",
		}
	}

	if tooOpen {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("%s has insecure permissions (%04o)", path, mode),
			Suggestion: fmt.Sprintf("Run 'chmod 600 %s' to fix permissions", path),
		}
	}

	return CheckResult{Name: name, Status: CheckPass, Message: fmt.Sprintf("%s exists with permissions %04o", path, mode)}
}

func checkVaultFile(path string) CheckResult {
	const name = "Vault file"

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    "Vault file not found (it is created on first add)",
			Suggestion: "Run 'kete init' to create a key and vault",
		}
	}
	if err != nil {
		return CheckResult{Name: name, Status: CheckError, Message: fmt.Sprintf("Failed to stat vault: %v", err)}
	}

	if _, err := store.Load(path); err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    err.Error(),
			Suggestion: "Restore the vault file from a backup",
		}
	}

	if mode := info.Mode().Perm(); mode&0077 != 0 {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("Vault has insecure permissions (%04o)", mode),
			Suggestion: fmt.Sprintf("Run 'chmod 600 %s' to fix permissions", path),
		}
	}

	return CheckResult{Name: name, Status: CheckPass, Message: "Vault file is readable"}
}

func checkTempFiles(path string) CheckResult {
	const name = "Interrupted saves"

	leftovers, err := store.TempFiles(path)
	if err != nil {
		return CheckResult{Name: name, Status: CheckWarning, Message: fmt.Sprintf("Failed to scan vault directory: %v", err)}
	}
	if len(leftovers) > 0 {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("Found %d temp file(s) from interrupted saves", len(leftovers)),
			Suggestion: fmt.Sprintf("Delete leftover temp files such as %s", leftovers[0]),
		}
	}

	return CheckResult{Name: name, Status: CheckPass, Message: "No leftover temp files"}
}

func checkRecords(ctx context.Context, o VaultOptions) CheckResult {
	const name = "Record integrity"

	if o.UsePassphrase && len(o.Passphrase) == 0 {
		return CheckResult{Name: name, Status: CheckWarning, Message: "Skipped: no passphrase given"}
	}

	result, err := Verify(ctx, VerifyOptions{VaultOptions: o})
	if err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Could not open vault: %v", err),
			Suggestion: "Make sure the configured key belongs to this vault",
		}
	}

	if !result.OK() {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("%d of %d record(s) fail authentication", len(result.Failed), result.Checked),
			Suggestion: "Run 'kete verify' to list them, then re-add or remove the affected services",
		}
	}

	return CheckResult{Name: name, Status: CheckPass, Message: fmt.Sprintf("All %d record(s) authenticate", result.Checked)}
}

// calculateDoctorSummary calculates the counts of checks by status.
func calculateDoctorSummary(results []CheckResult) DoctorSummary {
	var summary DoctorSummary
	for _, result := range results {
		switch result.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarning:
			summary.Warnings++
		case CheckError:
			summary.Errors++
		}
	}
	return summary
}
