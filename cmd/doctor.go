package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/PolarWolf314/kete/internal/ui"
	"github.com/PolarWolf314/kete/internal/workflows"
	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"
)

var (
	doctorJSONOutput bool
	// doctorExitFunc is the function called to exit with a specific code.
	// Can be overridden for testing.
	doctorExitFunc = memguard.SafeExit
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSONOutput, "json", false, "output in JSON format")
}

func resetDoctorCommandState() {
	doctorJSONOutput = false
	doctorExitFunc = memguard.SafeExit
}

// SetDoctorExitFunc sets the exit function for testing purposes.
func SetDoctorExitFunc(f func(int)) {
	doctorExitFunc = f
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks on the key and vault",
	Long: `Runs a series of health checks and reports issues.

The doctor command checks:
  - Config file validity
  - Key (or salt) file existence and permissions
  - Vault file format and permissions
  - Temp files left behind by interrupted saves
  - Whether the key opens the vault and every record authenticates

Exit codes:
  0 - All checks passed
  1 - Warnings found (non-critical issues)
  2 - Errors found (critical issues)

Use --json for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting doctor command")

	opts := workflows.VaultOptions{
		KeyPath:       settings.KeyPath,
		VaultPath:     settings.VaultPath,
		AuditPath:     settings.AuditPath,
		LockTimeout:   settings.LockTimeout,
		UsePassphrase: settings.Passphrase,
	}
	if settings.Passphrase {
		// The record check is skipped without a passphrase.
		if passphrase, err := readPassphrase(false); err == nil {
			opts.Passphrase = passphrase
		}
	}

	spinner, cleanup := startSpinner("Running health checks...")
	defer cleanup()

	result, err := workflows.Doctor(context.Background(), workflows.DoctorOptions{
		VaultOptions: opts,
		ConfigPath:   settings.ConfigPath,
	})
	if err != nil {
		return fail(spinner, err)
	}

	for _, check := range result.Checks {
		Logger.Debugf("Check %s: status=%s, message=%s", check.Name, check.Status.String(), check.Message)
	}

	spinner.FinalMSG = ""
	if doctorJSONOutput {
		if err := outputDoctorJSON(result); err != nil {
			return err
		}
	} else {
		printDoctorResults(result)
		switch {
		case result.Summary.Errors > 0:
			spinner.FinalMSG = ui.ErrorLine("Health checks completed with errors")
		case result.Summary.Warnings > 0:
			spinner.FinalMSG = ui.WarningLine("Health checks completed with warnings")
		default:
			spinner.FinalMSG = ui.SuccessLine("Health checks completed")
		}
	}

	// Let cleanup print the summary line before exiting.
	switch {
	case result.Summary.Errors > 0:
		cleanup()
		doctorExitFunc(2)
	case result.Summary.Warnings > 0:
		cleanup()
		doctorExitFunc(1)
	}
	return nil
}

// outputDoctorJSON outputs the result as JSON.
func outputDoctorJSON(result *workflows.DoctorResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// printDoctorResults prints the doctor results in a human-readable format.
func printDoctorResults(result *workflows.DoctorResult) {
	for _, check := range result.Checks {
		var statusIcon string
		switch check.Status {
		case workflows.CheckPass:
			statusIcon = ui.Success.Sprint(ui.CheckMark)
		case workflows.CheckWarning:
			statusIcon = ui.Warning.Sprint(ui.Caution)
		case workflows.CheckError:
			statusIcon = ui.Error.Sprint(ui.Cross)
		}
		fmt.Printf("%s %s: %s\n", statusIcon, check.Name, check.Message)
	}

	fmt.Println()
	fmt.Printf("Summary: %d passed", result.Summary.Passed)
	if result.Summary.Warnings > 0 {
		fmt.Printf(", %s", ui.Warning.Sprintf("%d warning(s)", result.Summary.Warnings))
	}
	if result.Summary.Errors > 0 {
		fmt.Printf(", %s", ui.Error.Sprintf("%d error(s)", result.Summary.Errors))
	}
	fmt.Println()

	if len(result.Suggestions) > 0 {
		fmt.Println()
		fmt.Println("Suggestions:")
		for _, suggestion := range result.Suggestions {
			fmt.Print(ui.HintLine(suggestion))
		}
	}
}
