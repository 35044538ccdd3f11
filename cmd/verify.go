package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/PolarWolf314/kete/internal/ui"
	"github.com/PolarWolf314/kete/internal/utils"
	"github.com/PolarWolf314/kete/internal/workflows"
	"github.com/spf13/cobra"
)

var errVerifyFailed = errors.New("one or more records failed authentication")

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that every record decrypts and authenticates",
	Long: `Decrypts every record in the vault to detect tampering or corruption.
Passwords are discarded as soon as they have been checked.

Exits with status 1 when any record fails.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting verify command")

	opts, err := vaultOptions(false)
	if err != nil {
		return fail(nil, err)
	}

	spinner, cleanup := startSpinner("Verifying records...")
	defer cleanup()

	result, err := workflows.Verify(context.Background(), workflows.VerifyOptions{VaultOptions: opts})
	if err != nil {
		return fail(spinner, err)
	}

	if result.OK() {
		spinner.FinalMSG = ui.SuccessLine(fmt.Sprintf("All %d record(s) authenticate", result.Checked))
		return nil
	}

	spinner.FinalMSG = ui.ErrorLine(fmt.Sprintf("%d of %d record(s) failed authentication:", len(result.Failed), result.Checked)) +
		utils.FormatList(result.Failed, ui.Service) +
		ui.HintLine("Re-add or remove the affected services")
	return reported(errVerifyFailed)
}
