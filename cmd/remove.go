package cmd

import (
	"context"

	"github.com/PolarWolf314/kete/internal/ui"
	"github.com/PolarWolf314/kete/internal/workflows"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <service>",
	Aliases: []string{"rm"},
	Short:   "Delete the password for a service",
	Long: `Deletes the password stored for a service.

Removing a service that is not in the vault is not an error and leaves the
vault file untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	service := args[0]
	Logger.Infof("Starting remove command for service %s", service)

	opts, err := vaultOptions(false)
	if err != nil {
		return fail(nil, err)
	}

	spinner, cleanup := startSpinner("Removing password...")
	defer cleanup()

	result, err := workflows.Remove(context.Background(), workflows.RemoveOptions{
		VaultOptions: opts,
		Service:      service,
	})
	if err != nil {
		return fail(spinner, err)
	}

	if result.Removed {
		spinner.FinalMSG = ui.SuccessLine("Removed " + ui.Service.Sprint(service))
	} else {
		spinner.FinalMSG = ui.WarningLine(ui.Service.Sprint(service) + " was not in the vault; nothing to remove")
	}
	return nil
}
