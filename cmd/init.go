package cmd

import (
	"context"

	"github.com/PolarWolf314/kete/internal/ui"
	"github.com/PolarWolf314/kete/internal/workflows"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a master key and an empty vault",
	Long: `Creates a new random master key and an empty vault protected by it.

The key file is written with owner-only permissions and is never
overwritten. Keep it separate from the vault: anyone holding both can read
every password.

With --passphrase no key file is written. A random salt is stored next to
the key path instead, and the key is derived from your passphrase with
Argon2id each time the vault is opened.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting init command")

	opts, err := vaultOptions(true)
	if err != nil {
		return fail(nil, err)
	}

	spinner, cleanup := startSpinner("Creating vault...")
	defer cleanup()

	result, err := workflows.Init(context.Background(), workflows.InitOptions{VaultOptions: opts})
	if err != nil {
		return fail(spinner, err)
	}

	Logger.Debugf("Created vault %s with id %s", result.VaultPath, result.VaultID)

	msg := ui.SuccessLine("Created vault " + ui.Path.Sprint(result.VaultPath))
	if result.KeyPath != "" {
		msg += ui.SuccessLine("Wrote master key to " + ui.Path.Sprint(result.KeyPath))
		msg += ui.HintLine("Back up the key file; without it the vault cannot be opened")
	} else {
		msg += ui.SuccessLine("Wrote passphrase salt to " + ui.Path.Sprint(result.SaltPath))
		msg += ui.HintLine("Remember the passphrase; it cannot be recovered")
	}
	spinner.FinalMSG = msg
	return nil
}
