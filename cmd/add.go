package cmd

import (
	"context"

	kerrors "github.com/PolarWolf314/kete/internal/errors"
	"github.com/PolarWolf314/kete/internal/ui"
	"github.com/PolarWolf314/kete/internal/utils"
	"github.com/PolarWolf314/kete/internal/workflows"
	"github.com/spf13/cobra"
)

var addPassword string

func init() {
	addCmd.Flags().StringVarP(&addPassword, "password", "p", "", "password to store (visible in shell history; prefer stdin or the prompt)")
}

func resetAddCommandState() {
	addPassword = ""
}

var addCmd = &cobra.Command{
	Use:   "add <service>",
	Short: "Store a password for a service",
	Long: `Stores a password for a service, replacing any existing one.

The password is taken from --password, from stdin when it is piped, or
from a hidden prompt.

Examples:
  kete add github                       # Prompt for the password
  pass-export github | kete add github  # Read it from stdin
  kete generate --save github           # Store a generated password instead`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	service := args[0]
	Logger.Infof("Starting add command for service %s", service)

	password, err := readPassword()
	if err != nil {
		return fail(nil, err)
	}

	opts, err := vaultOptions(false)
	if err != nil {
		return fail(nil, err)
	}

	spinner, cleanup := startSpinner("Storing password...")
	defer cleanup()

	result, err := workflows.Add(context.Background(), workflows.AddOptions{
		VaultOptions: opts,
		Service:      service,
		Password:     password,
	})
	if err != nil {
		return fail(spinner, err)
	}

	if result.Replaced {
		spinner.FinalMSG = ui.SuccessLine("Replaced the password for " + ui.Service.Sprint(result.Service))
	} else {
		spinner.FinalMSG = ui.SuccessLine("Stored a password for " + ui.Service.Sprint(result.Service))
	}
	return nil
}

// readPassword picks the password source: flag, piped stdin, then prompt.
func readPassword() (string, error) {
	if addPassword != "" {
		Logger.Warnf("Passwords given with --password may be recorded in shell history")
		return addPassword, nil
	}

	if !utils.IsTerminal() {
		Logger.Debugf("Reading password from stdin")
		password, err := utils.ReadSecret()
		if err != nil {
			return "", err
		}
		if password == "" {
			return "", kerrors.ErrEmptyPassword
		}
		return password, nil
	}

	password, err := utils.ReadPasswordConfirmed("Password: ", "Confirm password: ")
	if err != nil {
		return "", err
	}
	return string(password), nil
}
