package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/kete/internal/ui"
	"github.com/PolarWolf314/kete/internal/workflows"
	"github.com/spf13/cobra"
)

// errServiceNotFound makes get exit non-zero for a missing service.
var errServiceNotFound = errors.New("service not found")

var getCmd = &cobra.Command{
	Use:   "get <service>",
	Short: "Print the password for a service",
	Long: `Decrypts the password for a service and prints it on stdout.

Nothing else is written to stdout, so the output can be piped:

  kete get github | pbcopy

Exits with status 1 when the service is not in the vault.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	service := args[0]
	Logger.Infof("Starting get command for service %s", service)

	opts, err := vaultOptions(false)
	if err != nil {
		return fail(nil, err)
	}

	result, err := workflows.Get(context.Background(), workflows.GetOptions{
		VaultOptions: opts,
		Service:      service,
	})
	if err != nil {
		return fail(nil, err)
	}

	if !result.Found {
		fmt.Fprint(os.Stderr, ui.ErrorLine("No password stored for "+ui.Service.Sprint(service))+
			ui.HintLine("Run "+ui.Code.Sprint("kete list")+" to see stored services"))
		return reported(errServiceNotFound)
	}

	fmt.Println(result.Password)
	return nil
}
