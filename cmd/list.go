package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/kete/internal/ui"
	"github.com/PolarWolf314/kete/internal/workflows"
	"github.com/spf13/cobra"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON array")
}

func resetListCommandState() {
	listJSON = false
}

var listCmd = &cobra.Command{
	Use:   "list [pattern]",
	Short: "List stored services",
	Long: `Lists the services stored in the vault in sorted order. Passwords are
not decrypted.

An optional glob filters the names. Service names are matched like
slash-separated paths:

  kete list                 # Everything
  kete list 'work/**'       # work/github, work/aws/prod, ...
  kete list '{bank,mail}*'  # Alternatives`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting list command")

	opts, err := vaultOptions(false)
	if err != nil {
		return fail(nil, err)
	}

	listOpts := workflows.ListOptions{VaultOptions: opts}
	if len(args) == 1 {
		listOpts.Pattern = args[0]
	}

	result, err := workflows.List(context.Background(), listOpts)
	if err != nil {
		return fail(nil, err)
	}

	Logger.Debugf("Vault %s holds %d service(s), %d shown", result.VaultPath, result.Total, len(result.Services))

	if listJSON {
		data, err := json.MarshalIndent(result.Services, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal services to JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(result.Services) == 0 {
		if result.Total == 0 {
			fmt.Println("The vault is empty.")
		} else {
			fmt.Println("No services match " + ui.Code.Sprint(listOpts.Pattern) + ".")
		}
		return nil
	}

	for _, service := range result.Services {
		fmt.Println(service)
	}
	return nil
}
