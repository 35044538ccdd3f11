package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/kete/internal/configs"
	logger "github.com/PolarWolf314/kete/internal/logging"
	"github.com/PolarWolf314/kete/internal/ui"
	"github.com/PolarWolf314/kete/internal/workflows"
	"github.com/spf13/cobra"
)

var configForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "replace an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func resetConfigCommandState() {
	configForce = false
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the kete config file",
	Long: `Creates and inspects the config file.

Settings are resolved in this order: command-line flags, then the config
file, then built-in defaults.`,
	// Skips the root hook so a broken config can still be replaced.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")

		result, err := workflows.ConfigInit(context.Background(), workflows.ConfigInitOptions{
			Path:  configPath,
			Force: configForce,
		})
		if err != nil {
			return fail(nil, err)
		}

		fmt.Print(ui.SuccessLine("Wrote config to " + ui.Path.Sprint(result.Path)))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as TOML",
	Long: `Prints the settings kete would use after applying flags, the config
file and defaults. The output is a valid config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := resolveSettings(cmd, args); err != nil {
			return err
		}

		if _, err := os.Stat(settings.ConfigPath); err == nil {
			fmt.Println("# config: " + settings.ConfigPath)
		} else {
			fmt.Println("# no config file; defaults apply")
		}
		return configs.EncodeTOML(os.Stdout, settings.Config())
	},
}
