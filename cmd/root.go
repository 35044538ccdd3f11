package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/kete/internal/configs"
	logger "github.com/PolarWolf314/kete/internal/logging"
	"github.com/PolarWolf314/kete/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// PassphraseEnv supplies the passphrase when stdin is not a terminal.
const PassphraseEnv = "KETE_PASSPHRASE"

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	configPath string
	overrides  configs.Overrides

	// settings is resolved once per invocation in PersistentPreRunE.
	settings *configs.Settings

	RootCmd = &cobra.Command{
		Use:   "kete",
		Short: "Kete - a local encrypted password vault",
		Long: `Kete stores passwords for named services in a single encrypted file.

Every password is sealed with XChaCha20-Poly1305 under a master key that
lives in a separate key file, or is derived from a passphrase. The vault
file is replaced atomically and locked while it is being changed, so
several kete processes can share it safely.

Usage:
  kete init                     Create a key and an empty vault
  kete add <service>            Store a password
  kete get <service>            Print a password
  kete list [pattern]           List services
  kete generate [--save <svc>]  Generate a password

Run 'kete help <command>' for more details on a specific command.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: resolveSettings,
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/kete/config.toml)")
	addVaultFlags(RootCmd.PersistentFlags())

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(addCmd)
	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(removeCmd)
	RootCmd.AddCommand(generateCmd)
	RootCmd.AddCommand(verifyCmd)
	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(doctorCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(configCmd)
}

func addVaultFlags(fs *pflag.FlagSet) {
	fs.StringVar(&overrides.KeyPath, "key", "", "master key file (default "+configs.DefaultKeyPath+")")
	fs.StringVar(&overrides.VaultPath, "vault", "", "vault file (default "+configs.DefaultVaultPath+")")
	fs.StringVar(&overrides.AuditPath, "audit", "", `audit log file, "-" disables auditing (default next to the vault)`)
	fs.StringVar(&overrides.LockTimeout, "lock-timeout", "", "how long to wait for the vault lock, 0 waits forever (default "+configs.DefaultLockTimeout.String()+")")
	fs.BoolVar(&overrides.Passphrase, "passphrase", false, "derive the master key from a passphrase instead of a key file")
}

// resolveSettings merges flags, the config file and defaults.
func resolveSettings(cmd *cobra.Command, args []string) error {
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}
	Logger.Debugf("Initializing kete with verbose=%t, debug=%t", verbose, debug)

	path := configPath
	required := path != ""
	if path == "" {
		defaultPath, err := configs.DefaultConfigPath()
		if err != nil {
			Logger.Warnf("Could not determine config directory: %v", err)
		}
		path = defaultPath
	}

	config := &configs.Config{}
	if path != "" {
		loaded, err := configs.LoadConfig(path, required)
		if err != nil {
			return err
		}
		config = loaded
		Logger.Debugf("Loaded config from %s", path)
	}

	resolved, err := configs.Resolve(path, config, overrides)
	if err != nil {
		return err
	}
	settings = resolved

	Logger.Debugf("Key: %s, vault: %s, audit: %q, lock timeout: %s, passphrase: %t",
		settings.KeyPath, settings.VaultPath, settings.AuditPath, settings.LockTimeout, settings.Passphrase)
	return nil
}

// reportedError marks an error whose message has already been printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := RootCmd.Execute(); err != nil {
		var r *reportedError
		if !errors.As(err, &r) {
			fmt.Fprint(os.Stderr, ui.ErrorLine(err.Error()))
		}
		return 1
	}
	return 0
}

// Helper functions for testing

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	configPath = ""
	overrides = configs.Overrides{}
	settings = nil
	Logger = logger.Logger{}

	resetAddCommandState()
	resetListCommandState()
	resetGenerateCommandState()
	resetDoctorCommandState()
	resetLogCommandState()
	resetConfigCommandState()

	resetFlags(RootCmd)
}

// resetFlags restores every flag of c and its subcommands to its default
// and clears Changed, which pflag otherwise keeps between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
