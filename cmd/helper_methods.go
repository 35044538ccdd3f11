package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/PolarWolf314/kete/internal/configs"
	kerrors "github.com/PolarWolf314/kete/internal/errors"
	"github.com/PolarWolf314/kete/internal/secrets"
	"github.com/PolarWolf314/kete/internal/ui"
	"github.com/PolarWolf314/kete/internal/utils"
	"github.com/PolarWolf314/kete/internal/workflows"
	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode. The spinner draws on stderr so stdout stays
// clean for piping. Returns the spinner and a function that should be
// deferred to clean up.
//
// spinner.FinalMSG values do not need trailing newlines. The cleanup function
// prints the final message to stdout with ui.EnsureNewline().
func startSpinner(message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// vaultOptions builds workflow options from the resolved settings. In
// passphrase mode it reads the passphrase from the environment or prompts
// for it. confirm asks twice, for creating a new vault.
func vaultOptions(confirm bool) (workflows.VaultOptions, error) {
	opts := workflows.VaultOptions{
		KeyPath:       settings.KeyPath,
		VaultPath:     settings.VaultPath,
		AuditPath:     settings.AuditPath,
		LockTimeout:   settings.LockTimeout,
		UsePassphrase: settings.Passphrase,
	}

	if !settings.Passphrase {
		warnKeyPermissions(settings.KeyPath)
		return opts, nil
	}

	passphrase, err := readPassphrase(confirm)
	if err != nil {
		return opts, err
	}
	opts.Passphrase = passphrase
	return opts, nil
}

func readPassphrase(confirm bool) ([]byte, error) {
	if env := os.Getenv(PassphraseEnv); env != "" {
		Logger.Debugf("Using passphrase from %s", PassphraseEnv)
		return []byte(env), nil
	}

	if !utils.IsTerminal() {
		return nil, kerrors.ErrPassphraseRequired
	}

	if confirm {
		return utils.ReadPasswordConfirmed("New passphrase: ", "Confirm passphrase: ")
	}
	return utils.ReadPassword("Passphrase: ")
}

// warnKeyPermissions prints a warning when the key file is readable by
// anyone but its owner.
func warnKeyPermissions(keyPath string) {
	mode, tooOpen, err := secrets.KeyFileMode(keyPath)
	if err != nil || !tooOpen {
		return
	}
	Logger.WarnfAlways("Key file %s is accessible by other users (%04o); run 'chmod 600 %s'", keyPath, mode, keyPath)
}

// formatError turns a workflow error into a user-facing message with a hint.
func formatError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrKeyFileMissing):
		return ui.ErrorLine("No master key found: "+err.Error()) +
			ui.HintLine("Run "+ui.Code.Sprint("kete init")+" to create a key and vault, or point "+ui.Flag.Sprint("--key")+" at an existing key")

	case errors.Is(err, kerrors.ErrKeyFileExists):
		return ui.ErrorLine("Refusing to overwrite existing key material: "+err.Error()) +
			ui.HintLine("Move the existing key away first, or choose another path with "+ui.Flag.Sprint("--key"))

	case errors.Is(err, kerrors.ErrKeyFormat):
		return ui.ErrorLine("The master key is malformed: " + err.Error())

	case errors.Is(err, kerrors.ErrPassphraseRequired):
		return ui.ErrorLine("A passphrase is required") +
			ui.HintLine("Run in a terminal to be prompted, or set "+ui.Code.Sprint(PassphraseEnv))

	case errors.Is(err, utils.ErrPasswordMismatch):
		return ui.ErrorLine("The entries did not match")

	case errors.Is(err, kerrors.ErrVaultKeyMismatch):
		return ui.ErrorLine("This key cannot open the vault at "+ui.Path.Sprint(currentVaultPath())) +
			ui.HintLine("Check "+ui.Flag.Sprint("--key")+" or the passphrase")

	case errors.Is(err, kerrors.ErrVaultExists):
		return ui.ErrorLine("A vault already exists at "+ui.Path.Sprint(currentVaultPath())) +
			ui.HintLine("A new key could never open it; choose another path with "+ui.Flag.Sprint("--vault"))

	case errors.Is(err, kerrors.ErrVaultCorrupt):
		return ui.ErrorLine("The vault file is corrupt: "+err.Error()) +
			ui.HintLine("Restore "+ui.Path.Sprint(currentVaultPath())+" from a backup")

	case errors.Is(err, kerrors.ErrUnsupportedVaultVersion):
		return ui.ErrorLine("The vault was written by an incompatible version of kete: " + err.Error())

	case errors.Is(err, kerrors.ErrAuthentication):
		return ui.ErrorLine("A record failed authentication: "+err.Error()) +
			ui.HintLine("Run "+ui.Code.Sprint("kete verify")+" to check every record")

	case errors.Is(err, kerrors.ErrLockTimeout):
		return ui.ErrorLine("Another kete process is using the vault") +
			ui.HintLine("Try again, or wait longer with "+ui.Flag.Sprint("--lock-timeout"))

	case errors.Is(err, kerrors.ErrInvalidServiceName),
		errors.Is(err, kerrors.ErrEmptyPassword),
		errors.Is(err, kerrors.ErrInvalidLength),
		errors.Is(err, kerrors.ErrInvalidCharset),
		errors.Is(err, kerrors.ErrInvalidDateFormat),
		errors.Is(err, kerrors.ErrInvalidConfig):
		return ui.ErrorLine(capitalize(err.Error()))

	case errors.Is(err, kerrors.ErrConfigExists):
		return ui.ErrorLine("A config file already exists: "+err.Error()) +
			ui.HintLine("Use "+ui.Flag.Sprint("--force")+" to replace it")

	default:
		return ui.ErrorLine("Unexpected error: " + err.Error())
	}
}

// fail reports err through the spinner's final message, or on stderr when
// there is no spinner, and returns it marked as reported.
func fail(s *spinner.Spinner, err error) error {
	Logger.Errorf("%v", err)
	if s != nil {
		s.FinalMSG = formatError(err)
	} else {
		fmt.Fprint(os.Stderr, formatError(err))
	}
	return reported(err)
}

func currentVaultPath() string {
	if settings == nil {
		return configs.DefaultVaultPath
	}
	return settings.VaultPath
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
