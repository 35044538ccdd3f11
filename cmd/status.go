package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/kete/internal/ui"
	"github.com/PolarWolf314/kete/internal/workflows"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the key, vault and audit log live",
	Long: `Shows the key, vault and audit log locations along with the vault
header. Nothing is decrypted, so no key or passphrase is needed.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting status command")

	opts := workflows.VaultOptions{
		KeyPath:       settings.KeyPath,
		VaultPath:     settings.VaultPath,
		AuditPath:     settings.AuditPath,
		LockTimeout:   settings.LockTimeout,
		UsePassphrase: settings.Passphrase,
	}

	result, err := workflows.Status(context.Background(), workflows.StatusOptions{VaultOptions: opts})
	if err != nil {
		return fail(nil, err)
	}

	keyLabel := "Key"
	if result.Passphrase {
		keyLabel = "Salt"
	}
	if result.KeyExists {
		fmt.Printf("%-8s %s %s\n", keyLabel+":", ui.Path.Sprint(result.KeyPath), ui.Muted.Sprintf("%04o", result.KeyMode))
	} else {
		fmt.Printf("%-8s %s %s\n", keyLabel+":", ui.Path.Sprint(result.KeyPath), ui.Warning.Sprint("missing"))
	}

	if !result.VaultExists {
		fmt.Printf("%-8s %s %s\n", "Vault:", ui.Path.Sprint(result.VaultPath), ui.Warning.Sprint("missing"))
	} else {
		fmt.Printf("%-8s %s\n", "Vault:", ui.Path.Sprint(result.VaultPath))
		fmt.Printf("%-8s %s\n", "ID:", result.VaultID)
		fmt.Printf("%-8s v%d, %s\n", "Format:", result.Version, result.Cipher)
		fmt.Printf("%-8s %d\n", "Records:", result.Records)
		fmt.Printf("%-8s %s\n", "Updated:", result.ModTime.Local().Format("2006-01-02 15:04:05"))
	}

	if result.AuditPath == "" {
		fmt.Printf("%-8s %s\n", "Audit:", ui.Muted.Sprint("disabled"))
	} else {
		fmt.Printf("%-8s %s\n", "Audit:", ui.Path.Sprint(result.AuditPath))
	}

	if !result.KeyExists && !result.VaultExists {
		fmt.Print(ui.HintLine("Run " + ui.Code.Sprint("kete init") + " to create a key and vault"))
	}
	return nil
}
