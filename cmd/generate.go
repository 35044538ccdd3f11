package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/kete/internal/ui"
	"github.com/PolarWolf314/kete/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	generateLength  int
	generateCharset string
	generateSave    string
)

func init() {
	generateCmd.Flags().IntVarP(&generateLength, "length", "l", 0, "password length (default from config, else 16)")
	generateCmd.Flags().StringVar(&generateCharset, "charset", "", "characters to draw from (default letters, digits and punctuation)")
	generateCmd.Flags().StringVar(&generateSave, "save", "", "store the password under this service")
}

func resetGenerateCommandState() {
	generateLength = 0
	generateCharset = ""
	generateSave = ""
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random password",
	Long: `Generates a password whose characters are drawn uniformly from a
character set using the operating system's secure random source.

Examples:
  kete generate                         # 16 characters
  kete generate -l 32 --charset abc123  # Custom length and alphabet
  kete generate --save github           # Store it and print it`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting generate command")

	genOpts := workflows.GenerateOptions{
		Length:  settings.PasswordLength,
		Charset: settings.Charset,
		SaveAs:  generateSave,
	}
	if cmd.Flags().Changed("length") {
		genOpts.Length = generateLength
	}
	if cmd.Flags().Changed("charset") {
		genOpts.Charset = generateCharset
	}

	if generateSave != "" {
		opts, err := vaultOptions(false)
		if err != nil {
			return fail(nil, err)
		}
		genOpts.VaultOptions = opts
	}

	result, err := workflows.Generate(context.Background(), genOpts)
	if err != nil {
		return fail(nil, err)
	}

	fmt.Println(result.Password)

	if result.Service != "" {
		verb := "Stored"
		if result.Replaced {
			verb = "Replaced"
		}
		fmt.Fprint(os.Stderr, ui.SuccessLine(verb+" the password for "+ui.Service.Sprint(result.Service)))
	}
	return nil
}
