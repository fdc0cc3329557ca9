package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-pckbrute/pkg/app"
)

var embeddedBinPath string

var embeddedCmd = &cobra.Command{
	Use:   "embedded",
	Short: "Find the key of the pack embedded in a game binary",
	Long: `Locate the pack appended to a self-contained game executable, then search
the bytes before it for the key that decrypts its directory.

Examples:
  # Search a single-file export
  pckbrute embedded --bin game.exe

  # Verbose logging with per-worker ranges
  pckbrute embedded --bin game.exe -v`,

	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, app.PackTarget{
			Mode:       app.ModeEmbedded,
			BinaryPath: embeddedBinPath,
		})
	},
}

func init() {
	rootCmd.AddCommand(embeddedCmd)

	embeddedCmd.Flags().StringVar(&embeddedBinPath, "bin", "", "path to the game binary with an embedded pack")
	_ = embeddedCmd.MarkFlagRequired("bin")
}
