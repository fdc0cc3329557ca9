package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-pckbrute/pkg/app"
)

var (
	pckPath    string
	pckBinPath string
)

var pckCmd = &cobra.Command{
	Use:   "pck",
	Short: "Find the key of a standalone .pck file in a game binary",
	Long: `Read the encrypted directory of a standalone .pck file and search every
32-byte window of the game binary for the key that decrypts it.

Examples:
  # Search game.exe for the key of game.pck using all CPUs
  pckbrute pck --pck game.pck --bin game.exe

  # Use 4 workers and print the result as JSON
  pckbrute pck --pck game.pck --bin game.exe -j 4 -o json`,

	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, app.PackTarget{
			Mode:       app.ModeStandalone,
			PackPath:   pckPath,
			BinaryPath: pckBinPath,
		})
	},
}

func init() {
	rootCmd.AddCommand(pckCmd)

	pckCmd.Flags().StringVar(&pckPath, "pck", "", "path to the encrypted .pck file")
	pckCmd.Flags().StringVar(&pckBinPath, "bin", "", "path to the game binary to search")
	_ = pckCmd.MarkFlagRequired("pck")
	_ = pckCmd.MarkFlagRequired("bin")
}
