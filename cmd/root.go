package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	// Global output flags
	verbose      bool
	quiet        bool
	outputFormat string

	// Search settings, overriding the config file when set
	cfgFile          string
	jobs             int
	batchSize        int
	logLevel         string
	progressInterval time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "pckbrute",
	Short: "Recover the encryption key of a Godot pack from its game binary",
	Long: `pckbrute recovers the AES-256 key of an encrypted Godot .pck archive by
testing every 32-byte window of the game executable against the archive's
encrypted directory until the decrypted bytes match the stored MD5 checksum.

The pack can be a separate file or embedded at the end of the executable.

Commands:
  pck         Search a binary for the key of a standalone .pck file
  embedded    Search a binary for the key of the pack embedded in it

Settings are read from pckbrute-config.yaml (., ./config, $HOME/.pckbrute,
/etc/pckbrute) and PCKBRUTE_* environment variables; flags take precedence.`,
	Version:       "0.1.0-dev",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json, yaml)")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches for pckbrute-config.yaml)")
	rootCmd.PersistentFlags().IntVarP(&jobs, "jobs", "j", 0, "number of worker goroutines (default: logical CPU count)")
	rootCmd.PersistentFlags().IntVar(&batchSize, "batch-size", 10_000, "candidates tested between progress flushes")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().DurationVar(&progressInterval, "progress-interval", 500*time.Millisecond, "how often progress is printed")
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}

// GetQuiet returns the quiet flag value
func GetQuiet() bool {
	return quiet
}
