package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-pckbrute/internal/config"
	"github.com/deploymenttheory/go-pckbrute/pkg/app"
	"github.com/deploymenttheory/go-pckbrute/pkg/app/bruteforce"
)

// runSearch loads the configuration, runs the key search for target and prints the result.
// Ctrl-C cancels the search; workers stop at their next batch boundary.
func runSearch(cmd *cobra.Command, target app.PackTarget) error {
	cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	// Create application context
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx := app.NewContext().WithParent(sigCtx)
	ctx.OutputFormat = cfg.Output
	ctx.Verbose = GetVerbose()
	ctx.Quiet = GetQuiet()
	if err := ctx.ApplyVerbosity(cfg.LogLevel); err != nil {
		return err
	}
	if !ctx.Quiet {
		ctx.SetProgress(func(update app.ProgressUpdate) {
			fmt.Fprintln(os.Stderr, bruteforce.FormatProgress(update))
		})
	}

	request := &bruteforce.Request{
		Target:           target,
		Jobs:             cfg.Jobs,
		BatchSize:        cfg.BatchSize,
		ProgressInterval: cfg.ProgressInterval,
	}

	// Handle the request through application layer
	response, err := bruteforce.Handle(ctx, request)
	if err != nil {
		return err
	}

	// Format and display results
	return bruteforce.FormatOutput(ctx.Output, response, ctx.OutputFormat)
}
