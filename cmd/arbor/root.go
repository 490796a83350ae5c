package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/logging"
)

// Keys are read from the environment so they stay out of shell history.
const (
	envEncryptionKey = "ARBOR_ENCRYPTION_KEY"
	envFallbackKeys  = "ARBOR_FALLBACK_KEYS"
)

var (
	globals cli.Globals
	app     *cli.App
)

var rootCmd = &cobra.Command{
	Use:   "arbor",
	Short: "arbor edits the dialog tree of a conversational workspace",
	Long: `arbor loads a workspace document, verifies that its dialog tree is consistent
and applies structural rewrites: replacing subtrees from spreadsheets,
collapsing same-intent siblings and merging workspaces.

Set ARBOR_ENCRYPTION_KEY (32 bytes, hex or base64) to keep documents
encrypted in the store. ARBOR_FALLBACK_KEYS lists older keys, comma
separated, that are still accepted on load.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		globals.Stdout = cmd.OutOrStdout()
		globals.Stderr = cmd.ErrOrStderr()
		globals.EncryptionKey = os.Getenv(envEncryptionKey)
		if v := os.Getenv(envFallbackKeys); v != "" {
			globals.FallbackKeys = strings.Split(v, ",")
		}
		var err error
		app, err = cli.NewApp(globals)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeApp()
	},
}

func closeApp() error {
	if app == nil {
		return nil
	}
	err := app.Close()
	app = nil
	return err
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := cli.InterruptContext(context.Background(), logging.New(slog.LevelWarn))
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	// PersistentPostRunE is skipped when a command fails.
	if cerr := closeApp(); err == nil {
		err = cerr
	}
	if err != nil {
		if !errors.Is(err, cli.ErrFaultsFound) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		if cause := cli.Interrupted(ctx); cause != nil && !errors.Is(err, cli.ErrInterrupted) {
			fmt.Fprintln(os.Stderr, cause)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globals.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&globals.Store, "store", cli.StoreFile, `Document store: "file" or a redis:// url`)
	rootCmd.PersistentFlags().StringVar(&globals.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile on exit")
	rootCmd.PersistentFlags().StringSliceVar(&globals.Redact, "redact", nil, "Mask node context values whose keys match these patterns when saving")
}
