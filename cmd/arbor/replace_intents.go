package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
)

var replaceIntentsCmd = &cobra.Command{
	Use:   "replace-intents <config>",
	Short: "Replace the workspace intents with those of the configured topics",
	Long: `Builds intents from the question and intent columns of every intent topic.
Intents whose name contains the irrelevant marker become counterexamples.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunConfigured(cmd.Context(), app, args[0], cli.OpReplaceIntents)
	},
}

func init() {
	rootCmd.AddCommand(replaceIntentsCmd)
}
