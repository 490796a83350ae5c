package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
)

var buildDialogCmd = &cobra.Command{
	Use:   "build-dialog <config>",
	Short: "Replace the whole dialog with one assembled from the configured topics",
	Long: `Builds a conversation start node, then one entry node per topic listed under
"dialogs" that matches the topic's intent prefix, with the topic's nodes below it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunConfigured(cmd.Context(), app, args[0], cli.OpBuildDialog)
	},
}

func init() {
	rootCmd.AddCommand(buildDialogCmd)
}
