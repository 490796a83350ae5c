package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
)

var mergeWorkspaceCmd = &cobra.Command{
	Use:   "merge-workspace <config>",
	Short: "Merge the configured source workspace into the workspace",
	Long: `Appends the dialog of merge.source after the last top-level node, renaming
colliding node ids, and unions intents, entities and counterexamples.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunConfigured(cmd.Context(), app, args[0], cli.OpMergeWorkspace)
	},
}

func init() {
	rootCmd.AddCommand(mergeWorkspaceCmd)
}
