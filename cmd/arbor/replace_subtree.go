package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
)

var replaceSubtreeCmd = &cobra.Command{
	Use:   "replace-subtree <config>",
	Short: "Replace the configured subtrees with dialog built from spreadsheets",
	Long: `For every stitch entry of the configuration, prunes the subtree below the named
node and splices the topic's dialog in its place. Same-intent siblings of the
new dialog are collapsed unless collapseDialogByIntent is false.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunConfigured(cmd.Context(), app, args[0], cli.OpReplaceSubtree)
	},
}

func init() {
	rootCmd.AddCommand(replaceSubtreeCmd)
}
