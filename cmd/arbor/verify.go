package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <document>",
	Short: "Check the dialog tree for dangling references",
	Long: `Reports every parent or previous_sibling reference that names no node.
With --strict, next_step targets, the unique root and the shape of every
sibling chain are checked too. Exits non-zero when faults are found.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")
		return cli.RunVerify(cmd.Context(), app, args[0], strict)
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().Bool("strict", false, "Also check next_step targets, the root and sibling chains")
}
