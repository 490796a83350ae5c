package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
)

var collapseCmd = &cobra.Command{
	Use:   "collapse <document>",
	Short: "Collapse runs of same-intent siblings",
	Long: `Replaces every run of two or more consecutive siblings sharing an intent with
a generated parent whose children are the former siblings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		return cli.RunCollapse(cmd.Context(), app, args[0], out)
	},
}

func init() {
	rootCmd.AddCommand(collapseCmd)
	collapseCmd.Flags().StringP("output", "o", "", "Where to save the result (default: overwrite the document)")
}
