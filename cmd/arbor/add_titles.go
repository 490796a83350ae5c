package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
)

var addTitlesCmd = &cobra.Command{
	Use:   "add-titles <document>",
	Short: "Title hand-written nodes after their id",
	Long: `Sets the title of every node whose id does not start with "node_" and that has
no title key yet, so it can be named as an attachment point.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		return cli.RunAddTitles(cmd.Context(), app, args[0], out)
	},
}

func init() {
	rootCmd.AddCommand(addTitlesCmd)
	addTitlesCmd.Flags().StringP("output", "o", "", "Where to save the result (default: overwrite the document)")
}
