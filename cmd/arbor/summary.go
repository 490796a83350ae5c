package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <document>",
	Short: "Export one row per dialog answer to CSV or XLSX",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		intents, _ := cmd.Flags().GetBool("intents")
		return cli.RunSummary(cmd.Context(), app, args[0], out, intents)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringP("output", "o", "summary.csv", "Output file (.csv or .xlsx)")
	summaryCmd.Flags().Bool("intents", false, "Add a sheet of intent examples (.xlsx only)")
}
