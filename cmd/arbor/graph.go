package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <document>",
	Short: "Export the dialog tree visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the dialog tree.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		faults, _ := cmd.Flags().GetBool("faults")
		return cli.RunGraph(cmd.Context(), app, args[0], faults, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("faults", false, "Highlight nodes with strict verification faults")
}
