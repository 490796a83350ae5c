package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
)

var replaceEntitiesCmd = &cobra.Command{
	Use:   "replace-entities <config>",
	Short: "Replace the workspace entities with those of the configured topics",
	Long: `Builds entities from the entity, value and synonym columns of every entity
topic. Synonyms that are empty or longer than 64 characters are dropped.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunConfigured(cmd.Context(), app, args[0], cli.OpReplaceEntities)
	},
}

func init() {
	rootCmd.AddCommand(replaceEntitiesCmd)
}
