package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reindexCmd = &cobra.Command{
	Use:         "reindex",
	Short:       "Re-publish a record.created event for every file",
	Long:        `Rebuild downstream search indexes by re-publishing every record to the configured event channel.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{localOnly: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := FV.Vault.Reindex(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Re-published %d records\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
