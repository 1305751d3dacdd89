package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete file records",
	Long:  `Delete file records by id. The stored bytes are reclaimed when the last record referencing them is removed.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, id := range args {
			if err := API.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("rm %s: %w", id, err)
			}
			fmt.Fprintf(out, "Deleted: %s\n", id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
