package commands

import (
	fvrpc "filevault/pkg/api/fvrpc/v1"

	"github.com/spf13/cobra"
)

var findFilters filterFlags

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Search files by name (case-insensitive substring)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := findFilters.request()
		if err != nil {
			return err
		}
		resp, err := API.Search(cmd.Context(), &fvrpc.SearchFilesRequest{Query: args[0], Filter: filter})
		if err != nil {
			return err
		}
		printFiles(cmd.OutOrStdout(), resp)
		return nil
	},
}

func init() {
	findFilters.bind(findCmd)
	rootCmd.AddCommand(findCmd)
}
