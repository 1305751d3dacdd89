package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show deduplication statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := API.Stats(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Files:        %s (%s unique, %s duplicates)\n",
			humanize.Comma(st.TotalFiles), humanize.Comma(st.UniqueFiles), humanize.Comma(st.DuplicateFiles))
		fmt.Fprintf(out, "Logical size: %s\n", humanize.Bytes(uint64(st.TotalSize)))
		fmt.Fprintf(out, "Stored size:  %s\n", humanize.Bytes(uint64(st.ActualSize)))
		fmt.Fprintf(out, "Saved:        %s (%.2f%%)\n", humanize.Bytes(uint64(st.SpaceSaved)), st.PercentageSaved)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
