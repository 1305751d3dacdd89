package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	reapApply   bool
	reapOrphans bool
)

var reapCmd = &cobra.Command{
	Use:   "reap",
	Short: "Reclaim stored objects that no record references",
	Long: `List zero-count stored objects older than the grace period; --apply deletes them.
With --orphans (local repository only) also scan the backend for bytes no stored object points to.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		resp, err := API.Reap(ctx, reapApply)
		if err != nil {
			return err
		}
		if resp.DryRun {
			fmt.Fprintf(out, "%d stored objects can be reclaimed (dry run, use --apply)\n", resp.Candidates)
		} else {
			fmt.Fprintf(out, "Reclaimed %d of %d stored objects (%d left orphan bytes)\n", resp.Reaped, resp.Candidates, resp.Orphans)
		}

		if !reapOrphans {
			return nil
		}
		if FV == nil {
			return fmt.Errorf("--orphans needs a local repository")
		}
		locs, err := FV.Vault.Orphans(ctx, reapApply)
		if err != nil {
			return err
		}
		for _, loc := range locs {
			fmt.Fprintf(out, "orphan: %s\n", loc)
		}
		verb := "found"
		if reapApply {
			verb = "deleted"
		}
		fmt.Fprintf(out, "%d orphan blobs %s\n", len(locs), verb)
		return nil
	},
}

func init() {
	reapCmd.Flags().BoolVar(&reapApply, "apply", false, "delete instead of only listing")
	reapCmd.Flags().BoolVar(&reapOrphans, "orphans", false, "also scan storage for unreferenced bytes")
	rootCmd.AddCommand(reapCmd)
}
