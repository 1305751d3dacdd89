package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	fvrpc "filevault/pkg/api/fvrpc/v1"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"
)

var (
	addType        string
	addLabels      []string
	addConcurrency int
)

var addCmd = &cobra.Command{
	Use:   "add <path>...",
	Short: "Upload files or directories",
	Long: `Upload files into the vault. Identical content is stored once.
Directories are walked recursively (local repository only) and honor a .fvignore file at their root.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		kv, err := parseLabels(addLabels)
		if err != nil {
			return err
		}
		var labels *structpb.Struct
		if kv != nil {
			if labels, err = structpb.NewStruct(kv); err != nil {
				return fmt.Errorf("labels: %w", err)
			}
		}
		start := time.Now()

		var added, deduped int
		var total int64
		for _, path := range args {
			fi, err := os.Stat(path)
			if err != nil {
				return err
			}

			// 目录：本地批量导入
			if fi.IsDir() {
				if FV == nil {
					return fmt.Errorf("%s is a directory: directory import needs a local repository", path)
				}
				res, err := FV.Vault.ImportDir(ctx, path, addConcurrency)
				if err != nil {
					return fmt.Errorf("import %s: %w", path, err)
				}
				for _, f := range res.Files {
					fmt.Fprintf(out, "%s  %s\n", f.ID, f.Name)
					total += f.Size
				}
				added += len(res.Files)
				deduped += res.Deduplicated
				continue
			}

			// 单个文件
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			res, err := API.Upload(ctx, &fvrpc.UploadMeta{
				Name:   filepath.Base(path),
				Type:   addType,
				Size:   fi.Size(),
				Labels: labels,
			}, f)
			f.Close()
			if err != nil {
				return fmt.Errorf("upload %s: %w", path, err)
			}
			fmt.Fprintf(out, "%s  %s\n", res.File.GetId(), res.File.GetName())
			added++
			total += res.File.GetSize()
			if res.Deduplicated {
				deduped++
			}
		}

		fmt.Fprintf(out, "Added %d files (%s, %d deduplicated) in %s\n",
			added, humanize.Bytes(uint64(total)), deduped, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

// parseLabels 解析 key=value 形式的标签
func parseLabels(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	labels := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid label %q, expected key=value", p)
		}
		labels[k] = v
	}
	return labels, nil
}

func init() {
	addCmd.Flags().StringVar(&addType, "type", "", "declared MIME type (inferred from the extension when empty)")
	addCmd.Flags().StringArrayVarP(&addLabels, "label", "l", nil, "label as key=value (repeatable)")
	addCmd.Flags().IntVarP(&addConcurrency, "jobs", "j", 4, "parallel uploads when importing a directory")
	rootCmd.AddCommand(addCmd)
}
