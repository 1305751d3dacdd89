package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	fvrpc "filevault/pkg/api/fvrpc/v1"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// filterFlags 是 ls 与 find 共用的过滤参数
type filterFlags struct {
	fileType string
	minSize  string
	maxSize  string
	since    string
	until    string
	limit    int32
	offset   int32
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.fileType, "type", "", `MIME type, extension (e.g. "pdf") or "other"`)
	fl.StringVar(&f.minSize, "min-size", "", "minimum size (e.g. 10KB)")
	fl.StringVar(&f.maxSize, "max-size", "", "maximum size (e.g. 1.5GB)")
	fl.StringVar(&f.since, "since", "", "uploaded on or after (YYYY-MM-DD or RFC 3339)")
	fl.StringVar(&f.until, "until", "", "uploaded on or before (YYYY-MM-DD or RFC 3339)")
	fl.Int32Var(&f.limit, "limit", 50, "page size (0 for all)")
	fl.Int32Var(&f.offset, "offset", 0, "skip this many results")
}

func (f *filterFlags) request() (*fvrpc.ListFilesRequest, error) {
	req := &fvrpc.ListFilesRequest{FileType: f.fileType, Limit: f.limit, Offset: f.offset}
	var err error
	if req.MinSize, err = parseSize(f.minSize); err != nil {
		return nil, err
	}
	if req.MaxSize, err = parseSize(f.maxSize); err != nil {
		return nil, err
	}
	if req.StartDate, err = parseDate(f.since); err != nil {
		return nil, err
	}
	if req.EndDate, err = parseDate(f.until); err != nil {
		return nil, err
	}
	return req, nil
}

func parseSize(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return nil, fmt.Errorf("invalid size %q: %w", s, err)
	}
	v := int64(n)
	return &v, nil
}

func parseDate(s string) (*timestamppb.Timestamp, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return timestamppb.New(t), nil
		}
	}
	return nil, fmt.Errorf("invalid date %q", s)
}

// printFiles 以表格形式输出
func printFiles(w io.Writer, resp *fvrpc.ListFilesResponse) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSIZE\tTYPE\tUPLOADED\tNAME")
	for _, f := range resp.GetFiles() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			f.GetId(), humanize.Bytes(uint64(f.GetSize())), f.GetType(), humanize.Time(f.GetUploadedAt().AsTime()), f.GetName())
	}
	tw.Flush()
	fmt.Fprintf(w, "%d of %d files\n", len(resp.GetFiles()), resp.GetTotal())
}

var lsFilters filterFlags

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List files, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := lsFilters.request()
		if err != nil {
			return err
		}
		resp, err := API.List(cmd.Context(), req)
		if err != nil {
			return err
		}
		printFiles(cmd.OutOrStdout(), resp)
		return nil
	},
}

func init() {
	lsFilters.bind(lsCmd)
	rootCmd.AddCommand(lsCmd)
}
