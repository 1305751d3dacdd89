package vault

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"filevault/pkg/ignore"

	"golang.org/x/sync/errgroup"
)

// ImportResult 汇总一次目录导入
type ImportResult struct {
	Files        []UploadResult
	Skipped      int
	Deduplicated int
}

// ImportDir 递归上传 root 下的普通文件，跳过 .fvignore 与默认规则命中的路径
// 并发上传数由 concurrency 限制 (<= 0 时为 4)
func (v *Vault) ImportDir(ctx context.Context, root string, concurrency int) (*ImportResult, error) {
	if concurrency <= 0 {
		concurrency = 4
	}
	matcher, err := ignore.NewMatcher(root)
	if err != nil {
		return nil, fmt.Errorf("load ignore rules: %w", err)
	}

	var (
		mu  sync.Mutex
		res = &ImportResult{}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if gctx.Err() != nil {
			return gctx.Err()
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if matcher.Matches(rel) {
			mu.Lock()
			res.Skipped++
			mu.Unlock()
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		g.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			out, err := v.Upload(gctx, UploadRequest{Name: filepath.ToSlash(rel), Body: f})
			if err != nil {
				return fmt.Errorf("import %s: %w", rel, err)
			}
			mu.Lock()
			res.Files = append(res.Files, *out)
			if out.Deduplicated {
				res.Deduplicated++
			}
			mu.Unlock()
			return nil
		})
		return nil
	})

	// 等待已提交的上传结束，再报告遍历错误
	if err := g.Wait(); err != nil {
		return res, err
	}
	if walkErr != nil {
		return res, walkErr
	}
	v.log.Info("directory imported",
		slog.String("root", root),
		slog.Int("files", len(res.Files)),
		slog.Int("deduplicated", res.Deduplicated),
		slog.Int("skipped", res.Skipped),
	)
	return res, nil
}
