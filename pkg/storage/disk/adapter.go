package disk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filevault/pkg/storage"
	"filevault/pkg/types"

	"github.com/spf13/afero"
)

const tempPrefix = "temp-"

// Adapter 实现了 storage.Backend 接口
// 底层使用 afero.Fs，生产环境是 OsFs，测试时可以换成 MemMapFs
type Adapter struct {
	fs       afero.Fs
	rootPath string // 比如: /home/user/.fv/objects
}

// NewAdapter 创建一个新的磁盘存储适配器
func NewAdapter(root string) (*Adapter, error) {
	return NewAdapterFs(afero.NewOsFs(), root)
}

// NewAdapterFs 允许注入任意 afero.Fs
func NewAdapterFs(fs afero.Fs, root string) (*Adapter, error) {
	// 确保根目录存在
	if err := fs.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create root storage dir: %w", err)
	}
	return &Adapter{fs: fs, rootPath: root}, nil
}

// path 返回位置句柄对应的物理路径
func (s *Adapter) path(loc types.Location) string {
	return filepath.Join(s.rootPath, filepath.FromSlash(string(loc)))
}

func (s *Adapter) Put(ctx context.Context, key string, r io.Reader) (types.Location, int64, error) {
	loc, err := storage.Layout(key)
	if err != nil {
		return "", 0, err
	}
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	targetPath := s.path(loc)

	// 1. 准备目录
	dir := filepath.Dir(targetPath)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return "", 0, err
	}

	// 2. 原子写入 (Atomic Write)
	// 技巧：先写到一个临时文件，然后 Rename。
	// 这样保证要么文件不存在，要么文件是完整的。
	tempFile, err := afero.TempFile(s.fs, dir, tempPrefix+"*")
	if err != nil {
		return "", 0, err
	}
	tempName := tempFile.Name()
	// 确保临时文件会被清理（如果成功 Rename 了，这个删除会失效，或者无害）
	defer s.fs.Remove(tempName)

	n, err := io.Copy(tempFile, r)
	if err != nil {
		tempFile.Close()
		return "", 0, err
	}
	if err := tempFile.Close(); err != nil { // 必须先关闭才能 Rename
		return "", 0, err
	}

	// 3. 移动到最终位置
	if err := s.fs.Rename(tempName, targetPath); err != nil {
		return "", 0, err
	}
	return loc, n, nil
}

func (s *Adapter) Get(ctx context.Context, loc types.Location) (io.ReadCloser, error) {
	f, err := s.fs.Open(s.path(loc))
	if errors.Is(err, os.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Adapter) Exists(ctx context.Context, loc types.Location) (bool, error) {
	fi, err := s.fs.Stat(s.path(loc))
	if err == nil {
		return !fi.IsDir(), nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (s *Adapter) Delete(ctx context.Context, loc types.Location) error {
	err := s.fs.Remove(s.path(loc))
	if errors.Is(err, os.ErrNotExist) {
		return storage.ErrNotFound
	}
	return err
}

func (s *Adapter) Copy(ctx context.Context, src types.Location, dstKey string) (types.Location, error) {
	f, err := s.Get(ctx, src)
	if err != nil {
		return "", err
	}
	defer f.Close()

	loc, _, err := s.Put(ctx, dstKey, f)
	return loc, err
}

func (s *Adapter) List(ctx context.Context, fn func(types.Location) error) error {
	return afero.Walk(s.fs, s.rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		// 跳过目录和写入中的临时文件
		if info.IsDir() || strings.HasPrefix(info.Name(), tempPrefix) {
			return nil
		}
		rel, err := filepath.Rel(s.rootPath, path)
		if err != nil {
			return err
		}
		return fn(types.Location(filepath.ToSlash(rel)))
	})
}
