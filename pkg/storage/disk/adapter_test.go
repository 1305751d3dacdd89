package disk

import (
	"context"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"filevault/pkg/storage"
	"filevault/pkg/types"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemAdapter(t *testing.T) (*Adapter, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	store, err := NewAdapterFs(fs, "/objects")
	require.NoError(t, err)
	return store, fs
}

func readAll(t *testing.T, store *Adapter, loc types.Location) string {
	t.Helper()
	rc, err := store.Get(context.Background(), loc)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func TestDiskAdapter(t *testing.T) {
	store, fs := newMemAdapter(t)
	ctx := context.Background()

	// 1. 测试 Put
	loc, n, err := store.Put(ctx, "2cf24dba5fb0a30e", strings.NewReader("hello world"))
	require.NoError(t, err)
	assert.Equal(t, types.Location("2c/f24dba5fb0a30e"), loc)
	assert.Equal(t, int64(11), n)

	// 验证文件是否真的存在于 Sharding 目录中
	ok, err := afero.Exists(fs, filepath.Join("/objects", "2c", "f24dba5fb0a30e"))
	require.NoError(t, err)
	assert.True(t, ok, "文件应该存在于 Sharding 目录中")

	// 2. 测试 Exists
	exists, err := store.Exists(ctx, loc)
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.Exists(ctx, "ff/ffffff") // 不存在的
	assert.NoError(t, err)
	assert.False(t, exists)

	// 3. 测试 Get
	assert.Equal(t, "hello world", readAll(t, store, loc))
}

func TestDiskAdapter_OnDisk(t *testing.T) {
	// 真实文件系统，验证 OsFs 路径拼接
	store, err := NewAdapter(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	loc, _, err := store.Put(ctx, "abcdef", strings.NewReader("on disk"))
	require.NoError(t, err)
	assert.Equal(t, "on disk", readAll(t, store, loc))
}

func TestDiskAdapter_DeleteAndNotFound(t *testing.T) {
	store, _ := newMemAdapter(t)
	ctx := context.Background()

	loc, _, err := store.Put(ctx, "deadbeef", strings.NewReader("bye"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, loc))

	_, err = store.Get(ctx, loc)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// 第二次删除应该报 NotFound
	err = store.Delete(ctx, loc)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDiskAdapter_Copy(t *testing.T) {
	store, _ := newMemAdapter(t)
	ctx := context.Background()

	src, _, err := store.Put(ctx, "source01", strings.NewReader("payload"))
	require.NoError(t, err)

	dst, err := store.Copy(ctx, src, "target01")
	require.NoError(t, err)
	assert.NotEqual(t, src, dst)

	// 删除源文件后副本依然可读
	require.NoError(t, store.Delete(ctx, src))
	assert.Equal(t, "payload", readAll(t, store, dst))

	// 源不存在时复制失败
	_, err = store.Copy(ctx, src, "target02")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDiskAdapter_InvalidKey(t *testing.T) {
	store, _ := newMemAdapter(t)
	_, _, err := store.Put(context.Background(), "../escape", strings.NewReader("x"))
	assert.ErrorIs(t, err, storage.ErrInvalidKey)
}

func TestDiskAdapter_List(t *testing.T) {
	store, _ := newMemAdapter(t)
	ctx := context.Background()

	for _, key := range []string{"aa0001", "aa0002", "bb0001"} {
		_, _, err := store.Put(ctx, key, strings.NewReader(key))
		require.NoError(t, err)
	}

	var got []string
	err := store.List(ctx, func(loc types.Location) error {
		got = append(got, storage.KeyOf(loc))
		return nil
	})
	require.NoError(t, err)
	sort.Strings(got)
	assert.Equal(t, []string{"aa0001", "aa0002", "bb0001"}, got)
}
