package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"filevault/pkg/types"
)

var (
	ErrNotFound   = errors.New("object not found")
	ErrInvalidKey = errors.New("invalid storage key")
)

// Backend 定义了字节存储后端的接口 (本地磁盘 / S3 / 带缓存的装饰器)
// 它只是一个“哑”存储：不知道摘要，也不知道引用计数，这些都由上层的 Registry 负责。
type Backend interface {
	// Put 将数据流写到 key 对应的位置，返回位置句柄和写入的字节数
	// 写入必须是原子的：要么完整存在，要么不存在
	Put(ctx context.Context, key string, r io.Reader) (types.Location, int64, error)

	// Get 根据位置句柄读取数据
	// 注意：返回 io.ReadCloser 而不是 []byte，支持大文件流式读取
	Get(ctx context.Context, loc types.Location) (io.ReadCloser, error)

	// Exists 检查位置是否存在 (复制前的安全检查)
	Exists(ctx context.Context, loc types.Location) (bool, error)

	// Delete 删除数据，不存在时返回 ErrNotFound
	Delete(ctx context.Context, loc types.Location) error

	// Copy 把 src 的数据复制到 dstKey 对应的新位置
	Copy(ctx context.Context, src types.Location, dstKey string) (types.Location, error)

	// List 遍历所有已存储的位置 (用于孤儿字节扫描)
	List(ctx context.Context, fn func(types.Location) error) error
}

// Layout 把 key 转换为位置句柄
// 策略：使用前 2 个字符作为子目录 (Sharding)
// Example: key "aabbcc..." -> "aa/bbcc..."
func Layout(key string) (types.Location, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", ErrInvalidKey
	}
	if len(key) < 3 {
		return types.Location(key), nil
	}
	return types.Location(key[:2] + "/" + key[2:]), nil
}

// KeyOf 是 Layout 的逆运算
func KeyOf(loc types.Location) string {
	return strings.Replace(string(loc), "/", "", 1)
}
