package cache

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"filevault/pkg/storage"
	"filevault/pkg/types"

	"github.com/redis/go-redis/v9"
)

// CachedBackend 是一个装饰器，它为底层的 storage.Backend 添加 Redis 存在性缓存
// 只缓存“位置存在”这一事实，不缓存字节本身
type CachedBackend struct {
	backend storage.Backend // 被装饰的底层存储 (如 S3)
	client  *redis.Client
	ttl     time.Duration
}

type Config struct {
	RedisURL string        // 标准连接字符串: redis://<user>:<password>@<host>:<port>/<db>
	TTL      time.Duration // 过期时间
}

// NewCachedBackend 解析 URL 并做一次 Fail-fast 连接检查
func NewCachedBackend(backend storage.Backend, cfg Config) (*CachedBackend, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return WithClient(backend, client, cfg.TTL), nil
}

// WithClient 复用已有的 Redis 客户端
func WithClient(backend storage.Backend, client *redis.Client, ttl time.Duration) *CachedBackend {
	return &CachedBackend{backend: backend, client: client, ttl: ttl}
}

// Close 释放 Redis 连接
func (s *CachedBackend) Close() error {
	return s.client.Close()
}

// cacheKey 添加前缀防止冲突
func (s *CachedBackend) cacheKey(loc types.Location) string {
	return "fv:loc:" + string(loc)
}

func (s *CachedBackend) remember(ctx context.Context, loc types.Location) {
	if err := s.client.Set(ctx, s.cacheKey(loc), "1", s.ttl).Err(); err != nil {
		slog.Warn("redis cache set failed", slog.String("location", loc.String()), slog.Any("err", err))
	}
}

func (s *CachedBackend) forget(ctx context.Context, loc types.Location) {
	if err := s.client.Del(ctx, s.cacheKey(loc)).Err(); err != nil {
		slog.Warn("redis cache del failed", slog.String("location", loc.String()), slog.Any("err", err))
	}
}

// Exists 优先查 Redis
func (s *CachedBackend) Exists(ctx context.Context, loc types.Location) (bool, error) {
	// 1. 查 Redis
	val, err := s.client.Exists(ctx, s.cacheKey(loc)).Result()
	if err != nil {
		// 缓存故障降级：退化为无缓存模式，直接查底层
		slog.Warn("redis error, falling back to backend", slog.Any("err", err))
	} else if val > 0 {
		return true, nil
	}

	// 2. 缓存未命中，查底层存储
	found, err := s.backend.Exists(ctx, loc)
	if err != nil {
		return false, err
	}

	// 3. 异步回填，不阻塞主流程
	if found {
		go func() {
			fillCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			s.remember(fillCtx, loc)
		}()
	}
	return found, nil
}

// Put 写穿透：只有底层写成功了才写 Redis
func (s *CachedBackend) Put(ctx context.Context, key string, r io.Reader) (types.Location, int64, error) {
	loc, n, err := s.backend.Put(ctx, key, r)
	if err != nil {
		return "", 0, err
	}
	s.remember(ctx, loc)
	return loc, n, nil
}

// Get 透传
func (s *CachedBackend) Get(ctx context.Context, loc types.Location) (io.ReadCloser, error) {
	return s.backend.Get(ctx, loc)
}

// Delete 先删缓存再删底层，避免“缓存说存在、底层已删除”的窗口被复制逻辑利用
func (s *CachedBackend) Delete(ctx context.Context, loc types.Location) error {
	s.forget(ctx, loc)
	return s.backend.Delete(ctx, loc)
}

func (s *CachedBackend) Copy(ctx context.Context, src types.Location, dstKey string) (types.Location, error) {
	dst, err := s.backend.Copy(ctx, src, dstKey)
	if err != nil {
		return "", err
	}
	s.remember(ctx, dst)
	return dst, nil
}

// List 透传
func (s *CachedBackend) List(ctx context.Context, fn func(types.Location) error) error {
	return s.backend.List(ctx, fn)
}
