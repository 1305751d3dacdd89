package cache

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"filevault/pkg/storage"
	"filevault/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// SpyBackend (间谍存储)
// 用于统计底层方法被调用的次数，验证请求是否穿透了缓存
// -----------------------------------------------------------------------------
type SpyBackend struct {
	mu          sync.Mutex
	existsCount int32
	putCount    int32
	objects     map[types.Location][]byte
}

func NewSpyBackend() *SpyBackend {
	return &SpyBackend{objects: make(map[types.Location][]byte)}
}

func (s *SpyBackend) Put(ctx context.Context, key string, r io.Reader) (types.Location, int64, error) {
	atomic.AddInt32(&s.putCount, 1)
	loc, err := storage.Layout(key)
	if err != nil {
		return "", 0, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, err
	}
	s.mu.Lock()
	s.objects[loc] = data
	s.mu.Unlock()
	return loc, int64(len(data)), nil
}

func (s *SpyBackend) Exists(ctx context.Context, loc types.Location) (bool, error) {
	atomic.AddInt32(&s.existsCount, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[loc]
	return ok, nil
}

func (s *SpyBackend) Get(ctx context.Context, loc types.Location) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[loc]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *SpyBackend) Delete(ctx context.Context, loc types.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[loc]; !ok {
		return storage.ErrNotFound
	}
	delete(s.objects, loc)
	return nil
}

func (s *SpyBackend) Copy(ctx context.Context, src types.Location, dstKey string) (types.Location, error) {
	rc, err := s.Get(ctx, src)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	loc, _, err := s.Put(ctx, dstKey, rc)
	return loc, err
}

func (s *SpyBackend) List(ctx context.Context, fn func(types.Location) error) error { return nil }

func TestNewCachedBackend_InvalidURL(t *testing.T) {
	_, err := NewCachedBackend(NewSpyBackend(), Config{RedisURL: "not-a-url"})
	assert.Error(t, err)
}

func TestCachedBackend_Integration(t *testing.T) {
	// A. 环境检查: 确保 Redis 在运行
	redisAddr := "localhost:6379"
	conn, err := net.DialTimeout("tcp", redisAddr, 1*time.Second)
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	conn.Close()

	ctx := context.Background()
	spy := NewSpyBackend()
	cached, err := NewCachedBackend(spy, Config{
		RedisURL: fmt.Sprintf("redis://%s/0", redisAddr),
		TTL:      time.Hour,
	})
	require.NoError(t, err)
	defer cached.Close()

	loc := types.Location("11/11222233334444")
	cached.client.Del(ctx, cached.cacheKey(loc))

	// --- Step 1: Cache Miss ---
	exists, err := cached.Exists(ctx, loc)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, int32(1), atomic.LoadInt32(&spy.existsCount), "backend Exists() should be called on miss")

	// --- Step 2: Put (Write-Through) ---
	got, _, err := cached.Put(ctx, "1111222233334444", bytes.NewReader([]byte("payload")))
	require.NoError(t, err)
	assert.Equal(t, loc, got)

	n, err := cached.client.Exists(ctx, cached.cacheKey(loc)).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "redis key should be set after Put")

	// --- Step 3: Cache Hit ---
	exists, err = cached.Exists(ctx, loc)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int32(1), atomic.LoadInt32(&spy.existsCount), "backend Exists() should NOT be called on hit")

	// --- Step 4: Delete 清理缓存 ---
	require.NoError(t, cached.Delete(ctx, loc))
	exists, err = cached.Exists(ctx, loc)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, int32(2), atomic.LoadInt32(&spy.existsCount))
}
