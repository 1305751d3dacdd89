package dedup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"filevault/pkg/hasher"
	"filevault/pkg/meta"
	"filevault/pkg/storage"
	"filevault/pkg/storage/disk"
	"filevault/pkg/types"

	"github.com/google/uuid"
	"github.com/juju/clock"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// faultyBackend 包装真实后端，按需注入故障
type faultyBackend struct {
	storage.Backend

	mu        sync.Mutex
	putErr    error
	copyErr   error
	deleteErr error
	beforePut func()
}

func (f *faultyBackend) Put(ctx context.Context, key string, r io.Reader) (types.Location, int64, error) {
	f.mu.Lock()
	err, hook := f.putErr, f.beforePut
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if err != nil {
		return "", 0, err
	}
	return f.Backend.Put(ctx, key, r)
}

func (f *faultyBackend) Copy(ctx context.Context, src types.Location, dstKey string) (types.Location, error) {
	f.mu.Lock()
	err := f.copyErr
	f.mu.Unlock()
	if err != nil {
		return "", err
	}
	return f.Backend.Copy(ctx, src, dstKey)
}

func (f *faultyBackend) Delete(ctx context.Context, loc types.Location) error {
	f.mu.Lock()
	err := f.deleteErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Backend.Delete(ctx, loc)
}

type testEngine struct {
	db       *gorm.DB
	repo     *meta.Repository
	backend  *faultyBackend
	registry *Registry
	protocol *Protocol
	hasher   *hasher.Hasher
}

// fastRetry 让冲突重试不拖慢测试
func fastRetry() RetryPolicy {
	return RetryPolicy{Attempts: 5, Delay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Clock: clock.WallClock}
}

func setupEngine(t *testing.T) *testEngine {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 单连接：事务天然串行，模拟 SQLite 的写者锁
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return buildEngine(t, db)
}

// buildEngine 在给定连接上迁移表结构并组装 registry / protocol
func buildEngine(t *testing.T, db *gorm.DB) *testEngine {
	t.Helper()
	metaDB := meta.NewWithConn(db)
	require.NoError(t, metaDB.AutoMigrate(meta.Models()...))
	repo := meta.NewRepository(metaDB)

	inner, err := disk.NewAdapterFs(afero.NewMemMapFs(), "/objects")
	require.NoError(t, err)
	backend := &faultyBackend{Backend: inner}

	return &testEngine{
		db:       db,
		repo:     repo,
		backend:  backend,
		registry: NewRegistry(repo, backend),
		protocol: NewProtocol(repo, backend, WithRetryPolicy(fastRetry())),
		hasher:   hasher.Default(),
	}
}

// upload 走完整的 resolve + attach 流程，返回新记录
func (e *testEngine) upload(t *testing.T, name, content string) *meta.FileRecord {
	t.Helper()
	rec, err := e.tryUpload(context.Background(), name, content)
	require.NoError(t, err)
	return rec
}

func (e *testEngine) tryUpload(ctx context.Context, name, content string) (*meta.FileRecord, error) {
	id := uuid.NewString()
	obj, created, err := e.registry.ResolveOrCreate(ctx, Candidate{
		Digest:    e.hasher.SumBytes([]byte(content)),
		Algorithm: e.hasher.Algorithm(),
		Size:      int64(len(content)),
		HolderID:  types.RecordID(id),
		Source:    bytes.NewReader([]byte(content)),
	})
	if err != nil {
		return nil, err
	}
	rec := &meta.FileRecord{
		ID:               id,
		OriginalFilename: name,
		FileType:         "text/plain",
		Size:             int64(len(content)),
	}
	if err := e.protocol.Attach(ctx, obj.ID, rec); err != nil {
		if created {
			e.registry.Abandon(ctx, obj)
		}
		return nil, err
	}
	return rec, nil
}

// remove 执行完整的两阶段删除
func (e *testEngine) remove(t *testing.T, id string) (*Detachment, Outcome) {
	t.Helper()
	d, err := e.protocol.Detach(context.Background(), types.RecordID(id))
	require.NoError(t, err)
	return d, e.protocol.Apply(context.Background(), d.Directive)
}

func (e *testEngine) object(t *testing.T, content string) *meta.StoredObject {
	t.Helper()
	obj, err := e.repo.FindObjectByDigest(context.Background(), e.hasher.SumBytes([]byte(content)).String())
	require.NoError(t, err)
	return obj
}

func (e *testEngine) read(t *testing.T, loc string) string {
	t.Helper()
	rc, err := e.backend.Get(context.Background(), types.Location(loc))
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func (e *testEngine) exists(t *testing.T, loc string) bool {
	t.Helper()
	ok, err := e.backend.Exists(context.Background(), types.Location(loc))
	require.NoError(t, err)
	return ok
}

// assertCountMatches 校验计数不变量：计数 == 指向它的记录数
func (e *testEngine) assertCountMatches(t *testing.T, obj *meta.StoredObject) {
	t.Helper()
	ctx := context.Background()
	fresh, err := e.repo.GetObject(ctx, obj.ID)
	require.NoError(t, err)
	var n int64
	require.NoError(t, e.db.WithContext(ctx).Model(&meta.FileRecord{}).
		Where("stored_object_id = ?", obj.ID).Count(&n).Error)
	require.Equal(t, n, fresh.ReferenceCount, "reference_count must equal the number of records")
}
