package dedup

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"filevault/pkg/meta"
	"filevault/pkg/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// setupPostgresEngine 连接本地 Postgres，不可达时跳过
// 行锁冲突在 Postgres 上是真实的阻塞，而不是 SQLite 单连接的串行
func setupPostgresEngine(t *testing.T) *testEngine {
	t.Helper()
	addr := envOr("FV_TEST_PG_ADDR", "localhost:5432")
	conn, err := net.DialTimeout("tcp", addr, 1*time.Second)
	if err != nil {
		t.Skip("Skipping Postgres test: Postgres not available")
	}
	conn.Close()

	host, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		host, port,
		envOr("FV_TEST_PG_USER", "postgres"),
		envOr("FV_TEST_PG_PASSWORD", "postgres"),
		envOr("FV_TEST_PG_DB", "postgres"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Skipf("Skipping Postgres test: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	if err := sqlDB.PingContext(context.Background()); err != nil {
		t.Skipf("Skipping Postgres test: %v", err)
	}
	return buildEngine(t, db)
}

// cleanupObject 删除测试留下的行；表是共享的，只清理自己的摘要
func (e *testEngine) cleanupObject(t *testing.T, digest types.Digest) {
	t.Cleanup(func() {
		ctx := context.Background()
		obj, err := e.repo.FindObjectByDigest(ctx, digest.String())
		if err != nil {
			return
		}
		e.db.WithContext(ctx).Where("stored_object_id = ?", obj.ID).Delete(&meta.FileRecord{})
		e.db.WithContext(ctx).Where("id = ?", obj.ID).Delete(&meta.StoredObject{})
	})
}

// 在真实的多连接数据库上交错 attach 与 detach，计数必须始终等于记录数
func TestProtocol_Postgres_ConcurrentAttachDetach(t *testing.T) {
	e := setupPostgresEngine(t)
	ctx := context.Background()

	// 每次运行使用不同内容，避免与残留数据冲突
	content := "pg-race-" + uuid.NewString()
	e.cleanupObject(t, e.hasher.SumBytes([]byte(content)))

	const seeded, attachers = 4, 8
	var seededIDs []string
	for i := 0; i < seeded; i++ {
		seededIDs = append(seededIDs, e.upload(t, fmt.Sprintf("seed-%d", i), content).ID)
	}
	// anchor 最后上传且不参与删除，计数在第一轮中不会归零
	e.upload(t, "anchor", content)

	// 1. 并发：新上传 attach，同时删除全部初始记录 (包括 holder)
	var wg sync.WaitGroup
	errs := make(chan error, seeded+attachers)
	for i := 0; i < attachers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := e.tryUpload(ctx, fmt.Sprintf("late-%d", i), content)
			errs <- err
		}(i)
	}
	for _, id := range seededIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			d, err := e.protocol.Detach(ctx, types.RecordID(id))
			if err != nil {
				errs <- err
				return
			}
			e.protocol.Apply(ctx, d.Directive)
		}(id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// 2. 计数等于存活记录数，字节仍在行登记的位置上
	// holder 可能是迁移途中被删掉的记录，它只决定存储 key
	obj := e.object(t, content)
	assert.Equal(t, int64(attachers+1), obj.ReferenceCount)
	e.assertCountMatches(t, obj)
	assert.Equal(t, content, e.read(t, obj.Location))

	// 3. 并发删除剩余记录：回收恰好发生一次
	var late []string
	require.NoError(t, e.db.WithContext(ctx).Model(&meta.FileRecord{}).
		Where("stored_object_id = ?", obj.ID).Pluck("id", &late).Error)
	require.Len(t, late, attachers+1)

	var reclaims atomic.Int32
	errs = make(chan error, len(late))
	for _, id := range late {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			d, err := e.protocol.Detach(ctx, types.RecordID(id))
			if err != nil {
				errs <- err
				return
			}
			if d.Directive.Kind == DirectiveReclaim {
				reclaims.Add(1)
			}
			e.protocol.Apply(ctx, d.Directive)
		}(id)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), reclaims.Load())
	_, err := e.repo.GetObject(ctx, obj.ID)
	assert.ErrorIs(t, err, meta.ErrObjectNotFound)
}
