package meta

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// -----------------------------------------------------------------------------
// 通用辅助函数 (Helpers)
// -----------------------------------------------------------------------------

// setupTestRepo 构建隔离的测试环境
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	metaDB := NewWithConn(db)
	require.NoError(t, metaDB.AutoMigrate(Models()...))
	return NewRepository(metaDB)
}

// countRecords 统计指向某个 StoredObject 的记录数
func countRecords(t *testing.T, repo *Repository, objectID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, repo.conn(context.Background()).Model(&FileRecord{}).
		Where("stored_object_id = ?", objectID).Count(&n).Error)
	return n
}

// mockDigest 生成合法的测试用摘要
func mockDigest(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// mustCreateObject 插入一个 StoredObject，计数直接设为 refs
func mustCreateObject(t *testing.T, repo *Repository, content string, refs int64) *StoredObject {
	t.Helper()
	ctx := context.Background()
	obj := &StoredObject{
		ID:        uuid.NewString(),
		Digest:    mockDigest(content),
		Algorithm: "sha256",
		Location:  "loc/" + content,
		Size:      int64(len(content)),
	}
	created, err := repo.CreateObject(ctx, obj)
	require.NoError(t, err)
	require.True(t, created)
	if refs > 0 {
		require.NoError(t, repo.AdjustRefCount(ctx, obj.ID, refs))
		obj.ReferenceCount = refs
	}
	return obj
}

// mustInsertRecord 插入一条指向 obj 的记录
func mustInsertRecord(t *testing.T, repo *Repository, obj *StoredObject, name, typ string, uploaded time.Time) *FileRecord {
	t.Helper()
	rec := &FileRecord{
		ID:               uuid.NewString(),
		StoredObjectID:   obj.ID,
		OriginalFilename: name,
		FileType:         typ,
		Size:             obj.Size,
		UploadedAt:       uploaded,
	}
	require.NoError(t, repo.InsertRecord(context.Background(), rec))
	return rec
}

func ptr[T any](v T) *T { return &v }
