package meta

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestRepository_ObjectLifecycle(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	obj := mustCreateObject(t, repo, "hello", 0)

	// 1. 按摘要查找
	got, err := repo.FindObjectByDigest(ctx, obj.Digest)
	require.NoError(t, err)
	assert.Equal(t, obj.ID, got.ID)
	assert.Zero(t, got.ReferenceCount)

	// 2. 同摘要再次插入：DO NOTHING，返回 false
	dup := &StoredObject{ID: uuid.NewString(), Digest: obj.Digest, Algorithm: "sha256", Location: "other"}
	created, err := repo.CreateObject(ctx, dup)
	require.NoError(t, err)
	assert.False(t, created, "duplicate digest must not create a second row")

	// 3. 计数加减
	require.NoError(t, repo.AdjustRefCount(ctx, obj.ID, 1))
	require.NoError(t, repo.AdjustRefCount(ctx, obj.ID, 1))
	require.NoError(t, repo.AdjustRefCount(ctx, obj.ID, -2))
	got, err = repo.GetObject(ctx, obj.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.ReferenceCount)

	// 4. 计数不能变成负数
	err = repo.AdjustRefCount(ctx, obj.ID, -1)
	assert.ErrorIs(t, err, ErrCountUnderflow)

	// 5. 不存在的对象
	assert.ErrorIs(t, repo.AdjustRefCount(ctx, uuid.NewString(), 1), ErrObjectNotFound)
	_, err = repo.FindObjectByDigest(ctx, mockDigest("nope"))
	assert.ErrorIs(t, err, ErrObjectNotFound)

	// 6. 删除
	require.NoError(t, repo.DeleteObject(ctx, obj.ID))
	assert.ErrorIs(t, repo.DeleteObject(ctx, obj.ID), ErrObjectNotFound)
}

func TestRepository_RepointCAS(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	obj := mustCreateObject(t, repo, "data", 1)

	// 旧位置匹配：成功
	ok, err := repo.RepointObject(ctx, obj.ID, obj.Location, "new/loc", "holder-2")
	require.NoError(t, err)
	assert.True(t, ok)

	// 旧位置已经变了：CAS 失败
	ok, err = repo.RepointObject(ctx, obj.ID, obj.Location, "third/loc", "holder-3")
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetObject(ctx, obj.ID)
	require.NoError(t, err)
	assert.Equal(t, "new/loc", got.Location)
	assert.Equal(t, "holder-2", got.HolderID)
}

func TestRepository_TransactionRollback(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	obj := mustCreateObject(t, repo, "tx", 0)

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(tx *Repository) error {
		locked, err := tx.LockObject(ctx, obj.ID)
		require.NoError(t, err)
		require.NoError(t, tx.InsertRecord(ctx, &FileRecord{
			ID:             uuid.NewString(),
			StoredObjectID: locked.ID,
		}))
		require.NoError(t, tx.AdjustRefCount(ctx, locked.ID, 1))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// 回滚后既没有记录，也没有计数变化
	assert.Zero(t, countRecords(t, repo, obj.ID))
	got, err := repo.GetObject(ctx, obj.ID)
	require.NoError(t, err)
	assert.Zero(t, got.ReferenceCount)
}

func TestRepository_RecordLifecycle(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	obj := mustCreateObject(t, repo, "hello", 2)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	x := mustInsertRecord(t, repo, obj, "x.txt", "text/plain", base)
	y := mustInsertRecord(t, repo, obj, "y.txt", "text/plain", base.Add(time.Minute))

	// 1. GetRecord 带出 StoredObject
	got, err := repo.GetRecord(ctx, x.ID)
	require.NoError(t, err)
	require.NotNil(t, got.StoredObject)
	assert.Equal(t, obj.Digest, got.StoredObject.Digest)

	// 2. 最早的兄弟
	sib, err := repo.OldestSibling(ctx, obj.ID)
	require.NoError(t, err)
	assert.Equal(t, x.ID, sib.ID)

	// 3. 删除
	deleted, err := repo.DeleteRecord(ctx, x.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = repo.DeleteRecord(ctx, x.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.GetRecord(ctx, x.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	sib, err = repo.OldestSibling(ctx, obj.ID)
	require.NoError(t, err)
	assert.Equal(t, y.ID, sib.ID)

	// 4. 没有兄弟时返回 nil
	_, err = repo.DeleteRecord(ctx, y.ID)
	require.NoError(t, err)
	sib, err = repo.OldestSibling(ctx, obj.ID)
	require.NoError(t, err)
	assert.Nil(t, sib)
}

func TestRepository_Labels(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	obj := mustCreateObject(t, repo, "labels", 1)

	rec := &FileRecord{
		ID:             uuid.NewString(),
		StoredObjectID: obj.ID,
		Labels:         datatypes.JSON(`{"team":"infra","tier":1}`),
	}
	require.NoError(t, repo.InsertRecord(ctx, rec))

	got, err := repo.GetRecord(ctx, rec.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"team":"infra","tier":1}`, string(got.Labels))
	assert.False(t, got.UploadedAt.IsZero(), "UploadedAt should default to now")
}

func TestRepository_ListAndSearch(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	small := mustCreateObject(t, repo, "tiny", 2)
	big := mustCreateObject(t, repo, "a much larger payload", 1)
	weird := mustCreateObject(t, repo, "weird", 1)

	mustInsertRecord(t, repo, small, "Report_2024.pdf", "application/pdf", base)
	mustInsertRecord(t, repo, small, "notes.txt", "text/plain", base.Add(time.Hour))
	mustInsertRecord(t, repo, big, "annual REPORT.pdf", "application/pdf", base.Add(2*time.Hour))
	mustInsertRecord(t, repo, weird, "blob.bin", "application/x-custom", base.Add(3*time.Hour))

	t.Run("AllNewestFirst", func(t *testing.T) {
		recs, total, err := repo.ListRecords(ctx, Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		require.Len(t, recs, 4)
		assert.Equal(t, "blob.bin", recs[0].OriginalFilename)
		assert.Equal(t, "Report_2024.pdf", recs[3].OriginalFilename)
	})

	t.Run("ByType", func(t *testing.T) {
		recs, total, err := repo.ListRecords(ctx, Filter{FileType: "application/pdf"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, recs, 2)
	})

	t.Run("ExcludeTypes", func(t *testing.T) {
		recs, _, err := repo.ListRecords(ctx, Filter{ExcludeTypes: []string{"application/pdf", "text/plain"}})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "blob.bin", recs[0].OriginalFilename)
	})

	t.Run("SizeAndDate", func(t *testing.T) {
		recs, _, err := repo.ListRecords(ctx, Filter{MinSize: ptr(int64(5)), MaxSize: ptr(int64(10))})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "blob.bin", recs[0].OriginalFilename)

		recs, _, err = repo.ListRecords(ctx, Filter{
			StartDate: ptr(base.Add(30 * time.Minute)),
			EndDate:   ptr(base.Add(90 * time.Minute)),
		})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "notes.txt", recs[0].OriginalFilename)
	})

	t.Run("Pagination", func(t *testing.T) {
		recs, total, err := repo.ListRecords(ctx, Filter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total, "total ignores pagination")
		require.Len(t, recs, 2)
		assert.Equal(t, "annual REPORT.pdf", recs[0].OriginalFilename)
	})

	t.Run("SearchCaseInsensitive", func(t *testing.T) {
		recs, total, err := repo.SearchRecords(ctx, "report", Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, recs, 2)
	})

	t.Run("SearchEscapesWildcards", func(t *testing.T) {
		recs, _, err := repo.SearchRecords(ctx, "t_2", Filter{})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "Report_2024.pdf", recs[0].OriginalFilename)

		recs, _, err = repo.SearchRecords(ctx, "%", Filter{})
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("SearchWithFilter", func(t *testing.T) {
		recs, _, err := repo.SearchRecords(ctx, "report", Filter{MinSize: ptr(int64(10))})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "annual REPORT.pdf", recs[0].OriginalFilename)
	})
}

func TestRepository_Stats(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	// 空库
	s, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, s.TotalFiles)
	assert.Zero(t, s.PercentageSaved)

	hello := mustCreateObject(t, repo, "hello", 2) // 5 字节，两条记录
	world := mustCreateObject(t, repo, "world!", 1)
	mustCreateObject(t, repo, "zombie", 0) // 僵尸不计入

	now := time.Now().UTC()
	mustInsertRecord(t, repo, hello, "x", "text/plain", now)
	mustInsertRecord(t, repo, hello, "y", "text/plain", now)
	mustInsertRecord(t, repo, world, "z", "text/plain", now)

	s, err = repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), s.TotalFiles)
	assert.Equal(t, int64(2), s.UniqueFiles)
	assert.Equal(t, int64(1), s.DuplicateFiles)
	assert.Equal(t, int64(16), s.TotalSize)
	assert.Equal(t, int64(11), s.ActualSize)
	assert.Equal(t, int64(5), s.SpaceSaved)
	assert.InDelta(t, 31.25, s.PercentageSaved, 0.001)
}

func TestRepository_ReapCandidates(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	zombie := mustCreateObject(t, repo, "zombie", 0)
	live := mustCreateObject(t, repo, "live", 1)
	mustInsertRecord(t, repo, live, "live.txt", "text/plain", time.Now().UTC())

	// 宽限期内：不是候选
	objs, err := repo.ReapCandidates(ctx, time.Now().UTC().Add(-time.Hour), 10)
	require.NoError(t, err)
	assert.Empty(t, objs)

	objs, err = repo.ReapCandidates(ctx, time.Now().UTC().Add(time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, zombie.ID, objs[0].ID)

	// 条件删除：活跃对象删不掉
	ok, err := repo.DeleteZombie(ctx, live.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.DeleteZombie(ctx, zombie.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	locs, err := repo.Locations(ctx)
	require.NoError(t, err)
	assert.Len(t, locs, 1)
	assert.Contains(t, locs, live.Location)
}

func TestRepository_EachRecord(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	obj := mustCreateObject(t, repo, "batch", 5)
	for i := 0; i < 5; i++ {
		mustInsertRecord(t, repo, obj, "f", "text/plain", time.Now().UTC())
	}

	batches, seen := 0, 0
	err := repo.EachRecord(ctx, 2, func(recs []FileRecord) error {
		batches++
		seen += len(recs)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, seen)
	assert.Equal(t, 3, batches)
}
