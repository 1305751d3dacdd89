package meta

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRecordNotFound = errors.New("file record not found")
	ErrObjectNotFound = errors.New("stored object not found")
	// ErrCountUnderflow 说明计数与记录数已经不一致，属于不变量被破坏
	ErrCountUnderflow = errors.New("reference count would drop below zero")
)

// Repository 封装所有对 SQL 数据库的操作
// 在事务内由 Transaction 构造一个绑定 tx 的实例，方法集完全相同
type Repository struct {
	db *DB
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) conn(ctx context.Context) *gorm.DB {
	return r.db.GetConn().WithContext(ctx)
}

// Transaction 在一个数据库事务中执行 fn
// fn 内部必须只使用传入的 tx，否则 SQLite 单连接下会自我死锁
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: NewWithConn(tx)})
	})
}

// -----------------------------------------------------------------------------
// 1. StoredObject
// -----------------------------------------------------------------------------

// FindObjectByDigest 按摘要查找 (唯一索引)
func (r *Repository) FindObjectByDigest(ctx context.Context, digest string) (*StoredObject, error) {
	var obj StoredObject
	err := r.conn(ctx).Where("digest = ?", digest).First(&obj).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

func (r *Repository) GetObject(ctx context.Context, id string) (*StoredObject, error) {
	var obj StoredObject
	err := r.conn(ctx).Where("id = ?", id).First(&obj).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

// LockObject 读取并锁定 StoredObject 行 (SELECT ... FOR UPDATE)
// 只应在 Transaction 内调用；SQLite 没有行锁，靠写事务串行化
func (r *Repository) LockObject(ctx context.Context, id string) (*StoredObject, error) {
	var obj StoredObject
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&obj).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

// CreateObject 幂等插入 (ON CONFLICT (digest) DO NOTHING)
// 返回 false 表示同摘要的行已被别人抢先插入
func (r *Repository) CreateObject(ctx context.Context, obj *StoredObject) (bool, error) {
	if obj.CreatedAt.IsZero() {
		obj.CreatedAt = time.Now().UTC()
	}
	result := r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "digest"}},
			DoNothing: true,
		}).
		Create(obj)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create stored object: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// AdjustRefCount 原子地执行 reference_count = reference_count + delta
// 递减时带上 reference_count >= -delta 条件，防止计数变成负数
func (r *Repository) AdjustRefCount(ctx context.Context, id string, delta int64) error {
	q := r.conn(ctx).Model(&StoredObject{}).Where("id = ?", id)
	if delta < 0 {
		q = q.Where("reference_count >= ?", -delta)
	}
	result := q.Update("reference_count", gorm.Expr("reference_count + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if delta < 0 {
			return ErrCountUnderflow
		}
		return ErrObjectNotFound
	}
	return nil
}

// DeleteObject 删除 StoredObject 行 (计数已在同一事务内归零)
func (r *Repository) DeleteObject(ctx context.Context, id string) error {
	result := r.conn(ctx).Where("id = ?", id).Delete(&StoredObject{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrObjectNotFound
	}
	return nil
}

// DeleteZombie 条件删除：只删除计数为 0 且没有任何记录引用的行
// 与并发 attach 竞争时，attach 先拿到行锁则这里影响 0 行
func (r *Repository) DeleteZombie(ctx context.Context, id string) (bool, error) {
	result := r.conn(ctx).
		Where("id = ? AND reference_count = 0", id).
		Where("NOT EXISTS (?)", r.conn(ctx).Model(&FileRecord{}).
			Select("1").
			Where("files_metadata.stored_object_id = stored_objects.id")).
		Delete(&StoredObject{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RepointObject 迁移字节后更新位置 (CAS - Compare And Swap)
// SQL: UPDATE stored_objects SET location = ?, holder_id = ? WHERE id = ? AND location = ?
func (r *Repository) RepointObject(ctx context.Context, id, oldLoc, newLoc, newHolder string) (bool, error) {
	result := r.conn(ctx).Model(&StoredObject{}).
		Where("id = ? AND location = ?", id, oldLoc).
		Updates(map[string]any{
			"location":  newLoc,
			"holder_id": newHolder,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ReapCandidates 列出可回收的僵尸行：计数为 0、无记录引用、且早于 before
// limit <= 0 表示不限制
func (r *Repository) ReapCandidates(ctx context.Context, before time.Time, limit int) ([]StoredObject, error) {
	var objs []StoredObject
	q := r.conn(ctx).
		Where("reference_count = 0 AND created_at < ?", before).
		Where("NOT EXISTS (?)", r.conn(ctx).Model(&FileRecord{}).
			Select("1").
			Where("files_metadata.stored_object_id = stored_objects.id")).
		Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&objs).Error
	return objs, err
}

// Locations 返回所有已登记的位置 (孤儿字节扫描用)
func (r *Repository) Locations(ctx context.Context) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	var batch []StoredObject
	err := r.conn(ctx).Select("id", "location").
		FindInBatches(&batch, 500, func(tx *gorm.DB, _ int) error {
			for _, o := range batch {
				out[o.Location] = struct{}{}
			}
			return nil
		}).Error
	return out, err
}

// -----------------------------------------------------------------------------
// 2. FileRecord
// -----------------------------------------------------------------------------

// GetRecord 读取记录并带上它指向的 StoredObject
func (r *Repository) GetRecord(ctx context.Context, id string) (*FileRecord, error) {
	var rec FileRecord
	err := r.conn(ctx).Preload("StoredObject").Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// InsertRecord 写入新记录 (attach 事务内调用)
func (r *Repository) InsertRecord(ctx context.Context, rec *FileRecord) error {
	if rec.UploadedAt.IsZero() {
		rec.UploadedAt = time.Now().UTC()
	}
	// Omit 关联，避免 GORM 顺手 upsert StoredObject
	if err := r.conn(ctx).Omit(clause.Associations).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to insert file record: %w", err)
	}
	return nil
}

// DeleteRecord 删除记录，返回是否真的删掉了一行
func (r *Repository) DeleteRecord(ctx context.Context, id string) (bool, error) {
	result := r.conn(ctx).Where("id = ?", id).Delete(&FileRecord{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// OldestSibling 找到指向同一 StoredObject 的最早记录 (uploaded_at, id 排序)
// 没有兄弟时返回 (nil, nil)
func (r *Repository) OldestSibling(ctx context.Context, objectID string) (*FileRecord, error) {
	var rec FileRecord
	err := r.conn(ctx).
		Where("stored_object_id = ?", objectID).
		Order("uploaded_at ASC").
		Order("id ASC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Filter 描述列表/搜索的过滤条件，零值字段不参与过滤
type Filter struct {
	FileType     string   // 精确匹配的 MIME
	ExcludeTypes []string // 排除的 MIME 集合 ("other")
	MinSize      *int64
	MaxSize      *int64
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}

func (f Filter) apply(q *gorm.DB) *gorm.DB {
	if f.FileType != "" {
		q = q.Where("file_type = ?", f.FileType)
	}
	if len(f.ExcludeTypes) > 0 {
		q = q.Where("file_type NOT IN ?", f.ExcludeTypes)
	}
	if f.MinSize != nil {
		q = q.Where("size >= ?", *f.MinSize)
	}
	if f.MaxSize != nil {
		q = q.Where("size <= ?", *f.MaxSize)
	}
	if f.StartDate != nil {
		q = q.Where("uploaded_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("uploaded_at <= ?", *f.EndDate)
	}
	return q
}

// ListRecords 按过滤条件列出记录，最新的在前；同时返回满足条件的总数
func (r *Repository) ListRecords(ctx context.Context, f Filter) ([]FileRecord, int64, error) {
	return r.findRecords(func() *gorm.DB {
		return f.apply(r.conn(ctx).Model(&FileRecord{}))
	}, f)
}

// SearchRecords 文件名大小写不敏感的子串匹配
func (r *Repository) SearchRecords(ctx context.Context, query string, f Filter) ([]FileRecord, int64, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	return r.findRecords(func() *gorm.DB {
		q := r.conn(ctx).Model(&FileRecord{}).
			Where(`LOWER(original_filename) LIKE ? ESCAPE '\'`, pattern)
		return f.apply(q)
	}, f)
}

// findRecords 的 build 每次返回一个全新的查询，Count 和 Find 互不污染
func (r *Repository) findRecords(build func() *gorm.DB, f Filter) ([]FileRecord, int64, error) {
	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var recs []FileRecord
	q := build().Preload("StoredObject").Order("uploaded_at DESC").Order("id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// EachRecord 分批遍历所有记录 (重建索引用)
func (r *Repository) EachRecord(ctx context.Context, batchSize int, fn func([]FileRecord) error) error {
	var batch []FileRecord
	return r.conn(ctx).Preload("StoredObject").
		FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
			return fn(batch)
		}).Error
}

// -----------------------------------------------------------------------------
// 3. 统计 (Stats)
// -----------------------------------------------------------------------------

// Stats 是去重效果的快照
type Stats struct {
	TotalFiles      int64
	UniqueFiles     int64
	DuplicateFiles  int64
	TotalSize       int64 // 记录声明大小之和
	ActualSize      int64 // 实际存储的字节 (每个活跃 StoredObject 一份)
	SpaceSaved      int64
	PercentageSaved float64
}

type aggregate struct {
	N     int64
	Bytes int64
}

func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	var files, objects aggregate
	if err := r.conn(ctx).Model(&FileRecord{}).
		Select("COUNT(*) AS n, CAST(COALESCE(SUM(size), 0) AS BIGINT) AS bytes").
		Scan(&files).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate records: %w", err)
	}
	if err := r.conn(ctx).Model(&StoredObject{}).
		Where("reference_count > 0").
		Select("COUNT(*) AS n, CAST(COALESCE(SUM(size), 0) AS BIGINT) AS bytes").
		Scan(&objects).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate objects: %w", err)
	}

	s := &Stats{
		TotalFiles:     files.N,
		UniqueFiles:    objects.N,
		DuplicateFiles: files.N - objects.N,
		TotalSize:      files.Bytes,
		ActualSize:     objects.Bytes,
		SpaceSaved:     files.Bytes - objects.Bytes,
	}
	if s.TotalSize > 0 {
		s.PercentageSaved = math.Round(float64(s.SpaceSaved)/float64(s.TotalSize)*10000) / 100
	}
	return s, nil
}
