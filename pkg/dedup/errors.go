package dedup

import (
	"errors"
	"fmt"
	"log/slog"

	"filevault/pkg/hasher"
	"filevault/pkg/meta"
	"filevault/pkg/metrics"
	"filevault/pkg/storage"
	"filevault/pkg/types"
)

var (
	// ErrDigestComputation 摘要计算失败，发生在任何写操作之前
	ErrDigestComputation = hasher.ErrDigestComputation
	// ErrStorageWrite Backend 的 Put/Copy 失败
	ErrStorageWrite = errors.New("storage write failed")
	// ErrRefCountRace 计数事务冲突，重试耗尽后作为瞬时错误返回
	ErrRefCountRace = errors.New("reference count transaction conflict")
	// ErrRecordNotFound 记录不存在或已删除
	ErrRecordNotFound = meta.ErrRecordNotFound
	// ErrObjectGone attach 时 StoredObject 已被回收，上传方需要重新 resolve
	ErrObjectGone = errors.New("stored object no longer exists")
	// ErrSourceMissing migrate 时旧位置上已经没有字节，行保持原样
	ErrSourceMissing = fmt.Errorf("migration source missing: %w", storage.ErrNotFound)
)

// OrphanBytesWarning 表示物理删除失败、字节残留在存储中
// 它从不作为操作失败返回，只通过日志和 orphan_bytes_total 指标上报
type OrphanBytesWarning struct {
	Location types.Location
	Op       string
	Err      error
}

func (w *OrphanBytesWarning) Error() string {
	return fmt.Sprintf("orphan bytes at %s after %s: %v", w.Location, w.Op, w.Err)
}

func (w *OrphanBytesWarning) Unwrap() error { return w.Err }

// LogValue 实现 slog.LogValuer
func (w *OrphanBytesWarning) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("location", w.Location.String()),
		slog.String("op", w.Op),
		slog.Any("err", w.Err),
	)
}

func reportOrphan(log *slog.Logger, m *metrics.Collector, w *OrphanBytesWarning) {
	log.Warn("orphan bytes left in storage", slog.Any("orphan", w))
	m.OrphanBytes()
}
