package dedup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"filevault/pkg/meta"
	"filevault/pkg/metrics"
	"filevault/pkg/storage"
	"filevault/pkg/types"
)

// DirectiveKind 是 Detach 提交后需要执行的物理动作
type DirectiveKind int

const (
	DirectiveNone DirectiveKind = iota
	// DirectiveReclaim 计数归零，行已删除，需要删除字节
	DirectiveReclaim
	// DirectiveMigrate 被删除的是 canonical holder，字节需要搬到存活的兄弟名下
	DirectiveMigrate
)

func (k DirectiveKind) String() string {
	switch k {
	case DirectiveReclaim:
		return "reclaim"
	case DirectiveMigrate:
		return "migrate"
	default:
		return "none"
	}
}

type Directive struct {
	Kind     DirectiveKind
	ObjectID types.ObjectID
	Digest   types.Digest
	// Location: reclaim 时是要删除的位置；migrate 时是源位置
	Location types.Location
	// TargetID: migrate 的新 holder
	TargetID types.RecordID
}

// Detachment 是两阶段删除第一阶段的结果
type Detachment struct {
	Record meta.FileRecord
	// Object 是提交后的状态；reclaim 时行已不存在，计数为 0
	// 记录指向的对象已经不存在时为 nil
	Object    *meta.StoredObject
	Directive Directive
}

// Outcome 是第二阶段的结果，Warning 永远不是删除失败
type Outcome struct {
	Directive   Directive
	Done        bool
	NewLocation types.Location
	Warning     error
}

// Protocol 实现 attach / detach 状态机
// 所有计数修改都在持有 StoredObject 行锁的事务内完成，物理 IO 在提交之后
type Protocol struct {
	repo    *meta.Repository
	backend storage.Backend
	retry   RetryPolicy
	log     *slog.Logger
	metrics *metrics.Collector
}

func NewProtocol(repo *meta.Repository, backend storage.Backend, opts ...Option) *Protocol {
	o := buildOptions(opts)
	return &Protocol{
		repo:    repo,
		backend: backend,
		retry:   o.retry,
		log:     o.log,
		metrics: o.metrics,
	}
}

// Attach 在一个事务内插入记录并把计数加一
// StoredObject 已被回收时返回 ErrObjectGone
func (p *Protocol) Attach(ctx context.Context, objectID string, rec *meta.FileRecord) error {
	rec.StoredObjectID = objectID
	rec.StoredObject = nil
	return p.retry.run(ctx, p.log, p.metrics, "attach", func() error {
		return p.repo.Transaction(ctx, func(tx *meta.Repository) error {
			// 1. 行锁
			if _, err := tx.LockObject(ctx, objectID); err != nil {
				if errors.Is(err, meta.ErrObjectNotFound) {
					return ErrObjectGone
				}
				return err
			}
			// 2. 插入记录
			if err := tx.InsertRecord(ctx, rec); err != nil {
				return err
			}
			// 3. reference_count = reference_count + 1
			return tx.AdjustRefCount(ctx, objectID, 1)
		})
	})
}

// Detach 删除记录并把计数减一 (同一事务)，返回提交后需要执行的指令
func (p *Protocol) Detach(ctx context.Context, recordID types.RecordID) (*Detachment, error) {
	var d *Detachment
	err := p.retry.run(ctx, p.log, p.metrics, "detach", func() error {
		d = nil
		return p.repo.Transaction(ctx, func(tx *meta.Repository) error {
			var err error
			d, err = p.detachTx(ctx, tx, recordID)
			return err
		})
	})
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			p.log.Debug("detach of unknown record", slog.String("record_id", recordID.String()))
		}
		return nil, err
	}
	p.metrics.Directive(d.Directive.Kind.String())
	return d, nil
}

func (p *Protocol) detachTx(ctx context.Context, tx *meta.Repository, recordID types.RecordID) (*Detachment, error) {
	// 1. 读记录
	rec, err := tx.GetRecord(ctx, recordID.String())
	if err != nil {
		return nil, err
	}
	rec.StoredObject = nil
	d := &Detachment{Record: *rec}

	// 2. 锁定 StoredObject
	obj, err := tx.LockObject(ctx, rec.StoredObjectID)
	if err != nil && !errors.Is(err, meta.ErrObjectNotFound) {
		return nil, err
	}

	// 3. 删除记录；并发删除同一条记录时，后到者影响 0 行
	deleted, err := tx.DeleteRecord(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, ErrRecordNotFound
	}

	// absent / zombie：只删记录，不动计数
	if obj == nil {
		p.log.Warn("record pointed at a missing stored object", slog.String("record_id", rec.ID))
		return d, nil
	}
	d.Object = obj
	if obj.ReferenceCount <= 0 {
		p.log.Warn("detach from zero-count stored object",
			slog.String("object_id", obj.ID), slog.String("record_id", rec.ID))
		return d, nil
	}

	// 4. reference_count = reference_count - 1
	if err := tx.AdjustRefCount(ctx, obj.ID, -1); err != nil {
		return nil, err
	}
	obj.ReferenceCount--

	switch {
	case obj.ReferenceCount == 0:
		// 最后一个引用：行在同一事务内删除，字节在提交后删除
		if err := tx.DeleteObject(ctx, obj.ID); err != nil {
			return nil, err
		}
		d.Directive = Directive{
			Kind:     DirectiveReclaim,
			ObjectID: types.ObjectID(obj.ID),
			Digest:   types.Digest(obj.Digest),
			Location: types.Location(obj.Location),
		}
	case obj.HolderID == rec.ID:
		target, err := tx.OldestSibling(ctx, obj.ID)
		if err != nil {
			return nil, err
		}
		if target == nil {
			// 计数 > 0 却找不到兄弟，说明计数已经漂移；不迁移，字节留在原处
			p.log.Warn("refcount drift: no surviving sibling",
				slog.String("object_id", obj.ID), slog.Int64("reference_count", obj.ReferenceCount))
			return d, nil
		}
		d.Directive = Directive{
			Kind:     DirectiveMigrate,
			ObjectID: types.ObjectID(obj.ID),
			Digest:   types.Digest(obj.Digest),
			Location: types.Location(obj.Location),
			TargetID: types.RecordID(target.ID),
		}
	}
	return d, nil
}

// Apply 执行 Detach 返回的指令 (两阶段删除的第二阶段)
// 复制或删除失败只会体现在 Outcome.Warning 中
func (p *Protocol) Apply(ctx context.Context, dir Directive) Outcome {
	switch dir.Kind {
	case DirectiveReclaim:
		return p.reclaim(ctx, dir)
	case DirectiveMigrate:
		return p.migrate(ctx, dir)
	default:
		return Outcome{Directive: dir, Done: true}
	}
}

func (p *Protocol) reclaim(ctx context.Context, dir Directive) Outcome {
	out := Outcome{Directive: dir}
	if err := p.backend.Delete(ctx, dir.Location); err != nil && !errors.Is(err, storage.ErrNotFound) {
		w := &OrphanBytesWarning{Location: dir.Location, Op: "reclaim", Err: err}
		reportOrphan(p.log, p.metrics, w)
		out.Warning = w
		return out
	}
	p.log.Debug("stored object reclaimed",
		slog.String("object_id", dir.ObjectID.String()), slog.String("digest", dir.Digest.Short()))
	out.Done = true
	return out
}

// migrate: 确认源存在 -> 复制到新 holder 的 key -> CAS 更新位置 -> 删除旧字节
func (p *Protocol) migrate(ctx context.Context, dir Directive) Outcome {
	out := Outcome{Directive: dir}

	// 1. 源字节必须还在，否则复制只会得到一个笼统的存储错误
	ok, err := p.backend.Exists(ctx, dir.Location)
	if err != nil {
		out.Warning = fmt.Errorf("%w: stat migration source: %w", ErrStorageWrite, err)
		return out
	}
	if !ok {
		p.log.Error("holder migration source is missing, stored object has no bytes",
			slog.String("object_id", dir.ObjectID.String()),
			slog.String("location", dir.Location.String()),
		)
		out.Warning = fmt.Errorf("%w: %s", ErrSourceMissing, dir.Location)
		return out
	}

	// 2. 复制
	newLoc, err := p.backend.Copy(ctx, dir.Location, dir.TargetID.String())
	if err != nil {
		p.log.Warn("holder migration copy failed, bytes stay at the old location",
			slog.String("object_id", dir.ObjectID.String()),
			slog.String("location", dir.Location.String()),
			slog.Any("err", err),
		)
		out.Warning = fmt.Errorf("%w: %w", ErrStorageWrite, err)
		return out
	}

	// 3. CAS：只有位置仍是旧值时才更新
	var swapped bool
	err = p.retry.run(ctx, p.log, p.metrics, "repoint", func() error {
		var err error
		swapped, err = p.repo.RepointObject(ctx, dir.ObjectID.String(), dir.Location.String(), newLoc.String(), dir.TargetID.String())
		return err
	})
	if err != nil || !swapped {
		// 对象已被回收或已被别人迁移，新副本作废
		if err != nil {
			out.Warning = err
		}
		if derr := p.backend.Delete(ctx, newLoc); derr != nil && !errors.Is(derr, storage.ErrNotFound) {
			w := &OrphanBytesWarning{Location: newLoc, Op: "migrate", Err: derr}
			reportOrphan(p.log, p.metrics, w)
			out.Warning = w
		}
		p.log.Debug("holder migration superseded", slog.String("object_id", dir.ObjectID.String()))
		return out
	}
	out.NewLocation = newLoc

	// 4. 删除旧字节
	if err := p.backend.Delete(ctx, dir.Location); err != nil && !errors.Is(err, storage.ErrNotFound) {
		w := &OrphanBytesWarning{Location: dir.Location, Op: "migrate", Err: err}
		reportOrphan(p.log, p.metrics, w)
		out.Warning = w
	}
	p.log.Debug("holder migrated",
		slog.String("object_id", dir.ObjectID.String()),
		slog.String("holder", dir.TargetID.String()),
		slog.String("location", newLoc.String()),
	)
	out.Done = true
	return out
}
