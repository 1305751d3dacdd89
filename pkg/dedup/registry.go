package dedup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"filevault/pkg/hasher"
	"filevault/pkg/meta"
	"filevault/pkg/metrics"
	"filevault/pkg/storage"
	"filevault/pkg/types"

	"github.com/google/uuid"
	"github.com/im7mortal/kmutex"
)

// Candidate 是一次上传在 resolve 阶段需要的全部信息
type Candidate struct {
	Digest    types.Digest
	Algorithm hasher.Algorithm
	Size      int64
	// HolderID 是即将创建的记录 ID，新字节写在它的 key 下
	HolderID types.RecordID
	// Source 必须位于开头；只有需要创建时才会被读取
	Source io.Reader
}

// Registry 负责 Digest -> StoredObject 的映射
// 它只创建计数为 0 的行，从不修改计数
type Registry struct {
	repo    *meta.Repository
	backend storage.Backend
	locks   *kmutex.Kmutex
	log     *slog.Logger
	metrics *metrics.Collector
}

func NewRegistry(repo *meta.Repository, backend storage.Backend, opts ...Option) *Registry {
	o := buildOptions(opts)
	return &Registry{
		repo:    repo,
		backend: backend,
		locks:   kmutex.New(),
		log:     o.log,
		metrics: o.metrics,
	}
}

// Lookup 只查不建
func (r *Registry) Lookup(ctx context.Context, digest types.Digest) (*meta.StoredObject, error) {
	return r.repo.FindObjectByDigest(ctx, digest.String())
}

// ResolveOrCreate 查找摘要对应的 StoredObject，不存在则写入字节并创建
// created=true 表示本次调用创建了新行 (计数为 0，等待 attach)
func (r *Registry) ResolveOrCreate(ctx context.Context, c Candidate) (*meta.StoredObject, bool, error) {
	if !c.Digest.IsValid() {
		return nil, false, fmt.Errorf("%w: malformed digest %q", ErrDigestComputation, c.Digest)
	}

	// 1. 快路径：已存在
	obj, err := r.find(ctx, c.Digest)
	if err != nil || obj != nil {
		return obj, false, err
	}

	// 2. 同摘要的创建者在进程内串行化，跨进程由唯一索引兜底
	key := c.Digest.String()
	r.locks.Lock(key)
	defer r.locks.Unlock(key)

	// 3. Double check：等锁期间可能已被创建
	obj, err = r.find(ctx, c.Digest)
	if err != nil || obj != nil {
		return obj, false, err
	}

	// 4. 先写字节，再插行；行可见时字节一定已经存在
	loc, n, err := r.backend.Put(ctx, c.HolderID.String(), c.Source)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	obj = &meta.StoredObject{
		ID:        uuid.NewString(),
		Digest:    c.Digest.String(),
		Algorithm: string(c.Algorithm),
		Location:  loc.String(),
		HolderID:  c.HolderID.String(),
		Size:      n,
	}
	inserted, err := r.repo.CreateObject(ctx, obj)
	if err != nil {
		r.discard(ctx, loc, "create")
		return nil, false, err
	}
	if !inserted {
		// 另一个进程抢先插入：丢弃我们的字节，返回赢家
		r.log.Debug("lost create race", slog.String("digest", c.Digest.Short()))
		r.discard(ctx, loc, "create-race")
		winner, err := r.find(ctx, c.Digest)
		if err != nil {
			return nil, false, err
		}
		if winner == nil {
			return nil, false, ErrObjectGone
		}
		return winner, false, nil
	}

	r.log.Debug("stored object created",
		slog.String("digest", c.Digest.Short()),
		slog.String("object_id", obj.ID),
		slog.Int64("size", n),
	)
	return obj, true, nil
}

// Abandon 是 attach 失败后的补偿：条件删除刚创建的零计数行及其字节
// 如果期间有人 attach 成功，条件删除不会生效，交给后续流程
func (r *Registry) Abandon(ctx context.Context, obj *meta.StoredObject) {
	deleted, err := r.repo.DeleteZombie(ctx, obj.ID)
	if err != nil {
		r.log.Warn("failed to abandon stored object, leaving it to the reaper",
			slog.String("object_id", obj.ID), slog.Any("err", err))
		return
	}
	if !deleted {
		return
	}
	r.discard(ctx, types.Location(obj.Location), "abandon")
}

func (r *Registry) find(ctx context.Context, digest types.Digest) (*meta.StoredObject, error) {
	obj, err := r.repo.FindObjectByDigest(ctx, digest.String())
	if errors.Is(err, meta.ErrObjectNotFound) {
		return nil, nil
	}
	return obj, err
}

func (r *Registry) discard(ctx context.Context, loc types.Location, op string) {
	if err := r.backend.Delete(ctx, loc); err != nil && !errors.Is(err, storage.ErrNotFound) {
		reportOrphan(r.log, r.metrics, &OrphanBytesWarning{Location: loc, Op: op, Err: err})
	}
}
