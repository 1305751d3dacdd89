// Package vault 是上传、下载、删除、查询的统一入口
// 它把 hasher / registry / protocol / events 串成完整的业务流程
package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"filevault/pkg/dedup"
	"filevault/pkg/events"
	"filevault/pkg/hasher"
	"filevault/pkg/meta"
	"filevault/pkg/metrics"
	"filevault/pkg/mimetype"
	"filevault/pkg/storage"
	"filevault/pkg/types"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"gorm.io/datatypes"
)

// ErrInvalidRequest 请求参数不合法 (缺少文件名、内容或搜索词)
var ErrInvalidRequest = errors.New("invalid request")

const (
	defaultUploadAttempts = 3
	abandonTimeout        = 10 * time.Second
)

// Options 是 Vault 的可选依赖，零值字段使用默认实现
type Options struct {
	Hasher    *hasher.Hasher
	Publisher events.Publisher
	Logger    *slog.Logger
	Metrics   *metrics.Collector
	Retry     dedup.RetryPolicy
	Reaper    dedup.ReaperConfig

	// 上传暂存 (默认: OsFs + 系统临时目录)
	SpoolFs  afero.Fs
	SpoolDir string

	// UploadAttempts 是 attach 遇到 ErrObjectGone 时重新 resolve 的次数上限
	UploadAttempts int
}

type Vault struct {
	repo      *meta.Repository
	backend   storage.Backend
	registry  *dedup.Registry
	protocol  *dedup.Protocol
	reaper    *dedup.Reaper
	hasher    *hasher.Hasher
	publisher events.Publisher
	log       *slog.Logger
	metrics   *metrics.Collector
	spoolFs   afero.Fs
	spoolDir  string
	attempts  int
	now       func() time.Time
}

func New(repo *meta.Repository, backend storage.Backend, opts Options) *Vault {
	if opts.Hasher == nil {
		opts.Hasher = hasher.Default()
	}
	if opts.Publisher == nil {
		opts.Publisher = events.Discard{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Retry.Attempts == 0 {
		opts.Retry = dedup.DefaultRetryPolicy()
	}
	if opts.SpoolFs == nil {
		opts.SpoolFs = afero.NewOsFs()
	}
	if opts.SpoolDir == "" {
		opts.SpoolDir = os.TempDir()
	}
	if opts.UploadAttempts <= 0 {
		opts.UploadAttempts = defaultUploadAttempts
	}
	if err := opts.SpoolFs.MkdirAll(opts.SpoolDir, 0o755); err != nil {
		opts.Logger.Warn("failed to create spool dir", slog.String("dir", opts.SpoolDir), slog.Any("err", err))
	}

	common := []dedup.Option{
		dedup.WithLogger(opts.Logger),
		dedup.WithMetrics(opts.Metrics),
		dedup.WithRetryPolicy(opts.Retry),
	}
	return &Vault{
		repo:      repo,
		backend:   backend,
		registry:  dedup.NewRegistry(repo, backend, common...),
		protocol:  dedup.NewProtocol(repo, backend, common...),
		reaper:    dedup.NewReaper(repo, backend, opts.Reaper, common...),
		hasher:    opts.Hasher,
		publisher: opts.Publisher,
		log:       opts.Logger,
		metrics:   opts.Metrics,
		spoolFs:   opts.SpoolFs,
		spoolDir:  opts.SpoolDir,
		attempts:  opts.UploadAttempts,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// File 是对外暴露的记录视图
type File struct {
	ID         string
	Name       string
	Type       string
	Size       int64
	Digest     types.Digest
	ObjectID   string
	UploadedAt time.Time
	Labels     map[string]any
}

func fileFromRecord(rec *meta.FileRecord) *File {
	f := &File{
		ID:         rec.ID,
		Name:       rec.OriginalFilename,
		Type:       rec.FileType,
		Size:       rec.Size,
		ObjectID:   rec.StoredObjectID,
		UploadedAt: rec.UploadedAt,
	}
	if rec.StoredObject != nil {
		f.Digest = types.Digest(rec.StoredObject.Digest)
	}
	if len(rec.Labels) > 0 {
		_ = json.Unmarshal(rec.Labels, &f.Labels)
	}
	return f
}

// -----------------------------------------------------------------------------
// 1. 上传
// -----------------------------------------------------------------------------

type UploadRequest struct {
	Name string
	// Type 为空或 application/octet-stream 时按扩展名推断
	Type string
	// Size 是客户端声明的大小，<= 0 时使用实际字节数
	Size   int64
	Labels map[string]any
	Body   io.Reader
}

type UploadResult struct {
	File
	// Deduplicated 表示内容已存在，本次只增加了引用
	Deduplicated bool
}

// Upload 暂存并计算摘要 -> resolve -> attach
// attach 时对象恰好被回收 (ErrObjectGone) 则重新 resolve
func (v *Vault) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if req.Name == "" || req.Body == nil {
		return nil, fmt.Errorf("%w: name and body are required", ErrInvalidRequest)
	}
	var labels datatypes.JSON
	if len(req.Labels) > 0 {
		raw, err := json.Marshal(req.Labels)
		if err != nil {
			return nil, fmt.Errorf("%w: labels: %w", ErrInvalidRequest, err)
		}
		labels = raw
	}

	// 1. 暂存 + 摘要 (失败时没有任何写入)
	sp, err := v.hasher.Spool(v.spoolFs, v.spoolDir, req.Body)
	if err != nil {
		return nil, err
	}
	defer sp.Close()

	size := req.Size
	if size <= 0 {
		size = sp.Size
	}
	typ := mimetype.Resolve(req.Type, req.Name)

	for attempt := 1; ; attempt++ {
		if err := sp.Rewind(); err != nil {
			return nil, fmt.Errorf("%w: rewind spool: %w", dedup.ErrDigestComputation, err)
		}
		id := uuid.NewString()

		// 2. resolve (必要时写入字节)
		obj, created, err := v.registry.ResolveOrCreate(ctx, dedup.Candidate{
			Digest:    sp.Digest,
			Algorithm: v.hasher.Algorithm(),
			Size:      sp.Size,
			HolderID:  types.RecordID(id),
			Source:    sp,
		})
		if err == nil {
			// 3. attach
			rec := &meta.FileRecord{
				ID:               id,
				OriginalFilename: req.Name,
				FileType:         typ,
				Size:             size,
				UploadedAt:       v.now(),
				Labels:           labels,
			}
			err = v.protocol.Attach(ctx, obj.ID, rec)
			if err == nil {
				v.metrics.Upload(created)
				rec.StoredObject = obj
				f := fileFromRecord(rec)
				v.publish(ctx, events.Event{
					Kind:     events.RecordCreated,
					RecordID: f.ID,
					ObjectID: obj.ID,
					Digest:   obj.Digest,
					Filename: f.Name,
					FileType: f.Type,
					Size:     f.Size,
				})
				v.log.Info("file uploaded",
					slog.String("id", f.ID),
					slog.String("name", f.Name),
					slog.String("digest", sp.Digest.Short()),
					slog.Bool("deduplicated", !created),
				)
				return &UploadResult{File: *f, Deduplicated: !created}, nil
			}
			// attach 失败：本次创建的零计数行立即补偿
			// 请求可能正是因为取消而失败，补偿不能继承这个取消
			if created {
				actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), abandonTimeout)
				v.registry.Abandon(actx, obj)
				cancel()
			}
		}

		if errors.Is(err, dedup.ErrObjectGone) && attempt < v.attempts {
			v.log.Debug("stored object vanished during upload, re-resolving",
				slog.String("digest", sp.Digest.Short()), slog.Int("attempt", attempt))
			continue
		}
		return nil, err
	}
}

// -----------------------------------------------------------------------------
// 2. 删除
// -----------------------------------------------------------------------------

// Delete 两阶段删除：Detach (事务) -> Apply (物理动作) -> 事件
// 未知或已删除的 id 返回 ErrRecordNotFound
func (v *Vault) Delete(ctx context.Context, id string) error {
	d, err := v.protocol.Detach(ctx, types.RecordID(id))
	if err != nil {
		return err
	}
	out := v.protocol.Apply(ctx, d.Directive)

	removed := events.Event{
		Kind:     events.RecordRemoved,
		RecordID: d.Record.ID,
		ObjectID: d.Record.StoredObjectID,
		Filename: d.Record.OriginalFilename,
		FileType: d.Record.FileType,
		Size:     d.Record.Size,
	}
	if d.Object != nil {
		removed.Digest = d.Object.Digest
	}
	v.publish(ctx, removed)
	switch d.Directive.Kind {
	case dedup.DirectiveReclaim:
		v.publish(ctx, events.Event{
			Kind:     events.ObjectReclaimed,
			ObjectID: d.Directive.ObjectID.String(),
			Digest:   d.Directive.Digest.String(),
			Location: d.Directive.Location.String(),
		})
	case dedup.DirectiveMigrate:
		if out.Done {
			v.publish(ctx, events.Event{
				Kind:     events.ObjectMigrated,
				RecordID: d.Directive.TargetID.String(),
				ObjectID: d.Directive.ObjectID.String(),
				Digest:   d.Directive.Digest.String(),
				Location: out.NewLocation.String(),
			})
		}
	}
	v.log.Info("file deleted",
		slog.String("id", id),
		slog.String("directive", d.Directive.Kind.String()),
		slog.Bool("applied", out.Done),
	)
	return nil
}

// -----------------------------------------------------------------------------
// 3. 读取
// -----------------------------------------------------------------------------

func (v *Vault) Get(ctx context.Context, id string) (*File, error) {
	rec, err := v.repo.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	return fileFromRecord(rec), nil
}

// Open 返回记录的元数据和内容流，调用方负责 Close
// 读取与 holder 迁移并发时，旧位置可能刚被删除，此时重新读取一次记录
func (v *Vault) Open(ctx context.Context, id string) (*File, io.ReadCloser, error) {
	for attempt := 0; ; attempt++ {
		rec, err := v.repo.GetRecord(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		if rec.StoredObject == nil {
			return nil, nil, fmt.Errorf("%w: record %s has no stored object", dedup.ErrObjectGone, id)
		}
		rc, err := v.backend.Get(ctx, types.Location(rec.StoredObject.Location))
		if errors.Is(err, storage.ErrNotFound) && attempt == 0 {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		return fileFromRecord(rec), rc, nil
	}
}

// -----------------------------------------------------------------------------
// 4. 列表 / 搜索 / 统计
// -----------------------------------------------------------------------------

// Query 是列表与搜索共用的过滤条件
type Query struct {
	// FileType: MIME (含 "/")、扩展名 (如 "pdf")、或 "other"
	FileType  string
	MinSize   *int64
	MaxSize   *int64
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

func (q Query) filter() meta.Filter {
	include, exclude := mimetype.Selector(q.FileType)
	return meta.Filter{
		FileType:     include,
		ExcludeTypes: exclude,
		MinSize:      q.MinSize,
		MaxSize:      q.MaxSize,
		StartDate:    q.StartDate,
		EndDate:      q.EndDate,
		Limit:        q.Limit,
		Offset:       q.Offset,
	}
}

type Page struct {
	Files []File
	Total int64
}

func newPage(recs []meta.FileRecord, total int64) *Page {
	p := &Page{Files: make([]File, 0, len(recs)), Total: total}
	for i := range recs {
		p.Files = append(p.Files, *fileFromRecord(&recs[i]))
	}
	return p
}

// List 最新的在前
func (v *Vault) List(ctx context.Context, q Query) (*Page, error) {
	recs, total, err := v.repo.ListRecords(ctx, q.filter())
	if err != nil {
		return nil, err
	}
	return newPage(recs, total), nil
}

// Search 文件名大小写不敏感的子串匹配
func (v *Vault) Search(ctx context.Context, text string, q Query) (*Page, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidRequest)
	}
	recs, total, err := v.repo.SearchRecords(ctx, text, q.filter())
	if err != nil {
		return nil, err
	}
	return newPage(recs, total), nil
}

func (v *Vault) Stats(ctx context.Context) (*meta.Stats, error) {
	return v.repo.Stats(ctx)
}

// -----------------------------------------------------------------------------
// 5. 维护
// -----------------------------------------------------------------------------

// Reindex 为每条记录重新发布 record.created，供下游重建索引
func (v *Vault) Reindex(ctx context.Context) (int, error) {
	n := 0
	err := v.repo.EachRecord(ctx, 500, func(recs []meta.FileRecord) error {
		for i := range recs {
			f := fileFromRecord(&recs[i])
			if err := v.publisher.Publish(ctx, events.Event{
				Kind:     events.RecordCreated,
				RecordID: f.ID,
				ObjectID: f.ObjectID,
				Digest:   f.Digest.String(),
				Filename: f.Name,
				FileType: f.Type,
				Size:     f.Size,
				At:       v.now(),
			}); err != nil {
				return fmt.Errorf("reindex %s: %w", f.ID, err)
			}
			n++
		}
		return nil
	})
	return n, err
}

// Reap 回收零计数的 StoredObject，apply=false 只报告
func (v *Vault) Reap(ctx context.Context, apply bool) (*dedup.ReapReport, error) {
	return v.reaper.Reap(ctx, apply)
}

// Orphans 列出没有登记的字节；apply=true 时删除它们
func (v *Vault) Orphans(ctx context.Context, apply bool) ([]types.Location, error) {
	locs, err := v.reaper.ScanOrphans(ctx)
	if err != nil || !apply {
		return locs, err
	}
	n, err := v.reaper.DeleteOrphans(ctx, locs)
	return locs[:n], err
}

// Reaper 暴露给服务端的周期任务
func (v *Vault) Reaper() *dedup.Reaper {
	return v.reaper
}

// publish 的失败只记录日志
func (v *Vault) publish(ctx context.Context, ev events.Event) {
	if ev.At.IsZero() {
		ev.At = v.now()
	}
	if err := v.publisher.Publish(ctx, ev); err != nil {
		v.log.Warn("event publish failed", slog.String("kind", string(ev.Kind)), slog.Any("err", err))
	}
}
