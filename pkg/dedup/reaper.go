package dedup

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"filevault/pkg/meta"
	"filevault/pkg/metrics"
	"filevault/pkg/storage"
	"filevault/pkg/types"

	"github.com/juju/clock"
)

const (
	DefaultReapInterval    = 5 * time.Minute
	DefaultReapGracePeriod = 10 * time.Minute
	DefaultReapBatchSize   = 500
)

// ReaperConfig 控制僵尸 StoredObject 的回收
type ReaperConfig struct {
	Interval    time.Duration
	GracePeriod time.Duration
	BatchSize   int
	Clock       clock.Clock
}

func (c *ReaperConfig) defaults() {
	if c.Interval <= 0 {
		c.Interval = DefaultReapInterval
	}
	if c.GracePeriod <= 0 {
		c.GracePeriod = DefaultReapGracePeriod
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultReapBatchSize
	}
	if c.Clock == nil {
		c.Clock = clock.WallClock
	}
}

// ReapReport 汇总一次回收
type ReapReport struct {
	DryRun     bool
	Candidates []meta.StoredObject
	Reaped     int
	Orphans    int // 行已删除但字节删除失败
}

// Reaper 回收计数为 0、没有记录引用、且超过宽限期的 StoredObject
// 这些行来自 "创建后 attach 失败" 的上传
type Reaper struct {
	repo    *meta.Repository
	backend storage.Backend
	cfg     ReaperConfig
	log     *slog.Logger
	metrics *metrics.Collector
}

func NewReaper(repo *meta.Repository, backend storage.Backend, cfg ReaperConfig, opts ...Option) *Reaper {
	cfg.defaults()
	o := buildOptions(opts)
	return &Reaper{
		repo:    repo,
		backend: backend,
		cfg:     cfg,
		log:     o.log,
		metrics: o.metrics,
	}
}

// Reap 执行一轮回收；apply=false 时只列出候选 (dry-run)
func (r *Reaper) Reap(ctx context.Context, apply bool) (*ReapReport, error) {
	before := r.cfg.Clock.Now().Add(-r.cfg.GracePeriod)
	report := &ReapReport{DryRun: !apply}

	if !apply {
		cands, err := r.repo.ReapCandidates(ctx, before, 0)
		if err != nil {
			return nil, err
		}
		report.Candidates = cands
		return report, nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		cands, err := r.repo.ReapCandidates(ctx, before, r.cfg.BatchSize)
		if err != nil {
			return report, err
		}
		report.Candidates = append(report.Candidates, cands...)

		progressed := 0
		for _, obj := range cands {
			// 条件删除：并发 attach 先拿到行锁时这里影响 0 行
			deleted, err := r.repo.DeleteZombie(ctx, obj.ID)
			if err != nil {
				return report, err
			}
			if !deleted {
				continue
			}
			progressed++
			report.Reaped++
			loc := types.Location(obj.Location)
			if err := r.backend.Delete(ctx, loc); err != nil && !errors.Is(err, storage.ErrNotFound) {
				report.Orphans++
				reportOrphan(r.log, r.metrics, &OrphanBytesWarning{Location: loc, Op: "reap", Err: err})
			}
		}
		r.metrics.Reaped(progressed)

		if len(cands) < r.cfg.BatchSize || progressed == 0 {
			break
		}
	}
	if report.Reaped > 0 {
		r.log.Info("reaped zero-count stored objects", slog.Int("count", report.Reaped))
	}
	return report, nil
}

// ScanOrphans 列出存储中存在、但没有任何 StoredObject 指向的位置
// 正在进行中的上传也会出现在结果里，删除前应确保没有写入
func (r *Reaper) ScanOrphans(ctx context.Context) ([]types.Location, error) {
	known, err := r.repo.Locations(ctx)
	if err != nil {
		return nil, err
	}
	var orphans []types.Location
	err = r.backend.List(ctx, func(loc types.Location) error {
		if _, ok := known[loc.String()]; !ok {
			orphans = append(orphans, loc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(orphans) == 0 {
		return nil, nil
	}

	// 扫描期间新登记的位置不算孤儿
	known, err = r.repo.Locations(ctx)
	if err != nil {
		return nil, err
	}
	out := orphans[:0]
	for _, loc := range orphans {
		if _, ok := known[loc.String()]; !ok {
			out = append(out, loc)
		}
	}
	return out, nil
}

// DeleteOrphans 删除 ScanOrphans 找到的位置，返回成功删除的数量
func (r *Reaper) DeleteOrphans(ctx context.Context, locs []types.Location) (int, error) {
	n := 0
	for _, loc := range locs {
		if err := r.backend.Delete(ctx, loc); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return n, err
		}
		n++
	}
	return n, nil
}

// Run 按 Interval 周期性回收，直到 ctx 取消
func (r *Reaper) Run(ctx context.Context) error {
	r.log.Info("reaper started",
		slog.Duration("interval", r.cfg.Interval),
		slog.Duration("grace_period", r.cfg.GracePeriod),
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.cfg.Clock.After(r.cfg.Interval):
			if _, err := r.Reap(ctx, true); err != nil && ctx.Err() == nil {
				r.log.Error("reap failed", slog.Any("err", err))
			}
		}
	}
}
