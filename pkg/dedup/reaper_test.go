package dedup

import (
	"context"
	"strings"
	"testing"
	"time"

	"filevault/pkg/meta"
	"filevault/pkg/types"

	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zombie 模拟 "创建后 attach 失败" 留下的零计数行
func (e *testEngine) zombie(t *testing.T, content string) *meta.StoredObject {
	t.Helper()
	obj, created, err := e.registry.ResolveOrCreate(context.Background(), candidateFor(e, content))
	require.NoError(t, err)
	require.True(t, created)
	return obj
}

func TestReaper_GracePeriod(t *testing.T) {
	e := setupEngine(t)
	ctx := context.Background()
	z := e.zombie(t, "zombie")
	e.upload(t, "live.txt", "live")

	clk := testclock.NewClock(time.Now())
	r := NewReaper(e.repo, e.backend, ReaperConfig{GracePeriod: 10 * time.Minute, Clock: clk})

	// 宽限期内：不回收
	report, err := r.Reap(ctx, true)
	require.NoError(t, err)
	assert.Zero(t, report.Reaped)

	// 超过宽限期
	clk.Advance(11 * time.Minute)

	report, err = r.Reap(ctx, false)
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	require.Len(t, report.Candidates, 1)
	assert.Equal(t, z.ID, report.Candidates[0].ID)
	assert.True(t, e.exists(t, z.Location), "dry-run must not delete")

	report, err = r.Reap(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Reaped)
	assert.False(t, e.exists(t, z.Location))

	_, err = e.repo.GetObject(ctx, z.ID)
	assert.ErrorIs(t, err, meta.ErrObjectNotFound)

	// 活跃对象不受影响
	live := e.object(t, "live")
	assert.Equal(t, int64(1), live.ReferenceCount)
	assert.True(t, e.exists(t, live.Location))
}

func TestReaper_Batches(t *testing.T) {
	e := setupEngine(t)
	ctx := context.Background()
	for _, c := range []string{"a", "b", "c", "d", "e"} {
		e.zombie(t, c)
	}

	clk := testclock.NewClock(time.Now().Add(time.Hour))
	r := NewReaper(e.repo, e.backend, ReaperConfig{BatchSize: 2, Clock: clk})

	report, err := r.Reap(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 5, report.Reaped)
}

// 回收后再上传同一内容：attach 看到对象已消失，重新创建
func TestReaper_AttachAfterReap(t *testing.T) {
	e := setupEngine(t)
	ctx := context.Background()
	z := e.zombie(t, "phoenix")

	clk := testclock.NewClock(time.Now().Add(time.Hour))
	r := NewReaper(e.repo, e.backend, ReaperConfig{Clock: clk})
	_, err := r.Reap(ctx, true)
	require.NoError(t, err)

	rec := &meta.FileRecord{ID: "late", OriginalFilename: "late.txt"}
	require.ErrorIs(t, e.protocol.Attach(ctx, z.ID, rec), ErrObjectGone)

	again := e.upload(t, "phoenix.txt", "phoenix")
	obj := e.object(t, "phoenix")
	assert.NotEqual(t, z.ID, obj.ID)
	assert.Equal(t, again.ID, obj.HolderID)
	assert.Equal(t, "phoenix", e.read(t, obj.Location))
}

func TestReaper_ScanOrphans(t *testing.T) {
	e := setupEngine(t)
	ctx := context.Background()
	e.upload(t, "tracked.txt", "tracked")

	stray, _, err := e.backend.Put(ctx, "deadbeef0001", strings.NewReader("stray"))
	require.NoError(t, err)

	r := NewReaper(e.repo, e.backend, ReaperConfig{})
	orphans, err := r.ScanOrphans(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.Location{stray}, orphans)

	n, err := r.DeleteOrphans(ctx, orphans)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, e.exists(t, stray.String()))

	orphans, err = r.ScanOrphans(ctx)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestReaper_Run(t *testing.T) {
	e := setupEngine(t)
	z := e.zombie(t, "periodic")

	start := time.Now()
	clk := testclock.NewClock(start)
	r := NewReaper(e.repo, e.backend, ReaperConfig{
		Interval:    20 * time.Minute,
		GracePeriod: 10 * time.Minute,
		Clock:       clk,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	// 等 Run 进入等待后推进时钟，触发一轮回收
	require.NoError(t, clk.WaitAdvance(20*time.Minute, time.Second, 1))

	require.Eventually(t, func() bool {
		_, err := e.repo.GetObject(context.Background(), z.ID)
		return err != nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("reaper did not stop after cancel")
	}
}
