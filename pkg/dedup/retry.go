package dedup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"filevault/pkg/metrics"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/juju/clock"
	"github.com/juju/retry"
)

// RetryPolicy 控制计数事务冲突时的重试
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
	MaxDelay time.Duration
	Clock    clock.Clock
}

// DefaultRetryPolicy: 5 次，25ms 起步翻倍，封顶 500ms
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts: 5,
		Delay:    25 * time.Millisecond,
		MaxDelay: 500 * time.Millisecond,
		Clock:    clock.WallClock,
	}
}

// Postgres 的可重试 SQLSTATE
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateLockNotAvailable     = "55P03"
)

// classify 把各数据库的事务冲突统一包装为 ErrRefCountRace
func classify(err error) error {
	if err == nil || errors.Is(err, ErrRefCountRace) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateSerializationFailure, sqlStateDeadlockDetected, sqlStateLockNotAvailable:
			return fmt.Errorf("%w: %w", ErrRefCountRace, err)
		}
		return err
	}
	// SQLite: SQLITE_BUSY / SQLITE_LOCKED
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "database is busy") {
		return fmt.Errorf("%w: %w", ErrRefCountRace, err)
	}
	return err
}

// run 执行 fn，遇到 ErrRefCountRace 时按策略重试，其余错误立即返回
func (p RetryPolicy) run(ctx context.Context, log *slog.Logger, m *metrics.Collector, op string, fn func() error) error {
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	delay := p.Delay
	if delay <= 0 {
		delay = time.Millisecond
	}
	clk := p.Clock
	if clk == nil {
		clk = clock.WallClock
	}

	var lastErr error
	err := retry.Call(retry.CallArgs{
		Func: func() error {
			lastErr = classify(fn())
			return lastErr
		},
		IsFatalError: func(error) bool {
			return !errors.Is(lastErr, ErrRefCountRace)
		},
		NotifyFunc: func(_ error, attempt int) {
			m.RefCountRetry()
			log.Debug("refcount transaction conflict, retrying",
				slog.String("op", op),
				slog.Int("attempt", attempt),
				slog.Any("err", lastErr),
			)
		},
		Attempts:    attempts,
		Delay:       delay,
		MaxDelay:    p.MaxDelay,
		BackoffFunc: retry.DoubleDelay,
		Clock:       clk,
		Stop:        ctx.Done(),
	})
	if err == nil {
		return nil
	}
	if retry.IsRetryStopped(err) && ctx.Err() != nil {
		return fmt.Errorf("%w (%w)", lastErr, ctx.Err())
	}
	// 重试耗尽或致命错误：返回真实的最后一个错误，便于 errors.Is 判断
	return lastErr
}
