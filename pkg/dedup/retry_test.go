package dedup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/juju/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		race bool
	}{
		{"Nil", nil, false},
		{"SerializationFailure", &pgconn.PgError{Code: "40001"}, true},
		{"Deadlock", fmt.Errorf("tx: %w", &pgconn.PgError{Code: "40P01"}), true},
		{"LockNotAvailable", &pgconn.PgError{Code: "55P03"}, true},
		{"UniqueViolation", &pgconn.PgError{Code: "23505"}, false},
		{"SQLiteBusy", errors.New("database is locked"), true},
		{"SQLiteTableLocked", errors.New("database table is locked: stored_objects"), true},
		{"Other", errors.New("boom"), false},
		{"NotFound", ErrRecordNotFound, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			assert.Equal(t, tt.race, errors.Is(got, ErrRefCountRace))
			if tt.err != nil {
				assert.ErrorIs(t, got, tt.err, "original error must stay in the chain")
			}
		})
	}
}

func TestRetryPolicy_Run(t *testing.T) {
	ctx := context.Background()
	log := slog.Default()
	locked := errors.New("database is locked")

	t.Run("RecoversAfterConflicts", func(t *testing.T) {
		calls := 0
		err := fastRetry().run(ctx, log, nil, "test", func() error {
			calls++
			if calls < 3 {
				return locked
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("GivesUpAsTransient", func(t *testing.T) {
		calls := 0
		err := fastRetry().run(ctx, log, nil, "test", func() error {
			calls++
			return locked
		})
		require.ErrorIs(t, err, ErrRefCountRace)
		assert.Equal(t, 5, calls)
	})

	t.Run("FatalErrorNotRetried", func(t *testing.T) {
		calls := 0
		err := fastRetry().run(ctx, log, nil, "test", func() error {
			calls++
			return ErrObjectGone
		})
		require.ErrorIs(t, err, ErrObjectGone)
		assert.Equal(t, 1, calls)
	})

	t.Run("StopsOnCancel", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		slow := RetryPolicy{Attempts: 5, Delay: time.Hour, Clock: clock.WallClock}

		calls := 0
		err := slow.run(cctx, log, nil, "test", func() error {
			calls++
			return locked
		})
		require.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, ErrRefCountRace)
		assert.Equal(t, 1, calls)
	})
}
