package service

import (
	"commission-central/internal/models"
	"commission-central/internal/repository"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestLocalTickerDrivesImportToSuccess(t *testing.T) {
	defer goleak.VerifyNone(t)

	ticker := NewLocalTicker(5*time.Millisecond, quietLogger())
	defer ticker.Close()
	store := repository.NewMemorySessionStore(time.Hour)
	ctrl := NewImportController(store, ticker, DefaultTickStep, quietLogger())
	ctx := context.Background()

	session, err := ctrl.Open(ctx)
	require.NoError(t, err)
	_, err = ctrl.BeginImport(ctx, session.Code, &FileHandle{Name: "commissions.xlsx"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		s, err := ctrl.Get(ctx, session.Code)
		return err == nil && s.Status == models.ImportSucceeded
	}, 2*time.Second, 5*time.Millisecond)

	got, err := ctrl.Get(ctx, session.Code)
	require.NoError(t, err)
	assert.Equal(t, 100, got.ProgressPercent)

	require.Eventually(t, func() bool { return ticker.Active() == 0 }, time.Second, 5*time.Millisecond)
}

func TestLocalTickerCancelStopsGoroutine(t *testing.T) {
	defer goleak.VerifyNone(t)

	ticker := NewLocalTicker(time.Hour, quietLogger())
	calls := 0
	tick := func(ctx context.Context, code string, generation uint64) (models.ImportSession, error) {
		calls++
		return models.ImportSession{}, nil
	}

	require.NoError(t, ticker.Schedule(context.Background(), "IMPORT-a", 1, tick))
	assert.Equal(t, 1, ticker.Active())

	ticker.Cancel("IMPORT-a")
	assert.Equal(t, 0, ticker.Active())

	// Cancelling an unknown or already cancelled code is harmless.
	ticker.Cancel("IMPORT-a")
	ticker.Cancel("IMPORT-b")

	ticker.Close()
	assert.Equal(t, 0, calls)
}

func TestLocalTickerRescheduleReplacesRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	ticker := NewLocalTicker(time.Hour, quietLogger())
	defer ticker.Close()
	noop := func(ctx context.Context, code string, generation uint64) (models.ImportSession, error) {
		return models.ImportSession{}, nil
	}

	require.NoError(t, ticker.Schedule(context.Background(), "IMPORT-a", 1, noop))
	require.NoError(t, ticker.Schedule(context.Background(), "IMPORT-a", 2, noop))

	assert.Equal(t, 1, ticker.Active())
}

func TestLocalTickerKeepsNewerGeneration(t *testing.T) {
	defer goleak.VerifyNone(t)

	ticker := NewLocalTicker(5*time.Millisecond, quietLogger())
	defer ticker.Close()

	var mu sync.Mutex
	calls := map[uint64]int{}
	tick := func(ctx context.Context, code string, generation uint64) (models.ImportSession, error) {
		mu.Lock()
		calls[generation]++
		mu.Unlock()
		return models.ImportSession{Code: code, Status: models.ImportProcessing, Generation: generation}, nil
	}

	// A slower caller for generation 1 schedules after generation 2 started.
	require.NoError(t, ticker.Schedule(context.Background(), "IMPORT-a", 2, tick))
	require.NoError(t, ticker.Schedule(context.Background(), "IMPORT-a", 1, tick))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls[2] >= 3
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Zero(t, calls[1])
	mu.Unlock()
	assert.Equal(t, 1, ticker.Active())
}

func TestLocalTickerStopsWhenSessionDisappears(t *testing.T) {
	defer goleak.VerifyNone(t)

	ticker := NewLocalTicker(5*time.Millisecond, quietLogger())
	defer ticker.Close()
	missing := func(ctx context.Context, code string, generation uint64) (models.ImportSession, error) {
		return models.ImportSession{}, repository.ErrSessionNotFound
	}

	require.NoError(t, ticker.Schedule(context.Background(), "IMPORT-gone", 1, missing))

	require.Eventually(t, func() bool { return ticker.Active() == 0 }, time.Second, 5*time.Millisecond)
}
