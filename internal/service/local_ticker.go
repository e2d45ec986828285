package service

import (
	"commission-central/internal/repository"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type tickerRun struct {
	generation uint64
	cancel     context.CancelFunc
}

// LocalTicker runs one goroutine per processing session inside the web process.
type LocalTicker struct {
	interval time.Duration
	logger   *logrus.Logger

	mu      sync.Mutex
	running map[string]*tickerRun
	wg      sync.WaitGroup
}

func NewLocalTicker(interval time.Duration, logger *logrus.Logger) *LocalTicker {
	return &LocalTicker{
		interval: interval,
		logger:   logger,
		running:  make(map[string]*tickerRun),
	}
}

// Schedule replaces any run already active for code, unless that run belongs
// to a newer generation.
func (t *LocalTicker) Schedule(ctx context.Context, code string, generation uint64, tick TickFunc) error {
	t.mu.Lock()
	prev, ok := t.running[code]
	if ok && prev.generation > generation {
		t.mu.Unlock()
		return nil
	}
	if ok {
		prev.cancel()
	}

	runCtx, cancel := context.WithCancel(context.Background())
	run := &tickerRun{generation: generation, cancel: cancel}
	t.running[code] = run
	t.wg.Add(1)
	t.mu.Unlock()

	go t.loop(runCtx, run, code, generation, tick)
	return nil
}

func (t *LocalTicker) Cancel(code string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if run, ok := t.running[code]; ok {
		run.cancel()
		delete(t.running, code)
	}
}

// Active reports how many sessions currently have a ticking goroutine.
func (t *LocalTicker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.running)
}

// Close cancels every run and waits for the goroutines to exit.
func (t *LocalTicker) Close() {
	t.mu.Lock()
	for code, run := range t.running {
		run.cancel()
		delete(t.running, code)
	}
	t.mu.Unlock()

	t.wg.Wait()
}

func (t *LocalTicker) loop(ctx context.Context, run *tickerRun, code string, generation uint64, tick TickFunc) {
	defer t.wg.Done()
	defer t.release(code, run)

	_ = RunTicks(ctx, t.interval, code, generation, tick, t.logger)
}

// RunTicks calls tick once per interval until the session stops processing
// generation or ctx is done. It returns ctx.Err() when cancelled and nil when
// the run ended on its own. Failed ticks are logged and retried on the next
// period.
func RunTicks(ctx context.Context, interval time.Duration, code string, generation uint64, tick TickFunc, logger *logrus.Logger) error {
	timer := time.NewTicker(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		session, err := tick(ctx, code, generation)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, repository.ErrSessionNotFound) {
				return nil
			}
			logger.WithError(err).WithField("session_code", code).Warn("Import tick failed")
			continue
		}
		if !session.IsProcessing() || session.Generation != generation {
			return nil
		}
	}
}

func (t *LocalTicker) release(code string, run *tickerRun) {
	run.cancel()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running[code] == run {
		delete(t.running, code)
	}
}
