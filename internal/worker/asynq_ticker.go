package worker

import (
	"commission-central/internal/service"
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// taskEnqueuer is satisfied by *asynq.Client.
type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// maxTicksPerRun bounds a run at the smallest step of 1 percent.
const maxTicksPerRun = 100

// AsynqTicker hands each processing run to the worker as one asynq task. The
// worker ticks the session on its own timer until it leaves Processing, so
// the period does not depend on how often asynq polls its queues.
type AsynqTicker struct {
	client   taskEnqueuer
	interval time.Duration
	queue    string
	logger   *logrus.Logger
}

func NewAsynqTicker(client taskEnqueuer, interval time.Duration, logger *logrus.Logger) *AsynqTicker {
	return &AsynqTicker{
		client:   client,
		interval: interval,
		queue:    "critical",
		logger:   logger,
	}
}

// Interval is the period between two ticks of a run.
func (t *AsynqTicker) Interval() time.Duration {
	return t.interval
}

// Schedule enqueues the run. The tick func is unused because ticks run in the
// worker process against the shared session store.
func (t *AsynqTicker) Schedule(ctx context.Context, code string, generation uint64, _ service.TickFunc) error {
	task, err := NewImportTickTask(code, generation)
	if err != nil {
		return err
	}

	_, err = t.client.EnqueueContext(ctx, task,
		asynq.Queue(t.queue),
		asynq.MaxRetry(3),
		asynq.Timeout(t.runTimeout()),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue import ticks: %w", err)
	}
	return nil
}

// Cancel is a no-op. A run for a reset session sees it leave Processing on
// its next tick and ends.
func (t *AsynqTicker) Cancel(code string) {
	t.logger.WithField("session_code", code).Debug("Pending import ticks will be discarded")
}

func (t *AsynqTicker) runTimeout() time.Duration {
	return t.interval*(maxTicksPerRun+1) + 10*time.Second
}
