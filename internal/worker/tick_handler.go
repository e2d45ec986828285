package worker

import (
	"commission-central/internal/models"
	"commission-central/internal/service"
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

type sessionTicker interface {
	Tick(ctx context.Context, code string, generation uint64) (models.ImportSession, error)
}

type ImportTickHandler struct {
	controller sessionTicker
	interval   time.Duration
	logger     *logrus.Logger
}

func NewImportTickHandler(controller sessionTicker, ticker *AsynqTicker, logger *logrus.Logger) *ImportTickHandler {
	return &ImportTickHandler{
		controller: controller,
		interval:   ticker.Interval(),
		logger:     logger,
	}
}

// Handle ticks one processing run until the session succeeds, is reset or is
// closed. A retried task resumes from the stored progress.
func (h *ImportTickHandler) Handle(ctx context.Context, task *asynq.Task) error {
	payload, err := parseImportTickPayload(task)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	log := h.logger.WithFields(logrus.Fields{
		"session_code": payload.SessionCode,
		"generation":   payload.Generation,
	})
	log.Debug("Import ticks started")

	if err := service.RunTicks(ctx, h.interval, payload.SessionCode, payload.Generation, h.controller.Tick, h.logger); err != nil {
		return fmt.Errorf("import ticks interrupted: %w", err)
	}

	log.Debug("Import ticks finished")
	return nil
}
