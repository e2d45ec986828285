package service

import (
	"commission-central/internal/models"
	"commission-central/internal/repository"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TickFunc advances one session by one tick. Tickers call it on every period.
type TickFunc func(ctx context.Context, code string, generation uint64) (models.ImportSession, error)

// Ticker emits recurring tick events for a Processing session until it is
// cancelled or the session leaves Processing.
type Ticker interface {
	Schedule(ctx context.Context, code string, generation uint64, tick TickFunc) error
	Cancel(code string)
}

// ImportController drives import sessions through ImportReducer and persists
// every transition in the session store.
type ImportController struct {
	store   repository.ImportSessionStore
	ticker  Ticker
	reducer ImportReducer
	logger  *logrus.Logger
	newCode func() string
}

func NewImportController(store repository.ImportSessionStore, ticker Ticker, step int, logger *logrus.Logger) *ImportController {
	return &ImportController{
		store:   store,
		ticker:  ticker,
		reducer: NewImportReducer(step),
		logger:  logger,
		newCode: func() string {
			return fmt.Sprintf("IMPORT-%s", uuid.New().String()[:8])
		},
	}
}

// Open creates the idle session backing a newly opened import dialog.
func (c *ImportController) Open(ctx context.Context) (models.ImportSession, error) {
	session := models.NewImportSession(c.newCode())
	if err := c.store.Create(ctx, session); err != nil {
		return models.ImportSession{}, fmt.Errorf("failed to open import session: %w", err)
	}
	c.logger.WithField("session_code", session.Code).Info("Import session opened")
	return c.store.Get(ctx, session.Code)
}

func (c *ImportController) Get(ctx context.Context, code string) (models.ImportSession, error) {
	return c.store.Get(ctx, code)
}

// BeginImport starts processing when a file was selected. A nil file leaves
// the session unchanged.
func (c *ImportController) BeginImport(ctx context.Context, code string, file *FileHandle) (models.ImportSession, error) {
	started := false
	session, err := c.store.Update(ctx, code, func(cur models.ImportSession) (models.ImportSession, bool) {
		next, changed := c.reducer.Reduce(cur, FileSelectedEvent(file))
		started = changed && next.IsProcessing()
		return next, changed
	})
	if err != nil {
		return models.ImportSession{}, err
	}
	if !started {
		return session, nil
	}

	if err := c.ticker.Schedule(ctx, code, session.Generation, c.Tick); err != nil {
		c.logger.WithError(err).WithField("session_code", code).Error("Failed to schedule import ticks")
		if _, resetErr := c.Reset(ctx, code); resetErr != nil {
			c.logger.WithError(resetErr).WithField("session_code", code).Error("Failed to roll back import session")
		}
		return models.ImportSession{}, fmt.Errorf("failed to schedule import progress: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"session_code": code,
		"file_name":    session.FileName,
		"generation":   session.Generation,
	}).Info("Import processing started")

	return session, nil
}

// Tick advances progress for the given generation. Ticks for a session that
// is no longer processing, or for an older generation, change nothing.
func (c *ImportController) Tick(ctx context.Context, code string, generation uint64) (models.ImportSession, error) {
	completed := false
	session, err := c.store.Update(ctx, code, func(cur models.ImportSession) (models.ImportSession, bool) {
		next, changed := c.reducer.Reduce(cur, TickEvent(generation))
		completed = changed && next.Status == models.ImportSucceeded
		return next, changed
	})
	if err != nil {
		return models.ImportSession{}, err
	}

	if completed {
		c.logger.WithFields(logrus.Fields{
			"session_code":  code,
			"total_records": session.Result.TotalRecords,
		}).Info("Import completed")
	}
	return session, nil
}

// Reset cancels pending ticks and returns the session to idle. It is safe in
// any state.
func (c *ImportController) Reset(ctx context.Context, code string) (models.ImportSession, error) {
	c.ticker.Cancel(code)

	session, err := c.store.Update(ctx, code, func(cur models.ImportSession) (models.ImportSession, bool) {
		return c.reducer.Reduce(cur, ResetEvent())
	})
	if err != nil {
		return models.ImportSession{}, err
	}

	c.logger.WithField("session_code", code).Debug("Import session reset")
	return session, nil
}

// Close resets the session and discards it.
func (c *ImportController) Close(ctx context.Context, code string) error {
	if _, err := c.Reset(ctx, code); err != nil {
		return err
	}
	if err := c.store.Delete(ctx, code); err != nil {
		return err
	}
	c.logger.WithField("session_code", code).Info("Import session closed")
	return nil
}
