package repository

import (
	"commission-central/internal/models"
	"context"
	"errors"
)

var ErrSessionNotFound = errors.New("import session not found")

// UpdateFunc derives the next session state. It reports false when nothing
// changed, in which case the store leaves the stored session untouched.
type UpdateFunc func(current models.ImportSession) (next models.ImportSession, changed bool)

// ImportSessionStore holds import sessions for open dialogs. Update is atomic
// per session: no other Update on the same code can interleave between the
// read and the write.
type ImportSessionStore interface {
	Create(ctx context.Context, session models.ImportSession) error
	Get(ctx context.Context, code string) (models.ImportSession, error)
	Update(ctx context.Context, code string, fn UpdateFunc) (models.ImportSession, error)
	Delete(ctx context.Context, code string) error
}
