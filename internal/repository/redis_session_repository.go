package repository

import (
	"commission-central/internal/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix  = "import:session:"
	maxUpdateAttempts = 10
)

// RedisSessionStore shares sessions between the web process and the asynq
// worker. Updates run inside WATCH/MULTI so a concurrent reset and tick can
// never both apply to the same stored state.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		ttl:    ttl,
		now:    time.Now,
	}
}

func sessionKey(code string) string {
	return sessionKeyPrefix + code
}

func (s *RedisSessionStore) Create(ctx context.Context, session models.ImportSession) error {
	session.UpdatedAt = s.now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode import session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.Code), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store import session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, code string) (models.ImportSession, error) {
	return s.read(ctx, s.client, code)
}

func (s *RedisSessionStore) Update(ctx context.Context, code string, fn UpdateFunc) (models.ImportSession, error) {
	key := sessionKey(code)
	var result models.ImportSession

	txf := func(tx *redis.Tx) error {
		current, err := s.read(ctx, tx, code)
		if err != nil {
			return err
		}

		next, changed := fn(current)
		if !changed {
			result = current
			return nil
		}
		next.UpdatedAt = s.now()

		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to encode import session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		result = next
		return nil
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return models.ImportSession{}, err
	}

	return models.ImportSession{}, fmt.Errorf("import session %s: too much contention after %d attempts", code, maxUpdateAttempts)
}

func (s *RedisSessionStore) Delete(ctx context.Context, code string) error {
	if err := s.client.Del(ctx, sessionKey(code)).Err(); err != nil {
		return fmt.Errorf("failed to delete import session: %w", err)
	}
	return nil
}

// stringGetter is satisfied by both *redis.Client and *redis.Tx.
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisSessionStore) read(ctx context.Context, cmd stringGetter, code string) (models.ImportSession, error) {
	raw, err := cmd.Get(ctx, sessionKey(code)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.ImportSession{}, ErrSessionNotFound
	}
	if err != nil {
		return models.ImportSession{}, fmt.Errorf("failed to read import session: %w", err)
	}

	var session models.ImportSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return models.ImportSession{}, fmt.Errorf("failed to decode import session: %w", err)
	}
	return session, nil
}
