package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/scrum-assistant/internal/domain/entities"
	"github.com/johnquangdev/scrum-assistant/internal/domain/repositories"
	"github.com/johnquangdev/scrum-assistant/internal/infrastructure/cache"
)

const sessionKeyPrefix = "session:"

// SnapshotStore is the key-value contract shared by the memory and redis caches
type SnapshotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Update(ctx context.Context, key string, ttl time.Duration, fn func([]byte) ([]byte, error)) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// sessionRepository stores sessions as JSON snapshots in a SnapshotStore
type sessionRepository struct {
	store  SnapshotStore
	ttl    time.Duration
	logger *zap.Logger
}

// NewSessionRepository creates a new session repository. Snapshots expire
// ttl after their last write; zero keeps them forever.
func NewSessionRepository(store SnapshotStore, ttl time.Duration, logger *zap.Logger) repositories.SessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &sessionRepository{store: store, ttl: ttl, logger: logger}
}

// Create stores a new session
func (r *sessionRepository) Create(ctx context.Context, session *entities.MeetingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ok, err := r.store.SetNX(ctx, sessionKeyPrefix+session.ID(), data, r.ttl)
	if err != nil {
		return err
	}
	if !ok {
		return repositories.ErrSessionExists
	}
	return nil
}

// Get retrieves a session by its ID
func (r *sessionRepository) Get(ctx context.Context, id string) (*entities.MeetingSession, error) {
	data, err := r.store.Get(ctx, sessionKeyPrefix+id)
	if errors.Is(err, cache.ErrKeyNotFound) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeSession(data)
}

// Update applies fn to the stored session
func (r *sessionRepository) Update(ctx context.Context, id string, fn func(*entities.MeetingSession) error) (*entities.MeetingSession, error) {
	var updated *entities.MeetingSession
	err := r.store.Update(ctx, sessionKeyPrefix+id, r.ttl, func(data []byte) ([]byte, error) {
		session, err := decodeSession(data)
		if err != nil {
			return nil, err
		}
		if err := fn(session); err != nil {
			return nil, err
		}
		updated = session
		return json.Marshal(session)
	})
	if errors.Is(err, cache.ErrKeyNotFound) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// List retrieves all sessions ordered by creation time. Snapshots that do
// not decode are skipped with a warning.
func (r *sessionRepository) List(ctx context.Context) ([]*entities.MeetingSession, error) {
	keys, err := r.store.Keys(ctx, sessionKeyPrefix)
	if err != nil {
		return nil, err
	}

	sessions := make([]*entities.MeetingSession, 0, len(keys))
	for _, key := range keys {
		data, err := r.store.Get(ctx, key)
		if errors.Is(err, cache.ErrKeyNotFound) {
			// expired between Keys and Get
			continue
		}
		if err != nil {
			return nil, err
		}
		session, err := decodeSession(data)
		if err != nil {
			r.logger.Warn("session.decode.failed", zap.String("key", key), zap.Error(err))
			continue
		}
		sessions = append(sessions, session)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt().Before(sessions[j].CreatedAt())
	})
	return sessions, nil
}

func decodeSession(data []byte) (*entities.MeetingSession, error) {
	var session entities.MeetingSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}
