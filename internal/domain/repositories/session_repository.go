package repositories

import (
	"context"
	"errors"

	"github.com/johnquangdev/scrum-assistant/internal/domain/entities"
)

// ErrSessionExists is returned by Create when the id is already stored
var ErrSessionExists = errors.New("session already exists")

// SessionRepository defines the interface for meeting session data access
type SessionRepository interface {
	// Create stores a new session; fails if the id is already taken
	Create(ctx context.Context, session *entities.MeetingSession) error

	// Get returns a copy of the session, or ErrNotFound
	Get(ctx context.Context, id string) (*entities.MeetingSession, error)

	// Update applies fn to the current session and stores the result.
	// Updates to one session are serialized; when fn returns an error
	// nothing is stored and the error is returned unchanged.
	Update(ctx context.Context, id string, fn func(*entities.MeetingSession) error) (*entities.MeetingSession, error)

	// List returns every stored session ordered by creation time
	List(ctx context.Context) ([]*entities.MeetingSession, error)
}
