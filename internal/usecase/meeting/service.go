package meeting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/scrum-assistant/internal/domain/entities"
	"github.com/johnquangdev/scrum-assistant/internal/domain/repositories"
	"github.com/johnquangdev/scrum-assistant/internal/usecase/ceremony"
	ucErrors "github.com/johnquangdev/scrum-assistant/internal/usecase/errors"
	"github.com/johnquangdev/scrum-assistant/internal/usecase/summary"
)

const (
	// DefaultMaxDuration is how long a session may stay open before the sweeper abandons it
	DefaultMaxDuration = 8 * time.Hour

	maxCreateAttempts   = 3
	defaultArchiveTries = 5
)

// Service defines the interface for the meeting session use case
type Service interface {
	// Create creates a new idle session
	Create(ctx context.Context, input CreateInput) (*entities.MeetingSession, error)

	// Get retrieves a session by ID
	Get(ctx context.Context, id string) (*entities.MeetingSession, error)

	// List retrieves every session ordered by creation time
	List(ctx context.Context) ([]*entities.MeetingSession, error)

	// SetParticipants replaces the roster of an idle session
	SetParticipants(ctx context.Context, id string, participants []entities.Participant) (*entities.MeetingSession, error)

	// Start starts an idle session
	Start(ctx context.Context, id string) (*entities.MeetingSession, error)

	// Record appends an event to an active session
	Record(ctx context.Context, id string, event entities.SessionEvent) (entities.SessionEvent, error)

	// End ends an active session and stores its summary
	End(ctx context.Context, id string) (entities.StoredSummary, error)

	// Abandon ends an idle or active session and stores its summary
	Abandon(ctx context.Context, id string) (entities.StoredSummary, error)

	// GenerateSummary stores a summary for an ended session whose summary write failed
	GenerateSummary(ctx context.Context, id string) (entities.StoredSummary, error)

	// ListSummaries retrieves every stored summary
	ListSummaries(ctx context.Context) ([]entities.StoredSummary, error)

	// GetSummary retrieves the summary of a session
	GetSummary(ctx context.Context, sessionID string) (entities.StoredSummary, error)

	// Dashboard aggregates every stored summary
	Dashboard(ctx context.Context) (entities.DashboardStats, error)

	// SweepExpired abandons sessions open longer than the max duration
	SweepExpired(ctx context.Context) (int, error)

	// Now returns the service clock's current time
	Now() time.Time
}

// Archiver keeps an external copy of stored summaries
type Archiver interface {
	ArchiveSummary(ctx context.Context, summary entities.StoredSummary, text string) error
}

// CreateInput represents input for creating a session
type CreateInput struct {
	Title        string
	Type         entities.MeetingType
	Participants []entities.Participant
	Objectives   []string
}

// Ensure MeetingService implements Service interface
var _ Service = (*MeetingService)(nil)

// MeetingService implements Service
type MeetingService struct {
	sessions    repositories.SessionRepository
	summaries   *summary.Generator
	catalog     *ceremony.Catalog
	logger      *zap.Logger
	clock       clock.Clock
	newID       func() (string, error)
	maxDuration time.Duration

	archiver       Archiver
	archiveBackOff func() backoff.BackOff
	archiveCtx     context.Context
	cancelArchive  context.CancelFunc
	archiveWg      sync.WaitGroup

	sweeperMutex   sync.Mutex
	sweeperRunning bool
	sweeperStop    chan struct{}
	sweeperWg      sync.WaitGroup
}

// Option configures a MeetingService
type Option func(*MeetingService)

// WithClock replaces the wall clock
func WithClock(clk clock.Clock) Option {
	return func(s *MeetingService) { s.clock = clk }
}

// WithIDGenerator replaces the UUIDv7 session id generator
func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *MeetingService) { s.newID = gen }
}

// WithMaxDuration sets how long a session may stay idle or active
func WithMaxDuration(d time.Duration) Option {
	return func(s *MeetingService) {
		if d > 0 {
			s.maxDuration = d
		}
	}
}

// WithArchiver uploads every stored summary in the background
func WithArchiver(a Archiver) Option {
	return func(s *MeetingService) { s.archiver = a }
}

// WithArchiveBackOff sets the retry policy of archive uploads
func WithArchiveBackOff(policy func() backoff.BackOff) Option {
	return func(s *MeetingService) { s.archiveBackOff = policy }
}

// NewMeetingService creates a new meeting service
func NewMeetingService(
	sessions repositories.SessionRepository,
	summaries *summary.Generator,
	catalog *ceremony.Catalog,
	logger *zap.Logger,
	opts ...Option,
) *MeetingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &MeetingService{
		sessions:    sessions,
		summaries:   summaries,
		catalog:     catalog,
		logger:      logger,
		clock:       clock.New(),
		newID:       newUUIDv7,
		maxDuration: DefaultMaxDuration,
	}
	s.archiveBackOff = defaultArchiveBackOff
	for _, opt := range opts {
		opt(s)
	}
	s.archiveCtx, s.cancelArchive = context.WithCancel(context.Background())
	return s
}

func defaultArchiveBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 30 * time.Second
	bo.MaxElapsedTime = 5 * time.Minute
	return backoff.WithMaxRetries(bo, defaultArchiveTries)
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Now returns the current time of the service clock
func (s *MeetingService) Now() time.Time {
	return s.clock.Now()
}

// Create creates a new idle session. An empty title or objective list is
// filled in from the ceremony catalog.
func (s *MeetingService) Create(ctx context.Context, input CreateInput) (*entities.MeetingSession, error) {
	meetingType, err := entities.ParseMeetingType(string(input.Type))
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	objectives := input.Objectives
	if cer, ok := s.catalog.Get(meetingType); ok {
		if title == "" {
			title = cer.Name
		}
		if len(objectives) == 0 {
			objectives = cer.Agenda
		}
	}

	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		id, err := s.newID()
		if err != nil {
			return nil, fmt.Errorf("generate session id: %w", err)
		}

		session, err := entities.NewMeetingSession(id, title, meetingType, input.Participants, objectives, s.clock.Now())
		if err != nil {
			return nil, err
		}

		err = s.sessions.Create(ctx, session)
		if errors.Is(err, repositories.ErrSessionExists) {
			continue
		}
		if err != nil {
			return nil, err
		}

		s.logger.Info("session.created",
			zap.String("session_id", id),
			zap.String("type", string(meetingType)),
			zap.Int("participants", len(session.Participants())),
		)
		return session, nil
	}
	return nil, ucErrors.ErrSessionExists
}

// Get retrieves a session by ID
func (s *MeetingService) Get(ctx context.Context, id string) (*entities.MeetingSession, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, s.notFound(err)
	}
	return session, nil
}

// List retrieves every session
func (s *MeetingService) List(ctx context.Context) ([]*entities.MeetingSession, error) {
	return s.sessions.List(ctx)
}

// SetParticipants replaces the roster of an idle session
func (s *MeetingService) SetParticipants(ctx context.Context, id string, participants []entities.Participant) (*entities.MeetingSession, error) {
	return s.update(ctx, id, func(session *entities.MeetingSession) error {
		return session.SetParticipants(participants)
	})
}

// Start starts an idle session
func (s *MeetingService) Start(ctx context.Context, id string) (*entities.MeetingSession, error) {
	session, err := s.update(ctx, id, func(session *entities.MeetingSession) error {
		return session.Start(s.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("session.started", zap.String("session_id", id))
	return session, nil
}

// Record appends an event to an active session
func (s *MeetingService) Record(ctx context.Context, id string, event entities.SessionEvent) (entities.SessionEvent, error) {
	var stored entities.SessionEvent
	_, err := s.update(ctx, id, func(session *entities.MeetingSession) error {
		var err error
		stored, err = session.Record(s.clock.Now(), event)
		return err
	})
	if err != nil {
		return entities.SessionEvent{}, err
	}
	return stored, nil
}

// End ends an active session and stores its summary
func (s *MeetingService) End(ctx context.Context, id string) (entities.StoredSummary, error) {
	session, err := s.update(ctx, id, func(session *entities.MeetingSession) error {
		return session.End(s.clock.Now())
	})
	if err != nil {
		return entities.StoredSummary{}, err
	}

	s.logger.Info("session.ended",
		zap.String("session_id", id),
		zap.Int64("duration_seconds", session.DurationSeconds()),
	)
	return s.summarize(ctx, session)
}

// Abandon ends an idle or active session and stores its summary
func (s *MeetingService) Abandon(ctx context.Context, id string) (entities.StoredSummary, error) {
	session, err := s.update(ctx, id, func(session *entities.MeetingSession) error {
		return session.Abandon(s.clock.Now())
	})
	if err != nil {
		return entities.StoredSummary{}, err
	}

	s.logger.Info("session.abandoned", zap.String("session_id", id))
	return s.summarize(ctx, session)
}

// GenerateSummary stores a summary for an ended session. It is the retry
// path after End or Abandon reported a failed summary write; like those, it
// must not be called for a session that already has a summary.
func (s *MeetingService) GenerateSummary(ctx context.Context, id string) (entities.StoredSummary, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return entities.StoredSummary{}, err
	}
	return s.summarize(ctx, session)
}

// ListSummaries retrieves every stored summary
func (s *MeetingService) ListSummaries(ctx context.Context) ([]entities.StoredSummary, error) {
	return s.summaries.List(ctx)
}

// GetSummary retrieves the summary of a session
func (s *MeetingService) GetSummary(ctx context.Context, sessionID string) (entities.StoredSummary, error) {
	stored, err := s.summaries.FindBySession(ctx, sessionID)
	if errors.Is(err, repositories.ErrNotFound) {
		return entities.StoredSummary{}, fmt.Errorf("%w: %s", ucErrors.ErrSummaryNotFound, sessionID)
	}
	return stored, err
}

// Dashboard aggregates every stored summary into team-level statistics
func (s *MeetingService) Dashboard(ctx context.Context) (entities.DashboardStats, error) {
	summaries, err := s.summaries.List(ctx)
	if err != nil {
		return entities.DashboardStats{}, err
	}
	return summary.Dashboard(summaries), nil
}

func (s *MeetingService) update(ctx context.Context, id string, fn func(*entities.MeetingSession) error) (*entities.MeetingSession, error) {
	session, err := s.sessions.Update(ctx, id, fn)
	if err != nil {
		return nil, s.notFound(err)
	}
	return session, nil
}

func (s *MeetingService) notFound(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ucErrors.ErrSessionNotFound
	}
	return err
}

func (s *MeetingService) summarize(ctx context.Context, session *entities.MeetingSession) (entities.StoredSummary, error) {
	stored, err := s.summaries.Generate(ctx, session)
	if err != nil {
		s.logger.Error("summary.generate.failed",
			zap.String("session_id", session.ID()),
			zap.Error(err),
		)
		return entities.StoredSummary{}, err
	}
	s.archive(stored)
	return stored, nil
}

// archive uploads the summary in the background; failures are only logged
func (s *MeetingService) archive(stored entities.StoredSummary) {
	if s.archiver == nil {
		return
	}

	s.archiveWg.Add(1)
	go func() {
		defer s.archiveWg.Done()

		text := summary.Text(stored.Summary)
		attempt := 0
		op := func() error {
			attempt++
			return s.archiver.ArchiveSummary(s.archiveCtx, stored, text)
		}

		if err := backoff.Retry(op, backoff.WithContext(s.archiveBackOff(), s.archiveCtx)); err != nil {
			s.logger.Error("❌ Failed to archive summary",
				zap.String("session_id", stored.SessionID),
				zap.Int("attempts", attempt),
				zap.Error(err),
			)
			return
		}
		s.logger.Info("✅ Summary archived",
			zap.String("session_id", stored.SessionID),
			zap.Int("attempts", attempt),
		)
	}()
}

// Shutdown stops the sweeper and lets background archive uploads finish
// until ctx is done. Uploads still retrying at that point are cancelled.
func (s *MeetingService) Shutdown(ctx context.Context) error {
	_ = s.StopSweeper()

	done := make(chan struct{})
	go func() {
		s.archiveWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.cancelArchive()
		return nil
	case <-ctx.Done():
		s.cancelArchive()
		<-done
		return ctx.Err()
	}
}

// Close stops the sweeper, cancels pending archive retries and waits for
// the upload goroutines to return
func (s *MeetingService) Close() {
	_ = s.StopSweeper()
	s.cancelArchive()
	s.archiveWg.Wait()
}
