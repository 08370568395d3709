package meeting

import (
	"context"
	"errors"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/johnquangdev/scrum-assistant/internal/domain/entities"
	ucErrors "github.com/johnquangdev/scrum-assistant/internal/usecase/errors"
)

// SweepExpired abandons every session that has been active for longer than
// the max duration since it started, or idle that long since it was created.
// It returns how many sessions were abandoned.
func (s *MeetingService) SweepExpired(ctx context.Context) (int, error) {
	sessions, err := s.sessions.List(ctx)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	abandoned := 0
	for _, session := range sessions {
		if !s.expired(session, now) {
			continue
		}

		_, err := s.Abandon(ctx, session.ID())
		var transition *entities.TransitionError
		switch {
		case err == nil:
			abandoned++
		case errors.As(err, &transition), errors.Is(err, ucErrors.ErrSessionNotFound):
			// ended or expired since List
		default:
			s.logger.Error("❌ Failed to abandon expired session",
				zap.String("session_id", session.ID()),
				zap.Error(err),
			)
		}
	}
	return abandoned, nil
}

func (s *MeetingService) expired(session *entities.MeetingSession, now time.Time) bool {
	switch session.Status() {
	case entities.SessionStatusActive:
		return !now.Before(session.StartedAt().Add(s.maxDuration))
	case entities.SessionStatusIdle:
		return !now.Before(session.CreatedAt().Add(s.maxDuration))
	}
	return false
}

// StartSweeper runs SweepExpired every interval until StopSweeper is called
func (s *MeetingService) StartSweeper(ctx context.Context, interval time.Duration) error {
	s.sweeperMutex.Lock()
	defer s.sweeperMutex.Unlock()

	if s.sweeperRunning {
		return ucErrors.ErrSweeperRunning
	}

	s.sweeperRunning = true
	s.sweeperStop = make(chan struct{})
	ticker := s.clock.Ticker(interval)

	s.logger.Info("🚀 Starting session sweeper",
		zap.Duration("interval", interval),
		zap.Duration("max_duration", s.maxDuration),
	)

	s.sweeperWg.Add(1)
	go s.sweepWorker(ctx, ticker, s.sweeperStop)
	return nil
}

// StopSweeper gracefully stops the sweeper goroutine
func (s *MeetingService) StopSweeper() error {
	s.sweeperMutex.Lock()
	defer s.sweeperMutex.Unlock()

	if !s.sweeperRunning {
		return ucErrors.ErrSweeperNotRunning
	}

	s.logger.Info("🛑 Stopping session sweeper...")
	close(s.sweeperStop)
	s.sweeperWg.Wait()
	s.sweeperRunning = false

	s.logger.Info("✅ Session sweeper stopped")
	return nil
}

func (s *MeetingService) sweepWorker(ctx context.Context, ticker *clock.Ticker, stop <-chan struct{}) {
	defer s.sweeperWg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.SweepExpired(ctx)
			if err != nil {
				s.logger.Error("❌ Failed to sweep sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				s.logger.Info("🧹 Abandoned expired sessions", zap.Int("count", n))
			}
		}
	}
}
