package summary

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/scrum-assistant/internal/domain/entities"
	"github.com/johnquangdev/scrum-assistant/internal/domain/repositories"
	"github.com/johnquangdev/scrum-assistant/internal/usecase/metrics"
)

// Generator turns an ended session into a persisted Summary. It is the only
// writer of the summaries collection and does not deduplicate: callers must
// invoke Generate once per session.
type Generator struct {
	store   repositories.DocumentStore
	metrics *metrics.Aggregator
	logger  *zap.Logger
}

// NewGenerator creates a new summary generator
func NewGenerator(store repositories.DocumentStore, aggregator *metrics.Aggregator, logger *zap.Logger) *Generator {
	if aggregator == nil {
		aggregator = metrics.NewAggregator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{store: store, metrics: aggregator, logger: logger}
}

// Build derives the summary without storing it
func (g *Generator) Build(session *entities.MeetingSession) (entities.Summary, error) {
	if !session.IsEnded() {
		return entities.Summary{}, fmt.Errorf("%w: cannot summarize a session that is %s", entities.ErrInvalidState, session.Status())
	}

	snapshot, err := g.metrics.Compute(session)
	if err != nil {
		return entities.Summary{}, err
	}

	objectives := session.Objectives()
	states := session.ObjectiveStates()
	results := make([]entities.ObjectiveResult, len(objectives))
	completed := 0
	for i, text := range objectives {
		results[i] = entities.ObjectiveResult{Text: text, Completed: states[i]}
		if states[i] {
			completed++
		}
	}

	events := session.Events()
	notes := make([]string, 0, len(events))
	actions := make([]entities.ActionItem, 0)
	for _, e := range events {
		switch e.Kind {
		case entities.EventNoteEdited:
			notes = append(notes, e.Text)
		case entities.EventActionItemAdded:
			actions = append(actions, *e.ActionItem)
		}
	}

	return entities.Summary{
		SessionID:           session.ID(),
		Title:               session.Title(),
		Type:                session.Type(),
		Participants:        session.Participants(),
		StartedAt:           session.StartedAt(),
		EndedAt:             session.EndedAt(),
		DurationSeconds:     session.DurationSeconds(),
		Abandoned:           session.Abandoned(),
		Objectives:          results,
		ObjectivesCompleted: completed,
		ObjectivesTotal:     len(objectives),
		KeyDiscussions:      KeyDiscussions(notes),
		ActionItems:         actions,
		Metrics:             snapshot,
	}, nil
}

// Generate builds the summary and appends it to the summaries collection
func (g *Generator) Generate(ctx context.Context, session *entities.MeetingSession) (entities.StoredSummary, error) {
	summary, err := g.Build(session)
	if err != nil {
		return entities.StoredSummary{}, err
	}

	doc, err := g.store.Append(ctx, repositories.CollectionSummaries, summary)
	if err != nil {
		return entities.StoredSummary{}, err
	}

	g.logger.Info("summary.generated",
		zap.String("session_id", summary.SessionID),
		zap.String("summary_id", doc.ID),
		zap.Int("objectives_completed", summary.ObjectivesCompleted),
		zap.Int("objectives_total", summary.ObjectivesTotal),
	)
	return entities.StoredSummary{ID: doc.ID, Summary: summary}, nil
}

// List returns every stored summary in creation order. Documents that do
// not decode as a summary are skipped.
func (g *Generator) List(ctx context.Context) ([]entities.StoredSummary, error) {
	docs, err := g.store.List(ctx, repositories.CollectionSummaries)
	if err != nil {
		return nil, err
	}

	out := make([]entities.StoredSummary, 0, len(docs))
	for _, doc := range docs {
		var s entities.StoredSummary
		if err := doc.Decode(&s); err != nil {
			g.logger.Warn("summary.decode.failed", zap.String("id", doc.ID), zap.Error(err))
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// FindBySession returns the latest summary stored for sessionID
func (g *Generator) FindBySession(ctx context.Context, sessionID string) (entities.StoredSummary, error) {
	all, err := g.List(ctx)
	if err != nil {
		return entities.StoredSummary{}, err
	}
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].SessionID == sessionID {
			return all[i], nil
		}
	}
	return entities.StoredSummary{}, repositories.ErrNotFound
}

// KeyDiscussions extracts the material lines of the note texts: each line is
// trimmed and stripped of a leading bullet, blank lines are dropped, repeats
// are removed case-insensitively, and a line that only starts a longer line
// (a note captured mid-typing) is dropped in favour of the longer one.
func KeyDiscussions(notes []string) []string {
	var lines []string
	seen := make(map[string]struct{})
	for _, note := range notes {
		for _, line := range strings.Split(note, "\n") {
			line = cleanLine(line)
			if line == "" {
				continue
			}
			key := strings.ToLower(line)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			lines = append(lines, line)
		}
	}

	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if !isPrefixOfOther(lines, i) {
			out = append(out, line)
		}
	}
	return out
}

func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "-*•")
	return strings.TrimSpace(line)
}

func isPrefixOfOther(lines []string, i int) bool {
	key := strings.ToLower(lines[i])
	for j, other := range lines {
		if j != i && len(other) > len(lines[i]) && strings.HasPrefix(strings.ToLower(other), key) {
			return true
		}
	}
	return false
}
