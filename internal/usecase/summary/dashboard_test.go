package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johnquangdev/scrum-assistant/internal/domain/entities"
)

func stored(id string, t entities.MeetingType, duration int64, abandoned bool, items ...entities.ActionItem) entities.StoredSummary {
	return entities.StoredSummary{
		ID: "doc-" + id,
		Summary: entities.Summary{
			SessionID:           id,
			Title:               string(t) + " " + id,
			Type:                t,
			DurationSeconds:     duration,
			Abandoned:           abandoned,
			ObjectivesCompleted: 1,
			ObjectivesTotal:     2,
			ActionItems:         items,
			Metrics: entities.MetricsSnapshot{
				EngagementScore:   int(duration % 100),
				ProductivityScore: 50,
			},
		},
	}
}

func TestDashboard(t *testing.T) {
	stats := Dashboard([]entities.StoredSummary{
		stored("s1", entities.MeetingTypeStandup, 900, false,
			entities.ActionItem{Task: "Undated"},
			entities.ActionItem{Task: "Late", DueDate: "2026-03-20"},
		),
		stored("s2", entities.MeetingTypeStandup, 600, true),
		stored("s3", entities.MeetingTypePlanning, 3601, false,
			entities.ActionItem{Task: "Soon", Assignee: "Bob", DueDate: "2026-03-05"},
		),
	})

	assert.Equal(t, 3, stats.TotalMeetings)
	assert.Equal(t, 2, stats.CompletedMeetings)
	assert.Equal(t, 1, stats.AbandonedMeetings)
	// (900 + 600 + 3601) / 3 = 1700.33
	assert.Equal(t, int64(1700), stats.AvgDurationSeconds)
	assert.Equal(t, "00:28:20", stats.AvgDuration)
	// (0 + 0 + 1) / 3
	assert.Equal(t, 0, stats.AvgEngagementScore)
	assert.Equal(t, 50, stats.AvgProductivityScore)
	assert.Equal(t, 3, stats.ObjectivesCompleted)
	assert.Equal(t, 6, stats.ObjectivesTotal)

	assert.Equal(t, []entities.MeetingTypeShare{
		{Type: entities.MeetingTypeStandup, Count: 2, Percentage: 67},
		{Type: entities.MeetingTypePlanning, Count: 1, Percentage: 33},
		{Type: entities.MeetingTypeReview},
		{Type: entities.MeetingTypeRetrospective},
	}, stats.MeetingTypes)

	assert.Equal(t, 3, stats.OpenActionItems)
	tasks := make([]string, len(stats.ActionItems))
	for i, item := range stats.ActionItems {
		tasks[i] = item.Task
	}
	assert.Equal(t, []string{"Soon", "Late", "Undated"}, tasks)
	assert.Equal(t, "s3", stats.ActionItems[0].SessionID)
	assert.Equal(t, "planning s3", stats.ActionItems[0].MeetingTitle)
	assert.Equal(t, "Bob", stats.ActionItems[0].Assignee)
}

func TestDashboard_Empty(t *testing.T) {
	stats := Dashboard(nil)

	assert.Zero(t, stats.TotalMeetings)
	assert.Zero(t, stats.AvgDurationSeconds)
	assert.Equal(t, "00:00:00", stats.AvgDuration)
	assert.Len(t, stats.MeetingTypes, 4)
	for _, share := range stats.MeetingTypes {
		assert.Zero(t, share.Count)
		assert.Zero(t, share.Percentage)
	}
	assert.Empty(t, stats.ActionItems)
	assert.NotNil(t, stats.ActionItems)
}
