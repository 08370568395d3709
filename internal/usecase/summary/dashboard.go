package summary

import (
	"sort"

	"github.com/johnquangdev/scrum-assistant/internal/domain/entities"
	"github.com/johnquangdev/scrum-assistant/internal/usecase/metrics"
)

// Dashboard aggregates stored summaries. Averages round half up; action
// items are ordered by due date with undated items last, ties keeping
// storage order. Abandoned meetings count towards every figure except
// CompletedMeetings.
func Dashboard(summaries []entities.StoredSummary) entities.DashboardStats {
	stats := entities.DashboardStats{
		TotalMeetings: len(summaries),
		MeetingTypes:  make([]entities.MeetingTypeShare, len(entities.MeetingTypes)),
		ActionItems:   make([]entities.OpenActionItem, 0),
	}

	typeIndex := make(map[entities.MeetingType]int, len(entities.MeetingTypes))
	for i, t := range entities.MeetingTypes {
		typeIndex[t] = i
		stats.MeetingTypes[i].Type = t
	}

	var duration, engagement, productivity int64
	for _, s := range summaries {
		if s.Abandoned {
			stats.AbandonedMeetings++
		} else {
			stats.CompletedMeetings++
		}
		duration += s.DurationSeconds
		engagement += int64(s.Metrics.EngagementScore)
		productivity += int64(s.Metrics.ProductivityScore)
		stats.ObjectivesCompleted += s.ObjectivesCompleted
		stats.ObjectivesTotal += s.ObjectivesTotal

		if i, ok := typeIndex[s.Type]; ok {
			stats.MeetingTypes[i].Count++
		}
		for _, item := range s.ActionItems {
			stats.ActionItems = append(stats.ActionItems, entities.OpenActionItem{
				ActionItem:   item,
				SessionID:    s.SessionID,
				MeetingTitle: s.Title,
			})
		}
	}

	n := int64(len(summaries))
	stats.AvgDurationSeconds = average(duration, n)
	stats.AvgDuration = FormatDuration(stats.AvgDurationSeconds)
	stats.AvgEngagementScore = int(average(engagement, n))
	stats.AvgProductivityScore = int(average(productivity, n))

	counts := make([]int64, len(stats.MeetingTypes))
	for i, share := range stats.MeetingTypes {
		counts[i] = int64(share.Count)
	}
	for i, p := range metrics.Percentages(counts) {
		stats.MeetingTypes[i].Percentage = p
	}

	sort.SliceStable(stats.ActionItems, func(i, j int) bool {
		a, b := stats.ActionItems[i].DueDate, stats.ActionItems[j].DueDate
		if a == "" || b == "" {
			return a != "" && b == ""
		}
		return a < b
	})
	stats.OpenActionItems = len(stats.ActionItems)
	return stats
}

func average(total, n int64) int64 {
	if n == 0 {
		return 0
	}
	return (2*total + n) / (2 * n)
}
