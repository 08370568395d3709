package summary

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/scrum-assistant/internal/domain/entities"
)

// FormatDuration renders seconds as HH:MM:SS
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}

// ParticipantNames lists the roster as "Name (Role)"
func ParticipantNames(s entities.Summary) []string {
	names := make([]string, len(s.Participants))
	for i, p := range s.Participants {
		names[i] = p.Name
		if p.Role != "" {
			names[i] = fmt.Sprintf("%s (%s)", p.Name, p.Role)
		}
	}
	return names
}

// Text renders the summary as plain text for sharing and archiving
func Text(s entities.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Meeting Summary: %s\n", s.Title)
	fmt.Fprintf(&b, "Type: %s\n", s.Type)
	if s.StartedAt != nil {
		fmt.Fprintf(&b, "Date: %s\n", s.StartedAt.UTC().Format("2006-01-02 15:04 MST"))
	}
	fmt.Fprintf(&b, "Duration: %s\n", FormatDuration(s.DurationSeconds))
	if s.Abandoned {
		b.WriteString("Status: abandoned\n")
	}
	if len(s.Participants) > 0 {
		fmt.Fprintf(&b, "Participants: %s\n", strings.Join(ParticipantNames(s), ", "))
	}

	fmt.Fprintf(&b, "\nObjectives Completed: %d/%d\n", s.ObjectivesCompleted, s.ObjectivesTotal)
	for _, o := range s.Objectives {
		mark := " "
		if o.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] %s\n", mark, o.Text)
	}

	if len(s.KeyDiscussions) > 0 {
		b.WriteString("\nKey Discussions:\n")
		for _, d := range s.KeyDiscussions {
			fmt.Fprintf(&b, "- %s\n", d)
		}
	}

	if len(s.ActionItems) > 0 {
		b.WriteString("\nAction Items:\n")
		for _, item := range s.ActionItems {
			b.WriteString("- " + item.Task)
			if item.Assignee != "" || item.DueDate != "" {
				assignee := item.Assignee
				if assignee == "" {
					assignee = "unassigned"
				}
				due := item.DueDate
				if due == "" {
					due = "n/a"
				}
				fmt.Fprintf(&b, " (%s - Due: %s)", assignee, due)
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "\nEngagement: %d%%\nProductivity: %d%%\n", s.Metrics.EngagementScore, s.Metrics.ProductivityScore)
	if s.Metrics.Sentiment != "" {
		fmt.Fprintf(&b, "Sentiment: %s\n", s.Metrics.Sentiment)
	}
	if len(s.Metrics.TalkTime) > 0 {
		b.WriteString("Talk Time:\n")
		for _, tt := range s.Metrics.TalkTime {
			fmt.Fprintf(&b, "- %s: %d%% (%s)\n", tt.Name, tt.TalkPercentage, FormatDuration(tt.TalkSeconds))
		}
	}

	return b.String()
}
