// Package share renders meeting summaries for external messaging channels.
// Every function is pure: it builds text or a compose URL and performs no I/O.
package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/johnquangdev/scrum-assistant/internal/domain/entities"
	"github.com/johnquangdev/scrum-assistant/internal/usecase/summary"
)

// EmailSubject is the subject line used for mailed summaries
func EmailSubject(s entities.Summary) string {
	return "Meeting Summary: " + s.Title
}

// EmailURL builds a mailto: link with the summary as subject and body
func EmailURL(s entities.Summary) string {
	q := url.Values{}
	q.Set("subject", EmailSubject(s))
	q.Set("body", summary.Text(s))
	// mailto bodies must use %20, not '+', for spaces
	return "mailto:?" + strings.ReplaceAll(q.Encode(), "+", "%20")
}

// WhatsAppURL builds a wa.me compose link carrying the summary text
func WhatsAppURL(s entities.Summary) string {
	return "https://wa.me/?text=" + url.QueryEscape(summary.Text(s))
}

// SlackText renders the summary with Slack mrkdwn formatting
func SlackText(s entities.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*%s* (%s)\n", s.Title, s.Type)
	fmt.Fprintf(&b, "Duration: `%s`", summary.FormatDuration(s.DurationSeconds))
	if s.Abandoned {
		b.WriteString(" _abandoned_")
	}
	b.WriteString("\n")
	if len(s.Participants) > 0 {
		fmt.Fprintf(&b, "Participants: %s\n", strings.Join(summary.ParticipantNames(s), ", "))
	}

	fmt.Fprintf(&b, "\n*Objectives* %d/%d\n", s.ObjectivesCompleted, s.ObjectivesTotal)
	for _, o := range s.Objectives {
		mark := ":white_large_square:"
		if o.Completed {
			mark = ":white_check_mark:"
		}
		fmt.Fprintf(&b, "%s %s\n", mark, o.Text)
	}

	if len(s.KeyDiscussions) > 0 {
		b.WriteString("\n*Key Discussions*\n")
		for _, d := range s.KeyDiscussions {
			fmt.Fprintf(&b, "• %s\n", d)
		}
	}

	if len(s.ActionItems) > 0 {
		b.WriteString("\n*Action Items*\n")
		for _, item := range s.ActionItems {
			b.WriteString("• " + item.Task)
			if item.Assignee != "" {
				b.WriteString(" @" + item.Assignee)
			}
			if item.DueDate != "" {
				b.WriteString(" (due " + item.DueDate + ")")
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "\nEngagement %d%% | Productivity %d%%\n", s.Metrics.EngagementScore, s.Metrics.ProductivityScore)
	return b.String()
}
