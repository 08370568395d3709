package entities

import "time"

// TalkTime is one participant's share of the speaking time
type TalkTime struct {
	Name           string `json:"name"`
	TalkSeconds    int64  `json:"talk_seconds"`
	TalkPercentage int    `json:"talk_percentage"`
}

// Sentiment is the overall mood label derived from the meeting scores
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// MetricsSnapshot is the derived engagement data of an ended session
type MetricsSnapshot struct {
	TalkTime          []TalkTime `json:"talk_time"`
	EngagementScore   int        `json:"engagement_score"`
	ProductivityScore int        `json:"productivity_score"`
	Sentiment         Sentiment  `json:"sentiment"`
}

// ObjectiveResult is the final completion state of one objective
type ObjectiveResult struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Summary is the immutable record derived once from an ended session.
// Every field is a function of the session's final state.
type Summary struct {
	SessionID           string            `json:"session_id"`
	Title               string            `json:"title"`
	Type                MeetingType       `json:"type"`
	Participants        []Participant     `json:"participants"`
	StartedAt           *time.Time        `json:"started_at,omitempty"`
	EndedAt             *time.Time        `json:"ended_at,omitempty"`
	DurationSeconds     int64             `json:"duration_seconds"`
	Abandoned           bool              `json:"abandoned"`
	Objectives          []ObjectiveResult `json:"objectives"`
	ObjectivesCompleted int               `json:"objectives_completed"`
	ObjectivesTotal     int               `json:"objectives_total"`
	KeyDiscussions      []string          `json:"key_discussions"`
	ActionItems         []ActionItem      `json:"action_items"`
	Metrics             MetricsSnapshot   `json:"metrics"`
}

// StoredSummary is a Summary as persisted in the summaries collection
type StoredSummary struct {
	ID string `json:"id"`
	Summary
}
