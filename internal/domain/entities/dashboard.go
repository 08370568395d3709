package entities

// MeetingTypeShare is how many stored meetings ran one ceremony
type MeetingTypeShare struct {
	Type       MeetingType `json:"type"`
	Count      int         `json:"count"`
	Percentage int         `json:"percentage"`
}

// OpenActionItem is an action item together with the meeting that raised it
type OpenActionItem struct {
	ActionItem
	SessionID    string `json:"session_id"`
	MeetingTitle string `json:"meeting_title"`
}

// DashboardStats aggregates every stored summary into team-level figures
type DashboardStats struct {
	TotalMeetings        int                `json:"total_meetings"`
	CompletedMeetings    int                `json:"completed_meetings"`
	AbandonedMeetings    int                `json:"abandoned_meetings"`
	AvgDurationSeconds   int64              `json:"avg_duration_seconds"`
	AvgDuration          string             `json:"avg_duration"`
	AvgEngagementScore   int                `json:"avg_engagement_score"`
	AvgProductivityScore int                `json:"avg_productivity_score"`
	ObjectivesCompleted  int                `json:"objectives_completed"`
	ObjectivesTotal      int                `json:"objectives_total"`
	MeetingTypes         []MeetingTypeShare `json:"meeting_types"`
	OpenActionItems      int                `json:"open_action_items"`
	ActionItems          []OpenActionItem   `json:"action_items"`
}
