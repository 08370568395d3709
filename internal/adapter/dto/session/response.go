package session

import "time"

// ParticipantResponse is one roster entry
type ParticipantResponse struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// ObjectiveResponse is an objective with its current completion state
type ObjectiveResponse struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// ActionItemResponse is a captured follow-up task
type ActionItemResponse struct {
	Task     string `json:"task"`
	Assignee string `json:"assignee,omitempty"`
	DueDate  string `json:"due_date,omitempty"`
}

// EventResponse is one entry of the session event log
type EventResponse struct {
	Kind       string              `json:"kind"`
	At         time.Time           `json:"at"`
	Actor      string              `json:"actor,omitempty"`
	Text       *string             `json:"text,omitempty"`
	On         *bool               `json:"on,omitempty"`
	Index      *int                `json:"index,omitempty"`
	Completed  *bool               `json:"completed,omitempty"`
	ActionItem *ActionItemResponse `json:"action_item,omitempty"`
}

// SessionResponse represents a meeting session
type SessionResponse struct {
	ID             string                `json:"id"`
	Title          string                `json:"title"`
	Type           string                `json:"type"`
	Status         string                `json:"status"`
	Participants   []ParticipantResponse `json:"participants"`
	Objectives     []ObjectiveResponse   `json:"objectives"`
	CreatedAt      time.Time             `json:"created_at"`
	StartedAt      *time.Time            `json:"started_at,omitempty"`
	EndedAt        *time.Time            `json:"ended_at,omitempty"`
	Abandoned      bool                  `json:"abandoned"`
	ElapsedSeconds int64                 `json:"elapsed_seconds"`
	Elapsed        string                `json:"elapsed"`
	CurrentNote    string                `json:"current_note"`
	CurrentAgenda  string                `json:"current_agenda"`
	Events         []EventResponse       `json:"events"`
}

// SessionListResponse represents a list of sessions
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Total    int               `json:"total"`
}

// ClockFrame is one tick pushed over the clock websocket
type ClockFrame struct {
	SessionID      string `json:"session_id"`
	Status         string `json:"status"`
	ElapsedSeconds int64  `json:"elapsed_seconds"`
	Display        string `json:"display"`
}
