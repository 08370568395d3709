package session

// ParticipantRequest is one roster entry
type ParticipantRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Role string `json:"role,omitempty" validate:"max=100"`
}

// CreateSessionRequest represents the request to create a meeting session
type CreateSessionRequest struct {
	Title        string               `json:"title" validate:"max=255"`
	Type         string               `json:"type" validate:"required,meeting_type"`
	Participants []ParticipantRequest `json:"participants" validate:"max=50,dive"`
	Objectives   []string             `json:"objectives" validate:"max=50,dive,required,max=500"`
}

// SetParticipantsRequest represents the request to replace the roster of an idle session
type SetParticipantsRequest struct {
	Participants []ParticipantRequest `json:"participants" validate:"max=50,dive"`
}

// RecordEventRequest represents one event recorded into an active session.
// Only the fields of the given kind are read.
type RecordEventRequest struct {
	Kind      string `json:"kind" validate:"required,oneof=note_edited agenda_edited mic_toggled camera_toggled objective_toggled action_item_added"`
	Actor     string `json:"actor,omitempty" validate:"max=100"`
	Text      string `json:"text,omitempty" validate:"max=20000"`
	On        *bool  `json:"on,omitempty" validate:"required_if=Kind mic_toggled,required_if=Kind camera_toggled"`
	Index     *int   `json:"index,omitempty" validate:"required_if=Kind objective_toggled"`
	Completed *bool  `json:"completed,omitempty" validate:"required_if=Kind objective_toggled"`
	Task      string `json:"task,omitempty" validate:"required_if=Kind action_item_added,max=500"`
	Assignee  string `json:"assignee,omitempty" validate:"max=100"`
	DueDate   string `json:"due_date,omitempty" validate:"max=50"`
}
