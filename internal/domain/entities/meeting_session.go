package entities

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MeetingType represents the Scrum ceremony a session runs
type MeetingType string

const (
	MeetingTypeStandup       MeetingType = "standup"
	MeetingTypePlanning      MeetingType = "planning"
	MeetingTypeReview        MeetingType = "review"
	MeetingTypeRetrospective MeetingType = "retrospective"
)

// MeetingTypes lists every ceremony in sprint order
var MeetingTypes = []MeetingType{MeetingTypeStandup, MeetingTypePlanning, MeetingTypeReview, MeetingTypeRetrospective}

// ParseMeetingType accepts a ceremony name in any letter case
func ParseMeetingType(s string) (MeetingType, error) {
	switch t := MeetingType(strings.ToLower(strings.TrimSpace(s))); t {
	case MeetingTypeStandup, MeetingTypePlanning, MeetingTypeReview, MeetingTypeRetrospective:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMeetingType, s)
}

// SessionStatus represents the lifecycle state of a meeting session
type SessionStatus string

const (
	SessionStatusIdle   SessionStatus = "idle"
	SessionStatusActive SessionStatus = "active"
	SessionStatusEnded  SessionStatus = "ended"
)

// Participant is a member of the session roster
type Participant struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// MeetingSession is the lifecycle state machine of one meeting.
// Status only moves forward (idle -> active -> ended) and the event log is
// append-only while active. All time inputs are passed in by the caller.
type MeetingSession struct {
	id           string
	title        string
	meetingType  MeetingType
	status       SessionStatus
	participants []Participant
	objectives   []string
	createdAt    time.Time
	startedAt    *time.Time
	endedAt      *time.Time
	abandoned    bool
	events       []SessionEvent
}

// NewMeetingSession creates an idle session
func NewMeetingSession(id, title string, meetingType MeetingType, participants []Participant, objectives []string, now time.Time) (*MeetingSession, error) {
	s := &MeetingSession{
		id:          id,
		title:       title,
		meetingType: meetingType,
		status:      SessionStatusIdle,
		objectives:  append([]string(nil), objectives...),
		createdAt:   now,
	}
	if err := s.setParticipants(participants); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MeetingSession) ID() string { return s.id }

func (s *MeetingSession) Title() string { return s.title }

func (s *MeetingSession) Type() MeetingType { return s.meetingType }

func (s *MeetingSession) Status() SessionStatus { return s.status }

func (s *MeetingSession) CreatedAt() time.Time { return s.createdAt }

func (s *MeetingSession) Abandoned() bool { return s.abandoned }

func (s *MeetingSession) StartedAt() *time.Time { return copyTime(s.startedAt) }

func (s *MeetingSession) EndedAt() *time.Time { return copyTime(s.endedAt) }

// Objectives returns a copy of the objective list fixed at creation
func (s *MeetingSession) Objectives() []string {
	return append([]string(nil), s.objectives...)
}

// Participants returns a copy of the roster
func (s *MeetingSession) Participants() []Participant {
	return append([]Participant(nil), s.participants...)
}

// Events returns a copy of the event log in append order
func (s *MeetingSession) Events() []SessionEvent {
	out := make([]SessionEvent, len(s.events))
	for i, e := range s.events {
		out[i] = e.clone()
	}
	return out
}

// IsActive checks if the session is currently running
func (s *MeetingSession) IsActive() bool {
	return s.status == SessionStatusActive
}

// IsEnded checks if the session has ended
func (s *MeetingSession) IsEnded() bool {
	return s.status == SessionStatusEnded
}

// SetParticipants replaces the roster. Only allowed before the session starts.
func (s *MeetingSession) SetParticipants(participants []Participant) error {
	if s.status != SessionStatusIdle {
		return invalidTransition("change participants of", s.status)
	}
	return s.setParticipants(participants)
}

func (s *MeetingSession) setParticipants(participants []Participant) error {
	seen := make(map[string]struct{}, len(participants))
	roster := make([]Participant, 0, len(participants))
	for _, p := range participants {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return fmt.Errorf("%w: name is required", ErrInvalidParticipant)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidParticipant, name)
		}
		seen[name] = struct{}{}
		roster = append(roster, Participant{Name: name, Role: strings.TrimSpace(p.Role)})
	}
	s.participants = roster
	return nil
}

// Start marks the session as active
func (s *MeetingSession) Start(now time.Time) error {
	if s.status != SessionStatusIdle {
		return invalidTransition("start", s.status)
	}
	s.status = SessionStatusActive
	s.startedAt = &now
	return nil
}

// Record appends an event stamped with now and returns the stored event.
// A rejected event leaves the log untouched.
func (s *MeetingSession) Record(now time.Time, event SessionEvent) (SessionEvent, error) {
	if s.status != SessionStatusActive {
		return SessionEvent{}, invalidTransition("record events on", s.status)
	}
	if err := event.validate(s); err != nil {
		return SessionEvent{}, err
	}
	event = event.clone()
	event.At = s.notBefore(now)
	s.events = append(s.events, event)
	return event.clone(), nil
}

// End marks the session as ended
func (s *MeetingSession) End(now time.Time) error {
	if s.status != SessionStatusActive {
		return invalidTransition("end", s.status)
	}
	s.finish(now)
	return nil
}

// Abandon ends a session that was never properly closed. Unlike End it also
// accepts an idle session, which then ends without ever having started.
func (s *MeetingSession) Abandon(now time.Time) error {
	if s.status == SessionStatusEnded {
		return invalidTransition("abandon", s.status)
	}
	s.abandoned = true
	if s.status == SessionStatusIdle {
		s.status = SessionStatusEnded
		end := now
		if end.Before(s.createdAt) {
			end = s.createdAt
		}
		s.endedAt = &end
		return nil
	}
	s.finish(now)
	return nil
}

func (s *MeetingSession) finish(now time.Time) {
	end := s.notBefore(now)
	s.status = SessionStatusEnded
	s.endedAt = &end
}

// notBefore clamps now so timestamps never run backwards in the log
func (s *MeetingSession) notBefore(now time.Time) time.Time {
	floor := *s.startedAt
	if n := len(s.events); n > 0 && s.events[n-1].At.After(floor) {
		floor = s.events[n-1].At
	}
	if now.Before(floor) {
		return floor
	}
	return now
}

// CurrentNoteText returns the text of the latest note edit
func (s *MeetingSession) CurrentNoteText() string {
	return s.latestText(EventNoteEdited)
}

// CurrentAgendaText returns the text of the latest agenda edit
func (s *MeetingSession) CurrentAgendaText() string {
	return s.latestText(EventAgendaEdited)
}

func (s *MeetingSession) latestText(kind EventKind) string {
	for i := len(s.events) - 1; i >= 0; i-- {
		if s.events[i].Kind == kind {
			return s.events[i].Text
		}
	}
	return ""
}

// ElapsedSeconds is 0 while idle, now-startedAt while active and
// endedAt-startedAt once ended.
func (s *MeetingSession) ElapsedSeconds(now time.Time) int64 {
	switch s.status {
	case SessionStatusActive:
		if now.Before(*s.startedAt) {
			return 0
		}
		return int64(now.Sub(*s.startedAt) / time.Second)
	case SessionStatusEnded:
		return s.DurationSeconds()
	}
	return 0
}

// DurationSeconds is the final duration of an ended session, 0 otherwise
func (s *MeetingSession) DurationSeconds() int64 {
	if s.status != SessionStatusEnded || s.startedAt == nil || s.endedAt == nil {
		return 0
	}
	return int64(s.endedAt.Sub(*s.startedAt) / time.Second)
}

// ObjectiveStates returns the completion flag per objective; the last toggle of an index wins
func (s *MeetingSession) ObjectiveStates() []bool {
	states := make([]bool, len(s.objectives))
	for _, e := range s.events {
		if e.Kind == EventObjectiveToggled && e.Index >= 0 && e.Index < len(states) {
			states[e.Index] = e.Completed
		}
	}
	return states
}

func (s *MeetingSession) hasParticipant(name string) bool {
	for _, p := range s.participants {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the session
func (s *MeetingSession) Clone() *MeetingSession {
	c := *s
	c.participants = s.Participants()
	c.objectives = s.Objectives()
	c.startedAt = copyTime(s.startedAt)
	c.endedAt = copyTime(s.endedAt)
	c.events = s.Events()
	return &c
}

// sessionSnapshot is the serialized form used by session repositories
type sessionSnapshot struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Type         MeetingType    `json:"type"`
	Status       SessionStatus  `json:"status"`
	Participants []Participant  `json:"participants"`
	Objectives   []string       `json:"objectives"`
	CreatedAt    time.Time      `json:"created_at"`
	StartedAt    *time.Time     `json:"started_at,omitempty"`
	EndedAt      *time.Time     `json:"ended_at,omitempty"`
	Abandoned    bool           `json:"abandoned,omitempty"`
	Events       []SessionEvent `json:"events"`
}

// MarshalJSON implements json.Marshaler
func (s *MeetingSession) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionSnapshot{
		ID:           s.id,
		Title:        s.title,
		Type:         s.meetingType,
		Status:       s.status,
		Participants: s.participants,
		Objectives:   s.objectives,
		CreatedAt:    s.createdAt,
		StartedAt:    s.startedAt,
		EndedAt:      s.endedAt,
		Abandoned:    s.abandoned,
		Events:       s.events,
	})
}

// UnmarshalJSON implements json.Unmarshaler and rejects snapshots that break the lifecycle invariants
func (s *MeetingSession) UnmarshalJSON(data []byte) error {
	var snap sessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	switch snap.Status {
	case SessionStatusIdle:
		if snap.StartedAt != nil || snap.EndedAt != nil || len(snap.Events) > 0 {
			return fmt.Errorf("%w: idle snapshot carries lifecycle data", ErrInvalidState)
		}
	case SessionStatusActive:
		if snap.StartedAt == nil || snap.EndedAt != nil {
			return fmt.Errorf("%w: active snapshot without start time", ErrInvalidState)
		}
	case SessionStatusEnded:
		if snap.EndedAt == nil || (snap.StartedAt == nil && !snap.Abandoned) {
			return fmt.Errorf("%w: ended snapshot without end time", ErrInvalidState)
		}
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidState, snap.Status)
	}
	*s = MeetingSession{
		id:           snap.ID,
		title:        snap.Title,
		meetingType:  snap.Type,
		status:       snap.Status,
		participants: snap.Participants,
		objectives:   snap.Objectives,
		createdAt:    snap.CreatedAt,
		startedAt:    snap.StartedAt,
		endedAt:      snap.EndedAt,
		abandoned:    snap.Abandoned,
		events:       snap.Events,
	}
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
