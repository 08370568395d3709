package presenter

import (
	"time"

	"github.com/johnquangdev/scrum-assistant/internal/adapter/dto/session"
	"github.com/johnquangdev/scrum-assistant/internal/domain/entities"
	"github.com/johnquangdev/scrum-assistant/internal/usecase/summary"
)

// ToSessionResponse converts a session entity to its response DTO as seen at now
func ToSessionResponse(s *entities.MeetingSession, now time.Time) session.SessionResponse {
	elapsed := s.ElapsedSeconds(now)

	participants := s.Participants()
	roster := make([]session.ParticipantResponse, len(participants))
	for i, p := range participants {
		roster[i] = session.ParticipantResponse{Name: p.Name, Role: p.Role}
	}

	states := s.ObjectiveStates()
	objectives := make([]session.ObjectiveResponse, len(states))
	for i, text := range s.Objectives() {
		objectives[i] = session.ObjectiveResponse{Index: i, Text: text, Completed: states[i]}
	}

	events := s.Events()
	eventResponses := make([]session.EventResponse, len(events))
	for i, e := range events {
		eventResponses[i] = ToEventResponse(e)
	}

	return session.SessionResponse{
		ID:             s.ID(),
		Title:          s.Title(),
		Type:           string(s.Type()),
		Status:         string(s.Status()),
		Participants:   roster,
		Objectives:     objectives,
		CreatedAt:      s.CreatedAt(),
		StartedAt:      s.StartedAt(),
		EndedAt:        s.EndedAt(),
		Abandoned:      s.Abandoned(),
		ElapsedSeconds: elapsed,
		Elapsed:        summary.FormatDuration(elapsed),
		CurrentNote:    s.CurrentNoteText(),
		CurrentAgenda:  s.CurrentAgendaText(),
		Events:         eventResponses,
	}
}

// ToSessionListResponse converts sessions to a list response DTO
func ToSessionListResponse(sessions []*entities.MeetingSession, now time.Time) session.SessionListResponse {
	items := make([]session.SessionResponse, len(sessions))
	for i, s := range sessions {
		items[i] = ToSessionResponse(s, now)
	}
	return session.SessionListResponse{Sessions: items, Total: len(items)}
}

// ToEventResponse exposes only the fields that belong to the event's kind
func ToEventResponse(e entities.SessionEvent) session.EventResponse {
	resp := session.EventResponse{
		Kind:  string(e.Kind),
		At:    e.At,
		Actor: e.Actor,
	}

	switch e.Kind {
	case entities.EventNoteEdited, entities.EventAgendaEdited:
		text := e.Text
		resp.Text = &text
	case entities.EventMicToggled, entities.EventCameraToggled:
		on := e.On
		resp.On = &on
	case entities.EventObjectiveToggled:
		index, completed := e.Index, e.Completed
		resp.Index = &index
		resp.Completed = &completed
	case entities.EventActionItemAdded:
		if e.ActionItem != nil {
			resp.ActionItem = &session.ActionItemResponse{
				Task:     e.ActionItem.Task,
				Assignee: e.ActionItem.Assignee,
				DueDate:  e.ActionItem.DueDate,
			}
		}
	}

	return resp
}

// ToClockFrame builds one clock stream frame
func ToClockFrame(s *entities.MeetingSession, now time.Time) session.ClockFrame {
	elapsed := s.ElapsedSeconds(now)
	return session.ClockFrame{
		SessionID:      s.ID(),
		Status:         string(s.Status()),
		ElapsedSeconds: elapsed,
		Display:        summary.FormatDuration(elapsed),
	}
}

// ToSessionEvent converts a record request into a domain event
func ToSessionEvent(req session.RecordEventRequest) entities.SessionEvent {
	switch entities.EventKind(req.Kind) {
	case entities.EventNoteEdited:
		return entities.NoteEdited(req.Actor, req.Text)
	case entities.EventAgendaEdited:
		return entities.AgendaEdited(req.Actor, req.Text)
	case entities.EventMicToggled:
		return entities.MicToggled(req.Actor, deref(req.On))
	case entities.EventCameraToggled:
		return entities.CameraToggled(req.Actor, deref(req.On))
	case entities.EventObjectiveToggled:
		index := -1
		if req.Index != nil {
			index = *req.Index
		}
		return entities.ObjectiveToggled(req.Actor, index, deref(req.Completed))
	case entities.EventActionItemAdded:
		return entities.ActionItemAdded(req.Actor, entities.ActionItem{
			Task:     req.Task,
			Assignee: req.Assignee,
			DueDate:  req.DueDate,
		})
	}
	return entities.SessionEvent{Kind: entities.EventKind(req.Kind), Actor: req.Actor}
}

// ToParticipants converts roster requests into domain participants
func ToParticipants(reqs []session.ParticipantRequest) []entities.Participant {
	out := make([]entities.Participant, len(reqs))
	for i, p := range reqs {
		out[i] = entities.Participant{Name: p.Name, Role: p.Role}
	}
	return out
}

func deref(b *bool) bool {
	return b != nil && *b
}
