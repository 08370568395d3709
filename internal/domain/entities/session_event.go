package entities

import (
	"fmt"
	"strings"
	"time"
)

// EventKind tags the variant carried by a SessionEvent
type EventKind string

const (
	EventNoteEdited       EventKind = "note_edited"
	EventAgendaEdited     EventKind = "agenda_edited"
	EventMicToggled       EventKind = "mic_toggled"
	EventCameraToggled    EventKind = "camera_toggled"
	EventObjectiveToggled EventKind = "objective_toggled"
	EventActionItemAdded  EventKind = "action_item_added"
)

// ActionItem is a follow-up task captured during a meeting
type ActionItem struct {
	Task     string `json:"task"`
	Assignee string `json:"assignee,omitempty"`
	DueDate  string `json:"due_date,omitempty"`
}

// SessionEvent is one entry of a session's append-only log.
// Only the fields belonging to Kind are meaningful.
type SessionEvent struct {
	Kind       EventKind   `json:"kind"`
	At         time.Time   `json:"at"`
	Actor      string      `json:"actor,omitempty"`
	Text       string      `json:"text,omitempty"`
	On         bool        `json:"on,omitempty"`
	Index      int         `json:"index,omitempty"`
	Completed  bool        `json:"completed,omitempty"`
	ActionItem *ActionItem `json:"action_item,omitempty"`
}

// NoteEdited replaces the live notes with text
func NoteEdited(actor, text string) SessionEvent {
	return SessionEvent{Kind: EventNoteEdited, Actor: actor, Text: text}
}

// AgendaEdited replaces the live agenda with text
func AgendaEdited(actor, text string) SessionEvent {
	return SessionEvent{Kind: EventAgendaEdited, Actor: actor, Text: text}
}

func MicToggled(actor string, on bool) SessionEvent {
	return SessionEvent{Kind: EventMicToggled, Actor: actor, On: on}
}

func CameraToggled(actor string, on bool) SessionEvent {
	return SessionEvent{Kind: EventCameraToggled, Actor: actor, On: on}
}

// ObjectiveToggled marks the objective at index as completed or not
func ObjectiveToggled(actor string, index int, completed bool) SessionEvent {
	return SessionEvent{Kind: EventObjectiveToggled, Actor: actor, Index: index, Completed: completed}
}

func ActionItemAdded(actor string, item ActionItem) SessionEvent {
	return SessionEvent{Kind: EventActionItemAdded, Actor: actor, ActionItem: &item}
}

// IsSpeakerActivity reports whether the event counts toward its actor's talk time
func (e SessionEvent) IsSpeakerActivity() bool {
	switch e.Kind {
	case EventNoteEdited, EventAgendaEdited, EventActionItemAdded:
		return true
	}
	return false
}

// validate checks the event against the session it is recorded into
func (e SessionEvent) validate(s *MeetingSession) error {
	switch e.Kind {
	case EventNoteEdited, EventAgendaEdited, EventMicToggled, EventCameraToggled:
	case EventObjectiveToggled:
		if e.Index < 0 || e.Index >= len(s.objectives) {
			return fmt.Errorf("%w: objective index %d out of range [0,%d)", ErrInvalidEvent, e.Index, len(s.objectives))
		}
	case EventActionItemAdded:
		if e.ActionItem == nil || strings.TrimSpace(e.ActionItem.Task) == "" {
			return fmt.Errorf("%w: action item requires a task", ErrInvalidEvent)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidEvent, e.Kind)
	}
	if e.Actor != "" && !s.hasParticipant(e.Actor) {
		return fmt.Errorf("%w: actor %q is not a participant", ErrInvalidEvent, e.Actor)
	}
	return nil
}

func (e SessionEvent) clone() SessionEvent {
	if e.ActionItem != nil {
		item := *e.ActionItem
		e.ActionItem = &item
	}
	return e
}
