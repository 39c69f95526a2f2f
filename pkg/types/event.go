package types

import (
	"slices"
	"time"
)

// Event is a gathering contacts can take part in.
//
// Participants is the event's relationship snapshot, rebuilt by the
// coordinator from the participation index. Status is the event's own
// free-text state ("planned", "done", ...) and is unrelated to the
// per-participant ParticipantStatus.
type Event struct {
	Name         string        `json:"name"`
	Date         time.Time     `json:"date"`
	Address      string        `json:"address,omitempty"`
	Status       string        `json:"status,omitempty"`
	Tags         []string      `json:"tags,omitempty"`
	Participants []Participant `json:"participants,omitempty"`
}

// ID returns the event's identity key, its normalized name.
func (e Event) ID() EventID {
	return NewEventID(e.Name)
}

// Validate checks the identity field.
func (e Event) Validate() error {
	if e.ID() == "" {
		return ErrInvalidData
	}
	return nil
}

// Clone returns a deep copy of e.
func (e Event) Clone() Event {
	e.Tags = slices.Clone(e.Tags)
	e.Participants = slices.Clone(e.Participants)
	return e
}

// WithParticipants returns a copy of e whose relationship snapshot is participants.
func (e Event) WithParticipants(participants []Participant) Event {
	out := e.Clone()
	out.Participants = slices.Clone(participants)
	return out
}

// HasTag reports whether e carries tag, ignoring case.
func (e Event) HasTag(tag string) bool {
	return hasTag(e.Tags, tag)
}

// Participant returns the snapshot entry for contact, if any.
func (e Event) Participant(contact ContactID) (Participant, bool) {
	for _, p := range e.Participants {
		if p.Contact == contact {
			return p, true
		}
	}
	return Participant{}, false
}
