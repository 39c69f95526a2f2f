package command

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// AddParticipant makes a contact a participant of an event. An empty Status
// means unknown.
type AddParticipant struct {
	Contact types.ContactID
	Event   types.EventID
	Status  types.ParticipantStatus
}

// Execute implements Command.
func (c AddParticipant) Execute(m Model) (Feedback, error) {
	status := c.Status
	if status == "" {
		status = types.StatusUnknown
	}
	if !status.Valid() {
		return Feedback{}, fail(types.ErrInvalidStatus, msgStatusInvalid, string(status))
	}
	contact, event, err := resolve(m, c.Contact, c.Event)
	if err != nil {
		return Feedback{}, err
	}
	if m.HasLink(c.Contact, c.Event) {
		return Feedback{}, fail(types.ErrDuplicateLink, msgParticipantExists, contact.Name, event.ID())
	}

	err = m.AddParticipant(c.Contact, c.Event, status)
	switch {
	case err == nil:
		return mutated(msgParticipantAdded, contact.Name, event.ID(), status), nil
	case errors.Is(err, types.ErrDuplicateLink):
		return Feedback{}, fail(err, msgParticipantExists, contact.Name, event.ID())
	}
	return Feedback{}, wrapSystem("add participant", err)
}

// RemoveParticipant ends a contact's participation in an event.
type RemoveParticipant struct {
	Contact types.ContactID
	Event   types.EventID
}

// Execute implements Command.
func (c RemoveParticipant) Execute(m Model) (Feedback, error) {
	contact, event, err := resolve(m, c.Contact, c.Event)
	if err != nil {
		return Feedback{}, err
	}

	err = m.RemoveParticipant(c.Contact, c.Event)
	switch {
	case err == nil:
		return mutated(msgParticipantRemoved, contact.Name, event.ID()), nil
	case errors.Is(err, types.ErrLinkNotFound):
		return Feedback{}, fail(err, msgParticipantMissing, contact.Name, event.ID())
	}
	return Feedback{}, wrapSystem("remove participant", err)
}

// SetParticipantStatus changes the status of an existing participation.
type SetParticipantStatus struct {
	Contact types.ContactID
	Event   types.EventID
	Status  types.ParticipantStatus
}

// Execute implements Command.
func (c SetParticipantStatus) Execute(m Model) (Feedback, error) {
	if !c.Status.Valid() {
		return Feedback{}, fail(types.ErrInvalidStatus, msgStatusInvalid, string(c.Status))
	}
	contact, event, err := resolve(m, c.Contact, c.Event)
	if err != nil {
		return Feedback{}, err
	}

	err = m.SetParticipantStatus(c.Contact, c.Event, c.Status)
	switch {
	case err == nil:
		return mutated(msgParticipantStatus, contact.Name, c.Status, event.ID()), nil
	case errors.Is(err, types.ErrLinkNotFound):
		return Feedback{}, fail(err, msgParticipantMissing, contact.Name, event.ID())
	}
	return Feedback{}, wrapSystem("set participant status", err)
}

// resolve looks up both sides of a participation so the coordinator is only
// asked about entities that exist.
func resolve(m Model, contactID types.ContactID, eventID types.EventID) (types.Contact, types.Event, error) {
	contact, ok := m.Contact(contactID)
	if !ok {
		return types.Contact{}, types.Event{}, fail(fmt.Errorf("contact: %w", types.ErrNotFound), msgContactNotFound, contactID)
	}
	event, ok := m.Event(eventID)
	if !ok {
		return types.Contact{}, types.Event{}, fail(fmt.Errorf("event: %w", types.ErrNotFound), msgEventNotFound, eventID)
	}
	return contact, event, nil
}
