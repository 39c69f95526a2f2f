// Package command is the roster's command layer. Each command performs at
// most one coordinator mutation and reports the outcome as Feedback. This is
// the only package that turns roster errors into text meant for a person.
package command

import (
	"github.com/mesh-intelligence/roster/internal/projection"
	"github.com/mesh-intelligence/roster/pkg/types"
)

// Model is the roster state commands act on. *coordinator.Coordinator
// satisfies it.
type Model interface {
	AddContact(x types.Contact) error
	RemoveContact(id types.ContactID) (types.Contact, error)
	SetContact(old types.ContactID, next types.Contact) error

	AddEvent(x types.Event) error
	RemoveEvent(id types.EventID) (types.Event, error)
	SetEvent(old types.EventID, next types.Event) error

	AddParticipant(contact types.ContactID, event types.EventID, status types.ParticipantStatus) error
	RemoveParticipant(contact types.ContactID, event types.EventID) error
	SetParticipantStatus(contact types.ContactID, event types.EventID, status types.ParticipantStatus) error

	Load(snap types.Snapshot) error

	Contact(id types.ContactID) (types.Contact, bool)
	Event(id types.EventID) (types.Event, bool)
	HasLink(contact types.ContactID, event types.EventID) bool
	ContactView() *projection.View[types.Contact]
	EventView() *projection.View[types.Event]
}

// Command is one user request against the roster.
type Command interface {
	Execute(m Model) (Feedback, error)
}

// Feedback is the result of a successful command.
type Feedback struct {
	Message string `json:"message"`
	// Mutated is true when the command changed the roster and it needs saving.
	Mutated bool `json:"mutated"`
}

func mutated(key string, args ...any) Feedback {
	return Feedback{Message: text(key, args...), Mutated: true}
}

func listed(key string, args ...any) Feedback {
	return Feedback{Message: text(key, args...)}
}
