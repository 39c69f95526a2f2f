// Package coordinator is the single writer of the roster. It owns the contact
// store, the event store, and the participation index, and keeps the
// relationship snapshots embedded in each entity in step with the index.
//
// Every mutating method validates all of its preconditions before touching
// any structure, so an error always means nothing changed. Store change
// notifications are buffered while an operation runs and published once it
// has finished; subscribers and projections never see a half-applied state.
package coordinator

import (
	"log/slog"

	"github.com/mesh-intelligence/roster/internal/index"
	"github.com/mesh-intelligence/roster/internal/projection"
	"github.com/mesh-intelligence/roster/internal/store"
	"github.com/mesh-intelligence/roster/pkg/types"
)

// Notification carries the store changes made by one coordinator operation.
type Notification struct {
	Op       string
	Contacts []store.Change[types.Contact]
	Events   []store.Change[types.Event]
}

type subscriber struct {
	id int
	fn func(Notification)
}

// Coordinator sequences entity store changes, index changes, and snapshot
// refreshes. It is not safe for concurrent use.
type Coordinator struct {
	contacts *store.Store[types.ContactID, types.Contact]
	events   *store.Store[types.EventID, types.Event]
	links    *index.Index
	logger   *slog.Logger

	pending     Notification
	subscribers []subscriber
	nextSubID   int

	contactView *projection.View[types.Contact]
	eventView   *projection.View[types.Event]
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used for mutation records. The default is
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns an empty Coordinator.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		links:  index.New(),
		logger: slog.Default(),
	}
	c.contacts = store.New[types.ContactID, types.Contact](func(ch store.Change[types.Contact]) {
		c.pending.Contacts = append(c.pending.Contacts, ch)
	})
	c.events = store.New[types.EventID, types.Event](func(ch store.Change[types.Event]) {
		c.pending.Events = append(c.pending.Events, ch)
	})
	c.contactView = projection.New(c.contacts.List)
	c.eventView = projection.New(c.events.List)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe registers fn to receive one Notification per operation that
// changed at least one entity. The returned function removes the registration.
func (c *Coordinator) Subscribe(fn func(Notification)) (cancel func()) {
	id := c.nextSubID
	c.nextSubID++
	c.subscribers = append(c.subscribers, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range c.subscribers {
			if s.id == id {
				c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
				return
			}
		}
	}
}

// publish hands the buffered changes of a finished operation to the views
// and subscribers.
func (c *Coordinator) publish(op string) {
	n := c.pending
	c.pending = Notification{}
	if len(n.Contacts) == 0 && len(n.Events) == 0 {
		return
	}
	n.Op = op
	if len(n.Contacts) > 0 {
		c.contactView.Changed()
	}
	if len(n.Events) > 0 {
		c.eventView.Changed()
	}
	for _, s := range append([]subscriber(nil), c.subscribers...) {
		s.fn(n)
	}
}

// ContactView returns the observable, filterable projection of the contact store.
func (c *Coordinator) ContactView() *projection.View[types.Contact] {
	return c.contactView
}

// EventView returns the observable, filterable projection of the event store.
func (c *Coordinator) EventView() *projection.View[types.Event] {
	return c.eventView
}

// Contacts returns every contact in display order.
func (c *Coordinator) Contacts() []types.Contact {
	return c.contacts.List()
}

// Events returns every event in display order.
func (c *Coordinator) Events() []types.Event {
	return c.events.List()
}

// Contact returns the contact with identity id.
func (c *Coordinator) Contact(id types.ContactID) (types.Contact, bool) {
	return c.contacts.Get(id)
}

// Event returns the event with identity id.
func (c *Coordinator) Event(id types.EventID) (types.Event, bool) {
	return c.events.Get(id)
}

// HasContact reports whether a contact with identity id exists.
func (c *Coordinator) HasContact(id types.ContactID) bool {
	return c.contacts.Contains(id)
}

// HasEvent reports whether an event with identity id exists.
func (c *Coordinator) HasEvent(id types.EventID) bool {
	return c.events.Contains(id)
}

// HasLink reports whether contact takes part in event.
func (c *Coordinator) HasLink(contact types.ContactID, event types.EventID) bool {
	return c.links.Contains(contact, event)
}

// Link returns the participation link for (contact, event).
// Returns ErrLinkNotFound if there is none.
func (c *Coordinator) Link(contact types.ContactID, event types.EventID) (types.ParticipantLink, error) {
	return c.links.Get(contact, event)
}

// LinksForContact returns contact's links sorted by event.
func (c *Coordinator) LinksForContact(contact types.ContactID) []types.ParticipantLink {
	return c.links.LinksForContact(contact)
}

// LinksForEvent returns event's links sorted by contact.
func (c *Coordinator) LinksForEvent(event types.EventID) []types.ParticipantLink {
	return c.links.LinksForEvent(event)
}
