package command

import (
	"fmt"

	"github.com/mesh-intelligence/roster/internal/projection"
	"github.com/mesh-intelligence/roster/pkg/types"
)

// ListContacts shows every contact.
type ListContacts struct{}

// Execute implements Command.
func (ListContacts) Execute(m Model) (Feedback, error) {
	v := m.ContactView()
	v.SetFilter(projection.All[types.Contact])
	return listed(msgContactsListed, v.Len()), nil
}

// ListEvents shows every event.
type ListEvents struct{}

// Execute implements Command.
func (ListEvents) Execute(m Model) (Feedback, error) {
	v := m.EventView()
	v.SetFilter(projection.All[types.Event])
	return listed(msgEventsListed, v.Len()), nil
}

// FindContacts shows the contacts matching any of Keywords and all of Tags.
type FindContacts struct {
	Keywords []string
	Tags     []string
}

// Execute implements Command.
func (c FindContacts) Execute(m Model) (Feedback, error) {
	pred, err := c.predicate()
	if err != nil {
		return Feedback{}, err
	}
	v := m.ContactView()
	v.SetFilter(pred)
	return listed(msgContactsListed, v.Len()), nil
}

func (c FindContacts) predicate() (projection.Predicate[types.Contact], error) {
	keywords := cleanKeywords(c.Keywords)
	switch {
	case len(keywords) == 0 && len(c.Tags) == 0:
		return nil, fail(ErrNoKeywords, msgNoKeywords)
	case len(keywords) == 0:
		return ContactTagPredicate(c.Tags), nil
	case len(c.Tags) == 0:
		return ContactKeywordPredicate(keywords), nil
	}
	return both(ContactKeywordPredicate(keywords), ContactTagPredicate(c.Tags)), nil
}

// FindEvents shows the events matching any of Keywords and all of Tags.
type FindEvents struct {
	Keywords []string
	Tags     []string
}

// Execute implements Command.
func (c FindEvents) Execute(m Model) (Feedback, error) {
	pred, err := c.predicate()
	if err != nil {
		return Feedback{}, err
	}
	v := m.EventView()
	v.SetFilter(pred)
	return listed(msgEventsListed, v.Len()), nil
}

func (c FindEvents) predicate() (projection.Predicate[types.Event], error) {
	keywords := cleanKeywords(c.Keywords)
	switch {
	case len(keywords) == 0 && len(c.Tags) == 0:
		return nil, fail(ErrNoKeywords, msgNoKeywords)
	case len(keywords) == 0:
		return EventTagPredicate(c.Tags), nil
	case len(c.Tags) == 0:
		return EventKeywordPredicate(keywords), nil
	}
	return both(EventKeywordPredicate(keywords), EventTagPredicate(c.Tags)), nil
}

// ShowContact narrows the contact view to one contact.
type ShowContact struct {
	ID types.ContactID
}

// Execute implements Command.
func (c ShowContact) Execute(m Model) (Feedback, error) {
	x, ok := m.Contact(c.ID)
	if !ok {
		return Feedback{}, fail(fmt.Errorf("show contact: %w", types.ErrNotFound), msgContactNotFound, c.ID)
	}
	m.ContactView().SetFilter(func(y types.Contact) bool { return y.ID() == c.ID })
	return listed(msgContactShown, describeContact(x)), nil
}

// ShowEvent narrows the event view to one event.
type ShowEvent struct {
	ID types.EventID
}

// Execute implements Command.
func (c ShowEvent) Execute(m Model) (Feedback, error) {
	x, ok := m.Event(c.ID)
	if !ok {
		return Feedback{}, fail(fmt.Errorf("show event: %w", types.ErrNotFound), msgEventNotFound, c.ID)
	}
	m.EventView().SetFilter(func(y types.Event) bool { return y.ID() == c.ID })
	return listed(msgEventShown, describeEvent(x)), nil
}

// Clear empties the roster.
type Clear struct{}

// Execute implements Command.
func (Clear) Execute(m Model) (Feedback, error) {
	if err := m.Load(types.Snapshot{}); err != nil {
		return Feedback{}, wrapSystem("clear", err)
	}
	return mutated(msgCleared), nil
}
