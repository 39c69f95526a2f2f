package coordinator

import (
	"fmt"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// ResetContacts replaces the contact store with list. Links whose contact is
// not in list are dropped, and every snapshot is rebuilt.
// Returns ErrDuplicateIdentity if list repeats an email.
func (c *Coordinator) ResetContacts(list []types.Contact) error {
	keep, err := contactSet(list)
	if err != nil {
		return fmt.Errorf("reset contacts: %w", err)
	}

	var dropped []types.ParticipantLink
	for _, l := range c.links.All() {
		if !keep[l.Contact] {
			dropped = append(dropped, l)
		}
	}
	if err := c.contacts.Reset(stripContacts(list)); err != nil {
		return fmt.Errorf("reset contacts: %w", err)
	}
	for _, l := range dropped {
		if err := c.links.Remove(l.Contact, l.Event); err != nil {
			return breach("reset contacts: %v", err)
		}
	}
	if err := c.refreshAll(); err != nil {
		return err
	}
	c.logger.Debug("contacts reset", "contacts", len(list), "dropped_links", len(dropped))
	c.publish("reset-contacts")
	return nil
}

// ResetEvents replaces the event store with list. Links whose event is not in
// list are dropped, and every snapshot is rebuilt.
// Returns ErrDuplicateIdentity if list repeats a name.
func (c *Coordinator) ResetEvents(list []types.Event) error {
	keep, err := eventSet(list)
	if err != nil {
		return fmt.Errorf("reset events: %w", err)
	}

	var dropped []types.ParticipantLink
	for _, l := range c.links.All() {
		if !keep[l.Event] {
			dropped = append(dropped, l)
		}
	}
	if err := c.events.Reset(stripEvents(list)); err != nil {
		return fmt.Errorf("reset events: %w", err)
	}
	for _, l := range dropped {
		if err := c.links.Remove(l.Contact, l.Event); err != nil {
			return breach("reset events: %v", err)
		}
	}
	if err := c.refreshAll(); err != nil {
		return err
	}
	c.logger.Debug("events reset", "events", len(list), "dropped_links", len(dropped))
	c.publish("reset-events")
	return nil
}

// ResetLinks replaces every participation link with links.
// Returns ErrNotFound if a link names an absent contact or event, and
// ErrDuplicateLink if a pair repeats.
func (c *Coordinator) ResetLinks(links []types.ParticipantLink) error {
	if err := validateLinks(links, c.contacts.Contains, c.events.Contains); err != nil {
		return fmt.Errorf("reset links: %w", err)
	}
	if err := c.links.Reset(links); err != nil {
		return fmt.Errorf("reset links: %w", err)
	}
	if err := c.refreshAll(); err != nil {
		return err
	}
	c.logger.Debug("links reset", "links", len(links))
	c.publish("reset-links")
	return nil
}

// Load replaces the whole roster with snap in one step. Everything is
// validated before anything changes.
func (c *Coordinator) Load(snap types.Snapshot) error {
	contacts, err := contactSet(snap.Contacts)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	events, err := eventSet(snap.Events)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	hasContact := func(id types.ContactID) bool { return contacts[id] }
	hasEvent := func(id types.EventID) bool { return events[id] }
	if err := validateLinks(snap.Links, hasContact, hasEvent); err != nil {
		return fmt.Errorf("load: %w", err)
	}

	if err := c.contacts.Reset(stripContacts(snap.Contacts)); err != nil {
		return breach("load: %v", err)
	}
	if err := c.events.Reset(stripEvents(snap.Events)); err != nil {
		return breach("load: %v", err)
	}
	if err := c.links.Reset(snap.Links); err != nil {
		return breach("load: %v", err)
	}
	if err := c.refreshAll(); err != nil {
		return err
	}
	c.logger.Debug("roster loaded",
		"contacts", len(snap.Contacts),
		"events", len(snap.Events),
		"links", len(snap.Links))
	c.publish("load")
	return nil
}

// Snapshot returns the roster in persistable form: contacts and events in
// display order, links grouped by event in participant order.
func (c *Coordinator) Snapshot() types.Snapshot {
	snap := types.Snapshot{
		Contacts: c.contacts.List(),
		Events:   c.events.List(),
		Links:    make([]types.ParticipantLink, 0, c.links.Len()),
	}
	for _, id := range c.events.Keys() {
		snap.Links = append(snap.Links, c.orderedEventLinks(id)...)
	}
	return snap
}

func contactSet(list []types.Contact) (map[types.ContactID]bool, error) {
	set := make(map[types.ContactID]bool, len(list))
	for _, x := range list {
		if err := x.Validate(); err != nil {
			return nil, fmt.Errorf("contact %q: %w", x.Email, err)
		}
		id := x.ID()
		if set[id] {
			return nil, fmt.Errorf("%w: %s", types.ErrDuplicateIdentity, id)
		}
		set[id] = true
	}
	return set, nil
}

func eventSet(list []types.Event) (map[types.EventID]bool, error) {
	set := make(map[types.EventID]bool, len(list))
	for _, x := range list {
		if err := x.Validate(); err != nil {
			return nil, fmt.Errorf("event %q: %w", x.Name, err)
		}
		id := x.ID()
		if set[id] {
			return nil, fmt.Errorf("%w: %s", types.ErrDuplicateIdentity, id)
		}
		set[id] = true
	}
	return set, nil
}

func validateLinks(links []types.ParticipantLink, hasContact func(types.ContactID) bool, hasEvent func(types.EventID) bool) error {
	type pair struct {
		c types.ContactID
		e types.EventID
	}
	seen := make(map[pair]bool, len(links))
	for _, l := range links {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("link %s/%s: %w", l.Contact, l.Event, err)
		}
		if !hasContact(l.Contact) {
			return fmt.Errorf("link %s/%s: contact %w", l.Contact, l.Event, types.ErrNotFound)
		}
		if !hasEvent(l.Event) {
			return fmt.Errorf("link %s/%s: event %w", l.Contact, l.Event, types.ErrNotFound)
		}
		p := pair{l.Contact, l.Event}
		if seen[p] {
			return fmt.Errorf("%w: %s in %s", types.ErrDuplicateLink, l.Contact, l.Event)
		}
		seen[p] = true
	}
	return nil
}

// stripContacts drops caller-supplied snapshots; refreshAll rebuilds them.
func stripContacts(list []types.Contact) []types.Contact {
	out := make([]types.Contact, len(list))
	for i, x := range list {
		out[i] = x.WithEvents(nil)
	}
	return out
}

func stripEvents(list []types.Event) []types.Event {
	out := make([]types.Event, len(list))
	for i, x := range list {
		out[i] = x.WithParticipants(nil)
	}
	return out
}
