package coordinator

import (
	"slices"
	"sort"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// contactSnapshot builds the relationship snapshot of contact id from the
// index, in event store order.
func (c *Coordinator) contactSnapshot(id types.ContactID) []types.Participation {
	links := c.links.LinksForContact(id)
	if len(links) == 0 {
		return nil
	}
	sort.SliceStable(links, func(i, j int) bool {
		return c.eventPosition(links[i].Event) < c.eventPosition(links[j].Event)
	})
	out := make([]types.Participation, len(links))
	for i, l := range links {
		out[i] = types.Participation{Event: l.Event, Status: l.Status}
	}
	return out
}

// eventSnapshot builds the relationship snapshot of event id from the index,
// in contact store order.
func (c *Coordinator) eventSnapshot(id types.EventID) []types.Participant {
	links := c.orderedEventLinks(id)
	if len(links) == 0 {
		return nil
	}
	out := make([]types.Participant, len(links))
	for i, l := range links {
		contact, _ := c.contacts.Get(l.Contact)
		out[i] = types.Participant{Contact: l.Contact, Name: contact.Name, Status: l.Status}
	}
	return out
}

// orderedEventLinks returns event id's links in contact store order.
func (c *Coordinator) orderedEventLinks(id types.EventID) []types.ParticipantLink {
	links := c.links.LinksForEvent(id)
	sort.SliceStable(links, func(i, j int) bool {
		return c.contactPosition(links[i].Contact) < c.contactPosition(links[j].Contact)
	})
	return links
}

func (c *Coordinator) contactPosition(id types.ContactID) int {
	p, ok := c.contacts.Position(id)
	if !ok {
		return -1
	}
	return p
}

func (c *Coordinator) eventPosition(id types.EventID) int {
	p, ok := c.events.Position(id)
	if !ok {
		return -1
	}
	return p
}

// refreshContact republishes contact id with an up-to-date snapshot by
// replacing it in its slot. Nothing is replaced when the snapshot is
// already current.
func (c *Coordinator) refreshContact(id types.ContactID) error {
	cur, ok := c.contacts.Get(id)
	if !ok {
		return breach("refresh of missing contact %s", id)
	}
	snap := c.contactSnapshot(id)
	if slices.Equal(cur.Events, snap) {
		return nil
	}
	return c.contacts.Replace(id, cur.WithEvents(snap))
}

// refreshEvent republishes event id with an up-to-date snapshot.
func (c *Coordinator) refreshEvent(id types.EventID) error {
	cur, ok := c.events.Get(id)
	if !ok {
		return breach("refresh of missing event %s", id)
	}
	snap := c.eventSnapshot(id)
	if slices.Equal(cur.Participants, snap) {
		return nil
	}
	return c.events.Replace(id, cur.WithParticipants(snap))
}

// refreshEventsOf refreshes every event named in links.
func (c *Coordinator) refreshEventsOf(links []types.ParticipantLink) error {
	for _, l := range links {
		if err := c.refreshEvent(l.Event); err != nil {
			return err
		}
	}
	return nil
}

// refreshContactsOf refreshes every contact named in links.
func (c *Coordinator) refreshContactsOf(links []types.ParticipantLink) error {
	for _, l := range links {
		if err := c.refreshContact(l.Contact); err != nil {
			return err
		}
	}
	return nil
}

// refreshAll refreshes every entity in both stores.
func (c *Coordinator) refreshAll() error {
	for _, id := range c.contacts.Keys() {
		if err := c.refreshContact(id); err != nil {
			return err
		}
	}
	for _, id := range c.events.Keys() {
		if err := c.refreshEvent(id); err != nil {
			return err
		}
	}
	return nil
}
