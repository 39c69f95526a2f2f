// Package index implements the participation index: every ParticipantLink is
// held twice, once keyed by contact and once keyed by event. Each method
// touches both sides in one call, and neither map is ever handed out.
package index

import (
	"fmt"
	"sort"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// Index is the dual-keyed association table. It is not safe for concurrent
// use; the coordinator is its only writer.
type Index struct {
	byContact map[types.ContactID]map[types.EventID]types.ParticipantLink
	byEvent   map[types.EventID]map[types.ContactID]types.ParticipantLink
}

// New returns an empty Index.
func New() *Index {
	return &Index{
		byContact: make(map[types.ContactID]map[types.EventID]types.ParticipantLink),
		byEvent:   make(map[types.EventID]map[types.ContactID]types.ParticipantLink),
	}
}

// Put inserts or replaces the link for (c, e).
func (ix *Index) Put(c types.ContactID, e types.EventID, status types.ParticipantStatus) {
	link := types.ParticipantLink{Contact: c, Event: e, Status: status}
	events, ok := ix.byContact[c]
	if !ok {
		events = make(map[types.EventID]types.ParticipantLink)
		ix.byContact[c] = events
	}
	contacts, ok := ix.byEvent[e]
	if !ok {
		contacts = make(map[types.ContactID]types.ParticipantLink)
		ix.byEvent[e] = contacts
	}
	events[e] = link
	contacts[c] = link
}

// Remove deletes the link for (c, e). Returns ErrLinkNotFound if there is none.
func (ix *Index) Remove(c types.ContactID, e types.EventID) error {
	if !ix.Contains(c, e) {
		return fmt.Errorf("%w: %s in %s", types.ErrLinkNotFound, c, e)
	}
	delete(ix.byContact[c], e)
	if len(ix.byContact[c]) == 0 {
		delete(ix.byContact, c)
	}
	delete(ix.byEvent[e], c)
	if len(ix.byEvent[e]) == 0 {
		delete(ix.byEvent, e)
	}
	return nil
}

// RemoveAllForContact deletes and returns every link touching c, sorted by event.
func (ix *Index) RemoveAllForContact(c types.ContactID) []types.ParticipantLink {
	removed := ix.LinksForContact(c)
	for _, l := range removed {
		delete(ix.byEvent[l.Event], c)
		if len(ix.byEvent[l.Event]) == 0 {
			delete(ix.byEvent, l.Event)
		}
	}
	delete(ix.byContact, c)
	return removed
}

// RemoveAllForEvent deletes and returns every link touching e, sorted by contact.
func (ix *Index) RemoveAllForEvent(e types.EventID) []types.ParticipantLink {
	removed := ix.LinksForEvent(e)
	for _, l := range removed {
		delete(ix.byContact[l.Contact], e)
		if len(ix.byContact[l.Contact]) == 0 {
			delete(ix.byContact, l.Contact)
		}
	}
	delete(ix.byEvent, e)
	return removed
}

// Get returns the link for (c, e). Returns ErrLinkNotFound if there is none.
func (ix *Index) Get(c types.ContactID, e types.EventID) (types.ParticipantLink, error) {
	link, ok := ix.byContact[c][e]
	if !ok {
		return types.ParticipantLink{}, fmt.Errorf("%w: %s in %s", types.ErrLinkNotFound, c, e)
	}
	return link, nil
}

// Contains reports whether a link exists for (c, e).
func (ix *Index) Contains(c types.ContactID, e types.EventID) bool {
	_, ok := ix.byContact[c][e]
	return ok
}

// LinksForContact returns c's links sorted by event.
func (ix *Index) LinksForContact(c types.ContactID) []types.ParticipantLink {
	events := ix.byContact[c]
	out := make([]types.ParticipantLink, 0, len(events))
	for _, l := range events {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Event < out[j].Event })
	return out
}

// LinksForEvent returns e's links sorted by contact.
func (ix *Index) LinksForEvent(e types.EventID) []types.ParticipantLink {
	contacts := ix.byEvent[e]
	out := make([]types.ParticipantLink, 0, len(contacts))
	for _, l := range contacts {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Contact < out[j].Contact })
	return out
}

// CanRekeyContact reports the error RekeyContact would return.
func (ix *Index) CanRekeyContact(from, to types.ContactID) error {
	if from == to {
		return nil
	}
	if len(ix.byContact[to]) > 0 {
		return fmt.Errorf("%w: contact %s already has links", types.ErrDuplicateIdentity, to)
	}
	return nil
}

// RekeyContact moves every link keyed by contact from to contact to,
// keeping statuses. Refuses to merge into a contact that already has links.
func (ix *Index) RekeyContact(from, to types.ContactID) error {
	if err := ix.CanRekeyContact(from, to); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	events, ok := ix.byContact[from]
	if !ok {
		return nil
	}
	moved := make(map[types.EventID]types.ParticipantLink, len(events))
	for e, l := range events {
		l.Contact = to
		moved[e] = l
		delete(ix.byEvent[e], from)
		ix.byEvent[e][to] = l
	}
	delete(ix.byContact, from)
	ix.byContact[to] = moved
	return nil
}

// CanRekeyEvent reports the error RekeyEvent would return.
func (ix *Index) CanRekeyEvent(from, to types.EventID) error {
	if from == to {
		return nil
	}
	if len(ix.byEvent[to]) > 0 {
		return fmt.Errorf("%w: event %s already has links", types.ErrDuplicateIdentity, to)
	}
	return nil
}

// RekeyEvent moves every link keyed by event from to event to, keeping
// statuses. Refuses to merge into an event that already has links.
func (ix *Index) RekeyEvent(from, to types.EventID) error {
	if err := ix.CanRekeyEvent(from, to); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	contacts, ok := ix.byEvent[from]
	if !ok {
		return nil
	}
	moved := make(map[types.ContactID]types.ParticipantLink, len(contacts))
	for c, l := range contacts {
		l.Event = to
		moved[c] = l
		delete(ix.byContact[c], from)
		ix.byContact[c][to] = l
	}
	delete(ix.byEvent, from)
	ix.byEvent[to] = moved
	return nil
}

// Reset replaces every link with links. Returns ErrDuplicateLink, leaving the
// index untouched, if a (contact, event) pair repeats.
func (ix *Index) Reset(links []types.ParticipantLink) error {
	next := New()
	for _, l := range links {
		if next.Contains(l.Contact, l.Event) {
			return fmt.Errorf("%w: %s in %s", types.ErrDuplicateLink, l.Contact, l.Event)
		}
		next.Put(l.Contact, l.Event, l.Status)
	}
	*ix = *next
	return nil
}

// All returns every link sorted by event, then contact.
func (ix *Index) All() []types.ParticipantLink {
	var out []types.ParticipantLink
	for _, contacts := range ix.byEvent {
		for _, l := range contacts {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Event != out[j].Event {
			return out[i].Event < out[j].Event
		}
		return out[i].Contact < out[j].Contact
	})
	return out
}

// Len returns the number of links.
func (ix *Index) Len() int {
	n := 0
	for _, events := range ix.byContact {
		n += len(events)
	}
	return n
}

// Verify checks that both maps describe the same set of links and that no
// empty inner map is left behind.
func (ix *Index) Verify() error {
	for c, events := range ix.byContact {
		if len(events) == 0 {
			return fmt.Errorf("index: empty entry for contact %s", c)
		}
		for e, l := range events {
			if l.Contact != c || l.Event != e {
				return fmt.Errorf("index: link %+v stored under (%s, %s)", l, c, e)
			}
			mirror, ok := ix.byEvent[e][c]
			if !ok {
				return fmt.Errorf("index: (%s, %s) missing from event side", c, e)
			}
			if mirror != l {
				return fmt.Errorf("index: (%s, %s) differs between sides: %+v vs %+v", c, e, l, mirror)
			}
		}
	}
	for e, contacts := range ix.byEvent {
		if len(contacts) == 0 {
			return fmt.Errorf("index: empty entry for event %s", e)
		}
		for c := range contacts {
			if _, ok := ix.byContact[c][e]; !ok {
				return fmt.Errorf("index: (%s, %s) missing from contact side", c, e)
			}
		}
	}
	return nil
}
