package coordinator

import (
	"fmt"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// AddParticipant links contact to event with status and refreshes both.
// Returns ErrDuplicateLink if the pair is already linked; use
// SetParticipantStatus to change an existing link. Both entities must exist:
// a missing one is an ErrReference breach, since callers are expected to have
// resolved them through this coordinator first.
func (c *Coordinator) AddParticipant(contact types.ContactID, event types.EventID, status types.ParticipantStatus) error {
	if !status.Valid() {
		return fmt.Errorf("add participant: %w: %q", types.ErrInvalidStatus, status)
	}
	if err := c.checkReferences(contact, event); err != nil {
		return err
	}
	if c.links.Contains(contact, event) {
		return fmt.Errorf("add participant: %w: %s in %s", types.ErrDuplicateLink, contact, event)
	}

	c.links.Put(contact, event, status)
	if err := c.refreshPair(contact, event); err != nil {
		return err
	}
	c.logger.Debug("participant added", "contact", contact, "event", event, "status", status)
	c.publish("add-participant")
	return nil
}

// RemoveParticipant unlinks contact from event and refreshes both.
// Returns ErrLinkNotFound if the pair is not linked.
func (c *Coordinator) RemoveParticipant(contact types.ContactID, event types.EventID) error {
	if !c.links.Contains(contact, event) {
		return fmt.Errorf("remove participant: %w: %s in %s", types.ErrLinkNotFound, contact, event)
	}

	if err := c.links.Remove(contact, event); err != nil {
		return breach("remove participant %s in %s: %v", contact, event, err)
	}
	if err := c.refreshPair(contact, event); err != nil {
		return err
	}
	c.logger.Debug("participant removed", "contact", contact, "event", event)
	c.publish("remove-participant")
	return nil
}

// SetParticipantStatus changes the status of an existing link and refreshes
// both sides. Returns ErrLinkNotFound if the pair is not linked.
func (c *Coordinator) SetParticipantStatus(contact types.ContactID, event types.EventID, status types.ParticipantStatus) error {
	if !status.Valid() {
		return fmt.Errorf("set participant status: %w: %q", types.ErrInvalidStatus, status)
	}
	if !c.links.Contains(contact, event) {
		return fmt.Errorf("set participant status: %w: %s in %s", types.ErrLinkNotFound, contact, event)
	}

	c.links.Put(contact, event, status)
	if err := c.refreshPair(contact, event); err != nil {
		return err
	}
	c.logger.Debug("participant status set", "contact", contact, "event", event, "status", status)
	c.publish("set-participant-status")
	return nil
}

func (c *Coordinator) checkReferences(contact types.ContactID, event types.EventID) error {
	if !c.contacts.Contains(contact) {
		return breach("contact %s is not in the store", contact)
	}
	if !c.events.Contains(event) {
		return breach("event %s is not in the store", event)
	}
	return nil
}

func (c *Coordinator) refreshPair(contact types.ContactID, event types.EventID) error {
	if err := c.refreshContact(contact); err != nil {
		return err
	}
	return c.refreshEvent(event)
}
