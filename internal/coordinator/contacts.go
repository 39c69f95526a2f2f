package coordinator

import (
	"fmt"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// AddContact inserts x at the end of the contact store.
// Returns ErrDuplicateIdentity if x's email is already taken.
func (c *Coordinator) AddContact(x types.Contact) error {
	if err := x.Validate(); err != nil {
		return fmt.Errorf("add contact: %w", err)
	}
	id := x.ID()
	if c.contacts.Contains(id) {
		return fmt.Errorf("add contact: %w: %s", types.ErrDuplicateIdentity, id)
	}

	if err := c.contacts.Add(x.WithEvents(c.contactSnapshot(id))); err != nil {
		return fmt.Errorf("add contact: %w", err)
	}
	c.logger.Debug("contact added", "contact", id)
	c.publish("add-contact")
	return nil
}

// RemoveContact deletes contact id together with every participation link
// touching it, then refreshes the events those links named.
// Returns ErrNotFound if id is absent.
func (c *Coordinator) RemoveContact(id types.ContactID) (types.Contact, error) {
	if !c.contacts.Contains(id) {
		return types.Contact{}, fmt.Errorf("remove contact: %w: %s", types.ErrNotFound, id)
	}

	removedLinks := c.links.RemoveAllForContact(id)
	removed, err := c.contacts.Remove(id)
	if err != nil {
		return types.Contact{}, breach("remove contact %s: %v", id, err)
	}
	if err := c.refreshEventsOf(removedLinks); err != nil {
		return types.Contact{}, err
	}
	c.logger.Debug("contact removed", "contact", id, "links", len(removedLinks))
	c.publish("remove-contact")
	return removed, nil
}

// SetContact replaces contact old with next in the same position. When the
// email changes, every link keyed by old moves to the new identity. Events
// old takes part in are refreshed so their snapshots carry the new identity
// and name.
// Returns ErrNotFound if old is absent and ErrDuplicateIdentity if next's
// email belongs to another contact.
func (c *Coordinator) SetContact(old types.ContactID, next types.Contact) error {
	if err := next.Validate(); err != nil {
		return fmt.Errorf("set contact: %w", err)
	}
	if err := c.contacts.CheckReplace(old, next); err != nil {
		return fmt.Errorf("set contact: %w", err)
	}
	newID := next.ID()
	if err := c.links.CanRekeyContact(old, newID); err != nil {
		return breach("set contact %s: %v", old, err)
	}

	affected := c.links.LinksForContact(old)
	if err := c.links.RekeyContact(old, newID); err != nil {
		return breach("set contact %s: %v", old, err)
	}
	if err := c.contacts.Replace(old, next.WithEvents(c.contactSnapshot(newID))); err != nil {
		return breach("set contact %s: %v", old, err)
	}
	if err := c.refreshEventsOf(affected); err != nil {
		return err
	}
	if newID != old {
		c.logger.Debug("contact rekeyed", "from", old, "to", newID, "links", len(affected))
	} else {
		c.logger.Debug("contact updated", "contact", newID)
	}
	c.publish("set-contact")
	return nil
}
