package coordinator

import (
	"fmt"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// AddEvent inserts x at the end of the event store.
// Returns ErrDuplicateIdentity if x's name is already taken.
func (c *Coordinator) AddEvent(x types.Event) error {
	if err := x.Validate(); err != nil {
		return fmt.Errorf("add event: %w", err)
	}
	id := x.ID()
	if c.events.Contains(id) {
		return fmt.Errorf("add event: %w: %s", types.ErrDuplicateIdentity, id)
	}

	if err := c.events.Add(x.WithParticipants(c.eventSnapshot(id))); err != nil {
		return fmt.Errorf("add event: %w", err)
	}
	c.logger.Debug("event added", "event", id)
	c.publish("add-event")
	return nil
}

// RemoveEvent deletes event id together with every participation link
// touching it, then refreshes the contacts those links named.
// Returns ErrNotFound if id is absent.
func (c *Coordinator) RemoveEvent(id types.EventID) (types.Event, error) {
	if !c.events.Contains(id) {
		return types.Event{}, fmt.Errorf("remove event: %w: %s", types.ErrNotFound, id)
	}

	removedLinks := c.links.RemoveAllForEvent(id)
	removed, err := c.events.Remove(id)
	if err != nil {
		return types.Event{}, breach("remove event %s: %v", id, err)
	}
	if err := c.refreshContactsOf(removedLinks); err != nil {
		return types.Event{}, err
	}
	c.logger.Debug("event removed", "event", id, "links", len(removedLinks))
	c.publish("remove-event")
	return removed, nil
}

// SetEvent replaces event old with next in the same position. A changed
// name is an identity change: every link keyed by old moves to the new name
// and the participating contacts are refreshed.
// Returns ErrNotFound if old is absent and ErrDuplicateIdentity if next's
// name belongs to another event.
func (c *Coordinator) SetEvent(old types.EventID, next types.Event) error {
	if err := next.Validate(); err != nil {
		return fmt.Errorf("set event: %w", err)
	}
	if err := c.events.CheckReplace(old, next); err != nil {
		return fmt.Errorf("set event: %w", err)
	}
	newID := next.ID()
	if err := c.links.CanRekeyEvent(old, newID); err != nil {
		return breach("set event %s: %v", old, err)
	}

	affected := c.links.LinksForEvent(old)
	if err := c.links.RekeyEvent(old, newID); err != nil {
		return breach("set event %s: %v", old, err)
	}
	if err := c.events.Replace(old, next.WithParticipants(c.eventSnapshot(newID))); err != nil {
		return breach("set event %s: %v", old, err)
	}
	if err := c.refreshContactsOf(affected); err != nil {
		return err
	}
	if newID != old {
		c.logger.Debug("event rekeyed", "from", old, "to", newID, "links", len(affected))
	} else {
		c.logger.Debug("event updated", "event", newID)
	}
	c.publish("set-event")
	return nil
}
