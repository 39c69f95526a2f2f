package coordinator

import (
	"fmt"
	"slices"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// breach reports a violated internal invariant. Builds tagged rosterdebug
// panic; other builds return an error wrapping ErrReference.
func breach(format string, args ...any) error {
	err := fmt.Errorf("%w: "+format, append([]any{types.ErrReference}, args...)...)
	if strictInvariants {
		panic(err)
	}
	return err
}

// CheckInvariants verifies that the stores, the index, and every embedded
// snapshot agree: identities are unique, both sides of the index match,
// no link dangles, and each snapshot equals what the index reports.
func (c *Coordinator) CheckInvariants() error {
	if err := checkUnique(c.contacts.Keys()); err != nil {
		return fmt.Errorf("contact store: %w", err)
	}
	if err := checkUnique(c.events.Keys()); err != nil {
		return fmt.Errorf("event store: %w", err)
	}
	if err := c.links.Verify(); err != nil {
		return err
	}
	for _, l := range c.links.All() {
		if !c.contacts.Contains(l.Contact) {
			return fmt.Errorf("link %s/%s: %w", l.Contact, l.Event, types.ErrReference)
		}
		if !c.events.Contains(l.Event) {
			return fmt.Errorf("link %s/%s: %w", l.Contact, l.Event, types.ErrReference)
		}
	}
	for _, ct := range c.contacts.List() {
		if want := c.contactSnapshot(ct.ID()); !slices.Equal(ct.Events, want) {
			return fmt.Errorf("contact %s: stale snapshot %v, index has %v", ct.ID(), ct.Events, want)
		}
	}
	for _, ev := range c.events.List() {
		if want := c.eventSnapshot(ev.ID()); !slices.Equal(ev.Participants, want) {
			return fmt.Errorf("event %s: stale snapshot %v, index has %v", ev.ID(), ev.Participants, want)
		}
	}
	return nil
}

func checkUnique[K comparable](keys []K) error {
	seen := make(map[K]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			return fmt.Errorf("%w: %v", types.ErrDuplicateIdentity, k)
		}
		seen[k] = true
	}
	return nil
}
