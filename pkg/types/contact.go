package types

import (
	"slices"
	"strings"
)

// Contact is a person the roster tracks. Contacts are values: the stores
// never hand out a Contact that shares slices with the stored copy.
//
// Events is the contact's relationship snapshot. It is owned by the
// coordinator and rebuilt from the participation index on every refresh;
// whatever a caller puts there is discarded.
type Contact struct {
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone,omitempty"`
	Address string          `json:"address,omitempty"`
	Tags    []string        `json:"tags,omitempty"`
	Events  []Participation `json:"events,omitempty"`
}

// ID returns the contact's identity key, its normalized email.
func (c Contact) ID() ContactID {
	return NewContactID(c.Email)
}

// Validate checks the identity fields. Attribute syntax (email format,
// phone digits) is left to the caller.
func (c Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" || c.ID() == "" {
		return ErrInvalidData
	}
	return nil
}

// Clone returns a deep copy of c.
func (c Contact) Clone() Contact {
	c.Tags = slices.Clone(c.Tags)
	c.Events = slices.Clone(c.Events)
	return c
}

// WithEvents returns a copy of c whose relationship snapshot is events.
func (c Contact) WithEvents(events []Participation) Contact {
	out := c.Clone()
	out.Events = slices.Clone(events)
	return out
}

// HasTag reports whether c carries tag, ignoring case.
func (c Contact) HasTag(tag string) bool {
	return hasTag(c.Tags, tag)
}

// Participation returns the snapshot entry for event, if any.
func (c Contact) Participation(event EventID) (Participation, bool) {
	for _, p := range c.Events {
		if p.Event == event {
			return p, true
		}
	}
	return Participation{}, false
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
