package types

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ContactID identifies a contact: its email, trimmed, NFC-normalized and
// case-folded. Two emails that differ only in case name the same contact.
type ContactID string

// EventID identifies an event: its name, trimmed and NFC-normalized.
// Case is significant.
type EventID string

// NewContactID normalizes an email address into a ContactID.
func NewContactID(email string) ContactID {
	s := norm.NFC.String(strings.TrimSpace(email))
	// cases.Caser is stateful; build one per call.
	return ContactID(cases.Fold().String(s))
}

// NewEventID normalizes an event name into an EventID.
func NewEventID(name string) EventID {
	return EventID(norm.NFC.String(strings.TrimSpace(name)))
}

func (id ContactID) String() string { return string(id) }

func (id EventID) String() string { return string(id) }
