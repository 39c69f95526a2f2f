// Participation links and statuses joining contacts to events.
package types

import "strings"

// ParticipantStatus records whether a contact can attend an event.
type ParticipantStatus string

// Participant statuses.
const (
	StatusAvailable   ParticipantStatus = "available"
	StatusUnavailable ParticipantStatus = "unavailable"
	StatusUnknown     ParticipantStatus = "unknown"
)

// validParticipantStatuses is the set of recognized status values.
var validParticipantStatuses = map[ParticipantStatus]bool{
	StatusAvailable:   true,
	StatusUnavailable: true,
	StatusUnknown:     true,
}

// ParticipantStatuses lists every status in display order.
var ParticipantStatuses = []ParticipantStatus{
	StatusAvailable,
	StatusUnavailable,
	StatusUnknown,
}

// ParseParticipantStatus converts s into a ParticipantStatus, ignoring case
// and surrounding space. Returns ErrInvalidStatus for anything else.
func ParseParticipantStatus(s string) (ParticipantStatus, error) {
	st := ParticipantStatus(strings.ToLower(strings.TrimSpace(s)))
	if !validParticipantStatuses[st] {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// Valid reports whether s is one of the recognized statuses.
func (s ParticipantStatus) Valid() bool {
	return validParticipantStatuses[s]
}

func (s ParticipantStatus) String() string { return string(s) }

// ParticipantLink is the canonical record of one contact taking part in one
// event. The association index holds exactly one link per (Contact, Event).
type ParticipantLink struct {
	Contact ContactID         `json:"contact"`
	Event   EventID           `json:"event"`
	Status  ParticipantStatus `json:"status"`
}

// Validate checks that both identities are set and the status is recognized.
func (l ParticipantLink) Validate() error {
	if l.Contact == "" || l.Event == "" {
		return ErrInvalidData
	}
	if !l.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// Participation is one entry of a contact's relationship snapshot.
type Participation struct {
	Event  EventID           `json:"event"`
	Status ParticipantStatus `json:"status"`
}

// Participant is one entry of an event's relationship snapshot. Name is the
// contact's display name at the time of the last refresh.
type Participant struct {
	Contact ContactID         `json:"contact"`
	Name    string            `json:"name"`
	Status  ParticipantStatus `json:"status"`
}
