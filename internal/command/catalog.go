package command

import (
	_ "embed"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Message keys. Every key must have an entry in messages.en.yaml.
const (
	msgContactAdded       = "contact.added"
	msgContactEdited      = "contact.edited"
	msgContactDeleted     = "contact.deleted"
	msgContactDuplicate   = "contact.duplicate"
	msgContactNotFound    = "contact.not_found"
	msgContactInvalid     = "contact.invalid"
	msgContactsListed     = "contacts.listed"
	msgContactShown       = "contact.shown"
	msgEventAdded         = "event.added"
	msgEventEdited        = "event.edited"
	msgEventDeleted       = "event.deleted"
	msgEventDuplicate     = "event.duplicate"
	msgEventNotFound      = "event.not_found"
	msgEventInvalid       = "event.invalid"
	msgEventsListed       = "events.listed"
	msgEventShown         = "event.shown"
	msgDateInvalid        = "event.invalid_date"
	msgParticipantAdded   = "participant.added"
	msgParticipantRemoved = "participant.removed"
	msgParticipantStatus  = "participant.status_set"
	msgParticipantExists  = "participant.duplicate"
	msgParticipantMissing = "participant.not_found"
	msgStatusInvalid      = "participant.invalid_status"
	msgNothingToEdit      = "edit.nothing"
	msgNoKeywords         = "find.no_keywords"
	msgCleared            = "roster.cleared"
)

//go:embed messages.en.yaml
var englishCatalog []byte

var printer = mustRegister(language.English, englishCatalog)

// mustRegister loads a YAML key/format map into the x/text catalog for tag.
func mustRegister(tag language.Tag, data []byte) *message.Printer {
	messages, err := parseCatalog(data)
	if err != nil {
		panic(fmt.Sprintf("command: %v", err))
	}
	for key, format := range messages {
		if err := message.SetString(tag, key, format); err != nil {
			panic(fmt.Sprintf("command: register %s: %v", key, err))
		}
	}
	return message.NewPrinter(tag)
}

func parseCatalog(data []byte) (map[string]string, error) {
	var messages map[string]string
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("parse message catalog: %w", err)
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("parse message catalog: no messages")
	}
	return messages, nil
}

func text(key string, args ...any) string {
	return printer.Sprintf(key, args...)
}
