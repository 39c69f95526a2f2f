package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// Load reads the stored roster. Contacts and events come back in stored
// order. Participant links whose contact or event is missing are dropped;
// the rest are grouped by event in contact order.
func (b *Backend) Load() (types.Snapshot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.Snapshot{}, types.ErrBackendDetached
	}

	contacts, err := queryContacts(b.db)
	if err != nil {
		return types.Snapshot{}, err
	}
	events, err := queryEvents(b.db)
	if err != nil {
		return types.Snapshot{}, err
	}
	links, err := queryLinks(b.db)
	if err != nil {
		return types.Snapshot{}, err
	}
	return types.Snapshot{Contacts: contacts, Events: events, Links: links}, nil
}

// Save replaces the stored roster with snap and exports every table to its
// JSONL file. Link IDs of pairs already stored are kept.
func (b *Backend) Save(snap types.Snapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrBackendDetached
	}

	if err := b.writeTables(snap); err != nil {
		return err
	}
	if err := b.exportJSONL(); err != nil {
		return fmt.Errorf("export JSONL: %w", err)
	}
	b.logger.Debug("roster saved",
		"contacts", len(snap.Contacts),
		"events", len(snap.Events),
		"links", len(snap.Links))
	return nil
}

type linkKey struct {
	contact string
	event   string
}

func (b *Backend) writeTables(snap types.Snapshot) error {
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	linkIDs, err := existingLinkIDs(tx)
	if err != nil {
		return err
	}
	for _, table := range []string{"participants", "contacts", "events"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i, c := range snap.Contacts {
		tags, err := encodeTags(c.Tags)
		if err != nil {
			return fmt.Errorf("contact %s: %w", c.ID(), err)
		}
		if _, err := tx.Exec(insertContactSQL, string(c.ID()), i, c.Name, c.Email, c.Phone, c.Address, tags); err != nil {
			return fmt.Errorf("saving contact %s: %w", c.ID(), err)
		}
	}
	for i, e := range snap.Events {
		tags, err := encodeTags(e.Tags)
		if err != nil {
			return fmt.Errorf("event %s: %w", e.ID(), err)
		}
		if _, err := tx.Exec(insertEventSQL, string(e.ID()), i, e.Name, formatDate(e.Date), e.Address, e.Status, tags); err != nil {
			return fmt.Errorf("saving event %s: %w", e.ID(), err)
		}
	}
	for i, l := range snap.Links {
		id, ok := linkIDs[linkKey{string(l.Contact), string(l.Event)}]
		if !ok {
			id = generateUUID()
		}
		if _, err := tx.Exec(insertParticipantSQL, id, string(l.Contact), string(l.Event), string(l.Status), i); err != nil {
			return fmt.Errorf("saving participant %s in %s: %w", l.Contact, l.Event, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}
	return nil
}

func existingLinkIDs(tx *sql.Tx) (map[linkKey]string, error) {
	rows, err := tx.Query("SELECT link_id, contact_key, event_key FROM participants")
	if err != nil {
		return nil, fmt.Errorf("querying link ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[linkKey]string)
	for rows.Next() {
		var id string
		var k linkKey
		if err := rows.Scan(&id, &k.contact, &k.event); err != nil {
			return nil, fmt.Errorf("scanning link id: %w", err)
		}
		ids[k] = id
	}
	return ids, rows.Err()
}

const selectContactsSQL = `SELECT name, email, phone, address, tags FROM contacts ORDER BY position`

func queryContacts(q querier) ([]types.Contact, error) {
	rows, err := q.Query(selectContactsSQL)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	var out []types.Contact
	for rows.Next() {
		var c types.Contact
		var tags string
		if err := rows.Scan(&c.Name, &c.Email, &c.Phone, &c.Address, &tags); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		if c.Tags, err = decodeTags(tags); err != nil {
			return nil, fmt.Errorf("contact %s: %w", c.ID(), err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const selectEventsSQL = `SELECT name, date, address, status, tags FROM events ORDER BY position`

func queryEvents(q querier) ([]types.Event, error) {
	rows, err := q.Query(selectEventsSQL)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var out []types.Event
	for rows.Next() {
		var e types.Event
		var date, tags string
		if err := rows.Scan(&e.Name, &date, &e.Address, &e.Status, &tags); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		if e.Date, err = parseDate(date); err != nil {
			return nil, fmt.Errorf("event %s: %w", e.ID(), err)
		}
		if e.Tags, err = decodeTags(tags); err != nil {
			return nil, fmt.Errorf("event %s: %w", e.ID(), err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

const selectLinksSQL = `SELECT p.contact_key, p.event_key, p.status
FROM participants p
JOIN contacts c ON c.contact_key = p.contact_key
JOIN events e ON e.event_key = p.event_key
ORDER BY e.position, c.position`

func queryLinks(q querier) ([]types.ParticipantLink, error) {
	rows, err := q.Query(selectLinksSQL)
	if err != nil {
		return nil, fmt.Errorf("querying participants: %w", err)
	}
	defer rows.Close()

	var out []types.ParticipantLink
	for rows.Next() {
		var contact, event, status string
		if err := rows.Scan(&contact, &event, &status); err != nil {
			return nil, fmt.Errorf("scanning participant: %w", err)
		}
		out = append(out, types.ParticipantLink{
			Contact: types.ContactID(contact),
			Event:   types.EventID(event),
			Status:  types.ParticipantStatus(status),
		})
	}
	return out, rows.Err()
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

// exportJSONL writes each table to its JSONL file in stored order.
func (b *Backend) exportJSONL() error {
	contacts, err := queryContacts(b.db)
	if err != nil {
		return err
	}
	contactRecs := make([]contactJSON, len(contacts))
	for i, c := range contacts {
		contactRecs[i] = contactJSON{Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address, Tags: nonNil(c.Tags)}
	}

	events, err := queryEvents(b.db)
	if err != nil {
		return err
	}
	eventRecs := make([]eventJSON, len(events))
	for i, e := range events {
		eventRecs[i] = eventJSON{Name: e.Name, Date: formatDate(e.Date), Address: e.Address, Status: e.Status, Tags: nonNil(e.Tags)}
	}

	participantRecs, err := queryParticipantRecords(b.db)
	if err != nil {
		return err
	}

	if err := exportFile(filepath.Join(b.dataDir, contactsJSONL), contactRecs); err != nil {
		return err
	}
	if err := exportFile(filepath.Join(b.dataDir, eventsJSONL), eventRecs); err != nil {
		return err
	}
	return exportFile(filepath.Join(b.dataDir, participantsJSONL), participantRecs)
}

func queryParticipantRecords(q querier) ([]participantJSON, error) {
	rows, err := q.Query("SELECT link_id, contact_key, event_key, status FROM participants ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying participants: %w", err)
	}
	defer rows.Close()

	var out []participantJSON
	for rows.Next() {
		var p participantJSON
		if err := rows.Scan(&p.LinkID, &p.Contact, &p.Event, &p.Status); err != nil {
			return nil, fmt.Errorf("scanning participant: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func exportFile[T any](path string, values []T) error {
	records, err := marshalRecords(values)
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return writeJSONL(path, records)
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
