package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// jsonlLoaders maps each JSONL file to the function that inserts its records.
// Entity files load before participants.
var jsonlLoaders = []struct {
	file   string
	insert func(tx *sql.Tx, records []json.RawMessage) (int, error)
}{
	{contactsJSONL, insertContacts},
	{eventsJSONL, insertEvents},
	{participantsJSONL, insertParticipants},
}

// loadAllJSONL reads each JSONL file from dataDir into the SQLite tables in
// one transaction: all files load or the database stays empty. Malformed
// lines, records that fail validation, and records that repeat a key are
// skipped. Unknown fields are ignored.
func loadAllJSONL(db *sql.DB, dataDir string, logger *slog.Logger) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, l := range jsonlLoaders {
		records, malformed, err := readJSONL(filepath.Join(dataDir, l.file))
		if err != nil {
			return fmt.Errorf("reading %s: %w", l.file, err)
		}
		inserted, err := l.insert(tx, records)
		if err != nil {
			return fmt.Errorf("loading %s: %w", l.file, err)
		}
		if skipped := malformed + len(records) - inserted; skipped > 0 {
			logger.Warn("skipped JSONL records", "file", l.file, "skipped", skipped)
		}
		logger.Debug("loaded JSONL", "file", l.file, "records", inserted)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

const insertContactSQL = `INSERT INTO contacts (contact_key, position, name, email, phone, address, tags)
VALUES (?, ?, ?, ?, ?, ?, ?)`

func insertContacts(tx *sql.Tx, records []json.RawMessage) (int, error) {
	stmt, err := tx.Prepare(insertContactSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing contact insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, rec := range records {
		var c contactJSON
		if err := json.Unmarshal(rec, &c); err != nil {
			continue
		}
		key := types.NewContactID(c.Email)
		if key == "" || strings.TrimSpace(c.Name) == "" {
			continue
		}
		tags, err := encodeTags(c.Tags)
		if err != nil {
			continue
		}
		if _, err := stmt.Exec(string(key), n, c.Name, c.Email, c.Phone, c.Address, tags); err != nil {
			continue
		}
		n++
	}
	return n, nil
}

const insertEventSQL = `INSERT INTO events (event_key, position, name, date, address, status, tags)
VALUES (?, ?, ?, ?, ?, ?, ?)`

func insertEvents(tx *sql.Tx, records []json.RawMessage) (int, error) {
	stmt, err := tx.Prepare(insertEventSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing event insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, rec := range records {
		var e eventJSON
		if err := json.Unmarshal(rec, &e); err != nil {
			continue
		}
		key := types.NewEventID(e.Name)
		if key == "" {
			continue
		}
		if _, err := parseDate(e.Date); err != nil {
			continue
		}
		tags, err := encodeTags(e.Tags)
		if err != nil {
			continue
		}
		if _, err := stmt.Exec(string(key), n, e.Name, e.Date, e.Address, e.Status, tags); err != nil {
			continue
		}
		n++
	}
	return n, nil
}

const insertParticipantSQL = `INSERT INTO participants (link_id, contact_key, event_key, status, position)
VALUES (?, ?, ?, ?, ?)`

// insertParticipants loads links without checking that both entities exist;
// dangling rows are dropped by the join in Load.
func insertParticipants(tx *sql.Tx, records []json.RawMessage) (int, error) {
	stmt, err := tx.Prepare(insertParticipantSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing participant insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, rec := range records {
		var p participantJSON
		if err := json.Unmarshal(rec, &p); err != nil {
			continue
		}
		contact := types.NewContactID(p.Contact)
		event := types.NewEventID(p.Event)
		status, err := types.ParseParticipantStatus(p.Status)
		if contact == "" || event == "" || err != nil {
			continue
		}
		linkID := p.LinkID
		if linkID == "" {
			linkID = generateUUID()
		}
		if _, err := stmt.Exec(linkID, string(contact), string(event), string(status), n); err != nil {
			continue
		}
		n++
	}
	return n, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeTags(s string) ([]string, error) {
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	if len(tags) == 0 {
		return nil, nil
	}
	return tags, nil
}

// formatDate renders t as YYYY-MM-DD, or "" for the zero time.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}
