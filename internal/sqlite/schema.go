package sqlite

// Schema DDL. Each table keeps a position column so the stored order of
// contacts, events, and participants survives a round trip.
const (
	createContacts = `CREATE TABLE contacts (
    contact_key TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone TEXT NOT NULL DEFAULT '',
    address TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '[]'
);`

	createEvents = `CREATE TABLE events (
    event_key TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    date TEXT NOT NULL DEFAULT '',
    address TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '[]'
);`

	createParticipants = `CREATE TABLE participants (
    link_id TEXT PRIMARY KEY,
    contact_key TEXT NOT NULL,
    event_key TEXT NOT NULL,
    status TEXT NOT NULL,
    position INTEGER NOT NULL
);`
)

// Index DDL.
const (
	idxContactsPosition     = `CREATE INDEX idx_contacts_position ON contacts(position);`
	idxEventsPosition       = `CREATE INDEX idx_events_position ON events(position);`
	idxParticipantsUnique   = `CREATE UNIQUE INDEX idx_participants_unique ON participants(contact_key, event_key);`
	idxParticipantsEventKey = `CREATE INDEX idx_participants_event ON participants(event_key);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createContacts,
	createEvents,
	createParticipants,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxContactsPosition,
	idxEventsPosition,
	idxParticipantsUnique,
	idxParticipantsEventKey,
}
