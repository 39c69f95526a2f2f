package sqlite

// JSON record structures that mirror the JSONL file format. Identity keys
// are not stored: they are derived from email and name on load.

// contactJSON represents a contact in contacts.jsonl.
type contactJSON struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Address string   `json:"address"`
	Tags    []string `json:"tags"`
}

// eventJSON represents an event in events.jsonl. Date is YYYY-MM-DD or empty.
type eventJSON struct {
	Name    string   `json:"name"`
	Date    string   `json:"date"`
	Address string   `json:"address"`
	Status  string   `json:"status"`
	Tags    []string `json:"tags"`
}

// participantJSON represents one participation link in participants.jsonl.
type participantJSON struct {
	LinkID  string `json:"link_id"`
	Contact string `json:"contact"`
	Event   string `json:"event"`
	Status  string `json:"status"`
}
