package coordinator

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/roster/pkg/types"
)

const (
	aliceID   types.ContactID = "alice@example.com"
	bobID     types.ContactID = "bob@example.com"
	meetingID types.EventID   = "Meeting"
	partyID   types.EventID   = "Party"
)

func alice() types.Contact {
	return types.Contact{Name: "Alice", Email: "alice@example.com", Phone: "555-0100", Tags: []string{"friend"}}
}

func bob() types.Contact {
	return types.Contact{Name: "Bob", Email: "bob@example.com"}
}

func meeting() types.Event {
	return types.Event{Name: "Meeting", Date: time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC), Status: "planned"}
}

func party() types.Event {
	return types.Event{Name: "Party", Date: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)}
}

// newCoordinator returns a Coordinator that logs nowhere.
func newCoordinator(t *testing.T) *Coordinator {
	t.Helper()
	return New(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

// seeded returns a coordinator holding Alice, Bob, Meeting, and Party with no links.
func seeded(t *testing.T) *Coordinator {
	t.Helper()
	c := newCoordinator(t)
	require.NoError(t, c.AddContact(alice()))
	require.NoError(t, c.AddContact(bob()))
	require.NoError(t, c.AddEvent(meeting()))
	require.NoError(t, c.AddEvent(party()))
	requireConsistent(t, c)
	return c
}

// requireConsistent fails the test if any coordinator invariant is broken.
func requireConsistent(t *testing.T, c *Coordinator) {
	t.Helper()
	require.NoError(t, c.CheckInvariants())
}

// state captures everything observable about a coordinator for
// before/after comparisons.
type state struct {
	contacts []types.Contact
	events   []types.Event
	links    []types.ParticipantLink
	snapshot types.Snapshot
}

func capture(c *Coordinator) state {
	return state{
		contacts: c.Contacts(),
		events:   c.Events(),
		links:    c.links.All(),
		snapshot: c.Snapshot(),
	}
}

// countNotifications subscribes to c and returns a pointer to the number of
// notifications received.
func countNotifications(c *Coordinator) *int {
	n := 0
	c.Subscribe(func(Notification) { n++ })
	return &n
}
