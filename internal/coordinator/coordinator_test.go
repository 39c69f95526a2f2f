package coordinator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/roster/pkg/types"
)

func TestScenarioAddParticipant(t *testing.T) {
	c := newCoordinator(t)
	require.NoError(t, c.AddContact(alice()))
	require.NoError(t, c.AddEvent(meeting()))

	require.NoError(t, c.AddParticipant(aliceID, meetingID, types.StatusUnknown))

	a, ok := c.Contact(aliceID)
	require.True(t, ok)
	assert.Equal(t, []types.Participation{{Event: meetingID, Status: types.StatusUnknown}}, a.Events)

	m, ok := c.Event(meetingID)
	require.True(t, ok)
	assert.Equal(t, []types.Participant{{Contact: aliceID, Name: "Alice", Status: types.StatusUnknown}}, m.Participants)
	requireConsistent(t, c)
}

func TestScenarioSetParticipantStatus(t *testing.T) {
	c := newCoordinator(t)
	require.NoError(t, c.AddContact(alice()))
	require.NoError(t, c.AddEvent(meeting()))
	require.NoError(t, c.AddParticipant(aliceID, meetingID, types.StatusUnknown))

	require.NoError(t, c.SetParticipantStatus(aliceID, meetingID, types.StatusAvailable))

	m, _ := c.Event(meetingID)
	assert.Equal(t, []types.Participant{{Contact: aliceID, Name: "Alice", Status: types.StatusAvailable}}, m.Participants)
	a, _ := c.Contact(aliceID)
	assert.Equal(t, []types.Participation{{Event: meetingID, Status: types.StatusAvailable}}, a.Events)
	link, err := c.Link(aliceID, meetingID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusAvailable, link.Status)
	requireConsistent(t, c)
}

func TestScenarioRemoveContactCascades(t *testing.T) {
	c := newCoordinator(t)
	require.NoError(t, c.AddContact(alice()))
	require.NoError(t, c.AddEvent(meeting()))
	require.NoError(t, c.AddParticipant(aliceID, meetingID, types.StatusUnknown))

	removed, err := c.RemoveContact(aliceID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", removed.Name)

	assert.Empty(t, c.Contacts())
	m, _ := c.Event(meetingID)
	assert.Empty(t, m.Participants)
	assert.Empty(t, c.LinksForContact(aliceID))
	requireConsistent(t, c)
}

func TestScenarioDuplicateContact(t *testing.T) {
	c := newCoordinator(t)
	require.NoError(t, c.AddContact(alice()))

	dup := alice()
	dup.Email = "ALICE@example.com"
	err := c.AddContact(dup)

	assert.ErrorIs(t, err, types.ErrDuplicateIdentity)
	assert.Len(t, c.Contacts(), 1)
	requireConsistent(t, c)
}

func TestAddContactInvalid(t *testing.T) {
	c := newCoordinator(t)

	err := c.AddContact(types.Contact{Name: "No Email"})

	assert.ErrorIs(t, err, types.ErrInvalidData)
	assert.Empty(t, c.Contacts())
}

func TestAddContactDiscardsCallerSnapshot(t *testing.T) {
	c := newCoordinator(t)
	x := alice()
	x.Events = []types.Participation{{Event: "Ghost", Status: types.StatusAvailable}}

	require.NoError(t, c.AddContact(x))

	got, _ := c.Contact(aliceID)
	assert.Empty(t, got.Events)
	requireConsistent(t, c)
}

func TestRemoveContactCascadeToSeveralEvents(t *testing.T) {
	c := seeded(t)
	require.NoError(t, c.AddParticipant(aliceID, meetingID, types.StatusAvailable))
	require.NoError(t, c.AddParticipant(aliceID, partyID, types.StatusUnavailable))
	require.NoError(t, c.AddParticipant(bobID, partyID, types.StatusUnknown))

	_, err := c.RemoveContact(aliceID)
	require.NoError(t, err)

	assert.Empty(t, c.LinksForContact(aliceID))
	m, _ := c.Event(meetingID)
	assert.Empty(t, m.Participants)
	p, _ := c.Event(partyID)
	assert.Equal(t, []types.Participant{{Contact: bobID, Name: "Bob", Status: types.StatusUnknown}}, p.Participants)
	requireConsistent(t, c)
}

func TestRemoveContactNotFound(t *testing.T) {
	c := seeded(t)
	before := capture(c)

	_, err := c.RemoveContact("nobody@example.com")

	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, before, capture(c))
}

func TestSetContactRekeysLinks(t *testing.T) {
	c := seeded(t)
	require.NoError(t, c.AddParticipant(aliceID, meetingID, types.StatusAvailable))
	require.NoError(t, c.AddParticipant(aliceID, partyID, types.StatusUnavailable))

	next := alice()
	next.Email = "alice@work.example.com"
	require.NoError(t, c.SetContact(aliceID, next))

	const newID types.ContactID = "alice@work.example.com"
	assert.False(t, c.HasContact(aliceID))
	assert.Empty(t, c.LinksForContact(aliceID))
	assert.False(t, c.HasLink(aliceID, meetingID))
	assert.Equal(t, []types.ParticipantLink{
		{Contact: newID, Event: meetingID, Status: types.StatusAvailable},
		{Contact: newID, Event: partyID, Status: types.StatusUnavailable},
	}, c.LinksForContact(newID))

	got, _ := c.Contact(newID)
	assert.Equal(t, []types.Participation{
		{Event: meetingID, Status: types.StatusAvailable},
		{Event: partyID, Status: types.StatusUnavailable},
	}, got.Events)
	m, _ := c.Event(meetingID)
	assert.Equal(t, []types.Participant{{Contact: newID, Name: "Alice", Status: types.StatusAvailable}}, m.Participants)

	assert.Equal(t, []types.ContactID{newID, bobID}, contactIDs(c.Contacts()), "edited contact keeps its position")
	requireConsistent(t, c)
}

func TestSetContactRenameRefreshesEvents(t *testing.T) {
	c := seeded(t)
	require.NoError(t, c.AddParticipant(aliceID, meetingID, types.StatusAvailable))

	next := alice()
	next.Name = "Alice Liddell"
	require.NoError(t, c.SetContact(aliceID, next))

	m, _ := c.Event(meetingID)
	assert.Equal(t, "Alice Liddell", m.Participants[0].Name)
	requireConsistent(t, c)
}

func TestSetContactErrors(t *testing.T) {
	tests := []struct {
		name    string
		old     types.ContactID
		next    types.Contact
		wantErr error
	}{
		{
			name:    "old contact missing",
			old:     "nobody@example.com",
			next:    types.Contact{Name: "Nobody", Email: "nobody@example.com"},
			wantErr: types.ErrNotFound,
		},
		{
			name:    "email collides with another contact",
			old:     aliceID,
			next:    types.Contact{Name: "Alice", Email: "Bob@Example.com"},
			wantErr: types.ErrDuplicateIdentity,
		},
		{
			name:    "name cleared",
			old:     aliceID,
			next:    types.Contact{Email: "alice@example.com"},
			wantErr: types.ErrInvalidData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := seeded(t)
			require.NoError(t, c.AddParticipant(aliceID, meetingID, types.StatusAvailable))
			require.NoError(t, c.AddParticipant(bobID, meetingID, types.StatusUnknown))
			before := capture(c)
			notes := countNotifications(c)

			err := c.SetContact(tt.old, tt.next)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, capture(c), "failed edit changes nothing")
			assert.Zero(t, *notes)
		})
	}
}

func TestSetEventRekeysLinks(t *testing.T) {
	c := seeded(t)
	require.NoError(t, c.AddParticipant(aliceID, meetingID, types.StatusAvailable))
	require.NoError(t, c.AddParticipant(bobID, meetingID, types.StatusUnknown))

	next := meeting()
	next.Name = "Weekly Meeting"
	require.NoError(t, c.SetEvent(meetingID, next))

	const newID types.EventID = "Weekly Meeting"
	assert.False(t, c.HasEvent(meetingID))
	assert.Empty(t, c.LinksForEvent(meetingID))
	assert.Len(t, c.LinksForEvent(newID), 2)

	a, _ := c.Contact(aliceID)
	assert.Equal(t, []types.Participation{{Event: newID, Status: types.StatusAvailable}}, a.Events)
	b, _ := c.Contact(bobID)
	assert.Equal(t, []types.Participation{{Event: newID, Status: types.StatusUnknown}}, b.Events)
	ev, _ := c.Event(newID)
	assert.Equal(t, []types.Participant{
		{Contact: aliceID, Name: "Alice", Status: types.StatusAvailable},
		{Contact: bobID, Name: "Bob", Status: types.StatusUnknown},
	}, ev.Participants)
	assert.Equal(t, []types.EventID{newID, partyID}, eventIDs(c.Events()))
	requireConsistent(t, c)
}

func TestSetEventCollision(t *testing.T) {
	c := seeded(t)
	require.NoError(t, c.AddParticipant(aliceID, partyID, types.StatusAvailable))
	before := capture(c)

	next := meeting()
	next.Name = "Party"
	err := c.SetEvent(meetingID, next)

	assert.ErrorIs(t, err, types.ErrDuplicateIdentity)
	assert.Equal(t, before, capture(c))
}

func TestRemoveEventCascades(t *testing.T) {
	c := seeded(t)
	require.NoError(t, c.AddParticipant(aliceID, meetingID, types.StatusAvailable))
	require.NoError(t, c.AddParticipant(aliceID, partyID, types.StatusUnknown))
	require.NoError(t, c.AddParticipant(bobID, meetingID, types.StatusUnavailable))

	removed, err := c.RemoveEvent(meetingID)
	require.NoError(t, err)
	assert.Equal(t, "Meeting", removed.Name)

	a, _ := c.Contact(aliceID)
	assert.Equal(t, []types.Participation{{Event: partyID, Status: types.StatusUnknown}}, a.Events)
	b, _ := c.Contact(bobID)
	assert.Empty(t, b.Events)
	assert.Empty(t, c.LinksForEvent(meetingID))
	requireConsistent(t, c)

	_, err = c.RemoveEvent(meetingID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestAddEventDuplicate(t *testing.T) {
	c := seeded(t)

	err := c.AddEvent(types.Event{Name: " Meeting "})

	assert.ErrorIs(t, err, types.ErrDuplicateIdentity)
	assert.Len(t, c.Events(), 2)
}

func TestAddParticipantDuplicateLink(t *testing.T) {
	c := seeded(t)
	require.NoError(t, c.AddParticipant(aliceID, meetingID, types.StatusUnknown))
	before := capture(c)

	err := c.AddParticipant(aliceID, meetingID, types.StatusAvailable)

	assert.ErrorIs(t, err, types.ErrDuplicateLink)
	assert.Equal(t, before, capture(c), "duplicate add does not overwrite the status")
}

func TestAddParticipantInvalidStatus(t *testing.T) {
	c := seeded(t)

	err := c.AddParticipant(aliceID, meetingID, "maybe")

	assert.ErrorIs(t, err, types.ErrInvalidStatus)
	assert.False(t, c.HasLink(aliceID, meetingID))
}

func TestRemoveParticipant(t *testing.T) {
	c := seeded(t)
	require.NoError(t, c.AddParticipant(aliceID, meetingID, types.StatusUnknown))
	require.NoError(t, c.AddParticipant(bobID, meetingID, types.StatusAvailable))

	require.NoError(t, c.RemoveParticipant(aliceID, meetingID))

	a, _ := c.Contact(aliceID)
	assert.Empty(t, a.Events)
	m, _ := c.Event(meetingID)
	assert.Equal(t, []types.Participant{{Contact: bobID, Name: "Bob", Status: types.StatusAvailable}}, m.Participants)
	requireConsistent(t, c)
}

func TestRemoveParticipantAbsentChangesNothing(t *testing.T) {
	c := seeded(t)
	require.NoError(t, c.AddParticipant(bobID, partyID, types.StatusAvailable))
	before := capture(c)
	notes := countNotifications(c)

	err := c.RemoveParticipant(aliceID, meetingID)

	assert.ErrorIs(t, err, types.ErrLinkNotFound)
	assert.Equal(t, before, capture(c))
	assert.Zero(t, *notes)
	requireConsistent(t, c)
}

func TestSetParticipantStatusErrors(t *testing.T) {
	c := seeded(t)
	require.NoError(t, c.AddParticipant(aliceID, meetingID, types.StatusUnknown))

	assert.ErrorIs(t, c.SetParticipantStatus(bobID, meetingID, types.StatusAvailable), types.ErrLinkNotFound)
	assert.ErrorIs(t, c.SetParticipantStatus(aliceID, meetingID, ""), types.ErrInvalidStatus)

	link, err := c.Link(aliceID, meetingID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusUnknown, link.Status)
}

func TestSnapshotsFollowStoreOrder(t *testing.T) {
	c := newCoordinator(t)
	require.NoError(t, c.AddContact(types.Contact{Name: "Zed", Email: "zed@example.com"}))
	require.NoError(t, c.AddContact(types.Contact{Name: "Amy", Email: "amy@example.com"}))
	require.NoError(t, c.AddEvent(types.Event{Name: "Zoo"}))
	require.NoError(t, c.AddEvent(types.Event{Name: "Aquarium"}))

	require.NoError(t, c.AddParticipant("amy@example.com", "Zoo", types.StatusUnknown))
	require.NoError(t, c.AddParticipant("zed@example.com", "Zoo", types.StatusAvailable))
	require.NoError(t, c.AddParticipant("zed@example.com", "Aquarium", types.StatusUnknown))

	zoo, _ := c.Event("Zoo")
	assert.Equal(t, []types.ContactID{"zed@example.com", "amy@example.com"},
		[]types.ContactID{zoo.Participants[0].Contact, zoo.Participants[1].Contact},
		"participants follow contact store order, not key order")

	zed, _ := c.Contact("zed@example.com")
	assert.Equal(t, []types.EventID{"Zoo", "Aquarium"},
		[]types.EventID{zed.Events[0].Event, zed.Events[1].Event})
	requireConsistent(t, c)
}

func TestNotificationsArePublishedOncePerOperation(t *testing.T) {
	c := seeded(t)
	var got []Notification
	c.Subscribe(func(n Notification) {
		// Subscribers run after the operation: the state is already consistent.
		require.NoError(t, c.CheckInvariants())
		got = append(got, n)
	})

	require.NoError(t, c.AddParticipant(aliceID, meetingID, types.StatusUnknown))
	_, err := c.RemoveContact(aliceID)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "add-participant", got[0].Op)
	assert.Len(t, got[0].Contacts, 1)
	assert.Len(t, got[0].Events, 1)
	assert.Equal(t, "remove-contact", got[1].Op)
	assert.Len(t, got[1].Contacts, 1, "removal of alice")
	assert.Len(t, got[1].Events, 1, "refresh of meeting")
}

func TestSetParticipantStatusUnchangedPublishesNothing(t *testing.T) {
	c := seeded(t)
	require.NoError(t, c.AddParticipant(aliceID, meetingID, types.StatusUnknown))
	notes := countNotifications(c)

	require.NoError(t, c.SetParticipantStatus(aliceID, meetingID, types.StatusUnknown))

	assert.Zero(t, *notes)
}

func TestSubscribeCancel(t *testing.T) {
	c := newCoordinator(t)
	n := 0
	cancel := c.Subscribe(func(Notification) { n++ })

	require.NoError(t, c.AddContact(alice()))
	cancel()
	require.NoError(t, c.AddContact(bob()))

	assert.Equal(t, 1, n)
}

func TestViewsFollowCoordinator(t *testing.T) {
	c := seeded(t)
	view := c.ContactView()
	changes := 0
	view.Subscribe(func() { changes++ })

	view.SetFilter(func(x types.Contact) bool { return x.HasTag("friend") })
	assert.Equal(t, []types.ContactID{aliceID}, contactIDs(view.Items()))

	require.NoError(t, c.AddContact(types.Contact{Name: "Carol", Email: "carol@example.com", Tags: []string{"Friend"}}))
	assert.Equal(t, []types.ContactID{aliceID, "carol@example.com"}, contactIDs(view.Items()))
	assert.Equal(t, 2, changes, "one for the filter, one for the add")

	require.NoError(t, c.AddEvent(types.Event{Name: "Picnic"}))
	assert.Equal(t, 2, changes, "event changes do not touch the contact view")
	assert.Equal(t, 3, c.EventView().Len())
}

func contactIDs(list []types.Contact) []types.ContactID {
	out := make([]types.ContactID, len(list))
	for i, x := range list {
		out[i] = x.ID()
	}
	return out
}

func eventIDs(list []types.Event) []types.EventID {
	out := make([]types.EventID, len(list))
	for i, x := range list {
		out[i] = x.ID()
	}
	return out
}
