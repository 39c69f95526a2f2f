package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/roster/pkg/types"
)

const (
	alice types.ContactID = "alice@example.com"
	bob   types.ContactID = "bob@example.com"
	carol types.ContactID = "carol@example.com"

	meeting types.EventID = "Meeting"
	party   types.EventID = "Party"
	retreat types.EventID = "Retreat"
)

// requireSymmetric fails the test if the two sides of ix disagree.
func requireSymmetric(t *testing.T, ix *Index) {
	t.Helper()
	require.NoError(t, ix.Verify())
}

func link(c types.ContactID, e types.EventID, s types.ParticipantStatus) types.ParticipantLink {
	return types.ParticipantLink{Contact: c, Event: e, Status: s}
}

func TestIndexPut(t *testing.T) {
	ix := New()

	ix.Put(alice, meeting, types.StatusUnknown)
	ix.Put(alice, party, types.StatusAvailable)
	ix.Put(bob, meeting, types.StatusUnavailable)

	requireSymmetric(t, ix)
	assert.Equal(t, 3, ix.Len())
	assert.True(t, ix.Contains(alice, meeting))
	assert.False(t, ix.Contains(bob, party))

	assert.Equal(t, []types.ParticipantLink{
		link(alice, meeting, types.StatusUnknown),
		link(alice, party, types.StatusAvailable),
	}, ix.LinksForContact(alice))
	assert.Equal(t, []types.ParticipantLink{
		link(alice, meeting, types.StatusUnknown),
		link(bob, meeting, types.StatusUnavailable),
	}, ix.LinksForEvent(meeting))
}

func TestIndexPutReplacesStatusOnBothSides(t *testing.T) {
	ix := New()
	ix.Put(alice, meeting, types.StatusUnknown)

	ix.Put(alice, meeting, types.StatusAvailable)

	requireSymmetric(t, ix)
	assert.Equal(t, 1, ix.Len())
	assert.Equal(t, types.StatusAvailable, ix.byContact[alice][meeting].Status)
	assert.Equal(t, types.StatusAvailable, ix.byEvent[meeting][alice].Status)
}

func TestIndexGet(t *testing.T) {
	ix := New()
	ix.Put(alice, meeting, types.StatusAvailable)

	got, err := ix.Get(alice, meeting)
	require.NoError(t, err)
	assert.Equal(t, link(alice, meeting, types.StatusAvailable), got)

	_, err = ix.Get(alice, party)
	assert.ErrorIs(t, err, types.ErrLinkNotFound)
	_, err = ix.Get(bob, meeting)
	assert.ErrorIs(t, err, types.ErrLinkNotFound)
}

func TestIndexRemove(t *testing.T) {
	ix := New()
	ix.Put(alice, meeting, types.StatusUnknown)
	ix.Put(bob, meeting, types.StatusUnknown)

	require.NoError(t, ix.Remove(alice, meeting))

	requireSymmetric(t, ix)
	assert.False(t, ix.Contains(alice, meeting))
	assert.Empty(t, ix.LinksForContact(alice))
	assert.NotContains(t, ix.byContact, alice, "empty contact entry is dropped")
	assert.Len(t, ix.LinksForEvent(meeting), 1)

	err := ix.Remove(alice, meeting)
	assert.ErrorIs(t, err, types.ErrLinkNotFound)
	requireSymmetric(t, ix)
	assert.Equal(t, 1, ix.Len())
}

func TestIndexRemoveAllForContact(t *testing.T) {
	ix := New()
	ix.Put(alice, meeting, types.StatusUnknown)
	ix.Put(alice, party, types.StatusAvailable)
	ix.Put(bob, party, types.StatusAvailable)

	removed := ix.RemoveAllForContact(alice)

	requireSymmetric(t, ix)
	assert.Equal(t, []types.ParticipantLink{
		link(alice, meeting, types.StatusUnknown),
		link(alice, party, types.StatusAvailable),
	}, removed)
	assert.Empty(t, ix.LinksForContact(alice))
	assert.Empty(t, ix.LinksForEvent(meeting))
	assert.NotContains(t, ix.byEvent, meeting, "event left without links is dropped")
	assert.Equal(t, []types.ParticipantLink{link(bob, party, types.StatusAvailable)}, ix.LinksForEvent(party))

	assert.Empty(t, ix.RemoveAllForContact(carol), "unknown contact removes nothing")
}

func TestIndexRemoveAllForEvent(t *testing.T) {
	ix := New()
	ix.Put(alice, meeting, types.StatusUnknown)
	ix.Put(bob, meeting, types.StatusAvailable)
	ix.Put(bob, party, types.StatusAvailable)

	removed := ix.RemoveAllForEvent(meeting)

	requireSymmetric(t, ix)
	assert.Len(t, removed, 2)
	assert.Empty(t, ix.LinksForEvent(meeting))
	assert.Empty(t, ix.LinksForContact(alice))
	assert.Equal(t, []types.ParticipantLink{link(bob, party, types.StatusAvailable)}, ix.LinksForContact(bob))
}

func TestIndexRekeyContact(t *testing.T) {
	ix := New()
	ix.Put(alice, meeting, types.StatusUnknown)
	ix.Put(alice, party, types.StatusAvailable)
	ix.Put(bob, party, types.StatusUnavailable)

	const renamed types.ContactID = "alice@work.example.com"
	require.NoError(t, ix.RekeyContact(alice, renamed))

	requireSymmetric(t, ix)
	assert.Empty(t, ix.LinksForContact(alice))
	assert.False(t, ix.Contains(alice, meeting))
	assert.Equal(t, []types.ParticipantLink{
		link(renamed, meeting, types.StatusUnknown),
		link(renamed, party, types.StatusAvailable),
	}, ix.LinksForContact(renamed))
	assert.Equal(t, []types.ParticipantLink{
		link(renamed, party, types.StatusAvailable),
		link(bob, party, types.StatusUnavailable),
	}, ix.LinksForEvent(party))
	assert.Equal(t, 3, ix.Len())
}

func TestIndexRekeyContactRefusesMerge(t *testing.T) {
	ix := New()
	ix.Put(alice, meeting, types.StatusUnknown)
	ix.Put(bob, party, types.StatusUnknown)
	before := ix.All()

	err := ix.RekeyContact(alice, bob)

	assert.ErrorIs(t, err, types.ErrDuplicateIdentity)
	assert.Equal(t, before, ix.All())
}

func TestIndexRekeyNoLinksAndSameKey(t *testing.T) {
	ix := New()
	ix.Put(alice, meeting, types.StatusUnknown)

	require.NoError(t, ix.RekeyContact(carol, "carol@new.example.com"))
	require.NoError(t, ix.RekeyContact(alice, alice))
	require.NoError(t, ix.RekeyEvent(retreat, "Offsite"))
	require.NoError(t, ix.RekeyEvent(meeting, meeting))

	requireSymmetric(t, ix)
	assert.Equal(t, []types.ParticipantLink{link(alice, meeting, types.StatusUnknown)}, ix.All())
}

func TestIndexRekeyEvent(t *testing.T) {
	ix := New()
	ix.Put(alice, meeting, types.StatusUnknown)
	ix.Put(bob, meeting, types.StatusAvailable)
	ix.Put(bob, party, types.StatusUnavailable)

	const renamed types.EventID = "Weekly Meeting"
	require.NoError(t, ix.RekeyEvent(meeting, renamed))

	requireSymmetric(t, ix)
	assert.Empty(t, ix.LinksForEvent(meeting))
	assert.Equal(t, []types.ParticipantLink{
		link(alice, renamed, types.StatusUnknown),
		link(bob, renamed, types.StatusAvailable),
	}, ix.LinksForEvent(renamed))
	assert.Equal(t, []types.ParticipantLink{
		link(bob, party, types.StatusUnavailable),
		link(bob, renamed, types.StatusAvailable),
	}, ix.LinksForContact(bob))

	assert.ErrorIs(t, ix.RekeyEvent(renamed, party), types.ErrDuplicateIdentity)
	requireSymmetric(t, ix)
}

func TestIndexReset(t *testing.T) {
	ix := New()
	ix.Put(carol, retreat, types.StatusUnknown)

	err := ix.Reset([]types.ParticipantLink{
		link(alice, meeting, types.StatusUnknown),
		link(alice, meeting, types.StatusAvailable),
	})
	assert.ErrorIs(t, err, types.ErrDuplicateLink)
	assert.Equal(t, []types.ParticipantLink{link(carol, retreat, types.StatusUnknown)}, ix.All(), "failed reset leaves the index untouched")

	require.NoError(t, ix.Reset([]types.ParticipantLink{
		link(bob, party, types.StatusAvailable),
		link(alice, meeting, types.StatusUnknown),
	}))
	requireSymmetric(t, ix)
	assert.Equal(t, []types.ParticipantLink{
		link(alice, meeting, types.StatusUnknown),
		link(bob, party, types.StatusAvailable),
	}, ix.All())
}

func TestIndexVerifyDetectsOneSidedLink(t *testing.T) {
	ix := New()
	ix.Put(alice, meeting, types.StatusUnknown)

	delete(ix.byEvent, meeting)

	assert.Error(t, ix.Verify())
}

func TestIndexVerifyDetectsStatusMismatch(t *testing.T) {
	ix := New()
	ix.Put(alice, meeting, types.StatusUnknown)

	ix.byEvent[meeting][alice] = link(alice, meeting, types.StatusAvailable)

	assert.Error(t, ix.Verify())
}
