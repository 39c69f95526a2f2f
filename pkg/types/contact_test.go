package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContactID(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  ContactID
	}{
		{name: "lower case is unchanged", email: "alice@example.com", want: "alice@example.com"},
		{name: "upper case is folded", email: "Alice@Example.COM", want: "alice@example.com"},
		{name: "surrounding space is trimmed", email: "  bob@example.com\t", want: "bob@example.com"},
		{name: "decomposed accents are composed", email: "jose\u0301@example.com", want: "jos\u00e9@example.com"},
		{name: "empty stays empty", email: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Contact{Name: "x", Email: tt.email}
			assert.Equal(t, tt.want, c.ID())
		})
	}
}

func TestContactValidate(t *testing.T) {
	assert.NoError(t, Contact{Name: "Alice", Email: "alice@example.com"}.Validate())
	assert.ErrorIs(t, Contact{Name: " ", Email: "alice@example.com"}.Validate(), ErrInvalidData)
	assert.ErrorIs(t, Contact{Name: "Alice"}.Validate(), ErrInvalidData)
}

func TestContactCloneIsIndependent(t *testing.T) {
	orig := Contact{
		Name:   "Alice",
		Email:  "alice@example.com",
		Tags:   []string{"friend"},
		Events: []Participation{{Event: "Meeting", Status: StatusUnknown}},
	}

	cp := orig.Clone()
	cp.Tags[0] = "colleague"
	cp.Events[0].Status = StatusAvailable

	assert.Equal(t, "friend", orig.Tags[0], "clone must not share Tags")
	assert.Equal(t, StatusUnknown, orig.Events[0].Status, "clone must not share Events")
}

func TestContactWithEvents(t *testing.T) {
	orig := Contact{Name: "Alice", Email: "alice@example.com"}
	events := []Participation{{Event: "Meeting", Status: StatusAvailable}}

	got := orig.WithEvents(events)
	events[0].Status = StatusUnavailable

	assert.Empty(t, orig.Events, "receiver is not modified")
	p, ok := got.Participation("Meeting")
	assert.True(t, ok)
	assert.Equal(t, StatusAvailable, p.Status, "snapshot is copied, not aliased")

	_, ok = got.Participation("Party")
	assert.False(t, ok)
}

func TestContactHasTag(t *testing.T) {
	c := Contact{Tags: []string{"Friend", "neighbour"}}
	assert.True(t, c.HasTag("friend"))
	assert.True(t, c.HasTag("NEIGHBOUR"))
	assert.False(t, c.HasTag("colleague"))
}
