package command

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// AddContact adds Contact to the end of the contact list.
type AddContact struct {
	Contact types.Contact
}

// Execute implements Command.
func (c AddContact) Execute(m Model) (Feedback, error) {
	err := m.AddContact(c.Contact)
	switch {
	case err == nil:
		return mutated(msgContactAdded, describeContact(c.Contact)), nil
	case errors.Is(err, types.ErrDuplicateIdentity):
		return Feedback{}, fail(err, msgContactDuplicate, c.Contact.ID())
	case errors.Is(err, types.ErrInvalidData):
		return Feedback{}, fail(err, msgContactInvalid)
	}
	return Feedback{}, wrapSystem("add contact", err)
}

// ContactEdit lists the fields of a contact to change. Nil fields are kept.
type ContactEdit struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Tags    *[]string
}

// Empty reports whether the edit changes nothing.
func (e ContactEdit) Empty() bool {
	return e.Name == nil && e.Email == nil && e.Phone == nil && e.Address == nil && e.Tags == nil
}

// Apply returns x with the edit's fields set.
func (e ContactEdit) Apply(x types.Contact) types.Contact {
	out := x.Clone()
	if e.Name != nil {
		out.Name = *e.Name
	}
	if e.Email != nil {
		out.Email = *e.Email
	}
	if e.Phone != nil {
		out.Phone = *e.Phone
	}
	if e.Address != nil {
		out.Address = *e.Address
	}
	if e.Tags != nil {
		out.Tags = slices.Clone(*e.Tags)
	}
	return out
}

// EditContact changes the contact identified by ID. Changing the email moves
// every participation of the contact to the new email.
type EditContact struct {
	ID   types.ContactID
	Edit ContactEdit
}

// Execute implements Command.
func (c EditContact) Execute(m Model) (Feedback, error) {
	if c.Edit.Empty() {
		return Feedback{}, fail(ErrNothingToEdit, msgNothingToEdit)
	}
	cur, ok := m.Contact(c.ID)
	if !ok {
		return Feedback{}, fail(fmt.Errorf("edit contact: %w", types.ErrNotFound), msgContactNotFound, c.ID)
	}
	next := c.Edit.Apply(cur)

	err := m.SetContact(c.ID, next)
	switch {
	case err == nil:
		return mutated(msgContactEdited, describeContact(next)), nil
	case errors.Is(err, types.ErrDuplicateIdentity):
		return Feedback{}, fail(err, msgContactDuplicate, next.ID())
	case errors.Is(err, types.ErrInvalidData):
		return Feedback{}, fail(err, msgContactInvalid)
	case errors.Is(err, types.ErrNotFound):
		return Feedback{}, fail(err, msgContactNotFound, c.ID)
	}
	return Feedback{}, wrapSystem("edit contact", err)
}

// DeleteContact removes the contact identified by ID and all of its
// participations.
type DeleteContact struct {
	ID types.ContactID
}

// Execute implements Command.
func (c DeleteContact) Execute(m Model) (Feedback, error) {
	removed, err := m.RemoveContact(c.ID)
	switch {
	case err == nil:
		return mutated(msgContactDeleted, describeContact(removed)), nil
	case errors.Is(err, types.ErrNotFound):
		return Feedback{}, fail(err, msgContactNotFound, c.ID)
	}
	return Feedback{}, wrapSystem("delete contact", err)
}

func describeContact(x types.Contact) string {
	return fmt.Sprintf("%s <%s>", x.Name, x.ID())
}
