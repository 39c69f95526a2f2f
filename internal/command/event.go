package command

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// DateLayout is the date format events are shown and entered in.
const DateLayout = time.DateOnly

// ErrInvalidDate is returned by ParseDate.
var ErrInvalidDate = errors.New("invalid date")

// ParseDate reads a date in DateLayout. An empty string is the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fail(fmt.Errorf("%w: %v", ErrInvalidDate, err), msgDateInvalid, s)
	}
	return t, nil
}

// AddEvent adds Event to the end of the event list.
type AddEvent struct {
	Event types.Event
}

// Execute implements Command.
func (c AddEvent) Execute(m Model) (Feedback, error) {
	err := m.AddEvent(c.Event)
	switch {
	case err == nil:
		return mutated(msgEventAdded, describeEvent(c.Event)), nil
	case errors.Is(err, types.ErrDuplicateIdentity):
		return Feedback{}, fail(err, msgEventDuplicate, c.Event.ID())
	case errors.Is(err, types.ErrInvalidData):
		return Feedback{}, fail(err, msgEventInvalid)
	}
	return Feedback{}, wrapSystem("add event", err)
}

// EventEdit lists the fields of an event to change. Nil fields are kept.
type EventEdit struct {
	Name    *string
	Date    *time.Time
	Address *string
	Status  *string
	Tags    *[]string
}

// Empty reports whether the edit changes nothing.
func (e EventEdit) Empty() bool {
	return e.Name == nil && e.Date == nil && e.Address == nil && e.Status == nil && e.Tags == nil
}

// Apply returns x with the edit's fields set.
func (e EventEdit) Apply(x types.Event) types.Event {
	out := x.Clone()
	if e.Name != nil {
		out.Name = *e.Name
	}
	if e.Date != nil {
		out.Date = *e.Date
	}
	if e.Address != nil {
		out.Address = *e.Address
	}
	if e.Status != nil {
		out.Status = *e.Status
	}
	if e.Tags != nil {
		out.Tags = slices.Clone(*e.Tags)
	}
	return out
}

// EditEvent changes the event identified by ID. Renaming the event moves
// every participant to the new name.
type EditEvent struct {
	ID   types.EventID
	Edit EventEdit
}

// Execute implements Command.
func (c EditEvent) Execute(m Model) (Feedback, error) {
	if c.Edit.Empty() {
		return Feedback{}, fail(ErrNothingToEdit, msgNothingToEdit)
	}
	cur, ok := m.Event(c.ID)
	if !ok {
		return Feedback{}, fail(fmt.Errorf("edit event: %w", types.ErrNotFound), msgEventNotFound, c.ID)
	}
	next := c.Edit.Apply(cur)

	err := m.SetEvent(c.ID, next)
	switch {
	case err == nil:
		return mutated(msgEventEdited, describeEvent(next)), nil
	case errors.Is(err, types.ErrDuplicateIdentity):
		return Feedback{}, fail(err, msgEventDuplicate, next.ID())
	case errors.Is(err, types.ErrInvalidData):
		return Feedback{}, fail(err, msgEventInvalid)
	case errors.Is(err, types.ErrNotFound):
		return Feedback{}, fail(err, msgEventNotFound, c.ID)
	}
	return Feedback{}, wrapSystem("edit event", err)
}

// DeleteEvent removes the event identified by ID and all of its participants.
type DeleteEvent struct {
	ID types.EventID
}

// Execute implements Command.
func (c DeleteEvent) Execute(m Model) (Feedback, error) {
	removed, err := m.RemoveEvent(c.ID)
	switch {
	case err == nil:
		return mutated(msgEventDeleted, describeEvent(removed)), nil
	case errors.Is(err, types.ErrNotFound):
		return Feedback{}, fail(err, msgEventNotFound, c.ID)
	}
	return Feedback{}, wrapSystem("delete event", err)
}

func describeEvent(x types.Event) string {
	if x.Date.IsZero() {
		return string(x.ID())
	}
	return fmt.Sprintf("%s (%s)", x.ID(), x.Date.Format(DateLayout))
}
