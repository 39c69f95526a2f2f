package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/roster/internal/command"
	"github.com/mesh-intelligence/roster/internal/printer"
	"github.com/mesh-intelligence/roster/pkg/types"
)

// output is the --json form of a command result.
type output struct {
	Message  string          `json:"message"`
	Mutated  bool            `json:"mutated"`
	Contacts []types.Contact `json:"contacts,omitempty"`
	Events   []types.Event   `json:"events,omitempty"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return sysErr("encode output", err)
	}
	return nil
}

func renderContact(p *printer.Printer, n int, x types.Contact) {
	p.Heading("%d. %s <%s>", n, x.Name, x.Email)
	field(p, "phone", x.Phone)
	field(p, "address", x.Address)
	field(p, "tags", strings.Join(x.Tags, ", "))
	if len(x.Events) > 0 {
		parts := make([]string, len(x.Events))
		for i, e := range x.Events {
			parts[i] = fmt.Sprintf("%s (%s)", e.Event, e.Status)
		}
		field(p, "events", strings.Join(parts, ", "))
	}
}

func renderEvent(p *printer.Printer, n int, x types.Event) {
	title := fmt.Sprintf("%d. %s", n, x.Name)
	if !x.Date.IsZero() {
		title += " on " + x.Date.Format(command.DateLayout)
	}
	p.Heading("%s", title)
	field(p, "status", x.Status)
	field(p, "address", x.Address)
	field(p, "tags", strings.Join(x.Tags, ", "))
	if len(x.Participants) > 0 {
		parts := make([]string, len(x.Participants))
		for i, c := range x.Participants {
			parts[i] = fmt.Sprintf("%s (%s)", c.Name, c.Status)
		}
		field(p, "participants", strings.Join(parts, ", "))
	}
}

func field(p *printer.Printer, name, value string) {
	if value != "" {
		p.Info("   %s: %s", name, value)
	}
}
