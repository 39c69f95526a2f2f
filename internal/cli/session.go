package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/roster/internal/command"
	"github.com/mesh-intelligence/roster/internal/coordinator"
	"github.com/mesh-intelligence/roster/internal/logging"
	"github.com/mesh-intelligence/roster/internal/printer"
)

// listing selects which projection a command's output shows.
type listing int

const (
	listNone listing = iota
	listContacts
	listEvents
)

// run executes c against the stored roster: attach, load, execute, save when
// the command changed something, detach. The result is written to cmd's
// output as text or JSON.
func (a *app) run(cmd *cobra.Command, c command.Command, show listing) (err error) {
	cfg, err := a.backendConfig()
	if err != nil {
		return err
	}
	backend, err := a.newBackend(cfg)
	if err != nil {
		return err
	}
	if err := backend.Attach(cfg); err != nil {
		return sysErr("attach backend", err)
	}
	defer func() {
		if derr := backend.Detach(); derr != nil && err == nil {
			err = sysErr("detach backend", derr)
		}
	}()

	snap, err := backend.Load()
	if err != nil {
		return sysErr("load roster", err)
	}
	roster := coordinator.New(coordinator.WithLogger(logging.Component(a.logger, "coordinator")))
	if err := roster.Load(snap); err != nil {
		return sysErr("load roster", err)
	}

	fb, err := c.Execute(roster)
	if err != nil {
		if command.IsUserError(err) {
			return err
		}
		return sysErr("run command", err)
	}
	if fb.Mutated {
		if err := backend.Save(roster.Snapshot()); err != nil {
			return sysErr("save roster", err)
		}
	}
	return a.report(cmd, fb, roster, show)
}

func (a *app) report(cmd *cobra.Command, fb command.Feedback, roster *coordinator.Coordinator, show listing) error {
	if a.flagJSON {
		out := output{Message: fb.Message, Mutated: fb.Mutated}
		switch show {
		case listContacts:
			out.Contacts = roster.ContactView().Items()
		case listEvents:
			out.Events = roster.EventView().Items()
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}

	p := a.printer(cmd)
	if fb.Mutated {
		p.Success("%s", fb.Message)
	} else {
		p.Info("%s", fb.Message)
	}
	switch show {
	case listContacts:
		for i, x := range roster.ContactView().Items() {
			renderContact(p, i+1, x)
		}
	case listEvents:
		for i, x := range roster.EventView().Items() {
			renderEvent(p, i+1, x)
		}
	}
	return nil
}

func (a *app) printer(cmd *cobra.Command) *printer.Printer {
	return printer.New(cmd.OutOrStdout(), cmd.ErrOrStderr())
}
