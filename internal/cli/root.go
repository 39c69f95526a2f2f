// Package cli implements the roster command-line interface.
package cli

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/roster/internal/printer"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Version is the roster release, set at build time with
// -ldflags "-X github.com/mesh-intelligence/roster/internal/cli.Version=...".
var Version = "dev"

// app holds the state of one CLI invocation.
type app struct {
	// Global flag values.
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool

	// Set by PersistentPreRunE.
	configDir string
	config    *viper.Viper
	logger    *slog.Logger
	logCloser io.Closer
}

// NewRootCmd creates the top-level "roster" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return (&app{}).rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "roster",
		Short: "Track contacts and the events they take part in",
		Long: "Roster keeps a list of contacts and a list of events, and records which\n" +
			"contacts take part in which events and whether they can attend.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.roster)")
	root.PersistentFlags().StringVar(&a.flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.roster-db)")
	root.PersistentFlags().BoolVar(&a.flagJSON, "json", false, "output as JSON")

	root.AddCommand(newVersionCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(a.newContactCmd())
	root.AddCommand(a.newEventCmd())
	root.AddCommand(a.newParticipantCmd())
	root.AddCommand(a.newClearCmd())
	return root
}

// Run executes the CLI with args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	a := &app{}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	a.closeLog()
	if err == nil {
		return exitSuccess
	}

	p := printer.New(stdout, stderr)
	if code := exitCode(err); code == exitSysError {
		p.Error("System error", err.Error())
		return code
	}
	p.Error("Error", err.Error())
	return exitUserError
}

// Execute runs the CLI on the process arguments and exits with its code.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// systemError marks failures the user cannot fix by changing the request:
// storage, configuration, and internal errors.
type systemError struct {
	op  string
	err error
}

func (e *systemError) Error() string { return e.op + ": " + e.err.Error() }

func (e *systemError) Unwrap() error { return e.err }

func sysErr(op string, err error) error {
	return &systemError{op: op, err: err}
}

func exitCode(err error) int {
	var se *systemError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}
