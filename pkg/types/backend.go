package types

import "errors"

// Backend defines the interface for persisting a roster.
// Callers attach to a backend, load or save whole snapshots, and detach when done.
type Backend interface {
	// Attach connects the Backend to the storage described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Load reads the stored roster. Contacts and events come back in their
	// stored order; participant links are grouped by event in participant order.
	Load() (Snapshot, error)

	// Save replaces the stored roster with snapshot.
	Save(snapshot Snapshot) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, Load and Save return ErrBackendDetached.
	Detach() error
}

// Snapshot is the persistable form of a roster: both entity lists in display
// order and every participation link.
type Snapshot struct {
	Contacts []Contact         `json:"contacts"`
	Events   []Event           `json:"events"`
	Links    []ParticipantLink `json:"links"`
}

// Backend lifecycle errors.
var (
	ErrBackendDetached = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)
