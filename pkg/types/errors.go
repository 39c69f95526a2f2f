package types

import "errors"

// Roster operation errors. The command layer is the only place these are
// turned into user-facing text.
var (
	ErrDuplicateIdentity = errors.New("duplicate identity")
	ErrNotFound          = errors.New("entity not found")
	ErrLinkNotFound      = errors.New("participant link not found")
	ErrDuplicateLink     = errors.New("participant link already exists")
	ErrReference         = errors.New("participant link references a missing entity")
)

// Entity validation errors.
var (
	ErrInvalidData   = errors.New("invalid entity data")
	ErrInvalidStatus = errors.New("invalid participant status")
)
