// Package sqlite provides the public API for the SQLite roster backend.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"log/slog"

	"github.com/mesh-intelligence/roster/internal/sqlite"
	"github.com/mesh-intelligence/roster/pkg/types"
)

// NewBackend creates a new SQLite backend instance that logs to logger, or
// to slog.Default() when logger is nil.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	backend := sqlite.NewBackend(nil)
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".roster-db",
//	})
//	defer backend.Detach()
func NewBackend(logger *slog.Logger) types.Backend {
	return sqlite.NewBackend(sqlite.WithLogger(logger))
}
