// Package types defines the Contact and Event entities, the participation link
// that joins them, the Backend interface, and the standard error values for
// the roster storage system.
package types
