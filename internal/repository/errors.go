// Package repository provides data access to the roster directory.  The
// sentinel errors defined here let the verification layer distinguish a
// normal negative lookup (email not in the roster) from an actual
// directory failure: the former tells the user their email was not
// recognized, the latter is a system problem surfaced as a generic error.
package repository

import "errors"

// ErrNotFound is returned when no roster row matches a lookup.  It is a
// normal negative result, not a failure.
var ErrNotFound = errors.New("roster record not found")
