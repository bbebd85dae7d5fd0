// Package repository implements the persistence layer over MySQL.  It
// also defines the sentinel errors shared across repositories so that
// higher layers can distinguish failure scenarios without inspecting
// driver error strings themselves.
package repository

import "errors"

// ErrEmailExists is returned when registering with an email that is
// already taken (unique key on users.email).
var ErrEmailExists = errors.New("email already exists")

// ErrCourtNotFound is returned when a court lookup by id finds no row.
var ErrCourtNotFound = errors.New("court not found")

// ErrBookingNotFound is returned when a booking lookup by id finds no row.
var ErrBookingNotFound = errors.New("booking not found")

// ErrOverrideNotFound is returned when deleting an availability
// override that does not exist.
var ErrOverrideNotFound = errors.New("availability setting not found")

// ErrDuplicateBooking is returned when the bookings unique key
// (user_id, sport, date, court_id) rejects an insert.  It is the
// store-level signal that a check-then-insert race was lost and must be
// reported as a conflict, never as a server error.
var ErrDuplicateBooking = errors.New("duplicate booking")
