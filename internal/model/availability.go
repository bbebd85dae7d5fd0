package model

import "time"

// AvailabilityOverride is an admin-declared closure (or explicit
// re-opening) of a slot.  Scope narrows along two axes: Sport is a
// concrete sport or "all", CourtID is a concrete court or nil meaning
// every court of the sport scope.  IsAvailable=false closes the slot.
//
// At most one logical row exists per (Date, TimeSlot, Sport, CourtID);
// the repository maintains that with a find-then-write upsert rather
// than a database constraint.
type AvailabilityOverride struct {
	ID          uint64    // availability.id
	Date        time.Time // availability.date (day granularity)
	TimeSlot    string    // availability.time_slot
	Sport       string    // availability.sport ("all" or a sport)
	CourtID     *uint64   // availability.court_id (nil = all courts)
	IsAvailable bool      // availability.is_available
	Reason      string    // availability.reason
	CreatedAt   time.Time // availability.created_at
	UpdatedAt   time.Time // availability.updated_at
}
