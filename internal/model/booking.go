package model

import "time"

// Booking status values.  A booking is created confirmed and can only
// move to cancelled; it is never deleted and never reconfirmed.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Participant is one member of a booking's party (1 to 6 people).
type Participant struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Booking mirrors the `bookings` table.  Date is day-granular (the
// time-of-day component is always midnight); TimeSlot holds the
// "HH:00" start key of the fixed two-hour window.
type Booking struct {
	ID           uint64        // bookings.id
	UserID       uint64        // bookings.user_id
	Sport        string        // bookings.sport
	CourtID      uint64        // bookings.court_id
	Date         time.Time     // bookings.date
	TimeSlot     string        // bookings.time_slot
	Status       string        // bookings.status
	Participants []Participant // booking_participants rows, insert order
	CreatedAt    time.Time     // bookings.created_at
	UpdatedAt    time.Time     // bookings.updated_at
}
