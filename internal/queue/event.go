// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a court booking is confirmed.
// It carries enough detail for downstream consumers to log or notify
// without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID    uint64   `json:"booking_id"`
	UserID       uint64   `json:"user_id"`
	UserEmail    string   `json:"user_email"`
	Sport        string   `json:"sport"`
	CourtID      uint64   `json:"court_id"`
	CourtName    string   `json:"court_name"`
	Date         string   `json:"date"`
	TimeSlot     string   `json:"time_slot"`
	Participants []string `json:"participants"`
	ConfirmedAt  string   `json:"confirmed_at"`
}
