package model

import "time"

// Sport values accepted by the facility.  SportAll is only valid in
// availability overrides, never on a court or booking.
const (
	SportBadminton   = "badminton"
	SportTableTennis = "table-tennis"
	SportAll         = "all"
)

// ValidSport reports whether s names a bookable sport.
func ValidSport(s string) bool {
	return s == SportBadminton || s == SportTableTennis
}

// Court describes a physical playing surface (a badminton court or a
// table-tennis table).  The sport is fixed at creation; courts are
// taken out of rotation by clearing IsActive rather than being deleted.
type Court struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Sport     string    `json:"sport"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
