package booking

import (
	"context"
	"time"

	"github.com/wlong0711/sporthall/internal/model"
	"github.com/wlong0711/sporthall/internal/repository"
)

// CourtStore is the court lookup surface the engine needs.
type CourtStore interface {
	// GetByID returns the court or repository.ErrCourtNotFound.
	GetByID(ctx context.Context, id uint64) (model.Court, error)
	// ListActiveBySport returns the active courts of one sport.
	ListActiveBySport(ctx context.Context, sport string) ([]model.Court, error)
}

// BookingStore is the persistence surface for bookings.  Create must
// return repository.ErrDuplicateBooking when the store's uniqueness
// constraint rejects the insert; the engine translates that into the
// same rejection a pre-check would have produced.
type BookingStore interface {
	HasConfirmed(ctx context.Context, userID uint64, sport string, date time.Time) (bool, error)
	IsCourtBooked(ctx context.Context, courtID uint64, date time.Time, slot string) (bool, error)
	BookedCourtIDs(ctx context.Context, sport string, date time.Time, slot string) ([]uint64, error)
	Create(ctx context.Context, b *model.Booking) error
	GetDetail(ctx context.Context, id uint64) (repository.BookingDetail, error)
	SetStatus(ctx context.Context, id uint64, status string) error
	ListByUser(ctx context.Context, userID uint64) ([]repository.BookingDetail, error)
	List(ctx context.Context, f repository.ListFilter) ([]repository.BookingDetail, error)
}

// AvailabilityStore exposes the overrides in play for one slot.
type AvailabilityStore interface {
	FindForSlot(ctx context.Context, date time.Time, slot, sport string) ([]model.AvailabilityOverride, error)
}
