// Package booking implements the eligibility engine: the ordered rule
// chain that admits or rejects a booking request, booking cancellation,
// and the court availability query.  It talks to storage through small
// store interfaces and reads the clock through an injected
// schedule.Clock so every rule is testable against fixed instants.
package booking

import (
	"context"
	"time"

	"github.com/wlong0711/sporthall/internal/model"
	"github.com/wlong0711/sporthall/internal/repository"
	"github.com/wlong0711/sporthall/internal/schedule"
)

// Engine evaluates booking requests against the facility rules.
type Engine struct {
	Courts    CourtStore
	Bookings  BookingStore
	Overrides AvailabilityStore
	Now       schedule.Clock
}

func NewEngine(courts CourtStore, bookings BookingStore, overrides AvailabilityStore, now schedule.Clock) *Engine {
	return &Engine{Courts: courts, Bookings: bookings, Overrides: overrides, Now: now}
}

// CreateRequest is a booking attempt.  Date must be day-granular.
type CreateRequest struct {
	UserID       uint64
	Sport        string
	CourtID      uint64
	Date         time.Time
	TimeSlot     string
	Participants []model.Participant
}

// CreateBooking runs the full decision chain.  The first failing check
// determines the rejection; the order below is part of the contract
// because clients key off the messages.
func (e *Engine) CreateBooking(ctx context.Context, req CreateRequest) (repository.BookingDetail, error) {
	var none repository.BookingDetail

	if req.Sport == "" || req.CourtID == 0 || req.Date.IsZero() || req.TimeSlot == "" || len(req.Participants) == 0 {
		return none, validation("Please provide all required fields")
	}
	if !model.ValidSport(req.Sport) {
		return none, validation("Invalid sport")
	}
	if !schedule.ValidSlot(req.TimeSlot) {
		return none, validation("Invalid time slot")
	}
	if err := validateParticipants(req.Participants); err != nil {
		return none, err
	}

	date := schedule.DateOnly(req.Date)
	now := e.Now()
	if schedule.IsWeekend(date) {
		return none, policy("Bookings are not allowed on weekends")
	}
	if schedule.IsPastDate(date, now) {
		return none, policy("Cannot book past dates")
	}
	if !schedule.IsCurrentMonth(date, now) {
		return none, policy("Bookings are only allowed for the current month")
	}
	if schedule.IsSlotExpired(date, req.TimeSlot, now) {
		return none, policy("This time slot has already passed")
	}

	court, err := e.Courts.GetByID(ctx, req.CourtID)
	if err != nil {
		if err == repository.ErrCourtNotFound {
			return none, notFound("Court not found")
		}
		return none, err
	}
	if court.Sport != req.Sport {
		return none, policy("Court does not match the selected sport")
	}

	taken, err := e.Bookings.HasConfirmed(ctx, req.UserID, req.Sport, date)
	if err != nil {
		return none, err
	}
	if taken {
		return none, policy("You can only book one sport and one court per day")
	}

	overrides, err := e.Overrides.FindForSlot(ctx, date, req.TimeSlot, req.Sport)
	if err != nil {
		return none, err
	}
	if ov := resolveOverride(overrides, req.Sport, req.CourtID); ov != nil && !ov.IsAvailable {
		return none, policy("This time slot is not available")
	}

	booked, err := e.Bookings.IsCourtBooked(ctx, req.CourtID, date, req.TimeSlot)
	if err != nil {
		return none, err
	}
	if booked {
		return none, policy("This court is already booked for this time slot")
	}

	b := &model.Booking{
		UserID:       req.UserID,
		Sport:        req.Sport,
		CourtID:      req.CourtID,
		Date:         date,
		TimeSlot:     req.TimeSlot,
		Status:       model.StatusConfirmed,
		Participants: req.Participants,
	}
	if err := e.Bookings.Create(ctx, b); err != nil {
		// The unique key on (user, sport, date, court) is the backstop
		// for a race lost between the checks above and this insert.
		if err == repository.ErrDuplicateBooking {
			return none, conflict("You already have a booking for this sport, date, and court")
		}
		return none, err
	}

	return repository.BookingDetail{
		ID:     b.ID,
		UserID: b.UserID,
		Sport:  b.Sport,
		Court: repository.CourtRef{
			ID:    court.ID,
			Name:  court.Name,
			Sport: court.Sport,
		},
		Date:         schedule.FormatDate(date),
		TimeSlot:     b.TimeSlot,
		Status:       b.Status,
		Participants: b.Participants,
		CreatedAt:    b.CreatedAt,
	}, nil
}

// CancelBooking moves a booking to cancelled.  Only the owner or an
// admin may cancel; cancelling an already-cancelled booking is a no-op
// so the transition stays monotonic.
func (e *Engine) CancelBooking(ctx context.Context, id, requesterID uint64, role string) (repository.BookingDetail, error) {
	det, err := e.Bookings.GetDetail(ctx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return repository.BookingDetail{}, notFound("Booking not found")
		}
		return repository.BookingDetail{}, err
	}
	if det.UserID != requesterID && role != model.RoleAdmin {
		return repository.BookingDetail{}, forbidden("Not authorized to cancel this booking")
	}
	if det.Status == model.StatusCancelled {
		return det, nil
	}
	if err := e.Bookings.SetStatus(ctx, id, model.StatusCancelled); err != nil {
		return repository.BookingDetail{}, err
	}
	det.Status = model.StatusCancelled
	return det, nil
}

// ListUserBookings returns the caller's bookings, newest date first.
func (e *Engine) ListUserBookings(ctx context.Context, userID uint64) ([]repository.BookingDetail, error) {
	return e.Bookings.ListByUser(ctx, userID)
}

// ListAllBookings returns bookings across all users matching the filter.
func (e *Engine) ListAllBookings(ctx context.Context, f repository.ListFilter) ([]repository.BookingDetail, error) {
	return e.Bookings.List(ctx, f)
}
