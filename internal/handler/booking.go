package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wlong0711/sporthall/internal/booking"
	"github.com/wlong0711/sporthall/internal/model"
	"github.com/wlong0711/sporthall/internal/queue"
	"github.com/wlong0711/sporthall/internal/repository"
	"github.com/wlong0711/sporthall/internal/schedule"
)

// EventPublisher pushes a confirmation event to the message broker.
// nil disables publishing.
type EventPublisher func(ctx context.Context, ev queue.BookingConfirmedEvent) error

// ConfirmationMailer sends the booking confirmation email.  nil
// disables it.
type ConfirmationMailer interface {
	SendBookingConfirmation(toName, toEmail, sport, court, date, timeSlot string) error
}

// BookingHandler exposes the booking endpoints.  Publishing and email
// are best-effort: a confirmed booking is never rolled back because a
// side channel failed.
type BookingHandler struct {
	Engine  *booking.Engine
	Users   *repository.UserRepo
	Publish EventPublisher
	Mail    ConfirmationMailer
}

func NewBookingHandler(eng *booking.Engine, users *repository.UserRepo, pub EventPublisher, mail ConfirmationMailer) *BookingHandler {
	return &BookingHandler{Engine: eng, Users: users, Publish: pub, Mail: mail}
}

type createBookingReq struct {
	Sport        string              `json:"sport"`
	CourtID      uint64              `json:"courtId"`
	Date         string              `json:"date"`
	TimeSlot     string              `json:"timeSlot"`
	Participants []model.Participant `json:"participants"`
}

// Create runs the eligibility chain and persists the booking.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized"})
	}

	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Please provide all required fields"})
	}

	var date time.Time
	if req.Date != "" {
		var err error
		if date, err = schedule.ParseDate(req.Date); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid date"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	det, err := h.Engine.CreateBooking(ctx, booking.CreateRequest{
		UserID:       uid,
		Sport:        req.Sport,
		CourtID:      req.CourtID,
		Date:         date,
		TimeSlot:     req.TimeSlot,
		Participants: req.Participants,
	})
	if err != nil {
		return writeEngineErr(c, err)
	}

	h.notifyConfirmed(ctx, det)

	return c.JSON(http.StatusCreated, det)
}

// notifyConfirmed publishes the broker event and sends the
// confirmation email.  Failures are logged and otherwise ignored.
func (h *BookingHandler) notifyConfirmed(ctx context.Context, det repository.BookingDetail) {
	var owner model.User
	if h.Publish != nil || h.Mail != nil {
		var err error
		if owner, err = h.Users.GetByID(ctx, det.UserID); err != nil {
			log.Printf("booking: load owner %d for notification failed: %v", det.UserID, err)
			return
		}
	}

	if h.Publish != nil {
		names := make([]string, len(det.Participants))
		for i, p := range det.Participants {
			names[i] = p.Name
		}
		ev := queue.BookingConfirmedEvent{
			BookingID:    det.ID,
			UserID:       det.UserID,
			UserEmail:    owner.Email,
			Sport:        det.Sport,
			CourtID:      det.Court.ID,
			CourtName:    det.Court.Name,
			Date:         det.Date,
			TimeSlot:     det.TimeSlot,
			Participants: names,
			ConfirmedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			pctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := h.Publish(pctx, ev); err != nil {
				log.Printf("booking: publish confirmation event for %d failed: %v", det.ID, err)
			}
		}()
	}

	if h.Mail != nil {
		go func() {
			if err := h.Mail.SendBookingConfirmation(owner.Name, owner.Email, det.Sport, det.Court.Name, det.Date, det.TimeSlot); err != nil {
				log.Printf("booking: confirmation email for %d failed: %v", det.ID, err)
			}
		}()
	}
}

// MyBookings lists the caller's bookings.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	list, err := h.Engine.ListUserBookings(ctx, uid)
	if err != nil {
		return writeEngineErr(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// ListAll lists bookings across all users, optionally narrowed by
// ?date, ?sport and ?court.  Admin only (enforced by the route group).
func (h *BookingHandler) ListAll(c echo.Context) error {
	var f repository.ListFilter
	if s := c.QueryParam("date"); s != "" {
		d, err := schedule.ParseDate(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid date"})
		}
		f.Date = d
	}
	f.Sport = c.QueryParam("sport")
	if s := c.QueryParam("court"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid court id"})
		}
		f.CourtID = id
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	list, err := h.Engine.ListAllBookings(ctx, f)
	if err != nil {
		return writeEngineErr(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// Cancel moves a booking to cancelled.  Owner or admin only.
func (h *BookingHandler) Cancel(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Booking not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	det, err := h.Engine.CancelBooking(ctx, id, uid, currentRole(c))
	if err != nil {
		return writeEngineErr(c, err)
	}
	return c.JSON(http.StatusOK, det)
}
