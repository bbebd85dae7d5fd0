package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wlong0711/sporthall/internal/model"
	"github.com/wlong0711/sporthall/internal/repository"
	"github.com/wlong0711/sporthall/internal/schedule"
)

// OverrideStore is the slice of the availability repository the
// handler touches.
type OverrideStore interface {
	Upsert(ctx context.Context, date time.Time, slot, sport string, courtID *uint64, isAvailable bool, reason string) (repository.OverrideRow, error)
	List(ctx context.Context, f repository.OverrideFilter) ([]repository.OverrideRow, error)
	Delete(ctx context.Context, id uint64) error
}

// CourtGetter resolves the court referenced by a court-scoped override.
type CourtGetter interface {
	GetByID(ctx context.Context, id uint64) (model.Court, error)
}

// AvailabilityHandler exposes the admin override surface: closing or
// reopening slots and inspecting the overrides in force.
type AvailabilityHandler struct {
	Overrides OverrideStore
	Courts    CourtGetter
}

func NewAvailabilityHandler(over OverrideStore, courts CourtGetter) *AvailabilityHandler {
	return &AvailabilityHandler{Overrides: over, Courts: courts}
}

type setAvailabilityReq struct {
	Date        string `json:"date"`
	TimeSlot    string `json:"timeSlot"`
	Sport       string `json:"sport"`
	CourtID     uint64 `json:"courtId"`
	IsAvailable *bool  `json:"isAvailable"`
	Reason      string `json:"reason"`
}

// Set upserts the override for (date, timeSlot, sport, courtId).
// Sport defaults to "all", courtId to the all-courts scope, and an
// omitted isAvailable means closed.  Admin only.
func (h *AvailabilityHandler) Set(c echo.Context) error {
	var req setAvailabilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Please provide date and timeSlot"})
	}
	if req.Date == "" || req.TimeSlot == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Please provide date and timeSlot"})
	}
	date, err := schedule.ParseDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid date"})
	}
	if !schedule.ValidSlot(req.TimeSlot) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid time slot"})
	}
	sport := req.Sport
	if sport == "" {
		sport = model.SportAll
	}
	if sport != model.SportAll && !model.ValidSport(sport) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid sport"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	var courtID *uint64
	if req.CourtID != 0 {
		if _, err := h.Courts.GetByID(ctx, req.CourtID); err != nil {
			if err == repository.ErrCourtNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"message": "Court not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
		}
		courtID = &req.CourtID
	}

	isAvailable := false
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	row, err := h.Overrides.Upsert(ctx, date, req.TimeSlot, sport, courtID, isAvailable, req.Reason)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, row)
}

// Get lists overrides matching the optional ?date, ?timeSlot, ?sport
// and ?courtId query filters.  Public.
func (h *AvailabilityHandler) Get(c echo.Context) error {
	var f repository.OverrideFilter
	if s := c.QueryParam("date"); s != "" {
		d, err := schedule.ParseDate(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid date"})
		}
		f.Date = d
	}
	f.TimeSlot = c.QueryParam("timeSlot")
	f.Sport = c.QueryParam("sport")
	if s := c.QueryParam("courtId"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid court id"})
		}
		f.CourtID = id
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rows, err := h.Overrides.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// Delete removes an override, restoring the slot to default-open.
// Admin only.
func (h *AvailabilityHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Availability setting not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Overrides.Delete(ctx, id); err != nil {
		if err == repository.ErrOverrideNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Availability setting not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Availability setting deleted"})
}
