package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wlong0711/sporthall/internal/booking"
	"github.com/wlong0711/sporthall/internal/model"
	"github.com/wlong0711/sporthall/internal/repository"
	"github.com/wlong0711/sporthall/internal/schedule"
)

// CourtHandler exposes court listing, the availability query and admin
// court creation.
type CourtHandler struct {
	Engine *booking.Engine
	Courts *repository.CourtRepo
}

func NewCourtHandler(eng *booking.Engine, courts *repository.CourtRepo) *CourtHandler {
	return &CourtHandler{Engine: eng, Courts: courts}
}

// List returns active courts, optionally filtered by ?sport.
func (h *CourtHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	courts, err := h.Courts.List(ctx, c.QueryParam("sport"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, courts)
}

// Available returns the courts still open for (?sport, ?date,
// ?timeSlot): active, not booked and not closed by an override.
func (h *CourtHandler) Available(c echo.Context) error {
	sport := c.QueryParam("sport")
	dateStr := c.QueryParam("date")
	slot := c.QueryParam("timeSlot")
	if sport == "" || dateStr == "" || slot == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Please provide sport, date, and timeSlot"})
	}
	date, err := schedule.ParseDate(dateStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid date"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	courts, err := h.Engine.AvailableCourts(ctx, sport, date, slot)
	if err != nil {
		return writeEngineErr(c, err)
	}
	return c.JSON(http.StatusOK, courts)
}

type createCourtReq struct {
	Name  string `json:"name"`
	Sport string `json:"sport"`
}

// Create adds a court.  Admin only (enforced by the route group).
func (h *CourtHandler) Create(c echo.Context) error {
	var req createCourtReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Please provide name and sport"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Sport == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Please provide name and sport"})
	}
	if !model.ValidSport(req.Sport) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid sport"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	court, err := h.Courts.Create(ctx, req.Name, req.Sport)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusCreated, court)
}
