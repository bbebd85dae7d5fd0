package handler // HTTP handlers for the booking API

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wlong0711/sporthall/internal/booking"
)

// dbTimeout bounds every database round trip issued by a handler.
const dbTimeout = 5 * time.Second

// currentUserID extracts the authenticated user's id placed in the
// context by the JWT middleware.  JSON numbers in claims decode as
// float64, so both forms are accepted.
func currentUserID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), true
	case uint64:
		return v, true
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		return n, err == nil
	}
	return 0, false
}

func currentRole(c echo.Context) string {
	if s, ok := c.Get("role").(string); ok {
		return s
	}
	return ""
}

// writeEngineErr maps an engine error onto an HTTP response.  Typed
// rejections carry their own message; anything else is an internal
// failure the client gets no detail about.
func writeEngineErr(c echo.Context, err error) error {
	var rej *booking.Reject
	if errors.As(err, &rej) {
		status := http.StatusBadRequest
		switch rej.Kind {
		case booking.KindNotFound:
			status = http.StatusNotFound
		case booking.KindForbidden:
			status = http.StatusForbidden
		}
		return c.JSON(status, echo.Map{"message": rej.Message})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
}
