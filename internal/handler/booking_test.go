package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wlong0711/sporthall/internal/booking"
	"github.com/wlong0711/sporthall/internal/model"
	"github.com/wlong0711/sporthall/internal/repository"
)

// Handler tests run the real engine over in-memory stores and a fixed
// clock (Tuesday 2026-03-10 13:00 UTC), so status codes and messages
// are exercised end to end without a database.

type stubCourts struct{ courts []model.Court }

func (s *stubCourts) GetByID(_ context.Context, id uint64) (model.Court, error) {
	for _, c := range s.courts {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Court{}, repository.ErrCourtNotFound
}

func (s *stubCourts) ListActiveBySport(_ context.Context, sport string) ([]model.Court, error) {
	out := make([]model.Court, 0)
	for _, c := range s.courts {
		if c.Sport == sport && c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

type stubBookings struct {
	courts *stubCourts
	rows   []model.Booking
}

func (s *stubBookings) HasConfirmed(_ context.Context, userID uint64, sport string, date time.Time) (bool, error) {
	for _, b := range s.rows {
		if b.UserID == userID && b.Sport == sport && b.Date.Equal(date) && b.Status == model.StatusConfirmed {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubBookings) IsCourtBooked(_ context.Context, courtID uint64, date time.Time, slot string) (bool, error) {
	for _, b := range s.rows {
		if b.CourtID == courtID && b.Date.Equal(date) && b.TimeSlot == slot && b.Status == model.StatusConfirmed {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubBookings) BookedCourtIDs(_ context.Context, sport string, date time.Time, slot string) ([]uint64, error) {
	var ids []uint64
	for _, b := range s.rows {
		if b.Sport == sport && b.Date.Equal(date) && b.TimeSlot == slot && b.Status == model.StatusConfirmed {
			ids = append(ids, b.CourtID)
		}
	}
	return ids, nil
}

func (s *stubBookings) Create(_ context.Context, b *model.Booking) error {
	b.ID = uint64(len(s.rows) + 1)
	b.CreatedAt = time.Now()
	s.rows = append(s.rows, *b)
	return nil
}

func (s *stubBookings) GetDetail(_ context.Context, id uint64) (repository.BookingDetail, error) {
	for _, b := range s.rows {
		if b.ID == id {
			c, _ := s.courts.GetByID(context.Background(), b.CourtID)
			return repository.BookingDetail{
				ID:           b.ID,
				UserID:       b.UserID,
				Sport:        b.Sport,
				Court:        repository.CourtRef{ID: c.ID, Name: c.Name, Sport: c.Sport},
				Date:         b.Date.Format("2006-01-02"),
				TimeSlot:     b.TimeSlot,
				Status:       b.Status,
				Participants: b.Participants,
				CreatedAt:    b.CreatedAt,
			}, nil
		}
	}
	return repository.BookingDetail{}, repository.ErrBookingNotFound
}

func (s *stubBookings) SetStatus(_ context.Context, id uint64, status string) error {
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Status = status
			return nil
		}
	}
	return repository.ErrBookingNotFound
}

func (s *stubBookings) ListByUser(ctx context.Context, userID uint64) ([]repository.BookingDetail, error) {
	out := make([]repository.BookingDetail, 0)
	for _, b := range s.rows {
		if b.UserID == userID {
			d, _ := s.GetDetail(ctx, b.ID)
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *stubBookings) List(ctx context.Context, _ repository.ListFilter) ([]repository.BookingDetail, error) {
	out := make([]repository.BookingDetail, 0)
	for _, b := range s.rows {
		d, _ := s.GetDetail(ctx, b.ID)
		out = append(out, d)
	}
	return out, nil
}

type stubOverrides struct{}

func (stubOverrides) FindForSlot(context.Context, time.Time, string, string) ([]model.AvailabilityOverride, error) {
	return nil, nil
}

func testClock() time.Time { return time.Date(2026, time.March, 10, 13, 0, 0, 0, time.UTC) }

func newTestBookingHandler() (*BookingHandler, *stubBookings) {
	courts := &stubCourts{courts: []model.Court{
		{ID: 1, Name: "Court 1", Sport: model.SportBadminton, IsActive: true},
		{ID: 4, Name: "Table 1", Sport: model.SportTableTennis, IsActive: true},
	}}
	bookings := &stubBookings{courts: courts}
	eng := booking.NewEngine(courts, bookings, stubOverrides{}, testClock)
	// nil publisher and mailer keep side channels out of the tests
	return NewBookingHandler(eng, nil, nil, nil), bookings
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string, setup func(echo.Context)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var rd *strings.Reader
	if body != "" {
		rd = strings.NewReader(body)
	} else {
		rd = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func asUser(uid float64, role string) func(echo.Context) {
	return func(c echo.Context) {
		c.Set("user_id", uid)
		c.Set("role", role)
	}
}

func wantMessage(t *testing.T, rec *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.Message != msg {
		t.Fatalf("message = %q, want %q", body.Message, msg)
	}
}

const validCreateBody = `{"sport":"badminton","courtId":1,"date":"2026-03-11","timeSlot":"14:00",` +
	`"participants":[{"name":"Alice","email":"alice@example.com"}]}`

func TestCreateBookingEndpoint(t *testing.T) {
	h, bookings := newTestBookingHandler()

	rec := doJSON(t, h.Create, http.MethodPost, "/api/bookings", validCreateBody, asUser(7, model.RoleUser))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var det repository.BookingDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &det); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if det.Status != model.StatusConfirmed || det.Court.Name != "Court 1" {
		t.Errorf("detail = %+v", det)
	}
	if len(bookings.rows) != 1 {
		t.Fatalf("persisted %d rows, want 1", len(bookings.rows))
	}
}

func TestCreateBookingEndpointRejections(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		msg    string
	}{
		{
			"weekend",
			`{"sport":"badminton","courtId":1,"date":"2026-03-14","timeSlot":"14:00","participants":[{"name":"A","email":"a@b.co"}]}`,
			http.StatusBadRequest, "Bookings are not allowed on weekends",
		},
		{
			"unknown court",
			`{"sport":"badminton","courtId":99,"date":"2026-03-11","timeSlot":"14:00","participants":[{"name":"A","email":"a@b.co"}]}`,
			http.StatusNotFound, "Court not found",
		},
		{
			"sport mismatch",
			`{"sport":"badminton","courtId":4,"date":"2026-03-11","timeSlot":"14:00","participants":[{"name":"A","email":"a@b.co"}]}`,
			http.StatusBadRequest, "Court does not match the selected sport",
		},
		{
			"missing fields",
			`{"sport":"badminton"}`,
			http.StatusBadRequest, "Please provide all required fields",
		},
		{
			"garbage date",
			`{"sport":"badminton","courtId":1,"date":"next tuesday","timeSlot":"14:00","participants":[{"name":"A","email":"a@b.co"}]}`,
			http.StatusBadRequest, "Invalid date",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestBookingHandler()
			rec := doJSON(t, h.Create, http.MethodPost, "/api/bookings", tt.body, asUser(7, model.RoleUser))
			wantMessage(t, rec, tt.status, tt.msg)
		})
	}
}

func TestCancelBookingEndpoint(t *testing.T) {
	h, _ := newTestBookingHandler()
	rec := doJSON(t, h.Create, http.MethodPost, "/api/bookings", validCreateBody, asUser(7, model.RoleUser))
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed booking: %d %s", rec.Code, rec.Body.String())
	}

	t.Run("non-owner is refused", func(t *testing.T) {
		rec := doJSON(t, h.Cancel, http.MethodPut, "/api/bookings/1/cancel", "", func(c echo.Context) {
			asUser(8, model.RoleUser)(c)
			c.SetParamNames("id")
			c.SetParamValues("1")
		})
		wantMessage(t, rec, http.StatusForbidden, "Not authorized to cancel this booking")
	})

	t.Run("owner cancels", func(t *testing.T) {
		rec := doJSON(t, h.Cancel, http.MethodPut, "/api/bookings/1/cancel", "", func(c echo.Context) {
			asUser(7, model.RoleUser)(c)
			c.SetParamNames("id")
			c.SetParamValues("1")
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
		}
		var det repository.BookingDetail
		if err := json.Unmarshal(rec.Body.Bytes(), &det); err != nil {
			t.Fatal(err)
		}
		if det.Status != model.StatusCancelled {
			t.Errorf("status = %q, want cancelled", det.Status)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := doJSON(t, h.Cancel, http.MethodPut, "/api/bookings/42/cancel", "", func(c echo.Context) {
			asUser(7, model.RoleUser)(c)
			c.SetParamNames("id")
			c.SetParamValues("42")
		})
		wantMessage(t, rec, http.StatusNotFound, "Booking not found")
	})
}

func TestMyBookingsEndpoint(t *testing.T) {
	h, _ := newTestBookingHandler()
	doJSON(t, h.Create, http.MethodPost, "/api/bookings", validCreateBody, asUser(7, model.RoleUser))

	rec := doJSON(t, h.MyBookings, http.MethodGet, "/api/bookings/my-bookings", "", asUser(7, model.RoleUser))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var list []repository.BookingDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].UserID != 7 {
		t.Errorf("list = %+v", list)
	}

	other := doJSON(t, h.MyBookings, http.MethodGet, "/api/bookings/my-bookings", "", asUser(8, model.RoleUser))
	if body := strings.TrimSpace(other.Body.String()); body != "[]" {
		t.Errorf("other user's list = %s, want []", body)
	}
}

func TestAvailableCourtsEndpoint(t *testing.T) {
	courts := &stubCourts{courts: []model.Court{
		{ID: 1, Name: "Court 1", Sport: model.SportBadminton, IsActive: true},
		{ID: 2, Name: "Court 2", Sport: model.SportBadminton, IsActive: true},
	}}
	bookings := &stubBookings{courts: courts}
	eng := booking.NewEngine(courts, bookings, stubOverrides{}, testClock)
	h := NewCourtHandler(eng, nil)

	t.Run("missing params", func(t *testing.T) {
		rec := doJSON(t, h.Available, http.MethodGet, "/api/courts/available?sport=badminton", "", nil)
		wantMessage(t, rec, http.StatusBadRequest, "Please provide sport, date, and timeSlot")
	})

	t.Run("lists open courts", func(t *testing.T) {
		rec := doJSON(t, h.Available, http.MethodGet,
			"/api/courts/available?sport=badminton&date=2026-03-11&timeSlot=14:00", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
		}
		var got []model.Court
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Errorf("available = %+v, want both courts", got)
		}
	})
}
