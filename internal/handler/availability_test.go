package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wlong0711/sporthall/internal/model"
	"github.com/wlong0711/sporthall/internal/repository"
)

// fakeOverrideStore keeps one row per (date, slot, sport, court scope),
// rewriting in place on a repeated key like the SQL upsert does.
type fakeOverrideStore struct {
	rows   []repository.OverrideRow
	nextID uint64
}

func sameScope(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (f *fakeOverrideStore) Upsert(_ context.Context, date time.Time, slot, sport string, courtID *uint64, isAvailable bool, reason string) (repository.OverrideRow, error) {
	day := date.Format("2006-01-02")
	for i := range f.rows {
		r := &f.rows[i]
		if r.Date == day && r.TimeSlot == slot && r.Sport == sport && sameScope(r.CourtID, courtID) {
			r.IsAvailable = isAvailable
			r.Reason = reason
			return *r, nil
		}
	}
	f.nextID++
	row := repository.OverrideRow{
		ID: f.nextID, Date: day, TimeSlot: slot, Sport: sport,
		CourtID: courtID, IsAvailable: isAvailable, Reason: reason,
	}
	f.rows = append(f.rows, row)
	return row, nil
}

func (f *fakeOverrideStore) List(_ context.Context, _ repository.OverrideFilter) ([]repository.OverrideRow, error) {
	return append([]repository.OverrideRow(nil), f.rows...), nil
}

func (f *fakeOverrideStore) Delete(_ context.Context, id uint64) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrOverrideNotFound
}

func newTestAvailabilityHandler() (*AvailabilityHandler, *fakeOverrideStore) {
	store := &fakeOverrideStore{}
	courts := &stubCourts{courts: []model.Court{
		{ID: 1, Name: "Court 1", Sport: model.SportBadminton, IsActive: true},
	}}
	return NewAvailabilityHandler(store, courts), store
}

// Repeating setAvailability with the identical key rewrites the row
// instead of appending a second one, for both the all-courts scope and
// a court-scoped override.
func TestSetAvailabilityIdempotent(t *testing.T) {
	h, store := newTestAvailabilityHandler()

	allCourts := `{"date":"2026-03-11","timeSlot":"14:00","reason":"maintenance"}`
	for i := 0; i < 2; i++ {
		rec := doJSON(t, h.Set, http.MethodPost, "/api/availability", allCourts, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("call %d: status = %d, body %s", i+1, rec.Code, rec.Body.String())
		}
	}
	if n := len(store.rows); n != 1 {
		t.Fatalf("after identical all-courts calls: %d rows, want 1", n)
	}
	if r := store.rows[0]; r.CourtID != nil || r.Sport != model.SportAll || r.IsAvailable {
		t.Fatalf("all-courts row = %+v, want closed, sport all, nil court", r)
	}

	scoped := `{"date":"2026-03-11","timeSlot":"14:00","sport":"badminton","courtId":1,"isAvailable":true,"reason":"reopened"}`
	doJSON(t, h.Set, http.MethodPost, "/api/availability", scoped, nil)
	doJSON(t, h.Set, http.MethodPost, "/api/availability", scoped, nil)
	if n := len(store.rows); n != 2 {
		t.Fatalf("after court-scoped calls: %d rows, want 2", n)
	}

	// Re-setting the same key flips the row in place.
	reclose := `{"date":"2026-03-11","timeSlot":"14:00","sport":"badminton","courtId":1,"reason":"flooded"}`
	doJSON(t, h.Set, http.MethodPost, "/api/availability", reclose, nil)
	if n := len(store.rows); n != 2 {
		t.Fatalf("after rewriting court row: %d rows, want 2", n)
	}
	r := store.rows[1]
	if r.CourtID == nil || *r.CourtID != 1 || r.IsAvailable || r.Reason != "flooded" {
		t.Fatalf("court row = %+v, want court 1 closed with reason flooded", r)
	}
}

func TestSetAvailabilityValidation(t *testing.T) {
	h, store := newTestAvailabilityHandler()
	tests := []struct {
		name   string
		body   string
		status int
		msg    string
	}{
		{"missing fields", `{"date":"2026-03-11"}`, http.StatusBadRequest, "Please provide date and timeSlot"},
		{"bad date", `{"date":"garbage","timeSlot":"14:00"}`, http.StatusBadRequest, "Invalid date"},
		{"non-canonical slot key", `{"date":"2026-03-11","timeSlot":"014:00"}`, http.StatusBadRequest, "Invalid time slot"},
		{"unknown sport", `{"date":"2026-03-11","timeSlot":"14:00","sport":"squash"}`, http.StatusBadRequest, "Invalid sport"},
		{"unknown court", `{"date":"2026-03-11","timeSlot":"14:00","courtId":99}`, http.StatusNotFound, "Court not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h.Set, http.MethodPost, "/api/availability", tt.body, nil)
			wantMessage(t, rec, tt.status, tt.msg)
		})
	}
	if len(store.rows) != 0 {
		t.Fatalf("rejected requests stored %d rows", len(store.rows))
	}
}

func TestDeleteAvailability(t *testing.T) {
	h, store := newTestAvailabilityHandler()
	ctx := context.Background()
	row, err := store.Upsert(ctx, time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC), "14:00", model.SportAll, nil, false, "maintenance")
	if err != nil {
		t.Fatalf("seed override: %v", err)
	}

	rec := doJSON(t, h.Delete, http.MethodPut, "/", "", func(c echo.Context) {
		c.SetParamNames("id")
		c.SetParamValues("999")
	})
	wantMessage(t, rec, http.StatusNotFound, "Availability setting not found")

	rec = doJSON(t, h.Delete, http.MethodPut, "/", "", func(c echo.Context) {
		c.SetParamNames("id")
		c.SetParamValues(fmt.Sprint(row.ID))
	})
	wantMessage(t, rec, http.StatusOK, "Availability setting deleted")
	if len(store.rows) != 0 {
		t.Fatalf("override row survived delete")
	}
}
