package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/wlong0711/sporthall/internal/model"
)

// BookingRepo provides CRUD operations for bookings and their
// participants.  A booking and its 1..6 participant rows are written in
// one transaction; the unique key on (user_id, sport, date, court_id)
// turns a lost check-then-insert race into ErrDuplicateBooking.
type BookingRepo struct{ db *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const dateLayout = "2006-01-02"

// CourtRef is the court summary embedded in booking responses.
type CourtRef struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Sport string `json:"sport"`
}

// BookingDetail is a booking joined with its court, its participants
// and (for privileged listings) its owner.  It is the shape returned to
// API clients.
type BookingDetail struct {
	ID           uint64              `json:"id"`
	UserID       uint64              `json:"userId"`
	UserName     string              `json:"userName,omitempty"`
	UserEmail    string              `json:"userEmail,omitempty"`
	Sport        string              `json:"sport"`
	Court        CourtRef            `json:"court"`
	Date         string              `json:"date"`
	TimeSlot     string              `json:"timeSlot"`
	Status       string              `json:"status"`
	Participants []model.Participant `json:"participants"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// ListFilter narrows the privileged booking listing.  Zero values mean
// "no restriction"; set fields are AND-combined equality matches.
type ListFilter struct {
	// Date restricts to bookings on this day when non-zero.
	Date time.Time
	// Sport restricts to one sport when non-empty.
	Sport string
	// CourtID restricts to one court when non-zero.
	CourtID uint64
}

// Create inserts the booking and its participants atomically and
// populates the generated ID and timestamps on b.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO bookings (user_id, sport, court_id, date, time_slot, status) VALUES (?,?,?,?,?,?)",
		b.UserID, b.Sport, b.CourtID, b.Date.Format(dateLayout), b.TimeSlot, b.Status)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrDuplicateBooking
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	if len(b.Participants) > 0 {
		q := "INSERT INTO booking_participants (booking_id, name, email) VALUES "
		args := make([]interface{}, 0, len(b.Participants)*3)
		for i, p := range b.Participants {
			if i > 0 {
				q += ","
			}
			q += "(?,?,?)"
			args = append(args, b.ID, p.Name, p.Email)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}

	if err := tx.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM bookings WHERE id=?", b.ID,
	).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// HasConfirmed reports whether the user already holds a confirmed
// booking for the sport on the date, on any court.
func (r *BookingRepo) HasConfirmed(ctx context.Context, userID uint64, sport string, date time.Time) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM bookings WHERE user_id=? AND sport=? AND date=? AND status=? LIMIT 1",
		userID, sport, date.Format(dateLayout), model.StatusConfirmed).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// IsCourtBooked reports whether any confirmed booking holds the court
// at (date, slot).
func (r *BookingRepo) IsCourtBooked(ctx context.Context, courtID uint64, date time.Time, slot string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM bookings WHERE court_id=? AND date=? AND time_slot=? AND status=? LIMIT 1",
		courtID, date.Format(dateLayout), slot, model.StatusConfirmed).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// BookedCourtIDs collects the court ids with a confirmed booking for
// the sport at (date, slot).
func (r *BookingRepo) BookedCourtIDs(ctx context.Context, sport string, date time.Time, slot string) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT court_id FROM bookings WHERE sport=? AND date=? AND time_slot=? AND status=?",
		sport, date.Format(dateLayout), slot, model.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetDetail returns one booking with court and participants;
// ErrBookingNotFound when absent.
func (r *BookingRepo) GetDetail(ctx context.Context, id uint64) (BookingDetail, error) {
	const q = `SELECT b.id, b.user_id, b.sport, b.date, b.time_slot, b.status, b.created_at,
                      c.id, c.name, c.sport
               FROM bookings b
               JOIN courts c ON c.id = b.court_id
               WHERE b.id = ?`
	var det BookingDetail
	var date time.Time
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&det.ID, &det.UserID, &det.Sport, &date, &det.TimeSlot, &det.Status, &det.CreatedAt,
		&det.Court.ID, &det.Court.Name, &det.Court.Sport,
	)
	if err == sql.ErrNoRows {
		return BookingDetail{}, ErrBookingNotFound
	}
	if err != nil {
		return BookingDetail{}, err
	}
	det.Date = date.Format(dateLayout)
	det.Participants = make([]model.Participant, 0, 2)
	rows, err := r.db.QueryContext(ctx,
		"SELECT name, email FROM booking_participants WHERE booking_id=? ORDER BY id", id)
	if err != nil {
		return BookingDetail{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var p model.Participant
		if err := rows.Scan(&p.Name, &p.Email); err != nil {
			return BookingDetail{}, err
		}
		det.Participants = append(det.Participants, p)
	}
	return det, rows.Err()
}

// SetStatus updates a booking's status.
func (r *BookingRepo) SetStatus(ctx context.Context, id uint64, status string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=?", status, id)
	return err
}

// ListByUser returns all bookings owned by userID, newest date first
// and slots in day order within a date.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.user_id, b.sport, b.date, b.time_slot, b.status, b.created_at,
                      c.id, c.name, c.sport
               FROM bookings b
               JOIN courts c ON c.id = b.court_id
               WHERE b.user_id = ?
               ORDER BY b.date DESC, b.time_slot ASC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(ctx, rows, false)
}

// List returns bookings across all users matching the filter, same
// ordering as ListByUser, with owner name/email attached.
func (r *BookingRepo) List(ctx context.Context, f ListFilter) ([]BookingDetail, error) {
	q := `SELECT b.id, b.user_id, b.sport, b.date, b.time_slot, b.status, b.created_at,
                 c.id, c.name, c.sport, u.name, u.email
          FROM bookings b
          JOIN courts c ON c.id = b.court_id
          JOIN users u ON u.id = b.user_id
          WHERE 1=1`
	args := []interface{}{}
	if !f.Date.IsZero() {
		q += " AND b.date=?"
		args = append(args, f.Date.Format(dateLayout))
	}
	if f.Sport != "" {
		q += " AND b.sport=?"
		args = append(args, f.Sport)
	}
	if f.CourtID != 0 {
		q += " AND b.court_id=?"
		args = append(args, f.CourtID)
	}
	q += " ORDER BY b.date DESC, b.time_slot ASC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(ctx, rows, true)
}

// collect scans booking rows and hydrates participants for the whole
// result set with a single IN query.
func (r *BookingRepo) collect(ctx context.Context, rows *sql.Rows, withUser bool) ([]BookingDetail, error) {
	details := make([]BookingDetail, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var d BookingDetail
		var date time.Time
		dest := []interface{}{
			&d.ID, &d.UserID, &d.Sport, &date, &d.TimeSlot, &d.Status, &d.CreatedAt,
			&d.Court.ID, &d.Court.Name, &d.Court.Sport,
		}
		if withUser {
			dest = append(dest, &d.UserName, &d.UserEmail)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		d.Date = date.Format(dateLayout)
		d.Participants = make([]model.Participant, 0, 2)
		index[d.ID] = len(details)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return details, nil
	}

	ids := make([]interface{}, 0, len(details))
	placeholders := make([]string, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ID)
		placeholders = append(placeholders, "?")
	}
	q := `SELECT booking_id, name, email FROM booking_participants
          WHERE booking_id IN (` + strings.Join(placeholders, ",") + `)
          ORDER BY booking_id, id`
	prows, err := r.db.QueryContext(ctx, q, ids...)
	if err != nil {
		return nil, err
	}
	defer prows.Close()
	for prows.Next() {
		var bid uint64
		var p model.Participant
		if err := prows.Scan(&bid, &p.Name, &p.Email); err != nil {
			return nil, err
		}
		if idx, ok := index[bid]; ok {
			details[idx].Participants = append(details[idx].Participants, p)
		}
	}
	return details, prows.Err()
}
