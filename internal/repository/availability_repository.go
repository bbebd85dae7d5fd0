package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/wlong0711/sporthall/internal/model"
)

// AvailabilityRepo manages admin availability overrides.  The logical
// key (date, time_slot, sport, court scope) is backed by the
// uq_availability_scope unique key over a NULL-folding generated
// column, so Upsert is a single atomic statement.
type AvailabilityRepo struct{ db *sql.DB }

func NewAvailabilityRepo(db *sql.DB) *AvailabilityRepo { return &AvailabilityRepo{db: db} }

// OverrideFilter narrows GetAvailability listings.  All fields are
// optional; set fields are AND-combined.
type OverrideFilter struct {
	// Date matches overrides for this day when non-zero.
	Date time.Time
	// TimeSlot matches one slot key when non-empty.
	TimeSlot string
	// Sport matches overrides for this sport OR scoped to "all" when
	// non-empty.
	Sport string
	// CourtID matches overrides for this court OR scoped to all courts
	// (NULL) when non-zero.
	CourtID uint64
}

// OverrideRow is an override joined with its court name for display.
type OverrideRow struct {
	ID          uint64  `json:"id"`
	Date        string  `json:"date"`
	TimeSlot    string  `json:"timeSlot"`
	Sport       string  `json:"sport"`
	CourtID     *uint64 `json:"courtId"`
	CourtName   *string `json:"courtName,omitempty"`
	IsAvailable bool    `json:"isAvailable"`
	Reason      string  `json:"reason"`
}

// Upsert sets the current state of the override identified by
// (date, slot, sport, courtID): an existing row is rewritten in place,
// otherwise a new row is inserted.  The statement is atomic over
// uq_availability_scope, so concurrent calls for the same key never
// produce two rows.  The id=LAST_INSERT_ID(id) assignment makes
// LastInsertId report the surviving row on the update path too.
func (r *AvailabilityRepo) Upsert(ctx context.Context, date time.Time, slot, sport string, courtID *uint64, isAvailable bool, reason string) (OverrideRow, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO availability (date, time_slot, sport, court_id, is_available, reason)
		 VALUES (?,?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE id=LAST_INSERT_ID(id), is_available=VALUES(is_available), reason=VALUES(reason)`,
		date.Format(dateLayout), slot, sport, courtID, isAvailable, reason)
	if err != nil {
		return OverrideRow{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return OverrideRow{}, err
	}
	return r.getRow(ctx, uint64(id))
}

func (r *AvailabilityRepo) getRow(ctx context.Context, id uint64) (OverrideRow, error) {
	const q = `SELECT a.id, a.date, a.time_slot, a.sport, a.court_id, c.name, a.is_available, a.reason
               FROM availability a
               LEFT JOIN courts c ON c.id = a.court_id
               WHERE a.id = ?`
	var row OverrideRow
	var date time.Time
	var courtID sql.NullInt64
	var courtName sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&row.ID, &date, &row.TimeSlot, &row.Sport, &courtID, &courtName, &row.IsAvailable, &row.Reason)
	if err == sql.ErrNoRows {
		return OverrideRow{}, ErrOverrideNotFound
	}
	if err != nil {
		return OverrideRow{}, err
	}
	row.Date = date.Format(dateLayout)
	if courtID.Valid {
		cid := uint64(courtID.Int64)
		row.CourtID = &cid
	}
	if courtName.Valid {
		cn := courtName.String
		row.CourtName = &cn
	}
	return row, nil
}

// List returns override rows matching the filter.  Rows are returned
// as stored; scope precedence between overlapping rows is applied by
// the caller, not here.
func (r *AvailabilityRepo) List(ctx context.Context, f OverrideFilter) ([]OverrideRow, error) {
	q := `SELECT a.id, a.date, a.time_slot, a.sport, a.court_id, c.name, a.is_available, a.reason
          FROM availability a
          LEFT JOIN courts c ON c.id = a.court_id
          WHERE 1=1`
	args := []interface{}{}
	if !f.Date.IsZero() {
		q += " AND a.date=?"
		args = append(args, f.Date.Format(dateLayout))
	}
	if f.TimeSlot != "" {
		q += " AND a.time_slot=?"
		args = append(args, f.TimeSlot)
	}
	if f.Sport != "" {
		q += " AND (a.sport=? OR a.sport='all')"
		args = append(args, f.Sport)
	}
	if f.CourtID != 0 {
		q += " AND (a.court_id=? OR a.court_id IS NULL)"
		args = append(args, f.CourtID)
	}
	q += " ORDER BY a.date, a.time_slot, a.id"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]OverrideRow, 0)
	for rows.Next() {
		var row OverrideRow
		var date time.Time
		var courtID sql.NullInt64
		var courtName sql.NullString
		if err := rows.Scan(&row.ID, &date, &row.TimeSlot, &row.Sport, &courtID, &courtName, &row.IsAvailable, &row.Reason); err != nil {
			return nil, err
		}
		row.Date = date.Format(dateLayout)
		if courtID.Valid {
			cid := uint64(courtID.Int64)
			row.CourtID = &cid
		}
		if courtName.Valid {
			cn := courtName.String
			row.CourtName = &cn
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// FindForSlot returns the raw overrides in play for (date, slot) whose
// sport scope is the given sport or "all", any court scope.  Used by
// the eligibility engine and the court availability query.
func (r *AvailabilityRepo) FindForSlot(ctx context.Context, date time.Time, slot, sport string) ([]model.AvailabilityOverride, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, date, time_slot, sport, court_id, is_available, reason FROM availability WHERE date=? AND time_slot=? AND (sport=? OR sport='all')",
		date.Format(dateLayout), slot, sport)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.AvailabilityOverride
	for rows.Next() {
		var o model.AvailabilityOverride
		var courtID sql.NullInt64
		if err := rows.Scan(&o.ID, &o.Date, &o.TimeSlot, &o.Sport, &courtID, &o.IsAvailable, &o.Reason); err != nil {
			return nil, err
		}
		if courtID.Valid {
			cid := uint64(courtID.Int64)
			o.CourtID = &cid
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Delete removes an override row, reopening its slot by reverting to
// default-open.  ErrOverrideNotFound when the id is unknown.
func (r *AvailabilityRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM availability WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOverrideNotFound
	}
	return nil
}
