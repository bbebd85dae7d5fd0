package repository

import (
	"context"
	"database/sql"

	"github.com/wlong0711/sporthall/internal/model"
)

type CourtRepo struct{ DB *sql.DB }

func NewCourtRepo(db *sql.DB) *CourtRepo { return &CourtRepo{DB: db} }

// Create inserts a court and returns it with generated fields populated.
func (r *CourtRepo) Create(ctx context.Context, name, sport string) (model.Court, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO courts (name, sport) VALUES (?,?)", name, sport)
	if err != nil {
		return model.Court{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Court{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a court by id; ErrCourtNotFound when absent.
func (r *CourtRepo) GetByID(ctx context.Context, id uint64) (model.Court, error) {
	var c model.Court
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,sport,is_active,created_at,updated_at FROM courts WHERE id=? LIMIT 1",
		id).Scan(&c.ID, &c.Name, &c.Sport, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Court{}, ErrCourtNotFound
	}
	return c, err
}

// List returns active courts, optionally restricted to one sport,
// ordered by name for display.
func (r *CourtRepo) List(ctx context.Context, sport string) ([]model.Court, error) {
	q := "SELECT id,name,sport,is_active,created_at,updated_at FROM courts WHERE is_active=1"
	args := []interface{}{}
	if sport != "" {
		q += " AND sport=?"
		args = append(args, sport)
	}
	q += " ORDER BY name ASC"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	courts := make([]model.Court, 0)
	for rows.Next() {
		var c model.Court
		if err := rows.Scan(&c.ID, &c.Name, &c.Sport, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		courts = append(courts, c)
	}
	return courts, rows.Err()
}

// ListActiveBySport returns the active courts of one sport.
func (r *CourtRepo) ListActiveBySport(ctx context.Context, sport string) ([]model.Court, error) {
	return r.List(ctx, sport)
}
