package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/wlong0711/sporthall/internal/model"
	"github.com/wlong0711/sporthall/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts an unverified user and returns its ID.  The plain
// password is bcrypt-hashed here; tokenHash is the SHA-256 digest of
// the verification token mailed to the user.
func (r *UserRepo) Create(ctx context.Context, name, email, password, tokenHash string, tokenExp time.Time, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, verification_token_hash, verification_expires_at) VALUES (?,?,?,?,?)",
		strings.TrimSpace(name), email, hash, tokenHash, tokenExp)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,password_hash,role,is_verified,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,password_hash,role,is_verified,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Delete removes a user row.  Used to roll back a registration whose
// verification email could not be sent.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	return err
}

// VerifyByToken marks the account holding a live verification token as
// verified and clears the token.  sql.ErrNoRows means the token is
// unknown or expired.
func (r *UserRepo) VerifyByToken(ctx context.Context, tokenHash string, now time.Time) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,password_hash,role,is_verified,created_at,updated_at FROM users WHERE verification_token_hash=? AND verification_expires_at>? LIMIT 1",
		tokenHash, now).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE users SET is_verified=1, verification_token_hash=NULL, verification_expires_at=NULL WHERE id=?",
		u.ID)
	if err != nil {
		return model.User{}, err
	}
	u.IsVerified = true
	return u, nil
}

// SetResetToken stores a password-reset token hash for the user owning
// the email and returns that user.  sql.ErrNoRows when no account holds
// the address.
func (r *UserRepo) SetResetToken(ctx context.Context, email, tokenHash string, exp time.Time) (model.User, error) {
	u, err := r.GetByEmail(ctx, email)
	if err != nil {
		return model.User{}, err
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE users SET reset_token_hash=?, reset_expires_at=? WHERE id=?",
		tokenHash, exp, u.ID)
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

// ResetPassword replaces the password of the account holding a live
// reset token and clears the token.  sql.ErrNoRows means the token is
// unknown or expired.
func (r *UserRepo) ResetPassword(ctx context.Context, tokenHash, newPassword string, cost int, now time.Time) error {
	var id uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM users WHERE reset_token_hash=? AND reset_expires_at>? LIMIT 1",
		tokenHash, now).Scan(&id)
	if err != nil {
		return err
	}
	hash, err := utils.HashPassword(newPassword, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, reset_token_hash=NULL, reset_expires_at=NULL WHERE id=?",
		hash, id)
	return err
}
