package model

import "time"

// Role values stored in users.role and carried in the JWT "role" claim.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an application user record as stored in the `users`
// table.  Accounts start unverified; a registration email carries a
// one-time token whose SHA-256 hash is kept in verification_token_hash
// until the link is clicked.  Password reset works the same way with
// its own token pair of columns.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – display name.
//  Email          – unique email address.
//  PasswordHash   – bcrypt hashed password.
//  Role           – "user" or "admin".
//  IsVerified     – whether the email address has been confirmed.
//  CreatedAt      – timestamp of creation.
//  UpdatedAt      – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsVerified   bool      // users.is_verified
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
