package models

import (
	"time"
)

// User represents a user record in the users table.
type User struct {
	ID           int64     `json:"id" db:"id"`                 // Primary key
	Username     string    `json:"username" db:"username"`     // Unique username
	Email        string    `json:"email" db:"email"`           // Unique email
	PasswordHash string    `json:"-" db:"password_hash"`       // Bcrypt hash, never serialized
	FullName     *string   `json:"full_name" db:"full_name"`   // Optional full name
	Phone        *string   `json:"phone" db:"phone"`           // Optional phone
	Role         *string   `json:"role" db:"role"`             // Optional role
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}

// NewUser holds the fields supplied at registration.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
	FullName     *string
	Phone        *string
}

// UserIdentity is the minimal public projection used by the reset flow.
type UserIdentity struct {
	ID    int64  `json:"id" db:"id"`
	Email string `json:"email" db:"email"`
}

// ProfileUpdate lists the profile fields a user may change; nil means unchanged.
type ProfileUpdate struct {
	Username *string
	FullName *string
	Phone    *string
	Role     *string
}

// IsEmpty reports whether no field is set.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Username == nil && p.FullName == nil && p.Phone == nil && p.Role == nil
}
