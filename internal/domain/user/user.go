package user

import (
	"fmt"
	"strings"
	"time"
)

// User represents the user aggregate root. Every card, usage counter, and
// subscription is scoped under exactly one user.
type User struct {
	id           uint
	sid          string
	email        string
	name         string
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a new user with an already-hashed password.
func NewUser(sid, email, name, passwordHash string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if sid == "" {
		return nil, fmt.Errorf("user SID is required")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	now := time.Now().UTC()
	return &User{
		sid:          sid,
		email:        email,
		name:         strings.TrimSpace(name),
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser reconstructs a user from persistence.
func ReconstructUser(id uint, sid, email, name, passwordHash string, createdAt, updatedAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("user SID is required")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	return &User{
		id:           id,
		sid:          sid,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

// ID returns the internal user ID
func (u *User) ID() uint {
	return u.id
}

// SID returns the API-visible user ID
func (u *User) SID() string {
	return u.sid
}

// Email returns the user's email
func (u *User) Email() string {
	return u.email
}

// Name returns the user's display name
func (u *User) Name() string {
	return u.name
}

// PasswordHash returns the bcrypt hash of the user's password
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// CreatedAt returns when the user was created
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns when the user was last updated
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// SetID sets the user ID (only for persistence layer use)
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}
