package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// now is swapped in tests to get distinct, predictable timestamps.
var now = func() time.Time { return time.Now().UTC() }

// User is the aggregate root for the user domain.
// passwordHash holds the bcrypt output, never the plaintext.
type User struct {
	id           uuid.UUID
	email        string
	passwordHash string
	isActive     bool
	createdAt    time.Time
	updatedAt    *time.Time
}

// NewUser builds an active user stamped with the current UTC time.
func NewUser(id uuid.UUID, email, passwordHash string) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		isActive:     true,
		createdAt:    now(),
	}
}

// Reconstitute rebuilds a User from stored state without touching timestamps.
func Reconstitute(id uuid.UUID, email, passwordHash string, isActive bool, createdAt time.Time, updatedAt *time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) Email() string         { return u.email }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) IsActive() bool        { return u.isActive }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() *time.Time { return u.updatedAt }

// Activate is a no-op on an active user.
func (u *User) Activate() {
	if !u.isActive {
		u.isActive = true
		u.touch()
	}
}

// Deactivate is a no-op on an inactive user.
func (u *User) Deactivate() {
	if u.isActive {
		u.isActive = false
		u.touch()
	}
}

func (u *User) UpdateEmail(email string) {
	if u.email != email {
		u.email = email
		u.touch()
	}
}

func (u *User) UpdatePassword(passwordHash string) {
	if u.passwordHash != passwordHash {
		u.passwordHash = passwordHash
		u.touch()
	}
}

func (u *User) touch() {
	t := now()
	u.updatedAt = &t
}

// Equals compares identity only.
func (u *User) Equals(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.id == other.id
}

func (u *User) String() string {
	return fmt.Sprintf("User(id=%s, email=%s, active=%t)", u.id, u.email, u.isActive)
}
