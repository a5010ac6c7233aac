package user

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/turtacn/InfringeScope/pkg/errors"
)

// User is an account.  HashedPassword never leaves the process.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FullName       *string   `json:"full_name"`
	IsActive       bool      `json:"is_active"`
	IsSuperuser    bool      `json:"is_superuser"`
	HashedPassword string    `json:"-"`
}

// Item is a titled record owned by a User.
type Item struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	OwnerID     uuid.UUID `json:"owner_id"`
}

const minPasswordLength = 8

// NewSuperuser builds an active superuser with a bcrypt password hash.
func NewSuperuser(email, password string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.InvalidParam("a valid email is required")
	}
	if len(password) < minPasswordLength {
		return nil, errors.Newf(errors.ErrCodeValidation, "password must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to hash password")
	}
	return &User{
		ID:             uuid.New(),
		Email:          email,
		IsActive:       true,
		IsSuperuser:    true,
		HashedPassword: string(hash),
	}, nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)) == nil
}

//Personal.AI order the ending
