package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, id int64, update ProfileUpdate) (User, error)
	UpdateProfilePicture(ctx context.Context, id int64, pictureURL string) (User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// User represents a stored user. Password holds the bcrypt hash and is
// never serialized to clients.
type User struct {
	ID             int64
	Name           string
	Email          string
	Password       string
	ProfilePicture *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProfileUpdate carries profile fields to change. Nil means the field
// was not provided.
type ProfileUpdate struct {
	Name  *string
	Email *string
}

// Empty reports whether the update carries no fields.
func (u ProfileUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil
}
