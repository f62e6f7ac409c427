package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/server/internal/logger"
	"github.com/taskdeck/server/internal/model"
)

// ProfilePicture describes an uploaded image to store for a user.
type ProfilePicture struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

// User handles profile reads and mutations for the acting user.
type User struct {
	userStore model.UserStore
	storage   model.FileStorage
	logger    *logger.Logger
}

// NewUser creates a new User service.
func NewUser(userStore model.UserStore, storage model.FileStorage, logger *logger.Logger) *User {
	return &User{
		userStore: userStore,
		storage:   storage,
		logger:    logger,
	}
}

// GetProfile returns the acting user's record.
func (s *User) GetProfile(ctx context.Context, userID int64) (model.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.NewNotFoundError("User not found")
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// UpdateProfile changes the supplied fields. An email change is checked
// against other accounts before the write; the unique index still backs
// it up under concurrent updates.
func (s *User) UpdateProfile(ctx context.Context, userID int64, update model.ProfileUpdate) (model.User, error) {
	if update.Empty() {
		return model.User{}, model.NewValidationError("Please provide at least one field to update (name or email)")
	}

	if update.Email != nil {
		if !emailPattern.MatchString(*update.Email) {
			return model.User{}, model.NewValidationError("Please provide a valid email address")
		}

		existing, err := s.userStore.GetByEmail(ctx, *update.Email)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
		}
		if err == nil && existing.ID != userID {
			return model.User{}, model.NewConflictError("Email is already taken by another user")
		}
	}

	user, err := s.userStore.Update(ctx, userID, update)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			return model.User{}, model.NewNotFoundError("User not found")
		case errors.Is(err, model.ErrDuplicateEmail):
			return model.User{}, model.NewConflictError("Email is already taken by another user")
		}
		s.logger.Error("User service: failed to update profile",
			"user_id", userID,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("User service: profile updated",
		"user_id", userID)

	return user, nil
}

// UpdateProfilePicture uploads the image to the object store under a
// stable per-user key and persists its public URL. Re-uploads overwrite
// the previous object.
func (s *User) UpdateProfilePicture(ctx context.Context, userID int64, picture ProfilePicture) (model.User, error) {
	key := fmt.Sprintf("profiles/user-%d", userID)

	pictureURL, err := s.storage.Upload(ctx, key, picture.Reader, picture.Size, picture.ContentType)
	if err != nil {
		s.logger.Error("User service: failed to upload profile picture",
			"user_id", userID,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to upload profile picture: %w", err)
	}

	user, err := s.userStore.UpdateProfilePicture(ctx, userID, pictureURL)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.NewNotFoundError("User not found")
		}
		return model.User{}, fmt.Errorf("failed to save profile picture: %w", err)
	}

	s.logger.Info("User service: profile picture updated",
		"user_id", userID)

	return user, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *User) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return model.NewValidationError("Please provide current and new password")
	}
	if len(newPassword) < 6 {
		return model.NewValidationError("Password must be at least 6 characters long")
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewNotFoundError("User not found")
		}
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return model.NewAuthError("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userStore.UpdatePassword(ctx, userID, string(hash)); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewNotFoundError("User not found")
		}
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("User service: password changed",
		"user_id", userID)

	return nil
}
