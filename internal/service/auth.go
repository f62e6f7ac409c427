package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/server/internal/logger"
	"github.com/taskdeck/server/internal/model"
)

// bcryptCost matches the deliberately slow hashing setting used at
// registration and password changes.
const bcryptCost = 10

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterParams contains the fields required to create an account.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// Auth handles registration and login, returning the user together with a
// freshly issued session token.
type Auth struct {
	userStore    model.UserStore
	tokenManager model.TokenManager
	logger       *logger.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(userStore model.UserStore, tokenManager model.TokenManager, logger *logger.Logger) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// Register validates the input, hashes the password and creates the user.
// The raw password is never stored or logged.
func (a *Auth) Register(ctx context.Context, params RegisterParams) (model.User, string, error) {
	a.logger.Debug("Auth service: starting user registration",
		"email", params.Email)

	if params.Name == "" || params.Email == "" || params.Password == "" {
		return model.User{}, "", model.NewValidationError("Please provide name, email, and password")
	}
	if !emailPattern.MatchString(params.Email) {
		return model.User{}, "", model.NewValidationError("Please provide a valid email address")
	}
	if len(params.Password) < 6 {
		return model.User{}, "", model.NewValidationError("Password must be at least 6 characters long")
	}

	_, err := a.userStore.GetByEmail(ctx, params.Email)
	if err == nil {
		a.logger.Info("Auth service: user already exists",
			"email", params.Email)
		return model.User{}, "", model.NewConflictError("User with this email already exists")
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcryptCost)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		Name:     params.Name,
		Email:    params.Email,
		Password: string(hash),
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) {
			return model.User{}, "", model.NewConflictError("User with this email already exists")
		}
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to create user: %w", err)
	}

	tokenString, err := a.tokenManager.Generate(user.ID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	a.logger.Info("Auth service: user registered successfully",
		"user_id", user.ID)

	return user, tokenString, nil
}

// Login verifies credentials and issues a session token. A missing user
// and a wrong password produce the same error so account existence does
// not leak.
func (a *Auth) Login(ctx context.Context, email, password string) (model.User, string, error) {
	a.logger.Debug("Auth service: starting user login",
		"email", email)

	if email == "" || password == "" {
		return model.User{}, "", model.NewValidationError("Please provide email and password")
	}

	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, "", model.NewAuthError("Invalid email or password")
		}
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return model.User{}, "", model.NewAuthError("Invalid email or password")
	}

	tokenString, err := a.tokenManager.Generate(user.ID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	a.logger.Info("Auth service: user logged in successfully",
		"user_id", user.ID)

	return user, tokenString, nil
}
