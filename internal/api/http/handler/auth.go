package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/taskdeck/server/internal/logger"
	"github.com/taskdeck/server/internal/model"
	"github.com/taskdeck/server/internal/service"
)

// sessionCookieName is the cookie carrying the signed session token.
const sessionCookieName = "token"

// AuthService defines user registration and login operations.
type AuthService interface {
	Register(ctx context.Context, params service.RegisterParams) (model.User, string, error)
	Login(ctx context.Context, email, password string) (model.User, string, error)
}

// CookieOptions controls issuance of the session cookie.
type CookieOptions struct {
	TTL    time.Duration
	Secure bool
}

// Auth handles HTTP endpoints for registration, login and logout.
type Auth struct {
	authService AuthService
	cookie      CookieOptions
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, cookie CookieOptions, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account and issues a session cookie.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, r, h.logger, model.NewValidationError("Invalid request body"))
		return
	}

	user, token, err := h.authService.Register(r.Context(), service.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		RespondError(w, r, h.logger, err)
		return
	}

	h.setTokenCookie(w, token)
	respondSuccess(w, http.StatusCreated, "User registered successfully", map[string]any{
		"user": toUserResponse(user),
	})
}

// Login verifies credentials and issues a session cookie.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, r, h.logger, model.NewValidationError("Invalid request body"))
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		RespondError(w, r, h.logger, err)
		return
	}

	h.setTokenCookie(w, token)
	respondSuccess(w, http.StatusOK, "Logged in successfully", map[string]any{
		"user": toUserResponse(user),
	})
}

// Logout clears the session cookie. A still-valid token resent by the
// client is accepted again; there is no server-side revocation list.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearTokenCookie(w)
	respondSuccess(w, http.StatusOK, "Logged out successfully", nil)
}

func (h *Auth) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookie.TTL),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *Auth) clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
