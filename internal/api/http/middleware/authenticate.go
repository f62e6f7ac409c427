package middleware

import (
	"errors"
	"net/http"

	"github.com/taskdeck/server/internal/api/http/handler"
	"github.com/taskdeck/server/internal/api/http/request"
	"github.com/taskdeck/server/internal/logger"
	"github.com/taskdeck/server/internal/model"
)

// sessionCookieName matches the cookie issued at login and registration.
const sessionCookieName = "token"

// Authenticate validates session cookies and injects the acting user's id
// into the request context. Every call resolves the user against the
// store so tokens for deleted accounts are rejected.
type Authenticate struct {
	tokenManager model.TokenManager
	userStore    model.UserStore
	logger       *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenManager model.TokenManager, userStore model.UserStore, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenManager: tokenManager, userStore: userStore, logger: logger}
}

// Handle wraps next with session-cookie authentication.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.authenticateRequest(r)
		if err != nil {
			handler.RespondError(w, r, m.logger, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(request.SetUserID(r.Context(), userID)))
	})
}

func (m *Authenticate) authenticateRequest(r *http.Request) (int64, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return 0, model.NewAuthError("Authentication required. Please log in.")
	}

	userID, err := m.tokenManager.Parse(cookie.Value)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTokenExpired):
			return 0, model.NewAuthError("Your token has expired. Please log in again.")
		case errors.Is(err, model.ErrTokenMalformed), errors.Is(err, model.ErrTokenInvalid):
			return 0, model.NewAuthError("Invalid token. Please log in again.")
		default:
			return 0, model.NewAuthError("Authentication failed.")
		}
	}

	if _, err := m.userStore.GetByID(r.Context(), userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return 0, model.NewAuthError("The user belonging to this token no longer exists.")
		}
		return 0, err
	}

	return userID, nil
}
