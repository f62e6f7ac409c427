package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/taskdeck/server/internal/api/http/request"
	"github.com/taskdeck/server/internal/logger"
	"github.com/taskdeck/server/internal/model"
	"github.com/taskdeck/server/internal/service"
)

// maxProfilePictureSize caps profile picture uploads at 5 MiB.
const maxProfilePictureSize = 5 << 20

// UserService defines profile operations for the acting user.
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (model.User, error)
	UpdateProfile(ctx context.Context, userID int64, update model.ProfileUpdate) (model.User, error)
	UpdateProfilePicture(ctx context.Context, userID int64, picture service.ProfilePicture) (model.User, error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
}

// User handles HTTP endpoints for the authenticated user's profile.
type User struct {
	userService UserService
	logger      *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, logger *logger.Logger) *User {
	return &User{
		userService: userService,
		logger:      logger,
	}
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// GetProfile returns the acting user's record.
func (h *User) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := request.UserID(r.Context())
	if !ok {
		RespondError(w, r, h.logger, model.NewAuthError("Authentication required. Please log in."))
		return
	}

	user, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		RespondError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, Response{Status: "success", Data: map[string]any{
		"user": toUserResponse(user),
	}})
}

// UpdateProfile changes the acting user's name and/or email.
func (h *User) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := request.UserID(r.Context())
	if !ok {
		RespondError(w, r, h.logger, model.NewAuthError("Authentication required. Please log in."))
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, r, h.logger, model.NewValidationError("Invalid request body"))
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, model.ProfileUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		RespondError(w, r, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Profile updated successfully", map[string]any{
		"user": toUserResponse(user),
	})
}

// UploadProfilePicture accepts a multipart image upload and stores it via
// the external file storage.
func (h *User) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	userID, ok := request.UserID(r.Context())
	if !ok {
		RespondError(w, r, h.logger, model.NewAuthError("Authentication required. Please log in."))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxProfilePictureSize)
	if err := r.ParseMultipartForm(maxProfilePictureSize); err != nil {
		RespondError(w, r, h.logger, model.NewValidationError("File too large or invalid form data"))
		return
	}

	file, header, err := r.FormFile("profilePicture")
	if err != nil {
		RespondError(w, r, h.logger, model.NewValidationError("Please upload a file in the profilePicture field"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		RespondError(w, r, h.logger, model.NewValidationError("Please upload an image file"))
		return
	}

	user, err := h.userService.UpdateProfilePicture(r.Context(), userID, service.ProfilePicture{
		Reader:      file,
		Size:        header.Size,
		ContentType: contentType,
	})
	if err != nil {
		RespondError(w, r, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Profile picture updated successfully", map[string]any{
		"user": toUserResponse(user),
	})
}

// ChangePassword verifies the current password and stores a new one.
func (h *User) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := request.UserID(r.Context())
	if !ok {
		RespondError(w, r, h.logger, model.NewAuthError("Authentication required. Please log in."))
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, r, h.logger, model.NewValidationError("Invalid request body"))
		return
	}

	if err := h.userService.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		RespondError(w, r, h.logger, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Password changed successfully", nil)
}
