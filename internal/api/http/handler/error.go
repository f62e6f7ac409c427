package handler

import (
	"errors"
	"net/http"

	"github.com/taskdeck/server/internal/logger"
	"github.com/taskdeck/server/internal/model"
)

// RespondError funnels every failure into the envelope. Operational
// domain errors render their own message and status; anything else is
// logged server-side and collapsed to a generic 500.
func RespondError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	var appErr *model.AppError
	if errors.As(err, &appErr) && appErr.Operational {
		status := "fail"
		if appErr.Status >= http.StatusInternalServerError {
			status = "error"
		}
		WriteJSON(w, appErr.Status, Response{Status: status, Message: appErr.Message})
		return
	}

	log.Error("unexpected error",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err.Error())
	WriteJSON(w, http.StatusInternalServerError, Response{Status: "error", Message: "Something went wrong!"})
}
