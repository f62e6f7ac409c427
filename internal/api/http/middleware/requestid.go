package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/taskdeck/server/internal/api/http/request"
)

// requestIDHeader is the response header exposing the correlation id.
const requestIDHeader = "X-Request-Id"

// RequestID assigns every request a correlation id, reusing the client's
// when one is supplied.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(request.SetRequestID(r.Context(), requestID)))
	})
}
