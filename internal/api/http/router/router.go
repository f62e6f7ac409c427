package router

import (
	"fmt"
	"net/http"

	"github.com/taskdeck/server/internal/api/http/handler"
	"github.com/taskdeck/server/internal/api/http/middleware"
	"github.com/taskdeck/server/internal/logger"
	"github.com/taskdeck/server/internal/model"
)

// Router wires HTTP handlers, authentication and the shared middleware
// chain into a single http.Handler.
type Router struct {
	authHandler  *handler.Auth
	userHandler  *handler.User
	taskHandler  *handler.Task
	tokenManager model.TokenManager
	userStore    model.UserStore
	corsOrigin   string
	logger       *logger.Logger
}

// New creates a new Router instance.
func New(
	authHandler *handler.Auth,
	userHandler *handler.User,
	taskHandler *handler.Task,
	tokenManager model.TokenManager,
	userStore model.UserStore,
	corsOrigin string,
	logger *logger.Logger,
) *Router {
	return &Router{
		authHandler:  authHandler,
		userHandler:  userHandler,
		taskHandler:  taskHandler,
		tokenManager: tokenManager,
		userStore:    userStore,
		corsOrigin:   corsOrigin,
		logger:       logger,
	}
}

// Register mounts all routes and returns the wrapped handler. Protected
// routes pass through the authentication middleware; everything funnels
// through request-id, logging and CORS.
func (r *Router) Register() http.Handler {
	mux := http.NewServeMux()

	authenticate := middleware.NewAuthenticate(r.tokenManager, r.userStore, r.logger)
	protected := func(h http.HandlerFunc) http.Handler {
		return authenticate.Handle(h)
	}

	mux.HandleFunc("GET /health", handler.Health)

	mux.HandleFunc("POST /api/auth/register", r.authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", r.authHandler.Logout)

	mux.Handle("GET /api/user/profile", protected(r.userHandler.GetProfile))
	mux.Handle("PUT /api/user/profile", protected(r.userHandler.UpdateProfile))
	mux.Handle("POST /api/user/profile/picture", protected(r.userHandler.UploadProfilePicture))
	mux.Handle("PUT /api/user/password", protected(r.userHandler.ChangePassword))

	mux.Handle("POST /api/tasks", protected(r.taskHandler.Create))
	mux.Handle("GET /api/tasks", protected(r.taskHandler.List))
	mux.Handle("PUT /api/tasks/{id}", protected(r.taskHandler.Update))
	mux.Handle("DELETE /api/tasks/{id}", protected(r.taskHandler.Delete))

	mux.HandleFunc("/", r.notFound)

	chain := middleware.CORS(r.corsOrigin)(
		middleware.NewLogging(r.logger).Handle(mux))
	return middleware.RequestID(chain)
}

// notFound reports unmatched routes in the standard envelope.
func (r *Router) notFound(w http.ResponseWriter, req *http.Request) {
	handler.WriteJSON(w, http.StatusNotFound, handler.Response{
		Status:  "fail",
		Message: fmt.Sprintf("Can't find %s on this server!", req.URL.Path),
	})
}
