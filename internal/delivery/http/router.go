package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"placementportal/internal/delivery/http/controllers"
	h "placementportal/internal/delivery/http/helpers"
	"placementportal/internal/delivery/http/middleware"
	"placementportal/internal/domain"
)

// Pinger reports whether the backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps bundles everything NewRouter wires into the mux.
type RouterDeps struct {
	Interviews *controllers.InterviewController
	Auth       *controllers.AuthController
	Verifier   domain.TokenVerifier
	Metrics    http.Handler
	DB         Pinger
	Logger     *slog.Logger
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(deps RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()
	authed := middleware.RequireAuth(deps.Verifier, deps.Logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", deps.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", deps.Auth.Login)

	// Interviews
	mux.HandleFunc("POST /interviews", authed(deps.Interviews.CreateInterview))
	mux.HandleFunc("GET /interviews/available", authed(deps.Interviews.ListAvailable))
	mux.HandleFunc("GET /interviews/mine", authed(deps.Interviews.ListMine))
	mux.HandleFunc("GET /interviews/{slotID}", authed(deps.Interviews.GetInterview))
	mux.HandleFunc("POST /interviews/{slotID}/accept", authed(deps.Interviews.AcceptInterview))
	mux.HandleFunc("POST /interviews/{slotID}/cancel", authed(deps.Interviews.CancelInterview))
	mux.HandleFunc("POST /interviews/{slotID}/release", authed(deps.Interviews.ReleaseInterview))
	mux.HandleFunc("DELETE /interviews/{slotID}", authed(deps.Interviews.DeleteInterview))

	// Operations
	mux.HandleFunc("GET /healthz", healthz(deps.DB, deps.Logger))
	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

func healthz(db Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				logger.WarnContext(r.Context(), "health check failed", "err", err)
				h.WriteJSONError(w, http.StatusServiceUnavailable, h.ErrCodeInternalError, "database unreachable")
				return
			}
		}
		h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
