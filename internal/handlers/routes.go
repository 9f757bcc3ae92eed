package handlers

import (
	"net/http"
	"time"

	"github.com/teamcook/formcheck/internal/dialog"
	"github.com/teamcook/formcheck/internal/upload"
)

// RegisterRoutes wires HTTP handlers into the provided ServeMux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{}
	auth := AuthHandler{Sessions: deps.Sessions, Dialogs: deps.Dialogs, Toasts: deps.Toasts, Limiter: deps.Limiter}
	videos := VideoHandler{
		Sessions:    deps.Sessions,
		Catalog:     deps.Catalog,
		Dialogs:     deps.Dialogs,
		Toasts:      deps.Toasts,
		Transfers:   deps.Transfers,
		UploadDelay: deps.UploadDelay,
		EditDelay:   deps.EditDelay,
	}
	comments := CommentHandler{Sessions: deps.Sessions, Catalog: deps.Catalog, Dialogs: deps.Dialogs, Toasts: deps.Toasts}
	state := StateHandler{Sessions: deps.Sessions, Catalog: deps.Catalog, Dialogs: deps.Dialogs, Toasts: deps.Toasts}

	mux.HandleFunc("GET /healthz", health.Handle)
	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics)
	}

	mux.HandleFunc("POST /api/v1/auth/signup", auth.SignUp)
	mux.HandleFunc("POST /api/v1/auth/login", auth.Login)
	mux.HandleFunc("POST /api/v1/auth/logout", auth.Logout)
	mux.HandleFunc("PUT /api/v1/auth/profile", auth.UpdateProfile)
	mux.HandleFunc("DELETE /api/v1/auth/account", auth.DeleteAccount)

	mux.HandleFunc("GET /api/v1/videos", videos.List)
	mux.HandleFunc("POST /api/v1/videos", videos.Create)
	mux.HandleFunc("GET /api/v1/videos/mine", videos.ListMine)
	mux.HandleFunc("GET /api/v1/videos/{id}", videos.Get)
	mux.HandleFunc("PUT /api/v1/videos/{id}", videos.Update)
	mux.HandleFunc("DELETE /api/v1/videos/{id}", videos.Delete)
	mux.HandleFunc("POST /api/v1/videos/{id}/view", videos.RecordView)

	mux.HandleFunc("GET /api/v1/videos/{id}/comments", comments.List)
	mux.HandleFunc("POST /api/v1/videos/{id}/comments", comments.Create)
	mux.HandleFunc("PUT /api/v1/videos/{id}/comments/{commentID}", comments.Update)
	mux.HandleFunc("DELETE /api/v1/videos/{id}/comments/{commentID}", comments.Delete)

	mux.HandleFunc("GET /api/v1/state", state.Snapshot)
	mux.HandleFunc("POST /api/v1/dialogs/open", state.OpenDialog)
	mux.HandleFunc("POST /api/v1/dialogs/close", state.CloseDialog)
	mux.HandleFunc("POST /api/v1/dialogs/switch", state.SwitchDialog)
}

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Sessions  SessionStore
	Catalog   Catalog
	Dialogs   *dialog.Orchestrator
	Toasts    Notifier
	Transfers *upload.Simulator
	Limiter   RateLimiter
	Metrics   http.Handler

	UploadDelay time.Duration
	EditDelay   time.Duration
}
