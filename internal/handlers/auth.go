package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/teamcook/formcheck/internal/dialog"
	"github.com/teamcook/formcheck/internal/logging"
	"github.com/teamcook/formcheck/internal/session"
)

// AuthHandler implements the sign-up / login / profile endpoints the view
// layer drives.
type AuthHandler struct {
	Sessions SessionStore
	Dialogs  *dialog.Orchestrator
	Toasts   Notifier
	Limiter  RateLimiter
}

type signUpRequest struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp handles POST /api/v1/auth/signup.
func (h AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if !allowRequest(h.Limiter, r, "signup") {
		respondJSON(ctx, w, http.StatusTooManyRequests, errorBody("too many attempts, slow down"))
		return
	}

	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid signup payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	if err := h.Sessions.Register(ctx, req.Nickname, req.Email, req.Password); err != nil {
		if errors.Is(err, session.ErrMissingFields) {
			h.toast("Please fill in both nickname and email.")
			respondJSON(ctx, w, http.StatusBadRequest, errorBody("nickname and email are required"))
			return
		}
		logger.Error("signup failed", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, errorBody("failed to register"))
		return
	}

	// The signup dialog hands off to login in one step.
	h.Dialogs.SwitchToLogin()
	respondJSON(ctx, w, http.StatusCreated, map[string]string{"status": "registered"})
}

// Login handles POST /api/v1/auth/login.
func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if !allowRequest(h.Limiter, r, "login") {
		respondJSON(ctx, w, http.StatusTooManyRequests, errorBody("too many attempts, slow down"))
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	req.Email = strings.TrimSpace(req.Email)

	signedIn, err := h.Sessions.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrMissingFields):
			h.toast("Please enter both email and password.")
			respondJSON(ctx, w, http.StatusBadRequest, errorBody("email and password are required"))
		case errors.Is(err, session.ErrNoAccount), errors.Is(err, session.ErrEmailMismatch):
			h.toast("That email doesn't match a registered account.")
			respondJSON(ctx, w, http.StatusUnauthorized, errorBody("invalid credentials"))
		default:
			logger.Error("login failed", "error", err)
			respondJSON(ctx, w, http.StatusInternalServerError, errorBody("failed to log in"))
		}
		return
	}

	h.Dialogs.Close()
	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"session":    sessionView(signedIn),
		"navigateTo": "/community",
	})
}

// Logout handles POST /api/v1/auth/logout.
func (h AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.Sessions.Logout(ctx)
	h.toast("You have been logged out.")
	respondJSON(ctx, w, http.StatusOK, map[string]string{"status": "logged out", "navigateTo": "/"})
}

type profileRequest struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

// UpdateProfile handles PUT /api/v1/auth/profile.
func (h AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(ctx, w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	if err := h.Sessions.UpdateProfile(ctx, req.Nickname, req.Email); err != nil {
		switch {
		case errors.Is(err, session.ErrNotAuthenticated):
			respondJSON(ctx, w, http.StatusUnauthorized, errorBody("log in first"))
		case errors.Is(err, session.ErrMissingFields):
			h.toast("Please enter a nickname.")
			respondJSON(ctx, w, http.StatusBadRequest, errorBody("nickname is required"))
		default:
			respondJSON(ctx, w, http.StatusInternalServerError, errorBody("failed to update profile"))
		}
		return
	}

	h.toast("Your profile has been saved.")
	respondJSON(ctx, w, http.StatusOK, map[string]any{"session": sessionView(h.Sessions.Current())})
}

type deleteAccountRequest struct {
	Password string `json:"password"`
}

// DeleteAccount handles DELETE /api/v1/auth/account.
func (h AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req deleteAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(ctx, w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	if err := h.Sessions.DeleteAccount(ctx, req.Password); err != nil {
		switch {
		case errors.Is(err, session.ErrNotAuthenticated):
			respondJSON(ctx, w, http.StatusUnauthorized, errorBody("log in first"))
		case errors.Is(err, session.ErrMissingFields), errors.Is(err, session.ErrPasswordMismatch):
			h.toast("Password does not match.")
			respondJSON(ctx, w, http.StatusForbidden, errorBody("password does not match"))
		default:
			respondJSON(ctx, w, http.StatusInternalServerError, errorBody("failed to delete account"))
		}
		return
	}

	h.Dialogs.Resolve()
	h.toast("Your account has been removed.")
	respondJSON(ctx, w, http.StatusOK, map[string]string{"status": "deleted", "navigateTo": "/"})
}

func (h AuthHandler) toast(message string) {
	if h.Toasts != nil {
		h.Toasts.Notify(message)
	}
}
