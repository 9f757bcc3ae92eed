package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/teamcook/formcheck/internal/catalog"
	"github.com/teamcook/formcheck/internal/dialog"
)

// CommentHandler implements the feedback-thread endpoints.
type CommentHandler struct {
	Sessions SessionStore
	Catalog  Catalog
	Dialogs  *dialog.Orchestrator
	Toasts   Notifier
}

// List handles GET /api/v1/videos/{id}/comments.
func (h CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if _, err := h.Catalog.Get(id); err != nil {
		respondJSON(ctx, w, http.StatusNotFound, errorBody("video not found"))
		return
	}
	respondJSON(ctx, w, http.StatusOK, map[string]any{"comments": h.Catalog.Comments(id)})
}

type commentRequest struct {
	Text string `json:"text"`
}

// Create handles POST /api/v1/videos/{id}/comments.
func (h CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	current := h.Sessions.Current()
	if !current.Authenticated {
		h.toast("Log in to leave feedback.")
		respondJSON(ctx, w, http.StatusUnauthorized, errorBody("log in first"))
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(ctx, w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	commentID, err := h.Catalog.AddComment(ctx, id, current.Nickname, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			respondJSON(ctx, w, http.StatusNotFound, errorBody("video not found"))
		case errors.Is(err, catalog.ErrEmptyField):
			h.toast("Please write a comment first.")
			respondJSON(ctx, w, http.StatusBadRequest, errorBody("comment text is required"))
		default:
			respondJSON(ctx, w, http.StatusInternalServerError, errorBody("failed to post comment"))
		}
		return
	}

	h.toast("Your comment has been posted.")
	respondJSON(ctx, w, http.StatusCreated, map[string]any{"id": commentID})
}

// Update handles PUT /api/v1/videos/{id}/comments/{commentID}. Ownership is
// enforced again inside the catalog; this handler only maps outcomes.
func (h CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	commentID, ok := h.commentID(w, r)
	if !ok {
		return
	}

	current := h.Sessions.Current()
	if !current.Authenticated {
		respondJSON(ctx, w, http.StatusUnauthorized, errorBody("log in first"))
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(ctx, w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	if err := h.Catalog.UpdateComment(ctx, id, commentID, current.Nickname, req.Text); err != nil {
		h.respondCommentError(ctx, w, err)
		return
	}

	if h.Dialogs.Current().Kind == dialog.KindEditComment {
		h.Dialogs.Resolve()
	}
	h.toast("Your comment has been updated.")
	respondJSON(ctx, w, http.StatusOK, map[string]string{"status": "updated"})
}

// Delete handles DELETE /api/v1/videos/{id}/comments/{commentID}.
func (h CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	commentID, ok := h.commentID(w, r)
	if !ok {
		return
	}

	current := h.Sessions.Current()
	if !current.Authenticated {
		respondJSON(ctx, w, http.StatusUnauthorized, errorBody("log in first"))
		return
	}

	if err := h.Catalog.DeleteComment(ctx, id, commentID, current.Nickname); err != nil {
		h.respondCommentError(ctx, w, err)
		return
	}

	h.toast("Your comment has been deleted.")
	respondJSON(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h CommentHandler) commentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("commentID")
	commentID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondJSON(r.Context(), w, http.StatusBadRequest, errorBody("invalid comment id"))
		return 0, false
	}
	return commentID, true
}

func (h CommentHandler) respondCommentError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		respondJSON(ctx, w, http.StatusNotFound, errorBody("comment not found"))
	case errors.Is(err, catalog.ErrNotOwner):
		respondJSON(ctx, w, http.StatusForbidden, errorBody("only the author may change this comment"))
	case errors.Is(err, catalog.ErrEmptyField):
		h.toast("Please write a comment first.")
		respondJSON(ctx, w, http.StatusBadRequest, errorBody("comment text is required"))
	default:
		respondJSON(ctx, w, http.StatusInternalServerError, errorBody("failed to change comment"))
	}
}

func (h CommentHandler) toast(message string) {
	if h.Toasts != nil {
		h.Toasts.Notify(message)
	}
}
