package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/teamcook/formcheck/internal/catalog"
	"github.com/teamcook/formcheck/internal/dialog"
	"github.com/teamcook/formcheck/internal/logging"
	"github.com/teamcook/formcheck/internal/models"
	"github.com/teamcook/formcheck/internal/upload"
)

// VideoHandler implements the catalog endpoints: listing, the simulated
// upload, edits, and deletion.
type VideoHandler struct {
	Sessions  SessionStore
	Catalog   Catalog
	Dialogs   *dialog.Orchestrator
	Toasts    Notifier
	Transfers *upload.Simulator

	UploadDelay time.Duration
	EditDelay   time.Duration
}

// List handles GET /api/v1/videos with category, search, and sort params.
func (h VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query()
	category := models.Category(strings.TrimSpace(query.Get("category")))
	if category != "" && category != catalog.CategoryAll && !category.Valid() {
		respondJSON(ctx, w, http.StatusBadRequest, errorBody("unknown category"))
		return
	}

	order := models.SortOrder(query.Get("sort"))
	if order == "" {
		order = models.SortLatest
	}

	videos := h.Catalog.ListFiltered(category, query.Get("search"), order)
	respondJSON(ctx, w, http.StatusOK, map[string]any{"videos": videos})
}

// ListMine handles GET /api/v1/videos/mine, the my-page listing.
func (h VideoHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	current := h.Sessions.Current()
	if !current.Authenticated {
		respondJSON(ctx, w, http.StatusUnauthorized, errorBody("log in first"))
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{"videos": h.Catalog.ListByAuthor(current.Nickname)})
}

type createVideoRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	FileName string `json:"fileName"`
}

// Create handles POST /api/v1/videos. The transfer is simulated: validation
// happens up front, the catalog insertion after the fixed upload delay. The
// triggering dialog stays open but busy until the effect applies.
func (h VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	current := h.Sessions.Current()
	if !current.Authenticated {
		h.toast("Uploading requires logging in first.")
		respondJSON(ctx, w, http.StatusUnauthorized, errorBody("log in first"))
		return
	}

	var req createVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(ctx, w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.FileName) == "" {
		h.toast("Please provide both a title and a video file.")
		respondJSON(ctx, w, http.StatusBadRequest, errorBody("title and file are required"))
		return
	}

	category := models.Category(req.Category)
	if !category.Valid() {
		respondJSON(ctx, w, http.StatusBadRequest, errorBody("unknown category"))
		return
	}

	if h.Dialogs.Current().Busy {
		respondJSON(ctx, w, http.StatusConflict, errorBody("an upload is already in progress"))
		return
	}
	h.Dialogs.SetBusy(true)

	author := current.Nickname
	title := req.Title
	h.Transfers.Begin(h.UploadDelay, func() {
		// The request context is gone by the time the transfer lands, so the
		// deferred work runs under its own span.
		applyCtx, span := logging.StartSpan(logging.WithLogger(context.Background(), logger), "upload.apply")
		defer span.End()

		id, err := h.Catalog.AddVideo(applyCtx, title, category, author)
		if err != nil {
			logger.Error("deferred upload failed", "error", err)
			h.toast("Upload failed, please try again.")
			h.Dialogs.SetBusy(false)
			return
		}
		logger.Info("simulated upload completed", "videoId", id, "author", author)
		h.toast("Your video has been uploaded!")
		h.Dialogs.Resolve()
	})

	respondJSON(ctx, w, http.StatusAccepted, map[string]string{"status": "uploading"})
}

// Get handles GET /api/v1/videos/{id} and records the view.
func (h VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	video, err := h.Catalog.Get(r.PathValue("id"))
	if err != nil {
		respondJSON(ctx, w, http.StatusNotFound, errorBody("video not found"))
		return
	}

	h.Catalog.RecordView(ctx, video.ID)
	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"video":    video,
		"comments": h.Catalog.Comments(video.ID),
	})
}

// RecordView handles POST /api/v1/videos/{id}/view for views counted without
// fetching the detail payload. Unknown ids are ignored, matching the store.
func (h VideoHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.Catalog.RecordView(ctx, r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

type updateVideoRequest struct {
	Title        string `json:"title"`
	ReplaceMedia bool   `json:"replaceMedia"`
}

// Update handles PUT /api/v1/videos/{id}. Only the owner may edit; the edit
// applies after the simulated transfer delay, like the original edit dialog.
func (h VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)
	id := r.PathValue("id")

	video, err := h.Catalog.Get(id)
	if err != nil {
		respondJSON(ctx, w, http.StatusNotFound, errorBody("video not found"))
		return
	}

	current := h.Sessions.Current()
	if !current.Authenticated || current.Nickname != video.Author {
		respondJSON(ctx, w, http.StatusForbidden, errorBody("only the uploader may edit this video"))
		return
	}

	var req updateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(ctx, w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		h.toast("Please enter a title.")
		respondJSON(ctx, w, http.StatusBadRequest, errorBody("title is required"))
		return
	}

	if h.Dialogs.Current().Busy {
		respondJSON(ctx, w, http.StatusConflict, errorBody("an edit is already in progress"))
		return
	}
	h.Dialogs.SetBusy(true)

	title := req.Title
	replaceMedia := req.ReplaceMedia
	h.Transfers.Begin(h.EditDelay, func() {
		applyCtx, span := logging.StartSpan(logging.WithLogger(context.Background(), logger), "edit.apply")
		defer span.End()

		if err := h.Catalog.UpdateVideoTitle(applyCtx, id, title); err != nil {
			logger.Error("deferred edit failed", "videoId", id, "error", err)
			h.toast("Edit failed, the video may have been removed.")
			h.Dialogs.SetBusy(false)
			return
		}
		if replaceMedia {
			if err := h.Catalog.UpdateVideoMedia(applyCtx, id); err != nil {
				logger.Error("deferred media replace failed", "videoId", id, "error", err)
			}
		}
		h.toast("Your video has been updated!")
		h.Dialogs.Resolve()
	})

	respondJSON(ctx, w, http.StatusAccepted, map[string]string{"status": "updating"})
}

// Delete handles DELETE /api/v1/videos/{id}. Deletion is immediate.
func (h VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	video, err := h.Catalog.Get(id)
	if err != nil {
		respondJSON(ctx, w, http.StatusNotFound, errorBody("video not found"))
		return
	}

	current := h.Sessions.Current()
	if !current.Authenticated || current.Nickname != video.Author {
		respondJSON(ctx, w, http.StatusForbidden, errorBody("only the uploader may delete this video"))
		return
	}

	if err := h.Catalog.DeleteVideo(ctx, id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, errorBody("video not found"))
			return
		}
		respondJSON(ctx, w, http.StatusInternalServerError, errorBody("failed to delete video"))
		return
	}

	h.Dialogs.Resolve()
	h.toast("\"" + video.Title + "\" has been deleted.")
	respondJSON(ctx, w, http.StatusOK, map[string]string{"status": "deleted", "navigateTo": "/community"})
}

func (h VideoHandler) toast(message string) {
	if h.Toasts != nil {
		h.Toasts.Notify(message)
	}
}
