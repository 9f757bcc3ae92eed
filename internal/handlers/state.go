package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/teamcook/formcheck/internal/dialog"
	"github.com/teamcook/formcheck/internal/models"
)

// StateHandler exposes the composite snapshot the view renders from: session
// identity, the active dialog, and the visible toast.
type StateHandler struct {
	Sessions SessionStore
	Catalog  Catalog
	Dialogs  *dialog.Orchestrator
	Toasts   Notifier
}

type sessionPayload struct {
	Nickname      string `json:"nickname,omitempty"`
	Email         string `json:"email,omitempty"`
	Authenticated bool   `json:"authenticated"`
}

func sessionView(s models.Session) sessionPayload {
	return sessionPayload{Nickname: s.Nickname, Email: s.Email, Authenticated: s.Authenticated}
}

// Snapshot handles GET /api/v1/state.
func (h StateHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"session": sessionView(h.Sessions.Current()),
		"dialog":  h.Dialogs.Current(),
		"toast":   h.Toasts.Current(),
	})
}

type openDialogRequest struct {
	Kind      string `json:"kind"`
	VideoID   string `json:"videoId"`
	CommentID int64  `json:"commentId"`
}

// OpenDialog handles POST /api/v1/dialogs/open. Edit and delete dialogs carry
// the record they target, so the ids must resolve before the dialog opens.
func (h StateHandler) OpenDialog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req openDialogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(ctx, w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	switch dialog.Kind(req.Kind) {
	case dialog.KindLogin:
		h.Dialogs.OpenLogin()
	case dialog.KindSignup:
		h.Dialogs.OpenSignup()
	case dialog.KindUpload:
		if !h.Sessions.Current().Authenticated {
			// Same flow as the upload button for visitors: prompt login.
			h.Toasts.Notify("Uploading requires logging in first.")
			h.Dialogs.OpenLogin()
			respondJSON(ctx, w, http.StatusOK, map[string]any{"dialog": h.Dialogs.Current()})
			return
		}
		h.Dialogs.OpenUpload()
	case dialog.KindDeleteAccount:
		if !h.Sessions.Current().Authenticated {
			respondJSON(ctx, w, http.StatusUnauthorized, errorBody("log in first"))
			return
		}
		h.Dialogs.OpenDeleteAccount()
	case dialog.KindEditVideo, dialog.KindDeleteVideo:
		video, err := h.Catalog.Get(req.VideoID)
		if err != nil {
			respondJSON(ctx, w, http.StatusNotFound, errorBody("video not found"))
			return
		}
		if current := h.Sessions.Current(); !current.Authenticated || current.Nickname != video.Author {
			respondJSON(ctx, w, http.StatusForbidden, errorBody("only the uploader may manage this video"))
			return
		}
		if dialog.Kind(req.Kind) == dialog.KindEditVideo {
			h.Dialogs.OpenEditVideo(video)
		} else {
			h.Dialogs.OpenDeleteVideo(video)
		}
	case dialog.KindEditComment:
		comment, ok := h.findComment(req.VideoID, req.CommentID)
		if !ok {
			respondJSON(ctx, w, http.StatusNotFound, errorBody("comment not found"))
			return
		}
		if current := h.Sessions.Current(); !current.Authenticated || current.Nickname != comment.Author {
			respondJSON(ctx, w, http.StatusForbidden, errorBody("only the author may edit this comment"))
			return
		}
		h.Dialogs.OpenEditComment(comment)
	default:
		respondJSON(ctx, w, http.StatusBadRequest, errorBody("unknown dialog kind"))
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{"dialog": h.Dialogs.Current()})
}

// CloseDialog handles POST /api/v1/dialogs/close.
func (h StateHandler) CloseDialog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.Dialogs.Close() {
		respondJSON(ctx, w, http.StatusConflict, errorBody("a transfer is in progress"))
		return
	}
	respondJSON(ctx, w, http.StatusOK, map[string]any{"dialog": h.Dialogs.Current()})
}

type switchDialogRequest struct {
	To string `json:"to"`
}

// SwitchDialog handles POST /api/v1/dialogs/switch, the login/signup links.
func (h StateHandler) SwitchDialog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req switchDialogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(ctx, w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	switch dialog.Kind(req.To) {
	case dialog.KindLogin:
		h.Dialogs.SwitchToLogin()
	case dialog.KindSignup:
		h.Dialogs.SwitchToSignup()
	default:
		respondJSON(ctx, w, http.StatusBadRequest, errorBody("can only switch between login and signup"))
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{"dialog": h.Dialogs.Current()})
}

func (h StateHandler) findComment(videoID string, commentID int64) (models.Comment, bool) {
	for _, c := range h.Catalog.Comments(videoID) {
		if c.ID == commentID {
			return c, true
		}
	}
	return models.Comment{}, false
}
