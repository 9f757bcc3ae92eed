package handlers

import (
	"context"

	"github.com/teamcook/formcheck/internal/models"
)

// SessionStore captures the identity operations required by the auth handlers.
type SessionStore interface {
	Current() models.Session
	Register(ctx context.Context, nickname, email, password string) error
	Login(ctx context.Context, email, password string) (models.Session, error)
	Logout(ctx context.Context)
	UpdateProfile(ctx context.Context, nickname, email string) error
	DeleteAccount(ctx context.Context, password string) error
}

// Catalog captures the content operations required by the video and comment
// handlers.
type Catalog interface {
	AddVideo(ctx context.Context, title string, category models.Category, author string) (string, error)
	Get(id string) (models.Video, error)
	UpdateVideoTitle(ctx context.Context, id, newTitle string) error
	UpdateVideoMedia(ctx context.Context, id string) error
	DeleteVideo(ctx context.Context, id string) error
	RecordView(ctx context.Context, id string)
	ListByAuthor(nickname string) []models.Video
	ListFiltered(category models.Category, searchTerm string, order models.SortOrder) []models.Video
	AddComment(ctx context.Context, videoID, author, text string) (int64, error)
	UpdateComment(ctx context.Context, videoID string, commentID int64, author, newText string) error
	DeleteComment(ctx context.Context, videoID string, commentID int64, author string) error
	Comments(videoID string) []models.Comment
}

// Notifier is the toast surface handlers feed operation outcomes into.
type Notifier interface {
	Notify(message string) models.Toast
	Current() *models.Toast
}
