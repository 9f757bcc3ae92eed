// Package catalog owns the video collection and its per-video feedback
// threads. Videos are kept most-recent-insertion-first; listings are pure
// derivations that never mutate the collection.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/teamcook/formcheck/internal/models"
	"github.com/teamcook/formcheck/internal/persist"
)

var (
	// ErrNotFound indicates the referenced video or comment no longer exists.
	ErrNotFound = errors.New("record not found")
	// ErrEmptyField indicates a required input was blank.
	ErrEmptyField = errors.New("required field is empty")
	// ErrUnknownCategory indicates the category is not one of the known kinds.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrNotAuthenticated indicates the operation needs a signed-in author.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNotOwner indicates the caller does not own the targeted comment.
	ErrNotOwner = errors.New("not the comment author")
)

// Recorder counts catalog mutations.
type Recorder interface {
	RecordVideoAdded()
	RecordVideoDeleted()
	RecordCommentAdded()
}

// Store is the content catalog. Every accepted mutation is mirrored to the
// backing store through the persistence bridge before the call returns.
type Store struct {
	bridge  *persist.Bridge
	metrics Recorder
	nowFunc func() time.Time

	mu      sync.Mutex
	videos  []models.Video
	threads map[string][]models.Comment
}

// NewStore restores the catalog from the bridge, seeding the bootstrap
// dataset exactly once: only when the catalog key has never been written.
func NewStore(ctx context.Context, bridge *persist.Bridge, metrics Recorder) *Store {
	if bridge == nil {
		panic("catalog: persistence bridge must not be nil")
	}

	s := &Store{bridge: bridge, metrics: metrics, nowFunc: time.Now}

	videos, ok := bridge.LoadCatalog(ctx)
	if !ok {
		videos = seedVideos()
		bridge.SaveCatalog(ctx, videos)
	}
	s.videos = videos
	s.threads = seedThreads(videos)
	return s
}

// AddVideo validates and prepends a new video, so the collection stays
// most-recent-first regardless of the derived sort asked for later.
func (s *Store) AddVideo(ctx context.Context, title string, category models.Category, author string) (string, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if title == "" {
		return "", ErrEmptyField
	}
	if author == "" {
		return "", ErrNotAuthenticated
	}
	if !category.Valid() {
		return "", ErrUnknownCategory
	}

	s.mu.Lock()
	now := s.nowFunc().UTC()
	id := s.nextVideoIDLocked(now)
	video := models.Video{
		ID:            id,
		Title:         sanitizeText(title),
		Author:        author,
		FeedbackCount: 0,
		ViewCount:     0,
		Category:      category,
		CreatedAt:     now,
		MediaRef:      fmt.Sprintf("/mock_new_upload_%s.mp4", id),
	}
	s.videos = append([]models.Video{video}, s.videos...)
	s.threads[id] = defaultThread(id, now)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.bridge.SaveCatalog(ctx, snapshot)
	if s.metrics != nil {
		s.metrics.RecordVideoAdded()
	}
	return id, nil
}

// Get returns the video with the given id.
func (s *Store) Get(id string) (models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.videos {
		if v.ID == id {
			return v, nil
		}
	}
	return models.Video{}, ErrNotFound
}

// UpdateVideoTitle replaces only the title of an existing video.
func (s *Store) UpdateVideoTitle(ctx context.Context, id, newTitle string) error {
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		return ErrEmptyField
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.videos[idx].Title = sanitizeText(newTitle)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.bridge.SaveCatalog(ctx, snapshot)
	return nil
}

// UpdateVideoMedia assigns a fresh mock media reference, standing in for the
// file replacement the edit dialog offers. No bytes move anywhere.
func (s *Store) UpdateVideoMedia(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.videos[idx].MediaRef = fmt.Sprintf("/mock_updated_%s_%d.mp4", id, s.nowFunc().UnixMilli())
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.bridge.SaveCatalog(ctx, snapshot)
	return nil
}

// DeleteVideo removes the video and drops its feedback thread.
func (s *Store) DeleteVideo(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.videos = append(s.videos[:idx], s.videos[idx+1:]...)
	delete(s.threads, id)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.bridge.SaveCatalog(ctx, snapshot)
	if s.metrics != nil {
		s.metrics.RecordVideoDeleted()
	}
	return nil
}

// RecordView bumps the informational view counter. Unknown ids are ignored;
// the detail view may race a deletion and that is not an error.
func (s *Store) RecordView(ctx context.Context, id string) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.videos[idx].ViewCount++
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.bridge.SaveCatalog(ctx, snapshot)
}

// ListByAuthor returns the author's videos, newest first.
func (s *Store) ListByAuthor(nickname string) []models.Video {
	if strings.TrimSpace(nickname) == "" {
		return nil
	}
	mine := make([]models.Video, 0)
	s.mu.Lock()
	for _, v := range s.videos {
		if v.Author == nickname {
			mine = append(mine, v)
		}
	}
	s.mu.Unlock()
	sortLatest(mine)
	return mine
}

// AddComment prepends a comment to the video's thread. The author must be a
// signed-in nickname and the text non-blank; text is sanitized before storage.
func (s *Store) AddComment(ctx context.Context, videoID, author, text string) (int64, error) {
	author = strings.TrimSpace(author)
	text = strings.TrimSpace(text)
	if author == "" {
		return 0, ErrNotAuthenticated
	}
	if text == "" {
		return 0, ErrEmptyField
	}

	s.mu.Lock()
	if s.indexLocked(videoID) < 0 {
		s.mu.Unlock()
		return 0, ErrNotFound
	}
	now := s.nowFunc().UTC()
	id := s.nextCommentIDLocked(videoID, now)
	comment := models.Comment{
		ID:        id,
		VideoID:   videoID,
		Author:    author,
		Text:      sanitizeText(text),
		CreatedAt: now,
	}
	s.threads[videoID] = append([]models.Comment{comment}, s.threads[videoID]...)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordCommentAdded()
	}
	return id, nil
}

// UpdateComment replaces the text of the caller's own comment. The ownership
// check runs here, at the store boundary, not only in the view layer.
func (s *Store) UpdateComment(ctx context.Context, videoID string, commentID int64, author, newText string) error {
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return ErrEmptyField
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	thread, ok := s.threads[videoID]
	if !ok {
		return ErrNotFound
	}
	for i := range thread {
		if thread[i].ID != commentID {
			continue
		}
		if thread[i].Author != author {
			return ErrNotOwner
		}
		thread[i].Text = sanitizeText(newText)
		return nil
	}
	return ErrNotFound
}

// DeleteComment removes the caller's own comment from the thread.
func (s *Store) DeleteComment(ctx context.Context, videoID string, commentID int64, author string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread, ok := s.threads[videoID]
	if !ok {
		return ErrNotFound
	}
	for i := range thread {
		if thread[i].ID != commentID {
			continue
		}
		if thread[i].Author != author {
			return ErrNotOwner
		}
		s.threads[videoID] = append(thread[:i], thread[i+1:]...)
		return nil
	}
	return ErrNotFound
}

// Comments returns a copy of the video's feedback thread, newest first.
func (s *Store) Comments(videoID string) []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	thread := s.threads[videoID]
	out := make([]models.Comment, len(thread))
	copy(out, thread)
	return out
}

// indexLocked returns the position of id in the collection, or -1.
func (s *Store) indexLocked(id string) int {
	for i := range s.videos {
		if s.videos[i].ID == id {
			return i
		}
	}
	return -1
}

// snapshotLocked copies the collection for handing to the bridge outside the
// lock.
func (s *Store) snapshotLocked() []models.Video {
	out := make([]models.Video, len(s.videos))
	copy(out, s.videos)
	return out
}

// nextVideoIDLocked derives an id from the creation time, bumping on
// collision so ids stay unique even within one millisecond.
func (s *Store) nextVideoIDLocked(now time.Time) string {
	ms := now.UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if s.indexLocked(id) < 0 {
			return id
		}
		ms++
	}
}

// nextCommentIDLocked derives a time-based id unique within the thread.
func (s *Store) nextCommentIDLocked(videoID string, now time.Time) int64 {
	ms := now.UnixMilli()
	for {
		taken := false
		for _, c := range s.threads[videoID] {
			if c.ID == ms {
				taken = true
				break
			}
		}
		if !taken {
			return ms
		}
		ms++
	}
}
