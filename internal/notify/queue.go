// Package notify owns the single-slot toast shown to the user. A new toast
// replaces whatever is on screen; the superseded expiry timer fires against
// an id that is no longer present and removes nothing.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teamcook/formcheck/internal/models"
)

// ShownRecorder is notified when a toast is displayed.
type ShownRecorder interface {
	RecordToastShown()
}

// Queue displays at most one toast at a time and expires it after a fixed TTL.
type Queue struct {
	ttl    time.Duration
	shown  ShownRecorder
	now    func() time.Time
	mu     sync.Mutex
	toast  *models.Toast
	cancel *time.Timer
}

// NewQueue constructs a queue expiring toasts after ttl. shown may be nil.
func NewQueue(ttl time.Duration, shown ShownRecorder) *Queue {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return &Queue{ttl: ttl, shown: shown, now: time.Now}
}

// Notify replaces the current toast with message and schedules its removal.
// The previous toast's timer is cancelled; if it fires anyway it targets an
// id that is gone, and removal of an absent id is a no-op.
func (q *Queue) Notify(message string) models.Toast {
	toast := models.Toast{
		ID:        uuid.NewString(),
		Message:   message,
		CreatedAt: q.now().UTC(),
	}

	q.mu.Lock()
	if q.cancel != nil {
		q.cancel.Stop()
	}
	q.toast = &toast
	q.cancel = time.AfterFunc(q.ttl, func() { q.expire(toast.ID) })
	q.mu.Unlock()

	if q.shown != nil {
		q.shown.RecordToastShown()
	}
	return toast
}

// Current returns the visible toast, or nil when none is displayed.
func (q *Queue) Current() *models.Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.toast == nil {
		return nil
	}
	copied := *q.toast
	return &copied
}

// Dismiss removes the visible toast immediately.
func (q *Queue) Dismiss() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.cancel != nil {
		q.cancel.Stop()
		q.cancel = nil
	}
	q.toast = nil
}

func (q *Queue) expire(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.toast == nil || q.toast.ID != id {
		return
	}
	q.toast = nil
	q.cancel = nil
}
