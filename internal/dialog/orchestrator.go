// Package dialog tracks which modal is active. The state is a closed sum:
// exactly one dialog (or none) may be open, so mutual exclusion holds by
// construction rather than by a set of independent booleans.
package dialog

import (
	"sync"

	"github.com/teamcook/formcheck/internal/models"
)

// Kind names a modal interaction state.
type Kind string

const (
	KindNone          Kind = "none"
	KindLogin         Kind = "login"
	KindSignup        Kind = "signup"
	KindUpload        Kind = "upload"
	KindEditVideo     Kind = "edit_video"
	KindDeleteVideo   Kind = "delete_video"
	KindEditComment   Kind = "edit_comment"
	KindDeleteAccount Kind = "delete_account"
)

// State is a snapshot of the orchestrator: the active dialog kind plus the
// payload it carries. Busy marks an in-flight simulated transfer; the dialog
// stays open but refuses resubmission until the transfer applies.
type State struct {
	Kind    Kind            `json:"kind"`
	Video   *models.Video   `json:"video,omitempty"`
	Comment *models.Comment `json:"comment,omitempty"`
	Busy    bool            `json:"busy"`
}

// Orchestrator lives for the app's lifetime and starts with no dialog open.
type Orchestrator struct {
	mu    sync.Mutex
	state State
}

// New returns an orchestrator in the None state.
func New() *Orchestrator {
	return &Orchestrator{state: State{Kind: KindNone}}
}

// Current returns the active dialog state.
func (o *Orchestrator) Current() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// OpenLogin opens the login dialog, clearing any other active dialog.
func (o *Orchestrator) OpenLogin() { o.replace(State{Kind: KindLogin}) }

// OpenSignup opens the signup dialog, clearing any other active dialog.
func (o *Orchestrator) OpenSignup() { o.replace(State{Kind: KindSignup}) }

// OpenUpload opens the upload dialog.
func (o *Orchestrator) OpenUpload() { o.replace(State{Kind: KindUpload}) }

// OpenEditVideo opens the edit dialog carrying the video being edited.
func (o *Orchestrator) OpenEditVideo(video models.Video) {
	o.replace(State{Kind: KindEditVideo, Video: &video})
}

// OpenDeleteVideo opens the delete confirmation carrying the target video.
func (o *Orchestrator) OpenDeleteVideo(video models.Video) {
	o.replace(State{Kind: KindDeleteVideo, Video: &video})
}

// OpenEditComment opens the comment edit dialog carrying the target comment.
func (o *Orchestrator) OpenEditComment(comment models.Comment) {
	o.replace(State{Kind: KindEditComment, Comment: &comment})
}

// OpenDeleteAccount opens the account deletion confirmation.
func (o *Orchestrator) OpenDeleteAccount() { o.replace(State{Kind: KindDeleteAccount}) }

// SwitchToLogin closes the signup dialog and opens login in one step, used by
// the "already have an account" link. It behaves like OpenLogin from any state.
func (o *Orchestrator) SwitchToLogin() { o.replace(State{Kind: KindLogin}) }

// SwitchToSignup closes the login dialog and opens signup in one step.
func (o *Orchestrator) SwitchToSignup() { o.replace(State{Kind: KindSignup}) }

// Close returns to None. Close during an in-flight transfer is refused so the
// pending effect still has a dialog to resolve.
func (o *Orchestrator) Close() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state.Busy {
		return false
	}
	o.state = State{Kind: KindNone}
	return true
}

// SetBusy toggles the in-flight transfer flag. Setting busy with no dialog
// open is a no-op.
func (o *Orchestrator) SetBusy(busy bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state.Kind == KindNone {
		return
	}
	o.state.Busy = busy
}

// Resolve completes the active dialog: the busy flag clears and the dialog
// closes, regardless of which dialog was open.
func (o *Orchestrator) Resolve() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = State{Kind: KindNone}
}

func (o *Orchestrator) replace(next State) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state.Busy {
		// A dialog with a pending transfer keeps the screen until it resolves.
		return
	}
	o.state = next
}
