package dialog

import (
	"testing"

	"github.com/teamcook/formcheck/internal/models"
)

func TestOrchestratorStartsClosed(t *testing.T) {
	o := New()
	if got := o.Current(); got.Kind != KindNone || got.Busy {
		t.Fatalf("expected closed idle state, got %+v", got)
	}
}

func TestOrchestratorMutualExclusion(t *testing.T) {
	o := New()

	o.OpenLogin()
	if got := o.Current(); got.Kind != KindLogin {
		t.Fatalf("expected login dialog, got %+v", got)
	}

	o.OpenUpload()
	got := o.Current()
	if got.Kind != KindUpload {
		t.Fatalf("expected upload dialog to replace login, got %+v", got)
	}
	if got.Video != nil || got.Comment != nil {
		t.Fatalf("payload leaked across dialogs: %+v", got)
	}
}

func TestOrchestratorCarriesPayload(t *testing.T) {
	o := New()

	video := models.Video{ID: "42", Title: "Bench press check", Author: "kim"}
	o.OpenEditVideo(video)
	got := o.Current()
	if got.Kind != KindEditVideo || got.Video == nil || got.Video.ID != "42" {
		t.Fatalf("expected edit dialog carrying video 42, got %+v", got)
	}

	comment := models.Comment{ID: 7, VideoID: "42", Author: "lee", Text: "solid depth"}
	o.OpenEditComment(comment)
	got = o.Current()
	if got.Kind != KindEditComment || got.Comment == nil || got.Comment.ID != 7 {
		t.Fatalf("expected comment edit dialog, got %+v", got)
	}
	if got.Video != nil {
		t.Fatalf("previous video payload survived the switch: %+v", got)
	}
}

func TestOrchestratorSwitchBetweenAuthDialogs(t *testing.T) {
	o := New()

	o.OpenSignup()
	o.SwitchToLogin()
	if got := o.Current(); got.Kind != KindLogin {
		t.Fatalf("expected login after switch, got %+v", got)
	}

	o.SwitchToSignup()
	if got := o.Current(); got.Kind != KindSignup {
		t.Fatalf("expected signup after switch, got %+v", got)
	}
}

func TestOrchestratorClose(t *testing.T) {
	o := New()
	o.OpenDeleteAccount()

	if !o.Close() {
		t.Fatal("close of an idle dialog must succeed")
	}
	if got := o.Current(); got.Kind != KindNone {
		t.Fatalf("expected none after close, got %+v", got)
	}

	// Closing with nothing open stays successful.
	if !o.Close() {
		t.Fatal("close with no dialog open must succeed")
	}
}

func TestOrchestratorBusyGuards(t *testing.T) {
	o := New()
	o.OpenUpload()
	o.SetBusy(true)

	if o.Close() {
		t.Fatal("close must be refused while a transfer is in flight")
	}
	if got := o.Current(); got.Kind != KindUpload || !got.Busy {
		t.Fatalf("expected busy upload dialog to survive close, got %+v", got)
	}

	// Opening another dialog while busy keeps the current one.
	o.OpenLogin()
	if got := o.Current(); got.Kind != KindUpload {
		t.Fatalf("busy dialog was replaced: %+v", got)
	}

	o.Resolve()
	got := o.Current()
	if got.Kind != KindNone || got.Busy {
		t.Fatalf("resolve must close and clear busy, got %+v", got)
	}
}

func TestOrchestratorSetBusyWithoutDialog(t *testing.T) {
	o := New()
	o.SetBusy(true)
	if got := o.Current(); got.Busy {
		t.Fatalf("busy must not be settable with no dialog open: %+v", got)
	}
}
