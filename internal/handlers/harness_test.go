package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/teamcook/formcheck/internal/catalog"
	"github.com/teamcook/formcheck/internal/dialog"
	"github.com/teamcook/formcheck/internal/notify"
	"github.com/teamcook/formcheck/internal/persist"
	"github.com/teamcook/formcheck/internal/session"
	"github.com/teamcook/formcheck/internal/storage"
	"github.com/teamcook/formcheck/internal/upload"
)

// testEnv wires the real stores behind the route table so handler tests
// exercise the same paths the server does.
type testEnv struct {
	mux      *http.ServeMux
	sessions *session.Store
	catalog  *catalog.Store
	dialogs  *dialog.Orchestrator
	toasts   *notify.Queue
	limiter  RateLimiter
}

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(string) bool { return false }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bridge := persist.NewBridge(storage.NewMemoryKV(), logger, nil)

	toasts := notify.NewQueue(time.Minute, nil)
	env := &testEnv{
		sessions: session.NewStore(ctx, bridge, toasts, nil),
		catalog:  catalog.NewStore(ctx, bridge, nil),
		dialogs:  dialog.New(),
		toasts:   toasts,
	}

	env.mux = http.NewServeMux()
	RegisterRoutes(env.mux, Dependencies{
		Sessions:    env.sessions,
		Catalog:     env.catalog,
		Dialogs:     env.dialogs,
		Toasts:      env.toasts,
		Transfers:   upload.NewSimulator(logger),
		Limiter:     env.limiter,
		UploadDelay: 50 * time.Millisecond,
		EditDelay:   25 * time.Millisecond,
	})
	return env
}

// newLimitedEnv registers routes with a limiter that refuses everything.
func newLimitedEnv(t *testing.T) *testEnv {
	t.Helper()

	env := newTestEnv(t)
	env.limiter = denyAllLimiter{}
	env.mux = http.NewServeMux()
	RegisterRoutes(env.mux, Dependencies{
		Sessions: env.sessions,
		Catalog:  env.catalog,
		Dialogs:  env.dialogs,
		Toasts:   env.toasts,
		Limiter:  env.limiter,
	})
	return env
}

func (env *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) signUpAndLogin(t *testing.T, nickname, email string) {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/v1/auth/signup", map[string]string{
		"nickname": nickname, "email": email, "password": "pw",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": email, "password": "pw",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", rec.Code, rec.Body.String())
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// waitFor polls until check passes or the deadline hits, for effects that
// apply after a simulated transfer delay.
func waitFor(t *testing.T, check func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for !check() {
		select {
		case <-deadline:
			t.Fatal("condition never became true")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
