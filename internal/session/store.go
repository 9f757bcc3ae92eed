// Package session owns the current authenticated identity and the single
// registered credential of the mock backend.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/teamcook/formcheck/internal/models"
	"github.com/teamcook/formcheck/internal/persist"
)

var (
	// ErrMissingFields indicates a required input was empty or whitespace.
	ErrMissingFields = errors.New("required fields are missing")
	// ErrNoAccount indicates no credential has been registered yet.
	ErrNoAccount = errors.New("no account is registered")
	// ErrEmailMismatch indicates the email does not match the registered one.
	ErrEmailMismatch = errors.New("email does not match the registered account")
	// ErrPasswordMismatch indicates an account-deletion confirmation failed.
	ErrPasswordMismatch = errors.New("password does not match")
	// ErrNotAuthenticated indicates the operation needs a signed-in session.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Notifier receives the side-channel status messages operations emit.
type Notifier interface {
	Notify(message string) models.Toast
}

// LoginRecorder counts login outcomes.
type LoginRecorder interface {
	RecordLogin()
	RecordLoginFailure()
}

// Store holds the session and credential state and mirrors every accepted
// mutation through the persistence bridge before returning.
type Store struct {
	bridge   *persist.Bridge
	notifier Notifier
	logins   LoginRecorder

	// Navigate, when set, is invoked with the path a successful login wants
	// the view to show. The view layer owns routing; this is only the request.
	Navigate func(path string)

	mu         sync.Mutex
	session    models.Session
	credential *models.Credential
}

// NewStore constructs a store and restores persisted state: the registered
// credential and, when both session keys are present, the signed-in session.
func NewStore(ctx context.Context, bridge *persist.Bridge, notifier Notifier, logins LoginRecorder) *Store {
	if bridge == nil {
		panic("session: persistence bridge must not be nil")
	}

	s := &Store{bridge: bridge, notifier: notifier, logins: logins}
	if cred, ok := bridge.LoadCredential(ctx); ok {
		s.credential = &cred
	}
	if restored, ok := bridge.LoadSession(ctx); ok {
		s.session = restored
	}
	return s
}

// Current returns a copy of the session snapshot.
func (s *Store) Current() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Register replaces the single registered credential. It validates input,
// persists, and emits a confirmation toast, but does not authenticate: the
// user still logs in afterwards. The password is hashed and stored yet login
// never checks it; that asymmetry is the documented shape of the mock.
func (s *Store) Register(ctx context.Context, nickname, email, password string) error {
	nickname = strings.TrimSpace(nickname)
	email = strings.TrimSpace(email)
	if nickname == "" || email == "" {
		return ErrMissingFields
	}

	var hash string
	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		hash = string(hashed)
	}

	cred := models.Credential{Nickname: nickname, Email: email, PasswordHash: hash}

	s.mu.Lock()
	s.credential = &cred
	s.mu.Unlock()

	s.bridge.SaveCredential(ctx, cred)
	s.notify("Welcome aboard, " + nickname + "! Please log in.")
	return nil
}

// Login authenticates against the registered credential. Only the email is
// compared; the password must merely be non-empty. On success the session is
// persisted and the store requests navigation to the community view.
func (s *Store) Login(ctx context.Context, email, password string) (models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		s.recordFailure()
		return models.Session{}, ErrMissingFields
	}

	s.mu.Lock()
	cred := s.credential
	s.mu.Unlock()

	if cred == nil {
		s.recordFailure()
		return models.Session{}, ErrNoAccount
	}
	if email != cred.Email {
		s.recordFailure()
		return models.Session{}, ErrEmailMismatch
	}

	session := models.Session{Nickname: cred.Nickname, Email: cred.Email, Authenticated: true}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	s.bridge.SaveSession(ctx, session)
	if s.logins != nil {
		s.logins.RecordLogin()
	}
	s.notify("Welcome back, " + session.Nickname + "!")
	if s.Navigate != nil {
		s.Navigate("/community")
	}
	return session, nil
}

// Logout clears the session and removes the persisted session keys. It always
// succeeds, signed in or not.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.session = models.Session{}
	s.mu.Unlock()

	s.bridge.SaveSession(ctx, models.Session{})
}

// UpdateProfile overwrites the session's nickname and email and persists the
// new identity. Uniqueness is not re-validated; the mock has one account.
func (s *Store) UpdateProfile(ctx context.Context, nickname, email string) error {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return ErrMissingFields
	}

	s.mu.Lock()
	if !s.session.Authenticated {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	s.session.Nickname = nickname
	if trimmed := strings.TrimSpace(email); trimmed != "" {
		s.session.Email = trimmed
	}
	updated := s.session
	s.mu.Unlock()

	s.bridge.SaveSession(ctx, updated)
	return nil
}

// DeleteAccount confirms the password against the stored hash and logs the
// session out. The credential record itself is left behind, mirroring the
// demo scaffolding of the original client.
func (s *Store) DeleteAccount(ctx context.Context, password string) error {
	s.mu.Lock()
	if !s.session.Authenticated {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	cred := s.credential
	s.mu.Unlock()

	if password == "" {
		return ErrMissingFields
	}
	if cred == nil || cred.PasswordHash == "" {
		return ErrPasswordMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}

	s.Logout(ctx)
	return nil
}

func (s *Store) notify(message string) {
	if s.notifier != nil {
		s.notifier.Notify(message)
	}
}

func (s *Store) recordFailure() {
	if s.logins != nil {
		s.logins.RecordLoginFailure()
	}
}
