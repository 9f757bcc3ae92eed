// Package persist mirrors accepted store mutations into the key-value
// backing store and reads them back at startup. Synchronization is one-way:
// the in-memory stores are the source of truth, the bridge only shadows them.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/teamcook/formcheck/internal/models"
	"github.com/teamcook/formcheck/internal/storage"
)

// Persisted keys. Names are kept compatible with the browser client's
// localStorage layout.
const (
	KeyCatalog      = "community_videos"
	KeyRegNickname  = "registeredNickname"
	KeyRegEmail     = "registeredEmail"
	KeyRegPassword  = "registeredPasswordHash"
	KeyUserNickname = "userNickname"
	KeyUserEmail    = "userEmail"
)

// MissedWriteRecorder is notified when a backing store write is dropped.
type MissedWriteRecorder interface {
	RecordMissedWrite()
}

// Bridge serializes store state into a storage.KV. Write failures are logged
// and swallowed: the in-memory mutation stands and the caller is not blocked.
// A reload after a missed write may not reflect the change, which is the
// accepted degraded mode.
type Bridge struct {
	kv     storage.KV
	logger *slog.Logger
	missed MissedWriteRecorder
}

// NewBridge wires a bridge over the provided backing store. logger and missed
// may be nil.
func NewBridge(kv storage.KV, logger *slog.Logger, missed MissedWriteRecorder) *Bridge {
	if kv == nil {
		panic("persist: backing store must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{kv: kv, logger: logger, missed: missed}
}

// LoadCatalog reads the full catalog back. ok is false when the key has never
// been written, which tells the caller to seed.
func (b *Bridge) LoadCatalog(ctx context.Context) (videos []models.Video, ok bool) {
	raw, err := b.kv.Get(ctx, KeyCatalog)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			b.logger.Warn("catalog read failed, starting empty", "error", err)
		}
		return nil, false
	}
	if err := json.Unmarshal(raw, &videos); err != nil {
		b.logger.Warn("catalog payload corrupt, starting empty", "error", err)
		return nil, false
	}
	return videos, true
}

// SaveCatalog overwrites the persisted catalog with the full current value.
func (b *Bridge) SaveCatalog(ctx context.Context, videos []models.Video) {
	raw, err := json.Marshal(videos)
	if err != nil {
		b.dropped(KeyCatalog, err)
		return
	}
	if err := b.kv.Set(ctx, KeyCatalog, raw); err != nil {
		b.dropped(KeyCatalog, err)
	}
}

// LoadCredential reads the registered account, if any.
func (b *Bridge) LoadCredential(ctx context.Context) (models.Credential, bool) {
	nickname, err := b.getString(ctx, KeyRegNickname)
	if err != nil {
		return models.Credential{}, false
	}
	email, err := b.getString(ctx, KeyRegEmail)
	if err != nil {
		return models.Credential{}, false
	}
	// The hash key appeared later; older stores may not carry it.
	hash, _ := b.getString(ctx, KeyRegPassword)

	return models.Credential{Nickname: nickname, Email: email, PasswordHash: hash}, true
}

// SaveCredential overwrites the single registered account.
func (b *Bridge) SaveCredential(ctx context.Context, cred models.Credential) {
	b.setString(ctx, KeyRegNickname, cred.Nickname)
	b.setString(ctx, KeyRegEmail, cred.Email)
	b.setString(ctx, KeyRegPassword, cred.PasswordHash)
}

// LoadSession restores an authenticated session. Both keys must be present;
// anything else reads as signed-out.
func (b *Bridge) LoadSession(ctx context.Context) (models.Session, bool) {
	nickname, err := b.getString(ctx, KeyUserNickname)
	if err != nil {
		return models.Session{}, false
	}
	email, err := b.getString(ctx, KeyUserEmail)
	if err != nil {
		return models.Session{}, false
	}
	return models.Session{Nickname: nickname, Email: email, Authenticated: true}, true
}

// SaveSession mirrors the session: authenticated sessions write both keys,
// signed-out sessions remove them.
func (b *Bridge) SaveSession(ctx context.Context, session models.Session) {
	if !session.Authenticated {
		b.deleteKey(ctx, KeyUserNickname)
		b.deleteKey(ctx, KeyUserEmail)
		return
	}
	b.setString(ctx, KeyUserNickname, session.Nickname)
	b.setString(ctx, KeyUserEmail, session.Email)
}

// Reset clears every persisted key so the next start runs the seed path again.
// Unlike the mutation mirrors, reset failures are returned to the caller.
func (b *Bridge) Reset(ctx context.Context) error {
	keys := []string{KeyCatalog, KeyRegNickname, KeyRegEmail, KeyRegPassword, KeyUserNickname, KeyUserEmail}
	for _, key := range keys {
		if err := b.kv.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bridge) getString(ctx context.Context, key string) (string, error) {
	raw, err := b.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			b.logger.Warn("state read failed", "key", key, "error", err)
		}
		return "", err
	}
	return string(raw), nil
}

func (b *Bridge) setString(ctx context.Context, key, value string) {
	if err := b.kv.Set(ctx, key, []byte(value)); err != nil {
		b.dropped(key, err)
	}
}

func (b *Bridge) deleteKey(ctx context.Context, key string) {
	if err := b.kv.Delete(ctx, key); err != nil {
		b.dropped(key, err)
	}
}

func (b *Bridge) dropped(key string, err error) {
	b.logger.Warn("backing store write dropped", "key", key, "error", err)
	if b.missed != nil {
		b.missed.RecordMissedWrite()
	}
}
