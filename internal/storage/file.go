package storage

import (
	"context"
	"encoding/base32"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// NewFileKV returns a KV that keeps one file per key under dir, the default
// backing store for local runs. The directory is created on first use.
func NewFileKV(dir string) (*FileKV, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("file kv: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

// FileKV implements KV on top of a directory of flat files.
type FileKV struct {
	mu  sync.Mutex
	dir string
}

// Get returns the stored value for key.
func (s *FileKV) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("read state key %q: %w", key, err)
	}
	return value, nil
}

// Set overwrites the value stored under key. The write goes through a temp
// file and rename so a crash never leaves a torn value behind.
func (s *FileKV) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.path(key)
	tmp, err := os.CreateTemp(s.dir, ".write-*")
	if err != nil {
		return fmt.Errorf("stage state key %q: %w", key, err)
	}

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write state key %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("flush state key %q: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("commit state key %q: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key. Deleting an absent key is a no-op.
func (s *FileKV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete state key %q: %w", key, err)
	}
	return nil
}

// path encodes the key so arbitrary key strings map to safe file names.
func (s *FileKV) path(key string) string {
	name := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString([]byte(key))
	return filepath.Join(s.dir, name+".json")
}
