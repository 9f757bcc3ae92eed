package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv, err := NewFileKV(t.TempDir())
	if err != nil {
		t.Fatalf("new file kv: %v", err)
	}

	if _, err := kv.Get(ctx, "missing"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound for unknown key, got %v", err)
	}

	if err := kv.Set(ctx, "community_videos", []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, err := kv.Get(ctx, "community_videos")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(value) != `[]` {
		t.Fatalf("unexpected value %q", value)
	}

	if err := kv.Delete(ctx, "community_videos"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := kv.Get(ctx, "community_videos"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound after delete, got %v", err)
	}
	if err := kv.Delete(ctx, "community_videos"); err != nil {
		t.Fatalf("delete of absent key should be a no-op, got %v", err)
	}
}

func TestFileKVSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	kv, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("new file kv: %v", err)
	}
	if err := kv.Set(ctx, "registeredNickname", []byte("kim")); err != nil {
		t.Fatalf("set: %v", err)
	}

	reopened, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("reopen file kv: %v", err)
	}
	value, err := reopened.Get(ctx, "registeredNickname")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if string(value) != "kim" {
		t.Fatalf("unexpected value %q", value)
	}
}

func TestFileKVEncodesUnsafeKeys(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	kv, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("new file kv: %v", err)
	}

	key := "../escape/attempt"
	if err := kv.Set(ctx, key, []byte("contained")); err != nil {
		t.Fatalf("set: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one file in state dir, found %d", len(entries))
	}
	if filepath.Dir(filepath.Join(dir, entries[0].Name())) != dir {
		t.Fatalf("key escaped the state directory: %s", entries[0].Name())
	}

	value, err := kv.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(value) != "contained" {
		t.Fatalf("unexpected value %q", value)
	}
}

func TestFileKVRequiresDirectory(t *testing.T) {
	if _, err := NewFileKV("  "); err == nil {
		t.Fatal("expected error for blank directory")
	}
}
