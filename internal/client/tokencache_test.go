package client

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestTokenCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	cache := NewTokenCache(path)

	if _, err := cache.Load(); err != ErrNoSession {
		t.Fatalf("Load on empty cache = %v, want ErrNoSession", err)
	}

	want := Session{Token: "tok", Username: "alice"}
	if err := cache.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := cache.Load()
	if err != nil || got != want {
		t.Fatalf("Load = %+v, %v", got, err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Fatalf("perm = %o, want 600", perm)
		}
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := cache.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
	if _, err := cache.Load(); err != ErrNoSession {
		t.Fatalf("Load after Clear = %v", err)
	}
}

func TestTokenCacheCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{oops"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewTokenCache(path).Load(); err == nil || err == ErrNoSession {
		t.Fatalf("expected parse error, got %v", err)
	}
}
