package credential

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewStore(path)
	if store.Token() != "" {
		t.Fatalf("expected empty token, got %q", store.Token())
	}

	if err := store.Set("tok-abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if store.Token() != "tok-abc" {
		t.Fatalf("expected tok-abc, got %q", store.Token())
	}

	reopened := NewStore(path)
	if reopened.Token() != "tok-abc" {
		t.Fatalf("expected persisted token, got %q", reopened.Token())
	}
}

func TestStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewStore(path)
	if err := store.Set("tok-abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if store.Token() != "" {
		t.Fatalf("expected empty token after clear, got %q", store.Token())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected token file removed, stat err %v", err)
	}

	// Clearing an already empty store must not fail.
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}
