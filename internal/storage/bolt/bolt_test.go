package bolt

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/goodtune/brightboard/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "nested", "brightboard.bolt")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open bolt store: %v", err)
	}
	return store
}

func TestStoreSetGet(t *testing.T) {
	store := openTestStore(t)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	if err := store.Set(ctx, storage.KeySettings, []byte(`{"tvMode":true}`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	value, err := store.Get(ctx, storage.KeySettings)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(value) != `{"tvMode":true}` {
		t.Fatalf("expected stored settings, got %q", value)
	}
}

func TestStoreMissingKey(t *testing.T) {
	store := openTestStore(t)
	defer func() { _ = store.Close() }()

	if _, err := store.Get(context.Background(), storage.KeySession); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreSetAndDelete(t *testing.T) {
	store := openTestStore(t)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	for key, value := range map[string]string{
		storage.KeyProgress: `{"totalStars":3}`,
		storage.KeySession:  `{"isLocked":false}`,
	} {
		if err := store.Set(ctx, key, []byte(value)); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}

	for _, key := range []string{storage.KeyProgress, storage.KeySession} {
		if _, err := store.Get(ctx, key); err != nil {
			t.Fatalf("get %s: %v", key, err)
		}
	}

	if err := store.Delete(ctx, storage.KeyProgress); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, storage.KeyProgress); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brightboard.bolt")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Set(ctx, storage.KeyProgress, []byte(`{"totalStars":7}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	value, err := reopened.Get(ctx, storage.KeyProgress)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if string(value) != `{"totalStars":7}` {
		t.Fatalf("expected persisted progress, got %q", value)
	}
}
