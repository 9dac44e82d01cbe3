package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

type record struct {
	Enabled bool   `json:"enabled"`
	Name    string `json:"name"`
}

func TestLoad_MissingReturnsDefault(t *testing.T) {
	s := NewMemory()

	got := Load(context.Background(), s, "absent", record{Enabled: true, Name: "def"}, zerolog.Nop())
	if !got.Enabled || got.Name != "def" {
		t.Errorf("Load() = %+v, want default", got)
	}
}

func TestLoad_MalformedReturnsDefault(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if err := s.Set(ctx, KeySettings, []byte("{not json")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got := Load(ctx, s, KeySettings, record{Name: "def"}, zerolog.Nop())
	if got.Name != "def" {
		t.Errorf("Load() = %+v, want default", got)
	}
}

func TestSaveThenLoad(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if err := Save(ctx, s, KeySettings, record{Enabled: true, Name: "saved"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got := Load(ctx, s, KeySettings, record{}, zerolog.Nop())
	if !got.Enabled || got.Name != "saved" {
		t.Errorf("Load() = %+v, want saved record", got)
	}
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_ = s.Set(ctx, "k", []byte("abc"))
	value, _ := s.Get(ctx, "k")
	value[0] = 'z'

	again, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value mutated through Get: %q", again)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
	}
}

type failingStore struct {
	*Memory
	failWrites bool
	reads      int
}

func (f *failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	f.reads++
	return f.Memory.Get(ctx, key)
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if f.failWrites {
		return errors.New("disk full")
	}
	return f.Memory.Set(ctx, key, value)
}

func TestCached_ServesReadsFromCache(t *testing.T) {
	backing := &failingStore{Memory: NewMemory()}
	c, err := Cached(backing, 4)
	if err != nil {
		t.Fatalf("Cached() error = %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, KeyProgress, []byte(`{"totalStars":1}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := c.Get(ctx, KeyProgress); err != nil {
			t.Fatalf("Get() error = %v", err)
		}
	}
	if backing.reads != 0 {
		t.Errorf("backing reads = %d, want 0", backing.reads)
	}
}

func TestCached_DeleteDropsCachedValue(t *testing.T) {
	backing := &failingStore{Memory: NewMemory()}
	c, _ := Cached(backing, 4)
	ctx := context.Background()

	_ = c.Set(ctx, KeySession, []byte(`{"isLocked":false}`))
	if err := c.Delete(ctx, KeySession); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := c.Get(ctx, KeySession); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
	}
}

func TestCached_FailedWriteEvicts(t *testing.T) {
	backing := &failingStore{Memory: NewMemory()}
	c, _ := Cached(backing, 4)
	ctx := context.Background()

	_ = c.Set(ctx, KeyProgress, []byte("1"))
	backing.failWrites = true

	if err := c.Set(ctx, KeyProgress, []byte("2")); err == nil {
		t.Fatal("Set() succeeded, want error")
	}

	value, err := c.Get(ctx, KeyProgress)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(value) != "1" {
		t.Errorf("Get() = %q, want last durable value 1", value)
	}
	if backing.reads != 1 {
		t.Errorf("backing reads = %d, want 1", backing.reads)
	}
}
