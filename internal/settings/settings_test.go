package settings

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/goodtune/brightboard/internal/storage"
	"github.com/rs/zerolog"
)

func intPtr(v int) *int { return &v }

func stored(t *testing.T, s storage.Store) map[string]any {
	t.Helper()

	raw, err := s.Get(context.Background(), storage.KeySettings)
	if err != nil {
		t.Fatalf("Get(%s) error = %v", storage.KeySettings, err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("stored settings are not JSON: %v", err)
	}
	return m
}

func TestNewRegistry_Defaults(t *testing.T) {
	r := NewRegistry(context.Background(), storage.NewMemory(), zerolog.Nop())

	got := r.Get()
	if !got.SoundEnabled || got.TVMode || got.SessionLength != nil || got.ParentPIN != "1234" {
		t.Errorf("Get() = %+v, want defaults", got)
	}
}

func TestNewRegistry_MalformedFallsBack(t *testing.T) {
	s := storage.NewMemory()
	ctx := context.Background()
	_ = s.Set(ctx, storage.KeySettings, []byte(`{"soundEnabled":false,"parentPIN":"12ab","sessionLength":15}`))

	r := NewRegistry(ctx, s, zerolog.Nop())
	got := r.Get()
	if got.SoundEnabled {
		t.Errorf("SoundEnabled = true, want stored false")
	}
	if got.ParentPIN != DefaultPIN {
		t.Errorf("ParentPIN = %q, want default", got.ParentPIN)
	}
	if got.SessionLength != nil {
		t.Errorf("SessionLength = %v, want unlimited", *got.SessionLength)
	}
}

func TestUpdate_PersistsFullRecord(t *testing.T) {
	s := storage.NewMemory()
	ctx := context.Background()
	r := NewRegistry(ctx, s, zerolog.Nop())

	tv := true
	if _, err := r.Update(ctx, Update{TVMode: &tv}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	m := stored(t, s)
	for _, key := range []string{"soundEnabled", "tvMode", "sessionLength", "parentPIN"} {
		if _, ok := m[key]; !ok {
			t.Errorf("persisted settings missing %q: %v", key, m)
		}
	}
	if m["tvMode"] != true || m["soundEnabled"] != true || m["parentPIN"] != "1234" {
		t.Errorf("persisted settings = %v, want merged record", m)
	}

	reloaded := NewRegistry(ctx, s, zerolog.Nop())
	if !reloaded.Get().TVMode {
		t.Errorf("TVMode not restored after reload")
	}
}

func TestUpdate_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(ctx, storage.NewMemory(), zerolog.Nop())

	bad := "99"
	if _, err := r.Update(ctx, Update{ParentPIN: &bad}); !errors.Is(err, ErrInvalidPIN) {
		t.Errorf("Update(pin=99) error = %v, want ErrInvalidPIN", err)
	}
	if _, err := r.Update(ctx, Update{SessionLength: LengthOf(15)}); !errors.Is(err, ErrInvalidSessionLength) {
		t.Errorf("Update(length=15) error = %v, want ErrInvalidSessionLength", err)
	}
	if r.ParentPIN() != DefaultPIN {
		t.Errorf("ParentPIN changed after rejected update")
	}
}

type failingStore struct {
	*storage.Memory
	fail bool
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.Memory.Set(ctx, key, value)
}

func TestUpdate_WriteFailureKeepsSettings(t *testing.T) {
	s := &failingStore{Memory: storage.NewMemory()}
	ctx := context.Background()
	r := NewRegistry(ctx, s, zerolog.Nop())

	if _, err := r.SetSessionLength(ctx, intPtr(20)); err != nil {
		t.Fatalf("SetSessionLength() error = %v", err)
	}
	s.fail = true

	tv := true
	got, err := r.Update(ctx, Update{TVMode: &tv, SessionLength: Unlimited()})
	if err == nil {
		t.Fatal("Update() succeeded on failing store")
	}
	if got.TVMode || got.SessionLength == nil || *got.SessionLength != 20 {
		t.Errorf("Update() returned %+v, want previous settings", got)
	}
	if _, err := r.ToggleSound(ctx); err == nil {
		t.Fatal("ToggleSound() succeeded on failing store")
	}

	current := r.Get()
	if current.TVMode || !current.SoundEnabled || current.SessionLength == nil || *current.SessionLength != 20 {
		t.Errorf("Get() = %+v after failed writes, want previous settings", current)
	}

	s.fail = false
	reloaded := NewRegistry(ctx, s, zerolog.Nop())
	if got := reloaded.Get(); got.TVMode || got.SessionLength == nil || *got.SessionLength != 20 {
		t.Errorf("stored settings = %+v, want previous settings", got)
	}
}

func TestUpdate_DecodesSessionLength(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(ctx, storage.NewMemory(), zerolog.Nop())

	apply := func(body string) Data {
		t.Helper()
		var u Update
		if err := json.Unmarshal([]byte(body), &u); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", body, err)
		}
		got, err := r.Update(ctx, u)
		if err != nil {
			t.Fatalf("Update(%s) error = %v", body, err)
		}
		return got
	}

	if got := apply(`{"sessionLength":20}`); got.SessionLength == nil || *got.SessionLength != 20 {
		t.Fatalf("SessionLength = %v, want 20", got.SessionLength)
	}
	if got := apply(`{"soundEnabled":false}`); got.SessionLength == nil || *got.SessionLength != 20 {
		t.Errorf("absent sessionLength changed the length to %v", got.SessionLength)
	}
	if got := apply(`{"sessionLength":null}`); got.SessionLength != nil {
		t.Errorf("SessionLength = %d after null, want unlimited", *got.SessionLength)
	}

	var u Update
	if err := json.Unmarshal([]byte(`{"sessionLength":"ten"}`), &u); err == nil {
		t.Errorf("Unmarshal accepted a non-numeric sessionLength")
	}
}

func TestUpdate_MarshalsSessionLength(t *testing.T) {
	tests := []struct {
		u    Update
		want string
	}{
		{Update{}, `{}`},
		{Update{SessionLength: LengthOf(10)}, `{"sessionLength":10}`},
		{Update{SessionLength: Unlimited()}, `{"sessionLength":null}`},
	}

	for _, tt := range tests {
		raw, err := json.Marshal(tt.u)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		if string(raw) != tt.want {
			t.Errorf("Marshal(%+v) = %s, want %s", tt.u, raw, tt.want)
		}
	}
}

func TestToggles(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(ctx, storage.NewMemory(), zerolog.Nop())

	got, err := r.ToggleSound(ctx)
	if err != nil || got.SoundEnabled {
		t.Errorf("ToggleSound() = %+v, %v, want sound off", got, err)
	}
	got, err = r.ToggleTVMode(ctx)
	if err != nil || !got.TVMode {
		t.Errorf("ToggleTVMode() = %+v, %v, want tv mode on", got, err)
	}
	if got.SoundEnabled {
		t.Errorf("ToggleTVMode() changed sound setting")
	}
}

func TestSetSessionLength(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(ctx, storage.NewMemory(), zerolog.Nop())

	for _, minutes := range []int{10, 20, 30} {
		got, err := r.SetSessionLength(ctx, intPtr(minutes))
		if err != nil {
			t.Fatalf("SetSessionLength(%d) error = %v", minutes, err)
		}
		if got.SessionLength == nil || *got.SessionLength != minutes {
			t.Errorf("SessionLength = %v, want %d", got.SessionLength, minutes)
		}
	}

	got, err := r.SetSessionLength(ctx, nil)
	if err != nil || got.SessionLength != nil {
		t.Errorf("SetSessionLength(nil) = %+v, %v, want unlimited", got, err)
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(ctx, storage.NewMemory(), zerolog.Nop())
	_, _ = r.SetSessionLength(ctx, intPtr(20))

	got := r.Get()
	*got.SessionLength = 30
	if *r.Get().SessionLength != 20 {
		t.Errorf("mutating Get() result changed registry state")
	}
}

func TestValidatePIN(t *testing.T) {
	tests := []struct {
		pin  string
		want error
	}{
		{"1234", nil},
		{"0000", nil},
		{"123", ErrInvalidPIN},
		{"12345", ErrInvalidPIN},
		{"12a4", ErrInvalidPIN},
		{"", ErrInvalidPIN},
	}

	for _, tt := range tests {
		if err := ValidatePIN(tt.pin); !errors.Is(err, tt.want) {
			t.Errorf("ValidatePIN(%q) = %v, want %v", tt.pin, err, tt.want)
		}
	}
}
