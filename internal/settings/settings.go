// Package settings owns the parent-configurable options record.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/goodtune/brightboard/internal/storage"
	"github.com/rs/zerolog"
)

var (
	// ErrInvalidSessionLength is returned for lengths outside {unlimited,10,20,30}.
	ErrInvalidSessionLength = errors.New("settings: session length must be 10, 20, 30 minutes or unlimited")
	// ErrInvalidPIN is returned when a PIN is not exactly four digits.
	ErrInvalidPIN = errors.New("settings: parent PIN must be exactly 4 digits")
)

// DefaultPIN is the parent PIN until one is configured.
const DefaultPIN = "1234"

// Data is the persisted settings record.
type Data struct {
	SoundEnabled  bool   `json:"soundEnabled"`
	TVMode        bool   `json:"tvMode"`
	SessionLength *int   `json:"sessionLength"` // minutes; nil means unlimited
	ParentPIN     string `json:"parentPIN"`
}

// Defaults returns the settings used when nothing has been stored.
func Defaults() Data {
	return Data{
		SoundEnabled:  true,
		TVMode:        false,
		SessionLength: nil,
		ParentPIN:     DefaultPIN,
	}
}

// Update is a partial settings change. Nil fields and an unset
// SessionLength are left untouched.
type Update struct {
	SoundEnabled  *bool   `json:"soundEnabled,omitempty"`
	TVMode        *bool   `json:"tvMode,omitempty"`
	SessionLength Length  `json:"sessionLength,omitzero"`
	ParentPIN     *string `json:"parentPIN,omitempty"`
}

// Length is the session length carried by an Update. A field absent from
// the JSON stays unset; an explicit null sets unlimited.
type Length struct {
	Set     bool
	Minutes *int
}

// LengthOf returns a Length that sets the given minutes.
func LengthOf(minutes int) Length {
	return Length{Set: true, Minutes: &minutes}
}

// Unlimited returns a Length that clears the session length.
func Unlimited() Length {
	return Length{Set: true}
}

// UnmarshalJSON marks the length as set, including for null.
func (l *Length) UnmarshalJSON(b []byte) error {
	l.Set = true
	l.Minutes = nil
	if string(b) == "null" {
		return nil
	}
	var minutes int
	if err := json.Unmarshal(b, &minutes); err != nil {
		return fmt.Errorf("sessionLength: %w", err)
	}
	l.Minutes = &minutes
	return nil
}

// MarshalJSON writes the minutes, or null for unlimited.
func (l Length) MarshalJSON() ([]byte, error) {
	if l.Minutes == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*l.Minutes)
}

// Registry is the only writer of the settings record.
type Registry struct {
	store  storage.Store
	logger zerolog.Logger

	mu      sync.RWMutex
	current Data
}

// NewRegistry loads settings from store, falling back to defaults.
func NewRegistry(ctx context.Context, store storage.Store, logger zerolog.Logger) *Registry {
	r := &Registry{
		store:  store,
		logger: logger.With().Str("component", "settings").Logger(),
	}
	r.current = r.load(ctx)
	return r
}

func (r *Registry) load(ctx context.Context) Data {
	data := storage.Load(ctx, r.store, storage.KeySettings, Defaults(), r.logger)
	if ValidatePIN(data.ParentPIN) != nil {
		r.logger.Warn().Msg("Stored parent PIN is malformed, using default")
		data.ParentPIN = DefaultPIN
	}
	if data.SessionLength != nil && ValidateSessionLength(*data.SessionLength) != nil {
		r.logger.Warn().Int("session_length", *data.SessionLength).Msg("Stored session length is invalid, using unlimited")
		data.SessionLength = nil
	}
	return data
}

// Get returns a copy of the current settings.
func (r *Registry) Get() Data {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current.clone()
}

// Update shallow-merges u into the current settings and persists the full
// resulting record. Invalid updates and failed writes leave settings
// untouched.
func (r *Registry) Update(ctx context.Context, u Update) (Data, error) {
	if u.SessionLength.Set && u.SessionLength.Minutes != nil {
		if err := ValidateSessionLength(*u.SessionLength.Minutes); err != nil {
			return r.Get(), err
		}
	}
	if u.ParentPIN != nil {
		if err := ValidatePIN(*u.ParentPIN); err != nil {
			return r.Get(), err
		}
	}

	return r.mutate(ctx, func(next *Data) {
		if u.SoundEnabled != nil {
			next.SoundEnabled = *u.SoundEnabled
		}
		if u.TVMode != nil {
			next.TVMode = *u.TVMode
		}
		if u.SessionLength.Set {
			next.SessionLength = nil
			if u.SessionLength.Minutes != nil {
				length := *u.SessionLength.Minutes
				next.SessionLength = &length
			}
		}
		if u.ParentPIN != nil {
			next.ParentPIN = *u.ParentPIN
		}
	})
}

// ToggleSound flips the sound setting.
func (r *Registry) ToggleSound(ctx context.Context) (Data, error) {
	return r.mutate(ctx, func(next *Data) { next.SoundEnabled = !next.SoundEnabled })
}

// ToggleTVMode flips directional-navigation mode.
func (r *Registry) ToggleTVMode(ctx context.Context) (Data, error) {
	return r.mutate(ctx, func(next *Data) { next.TVMode = !next.TVMode })
}

// SetSessionLength sets the budget in minutes; nil means unlimited.
func (r *Registry) SetSessionLength(ctx context.Context, minutes *int) (Data, error) {
	if minutes == nil {
		return r.Update(ctx, Update{SessionLength: Unlimited()})
	}
	return r.Update(ctx, Update{SessionLength: LengthOf(*minutes)})
}

// mutate applies change to a copy of the current record and adopts it only
// once the full record is persisted. r.mu is held across the write so the
// stored record always matches memory.
func (r *Registry) mutate(ctx context.Context, change func(*Data)) (Data, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.current.clone()
	change(&next)

	if err := storage.Save(ctx, r.store, storage.KeySettings, next); err != nil {
		r.logger.Error().Err(err).Msg("Failed to persist settings")
		return r.current.clone(), fmt.Errorf("persist settings: %w", err)
	}
	r.current = next

	r.logger.Info().
		Bool("sound_enabled", next.SoundEnabled).
		Bool("tv_mode", next.TVMode).
		Interface("session_length", next.SessionLength).
		Msg("Settings updated")

	return next.clone(), nil
}

// ParentPIN returns the configured PIN.
func (r *Registry) ParentPIN() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current.ParentPIN
}

// ValidateSessionLength accepts 10, 20 or 30 minutes.
func ValidateSessionLength(minutes int) error {
	switch minutes {
	case 10, 20, 30:
		return nil
	default:
		return ErrInvalidSessionLength
	}
}

// ValidatePIN accepts exactly four ASCII digits.
func ValidatePIN(pin string) error {
	if len(pin) != 4 {
		return ErrInvalidPIN
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return ErrInvalidPIN
		}
	}
	return nil
}

func (d Data) clone() Data {
	if d.SessionLength != nil {
		length := *d.SessionLength
		d.SessionLength = &length
	}
	return d
}
