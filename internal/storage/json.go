package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Load decodes the JSON blob at key into a copy of def. A missing,
// unreadable or malformed blob yields def unchanged; the failure is logged
// and never returned.
func Load[T any](ctx context.Context, s Store, key string, def T, logger zerolog.Logger) T {
	data, err := s.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn().Err(err).Str("key", key).Msg("Failed to read record, using default")
		}
		return def
	}

	value := def
	if err := json.Unmarshal(data, &value); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Malformed record, using default")
		return def
	}
	return value
}

// Save encodes v as JSON and writes it to key.
func Save(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
