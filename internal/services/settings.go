package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dimitrije/site-admin-api/internal/database"
	"github.com/dimitrije/site-admin-api/internal/models"
	"github.com/jackc/pgx/v5"
)

// SettingsStore is the site_settings side of the credential store adapter.
type SettingsStore struct {
	db *database.Lazy
}

func NewSettingsStore(db *database.Lazy) *SettingsStore {
	return &SettingsStore{db: db}
}

func (s *SettingsStore) Configured() bool {
	return s.db.Configured()
}

func (s *SettingsStore) List(ctx context.Context) ([]models.SiteSetting, error) {
	db, err := s.db.Get(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT key, value, updated_at
		FROM site_settings
		ORDER BY key
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	var settings []models.SiteSetting
	for rows.Next() {
		var st models.SiteSetting
		if err := rows.Scan(&st.Key, &st.Value, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, st)
	}

	return settings, rows.Err()
}

// Get returns the stored value for key. found is false when no row exists.
func (s *SettingsStore) Get(ctx context.Context, key string) (value string, found bool, err error) {
	db, err := s.db.Get(ctx)
	if err != nil {
		return "", false, err
	}

	err = db.Pool.QueryRow(ctx, `
		SELECT value FROM site_settings WHERE key = $1
	`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get setting %q: %w", key, err)
	}

	return value, true, nil
}

func (s *SettingsStore) Upsert(ctx context.Context, key, value string) error {
	db, err := s.db.Get(ctx)
	if err != nil {
		return err
	}

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO site_settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, key, value)
	return err
}

// SettingsResolver merges the static defaults with the override store. Reads
// never fail; store problems degrade to the defaults.
type SettingsResolver struct {
	store  SettingsRepository
	cache  SettingsCache
	logger *slog.Logger
}

func NewSettingsResolver(store SettingsRepository, cache SettingsCache, logger *slog.Logger) *SettingsResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsResolver{store: store, cache: cache, logger: logger}
}

// Get returns the override for key, the default when there is none, or "".
func (r *SettingsResolver) Get(ctx context.Context, key string) string {
	if r.store.Configured() {
		value, found, err := r.store.Get(ctx, key)
		if err != nil {
			r.logger.WarnContext(ctx, "settings store read failed, using default", "key", key, "error", err)
		} else if found {
			return value
		}
	}
	return models.DefaultSetting(key)
}

// GetAll returns the defaults overlaid with every stored row. Keys that only
// exist in the store are included.
func (r *SettingsResolver) GetAll(ctx context.Context) models.SettingsMap {
	if r.cache != nil {
		if cached, ok := r.cache.Get(ctx); ok {
			return cached
		}
	}

	settings := models.DefaultSettings()
	if !r.store.Configured() {
		return settings
	}

	rows, err := r.store.List(ctx)
	if err != nil {
		r.logger.WarnContext(ctx, "settings store list failed, using defaults", "error", err)
		return models.DefaultSettings()
	}

	for _, row := range rows {
		settings[row.Key] = row.Value
	}

	if r.cache != nil {
		r.cache.Set(ctx, settings)
	}

	return settings
}

// Put upserts every key independently. Failures are collected into a
// PartialFailureError instead of stopping at the first one.
func (r *SettingsResolver) Put(ctx context.Context, updates map[string]string) error {
	if len(updates) == 0 {
		return fmt.Errorf("%w: no settings provided", ErrValidation)
	}
	for key := range updates {
		if key == "" {
			return fmt.Errorf("%w: empty setting key", ErrValidation)
		}
	}
	if !r.store.Configured() {
		return ErrNotConfigured
	}

	keys := make([]string, 0, len(updates))
	for key := range updates {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := &PartialFailureError{Failed: make(map[string]error)}
	for _, key := range keys {
		if err := r.store.Upsert(ctx, key, updates[key]); err != nil {
			if errors.Is(err, ErrNotConfigured) {
				return ErrNotConfigured
			}
			r.logger.ErrorContext(ctx, "setting upsert failed", "key", key, "error", err)
			result.Failed[key] = err
			continue
		}
		result.Succeeded = append(result.Succeeded, key)
	}

	if len(result.Succeeded) > 0 && r.cache != nil {
		r.cache.Invalidate(ctx)
	}

	if len(result.Failed) > 0 {
		return result
	}
	return nil
}
