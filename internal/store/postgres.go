// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"weeklyreport/internal/models"
)

const (
	keyProvider    = "provider"
	keyEnableCache = "enable_cache"
)

// SettingsStore keeps settings in PostgreSQL: scalar values in
// app_settings, one sealed row per provider in provider_credentials.
type SettingsStore struct {
	db     *sql.DB
	sealer Sealer
}

// NewSettingsStore returns a SettingsStore backed by the given database.
// A nil sealer stores credentials unchanged.
func NewSettingsStore(db *sql.DB, sealer Sealer) *SettingsStore {
	return &SettingsStore{db: db, sealer: orPlain(sealer)}
}

// Load reads the stored settings. It returns nil when nothing was saved.
func (s *SettingsStore) Load(ctx context.Context) (*models.Settings, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM app_settings`)
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	scalars := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		scalars[k] = v
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}

	sealed, err := s.credentials(ctx)
	if err != nil {
		return nil, err
	}
	if len(scalars) == 0 && len(sealed) == 0 {
		return nil, nil
	}

	creds, err := openCredentials(s.sealer, sealed)
	if err != nil {
		return nil, err
	}
	enableCache, _ := strconv.ParseBool(scalars[keyEnableCache])
	return settingsOf(scalars[keyProvider], enableCache, creds), nil
}

func (s *SettingsStore) credentials(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT provider, secret FROM provider_credentials`)
	if err != nil {
		return nil, fmt.Errorf("query credentials: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var id, secret string
		if err := rows.Scan(&id, &secret); err != nil {
			return nil, fmt.Errorf("scan credential: %w", err)
		}
		out[id] = secret
	}
	return out, rows.Err()
}

// Save replaces the stored settings in a single transaction. Credentials
// absent from st are removed.
func (s *SettingsStore) Save(ctx context.Context, st models.Settings) error {
	sealed, err := sealCredentials(s.sealer, st.Credentials)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	scalars := map[string]string{
		keyProvider:    st.Provider,
		keyEnableCache: strconv.FormatBool(st.EnableCache),
	}
	for k, v := range scalars {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO app_settings (key, value, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (key)
			DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
			k, v, now,
		); err != nil {
			return fmt.Errorf("upsert setting %s: %w", k, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM provider_credentials`); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	for id, secret := range sealed {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO provider_credentials (provider, secret, updated_at)
			VALUES ($1, $2, $3)`,
			id, secret, now,
		); err != nil {
			return fmt.Errorf("insert credential %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
