// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"weeklyreport/internal/models"
)

// FileStore keeps settings in a single JSON file.
type FileStore struct {
	mu     sync.Mutex
	path   string
	sealer Sealer
}

// NewFileStore returns a FileStore writing to path. A nil sealer stores
// credentials unchanged.
func NewFileStore(path string, sealer Sealer) *FileStore {
	return &FileStore{path: path, sealer: orPlain(sealer)}
}

// Load reads the settings file. A missing file means nothing was saved.
func (s *FileStore) Load(_ context.Context) (*models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	var stored models.Settings
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	creds, err := openCredentials(s.sealer, stored.Credentials)
	if err != nil {
		return nil, err
	}
	return settingsOf(stored.Provider, stored.EnableCache, creds), nil
}

// Save writes the settings file atomically.
func (s *FileStore) Save(_ context.Context, st models.Settings) error {
	sealed, err := sealCredentials(s.sealer, st.Credentials)
	if err != nil {
		return err
	}
	st.Credentials = sealed

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}
