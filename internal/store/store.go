// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store persists generator settings. Credentials pass through a
// Sealer on the way in and out so they are never stored in the clear.
package store

import (
	"fmt"

	"weeklyreport/internal/models"
)

// Sealer encrypts credentials at rest. *secret.Sealer satisfies it.
type Sealer interface {
	Seal(plaintext string) (string, error)
	Open(sealed string) (string, error)
}

// plainSealer stores values unchanged. Used when no key is configured.
type plainSealer struct{}

func (plainSealer) Seal(s string) (string, error) { return s, nil }
func (plainSealer) Open(s string) (string, error) { return s, nil }

func orPlain(s Sealer) Sealer {
	if s == nil {
		return plainSealer{}
	}
	return s
}

func sealCredentials(sealer Sealer, creds map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(creds))
	for id, plain := range creds {
		if plain == "" {
			continue
		}
		sealed, err := sealer.Seal(plain)
		if err != nil {
			return nil, fmt.Errorf("sealing %s credential: %w", id, err)
		}
		out[id] = sealed
	}
	return out, nil
}

func openCredentials(sealer Sealer, creds map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(creds))
	for id, sealed := range creds {
		plain, err := sealer.Open(sealed)
		if err != nil {
			return nil, fmt.Errorf("opening %s credential: %w", id, err)
		}
		if plain != "" {
			out[id] = plain
		}
	}
	return out, nil
}

// settingsOf builds the Settings value shared by both stores.
func settingsOf(provider string, enableCache bool, creds map[string]string) *models.Settings {
	return &models.Settings{
		Provider:    provider,
		Credentials: creds,
		EnableCache: enableCache,
	}
}
