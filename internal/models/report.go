// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models holds the domain types shared between the generator,
// the orchestrator, the cache backends, and the HTTP layer.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Mode reports whether reports are served by a remote provider or by the
// local template engine.
type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

// ProviderLocal is the provider tag carried by reports built from templates.
const ProviderLocal = "local"

// Inputs holds the user's bullet lists for one weekly report.
type Inputs struct {
	Completed []string `json:"completed"`
	Problems  []string `json:"problems"`
	Plans     []string `json:"plans"`
}

// Normalize returns a copy of the inputs with every item trimmed and empty
// items removed. Item order is preserved. Nil lists become empty lists so
// the JSON form is stable.
func (in Inputs) Normalize() Inputs {
	return Inputs{
		Completed: cleanItems(in.Completed),
		Problems:  cleanItems(in.Problems),
		Plans:     cleanItems(in.Plans),
	}
}

func cleanItems(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Report is a generated weekly report. It is never mutated after the
// generator or the orchestrator hands it out.
type Report struct {
	ID       uuid.UUID `json:"id"`
	Content  string    `json:"content"`
	Style    string    `json:"style"`     // localized style display name
	StyleKey string    `json:"style_key"` // resolved style key
	Language string    `json:"language"`
	Provider string    `json:"provider"` // provider id, or "local"
	Mode     Mode      `json:"mode"`
	Model    string    `json:"model,omitempty"`

	// RemoteError holds the remote failure that caused a local fallback.
	RemoteError string `json:"remote_error,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// IsLocal reports whether the report came from the template engine.
func (r *Report) IsLocal() bool {
	return r.Provider == ProviderLocal
}
