// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Settings is the persisted generator configuration: which provider is
// selected, the credential stored for each provider, and cache behaviour.
// The generation mode is deliberately absent; it is always derived from
// the credential of the selected provider.
type Settings struct {
	Provider    string            `json:"provider" yaml:"provider"`
	Credentials map[string]string `json:"credentials" yaml:"credentials"`
	EnableCache bool              `json:"enable_cache" yaml:"enable_cache"`
}

// Credential returns the stored credential for a provider, or "".
func (s Settings) Credential(provider string) string {
	if s.Credentials == nil {
		return ""
	}
	return s.Credentials[provider]
}

// Clone returns a deep copy so callers can't mutate shared state.
func (s Settings) Clone() Settings {
	creds := make(map[string]string, len(s.Credentials))
	for k, v := range s.Credentials {
		creds[k] = v
	}
	s.Credentials = creds
	return s
}
