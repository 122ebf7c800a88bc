// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides a unified, table-driven interface to the remote
// chat-completion providers used for report generation. Each provider is
// described by a Spec record (endpoints, headers, body shape, response
// extraction) and one generic routine invokes any of them. Adding a
// provider is a data change.
package ai

import (
	"net/http"
	"sync"
	"time"
)

// Shape selects the request body layout and the matching response
// extraction rule.
type Shape int

const (
	// ShapeChat is the OpenAI-compatible chat completions layout:
	// {"model", "messages": [...]} in, {"choices": [{"message": {"content"}}]} out.
	ShapeChat Shape = iota
	// ShapeTextInputs is the text-generation inference layout:
	// {"inputs": "...", "parameters": {...}} in, [{"generated_text"}] out.
	ShapeTextInputs
)

// Spec describes one remote provider.
type Spec struct {
	ID          string
	Name        string
	Description string
	Website     string
	FreeTier    bool
	Quota       string // human-readable free allowance, if any

	Models       []string
	DefaultModel string
	ProbeModel   string // model used by connection tests; DefaultModel if empty

	// Endpoints are candidate URLs tried in order until one succeeds.
	// "{model}" is replaced by the request's model.
	Endpoints []string
	Headers   map[string]string // extra headers beyond auth and content type
	Shape     Shape
	// Params are merged into the body (chat) or into "parameters" (text).
	Params map[string]any

	RequiresCredential bool
}

// Info is the public, static metadata of a provider.
type Info struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Website            string   `json:"website"`
	FreeTier           bool     `json:"free_tier"`
	Quota              string   `json:"quota,omitempty"`
	Models             []string `json:"models"`
	DefaultModel       string   `json:"default_model"`
	RequiresCredential bool     `json:"requires_credential"`
}

func (s Spec) info() Info {
	return Info{
		ID:                 s.ID,
		Name:               s.Name,
		Description:        s.Description,
		Website:            s.Website,
		FreeTier:           s.FreeTier,
		Quota:              s.Quota,
		Models:             append([]string(nil), s.Models...),
		DefaultModel:       s.DefaultModel,
		RequiresCredential: s.RequiresCredential,
	}
}

// ProviderConfig holds the per-call settings for one provider. The
// registry treats it as immutable input.
type ProviderConfig struct {
	APIKey   string
	Model    string // overrides Spec.DefaultModel
	Endpoint string // overrides Spec.Endpoints with a single URL
}

// Doer is the HTTP client used for provider calls.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Registry maps provider identifiers to their specs and performs calls.
// All methods are safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	specs  map[string]Spec
	order  []string
	client Doer
}

// NewRegistry creates a registry using client for HTTP. A nil client gets
// a plain *http.Client; timeouts are applied per call through the request
// context. With no specs, the built-in provider table is used.
func NewRegistry(client Doer, specs ...Spec) *Registry {
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}
	if len(specs) == 0 {
		specs = DefaultSpecs()
	}
	r := &Registry{
		specs:  make(map[string]Spec, len(specs)),
		client: client,
	}
	for _, s := range specs {
		r.Register(s)
	}
	return r
}

// Register adds or replaces a provider spec.
func (r *Registry) Register(s Spec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.specs[s.ID]; !exists {
		r.order = append(r.order, s.ID)
	}
	r.specs[s.ID] = s
}

// Spec returns the spec for id.
func (r *Registry) Spec(id string) (Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.specs[id]
	return s, ok
}

// Describe returns the static metadata for id, or false if unknown.
func (r *Registry) Describe(id string) (Info, bool) {
	s, ok := r.Spec(id)
	if !ok {
		return Info{}, false
	}
	return s.info(), true
}

// Has reports whether id is a known provider.
func (r *Registry) Has(id string) bool {
	_, ok := r.Spec(id)
	return ok
}

// List returns metadata for every provider in registration order.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Info, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.specs[id].info())
	}
	return out
}

// Ready reports whether a call to id with the given credential would be
// attempted, i.e. the provider is known and any required credential is set.
func (r *Registry) Ready(id, apiKey string) bool {
	s, ok := r.Spec(id)
	if !ok {
		return false
	}
	return apiKey != "" || !s.RequiresCredential
}
