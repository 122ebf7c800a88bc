// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers exposes the report service as a JSON API.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"weeklyreport/internal/ai"
	"weeklyreport/internal/markdown"
	"weeklyreport/internal/models"
	"weeklyreport/internal/report"
	"weeklyreport/internal/style"
)

// API groups the JSON handlers around a report service.
type API struct {
	svc *report.Service
}

// New creates the API handlers.
func New(svc *report.Service) *API {
	return &API{svc: svc}
}

type errorResponse struct {
	Error string `json:"error"`
}

type generateRequest struct {
	Completed []string `json:"completed"`
	Problems  []string `json:"problems"`
	Plans     []string `json:"plans"`
	Style     string   `json:"style"`
	Language  string   `json:"language"`
}

type reportResponse struct {
	*models.Report
	HTML string `json:"html,omitempty"`
}

// GenerateReport handles POST /api/reports. Adding ?format=html renders the
// content to HTML alongside the raw text.
func (a *API) GenerateReport(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateGenerate(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	in := models.Inputs{Completed: req.Completed, Problems: req.Problems, Plans: req.Plans}
	rep, err := a.svc.Generate(r.Context(), in, req.Style, req.Language)
	switch {
	case errors.Is(err, report.ErrNoCompletedItems):
		writeError(w, http.StatusBadRequest, "Please enter at least one completed item.")
		return
	case err != nil && r.Context().Err() != nil:
		slog.Info("report request cancelled", "error", err)
		return
	case err != nil:
		slog.Error("report generation failed", "error", err)
		writeError(w, http.StatusBadGateway, "Report generation failed: "+err.Error())
		return
	}

	resp := reportResponse{Report: rep}
	if r.URL.Query().Get("format") == "html" {
		html, err := markdown.ReportToHTML(rep.Content)
		if err != nil {
			slog.Warn("report html render failed", "id", rep.ID, "error", err)
		} else {
			resp.HTML = html
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListProviders handles GET /api/providers.
func (a *API) ListProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.svc.ListProviders())
}

// GetProvider handles GET /api/providers/{id}.
func (a *API) GetProvider(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, p := range a.svc.ListProviders() {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Unknown provider "+quote(id)+".")
}

type selectProviderRequest struct {
	Provider string `json:"provider"`
}

// SelectProvider handles PUT /api/provider.
func (a *API) SelectProvider(w http.ResponseWriter, r *http.Request) {
	var req selectProviderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id := strings.TrimSpace(req.Provider)
	if id == "" {
		writeError(w, http.StatusBadRequest, "No provider specified.")
		return
	}
	err := a.svc.SelectProvider(r.Context(), id)
	switch {
	case errors.Is(err, ai.ErrUnknownProvider):
		writeError(w, http.StatusNotFound, "Unknown provider "+quote(id)+".")
		return
	case err != nil:
		slog.Error("provider selection failed", "provider", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not save the provider.")
		return
	}
	a.Mode(w, r)
}

type credentialRequest struct {
	Secret string `json:"secret"`
}

// SetCredential handles PUT /api/providers/{id}/credential. An empty secret
// removes the stored credential.
func (a *API) SetCredential(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req credentialRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateSecret(req.Secret); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	err := a.svc.SetCredential(r.Context(), id, req.Secret)
	switch {
	case errors.Is(err, ai.ErrUnknownProvider):
		writeError(w, http.StatusNotFound, "Unknown provider "+quote(id)+".")
		return
	case err != nil:
		slog.Error("credential update failed", "provider", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not save the credential.")
		return
	}
	a.Mode(w, r)
}

type testResponse struct {
	ai.TestResult
	Error string `json:"error,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

// TestProvider handles POST /api/providers/{id}/test. Probe failures are
// reported in the body with status 200; only unknown providers are 404.
func (a *API) TestProvider(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res := a.svc.TestConnection(r.Context(), id)
	if errors.Is(res.Err, ai.ErrUnknownProvider) {
		writeError(w, http.StatusNotFound, "Unknown provider "+quote(id)+".")
		return
	}
	resp := testResponse{TestResult: res}
	if res.Err != nil {
		resp.Error = res.Err.Error()
		resp.Kind = ai.KindOf(res.Err).String()
	}
	writeJSON(w, http.StatusOK, resp)
}

type modeResponse struct {
	Mode        models.Mode `json:"mode"`
	Provider    string      `json:"provider"`
	Configured  bool        `json:"configured"`
	EnableCache bool        `json:"enable_cache"`
}

// Mode handles GET /api/mode.
func (a *API) Mode(w http.ResponseWriter, r *http.Request) {
	settings := a.svc.Settings()
	writeJSON(w, http.StatusOK, modeResponse{
		Mode:        a.svc.Mode(),
		Provider:    settings.Provider,
		Configured:  settings.Credential(settings.Provider) != "",
		EnableCache: settings.EnableCache,
	})
}

type cacheRequest struct {
	Enabled *bool `json:"enabled"`
}

// SetCache handles PUT /api/cache, toggling result caching.
func (a *API) SetCache(w http.ResponseWriter, r *http.Request) {
	var req cacheRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Enabled == nil {
		writeError(w, http.StatusBadRequest, "Field \"enabled\" is required.")
		return
	}
	if err := a.svc.SetCacheEnabled(r.Context(), *req.Enabled); err != nil {
		slog.Error("cache toggle failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not save the setting.")
		return
	}
	a.Mode(w, r)
}

// ClearCache handles DELETE /api/cache.
func (a *API) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := a.svc.ClearCache(r.Context()); err != nil {
		slog.Error("cache clear failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not clear the cache.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListStyles handles GET /api/styles?language=en-US.
func (a *API) ListStyles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, style.All(r.URL.Query().Get("language")))
}

// decodeJSON reads a bounded JSON body into dst, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body.")
		return false
	}
	return true
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
