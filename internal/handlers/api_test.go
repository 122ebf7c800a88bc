// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"weeklyreport/internal/ai"
	"weeklyreport/internal/cache"
	"weeklyreport/internal/local"
	"weeklyreport/internal/models"
	"weeklyreport/internal/report"
)

// testEnv wires an API against a fake provider server.
type testEnv struct {
	API      *API
	Service  *report.Service
	calls    *int64
	provider *httptest.Server
}

func newTestEnv(t *testing.T, status int, body string, settings models.Settings) *testEnv {
	t.Helper()
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	reg := ai.NewRegistry(srv.Client(), ai.Spec{
		ID:                 "fake",
		Name:               "Fake",
		Models:             []string{"fake-1"},
		DefaultModel:       "fake-1",
		Endpoints:          []string{srv.URL},
		RequiresCredential: true,
	})
	now := func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) }
	svc := report.New(report.Options{
		Registry:   reg,
		Engine:     local.New(local.NewSequence(0), local.WithClock(now)),
		Cache:      cache.NewMemory(time.Hour),
		Settings:   settings,
		Now:        now,
		RetryDelay: -1,
	})
	return &testEnv{API: New(svc), Service: svc, calls: &calls, provider: srv}
}

// withID attaches a chi URL parameter to the request.
func withID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

const okCompletion = `{"choices":[{"message":{"content":"Remote weekly report"}}]}`

func TestGenerateReport_Local(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, okCompletion, models.Settings{Provider: "fake"})

	body := `{"completed":["Shipped login"],"plans":["Write docs"],"style":"internet","language":"en-US"}`
	req := httptest.NewRequest(http.MethodPost, "/api/reports?format=html", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.API.GenerateReport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	var got struct {
		Content  string `json:"content"`
		Provider string `json:"provider"`
		Mode     string `json:"mode"`
		HTML     string `json:"html"`
	}
	decode(t, rec, &got)
	if got.Provider != "local" || got.Mode != "local" {
		t.Errorf("provider/mode: got %q/%q, want local/local", got.Provider, got.Mode)
	}
	if !strings.Contains(got.Content, "Week 42 Work Report") {
		t.Errorf("content: got %q", got.Content)
	}
	if !strings.Contains(got.HTML, "<h2") {
		t.Errorf("html: got %q", got.HTML)
	}
	if atomic.LoadInt64(env.calls) != 0 {
		t.Errorf("provider calls: got %d, want 0", atomic.LoadInt64(env.calls))
	}
}

func TestGenerateReport_Remote(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, okCompletion, models.Settings{
		Provider:    "fake",
		Credentials: map[string]string{"fake": "sk"},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(`{"completed":["a"]}`))
	rec := httptest.NewRecorder()
	env.API.GenerateReport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var got models.Report
	decode(t, rec, &got)
	if got.Content != "Remote weekly report" || got.Mode != models.ModeRemote {
		t.Errorf("report: got %+v", got)
	}
}

func TestGenerateReport_BadRequests(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, okCompletion, models.Settings{})

	tests := []struct {
		name string
		body string
		want string
	}{
		{"invalid json", `{`, "Invalid JSON"},
		{"no completed items", `{"completed":["  "]}`, "at least one completed item"},
		{"item too long", `{"completed":["` + strings.Repeat("x", maxItemLen+1) + `"]}`, "too long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			env.API.GenerateReport(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body: got %q, want it to contain %q", rec.Body.String(), tt.want)
			}
		})
	}
}

func TestProviders(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, okCompletion, models.Settings{Provider: "fake"})

	rec := httptest.NewRecorder()
	env.API.ListProviders(rec, httptest.NewRequest(http.MethodGet, "/api/providers", nil))
	var list []report.ProviderStatus
	decode(t, rec, &list)
	if len(list) != 1 || list[0].ID != "fake" || !list[0].Selected {
		t.Errorf("list: got %+v", list)
	}

	rec = httptest.NewRecorder()
	env.API.GetProvider(rec, withID(httptest.NewRequest(http.MethodGet, "/api/providers/fake", nil), "fake"))
	if rec.Code != http.StatusOK {
		t.Errorf("GetProvider(fake): got %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	env.API.GetProvider(rec, withID(httptest.NewRequest(http.MethodGet, "/api/providers/nope", nil), "nope"))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GetProvider(nope): got %d, want 404", rec.Code)
	}
}

func TestSelectProvider(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, okCompletion, models.Settings{})

	rec := httptest.NewRecorder()
	env.API.SelectProvider(rec, httptest.NewRequest(http.MethodPut, "/api/provider", strings.NewReader(`{"provider":"nope"}`)))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown provider: got %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	env.API.SelectProvider(rec, httptest.NewRequest(http.MethodPut, "/api/provider", strings.NewReader(`{"provider":"fake"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("select: got %d, want 200", rec.Code)
	}
	var mode modeResponse
	decode(t, rec, &mode)
	if mode.Provider != "fake" || mode.Mode != models.ModeLocal || mode.Configured {
		t.Errorf("mode: got %+v", mode)
	}
}

func TestSetCredentialSwitchesMode(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, okCompletion, models.Settings{Provider: "fake"})

	req := withID(httptest.NewRequest(http.MethodPut, "/api/providers/fake/credential", strings.NewReader(`{"secret":"sk-1"}`)), "fake")
	rec := httptest.NewRecorder()
	env.API.SetCredential(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var mode modeResponse
	decode(t, rec, &mode)
	if mode.Mode != models.ModeRemote || !mode.Configured {
		t.Errorf("mode: got %+v", mode)
	}
	if strings.Contains(rec.Body.String(), "sk-1") {
		t.Error("response must not echo the credential")
	}

	req = withID(httptest.NewRequest(http.MethodPut, "/api/providers/nope/credential", strings.NewReader(`{"secret":"x"}`)), "nope")
	rec = httptest.NewRecorder()
	env.API.SetCredential(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown provider: got %d, want 404", rec.Code)
	}

	req = withID(httptest.NewRequest(http.MethodPut, "/api/providers/fake/credential", strings.NewReader(`{"secret":"a\nb"}`)), "fake")
	rec = httptest.NewRecorder()
	env.API.SetCredential(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("multi-line secret: got %d, want 400", rec.Code)
	}
}

func TestTestProvider(t *testing.T) {
	t.Run("no credential makes no call", func(t *testing.T) {
		env := newTestEnv(t, http.StatusOK, okCompletion, models.Settings{Provider: "fake"})

		rec := httptest.NewRecorder()
		env.API.TestProvider(rec, withID(httptest.NewRequest(http.MethodPost, "/api/providers/fake/test", nil), "fake"))

		if rec.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rec.Code)
		}
		var got testResponse
		decode(t, rec, &got)
		if got.Reachable || got.Kind != "configuration" {
			t.Errorf("result: got %+v", got)
		}
		if atomic.LoadInt64(env.calls) != 0 {
			t.Errorf("provider calls: got %d, want 0", atomic.LoadInt64(env.calls))
		}
	})

	t.Run("acknowledged", func(t *testing.T) {
		env := newTestEnv(t, http.StatusOK, `{"choices":[{"message":{"content":"connection ok"}}]}`, models.Settings{
			Credentials: map[string]string{"fake": "sk"},
		})

		rec := httptest.NewRecorder()
		env.API.TestProvider(rec, withID(httptest.NewRequest(http.MethodPost, "/api/providers/fake/test", nil), "fake"))

		var got testResponse
		decode(t, rec, &got)
		if !got.Reachable || !got.Acknowledged || got.Error != "" {
			t.Errorf("result: got %+v", got)
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		env := newTestEnv(t, http.StatusOK, okCompletion, models.Settings{})

		rec := httptest.NewRecorder()
		env.API.TestProvider(rec, withID(httptest.NewRequest(http.MethodPost, "/api/providers/nope/test", nil), "nope"))
		if rec.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rec.Code)
		}
	})
}

func TestCacheEndpoints(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, okCompletion, models.Settings{
		Provider:    "fake",
		Credentials: map[string]string{"fake": "sk"},
	})

	rec := httptest.NewRecorder()
	env.API.SetCache(rec, httptest.NewRequest(http.MethodPut, "/api/cache", strings.NewReader(`{}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing field: got %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	env.API.SetCache(rec, httptest.NewRequest(http.MethodPut, "/api/cache", strings.NewReader(`{"enabled":true}`)))
	if rec.Code != http.StatusOK || !env.Service.Settings().EnableCache {
		t.Fatalf("enable cache: got %d, enabled=%v", rec.Code, env.Service.Settings().EnableCache)
	}

	generate := func() {
		req := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(`{"completed":["a"]}`))
		rec := httptest.NewRecorder()
		env.API.GenerateReport(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("generate: got %d", rec.Code)
		}
	}
	generate()
	generate()
	if atomic.LoadInt64(env.calls) != 1 {
		t.Errorf("provider calls with cache: got %d, want 1", atomic.LoadInt64(env.calls))
	}

	rec = httptest.NewRecorder()
	env.API.ClearCache(rec, httptest.NewRequest(http.MethodDelete, "/api/cache", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("clear: got %d, want 204", rec.Code)
	}
	generate()
	if atomic.LoadInt64(env.calls) != 2 {
		t.Errorf("provider calls after clear: got %d, want 2", atomic.LoadInt64(env.calls))
	}
}

func TestListStyles(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, okCompletion, models.Settings{})

	rec := httptest.NewRecorder()
	env.API.ListStyles(rec, httptest.NewRequest(http.MethodGet, "/api/styles?language=en-US", nil))

	var got []struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	}
	decode(t, rec, &got)
	if len(got) != 5 {
		t.Fatalf("styles: got %d, want 5", len(got))
	}
	if got[0].Key != "internet" || got[0].Name != "Internet Style" {
		t.Errorf("first style: got %+v", got[0])
	}
}
