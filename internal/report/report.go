// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package report orchestrates weekly report generation: it checks the
// cache, decides between a remote provider and the local template engine,
// retries transient remote failures and falls back locally when the
// remote path gives up.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"weeklyreport/internal/ai"
	"weeklyreport/internal/local"
	"weeklyreport/internal/models"
	"weeklyreport/internal/prompt"
	"weeklyreport/internal/style"
)

const (
	defaultRetryCount = 2
	defaultRetryDelay = 500 * time.Millisecond
	defaultTimeout    = 30 * time.Second
)

// ErrNoCompletedItems is returned when the completed list is empty after
// trimming.
var ErrNoCompletedItems = errors.New("at least one completed item is required")

// Cache stores generated reports by fingerprint. Backend faults must be
// absorbed by the implementation and read as misses.
type Cache interface {
	Get(ctx context.Context, key string) (*models.Report, bool)
	Set(ctx context.Context, key string, r *models.Report)
	Clear(ctx context.Context) error
}

// SettingsStore persists Settings across restarts. Load returns nil and no
// error when nothing has been saved yet.
//
// Service applies every settings change in memory before calling Save, one
// change at a time and in order. A failed Save does not roll the change
// back; SelectProvider, SetCredential and SetCacheEnabled return the error
// so callers can report that the change will not survive a restart.
type SettingsStore interface {
	Load(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, s models.Settings) error
}

// Options configures a Service. Registry and Engine are required.
type Options struct {
	Registry *ai.Registry
	Engine   *local.Engine
	Cache    Cache         // nil disables caching regardless of settings
	Store    SettingsStore // nil keeps settings in memory only
	Settings models.Settings

	// Providers holds per-provider model and endpoint overrides. The
	// credential always comes from Settings.
	Providers map[string]ai.ProviderConfig

	Now        func() time.Time
	RetryCount int           // total remote attempts; default 2
	RetryDelay time.Duration // constant delay between attempts; default 500ms, negative for none
	Timeout    time.Duration // per attempt; default 30s

	// DisableFallback returns the remote error instead of a local report.
	DisableFallback bool
}

// Service is the report orchestrator. It is safe for concurrent use.
type Service struct {
	registry  *ai.Registry
	engine    *local.Engine
	cache     Cache
	store     SettingsStore
	providers map[string]ai.ProviderConfig
	now       func() time.Time

	retryCount int
	retryDelay time.Duration
	timeout    time.Duration
	fallback   bool

	mu       sync.RWMutex
	settings models.Settings

	// saveMu is held from mutation through Save so snapshots reach the
	// store in the order they were taken.
	saveMu sync.Mutex
}

// ProviderStatus is a provider's metadata plus its state in this service.
type ProviderStatus struct {
	ai.Info
	Configured bool `json:"configured"`
	Selected   bool `json:"selected"`
}

// New creates a Service.
func New(opts Options) *Service {
	s := &Service{
		registry:   opts.Registry,
		engine:     opts.Engine,
		cache:      opts.Cache,
		store:      opts.Store,
		providers:  opts.Providers,
		now:        opts.Now,
		retryCount: opts.RetryCount,
		retryDelay: opts.RetryDelay,
		timeout:    opts.Timeout,
		fallback:   !opts.DisableFallback,
		settings:   opts.Settings.Clone(),
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.retryCount <= 0 {
		s.retryCount = defaultRetryCount
	}
	switch {
	case s.retryDelay == 0:
		s.retryDelay = defaultRetryDelay
	case s.retryDelay < 0:
		s.retryDelay = 0
	}
	if s.timeout <= 0 {
		s.timeout = defaultTimeout
	}
	if s.providers == nil {
		s.providers = map[string]ai.ProviderConfig{}
	}
	return s
}

// Load restores persisted settings. Stored values override the ones the
// service was built with; credentials are merged per provider.
func (s *Service) Load(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	stored, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if stored == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if stored.Provider != "" && s.registry.Has(stored.Provider) {
		s.settings.Provider = stored.Provider
	}
	if s.settings.Credentials == nil {
		s.settings.Credentials = map[string]string{}
	}
	for id, secret := range stored.Credentials {
		if secret != "" {
			s.settings.Credentials[id] = secret
		}
	}
	s.settings.EnableCache = stored.EnableCache
	slog.Info("settings restored", "provider", s.settings.Provider, "mode", s.modeLocked())
	return nil
}

// Settings returns a snapshot of the current settings.
func (s *Service) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Clone()
}

// Mode reports the generation mode: remote when the selected provider is
// usable with its stored credential, local otherwise.
func (s *Service) Mode() models.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modeLocked()
}

func (s *Service) modeLocked() models.Mode {
	if s.registry.Ready(s.settings.Provider, s.settings.Credential(s.settings.Provider)) {
		return models.ModeRemote
	}
	return models.ModeLocal
}

// SetProvider selects the active provider and reports whether id is
// known. Unknown ids leave the selection unchanged. A failed Save is logged;
// use SelectProvider to observe it.
func (s *Service) SetProvider(ctx context.Context, id string) bool {
	err := s.SelectProvider(ctx, id)
	if errors.Is(err, ai.ErrUnknownProvider) {
		return false
	}
	if err != nil {
		slog.Error("saving settings", "error", err)
	}
	return true
}

// SelectProvider is SetProvider with the error exposed: a ConfigError for
// an unknown id, or the Save failure.
func (s *Service) SelectProvider(ctx context.Context, id string) error {
	if !s.registry.Has(id) {
		return &ai.ConfigError{Provider: id, Err: ai.ErrUnknownProvider}
	}
	return s.update(ctx, func(st *models.Settings) {
		st.Provider = id
	}, "provider selected", "provider", id)
}

// SetCredential stores the credential for provider id. An empty secret
// removes it.
func (s *Service) SetCredential(ctx context.Context, id, secret string) error {
	if !s.registry.Has(id) {
		return &ai.ConfigError{Provider: id, Err: ai.ErrUnknownProvider}
	}
	secret = strings.TrimSpace(secret)

	return s.update(ctx, func(st *models.Settings) {
		if st.Credentials == nil {
			st.Credentials = map[string]string{}
		}
		if secret == "" {
			delete(st.Credentials, id)
		} else {
			st.Credentials[id] = secret
		}
	}, "credential updated", "provider", id, "set", secret != "")
}

// SetCacheEnabled toggles result caching.
func (s *Service) SetCacheEnabled(ctx context.Context, enabled bool) error {
	return s.update(ctx, func(st *models.Settings) {
		st.EnableCache = enabled
	}, "cache toggled", "enabled", enabled)
}

// update applies mutate to the live settings and saves the result.
func (s *Service) update(ctx context.Context, mutate func(*models.Settings), msg string, attrs ...any) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	mutate(&s.settings)
	snapshot := s.settings.Clone()
	mode := s.modeLocked()
	s.mu.Unlock()

	slog.Info(msg, append(attrs, "mode", mode)...)
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// ListProviders returns every known provider with its configured and
// selected flags.
func (s *Service) ListProviders() []ProviderStatus {
	settings := s.Settings()
	infos := s.registry.List()
	out := make([]ProviderStatus, 0, len(infos))
	for _, info := range infos {
		out = append(out, ProviderStatus{
			Info:       info,
			Configured: settings.Credential(info.ID) != "",
			Selected:   settings.Provider == info.ID,
		})
	}
	return out
}

// TestConnection probes provider id, or the selected provider when id is
// empty, using its stored credential.
func (s *Service) TestConnection(ctx context.Context, id string) ai.TestResult {
	settings := s.Settings()
	if id == "" {
		id = settings.Provider
	}
	res := s.registry.Test(ctx, id, s.providerConfig(id, settings), s.timeout)
	slog.Info("connection test", "provider", id, "reachable", res.Reachable, "acknowledged", res.Acknowledged)
	return res
}

// ClearCache empties the generation cache.
func (s *Service) ClearCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Clear(ctx); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	slog.Info("cache cleared")
	return nil
}

func (s *Service) providerConfig(id string, settings models.Settings) ai.ProviderConfig {
	cfg := s.providers[id]
	cfg.APIKey = settings.Credential(id)
	return cfg
}

// Generate produces a report for the given inputs. It fails only when the
// inputs hold no completed item, when the context is cancelled, or when
// fallback is disabled and the remote path fails.
func (s *Service) Generate(ctx context.Context, in models.Inputs, styleKey, lang string) (*models.Report, error) {
	in = in.Normalize()
	if len(in.Completed) == 0 {
		return nil, ErrNoCompletedItems
	}
	styleKey = style.NormalizeKey(styleKey)
	lang = style.NormalizeLanguage(lang)

	settings := s.Settings()
	useCache := settings.EnableCache && s.cache != nil
	key := CacheKey(in, styleKey, lang, s.now())

	if useCache {
		if r, ok := s.cache.Get(ctx, key); ok {
			slog.Debug("report cache hit", "key", key)
			return r, nil
		}
	}

	var rep *models.Report
	if s.registry.Ready(settings.Provider, settings.Credential(settings.Provider)) {
		remote, err := s.generateRemote(ctx, in, styleKey, lang, settings)
		switch {
		case err == nil:
			rep = remote
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case !s.fallback:
			return nil, err
		default:
			slog.Warn("remote generation failed, using local templates",
				"provider", settings.Provider, "kind", ai.KindOf(err), "error", err)
			rep = s.engine.Generate(in, styleKey, lang)
			rep.RemoteError = err.Error()
		}
	} else {
		rep = s.engine.Generate(in, styleKey, lang)
	}

	if useCache {
		s.cache.Set(ctx, key, rep)
	}
	return rep, nil
}

func (s *Service) generateRemote(ctx context.Context, in models.Inputs, styleKey, lang string, settings models.Settings) (*models.Report, error) {
	info := style.Resolve(styleKey, lang)
	id := settings.Provider
	cfg := s.providerConfig(id, settings)
	opts := ai.Options{
		Timeout:      s.timeout,
		SystemPrompt: prompt.SystemPrompt,
	}
	text := prompt.Build(in, info, lang)

	delay := s.retryDelay
	backoff := retry.WithMaxRetries(uint64(s.retryCount-1), retry.BackoffFunc(func() (time.Duration, bool) {
		return delay, false
	}))

	var result *ai.Result
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		res, err := s.registry.Invoke(ctx, id, text, cfg, opts)
		if err != nil {
			slog.Warn("remote attempt failed", "provider", id, "attempt", attempt, "error", err)
			if ai.IsTransient(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("report generated", "provider", id, "model", result.Model, "attempts", attempt)
	return &models.Report{
		ID:          uuid.New(),
		Content:     result.Content,
		Style:       info.Name,
		StyleKey:    info.Key,
		Language:    lang,
		Provider:    id,
		Mode:        models.ModeRemote,
		Model:       result.Model,
		GeneratedAt: s.now(),
	}, nil
}
