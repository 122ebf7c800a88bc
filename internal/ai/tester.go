// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"strings"
	"time"
)

const (
	// AckPhrase is the reply a connection probe asks for.
	AckPhrase = "connection ok"

	probeSystemPrompt = `You are a test assistant. When the user sends a test message, reply "connection ok".`
	probePrompt       = `Please reply "connection ok".`
	probeMaxTokens    = 50
	probeTemperature  = 0.1
)

// TestResult is the outcome of a connection probe. Reachable is true when
// the provider answered with usable content; Acknowledged additionally
// requires the expected phrase.
type TestResult struct {
	Provider     string `json:"provider"`
	Reachable    bool   `json:"reachable"`
	Acknowledged bool   `json:"acknowledged"`
	Endpoint     string `json:"endpoint,omitempty"`
	Detail       string `json:"detail,omitempty"`
	Err          error  `json:"-"`
}

// Test sends a minimal probe to provider id. A missing credential fails
// before any request is made.
func (r *Registry) Test(ctx context.Context, id string, cfg ProviderConfig, timeout time.Duration) TestResult {
	res := TestResult{Provider: id}

	opts := Options{
		Timeout:      timeout,
		MaxTokens:    probeMaxTokens,
		Temperature:  probeTemperature,
		SystemPrompt: probeSystemPrompt,
	}
	if spec, ok := r.Spec(id); ok && spec.ProbeModel != "" && cfg.Model == "" {
		opts.Model = spec.ProbeModel
	}

	out, err := r.Invoke(ctx, id, probePrompt, cfg, opts)
	if err != nil {
		res.Err = err
		res.Detail = err.Error()
		return res
	}

	res.Reachable = true
	res.Endpoint = out.Endpoint
	res.Acknowledged = acknowledged(out.Content)
	res.Detail = truncate(strings.TrimSpace(out.Content), maxErrorBody)
	return res
}

func acknowledged(content string) bool {
	c := strings.ToLower(content)
	return strings.Contains(c, AckPhrase) || strings.Contains(c, "连接成功")
}
