// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxTokens   = 2000
	defaultTemperature = 0.7

	maxResponseBytes = 4 << 20
	maxErrorBody     = 512
)

// Options tunes a single call.
type Options struct {
	Timeout      time.Duration // whole call across every endpoint; default 30s
	MaxTokens    int           // default 2000
	Temperature  float64       // 0 means the default 0.7
	SystemPrompt string        // chat shape only; omitted when empty
	Model        string        // overrides ProviderConfig.Model
}

// Result is a successful call.
type Result struct {
	Content     string
	Provider    string
	Model       string
	Endpoint    string
	TotalTokens int
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Text string `json:"text"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

type textResponse struct {
	GeneratedText string `json:"generated_text"`
}

// Invoke sends prompt to provider id and returns the generated text. It
// makes no retries; when the spec lists several candidate endpoints they
// are tried in order and the last failure is returned. Options.Timeout
// bounds the whole call: each endpoint gets an equal share of what is left.
func (r *Registry) Invoke(ctx context.Context, id, prompt string, cfg ProviderConfig, opts Options) (*Result, error) {
	spec, ok := r.Spec(id)
	if !ok {
		return nil, &ConfigError{Provider: id, Err: ErrUnknownProvider}
	}
	if spec.RequiresCredential && cfg.APIKey == "" {
		return nil, &ConfigError{Provider: id, Err: ErrNoCredential}
	}

	model := firstNonEmpty(opts.Model, cfg.Model, spec.DefaultModel)
	body, err := buildBody(spec, model, prompt, opts)
	if err != nil {
		return nil, fmt.Errorf("ai: %s marshal: %w", id, err)
	}

	endpoints := spec.Endpoints
	if cfg.Endpoint != "" {
		endpoints = []string{cfg.Endpoint}
	}
	if len(endpoints) == 0 {
		return nil, &ConfigError{Provider: id, Err: errors.New("no endpoint configured")}
	}

	budget := opts.Timeout
	if budget <= 0 {
		budget = defaultTimeout
	}
	deadline := time.Now().Add(budget)

	var lastErr error
	for i, endpoint := range endpoints {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		share := remaining / time.Duration(len(endpoints)-i)

		endpoint = strings.ReplaceAll(endpoint, "{model}", model)
		content, tokens, err := r.post(ctx, spec, endpoint, cfg.APIKey, body, share)
		if err == nil {
			return &Result{
				Content:     content,
				Provider:    id,
				Model:       model,
				Endpoint:    endpoint,
				TotalTokens: tokens,
			}, nil
		}
		lastErr = err
		if IsConfigError(err) || ctx.Err() != nil {
			break
		}
	}
	if lastErr == nil {
		lastErr = &TransportError{Provider: id, Err: ErrTimeout}
	}
	return nil, lastErr
}

func buildBody(spec Spec, model, prompt string, opts Options) ([]byte, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}

	switch spec.Shape {
	case ShapeTextInputs:
		params := map[string]any{
			"max_length":  maxTokens,
			"temperature": temperature,
		}
		for k, v := range spec.Params {
			params[k] = v
		}
		return json.Marshal(map[string]any{
			"inputs":     prompt,
			"parameters": params,
		})
	default:
		var messages []chatMessage
		if opts.SystemPrompt != "" {
			messages = append(messages, chatMessage{Role: "system", Content: opts.SystemPrompt})
		}
		messages = append(messages, chatMessage{Role: "user", Content: prompt})
		req := map[string]any{
			"model":       model,
			"messages":    messages,
			"max_tokens":  maxTokens,
			"temperature": temperature,
		}
		for k, v := range spec.Params {
			req[k] = v
		}
		return json.Marshal(req)
	}
}

func (r *Registry) post(ctx context.Context, spec Spec, endpoint, apiKey string, body []byte, timeout time.Duration) (string, int, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("ai: %s request: %w", spec.ID, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	for k, v := range spec.Headers {
		req.Header.Set(k, v)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", 0, classifyTransport(ctx, callCtx, spec.ID, endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", 0, classifyTransport(ctx, callCtx, spec.ID, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", 0, &StatusError{
			Provider:   spec.ID,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(respBody), maxErrorBody),
		}
	}

	return extract(spec, respBody)
}

// classifyTransport separates the per-call deadline from a cancelled
// parent context and from plain network failures.
func classifyTransport(parent, call context.Context, id, endpoint string, err error) error {
	if parent.Err() != nil {
		return fmt.Errorf("ai: %s: %w", id, parent.Err())
	}
	if errors.Is(call.Err(), context.DeadlineExceeded) {
		return &TransportError{Provider: id, Endpoint: endpoint, Err: fmt.Errorf("%w: %v", ErrTimeout, err)}
	}
	return &TransportError{Provider: id, Endpoint: endpoint, Err: err}
}

func extract(spec Spec, body []byte) (string, int, error) {
	switch spec.Shape {
	case ShapeTextInputs:
		var list []textResponse
		if err := json.Unmarshal(body, &list); err == nil {
			if len(list) == 0 || strings.TrimSpace(list[0].GeneratedText) == "" {
				return "", 0, fmt.Errorf("ai: %s: %w", spec.ID, ErrEmptyContent)
			}
			return list[0].GeneratedText, 0, nil
		}
		var single textResponse
		if err := json.Unmarshal(body, &single); err != nil {
			return "", 0, fmt.Errorf("ai: %s: %w: %v", spec.ID, ErrMalformedResponse, err)
		}
		if strings.TrimSpace(single.GeneratedText) == "" {
			return "", 0, fmt.Errorf("ai: %s: %w", spec.ID, ErrEmptyContent)
		}
		return single.GeneratedText, 0, nil
	default:
		var cr chatResponse
		if err := json.Unmarshal(body, &cr); err != nil {
			return "", 0, fmt.Errorf("ai: %s: %w: %v", spec.ID, ErrMalformedResponse, err)
		}
		if len(cr.Choices) == 0 {
			return "", 0, fmt.Errorf("ai: %s: %w", spec.ID, ErrEmptyContent)
		}
		content := firstNonEmpty(cr.Choices[0].Message.Content, cr.Choices[0].Text)
		if strings.TrimSpace(content) == "" {
			return "", 0, fmt.Errorf("ai: %s: %w", spec.ID, ErrEmptyContent)
		}
		return content, cr.Usage.TotalTokens, nil
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
