// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies provider failures for retry and fallback decisions.
type Kind int

const (
	// KindConfiguration covers unknown providers and missing or rejected
	// credentials. Never retried.
	KindConfiguration Kind = iota + 1
	// KindTransient covers timeouts, transport failures, 429 and 5xx.
	KindTransient
	// KindPermanent covers other 4xx and malformed or empty responses.
	KindPermanent
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindTransient:
		return "transient"
	case KindPermanent:
		return "permanent"
	}
	return "unknown"
}

var (
	ErrUnknownProvider   = errors.New("unknown provider")
	ErrNoCredential      = errors.New("credential not configured")
	ErrTimeout           = errors.New("request timed out")
	ErrEmptyContent      = errors.New("empty content")
	ErrMalformedResponse = errors.New("malformed response")
)

// ConfigError reports a configuration problem detected before any request
// was issued.
type ConfigError struct {
	Provider string
	Err      error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("ai: %s: configuration error: %v", e.Provider, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// StatusError is a non-2xx HTTP response.
type StatusError struct {
	Provider   string
	Endpoint   string
	StatusCode int
	Body       string // truncated response body
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ai: %s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

// Kind classifies the status code.
func (e *StatusError) Kind() Kind {
	switch {
	case e.StatusCode == http.StatusUnauthorized, e.StatusCode == http.StatusForbidden:
		return KindConfiguration
	case e.StatusCode == http.StatusTooManyRequests, e.StatusCode >= 500:
		return KindTransient
	}
	return KindPermanent
}

// TransportError wraps a failure to reach the provider at all.
type TransportError struct {
	Provider string
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("ai: %s http: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// KindOf classifies err. Unrecognized errors are permanent.
func KindOf(err error) Kind {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return KindConfiguration
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Kind()
	}
	if errors.Is(err, ErrTimeout) {
		return KindTransient
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return KindTransient
	}
	return KindPermanent
}

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool { return err != nil && KindOf(err) == KindTransient }

// IsConfigError reports whether err is a configuration failure.
func IsConfigError(err error) bool { return err != nil && KindOf(err) == KindConfiguration }

// StatusCode extracts the HTTP status from err, or 0.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

// IsPermanent reports whether err is a non-retryable provider failure
// other than a configuration problem.
func IsPermanent(err error) bool { return err != nil && KindOf(err) == KindPermanent }
