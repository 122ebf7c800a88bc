// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"weeklyreport/internal/models"
)

// testValkeyOptions points at DB 15 so tests never touch real cache data.
func testValkeyOptions() ValkeyOptions {
	return ValkeyOptions{
		Host:     envOr("VALKEY_HOST", "localhost"),
		Port:     envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	}
}

// testValkeyClient returns a connected client and skips if Valkey is
// unavailable. Report keys are removed when the test ends.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	client, err := ConnectValkey(ctx, testValkeyOptions())
	if err != nil {
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		bg := context.Background()
		keys, _ := client.Keys(bg, reportKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(bg, keys...)
		}
		client.Close()
	})

	return client
}

func TestValkeyOptionsAddr(t *testing.T) {
	tests := []struct {
		host, port, want string
	}{
		{"localhost", "6379", "localhost:6379"},
		{"::1", "6380", "[::1]:6380"},
	}
	for _, tt := range tests {
		if got := (ValkeyOptions{Host: tt.host, Port: tt.port}).Addr(); got != tt.want {
			t.Errorf("Addr(%q, %q): got %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func sampleReport() *models.Report {
	return &models.Report{
		ID:          uuid.New(),
		Content:     "📅 Week 42 Work Report",
		Style:       "Internet Style",
		StyleKey:    "internet",
		Language:    "en-US",
		Provider:    models.ProviderLocal,
		Mode:        models.ModeLocal,
		GeneratedAt: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC),
	}
}

func TestConnectValkey(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	client, err := ConnectValkey(ctx, testValkeyOptions())
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	pong, err := client.Ping(context.Background()).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestReportCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewReportCache(client, time.Minute)
	ctx := context.Background()

	if _, ok := rc.Get(ctx, "abc"); ok {
		t.Error("expected cache miss")
	}

	want := sampleReport()
	rc.Set(ctx, "abc", want)

	got, ok := rc.Get(ctx, "abc")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.ID != want.ID || got.Content != want.Content {
		t.Errorf("report mismatch: got %+v, want %+v", got, want)
	}
	if !got.GeneratedAt.Equal(want.GeneratedAt) {
		t.Errorf("GeneratedAt: got %v, want %v", got.GeneratedAt, want.GeneratedAt)
	}

	ttl, err := client.TTL(ctx, reportKeyPrefix+"abc").Result()
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL: got %v, want (0, 1m]", ttl)
	}
}

func TestReportCacheClear(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewReportCache(client, time.Minute)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		rc.Set(ctx, key, sampleReport())
	}
	client.Set(ctx, "unrelated", "keep", time.Minute)
	t.Cleanup(func() { client.Del(ctx, "unrelated") })

	if err := rc.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	for _, key := range []string{"a", "b", "c"} {
		if _, ok := rc.Get(ctx, key); ok {
			t.Errorf("expected miss for %q after Clear", key)
		}
	}
	if v, _ := client.Get(ctx, "unrelated").Result(); v != "keep" {
		t.Error("Clear should only remove report keys")
	}
}

func TestReportCacheCorruptEntryIsMiss(t *testing.T) {
	client := testValkeyClient(t)
	rc := NewReportCache(client, time.Minute)
	ctx := context.Background()

	client.Set(ctx, reportKeyPrefix+"bad", "{not json", time.Minute)
	if _, ok := rc.Get(ctx, "bad"); ok {
		t.Error("expected miss for undecodable entry")
	}
}

func TestReportCacheUnreachableIsMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	rc := NewReportCache(client, 0)
	ctx := context.Background()

	rc.Set(ctx, "k", sampleReport())
	if _, ok := rc.Get(ctx, "k"); ok {
		t.Error("expected miss when Valkey is down")
	}
	if err := rc.Clear(ctx); err == nil {
		t.Error("Clear: expected error when Valkey is down")
	}
}

func TestNewReportCacheDefaultTTL(t *testing.T) {
	rc := NewReportCache(nil, 0)
	if rc.ttl != DefaultTTL {
		t.Errorf("expected DefaultTTL (%v), got %v", DefaultTTL, rc.ttl)
	}
}

func TestMemorySetGetClear(t *testing.T) {
	m := NewMemory(time.Hour)
	ctx := context.Background()

	if _, ok := m.Get(ctx, "k"); ok {
		t.Error("expected miss on empty cache")
	}

	first := sampleReport()
	second := sampleReport()
	m.Set(ctx, "k", first)
	m.Set(ctx, "k", second)

	got, ok := m.Get(ctx, "k")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.ID != second.ID {
		t.Error("last write should win")
	}

	if err := m.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("Len after Clear: got %d, want 0", m.Len())
	}
}

func TestMemoryExpires(t *testing.T) {
	m := NewMemory(time.Hour)
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	m.Set(ctx, "k", sampleReport())

	now = now.Add(59 * time.Minute)
	if _, ok := m.Get(ctx, "k"); !ok {
		t.Error("expected hit inside the horizon")
	}

	now = now.Add(time.Minute)
	if _, ok := m.Get(ctx, "k"); ok {
		t.Error("expected miss at the horizon")
	}
	if m.Len() != 0 {
		t.Errorf("stale entry should be dropped, Len = %d", m.Len())
	}
}
