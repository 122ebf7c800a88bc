// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package report

import (
	"testing"
	"time"

	"weeklyreport/internal/models"
)

func TestCacheKeyIsPure(t *testing.T) {
	in := models.Inputs{Completed: []string{"a", "b"}, Plans: []string{"c"}}
	now := time.Date(2026, 10, 14, 9, 5, 0, 0, time.UTC)

	k1 := CacheKey(in, "internet", "en-US", now)
	k2 := CacheKey(in, "internet", "en-US", now.Add(30*time.Minute))
	if k1 != k2 {
		t.Errorf("same hour: got %q and %q", k1, k2)
	}

	trimmed := CacheKey(models.Inputs{Completed: []string{" a ", "", "b"}, Plans: []string{"c"}}, "internet", "en-US", now)
	if trimmed != k1 {
		t.Errorf("whitespace-only differences should not change the key")
	}

	unknown := CacheKey(in, "nonsense", "xx", now)
	if unknown != CacheKey(in, "internet", "zh-CN", now) {
		t.Errorf("unknown style and language should normalize before hashing")
	}
}

func TestCacheKeyDistinguishes(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	base := models.Inputs{Completed: []string{"a", "b"}}

	variants := map[string]string{
		"base":         CacheKey(base, "internet", "en-US", now),
		"next hour":    CacheKey(base, "internet", "en-US", now.Add(time.Hour)),
		"style":        CacheKey(base, "foreign", "en-US", now),
		"language":     CacheKey(base, "internet", "zh-CN", now),
		"joined items": CacheKey(models.Inputs{Completed: []string{"ab"}}, "internet", "en-US", now),
		"moved item":   CacheKey(models.Inputs{Completed: []string{"a"}, Problems: []string{"b"}}, "internet", "en-US", now),
		"order":        CacheKey(models.Inputs{Completed: []string{"b", "a"}}, "internet", "en-US", now),
	}
	seen := map[string]string{}
	for name, key := range variants {
		if other, ok := seen[key]; ok {
			t.Errorf("%s and %s share key %q", name, other, key)
		}
		seen[key] = name
	}
}
