// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"testing"
)

func TestValidateGenerate(t *testing.T) {
	many := make([]string, maxItemsPerList+1)
	for i := range many {
		many[i] = "x"
	}

	tests := []struct {
		name string
		req  generateRequest
		want string
	}{
		{"valid", generateRequest{Completed: []string{"a"}, Plans: []string{"b"}}, ""},
		{"too many completed", generateRequest{Completed: many}, "Completed has too many items"},
		{"long problem", generateRequest{Problems: []string{strings.Repeat("é", maxItemLen+1)}}, "Problems item 1 is too long"},
		{"long plan", generateRequest{Plans: []string{"ok", strings.Repeat("p", maxItemLen+1)}}, "Plans item 2 is too long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateGenerate(tt.req)
			if tt.want == "" && got != "" {
				t.Errorf("got %q, want no error", got)
			}
			if tt.want != "" && !strings.Contains(got, tt.want) {
				t.Errorf("got %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestValidateSecret(t *testing.T) {
	if msg := validateSecret("sk-123"); msg != "" {
		t.Errorf("valid secret: got %q", msg)
	}
	if msg := validateSecret(strings.Repeat("k", maxSecretLen+1)); msg == "" {
		t.Error("long secret: expected error")
	}
	if msg := validateSecret("a\r\nb"); msg == "" {
		t.Error("multi-line secret: expected error")
	}
}
