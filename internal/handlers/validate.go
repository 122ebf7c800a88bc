// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validation limits for report inputs.
const (
	maxItemsPerList = 50
	maxItemLen      = 500
	maxSecretLen    = 512
	maxBodyBytes    = 1 << 20
)

// validateItems checks one input list and returns the first error found.
func validateItems(field string, items []string) string {
	if len(items) > maxItemsPerList {
		return fmt.Sprintf("%s has too many items (max %d).", field, maxItemsPerList)
	}
	for i, item := range items {
		if utf8.RuneCountInString(item) > maxItemLen {
			return fmt.Sprintf("%s item %d is too long (max %d characters).", field, i+1, maxItemLen)
		}
	}
	return ""
}

// validateGenerate checks all three lists.
func validateGenerate(req generateRequest) string {
	if msg := validateItems("Completed", req.Completed); msg != "" {
		return msg
	}
	if msg := validateItems("Problems", req.Problems); msg != "" {
		return msg
	}
	return validateItems("Plans", req.Plans)
}

// validateSecret checks a credential before it is stored.
func validateSecret(secret string) string {
	if utf8.RuneCountInString(secret) > maxSecretLen {
		return fmt.Sprintf("Credential is too long (max %d characters).", maxSecretLen)
	}
	if strings.ContainsAny(secret, "\r\n") {
		return "Credential must be a single line."
	}
	return ""
}
