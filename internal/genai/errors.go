// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package genai

import (
	"errors"
	"strings"
)

// ErrAllProvidersExhausted reports that every configured AI provider is
// either in quota cooldown or failed during the request.
var ErrAllProvidersExhausted = errors.New("all AI providers exhausted")

// quotaMarkers are the substrings that identify a quota or rate-limit
// failure in a provider error message.
var quotaMarkers = []string{
	"quota exceeded",
	"rate limit",
	"429",
	"resource exhausted",
	"too many requests",
}

// IsQuotaError reports whether err looks like a quota or rate-limit
// failure rather than a transient or structural one.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range quotaMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
