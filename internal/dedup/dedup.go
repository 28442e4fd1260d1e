// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedup removes records that represent the same paper from the
// aggregated provider output. The fingerprint is the case-insensitive
// trimmed title combined with the publication year bucket; titles are the
// only field reliably present across all providers, and exact match on
// the normalized title is a deliberate precision-over-recall choice:
// near-duplicate titles from OCR or venue variants are not merged.
package dedup

import (
	"fmt"
	"strings"

	"github.com/alextsol/ai-scholar/pkg/types"
)

// Papers returns the input with duplicates removed, keeping the first
// paper seen per fingerprint and preserving first-seen order. Idempotent;
// never grows the list.
func Papers(papers []types.Paper) []types.Paper {
	seen := make(map[string]bool, len(papers))
	var unique []types.Paper
	for _, p := range papers {
		key := Fingerprint(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, p)
	}
	return unique
}

// Fingerprint returns the dedup key for a paper: normalized title plus
// year bucket (0 when the year is unknown).
func Fingerprint(p types.Paper) string {
	return fmt.Sprintf("%s|%d", strings.ToLower(strings.TrimSpace(p.Title)), p.Year)
}
