// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"fmt"
	"strings"
)

// FallbackExplanation produces a deterministic, query-flavored relevance
// sentence. It is the safety net for every path where AI-generated text
// is missing, malformed, or a known placeholder, so it must stay pure.
func FallbackExplanation(query, title string) string {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "test"):
		return fmt.Sprintf("This paper addresses testing methodology relevant to '%s', covering validation and evaluation practice in the area.", query)
	case strings.Contains(q, "machine learning"), strings.Contains(q, "artificial intelligence"), containsWord(q, "ai"):
		return fmt.Sprintf("This work contributes to machine learning research related to '%s', presenting techniques applicable to the field.", query)
	case strings.Contains(q, "neural"), strings.Contains(q, "deep learning"):
		return fmt.Sprintf("This paper advances neural network research connected to '%s', with findings relevant to deep learning practice.", query)
	default:
		if title != "" {
			return fmt.Sprintf("This research provides insights relevant to your '%s' query based on comprehensive analysis of %s.", query, title)
		}
		return fmt.Sprintf("This research provides insights relevant to your '%s' query based on comprehensive analysis.", query)
	}
}

// containsWord reports whether text contains term as a whole
// whitespace-delimited word, so queries like "maintain" do not trigger
// the "ai" bucket.
func containsWord(text, term string) bool {
	for _, w := range strings.Fields(text) {
		if w == term {
			return true
		}
	}
	return false
}
