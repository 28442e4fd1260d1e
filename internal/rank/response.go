// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"encoding/json"
	"strings"
)

// rankedEntry is one element of the model's JSON answer.
type rankedEntry struct {
	Title       string `json:"title"`
	Authors     string `json:"authors"`
	Citations   int    `json:"citations"`
	Explanation string `json:"explanation"`
}

// stripFences removes a leading Markdown code-fence wrapper, with or
// without a json language tag, from model output.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	} else {
		return text
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// parseRankedEntries parses model output as either a bare JSON array or
// an object wrapping the array under a "papers" key. Returns nil when
// the output is not parseable.
func parseRankedEntries(text string) []rankedEntry {
	cleaned := stripFences(text)

	var entries []rankedEntry
	if err := json.Unmarshal([]byte(cleaned), &entries); err == nil {
		return entries
	}

	var wrapped struct {
		Papers []rankedEntry `json:"papers"`
	}
	if err := json.Unmarshal([]byte(cleaned), &wrapped); err == nil && wrapped.Papers != nil {
		return wrapped.Papers
	}
	return nil
}
