// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package providers

import (
	"net/http"
	"strings"
	"time"

	"github.com/alextsol/ai-scholar/pkg/types"
)

// newHTTPClient builds the shared HTTP client for all backends. Every
// external call carries an explicit timeout so no pipeline stage can block
// indefinitely.
func newHTTPClient(cfg types.SearchConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// joinAuthors flattens a list of author names into the free-form Authors
// field, skipping empty entries.
func joinAuthors(names []string) string {
	var kept []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			kept = append(kept, n)
		}
	}
	return strings.Join(kept, ", ")
}

// perProviderLimit resolves the result cap for one backend call.
func perProviderLimit(req types.Request, cfg types.SearchConfig) int {
	if req.PerProviderLimit > 0 {
		return req.PerProviderLimit
	}
	if cfg.PerProviderLimit > 0 {
		return cfg.PerProviderLimit
	}
	return 20
}
