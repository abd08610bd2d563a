package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Key uniquely identifies a cached PushShift response.
type Key struct {
	// Endpoint is the API path (e.g., "/reddit/submission/search/").
	Endpoint string

	// QueryParams are the query parameters of the request, pagination
	// cursor included.
	QueryParams url.Values
}

// String generates a deterministic cache key string.
// Format: pushshift:endpoint:param1=val1:param2=val2
//
// Example:
//
//	pushshift:reddit/submission/search:size=25:subreddit=golang
func (k Key) String() string {
	parts := []string{"pushshift"}

	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	// Query params sorted for determinism.
	if len(k.QueryParams) > 0 {
		keys := make([]string, 0, len(k.QueryParams))
		for key := range k.QueryParams {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, k.QueryParams.Get(key)))
		}
	}

	return strings.Join(parts, ":")
}
