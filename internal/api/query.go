// ABOUTME: Query string builder for list endpoints
// ABOUTME: Skips empty values so filters stay out of the URL when unset

package api

import (
	"net/url"
	"sort"
	"strings"
)

// BuildQuery encodes params as a query string, skipping empty values.
// Keys are emitted in sorted order so URLs are stable.
func BuildQuery(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+url.QueryEscape(params[k]))
	}
	return strings.Join(parts, "&")
}
