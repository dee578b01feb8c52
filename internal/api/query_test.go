// ABOUTME: Tests for query string construction
// ABOUTME: Verifies empty-value skipping, ordering, and escaping

package api

import "testing"

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
		want   string
	}{
		{
			name:   "skips empty values",
			params: map[string]string{"q": "", "page": "1"},
			want:   "page=1",
		},
		{
			name:   "all empty yields empty string",
			params: map[string]string{"q": "", "limit": ""},
			want:   "",
		},
		{
			name:   "keys are sorted",
			params: map[string]string{"q": "kopi", "limit": "10", "page": "2"},
			want:   "limit=10&page=2&q=kopi",
		},
		{
			name:   "values are escaped",
			params: map[string]string{"q": "kopi & teh"},
			want:   "q=kopi+%26+teh",
		},
		{
			name:   "nil map",
			params: nil,
			want:   "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildQuery(tt.params); got != tt.want {
				t.Errorf("BuildQuery(%v) = %q, want %q", tt.params, got, tt.want)
			}
		})
	}
}
