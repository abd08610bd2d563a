package cache

import (
	"net/url"
	"testing"
)

func TestKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{
			name: "endpoint without params",
			key: Key{
				Endpoint: "/reddit/submission/search/",
			},
			want: "pushshift:reddit/submission/search",
		},
		{
			name: "endpoint with one query param",
			key: Key{
				Endpoint: "/reddit/comment/search/",
				QueryParams: url.Values{
					"subreddit": []string{"golang"},
				},
			},
			want: "pushshift:reddit/comment/search:subreddit=golang",
		},
		{
			name: "multiple query params sorted",
			key: Key{
				Endpoint: "/reddit/submission/search/",
				QueryParams: url.Values{
					"subreddit": []string{"golang"},
					"size":      []string{"25"},
					"before":    []string{"1609459200"},
				},
			},
			want: "pushshift:reddit/submission/search:before=1609459200:size=25:subreddit=golang",
		},
		{
			name: "empty endpoint",
			key:  Key{},
			want: "pushshift",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKey_String_Deterministic(t *testing.T) {
	key := Key{
		Endpoint: "/reddit/submission/search/",
		QueryParams: url.Values{
			"author": []string{"gopher"},
			"sort":   []string{"desc"},
			"size":   []string{"25"},
		},
	}

	first := key.String()
	for i := 0; i < 10; i++ {
		if got := key.String(); got != first {
			t.Fatalf("String() not deterministic: %q vs %q", got, first)
		}
	}
}
