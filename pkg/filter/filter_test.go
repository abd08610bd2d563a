package filter

import (
	"errors"
	"testing"
	"time"
)

func TestBuilder_ReturnsCopies(t *testing.T) {
	base := New().WithSubreddit("golang")

	narrowed := base.WithAuthor("gopher").WithSize(50)

	if base.Author != "" {
		t.Errorf("base.Author = %q, want empty (builder must not mutate the receiver)", base.Author)
	}
	if base.Size != 0 {
		t.Errorf("base.Size = %d, want 0", base.Size)
	}
	if narrowed.Subreddit != "golang" || narrowed.Author != "gopher" || narrowed.Size != 50 {
		t.Errorf("narrowed = %+v, missing inherited or new options", narrowed)
	}
}

func TestValidate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		filter     Filter
		wantErr    bool
		wantOption string
	}{
		{
			name:   "zero filter",
			filter: New(),
		},
		{
			name:   "full valid filter",
			filter: New().WithSubreddit("askreddit").WithAuthor("reddit").WithQuery("go").WithBefore(now).WithAfter(now.Add(-time.Hour)).WithSort(SortAscending).WithSortType(SortByScore).WithSize(100),
		},
		{
			name:       "size too large",
			filter:     New().WithSize(MaxSize + 1),
			wantErr:    true,
			wantOption: "size",
		},
		{
			name:       "negative size",
			filter:     Filter{Size: -1},
			wantErr:    true,
			wantOption: "size",
		},
		{
			name:       "before not after after",
			filter:     New().WithBefore(now.Add(-time.Hour)).WithAfter(now),
			wantErr:    true,
			wantOption: "before",
		},
		{
			name:       "before equal to after",
			filter:     Filter{Before: 1000, After: 1000},
			wantErr:    true,
			wantOption: "before",
		},
		{
			name:       "negative before",
			filter:     Filter{Before: -5},
			wantErr:    true,
			wantOption: "before",
		},
		{
			name:       "unknown sort",
			filter:     Filter{Sort: "sideways"},
			wantErr:    true,
			wantOption: "sort",
		},
		{
			name:       "unknown sort type",
			filter:     Filter{SortType: "karma"},
			wantErr:    true,
			wantOption: "sort_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() error type = %T, want *ConfigError", err)
			}
			if cfgErr.Option != tt.wantOption {
				t.Errorf("ConfigError.Option = %q, want %q", cfgErr.Option, tt.wantOption)
			}
		})
	}
}

func TestValues(t *testing.T) {
	f := New().
		WithSubreddit("askreddit").
		WithBefore(time.Unix(1609459200, 0)).
		WithSort(SortDescending).
		WithSize(25)

	values, err := f.Values()
	if err != nil {
		t.Fatalf("Values() error: %v", err)
	}

	want := map[string]string{
		"subreddit": "askreddit",
		"before":    "1609459200",
		"sort":      "desc",
		"size":      "25",
	}
	for key, val := range want {
		if got := values.Get(key); got != val {
			t.Errorf("values[%q] = %q, want %q", key, got, val)
		}
	}

	// Unset options must be omitted, not sent as empty strings.
	for _, key := range []string{"author", "q", "after", "sort_type"} {
		if _, present := values[key]; present {
			t.Errorf("values contains %q, want omitted", key)
		}
	}
}

func TestDirection(t *testing.T) {
	if got := New().Direction(); got != SortDescending {
		t.Errorf("zero filter Direction() = %q, want %q", got, SortDescending)
	}
	if got := New().WithSort(SortAscending).Direction(); got != SortAscending {
		t.Errorf("Direction() = %q, want %q", got, SortAscending)
	}
}
