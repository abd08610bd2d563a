// Package filter provides the query filter builder for PushShift searches.
//
// A Filter is a value type: builder methods take value receivers and return
// modified copies, so a filter handed to a stream cannot be changed under
// it afterwards.
package filter

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/go-querystring/query"
)

// Sort is the ordering direction of results.
type Sort string

const (
	// SortDescending returns the newest (or highest ranked) results first.
	// This is the PushShift default.
	SortDescending Sort = "desc"

	// SortAscending returns the oldest (or lowest ranked) results first.
	SortAscending Sort = "asc"
)

// SortType is the field results are ordered by.
type SortType string

const (
	// SortByCreated orders by creation time (the default).
	SortByCreated SortType = "created_utc"

	// SortByScore orders by score.
	SortByScore SortType = "score"

	// SortByComments orders by number of comments.
	SortByComments SortType = "num_comments"
)

// MaxSize is the largest page size PushShift accepts.
const MaxSize = 500

// Filter narrows a PushShift query. The zero value matches everything with
// the API defaults.
type Filter struct {
	// Author restricts results to a single author.
	Author string `url:"author,omitempty"`

	// Subreddit restricts results to a named community.
	Subreddit string `url:"subreddit,omitempty"`

	// Query restricts results to those matching a search term.
	Query string `url:"q,omitempty"`

	// Before bounds result timestamps from above (Unix seconds, exclusive).
	Before int64 `url:"before,omitempty"`

	// After bounds result timestamps from below (Unix seconds, exclusive).
	After int64 `url:"after,omitempty"`

	// Sort is the ordering direction.
	Sort Sort `url:"sort,omitempty"`

	// SortType is the field to order by.
	SortType SortType `url:"sort_type,omitempty"`

	// Size is a page size hint. It bounds per-request cost only; streams
	// flatten pages into a single item sequence.
	Size int `url:"size,omitempty"`
}

// New returns an empty filter.
func New() Filter {
	return Filter{}
}

// WithAuthor restricts results to the given author.
func (f Filter) WithAuthor(author string) Filter {
	f.Author = author
	return f
}

// WithSubreddit restricts results to the given subreddit.
func (f Filter) WithSubreddit(subreddit string) Filter {
	f.Subreddit = subreddit
	return f
}

// WithQuery restricts results to those matching the search term.
func (f Filter) WithQuery(q string) Filter {
	f.Query = q
	return f
}

// WithBefore bounds result timestamps from above.
func (f Filter) WithBefore(t time.Time) Filter {
	f.Before = t.Unix()
	return f
}

// WithAfter bounds result timestamps from below.
func (f Filter) WithAfter(t time.Time) Filter {
	f.After = t.Unix()
	return f
}

// WithSort sets the ordering direction.
func (f Filter) WithSort(s Sort) Filter {
	f.Sort = s
	return f
}

// WithSortType sets the field to order by.
func (f Filter) WithSortType(st SortType) Filter {
	f.SortType = st
	return f
}

// WithSize sets the page size hint.
func (f Filter) WithSize(size int) Filter {
	f.Size = size
	return f
}

// ConfigError reports an invalid or conflicting filter option. It is
// returned before any request is issued.
type ConfigError struct {
	Option string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("filter option %q: %s", e.Option, e.Reason)
}

// Validate checks the filter for invalid or mutually exclusive options.
func (f Filter) Validate() error {
	if f.Size < 0 || f.Size > MaxSize {
		return &ConfigError{
			Option: "size",
			Reason: fmt.Sprintf("must be between 1 and %d (got %d)", MaxSize, f.Size),
		}
	}

	if f.Before < 0 {
		return &ConfigError{Option: "before", Reason: "must not be negative"}
	}
	if f.After < 0 {
		return &ConfigError{Option: "after", Reason: "must not be negative"}
	}
	if f.Before != 0 && f.After != 0 && f.Before <= f.After {
		return &ConfigError{
			Option: "before",
			Reason: fmt.Sprintf("must be later than after (before=%d, after=%d)", f.Before, f.After),
		}
	}

	switch f.Sort {
	case "", SortAscending, SortDescending:
	default:
		return &ConfigError{
			Option: "sort",
			Reason: fmt.Sprintf("unrecognized direction %q (want %q or %q)", f.Sort, SortAscending, SortDescending),
		}
	}

	switch f.SortType {
	case "", SortByCreated, SortByScore, SortByComments:
	default:
		return &ConfigError{
			Option: "sort_type",
			Reason: fmt.Sprintf("unrecognized sort field %q", f.SortType),
		}
	}

	return nil
}

// Values encodes the filter as URL query parameters. Zero-valued options
// are omitted so the API applies its own defaults.
func (f Filter) Values() (url.Values, error) {
	values, err := query.Values(f)
	if err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}
	return values, nil
}

// Direction returns the effective ordering direction, resolving the
// default when unset.
func (f Filter) Direction() Sort {
	if f.Sort == "" {
		return SortDescending
	}
	return f.Sort
}
