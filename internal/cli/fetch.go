package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/pullcaps/pushshift-client/pkg/client"
	"github.com/pullcaps/pushshift-client/pkg/filter"
	"github.com/pullcaps/pushshift-client/pkg/pagination"
)

// fetchFlags holds the filter options shared by the posts and comments
// commands. Each command registers its own copy.
type fetchFlags struct {
	subreddit string
	author    string
	query     string
	before    string
	after     string
	sort      string
	sortType  string
	size      int
	limit     int
}

func (f *fetchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.subreddit, "subreddit", "r", "", "restrict results to a subreddit")
	cmd.Flags().StringVarP(&f.author, "author", "a", "", "restrict results to an author")
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "full-text search term")
	cmd.Flags().StringVar(&f.before, "before", "", "only items created before this time (RFC 3339 or Unix seconds)")
	cmd.Flags().StringVar(&f.after, "after", "", "only items created after this time (RFC 3339 or Unix seconds)")
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort order: asc or desc (default desc)")
	cmd.Flags().StringVar(&f.sortType, "sort-type", "", "sort field: created_utc, score, or num_comments")
	cmd.Flags().IntVar(&f.size, "size", 0, fmt.Sprintf("items per page, up to %d", filter.MaxSize))
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 0, "stop after this many items (0 fetches everything)")
}

// buildFilter converts the parsed flags to a filter. Validation happens in
// the client, so only flag-level parse errors are reported here.
func (f *fetchFlags) buildFilter() (filter.Filter, error) {
	flt := filter.New()

	if f.subreddit != "" {
		flt = flt.WithSubreddit(f.subreddit)
	}
	if f.author != "" {
		flt = flt.WithAuthor(f.author)
	}
	if f.query != "" {
		flt = flt.WithQuery(f.query)
	}
	if f.before != "" {
		t, err := parseTime(f.before)
		if err != nil {
			return flt, fmt.Errorf("parse --before: %w", err)
		}
		flt = flt.WithBefore(t)
	}
	if f.after != "" {
		t, err := parseTime(f.after)
		if err != nil {
			return flt, fmt.Errorf("parse --after: %w", err)
		}
		flt = flt.WithAfter(t)
	}
	if f.sort != "" {
		flt = flt.WithSort(filter.Sort(f.sort))
	}
	if f.sortType != "" {
		flt = flt.WithSortType(filter.SortType(f.sortType))
	}
	if f.size != 0 {
		flt = flt.WithSize(f.size)
	}

	return flt, nil
}

// parseTime accepts RFC 3339 timestamps and bare Unix seconds.
func parseTime(value string) (time.Time, error) {
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither RFC 3339 nor Unix seconds", value)
	}
	return t, nil
}

// newClient builds a PushShift client from the persistent flags.
func newClient() (*client.Client, error) {
	if flagUserAgent == "" {
		return nil, errors.New("a user agent is required; pass --user-agent or set PULLCAPS_USER_AGENT")
	}

	cfg := client.DefaultConfig(flagUserAgent)
	if flagRedis != "" {
		cfg.Redis = redis.NewClient(&redis.Options{Addr: flagRedis})
	}

	return client.New(cfg)
}

// writeNDJSON drains a stream to out as newline-delimited JSON, stopping
// after limit items when limit is positive.
func writeNDJSON[T pagination.Cursored](ctx context.Context, out io.Writer, stream *pagination.Stream[T], limit int) (int, error) {
	enc := json.NewEncoder(out)

	written := 0
	for limit <= 0 || written < limit {
		item, err := stream.Next(ctx)
		if errors.Is(err, pagination.ErrStreamEnd) {
			break
		}
		if err != nil {
			return written, err
		}
		if err := enc.Encode(item); err != nil {
			return written, fmt.Errorf("encode item: %w", err)
		}
		written++
	}

	return written, nil
}
