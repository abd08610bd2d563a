package pagination

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for stream operations.
var (
	streamPagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pushshift_stream_pages_total",
		Help: "Total pages fetched by paginated streams, by outcome",
	}, []string{"outcome"}) // "ok", "error"

	streamItemsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pushshift_stream_items_total",
		Help: "Total items yielded by paginated streams",
	})

	streamExhaustedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pushshift_stream_exhausted_total",
		Help: "Total streams that reached clean exhaustion, by reason",
	}, []string{"reason"}) // "empty_page", "stagnant_cursor"
)

// ErrStreamEnd signals clean exhaustion of a stream. It is the normal
// end-of-data condition, distinct from fetch errors.
var ErrStreamEnd = errors.New("pagination: end of results")

// Cursored is implemented by items that carry an opaque pagination token.
// The token of a page's last item addresses the page that follows it.
type Cursored interface {
	PageToken() string
}

// Source fetches a single page of items. An empty cursor requests the
// first page. Implementations own transport and decoding; the stream never
// inspects the cursor beyond comparing it for equality.
type Source[T Cursored] interface {
	FetchPage(ctx context.Context, cursor string) ([]T, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc[T Cursored] func(ctx context.Context, cursor string) ([]T, error)

// FetchPage implements Source.
func (f SourceFunc[T]) FetchPage(ctx context.Context, cursor string) ([]T, error) {
	return f(ctx, cursor)
}

// Config holds stream configuration.
type Config struct {
	// PageInterval is the minimum spacing between consecutive page fetches
	// of the same stream. Zero disables spacing. Independent streams are
	// not coordinated here; cross-stream pacing belongs to the transport.
	PageInterval time.Duration

	// Logger used for per-page debug logging. Defaults to the global
	// logger with a component field.
	Logger *zerolog.Logger
}

// Stream is a lazy sequence of items backed by a cursor-paginated source.
//
// A stream fetches one page at a time, on demand, and yields its items in
// fetch order. It ends cleanly when the source returns an empty page or
// when the cursor stops advancing between two consecutive non-empty pages
// (a guard against sources that repeat the same page forever). A failed
// fetch or decode ends the stream with that error; the stream never skips
// a page or retries past one.
//
// Streams are not safe for concurrent use. Each stream owns its state
// exclusively; create one stream per consumer.
type Stream[T Cursored] struct {
	source   Source[T]
	interval time.Duration
	logger   zerolog.Logger

	buffer    []T
	bufferIdx int
	cursor    string
	started   bool
	exhausted bool
	err       error
	lastFetch time.Time
	pages     int
}

// NewStream creates a stream over the given source. The stream issues no
// requests until the first call to Next.
func NewStream[T Cursored](source Source[T], cfg Config) *Stream[T] {
	logger := log.With().Str("component", "pagination").Logger()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Stream[T]{
		source:   source,
		interval: cfg.PageInterval,
		logger:   logger,
	}
}

// Next returns the next item. It fetches a new page when the buffered one
// is consumed, suspending for the configured page interval first. Next
// returns ErrStreamEnd on clean exhaustion; any other error is terminal
// and is returned again on every subsequent call.
func (s *Stream[T]) Next(ctx context.Context) (T, error) {
	var zero T

	if s.err != nil {
		return zero, s.err
	}

	for s.bufferIdx >= len(s.buffer) {
		if s.exhausted {
			return zero, ErrStreamEnd
		}
		if err := s.fetch(ctx); err != nil {
			s.err = err
			return zero, err
		}
	}

	item := s.buffer[s.bufferIdx]
	s.bufferIdx++
	streamItemsTotal.Inc()
	return item, nil
}

// fetch retrieves the next page and refills the buffer. An empty page, or
// a page whose derived cursor equals the current one, marks the stream
// exhausted without buffering anything.
func (s *Stream[T]) fetch(ctx context.Context) error {
	if err := s.pace(ctx); err != nil {
		return err
	}

	items, err := s.source.FetchPage(ctx, s.cursor)
	s.lastFetch = time.Now()
	if err != nil {
		streamPagesTotal.WithLabelValues("error").Inc()
		s.logger.Debug().
			Err(err).
			Int("pages", s.pages).
			Msg("Page fetch failed, ending stream")
		return err
	}

	s.pages++
	streamPagesTotal.WithLabelValues("ok").Inc()

	if len(items) == 0 {
		s.exhausted = true
		streamExhaustedTotal.WithLabelValues("empty_page").Inc()
		s.logger.Debug().
			Int("pages", s.pages).
			Msg("Empty page, stream exhausted")
		return nil
	}

	next := items[len(items)-1].PageToken()
	if s.started && next == s.cursor {
		// The source repeated itself. Treat as exhaustion instead of
		// looping on the same page; its items were already yielded.
		s.exhausted = true
		streamExhaustedTotal.WithLabelValues("stagnant_cursor").Inc()
		s.logger.Debug().
			Str("cursor", next).
			Int("pages", s.pages).
			Msg("Cursor did not advance, stream exhausted")
		return nil
	}

	s.logger.Debug().
		Str("cursor", next).
		Int("items", len(items)).
		Int("pages", s.pages).
		Msg("Page fetched")

	s.cursor = next
	s.started = true
	s.buffer = items
	s.bufferIdx = 0
	return nil
}

// pace enforces the minimum spacing between page fetches of this stream.
func (s *Stream[T]) pace(ctx context.Context) error {
	if s.interval <= 0 || s.lastFetch.IsZero() {
		return nil
	}

	wait := s.interval - time.Since(s.lastFetch)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Collect pulls up to max items from the stream. A max of zero or less
// collects until exhaustion. Clean exhaustion is not an error; any other
// stream error is returned together with the items pulled before it.
func (s *Stream[T]) Collect(ctx context.Context, max int) ([]T, error) {
	var items []T

	for max <= 0 || len(items) < max {
		item, err := s.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrStreamEnd) {
				return items, nil
			}
			return items, err
		}
		items = append(items, item)
	}

	return items, nil
}

// Err returns the terminal error of the stream, if any. Clean exhaustion
// leaves Err nil.
func (s *Stream[T]) Err() error {
	if errors.Is(s.err, ErrStreamEnd) {
		return nil
	}
	return s.err
}

// Pages returns the number of pages fetched so far.
func (s *Stream[T]) Pages() int {
	return s.pages
}
