// Package client provides the core PushShift HTTP client with request
// pacing, caching, retries, and the paginated stream constructors.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pullcaps/pushshift-client/pkg/cache"
	"github.com/pullcaps/pushshift-client/pkg/filter"
	"github.com/pullcaps/pushshift-client/pkg/models"
	"github.com/pullcaps/pushshift-client/pkg/pagination"
	"github.com/pullcaps/pushshift-client/pkg/ratelimit"
)

// Prometheus metrics for PushShift client operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pushshift_requests_total",
		Help: "Total PushShift requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pushshift_request_duration_seconds",
		Help:    "PushShift request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pushshift_errors_total",
		Help: "Total PushShift errors by class",
	}, []string{"class"})
)

// DefaultBaseURL is the public PushShift API.
const DefaultBaseURL = "https://api.pushshift.io"

// PushShift endpoints.
const (
	postsEndpoint    = "/reddit/submission/search/"
	commentsEndpoint = "/reddit/comment/search/"
	metaEndpoint     = "/meta"
)

// DefaultPageSize is the page size applied when a filter leaves it unset.
const DefaultPageSize = 25

// Config holds the client configuration.
type Config struct {
	// BaseURL of the API. Defaults to DefaultBaseURL.
	BaseURL string

	// UserAgent header sent with every request (REQUIRED).
	// Format: "AppName/Version (contact@example.com)"
	UserAgent string

	// HTTPClient performing the requests. Defaults to a client with a
	// 30 second timeout. Connection pooling is shared by every stream.
	HTTPClient *http.Client

	// Redis enables response caching when set. PushShift data is
	// archival, so cached pages stay valid for CacheTTL.
	Redis *redis.Client

	// CacheTTL bounds how long responses are cached. Default: 15 minutes.
	CacheTTL time.Duration

	// RequestsPerMinute is the pacing quota assumed until /meta discovery
	// replaces it. Default: 120.
	RequestsPerMinute float64

	// Burst allows short spikes above the steady-state rate. Default: 1.
	Burst int

	// DiscoverQuota queries /meta once, lazily, for the server's
	// advertised per-minute quota.
	DiscoverQuota bool

	// PageSize applied to filters that leave Size unset. Default: 25.
	PageSize int

	// PageInterval is the minimum spacing between page fetches within one
	// stream. Zero derives it from the pacing quota.
	PageInterval time.Duration

	// Retry
	MaxRetries     int
	InitialBackoff time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(userAgent string) Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		UserAgent:         userAgent,
		CacheTTL:          15 * time.Minute,
		RequestsPerMinute: ratelimit.DefaultRequestsPerMinute,
		Burst:             1,
		DiscoverQuota:     true,
		PageSize:          DefaultPageSize,
		MaxRetries:        3,
		InitialBackoff:    1 * time.Second,
	}
}

// Client is the main PushShift client. It is safe for concurrent use; the
// streams it creates are not, and each owns its own pagination state.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	pacer      *ratelimit.Pacer
	cache      *cache.Manager
	config     Config
	logger     zerolog.Logger

	discoverOnce sync.Once
}

// New creates a new PushShift client.
func New(cfg Config) (*Client, error) {
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	if cfg.PageSize == 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.PageSize < 0 || cfg.PageSize > filter.MaxSize {
		return nil, fmt.Errorf("page_size must be between 1 and %d (got %d)", filter.MaxSize, cfg.PageSize)
	}

	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 15 * time.Minute
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
		}
	}

	logger := log.With().Str("component", "pushshift-client").Logger()

	var cacheManager *cache.Manager
	if cfg.Redis != nil {
		cacheManager = cache.NewManager(cfg.Redis)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		pacer:      ratelimit.NewPacer(cfg.RequestsPerMinute, cfg.Burst, logger),
		cache:      cacheManager,
		config:     cfg,
		logger:     logger,
	}, nil
}

// Posts returns a lazy stream of archived submissions matching the filter.
// Invalid or conflicting filter options are reported here, before any
// request is issued. Each call yields an independent stream.
func (c *Client) Posts(f filter.Filter) (*pagination.Stream[*models.Post], error) {
	source, err := newPageSource[*models.Post](c, postsEndpoint, f)
	if err != nil {
		return nil, err
	}
	return pagination.NewStream[*models.Post](source, c.streamConfig()), nil
}

// Comments returns a lazy stream of archived comments matching the filter.
// Semantics match Posts.
func (c *Client) Comments(f filter.Filter) (*pagination.Stream[*models.Comment], error) {
	source, err := newPageSource[*models.Comment](c, commentsEndpoint, f)
	if err != nil {
		return nil, err
	}
	return pagination.NewStream[*models.Comment](source, c.streamConfig()), nil
}

// streamConfig derives per-stream settings from the client configuration.
func (c *Client) streamConfig() pagination.Config {
	interval := c.config.PageInterval
	if interval <= 0 {
		interval = c.pacer.Interval()
	}
	return pagination.Config{PageInterval: interval}
}

// pageSource adapts one listing endpoint plus a frozen filter to the
// pagination.Source interface.
type pageSource[T pagination.Cursored] struct {
	client      *Client
	endpoint    string
	params      url.Values
	cursorParam string
}

// newPageSource validates the filter and snapshots its encoding. The
// cursor rides the "before" parameter for descending order and "after"
// for ascending, mirroring how PushShift pages by timestamp.
func newPageSource[T pagination.Cursored](c *Client, endpoint string, f filter.Filter) (*pageSource[T], error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	if f.Size == 0 {
		f = f.WithSize(c.config.PageSize)
	}

	params, err := f.Values()
	if err != nil {
		return nil, err
	}

	cursorParam := "before"
	if f.Direction() == filter.SortAscending {
		cursorParam = "after"
	}

	return &pageSource[T]{
		client:      c,
		endpoint:    endpoint,
		params:      params,
		cursorParam: cursorParam,
	}, nil
}

// FetchPage implements pagination.Source.
func (s *pageSource[T]) FetchPage(ctx context.Context, cursor string) ([]T, error) {
	params := cloneValues(s.params)
	if cursor != "" {
		params.Set(s.cursorParam, cursor)
	}

	body, err := s.client.getJSON(ctx, s.endpoint, params)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		errorsTotal.WithLabelValues("decode").Inc()
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return envelope.Data, nil
}

// getJSON performs a paced, cached, retried GET and returns the body.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	c.maybeDiscoverQuota(ctx)

	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	// Step 1: Check cache.
	key := cache.Key{Endpoint: endpoint, QueryParams: params}
	if c.cache != nil {
		entry, err := c.cache.Get(ctx, key)
		if err == nil {
			c.logger.Debug().
				Str("endpoint", endpoint).
				Msg("Cache hit")
			requestsTotal.WithLabelValues(endpoint, "cached").Inc()
			return entry.Data, nil
		}
		if err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Cache get error")
		}
	}

	// Step 2: Execute with pacing and retry.
	requestURL := c.baseURL.ResolveReference(&url.URL{
		Path:     endpoint,
		RawQuery: params.Encode(),
	})

	var body []byte
	retryErr := retryWithBackoff(ctx, c.logger, c.retryConfig(), func() error {
		if err := c.pacer.Wait(ctx); err != nil {
			return fmt.Errorf("pacer wait: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL.String(), nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", c.config.UserAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
			c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
			return err
		}
		defer resp.Body.Close()

		requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

		if resp.StatusCode >= 400 {
			class := classifyStatus(resp.StatusCode)
			errorsTotal.WithLabelValues(string(class)).Inc()
			c.logger.Warn().
				Str("endpoint", endpoint).
				Int("status", resp.StatusCode).
				Str("error_class", string(class)).
				Msg("PushShift request error")
			return &APIError{
				StatusCode: resp.StatusCode,
				Class:      class,
				Endpoint:   endpoint,
				Message:    resp.Status,
			}
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			return fmt.Errorf("read response body: %w", err)
		}
		return nil
	})
	if retryErr != nil {
		return nil, retryErr
	}

	// Step 3: Update cache.
	if c.cache != nil {
		entry := cache.NewEntry(body, http.StatusOK, c.config.CacheTTL)
		if err := c.cache.Set(ctx, key, entry); err != nil {
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Failed to cache response")
		}
	}

	return body, nil
}

// retryConfig applies client overrides to the retry defaults.
func (c *Client) retryConfig() RetryConfig {
	cfg := DefaultRetryConfig()
	if c.config.MaxRetries > 0 {
		cfg.MaxAttempts = c.config.MaxRetries
	}
	if c.config.InitialBackoff > 0 {
		cfg.InitialBackoff = c.config.InitialBackoff
	}
	return cfg
}

// maybeDiscoverQuota asks /meta once for the advertised per-minute quota
// and hands it to the pacer. Failures keep the configured fallback.
func (c *Client) maybeDiscoverQuota(ctx context.Context) {
	if !c.config.DiscoverQuota {
		return
	}

	c.discoverOnce.Do(func() {
		metaURL := c.baseURL.ResolveReference(&url.URL{Path: metaEndpoint})

		metaCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		req, err := http.NewRequestWithContext(metaCtx, http.MethodGet, metaURL.String(), nil)
		if err != nil {
			return
		}
		req.Header.Set("User-Agent", c.config.UserAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Debug().Err(err).Msg("Quota discovery failed, keeping fallback")
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			c.logger.Debug().Int("status", resp.StatusCode).Msg("Quota discovery failed, keeping fallback")
			return
		}

		var meta struct {
			ServerRateLimitPerMinute float64 `json:"server_ratelimit_per_minute"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
			c.logger.Debug().Err(err).Msg("Quota discovery returned malformed body")
			return
		}

		if meta.ServerRateLimitPerMinute > 0 {
			c.pacer.SetQuota(meta.ServerRateLimitPerMinute)
		}
	})
}

// Close releases client resources. The HTTP client's idle connections are
// closed; an injected Redis client stays open for its owner.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func cloneValues(values url.Values) url.Values {
	cloned := make(url.Values, len(values))
	for key, vals := range values {
		cloned[key] = append([]string(nil), vals...)
	}
	return cloned
}
