// Package metrics provides the centralized Prometheus metrics registry for the
// PushShift client. All metrics are defined in their respective packages
// (client, cache, ratelimit, pagination) to maintain modularity and avoid
// circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the PushShift client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - pushshift_requests_total{endpoint, status} (Counter): Total requests by endpoint and HTTP status
//   - pushshift_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - pushshift_errors_total{class} (Counter): Errors by class (client, server, rate_limit, network)
//
// Retry Metrics (pkg/client):
//   - pushshift_retries_total{error_class} (Counter): Retry attempts by error class
//   - pushshift_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - pushshift_retry_exhausted_total{error_class} (Counter): Requests that exhausted max retries
//
// Cache Metrics (pkg/cache):
//   - pushshift_cache_hits_total{layer="redis"} (Counter): Cache hits by layer
//   - pushshift_cache_misses_total (Counter): Cache misses
//   - pushshift_cache_size_bytes{layer="redis"} (Gauge): Current cache size in bytes
//   - pushshift_cache_errors_total{operation} (Counter): Cache operation errors
//
// Rate Limit Metrics (pkg/ratelimit):
//   - pushshift_ratelimit_quota_per_minute (Gauge): Current request quota in requests per minute
//   - pushshift_ratelimit_wait_seconds (Histogram): Time spent waiting on the pacer
//
// Stream Metrics (pkg/pagination):
//   - pushshift_stream_pages_total{outcome} (Counter): Pages fetched by outcome (ok, error)
//   - pushshift_stream_items_total (Counter): Items yielded across all streams
//   - pushshift_stream_exhausted_total{reason} (Counter): Stream exhaustions by reason (empty_page, stagnant_cursor)
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(pushshift_cache_hits_total[5m])) /
//   (sum(rate(pushshift_cache_hits_total[5m])) + sum(rate(pushshift_cache_misses_total[5m])))
//
//   # Request Error Rate
//   rate(pushshift_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(pushshift_request_duration_seconds_bucket[5m]))
//
//   # Average Items per Page
//   rate(pushshift_stream_items_total[5m]) / rate(pushshift_stream_pages_total{outcome="ok"}[5m])
//
//   # Pacer Pressure
//   histogram_quantile(0.95, rate(pushshift_ratelimit_wait_seconds_bucket[5m]))
