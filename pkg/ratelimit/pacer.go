// Package ratelimit paces outbound PushShift requests. The API publishes
// its per-minute quota via the /meta endpoint; the pacer spreads requests
// evenly under that quota, shared across every stream of one client.
package ratelimit

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Prometheus metrics for request pacing.
var (
	quotaPerMinute = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pushshift_ratelimit_quota_per_minute",
		Help: "Current request quota per minute applied by the pacer",
	})

	pacerWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pushshift_ratelimit_wait_seconds",
		Help:    "Time spent waiting for the pacer before a request",
		Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 5, 10},
	})
)

const (
	// DefaultRequestsPerMinute is the quota assumed until the server
	// advertises its own via /meta.
	DefaultRequestsPerMinute = 120

	secondsPerMinute = 60.0
)

// Pacer gates requests behind a token bucket so a client never exceeds the
// server's request quota, regardless of how many streams it feeds.
type Pacer struct {
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewPacer creates a pacer allowing perMinute requests with the given
// burst. Non-positive arguments fall back to DefaultRequestsPerMinute and
// a burst of one.
func NewPacer(perMinute float64, burst int, logger zerolog.Logger) *Pacer {
	if perMinute <= 0 {
		perMinute = DefaultRequestsPerMinute
	}
	if burst < 1 {
		burst = 1
	}

	quotaPerMinute.Set(perMinute)

	return &Pacer{
		limiter: rate.NewLimiter(rate.Limit(perMinute/secondsPerMinute), burst),
		logger:  logger,
	}
}

// Wait blocks until the pacer admits a request or the context ends.
func (p *Pacer) Wait(ctx context.Context) error {
	start := time.Now()
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}

	waited := time.Since(start)
	pacerWaitSeconds.Observe(waited.Seconds())
	if waited > time.Second {
		p.logger.Debug().
			Dur("waited", waited).
			Msg("Request delayed by pacer")
	}
	return nil
}

// SetQuota replaces the per-minute quota, typically after discovering the
// server's advertised limit. Safe for concurrent use.
func (p *Pacer) SetQuota(perMinute float64) {
	if perMinute <= 0 {
		return
	}

	p.limiter.SetLimit(rate.Limit(perMinute / secondsPerMinute))
	quotaPerMinute.Set(perMinute)
	p.logger.Info().
		Float64("requests_per_minute", perMinute).
		Msg("Request quota updated")
}

// Interval returns the steady-state spacing between admitted requests.
func (p *Pacer) Interval() time.Duration {
	limit := p.limiter.Limit()
	if limit <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(limit))
}
