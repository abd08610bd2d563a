// Package cache provides Redis-backed caching of PushShift responses.
//
// PushShift serves archival data: a page of results for a bounded query is
// effectively immutable, so responses are cached under a fixed TTL keyed on
// the endpoint and its query parameters. The API sends no cache validators
// (ETag, Last-Modified), so there is no conditional-request machinery here;
// entries simply expire.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	manager := cache.NewManager(redisClient)
//
//	key := cache.Key{
//		Endpoint:    "/reddit/submission/search/",
//		QueryParams: url.Values{"subreddit": []string{"golang"}},
//	}
//
//	entry, err := manager.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// fetch from PushShift, then manager.Set(ctx, key, entry)
//	}
//
// # Metrics
//
//   - pushshift_cache_hits_total{layer="redis"} - Cache hits
//   - pushshift_cache_misses_total - Cache misses
//   - pushshift_cache_size_bytes{layer="redis"} - Bytes written/read
//   - pushshift_cache_errors_total{operation} - Cache operation errors
package cache
