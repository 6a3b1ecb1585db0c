package ratelimit

// Limiter decides whether a request with the given key may proceed.
type Limiter interface {
	Allow(key string) bool
}
