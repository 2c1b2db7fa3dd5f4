// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements a process-local token-bucket limiter with one bucket
// per identity (account when authenticated, client IP otherwise). Buckets
// idle for longer than IdleTTL are swept periodically.
package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ErrRateLimited is passed to the reject hook when a bucket is empty.
var ErrRateLimited = errors.New("rate limit exceeded")

// KeyFunc maps a request to a bucket identity.
type KeyFunc func(*gin.Context) string

// KeyByAccountOrIP keys authenticated requests by account id and everything
// else by client IP. The prefixes keep the two namespaces apart.
func KeyByAccountOrIP() KeyFunc {
	return func(c *gin.Context) string {
		if id := accountLabel(c); id != "" {
			return "account:" + id
		}
		return "ip:" + c.ClientIP()
	}
}

// RateLimitOptions configures NewRateLimiter.
type RateLimitOptions struct {
	RPS     float64       // tokens per second
	Burst   int           // bucket size; <= 0 means 1
	Key     KeyFunc       // nil means KeyByAccountOrIP
	IdleTTL time.Duration // bucket eviction age; <= 0 means 10m

	// Reject writes the 429 body; Retry-After is already set. nil writes a
	// bare JSON 429.
	Reject func(c *gin.Context, err error)
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces per-identity request rates. It is safe for concurrent
// use.
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	key     KeyFunc
	idleTTL time.Duration
	reject  func(*gin.Context, error)

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter builds a limiter from opts.
func NewRateLimiter(opts RateLimitOptions) *RateLimiter {
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	if opts.Key == nil {
		opts.Key = KeyByAccountOrIP()
	}
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = 10 * time.Minute
	}
	if opts.Reject == nil {
		opts.Reject = func(c *gin.Context, err error) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"request_id": GetRequestID(c),
				"code":       "too_many_requests",
				"message":    err.Error(),
			})
		}
	}
	return &RateLimiter{
		limit:   rate.Limit(opts.RPS),
		burst:   opts.Burst,
		key:     opts.Key,
		idleTTL: opts.IdleTTL,
		reject:  opts.Reject,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// limiterFor returns the bucket for key, creating it on first use. Idle
// buckets are swept at most once per IdleTTL, before the lookup so a stale
// bucket for key is replaced rather than refreshed.
func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) >= rl.idleTTL {
		for k, b := range rl.buckets {
			if now.Sub(b.lastSeen) >= rl.idleTTL {
				delete(rl.buckets, k)
			}
		}
		rl.lastSweep = now
	}

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(rl.limit, rl.burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	return b.lim
}

// size reports the number of live buckets.
func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}

// Handler returns the Gin middleware. A rejected request gets Retry-After
// and is handed to the reject hook with ErrRateLimited.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		lim := rl.limiterFor(rl.key(c))
		r := lim.ReserveN(rl.now(), 1)
		if r.OK() && r.DelayFrom(rl.now()) == 0 {
			c.Next()
			return
		}
		retry := time.Second
		if r.OK() {
			retry = r.DelayFrom(rl.now())
			r.CancelAt(rl.now())
		}
		secs := int(retry / time.Second)
		if retry%time.Second != 0 {
			secs++
		}

		c.Header("Retry-After", strconv.Itoa(secs))
		rl.reject(c, ErrRateLimited)
	}
}
