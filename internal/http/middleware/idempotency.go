// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file validates the Idempotency-Key header on create routes and marks
// requests that replay an already completed create. Records are scoped by
// (account, route) so the same key on two routes, or from two accounts, never
// collides. The record found is stashed in the context; serving the replay is
// left to the handler.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// HeaderIdempotencyKey is the request header carrying the client's key.
const HeaderIdempotencyKey = "Idempotency-Key"

const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay"
)

// ErrInvalidIdempotencyKey is passed to the reject hook for malformed keys.
var ErrInvalidIdempotencyKey = errors.New("invalid Idempotency-Key")

var defaultKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// GetIdempotencyKey returns the validated key, if any.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	s := c.GetString(ctxKeyIdemKey)
	return s, s != ""
}

// IsReplay reports whether the lookup found a completed request for the key.
func IsReplay(c *gin.Context) bool {
	_, ok := ReplayRecord(c)
	return ok
}

// ReplayRecord returns the record of the completed request this one repeats.
func ReplayRecord(c *gin.Context) (*domain.Idempotency, bool) {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return nil, false
	}
	rec, ok := v.(*domain.Idempotency)
	return rec, ok && rec != nil
}

// IdempotencyScope names the route a key is bound to, e.g.
// "POST /api/v1/questions".
func IdempotencyScope(c *gin.Context) string {
	return c.Request.Method + " " + routeOf(c)
}

// IdempotencyLookup returns the live record for the key, or nil.
type IdempotencyLookup func(ctx context.Context, account domain.AccountID, scope, key string) (*domain.Idempotency, error)

// IdempotencyOptions configures IdempotencyValidator.
type IdempotencyOptions struct {
	MaxLen  int                             // <= 0 means 200
	Pattern *regexp.Regexp                  // nil means a token-safe charset
	Reject  func(c *gin.Context, err error) // nil writes a bare 400
}

// IdempotencyValidator must run after authentication. With no header it is a
// no-op. A malformed key is rejected through opts.Reject. A lookup error is
// logged and the request proceeds as a first attempt.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = defaultKeyPattern
	}
	reject := opts.Reject
	if reject == nil {
		reject = func(c *gin.Context, err error) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": GetRequestID(c),
				"code":       "bad_request",
				"message":    err.Error(),
			})
		}
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			reject(c, ErrInvalidIdempotencyKey)
			return
		}
		c.Set(ctxKeyIdemKey, key)

		sess, authed := SessionFrom(c)
		if lookup != nil && authed {
			rec, err := lookup(c.Request.Context(), sess.AccountID, IdempotencyScope(c), key)
			if err != nil {
				LoggerFrom(c).Warn().Err(err).Msg("idempotency lookup failed")
			}
			if err == nil && rec != nil {
				c.Set(ctxKeyIdemReplay, rec)
			}
		}
		c.Next()
	}
}
