// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides request correlation, the structured access log, and
// panic recovery:
//
//   - RequestID() reuses an inbound X-Request-ID or mints a UUID, echoes it on
//     the response, and stores it in the Gin context.
//   - Logger() attaches a request-scoped zerolog.Logger (see LoggerFrom) and
//     writes one access line per request, leveled by outcome. RedactingLogger
//     is the same line with PII scrubbed.
//   - Recovery() turns a panic into a JSON 500 and logs the stack.
//
// Install in that order so every log line and error body carries the id.
package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	requestIDKey    = "requestID"
	requestIDHeader = "X-Request-ID"
	ctxKeyLogger    = "logger"

	// maxQueryLogLength caps the logged raw query, in bytes.
	maxQueryLogLength = 2048
)

// RequestID attaches (or propagates) a correlation identifier per request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

// GetRequestID returns the correlation id stored by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// routeOf returns the matched route template, or the raw path on a miss.
func routeOf(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}

// Logger writes a structured access log line for each request.
//
// Level selection: error for 5xx or when handlers pushed errors into
// c.Errors, warn for 4xx, info otherwise. The account id is included once an
// Authenticate middleware has run.
func Logger() gin.HandlerFunc {
	return accessLog(nil)
}

// accessLog builds the access-log middleware. A non-nil scrub rewrites the
// query string and adds scrubbed request headers to the line.
func accessLog(scrub *scrubber) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		query := truncate(c.Request.URL.RawQuery, maxQueryLogLength)
		if scrub != nil {
			query = scrub.text(query)
		}
		l := log.With().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", routeOf(c)).
			Str("remote_ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Str("query", query).
			Int64("bytes_in", c.Request.ContentLength).
			Logger()
		c.Set(ctxKeyLogger, &l)

		var headers map[string]string
		if scrub != nil {
			headers = scrub.headers(c.Request.Header)
		}

		c.Next()

		status := c.Writer.Status()
		var ev *zerolog.Event
		switch {
		case len(c.Errors) > 0 || status >= http.StatusInternalServerError:
			ev = l.Error()
			if len(c.Errors) > 0 {
				ev = ev.Str("errors", c.Errors.String())
			}
		case status >= http.StatusBadRequest:
			ev = l.Warn()
		default:
			ev = l.Info()
		}
		if headers != nil {
			ev = ev.Interface("headers", headers)
		}
		ev.Str("account_id", accountLabel(c)).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Int("bytes_out", c.Writer.Size()).
			Msg("request")
	}
}

// Recovery converts a panic into a JSON 500 carrying the request id and logs
// the panic value with its stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			rid := GetRequestID(c)
			LoggerFrom(c).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if c.Writer.Written() {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			c.Header(requestIDHeader, rid)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"request_id": rid,
				"code":       "internal_error",
				"message":    "internal server error",
			})
		}()
		c.Next()
	}
}

// LoggerFrom returns the request-scoped logger, or a copy of the global
// logger when none is attached. The result is never nil.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(ctxKeyLogger); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	l := log.With().Logger()
	return &l
}

// truncate caps s at max bytes, appending an ellipsis when cut. A max <= 0
// disables truncation.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
