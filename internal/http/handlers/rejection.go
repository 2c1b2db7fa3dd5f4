package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/tbourn/go-qa-backend/internal/apperr"
	"github.com/tbourn/go-qa-backend/internal/http/middleware"
)

// BindError wraps a failure to decode a request body.
type BindError struct{ Err error }

func (e *BindError) Error() string { return "bind: " + e.Err.Error() }
func (e *BindError) Unwrap() error { return e.Err }

// Transport-level rejections that have no taxonomy kind.
var (
	ErrOriginForbidden  = errors.New("origin not allowed")
	ErrRouteNotFound    = errors.New("route not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// Rejection is the HTTP rendering of a failure.
type Rejection struct {
	Status   int
	Code     string
	Message  string
	Kind     string // metric and log label
	Severity zerolog.Level
}

var rejections = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "api_rejections_total",
	Help: "Requests rejected with an error response, by failure kind and status.",
}, []string{"kind", "status"})

// Classify maps err to its response. It has no side effects. Persistence and
// external failures get generic messages; their causes are for logs only.
func Classify(err error) Rejection {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		r := Rejection{Kind: ae.Kind.String(), Severity: zerolog.ErrorLevel}
		switch ae.Kind {
		case apperr.KindParse:
			r.Status, r.Code, r.Severity = http.StatusBadRequest, ErrCodeBadRequest, zerolog.WarnLevel
			r.Message = fmt.Sprintf("cannot parse parameter %q", ae.Raw)
		case apperr.KindMissingParameters:
			r.Status, r.Code, r.Severity = http.StatusBadRequest, ErrCodeMissingParameters, zerolog.WarnLevel
			r.Message = "missing parameter"
		case apperr.KindUnauthorized:
			r.Status, r.Code = http.StatusUnauthorized, ErrCodeUnauthorized
			r.Message = "no permission to change the underlying resource"
		case apperr.KindWrongCredential:
			r.Status, r.Code = http.StatusUnauthorized, ErrCodeWrongCredential
			r.Message = "wrong email/password combination"
		case apperr.KindCredentialDecode:
			r.Status, r.Code = http.StatusUnauthorized, ErrCodeInvalidCredential
			r.Message = "invalid or expired credentials"
		case apperr.KindUniqueViolation:
			r.Status, r.Code = http.StatusUnprocessableEntity, ErrCodeAccountExists
			r.Message = "account already exists"
		case apperr.KindPersistence:
			r.Status, r.Code = http.StatusUnprocessableEntity, ErrCodePersistence
			r.Message = "cannot update, invalid data"
		case apperr.KindExternalService, apperr.KindExternalUnavailable:
			r.Status, r.Code = http.StatusInternalServerError, ErrCodeExternalService
			r.Message = "internal server error"
		default:
			return internalRejection()
		}
		return r
	}

	var be *BindError
	switch {
	case errors.As(err, &be):
		return Rejection{http.StatusUnprocessableEntity, ErrCodeUnprocessable, "request body is malformed", "bind", zerolog.ErrorLevel}
	case errors.Is(err, middleware.ErrInvalidIdempotencyKey):
		return Rejection{http.StatusBadRequest, ErrCodeBadRequest, "invalid Idempotency-Key header", "idempotency_key", zerolog.WarnLevel}
	case errors.Is(err, ErrOriginForbidden):
		return Rejection{http.StatusForbidden, ErrCodeForbidden, "origin not allowed", "origin", zerolog.ErrorLevel}
	case errors.Is(err, ErrRouteNotFound):
		return Rejection{http.StatusNotFound, ErrCodeNotFound, "resource not found", "route", zerolog.WarnLevel}
	case errors.Is(err, ErrMethodNotAllowed):
		return Rejection{http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed", "method", zerolog.WarnLevel}
	case errors.Is(err, middleware.ErrRateLimited):
		return Rejection{http.StatusTooManyRequests, ErrCodeTooManyRequests, "rate limit exceeded", "rate_limit", zerolog.WarnLevel}
	}
	return internalRejection()
}

func internalRejection() Rejection {
	return Rejection{http.StatusInternalServerError, ErrCodeInternal, "internal server error", "internal", zerolog.ErrorLevel}
}

// Reject is the single writer of error responses. It logs err with the
// request-scoped logger at the classified severity, counts it, and aborts
// with the ErrorResponse envelope.
func Reject(c *gin.Context, err error) {
	r := Classify(err)
	middleware.LoggerFrom(c).WithLevel(r.Severity).
		Err(err).
		Str("kind", r.Kind).
		Int("status", r.Status).
		Msg("request rejected")
	rejections.WithLabelValues(r.Kind, fmt.Sprint(r.Status)).Inc()
	fail(c, r.Status, r.Code, r.Message)
}
