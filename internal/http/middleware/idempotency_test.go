package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

type lookupCall struct {
	account    domain.AccountID
	scope, key string
}

func idemRouter(t *testing.T, opts IdempotencyOptions, lookup IdempotencyLookup, authed bool) (*gin.Engine, *struct {
	key    string
	replay bool
	rec    *domain.Idempotency
}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	seen := &struct {
		key    string
		replay bool
		rec    *domain.Idempotency
	}{}
	r := gin.New()
	r.Use(RequestID())
	auth := func(c *gin.Context) {
		if authed {
			SetSession(c, domain.Session{AccountID: 9})
		}
	}
	r.POST("/questions", auth, IdempotencyValidator(opts, lookup), func(c *gin.Context) {
		seen.key, _ = GetIdempotencyKey(c)
		seen.replay = IsReplay(c)
		seen.rec, _ = ReplayRecord(c)
		c.Status(http.StatusCreated)
	})
	return r, seen
}

func postWithKey(r http.Handler, key string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/questions", nil)
	if key != "" {
		req.Header.Set(HeaderIdempotencyKey, key)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotencyValidator_NoHeaderPassesThrough(t *testing.T) {
	called := false
	r, seen := idemRouter(t, IdempotencyOptions{}, func(context.Context, domain.AccountID, string, string) (*domain.Idempotency, error) {
		called = true
		return nil, nil
	}, true)

	w := postWithKey(r, "")
	if w.Code != http.StatusCreated || called || seen.key != "" || seen.replay {
		t.Fatalf("unexpected: code=%d called=%v seen=%+v", w.Code, called, *seen)
	}
}

func TestIdempotencyValidator_RejectsMalformedKeys(t *testing.T) {
	var rejected error
	opts := IdempotencyOptions{MaxLen: 8, Reject: func(c *gin.Context, err error) {
		rejected = err
		c.AbortWithStatus(http.StatusTeapot)
	}}
	r, _ := idemRouter(t, opts, nil, true)

	for _, key := range []string{"has space", strings.Repeat("a", 9), "bad/slash"} {
		rejected = nil
		w := postWithKey(r, key)
		if w.Code != http.StatusTeapot || !errors.Is(rejected, ErrInvalidIdempotencyKey) {
			t.Fatalf("key %q: code=%d err=%v", key, w.Code, rejected)
		}
	}
}

func TestIdempotencyValidator_DefaultRejectWritesJSON400(t *testing.T) {
	r, _ := idemRouter(t, IdempotencyOptions{}, nil, true)
	w := postWithKey(r, "not valid!")
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), `"bad_request"`) {
		t.Fatalf("code=%d body=%s", w.Code, w.Body.String())
	}
}

func TestIdempotencyValidator_LookupScopesByAccountAndRoute(t *testing.T) {
	var got lookupCall
	r, seen := idemRouter(t, IdempotencyOptions{}, func(_ context.Context, a domain.AccountID, scope, key string) (*domain.Idempotency, error) {
		got = lookupCall{a, scope, key}
		return &domain.Idempotency{ResourceID: 42, Status: http.StatusCreated}, nil
	}, true)

	w := postWithKey(r, "key-1")
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d", w.Code)
	}
	want := lookupCall{9, "POST /questions", "key-1"}
	if got != want {
		t.Fatalf("lookup = %+v, want %+v", got, want)
	}
	if seen.key != "key-1" || !seen.replay {
		t.Fatalf("handler saw %+v", *seen)
	}
	if seen.rec == nil || seen.rec.ResourceID != 42 {
		t.Fatalf("stashed record = %+v", seen.rec)
	}
}

func TestIdempotencyValidator_LookupErrorIsFirstAttempt(t *testing.T) {
	r, seen := idemRouter(t, IdempotencyOptions{}, func(context.Context, domain.AccountID, string, string) (*domain.Idempotency, error) {
		return &domain.Idempotency{ResourceID: 1}, errors.New("db down")
	}, true)

	if w := postWithKey(r, "k"); w.Code != http.StatusCreated || seen.replay || seen.rec != nil {
		t.Fatalf("code=%d replay=%v", w.Code, seen.replay)
	}
}

func TestIdempotencyValidator_SkipsLookupWhenAnonymous(t *testing.T) {
	called := false
	r, seen := idemRouter(t, IdempotencyOptions{}, func(context.Context, domain.AccountID, string, string) (*domain.Idempotency, error) {
		called = true
		return &domain.Idempotency{}, nil
	}, false)

	postWithKey(r, "k")
	if called || seen.replay || seen.key != "k" {
		t.Fatalf("called=%v seen=%+v", called, *seen)
	}
}
