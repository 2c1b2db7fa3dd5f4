// Package handlers exposes the REST endpoints of the Q&A API.
//
// Handlers are transport-thin: they parse input, call application services,
// and translate results into JSON. Every failure goes through Reject.
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/http/middleware"
	"github.com/tbourn/go-qa-backend/internal/services"
)

// QuestionService is the question lifecycle consumed by the handlers.
type QuestionService interface {
	List(ctx context.Context, p domain.Pagination) ([]domain.Question, error)
	Get(ctx context.Context, id domain.QuestionID) (*domain.Question, error)
	Create(ctx context.Context, account domain.AccountID, in domain.NewQuestion) (*domain.Question, error)
	Update(ctx context.Context, account domain.AccountID, id domain.QuestionID, in domain.NewQuestion) (*domain.Question, error)
	Delete(ctx context.Context, account domain.AccountID, id domain.QuestionID) error
}

// AnswerService is the answer lifecycle consumed by the handlers.
type AnswerService interface {
	ListForQuestion(ctx context.Context, qid domain.QuestionID, p domain.Pagination) ([]domain.Answer, error)
	Get(ctx context.Context, id domain.AnswerID) (*domain.Answer, error)
	Create(ctx context.Context, account domain.AccountID, in domain.NewAnswer) (*domain.Answer, error)
	Delete(ctx context.Context, account domain.AccountID, id domain.AnswerID) error
}

// AccountService registers accounts and issues sessions.
type AccountService interface {
	Authenticator
	Register(ctx context.Context, email, password string) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (*services.Login, error)
}

// IdempotencyStore remembers which resource a keyed create produced.
type IdempotencyStore interface {
	Remember(ctx context.Context, account domain.AccountID, scope, key string, resourceID int64, status int) error
}

// Handlers groups the HTTP endpoints.
type Handlers struct {
	questions QuestionService
	answers   AnswerService
	accounts  AccountService
	idem      IdempotencyStore
}

// New binds the handlers to their services. idem may be nil, which stops
// keyed creates from being recorded.
func New(q QuestionService, a AnswerService, acc AccountService, idem IdempotencyStore) *Handlers {
	return &Handlers{questions: q, answers: a, accounts: acc, idem: idem}
}

// replay answers a create that repeats an Idempotency-Key already used by
// this account on this route, writing the original resource with the
// original status. The record comes from IdempotencyValidator. It returns
// false when the request must run normally.
func (h *Handlers) replay(c *gin.Context, load func(context.Context, int64) (any, error)) bool {
	rec, found := middleware.ReplayRecord(c)
	if !found {
		return false
	}
	res, err := load(c.Request.Context(), rec.ResourceID)
	if err != nil {
		Reject(c, err)
		return true
	}
	c.Header("Idempotent-Replayed", "true")
	ok(c, rec.Status, res)
	return true
}

// remember records the created resource under the request's key, if any.
func (h *Handlers) remember(c *gin.Context, sess domain.Session, resourceID int64, status int) {
	key, has := middleware.GetIdempotencyKey(c)
	if !has || h.idem == nil {
		return
	}
	err := h.idem.Remember(c.Request.Context(), sess.AccountID, middleware.IdempotencyScope(c), key, resourceID, status)
	if err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Str("key", key).Msg("idempotency record not saved")
	}
}
