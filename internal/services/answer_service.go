package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-qa-backend/internal/apperr"
	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/moderation"
	"github.com/tbourn/go-qa-backend/internal/repo"
)

// AnswerService manages answers. Content is filtered on create; deletion is
// gated on ownership of the answer (not of the question it answers).
type AnswerService struct {
	DB      *gorm.DB
	Gate    *OwnershipGate
	Checker moderation.Checker
}

// NewAnswerService wires a service over db.
func NewAnswerService(db *gorm.DB, checker moderation.Checker) *AnswerService {
	if checker == nil {
		checker = moderation.Noop{}
	}
	return &AnswerService{DB: db, Gate: &OwnershipGate{DB: db}, Checker: checker}
}

func (s *AnswerService) tracer() trace.Tracer { return otel.Tracer("services/AnswerService") }

// ListForQuestion returns a window of the answers to question qid.
func (s *AnswerService) ListForQuestion(ctx context.Context, qid domain.QuestionID, p domain.Pagination) ([]domain.Answer, error) {
	ctx, span := s.tracer().Start(ctx, "ListForQuestion",
		trace.WithAttributes(
			attribute.Int64("question.id", int64(qid)),
			attribute.Int("offset", p.Offset),
		),
	)
	defer span.End()

	return repo.ListAnswersForQuestion(ctx, s.DB, qid, p)
}

// Get returns answer id.
func (s *AnswerService) Get(ctx context.Context, id domain.AnswerID) (*domain.Answer, error) {
	ctx, span := s.tracer().Start(ctx, "Get",
		trace.WithAttributes(attribute.Int64("answer.id", int64(id))),
	)
	defer span.End()

	return repo.GetAnswer(ctx, s.DB, id)
}

// Create stores an answer owned by account. Answering a question that does
// not exist fails with apperr.Persistence.
func (s *AnswerService) Create(ctx context.Context, account domain.AccountID, in domain.NewAnswer) (*domain.Answer, error) {
	ctx, span := s.tracer().Start(ctx, "Create",
		trace.WithAttributes(
			attribute.Int64("question.id", int64(in.QuestionID)),
			attribute.Int64("account.id", int64(account)),
		),
	)
	defer span.End()

	content := normalizeBody(in.Content)
	if content == "" || in.QuestionID <= 0 {
		return nil, apperr.MissingParameters()
	}
	if s.Checker != nil {
		censored, err := s.Checker.Check(ctx, content)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		content = censored
	}
	return repo.CreateAnswer(ctx, s.DB, domain.NewAnswer{Content: content, QuestionID: in.QuestionID}, account)
}

// Delete removes answer id. Only its owner may delete it.
func (s *AnswerService) Delete(ctx context.Context, account domain.AccountID, id domain.AnswerID) error {
	ctx, span := s.tracer().Start(ctx, "Delete",
		trace.WithAttributes(
			attribute.Int64("answer.id", int64(id)),
			attribute.Int64("account.id", int64(account)),
		),
	)
	defer span.End()

	if err := s.Gate.RequireAnswerOwner(ctx, id, account); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return repo.DeleteAnswer(ctx, s.DB, id, account)
}
