// Package services holds the use cases of the question/answer API. Services
// validate and normalize input, enforce ownership before any mutation, and
// delegate persistence to the repo package. Failures are returned unclassified
// as *apperr.Error values; the HTTP layer decides how they are reported.
package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-qa-backend/internal/apperr"
	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/repo"
)

// OwnershipGate decides whether an account may mutate a question or answer.
// A resource that does not exist and one owned by someone else are reported
// the same way, so non-owners learn nothing about existence.
type OwnershipGate struct {
	DB *gorm.DB
}

// IsQuestionOwner reports whether account owns question id.
func (g *OwnershipGate) IsQuestionOwner(ctx context.Context, id domain.QuestionID, account domain.AccountID) (bool, error) {
	ctx, span := otel.Tracer("services/OwnershipGate").Start(ctx, "IsQuestionOwner",
		trace.WithAttributes(
			attribute.Int64("question.id", int64(id)),
			attribute.Int64("account.id", int64(account)),
		),
	)
	defer span.End()
	return repo.IsQuestionOwner(ctx, g.DB, id, account)
}

// IsAnswerOwner reports whether account owns answer id.
func (g *OwnershipGate) IsAnswerOwner(ctx context.Context, id domain.AnswerID, account domain.AccountID) (bool, error) {
	ctx, span := otel.Tracer("services/OwnershipGate").Start(ctx, "IsAnswerOwner",
		trace.WithAttributes(
			attribute.Int64("answer.id", int64(id)),
			attribute.Int64("account.id", int64(account)),
		),
	)
	defer span.End()
	return repo.IsAnswerOwner(ctx, g.DB, id, account)
}

// RequireQuestionOwner returns nil when account owns question id and
// apperr.Unauthorized when it does not.
func (g *OwnershipGate) RequireQuestionOwner(ctx context.Context, id domain.QuestionID, account domain.AccountID) error {
	ok, err := g.IsQuestionOwner(ctx, id, account)
	return gateResult(ok, err)
}

// RequireAnswerOwner is RequireQuestionOwner for answers.
func (g *OwnershipGate) RequireAnswerOwner(ctx context.Context, id domain.AnswerID, account domain.AccountID) error {
	ok, err := g.IsAnswerOwner(ctx, id, account)
	return gateResult(ok, err)
}

func gateResult(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Unauthorized()
	}
	return nil
}
