package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-qa-backend/internal/apperr"
	"github.com/tbourn/go-qa-backend/internal/domain"
)

// IsQuestionOwner reports whether question id exists and belongs to account.
// A missing question and a foreign owner both yield false.
func IsQuestionOwner(ctx context.Context, db *gorm.DB, id domain.QuestionID, account domain.AccountID) (bool, error) {
	return owns(ctx, db, &domain.Question{}, int64(id), account)
}

// IsAnswerOwner is IsQuestionOwner for answers.
func IsAnswerOwner(ctx context.Context, db *gorm.DB, id domain.AnswerID, account domain.AccountID) (bool, error) {
	return owns(ctx, db, &domain.Answer{}, int64(id), account)
}

func owns(ctx context.Context, db *gorm.DB, model any, id int64, account domain.AccountID) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(model).
		Where("id = ? AND account_id = ?", id, account).
		Count(&n).Error
	if err != nil {
		return false, apperr.Persistence(err)
	}
	return n > 0, nil
}
