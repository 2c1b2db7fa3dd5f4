// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Answer
// model.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-qa-backend/internal/apperr"
	"github.com/tbourn/go-qa-backend/internal/domain"
)

// ListAnswersForQuestion returns the answers of question qid in creation
// order, windowed like ListQuestions.
func ListAnswersForQuestion(ctx context.Context, db *gorm.DB, qid domain.QuestionID, p domain.Pagination) ([]domain.Answer, error) {
	out := []domain.Answer{}
	if emptyWindow(p) {
		return out, nil
	}
	q := db.WithContext(ctx).Where("corresponding_question = ?", qid)
	if err := paginate(q, p).Find(&out).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return out, nil
}

// GetAnswer fetches a single answer by ID. A missing answer is Persistence.
func GetAnswer(ctx context.Context, db *gorm.DB, id domain.AnswerID) (*domain.Answer, error) {
	var a domain.Answer
	if err := db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return &a, nil
}

// CreateAnswer inserts an answer owned by owner. An answer to a question that
// does not exist is rejected by the foreign key and reported as Persistence.
func CreateAnswer(ctx context.Context, db *gorm.DB, in domain.NewAnswer, owner domain.AccountID) (*domain.Answer, error) {
	a := &domain.Answer{
		Content:    in.Content,
		QuestionID: in.QuestionID,
		AccountID:  owner,
	}
	if err := db.WithContext(ctx).Omit("Question").Create(a).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return a, nil
}

// DeleteAnswer removes the answer identified by id and owned by owner. Zero
// matched rows is a Persistence failure.
func DeleteAnswer(ctx context.Context, db *gorm.DB, id domain.AnswerID, owner domain.AccountID) error {
	res := db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, owner).
		Delete(&domain.Answer{})
	if res.Error != nil {
		return apperr.Persistence(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.Persistence(errNoRows)
	}
	return nil
}
