// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Question
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - Every failure is an *apperr.Error. A missing row and a failed query
//     both surface as apperr.Persistence; callers cannot tell them apart.
//   - Writes that target a row the caller does not own affect zero rows and
//     are reported the same way.
//
// Usage:
//
//	q, err := repo.GetQuestion(ctx, db, id)
//	if errors.Is(err, apperr.ErrPersistence) {
//	    // missing or unreadable
//	}
package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-qa-backend/internal/apperr"
	"github.com/tbourn/go-qa-backend/internal/domain"
)

// errNoRows is the cause recorded when a predicate-qualified write matched
// nothing.
var errNoRows = errors.New("no rows affected")

// paginate applies creation order and the offset/limit window.
func paginate(q *gorm.DB, p domain.Pagination) *gorm.DB {
	q = q.Order("id ASC")
	if p.Offset > 0 {
		q = q.Offset(p.Offset)
	}
	if p.Limit != nil {
		q = q.Limit(*p.Limit)
	}
	return q
}

// emptyWindow reports whether p can only ever select nothing.
func emptyWindow(p domain.Pagination) bool {
	return p.Limit != nil && *p.Limit <= 0
}

// ListQuestions returns questions in creation order, skipping p.Offset rows
// and returning at most *p.Limit (all remaining when p.Limit is nil). An
// offset past the end yields an empty slice.
func ListQuestions(ctx context.Context, db *gorm.DB, p domain.Pagination) ([]domain.Question, error) {
	out := []domain.Question{}
	if emptyWindow(p) {
		return out, nil
	}
	if err := paginate(db.WithContext(ctx), p).Find(&out).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return out, nil
}

// GetQuestion fetches a single question by ID.
func GetQuestion(ctx context.Context, db *gorm.DB, id domain.QuestionID) (*domain.Question, error) {
	var q domain.Question
	if err := db.WithContext(ctx).Where("id = ?", id).First(&q).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return &q, nil
}

// CreateQuestion inserts a question owned by owner and returns it with its
// assigned ID.
func CreateQuestion(ctx context.Context, db *gorm.DB, in domain.NewQuestion, owner domain.AccountID) (*domain.Question, error) {
	q := &domain.Question{
		Title:     in.Title,
		Content:   in.Content,
		Tags:      in.Tags,
		AccountID: owner,
	}
	if err := db.WithContext(ctx).Create(q).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return q, nil
}

// UpdateQuestion replaces title, content, and tags of the question identified
// by id and owned by owner. The owner column is never written. Zero matched
// rows is a Persistence failure.
func UpdateQuestion(ctx context.Context, db *gorm.DB, in domain.NewQuestion, id domain.QuestionID, owner domain.AccountID) (*domain.Question, error) {
	res := db.WithContext(ctx).
		Model(&domain.Question{}).
		Where("id = ? AND account_id = ?", id, owner).
		Updates(map[string]any{
			"title":   in.Title,
			"content": in.Content,
			"tags":    in.Tags,
		})
	if res.Error != nil {
		return nil, apperr.Persistence(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.Persistence(errNoRows)
	}
	return GetQuestion(ctx, db, id)
}

// DeleteQuestion removes the question identified by id and owned by owner,
// together with every answer attached to it, in one transaction. The
// question's answers go first; when the question delete fails or matches no
// row the transaction rolls back and the answers survive.
func DeleteQuestion(ctx context.Context, db *gorm.DB, id domain.QuestionID, owner domain.AccountID) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("corresponding_question = ?", id).Delete(&domain.Answer{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND account_id = ?", id, owner).Delete(&domain.Question{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errNoRows
		}
		return nil
	})
	if err != nil {
		return apperr.Persistence(err)
	}
	return nil
}
