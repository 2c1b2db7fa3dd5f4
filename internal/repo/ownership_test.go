package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/go-qa-backend/internal/apperr"
	"github.com/tbourn/go-qa-backend/internal/domain"
)

func TestIsQuestionOwner(t *testing.T) {
	db := newRepoDB(t, true)
	ctx := context.Background()
	q := seedQuestions(t, db, 1, 1)[0]

	tests := []struct {
		name    string
		id      domain.QuestionID
		account domain.AccountID
		want    bool
	}{
		{"owner", q.ID, 1, true},
		{"foreign owner", q.ID, 2, false},
		{"missing question", 9999, 1, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := IsQuestionOwner(ctx, db, tc.id, tc.account)
			if err != nil {
				t.Fatalf("IsQuestionOwner: %v", err)
			}
			if got != tc.want {
				t.Fatalf("IsQuestionOwner(%d, %d) = %v, want %v", tc.id, tc.account, got, tc.want)
			}
		})
	}
}

func TestIsAnswerOwner(t *testing.T) {
	db := newRepoDB(t, true)
	ctx := context.Background()
	q := seedQuestions(t, db, 1, 1)[0]
	a, err := CreateAnswer(ctx, db, domain.NewAnswer{Content: "a", QuestionID: q.ID}, 3)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if ok, err := IsAnswerOwner(ctx, db, a.ID, 3); err != nil || !ok {
		t.Fatalf("owner: ok=%v err=%v", ok, err)
	}
	if ok, err := IsAnswerOwner(ctx, db, a.ID, 1); err != nil || ok {
		t.Fatalf("question owner is not answer owner: ok=%v err=%v", ok, err)
	}
	if ok, err := IsAnswerOwner(ctx, db, 777, 3); err != nil || ok {
		t.Fatalf("missing answer: ok=%v err=%v", ok, err)
	}
}

func TestIsOwner_QueryFailureIsPersistence(t *testing.T) {
	db := newRepoDB(t, false)
	if _, err := IsQuestionOwner(context.Background(), db, 1, 1); !errors.Is(err, apperr.ErrPersistence) {
		t.Fatalf("expected Persistence, got %v", err)
	}
	if _, err := IsAnswerOwner(context.Background(), db, 1, 1); !errors.Is(err, apperr.ErrPersistence) {
		t.Fatalf("expected Persistence, got %v", err)
	}
}
