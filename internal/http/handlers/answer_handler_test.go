package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/moderation"
)

func createAnswer(t *testing.T, api *testAPI, tok string, in domain.NewAnswer) domain.Answer {
	t.Helper()
	w := api.do(t, http.MethodPost, "/answers", in, withToken(tok))
	if w.Code != http.StatusCreated {
		t.Fatalf("create answer: %d %s", w.Code, w.Body.String())
	}
	var a domain.Answer
	decode(t, w, &a)
	return a
}

func TestAnswers_CreateListGetDelete(t *testing.T) {
	api := newTestAPI(t, maskChecker{})
	tokA, _ := api.signup(t, "a@x.com")
	tokB, acctB := api.signup(t, "b@x.com")
	q := createQuestion(t, api, tokA, domain.NewQuestion{Title: "T", Content: "C"})

	a1 := createAnswer(t, api, tokB, domain.NewAnswer{Content: "darn good", QuestionID: q.ID})
	if a1.Content != "**** good" || a1.AccountID != acctB || a1.QuestionID != q.ID {
		t.Fatalf("answer = %+v", a1)
	}
	createAnswer(t, api, tokA, domain.NewAnswer{Content: "second", QuestionID: q.ID})

	var list []domain.Answer
	w := api.do(t, http.MethodGet, fmt.Sprintf("/answers?question_id=%d", q.ID), nil)
	decode(t, w, &list)
	if len(list) != 2 || list[0].ID != a1.ID {
		t.Fatalf("list = %+v", list)
	}
	w = api.do(t, http.MethodGet, fmt.Sprintf("/answers?question_id=%d&limit=1&offset=1", q.ID), nil)
	decode(t, w, &list)
	if len(list) != 1 || list[0].Content != "second" {
		t.Fatalf("page = %+v", list)
	}

	w = api.do(t, http.MethodGet, fmt.Sprintf("/answers/%d", a1.ID), nil)
	var got domain.Answer
	decode(t, w, &got)
	if w.Code != http.StatusOK || got != a1 {
		t.Fatalf("get = %d %+v", w.Code, got)
	}

	path := fmt.Sprintf("/answers/%d", a1.ID)
	expectError(t, api.do(t, http.MethodDelete, path, nil, withToken(tokA)), http.StatusUnauthorized, ErrCodeUnauthorized)
	w = api.do(t, http.MethodDelete, path, nil, withToken(tokB))
	var msg MessageResponse
	decode(t, w, &msg)
	if w.Code != http.StatusOK || msg.Message != fmt.Sprintf("Answer %d deleted", a1.ID) {
		t.Fatalf("delete = %d %+v", w.Code, msg)
	}
}

func TestAnswers_InputErrors(t *testing.T) {
	api := newTestAPI(t, moderation.Noop{})
	tok, _ := api.signup(t, "a@x.com")

	expectError(t, api.do(t, http.MethodGet, "/answers", nil), http.StatusBadRequest, ErrCodeMissingParameters)
	expectError(t, api.do(t, http.MethodGet, "/answers?question_id=1&offset=2", nil), http.StatusBadRequest, ErrCodeMissingParameters)
	expectError(t, api.do(t, http.MethodPost, "/answers", domain.NewAnswer{Content: "orphan", QuestionID: 404}, withToken(tok)), http.StatusUnprocessableEntity, ErrCodePersistence)
	expectError(t, api.do(t, http.MethodPost, "/answers", `{"content":"no question"}`, withToken(tok)), http.StatusUnprocessableEntity, ErrCodeUnprocessable)
}

func TestAnswers_IdempotentCreate(t *testing.T) {
	api := newTestAPI(t, moderation.Noop{})
	tok, _ := api.signup(t, "a@x.com")
	q := createQuestion(t, api, tok, domain.NewQuestion{Title: "T", Content: "C"})
	in := domain.NewAnswer{Content: "once", QuestionID: q.ID}

	var ids []domain.AnswerID
	for i := 0; i < 2; i++ {
		w := api.do(t, http.MethodPost, "/answers", in, withToken(tok), withIdemKey("ans-1"))
		var a domain.Answer
		decode(t, w, &a)
		if w.Code != http.StatusCreated {
			t.Fatalf("attempt %d: %d", i, w.Code)
		}
		ids = append(ids, a.ID)
	}
	if ids[0] != ids[1] {
		t.Fatalf("ids = %v", ids)
	}
}

// Account a asks, b tries to edit, a deletes the question with two answers.
func TestScenario_OwnershipAndCascadeOverHTTP(t *testing.T) {
	api := newTestAPI(t, moderation.Noop{})
	tokA, acctA := api.signup(t, "a@x.com")
	tokB, _ := api.signup(t, "b@x.com")

	q := createQuestion(t, api, tokA, domain.NewQuestion{Title: "T", Content: "C", Tags: domain.Tags{"x"}})
	if q.Title != "T" || q.Content != "C" || len(q.Tags) != 1 || q.Tags[0] != "x" || q.AccountID != acctA {
		t.Fatalf("created = %+v", q)
	}
	qpath := fmt.Sprintf("/questions/%d", q.ID)

	expectError(t, api.do(t, http.MethodPut, qpath, domain.NewQuestion{Title: "hijack", Content: "C"}, withToken(tokB)), http.StatusUnauthorized, ErrCodeUnauthorized)
	var unchanged domain.Question
	decode(t, api.do(t, http.MethodGet, qpath, nil), &unchanged)
	if unchanged.Title != "T" {
		t.Fatalf("row changed by non-owner: %+v", unchanged)
	}

	createAnswer(t, api, tokA, domain.NewAnswer{Content: "one", QuestionID: q.ID})
	createAnswer(t, api, tokB, domain.NewAnswer{Content: "two", QuestionID: q.ID})

	if w := api.do(t, http.MethodDelete, qpath, nil, withToken(tokA)); w.Code != http.StatusOK {
		t.Fatalf("delete = %d %s", w.Code, w.Body.String())
	}
	w := api.do(t, http.MethodGet, fmt.Sprintf("/answers?question_id=%d", q.ID), nil)
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("answers after cascade = %d %s", w.Code, w.Body.String())
	}
}
