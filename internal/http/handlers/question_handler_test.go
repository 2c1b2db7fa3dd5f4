package handlers

import (
	"fmt"
	"net/http"
	"reflect"
	"testing"

	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/moderation"
)

func createQuestion(t *testing.T, api *testAPI, tok string, in domain.NewQuestion) domain.Question {
	t.Helper()
	w := api.do(t, http.MethodPost, "/questions", in, withToken(tok))
	if w.Code != http.StatusCreated {
		t.Fatalf("create question: %d %s", w.Code, w.Body.String())
	}
	var q domain.Question
	decode(t, w, &q)
	return q
}

func TestQuestions_CreateGetList(t *testing.T) {
	api := newTestAPI(t, moderation.Noop{})
	tok, acct := api.signup(t, "a@x.com")

	q := createQuestion(t, api, tok, domain.NewQuestion{Title: "  Why   Go? ", Content: "Because.", Tags: domain.Tags{"Go", "go"}})
	if q.ID == 0 || q.AccountID != acct || q.Title != "Why Go?" {
		t.Fatalf("created = %+v", q)
	}
	if !reflect.DeepEqual(q.Tags, domain.Tags{"go"}) {
		t.Fatalf("tags = %v", q.Tags)
	}

	w := api.do(t, http.MethodGet, fmt.Sprintf("/questions/%d", q.ID), nil)
	var got domain.Question
	decode(t, w, &got)
	if w.Code != http.StatusOK || !reflect.DeepEqual(got, q) {
		t.Fatalf("get = %d %+v", w.Code, got)
	}

	createQuestion(t, api, tok, domain.NewQuestion{Title: "Second", Content: "C"})

	w = api.do(t, http.MethodGet, "/questions?limit=1&offset=0", nil)
	var page []domain.Question
	decode(t, w, &page)
	if len(page) != 1 || !reflect.DeepEqual(page[0], q) {
		t.Fatalf("first page = %+v", page)
	}

	w = api.do(t, http.MethodGet, "/questions", nil)
	decode(t, w, &page)
	if len(page) != 2 {
		t.Fatalf("full list len = %d", len(page))
	}

	w = api.do(t, http.MethodGet, "/questions?limit=5&offset=10", nil)
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("past end = %d %s", w.Code, w.Body.String())
	}
}

func TestQuestions_InputErrors(t *testing.T) {
	api := newTestAPI(t, moderation.Noop{})
	tok, _ := api.signup(t, "a@x.com")

	expectError(t, api.do(t, http.MethodGet, "/questions?limit=3", nil), http.StatusBadRequest, ErrCodeMissingParameters)
	expectError(t, api.do(t, http.MethodGet, "/questions?limit=x&offset=0", nil), http.StatusBadRequest, ErrCodeBadRequest)
	expectError(t, api.do(t, http.MethodGet, "/questions/abc", nil), http.StatusBadRequest, ErrCodeBadRequest)
	expectError(t, api.do(t, http.MethodGet, "/questions/999", nil), http.StatusUnprocessableEntity, ErrCodePersistence)

	expectError(t, api.do(t, http.MethodPost, "/questions", domain.NewQuestion{Title: "T", Content: "C"}), http.StatusUnauthorized, ErrCodeUnauthorized)
	expectError(t, api.do(t, http.MethodPost, "/questions", `{"title":`, withToken(tok)), http.StatusUnprocessableEntity, ErrCodeUnprocessable)
	expectError(t, api.do(t, http.MethodPost, "/questions", domain.NewQuestion{Title: "   ", Content: "C"}, withToken(tok)), http.StatusBadRequest, ErrCodeMissingParameters)
	expectError(t, api.do(t, http.MethodPost, "/questions", domain.NewQuestion{Title: "T", Content: "C"}, withToken("nope")), http.StatusUnauthorized, ErrCodeInvalidCredential)
}

func TestQuestions_ContentIsFiltered(t *testing.T) {
	api := newTestAPI(t, maskChecker{})
	tok, _ := api.signup(t, "a@x.com")

	q := createQuestion(t, api, tok, domain.NewQuestion{Title: "darn title", Content: "darn body"})
	if q.Title != "**** title" || q.Content != "**** body" {
		t.Fatalf("not filtered: %+v", q)
	}
}

func TestQuestions_UpdateAndDeleteByOwnerOnly(t *testing.T) {
	api := newTestAPI(t, moderation.Noop{})
	tokA, _ := api.signup(t, "a@x.com")
	tokB, _ := api.signup(t, "b@x.com")
	q := createQuestion(t, api, tokA, domain.NewQuestion{Title: "T", Content: "C"})
	path := fmt.Sprintf("/questions/%d", q.ID)

	er := expectError(t, api.do(t, http.MethodPut, path, domain.NewQuestion{Title: "X", Content: "Y"}, withToken(tokB)), http.StatusUnauthorized, ErrCodeUnauthorized)
	if er.Message != "no permission to change the underlying resource" {
		t.Fatalf("message = %q", er.Message)
	}
	expectError(t, api.do(t, http.MethodPut, "/questions/999", domain.NewQuestion{Title: "X", Content: "Y"}, withToken(tokA)), http.StatusUnauthorized, ErrCodeUnauthorized)
	expectError(t, api.do(t, http.MethodDelete, path, nil, withToken(tokB)), http.StatusUnauthorized, ErrCodeUnauthorized)

	w := api.do(t, http.MethodPut, path, domain.NewQuestion{Title: "T2", Content: "C2", Tags: domain.Tags{"x"}}, withToken(tokA))
	var upd domain.Question
	decode(t, w, &upd)
	if w.Code != http.StatusOK || upd.Title != "T2" || upd.Content != "C2" || upd.ID != q.ID {
		t.Fatalf("update = %d %+v", w.Code, upd)
	}

	w = api.do(t, http.MethodDelete, path, nil, withToken(tokA))
	var msg MessageResponse
	decode(t, w, &msg)
	if w.Code != http.StatusOK || msg.Message != fmt.Sprintf("Question %d deleted", q.ID) {
		t.Fatalf("delete = %d %+v", w.Code, msg)
	}
	expectError(t, api.do(t, http.MethodGet, path, nil), http.StatusUnprocessableEntity, ErrCodePersistence)
}

func TestQuestions_IdempotentCreate(t *testing.T) {
	api := newTestAPI(t, moderation.Noop{})
	tokA, _ := api.signup(t, "a@x.com")
	tokB, _ := api.signup(t, "b@x.com")
	in := domain.NewQuestion{Title: "Once", Content: "only"}

	first := api.do(t, http.MethodPost, "/questions", in, withToken(tokA), withIdemKey("k-1"))
	second := api.do(t, http.MethodPost, "/questions", in, withToken(tokA), withIdemKey("k-1"))
	if first.Code != http.StatusCreated || second.Code != http.StatusCreated {
		t.Fatalf("codes = %d, %d", first.Code, second.Code)
	}
	var q1, q2 domain.Question
	decode(t, first, &q1)
	decode(t, second, &q2)
	if q1.ID != q2.ID {
		t.Fatalf("replay created a new question: %d vs %d", q1.ID, q2.ID)
	}
	if second.Header().Get("Idempotent-Replayed") != "true" {
		t.Fatalf("replay header missing")
	}

	// Same key from another account is a new request.
	other := api.do(t, http.MethodPost, "/questions", in, withToken(tokB), withIdemKey("k-1"))
	var q3 domain.Question
	decode(t, other, &q3)
	if q3.ID == q1.ID {
		t.Fatalf("keys leaked across accounts")
	}

	var n int64
	api.db.Model(&domain.Question{}).Count(&n)
	if n != 2 {
		t.Fatalf("questions = %d, want 2", n)
	}

	expectError(t, api.do(t, http.MethodPost, "/questions", in, withToken(tokA), withIdemKey("bad key")), http.StatusBadRequest, ErrCodeBadRequest)
}
