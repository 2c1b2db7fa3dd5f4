package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-qa-backend/internal/auth"
	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/http/middleware"
	"github.com/tbourn/go-qa-backend/internal/moderation"
	"github.com/tbourn/go-qa-backend/internal/repo"
	"github.com/tbourn/go-qa-backend/internal/services"
)

// ---------- test DB + API wiring ----------

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db.Exec("PRAGMA foreign_keys=ON;")

	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

type testAPI struct {
	r  *gin.Engine
	db *gorm.DB
}

// newTestAPI mounts the handlers the same way the router does, minus the
// ops middleware.
func newTestAPI(t *testing.T, checker moderation.Checker) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := newHandlerDB(t)

	idem := &services.IdempotencyService{DB: db}
	accounts := &services.AccountService{DB: db, Tokens: &auth.TokenIssuer{Secret: []byte("test-secret"), TTL: time.Hour}}
	h := New(services.NewQuestionService(db, checker), services.NewAnswerService(db, checker), accounts, idem)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger())
	r.GET("/questions", h.ListQuestions)
	r.GET("/questions/:id", h.GetQuestion)
	r.GET("/answers", h.ListAnswers)
	r.GET("/answers/:id", h.GetAnswer)
	r.POST("/registration", h.Register)
	r.POST("/login", h.Login)

	authed := r.Group("", Authenticate(accounts), middleware.IdempotencyValidator(middleware.IdempotencyOptions{Reject: Reject}, idem.Lookup))
	authed.POST("/questions", h.CreateQuestion)
	authed.PUT("/questions/:id", h.UpdateQuestion)
	authed.DELETE("/questions/:id", h.DeleteQuestion)
	authed.POST("/answers", h.CreateAnswer)
	authed.DELETE("/answers/:id", h.DeleteAnswer)

	return &testAPI{r: r, db: db}
}

type reqOpt func(*http.Request)

func withToken(tok string) reqOpt {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }
}

func withIdemKey(k string) reqOpt {
	return func(r *http.Request) { r.Header.Set(middleware.HeaderIdempotencyKey, k) }
}

func (a *testAPI) do(t *testing.T, method, path string, body any, opts ...reqOpt) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	switch b := body.(type) {
	case nil:
		rd = bytes.NewReader(nil)
	case string:
		rd = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, o := range opts {
		o(req)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

// signup registers and logs in email, returning the bearer token.
func (a *testAPI) signup(t *testing.T, email string) (string, domain.AccountID) {
	t.Helper()
	creds := Credentials{Email: email, Password: "pw-" + email}
	if w := a.do(t, http.MethodPost, "/registration", creds); w.Code != http.StatusCreated {
		t.Fatalf("register %s: %d %s", email, w.Code, w.Body.String())
	}
	w := a.do(t, http.MethodPost, "/login", creds)
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", email, w.Code, w.Body.String())
	}
	var lr LoginResponse
	decode(t, w, &lr)
	return lr.Token, lr.AccountID
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

// expectError asserts the status and code of an ErrorResponse.
func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) ErrorResponse {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, status, w.Body.String())
	}
	var er ErrorResponse
	decode(t, w, &er)
	if er.Code != code {
		t.Fatalf("code = %q, want %q", er.Code, code)
	}
	if er.RequestID == "" {
		t.Fatalf("error response lacks request_id")
	}
	return er
}

// maskChecker replaces "darn" with "****".
type maskChecker struct{}

func (maskChecker) Check(_ context.Context, text string) (string, error) {
	return strings.ReplaceAll(text, "darn", "****"), nil
}
