package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// ListQuestions godoc
// @ID          listQuestions
// @Summary     List questions
// @Description Returns questions in creation order. Without limit and offset the whole list is returned; when one is given both are required.
// @Tags        Questions
// @Produce     json
// @Param       limit   query  int  false  "Maximum number of questions"  minimum(0)
// @Param       offset  query  int  false  "Number of questions to skip"   minimum(0)
// @Success     200  {array}   domain.Question
// @Failure     400  {object}  handlers.ErrorResponse  "Missing or unparsable pagination"
// @Failure     422  {object}  handlers.ErrorResponse  "Persistence failure"
// @Router      /questions [get]
func (h *Handlers) ListQuestions(c *gin.Context) {
	p, err := paginationFrom(c)
	if err != nil {
		Reject(c, err)
		return
	}
	qs, err := h.questions.List(c.Request.Context(), p)
	if err != nil {
		Reject(c, err)
		return
	}
	ok(c, http.StatusOK, qs)
}

// GetQuestion godoc
// @ID          getQuestion
// @Summary     Get a question
// @Tags        Questions
// @Produce     json
// @Param       id   path      int  true  "Question ID"
// @Success     200  {object}  domain.Question
// @Failure     400  {object}  handlers.ErrorResponse  "Unparsable id"
// @Failure     422  {object}  handlers.ErrorResponse  "Unknown question"
// @Router      /questions/{id} [get]
func (h *Handlers) GetQuestion(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		Reject(c, err)
		return
	}
	q, err := h.questions.Get(c.Request.Context(), domain.QuestionID(id))
	if err != nil {
		Reject(c, err)
		return
	}
	ok(c, http.StatusOK, q)
}

// CreateQuestion godoc
// @ID          createQuestion
// @Summary     Ask a question
// @Description Title and content pass through the profanity filter. Repeating a request with the same Idempotency-Key returns the question created first.
// @Tags        Questions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       Idempotency-Key  header  string              false  "Client-chosen key for safe retries"
// @Param       body             body    domain.NewQuestion  true   "Question"
// @Success     201  {object}  domain.Question
// @Failure     400  {object}  handlers.ErrorResponse  "Missing title or content"
// @Failure     401  {object}  handlers.ErrorResponse  "No or invalid session"
// @Failure     422  {object}  handlers.ErrorResponse  "Malformed body or persistence failure"
// @Failure     500  {object}  handlers.ErrorResponse  "Profanity filter unavailable"
// @Router      /questions [post]
func (h *Handlers) CreateQuestion(c *gin.Context) {
	sess, authed := session(c)
	if !authed {
		return
	}
	if h.replay(c, h.loadQuestion) {
		return
	}
	var in domain.NewQuestion
	if err := c.ShouldBindJSON(&in); err != nil {
		Reject(c, &BindError{Err: err})
		return
	}
	q, err := h.questions.Create(c.Request.Context(), sess.AccountID, in)
	if err != nil {
		Reject(c, err)
		return
	}
	h.remember(c, sess, int64(q.ID), http.StatusCreated)
	ok(c, http.StatusCreated, q)
}

func (h *Handlers) loadQuestion(ctx context.Context, id int64) (any, error) {
	return h.questions.Get(ctx, domain.QuestionID(id))
}

// UpdateQuestion godoc
// @ID          updateQuestion
// @Summary     Update a question
// @Description Only the owner may update. A missing question and a foreign one are both reported as unauthorized.
// @Tags        Questions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path  int                 true  "Question ID"
// @Param       body  body  domain.NewQuestion  true  "Replacement title, content and tags"
// @Success     200  {object}  domain.Question
// @Failure     400  {object}  handlers.ErrorResponse  "Unparsable id or missing fields"
// @Failure     401  {object}  handlers.ErrorResponse  "Not the owner"
// @Failure     422  {object}  handlers.ErrorResponse  "Malformed body or persistence failure"
// @Router      /questions/{id} [put]
func (h *Handlers) UpdateQuestion(c *gin.Context) {
	sess, authed := session(c)
	if !authed {
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		Reject(c, err)
		return
	}
	var in domain.NewQuestion
	if err := c.ShouldBindJSON(&in); err != nil {
		Reject(c, &BindError{Err: err})
		return
	}
	q, err := h.questions.Update(c.Request.Context(), sess.AccountID, domain.QuestionID(id), in)
	if err != nil {
		Reject(c, err)
		return
	}
	ok(c, http.StatusOK, q)
}

// DeleteQuestion godoc
// @ID          deleteQuestion
// @Summary     Delete a question and its answers
// @Tags        Questions
// @Produce     json
// @Security    BearerAuth
// @Param       id   path      int  true  "Question ID"
// @Success     200  {object}  handlers.MessageResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Unparsable id"
// @Failure     401  {object}  handlers.ErrorResponse  "Not the owner"
// @Failure     422  {object}  handlers.ErrorResponse  "Persistence failure"
// @Router      /questions/{id} [delete]
func (h *Handlers) DeleteQuestion(c *gin.Context) {
	sess, authed := session(c)
	if !authed {
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		Reject(c, err)
		return
	}
	if err := h.questions.Delete(c.Request.Context(), sess.AccountID, domain.QuestionID(id)); err != nil {
		Reject(c, err)
		return
	}
	ok(c, http.StatusOK, MessageResponse{Message: fmt.Sprintf("Question %d deleted", id)})
}
