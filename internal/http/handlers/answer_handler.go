package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// ListAnswers godoc
// @ID          listAnswers
// @Summary     List answers to a question
// @Tags        Answers
// @Produce     json
// @Param       question_id  query  int  true   "Question ID"
// @Param       limit        query  int  false  "Maximum number of answers"  minimum(0)
// @Param       offset       query  int  false  "Number of answers to skip"  minimum(0)
// @Success     200  {array}   domain.Answer
// @Failure     400  {object}  handlers.ErrorResponse  "Missing or unparsable parameter"
// @Failure     422  {object}  handlers.ErrorResponse  "Persistence failure"
// @Router      /answers [get]
func (h *Handlers) ListAnswers(c *gin.Context) {
	qid, err := questionIDQuery(c)
	if err != nil {
		Reject(c, err)
		return
	}
	p, err := paginationFrom(c)
	if err != nil {
		Reject(c, err)
		return
	}
	as, err := h.answers.ListForQuestion(c.Request.Context(), qid, p)
	if err != nil {
		Reject(c, err)
		return
	}
	ok(c, http.StatusOK, as)
}

// GetAnswer godoc
// @ID          getAnswer
// @Summary     Get an answer
// @Tags        Answers
// @Produce     json
// @Param       id   path      int  true  "Answer ID"
// @Success     200  {object}  domain.Answer
// @Failure     400  {object}  handlers.ErrorResponse  "Unparsable id"
// @Failure     422  {object}  handlers.ErrorResponse  "Unknown answer"
// @Router      /answers/{id} [get]
func (h *Handlers) GetAnswer(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		Reject(c, err)
		return
	}
	a, err := h.answers.Get(c.Request.Context(), domain.AnswerID(id))
	if err != nil {
		Reject(c, err)
		return
	}
	ok(c, http.StatusOK, a)
}

// CreateAnswer godoc
// @ID          createAnswer
// @Summary     Answer a question
// @Description Content passes through the profanity filter. An unknown question_id is a persistence failure.
// @Tags        Answers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       Idempotency-Key  header  string            false  "Client-chosen key for safe retries"
// @Param       body             body    domain.NewAnswer  true   "Answer"
// @Success     201  {object}  domain.Answer
// @Failure     400  {object}  handlers.ErrorResponse  "Missing content"
// @Failure     401  {object}  handlers.ErrorResponse  "No or invalid session"
// @Failure     422  {object}  handlers.ErrorResponse  "Malformed body or persistence failure"
// @Failure     500  {object}  handlers.ErrorResponse  "Profanity filter unavailable"
// @Router      /answers [post]
func (h *Handlers) CreateAnswer(c *gin.Context) {
	sess, authed := session(c)
	if !authed {
		return
	}
	if h.replay(c, h.loadAnswer) {
		return
	}
	var in domain.NewAnswer
	if err := c.ShouldBindJSON(&in); err != nil {
		Reject(c, &BindError{Err: err})
		return
	}
	a, err := h.answers.Create(c.Request.Context(), sess.AccountID, in)
	if err != nil {
		Reject(c, err)
		return
	}
	h.remember(c, sess, int64(a.ID), http.StatusCreated)
	ok(c, http.StatusCreated, a)
}

func (h *Handlers) loadAnswer(ctx context.Context, id int64) (any, error) {
	return h.answers.Get(ctx, domain.AnswerID(id))
}

// DeleteAnswer godoc
// @ID          deleteAnswer
// @Summary     Delete an answer
// @Tags        Answers
// @Produce     json
// @Security    BearerAuth
// @Param       id   path      int  true  "Answer ID"
// @Success     200  {object}  handlers.MessageResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Unparsable id"
// @Failure     401  {object}  handlers.ErrorResponse  "Not the owner"
// @Failure     422  {object}  handlers.ErrorResponse  "Persistence failure"
// @Router      /answers/{id} [delete]
func (h *Handlers) DeleteAnswer(c *gin.Context) {
	sess, authed := session(c)
	if !authed {
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		Reject(c, err)
		return
	}
	if err := h.answers.Delete(c.Request.Context(), sess.AccountID, domain.AnswerID(id)); err != nil {
		Reject(c, err)
		return
	}
	ok(c, http.StatusOK, MessageResponse{Message: fmt.Sprintf("Answer %d deleted", id)})
}
