package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/apperr"
	"github.com/tbourn/go-qa-backend/internal/domain"
)

var errNegative = errors.New("must not be negative")

// paginationFrom reads limit and offset. With neither present the whole list
// is selected; with only one present the request is missing a parameter.
func paginationFrom(c *gin.Context) (domain.Pagination, error) {
	q := c.Request.URL.Query()
	hasLimit, hasOffset := q.Has("limit"), q.Has("offset")
	if !hasLimit && !hasOffset {
		return domain.Pagination{}, nil
	}
	if !hasLimit || !hasOffset {
		return domain.Pagination{}, apperr.MissingParameters()
	}
	limit, err := nonNegative(q.Get("limit"))
	if err != nil {
		return domain.Pagination{}, err
	}
	offset, err := nonNegative(q.Get("offset"))
	if err != nil {
		return domain.Pagination{}, err
	}
	return domain.Pagination{Limit: &limit, Offset: offset}, nil
}

func nonNegative(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.ParseError(raw, err)
	}
	if n < 0 {
		return 0, apperr.ParseError(raw, errNegative)
	}
	return n, nil
}

// questionIDQuery reads the required question_id query parameter.
func questionIDQuery(c *gin.Context) (domain.QuestionID, error) {
	raw, ok := c.GetQuery("question_id")
	if !ok {
		return 0, apperr.MissingParameters()
	}
	id, err := parseID(raw)
	return domain.QuestionID(id), err
}

// pathID reads a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	return parseID(c.Param(name))
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.ParseError(raw, err)
	}
	if id <= 0 {
		return 0, apperr.ParseError(raw, errors.New("must be positive"))
	}
	return id, nil
}
