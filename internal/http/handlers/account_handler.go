package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// Credentials is the registration and login payload.
type Credentials struct {
	Email    string `json:"email"    binding:"required" example:"ann@example.com"`
	Password string `json:"password" binding:"required" example:"correct horse battery staple"`
}

// LoginResponse carries a session token.
type LoginResponse struct {
	Token     string           `json:"token"`
	AccountID domain.AccountID `json:"account_id" example:"1"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// Register godoc
// @ID          register
// @Summary     Create an account
// @Tags        Accounts
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.Credentials  true  "Email and password"
// @Success     201   {object}  domain.Account
// @Failure     400   {object}  handlers.ErrorResponse  "Blank email or password"
// @Failure     422   {object}  handlers.ErrorResponse  "Email taken or malformed body"
// @Router      /registration [post]
func (h *Handlers) Register(c *gin.Context) {
	var in Credentials
	if err := c.ShouldBindJSON(&in); err != nil {
		Reject(c, &BindError{Err: err})
		return
	}
	acc, err := h.accounts.Register(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		Reject(c, err)
		return
	}
	ok(c, http.StatusCreated, acc)
}

// Login godoc
// @ID          login
// @Summary     Log in
// @Description Verifies the password and returns a bearer token for the authenticated routes.
// @Tags        Accounts
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.Credentials  true  "Email and password"
// @Success     200   {object}  handlers.LoginResponse
// @Failure     401   {object}  handlers.ErrorResponse  "Wrong email/password combination"
// @Failure     422   {object}  handlers.ErrorResponse  "Unknown account or malformed body"
// @Router      /login [post]
func (h *Handlers) Login(c *gin.Context) {
	var in Credentials
	if err := c.ShouldBindJSON(&in); err != nil {
		Reject(c, &BindError{Err: err})
		return
	}
	l, err := h.accounts.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		Reject(c, err)
		return
	}
	ok(c, http.StatusOK, LoginResponse{
		Token:     l.Token,
		AccountID: l.Session.AccountID,
		ExpiresAt: l.Session.Expiry,
	})
}
