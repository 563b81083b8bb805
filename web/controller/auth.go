package controller

import (
	"net/http"

	"github.com/Slavchick12/api-yamdb/web/entity"
	"github.com/Slavchick12/api-yamdb/web/service"

	"github.com/gin-gonic/gin"
)

// AuthController serves the anonymous signup and token-exchange endpoints.
type AuthController struct {
	BaseController
	svc *service.AuthService
}

func NewAuthController(g *gin.RouterGroup, svc *service.AuthService) *AuthController {
	a := &AuthController{svc: svc}

	auth := g.Group("/auth")
	{
		auth.POST("/signup", a.signup)
		auth.POST("/token", a.token)
	}
	return a
}

type signupReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (a *AuthController) signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		a.badRequestBody(c)
		return
	}

	user, err := a.svc.Signup(req.Username, req.Email)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, signupReq{Username: user.Username, Email: user.Email})
}

type tokenReq struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

func (a *AuthController) token(c *gin.Context) {
	var req tokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		a.badRequestBody(c)
		return
	}

	token, err := a.svc.ExchangeToken(req.Username, req.ConfirmationCode)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.Token{Token: token})
}
