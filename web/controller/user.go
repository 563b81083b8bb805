package controller

import (
	"net/http"

	"github.com/Slavchick12/api-yamdb/web/policy"
	"github.com/Slavchick12/api-yamdb/web/service"

	"github.com/gin-gonic/gin"
)

// UserController serves the admin-gated user endpoints plus the
// self-service "me" pair.
type UserController struct {
	BaseController
	svc *service.UserService
}

func NewUserController(g *gin.RouterGroup, svc *service.UserService) *UserController {
	a := &UserController{svc: svc}

	users := g.Group("/users")
	{
		users.GET("", a.list)
		users.POST("", a.create)

		// Registered before :username so gin matches the static segment.
		users.GET("/me", a.me)
		users.PATCH("/me", a.patchMe)
		users.PUT("/me", a.putNotAllowed)

		users.GET("/:username", a.retrieve)
		users.PATCH("/:username", a.patch)
		users.DELETE("/:username", a.delete)
		users.PUT("/:username", a.putNotAllowed)
	}
	return a
}

func (a *UserController) list(c *gin.Context) {
	if !a.authorize(c, policy.List, policy.Users) {
		return
	}

	page, pageSize := pageParams(c, service.UserPageSize)
	users, count, err := a.svc.List(c.Query("search"), page, pageSize)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageResponse(c, count, page, pageSize, users))
}

func (a *UserController) create(c *gin.Context) {
	if !a.authorize(c, policy.Create, policy.Users) {
		return
	}

	var req service.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		a.badRequestBody(c)
		return
	}

	user, err := a.svc.Create(req)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service.UserDTOOf(user))
}

func (a *UserController) retrieve(c *gin.Context) {
	if !a.authorize(c, policy.Retrieve, policy.Users) {
		return
	}

	user, err := a.svc.GetByUsername(c.Param("username"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.UserDTOOf(user))
}

func (a *UserController) patch(c *gin.Context) {
	if !a.authorize(c, policy.PartialUpdate, policy.Users) {
		return
	}

	user, err := a.svc.GetByUsername(c.Param("username"))
	if err != nil {
		a.writeError(c, err)
		return
	}

	var req service.UserPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		a.badRequestBody(c)
		return
	}

	user, err = a.svc.Update(user, req, true)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.UserDTOOf(user))
}

func (a *UserController) delete(c *gin.Context) {
	if !a.authorize(c, policy.Destroy, policy.Users) {
		return
	}

	user, err := a.svc.GetByUsername(c.Param("username"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	if err := a.svc.Delete(user); err != nil {
		a.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// me lets any authenticated principal read their own record without the
// admin gate.
func (a *UserController) me(c *gin.Context) {
	user := a.requireAuthenticated(c)
	if user == nil {
		return
	}
	c.JSON(http.StatusOK, service.UserDTOOf(user))
}

// patchMe is the self-service partial update; the role and superuser fields
// in the body are ignored so a user cannot promote themselves.
func (a *UserController) patchMe(c *gin.Context) {
	user := a.requireAuthenticated(c)
	if user == nil {
		return
	}

	var req service.UserPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		a.badRequestBody(c)
		return
	}

	user, err := a.svc.Update(user, req, false)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.UserDTOOf(user))
}
