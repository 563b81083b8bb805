// Package controller binds the HTTP routes of the API. Controllers stay
// thin: they resolve nested parents, ask the policy package for a decision
// and hand the rest to the service layer.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Slavchick12/api-yamdb/database/model"
	"github.com/Slavchick12/api-yamdb/logger"
	"github.com/Slavchick12/api-yamdb/web/entity"
	"github.com/Slavchick12/api-yamdb/web/middleware"
	"github.com/Slavchick12/api-yamdb/web/policy"
	"github.com/Slavchick12/api-yamdb/web/service"

	"github.com/gin-gonic/gin"
)

// BaseController provides the shared policy and error plumbing.
type BaseController struct{}

func (a *BaseController) principal(c *gin.Context) *policy.Principal {
	return middleware.Principal(c)
}

func (a *BaseController) currentUser(c *gin.Context) *model.User {
	return middleware.CurrentUser(c)
}

// authorize runs the policy decision and writes the denial response when
// the action is not allowed.
func (a *BaseController) authorize(c *gin.Context, action policy.Action, resource policy.Resource) bool {
	return a.applyDecision(c, policy.Decide(a.principal(c), action, resource))
}

// authorizeOwned is authorize for mutations that depend on who authored the
// target resource.
func (a *BaseController) authorizeOwned(c *gin.Context, action policy.Action, resource policy.Resource, authorID int) bool {
	return a.applyDecision(c, policy.DecideOwned(a.principal(c), action, resource, authorID))
}

// requireAuthenticated writes a 401 for anonymous callers.
func (a *BaseController) requireAuthenticated(c *gin.Context) *model.User {
	user := a.currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, entity.Detail{Detail: "Authentication credentials were not provided."})
	}
	return user
}

func (a *BaseController) applyDecision(c *gin.Context, d policy.Decision) bool {
	switch d {
	case policy.Allow:
		return true
	case policy.DenyUnauthorized:
		c.JSON(http.StatusUnauthorized, entity.Detail{Detail: "Authentication credentials were not provided."})
	case policy.DenyMethodNotAllowed:
		c.JSON(http.StatusMethodNotAllowed, entity.Detail{Detail: policy.PutNotAllowedDetail})
	default:
		c.JSON(http.StatusForbidden, entity.Detail{Detail: "You do not have permission to perform this action."})
	}
	return false
}

// putNotAllowed is the fixed handler bound to every PUT route on resources
// that reject full replace.
func (a *BaseController) putNotAllowed(c *gin.Context) {
	a.applyDecision(c, policy.DenyMethodNotAllowed)
}

// writeError maps service errors onto the HTTP taxonomy.
func (a *BaseController) writeError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, validationErr.Fields)
		return
	}

	var notFoundErr *service.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, entity.Detail{Detail: "Not found."})
		return
	}

	var conflictErr *service.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, entity.Detail{Detail: "Conflict on field " + conflictErr.Field + "."})
		return
	}

	logger.Warning("request failed:", err)
	c.JSON(http.StatusInternalServerError, entity.Detail{Detail: "Internal server error."})
}

// badRequestBody rejects unparseable JSON bodies.
func (a *BaseController) badRequestBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, entity.Detail{Detail: "Malformed request body."})
}

// intParam parses a numeric path parameter; 0 means absent or invalid.
func intParam(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v < 1 {
		return 0
	}
	return v
}

// pageParams reads page-number pagination query params, clamped to the
// resource's default and the global cap.
func pageParams(c *gin.Context, defaultSize int) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultSize)))
	if pageSize < 1 {
		pageSize = defaultSize
	}
	if pageSize > service.MaxPageSize {
		pageSize = service.MaxPageSize
	}
	return page, pageSize
}

// pageResponse builds the list envelope with next/previous links derived
// from the request URL.
func pageResponse(c *gin.Context, count int64, page, pageSize int, results any) entity.Page {
	pageURL := func(p int) *string {
		u := *c.Request.URL
		q := u.Query()
		q.Set("page", strconv.Itoa(p))
		u.RawQuery = q.Encode()
		s := u.String()
		return &s
	}

	out := entity.Page{Count: count, Results: results}
	if int64(page*pageSize) < count {
		out.Next = pageURL(page + 1)
	}
	if page > 1 {
		out.Previous = pageURL(page - 1)
	}
	return out
}
