package controller

import (
	"net/http"

	"github.com/Slavchick12/api-yamdb/database/model"
	"github.com/Slavchick12/api-yamdb/web/policy"
	"github.com/Slavchick12/api-yamdb/web/service"

	"github.com/gin-gonic/gin"
)

// ReviewController serves reviews nested under their title. Reads are open,
// creation needs authentication, mutation is ownership-gated.
type ReviewController struct {
	BaseController
	svc *service.ReviewService
}

func NewReviewController(g *gin.RouterGroup, svc *service.ReviewService) *ReviewController {
	a := &ReviewController{svc: svc}

	reviews := g.Group("/titles/:id/reviews")
	{
		reviews.GET("", a.list)
		reviews.POST("", a.create)
		reviews.GET("/:reviewId", a.retrieve)
		reviews.PATCH("/:reviewId", a.patch)
		reviews.DELETE("/:reviewId", a.delete)
		reviews.PUT("/:reviewId", a.putNotAllowed)
	}
	return a
}

// resolveTitle fetches the parent title or writes the 404.
func (a *ReviewController) resolveTitle(c *gin.Context) *model.Title {
	title, err := a.svc.ResolveTitle(intParam(c, "id"))
	if err != nil {
		a.writeError(c, err)
		return nil
	}
	return title
}

func (a *ReviewController) list(c *gin.Context) {
	if !a.authorize(c, policy.List, policy.Reviews) {
		return
	}
	title := a.resolveTitle(c)
	if title == nil {
		return
	}

	page, pageSize := pageParams(c, service.ReviewPageSize)
	reviews, count, err := a.svc.List(title.Id, page, pageSize)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageResponse(c, count, page, pageSize, reviews))
}

type reviewReq struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

func (a *ReviewController) create(c *gin.Context) {
	if !a.authorize(c, policy.Create, policy.Reviews) {
		return
	}
	title := a.resolveTitle(c)
	if title == nil {
		return
	}

	var req reviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		a.badRequestBody(c)
		return
	}

	// Author comes from the principal, never from the body.
	review, err := a.svc.Create(title, a.currentUser(c), req.Text, req.Score)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (a *ReviewController) retrieve(c *gin.Context) {
	if !a.authorize(c, policy.Retrieve, policy.Reviews) {
		return
	}
	title := a.resolveTitle(c)
	if title == nil {
		return
	}

	review, err := a.svc.Get(title.Id, intParam(c, "reviewId"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.ReviewDTOOf(review))
}

func (a *ReviewController) patch(c *gin.Context) {
	if a.requireAuthenticated(c) == nil {
		return
	}
	title := a.resolveTitle(c)
	if title == nil {
		return
	}

	review, err := a.svc.Get(title.Id, intParam(c, "reviewId"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	if !a.authorizeOwned(c, policy.PartialUpdate, policy.Reviews, review.AuthorId) {
		return
	}

	var req service.ReviewPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		a.badRequestBody(c)
		return
	}

	dto, err := a.svc.Patch(review, req)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (a *ReviewController) delete(c *gin.Context) {
	if a.requireAuthenticated(c) == nil {
		return
	}
	title := a.resolveTitle(c)
	if title == nil {
		return
	}

	review, err := a.svc.Get(title.Id, intParam(c, "reviewId"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	if !a.authorizeOwned(c, policy.Destroy, policy.Reviews, review.AuthorId) {
		return
	}

	if err := a.svc.Delete(review); err != nil {
		a.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
