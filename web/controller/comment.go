package controller

import (
	"net/http"

	"github.com/Slavchick12/api-yamdb/database/model"
	"github.com/Slavchick12/api-yamdb/web/policy"
	"github.com/Slavchick12/api-yamdb/web/service"

	"github.com/gin-gonic/gin"
)

// CommentController serves comments nested under a review, which is itself
// scoped to its title. The parent chain is resolved before anything else.
type CommentController struct {
	BaseController
	svc *service.CommentService
}

func NewCommentController(g *gin.RouterGroup, svc *service.CommentService) *CommentController {
	a := &CommentController{svc: svc}

	comments := g.Group("/titles/:id/reviews/:reviewId/comments")
	{
		comments.GET("", a.list)
		comments.POST("", a.create)
		comments.GET("/:commentId", a.retrieve)
		comments.PATCH("/:commentId", a.patch)
		comments.DELETE("/:commentId", a.delete)
		comments.PUT("/:commentId", a.putNotAllowed)
	}
	return a
}

// resolveReview fetches the parent review or writes the 404.
func (a *CommentController) resolveReview(c *gin.Context) *model.Review {
	review, err := a.svc.ResolveReview(intParam(c, "id"), intParam(c, "reviewId"))
	if err != nil {
		a.writeError(c, err)
		return nil
	}
	return review
}

func (a *CommentController) list(c *gin.Context) {
	if !a.authorize(c, policy.List, policy.Comments) {
		return
	}
	review := a.resolveReview(c)
	if review == nil {
		return
	}

	page, pageSize := pageParams(c, service.CommentPageSize)
	comments, count, err := a.svc.List(review.Id, page, pageSize)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageResponse(c, count, page, pageSize, comments))
}

type commentReq struct {
	Text string `json:"text"`
}

func (a *CommentController) create(c *gin.Context) {
	if !a.authorize(c, policy.Create, policy.Comments) {
		return
	}
	review := a.resolveReview(c)
	if review == nil {
		return
	}

	var req commentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		a.badRequestBody(c)
		return
	}

	// Author and review are stamped server-side; body values are ignored.
	comment, err := a.svc.Create(review, a.currentUser(c), req.Text)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (a *CommentController) retrieve(c *gin.Context) {
	if !a.authorize(c, policy.Retrieve, policy.Comments) {
		return
	}
	review := a.resolveReview(c)
	if review == nil {
		return
	}

	comment, err := a.svc.Get(review.Id, intParam(c, "commentId"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.CommentDTOOf(comment))
}

func (a *CommentController) patch(c *gin.Context) {
	if a.requireAuthenticated(c) == nil {
		return
	}
	review := a.resolveReview(c)
	if review == nil {
		return
	}

	comment, err := a.svc.Get(review.Id, intParam(c, "commentId"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	if !a.authorizeOwned(c, policy.PartialUpdate, policy.Comments, comment.AuthorId) {
		return
	}

	var req service.CommentPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		a.badRequestBody(c)
		return
	}

	dto, err := a.svc.Patch(comment, req)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (a *CommentController) delete(c *gin.Context) {
	if a.requireAuthenticated(c) == nil {
		return
	}
	review := a.resolveReview(c)
	if review == nil {
		return
	}

	comment, err := a.svc.Get(review.Id, intParam(c, "commentId"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	if !a.authorizeOwned(c, policy.Destroy, policy.Comments, comment.AuthorId) {
		return
	}

	if err := a.svc.Delete(comment); err != nil {
		a.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
