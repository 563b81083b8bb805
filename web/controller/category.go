package controller

import (
	"net/http"

	"github.com/Slavchick12/api-yamdb/web/policy"
	"github.com/Slavchick12/api-yamdb/web/service"

	"github.com/gin-gonic/gin"
)

// CategoryController serves the category catalog: open reads, admin writes.
// Detail routes accept either a numeric id or a slug.
type CategoryController struct {
	BaseController
	svc *service.CategoryService
}

func NewCategoryController(g *gin.RouterGroup, svc *service.CategoryService) *CategoryController {
	a := &CategoryController{svc: svc}

	categories := g.Group("/categories")
	{
		categories.GET("", a.list)
		categories.POST("", a.create)
		categories.GET("/:key", a.retrieve)
		categories.PATCH("/:key", a.patch)
		categories.PUT("/:key", a.replace)
		categories.DELETE("/:key", a.delete)
	}
	return a
}

func (a *CategoryController) list(c *gin.Context) {
	if !a.authorize(c, policy.List, policy.Categories) {
		return
	}

	page, pageSize := pageParams(c, service.CatalogPageSize)
	categories, count, err := a.svc.List(c.Query("search"), page, pageSize)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageResponse(c, count, page, pageSize, categories))
}

func (a *CategoryController) create(c *gin.Context) {
	if !a.authorize(c, policy.Create, policy.Categories) {
		return
	}

	var req service.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		a.badRequestBody(c)
		return
	}

	category, err := a.svc.Create(req)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (a *CategoryController) retrieve(c *gin.Context) {
	if !a.authorize(c, policy.Retrieve, policy.Categories) {
		return
	}

	category, err := a.svc.Get(c.Param("key"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (a *CategoryController) patch(c *gin.Context) {
	if !a.authorize(c, policy.PartialUpdate, policy.Categories) {
		return
	}
	a.update(c, false)
}

// replace is PUT; categories allow full replace (only users, reviews and
// comments reject it).
func (a *CategoryController) replace(c *gin.Context) {
	if !a.authorize(c, policy.Update, policy.Categories) {
		return
	}
	a.update(c, true)
}

func (a *CategoryController) update(c *gin.Context, full bool) {
	category, err := a.svc.Get(c.Param("key"))
	if err != nil {
		a.writeError(c, err)
		return
	}

	var req service.CategoryPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		a.badRequestBody(c)
		return
	}
	if full {
		// PUT resets omitted fields.
		if req.Name == nil {
			empty := ""
			req.Name = &empty
		}
		if req.Slug == nil {
			empty := ""
			req.Slug = &empty
		}
	}

	category, err = a.svc.Update(category, req)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (a *CategoryController) delete(c *gin.Context) {
	if !a.authorize(c, policy.Destroy, policy.Categories) {
		return
	}

	category, err := a.svc.Get(c.Param("key"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	if err := a.svc.Delete(category); err != nil {
		a.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
