package controller

import (
	"net/http"

	"github.com/Slavchick12/api-yamdb/web/policy"
	"github.com/Slavchick12/api-yamdb/web/service"

	"github.com/gin-gonic/gin"
)

// GenreController serves the genre catalog: open reads, admin writes.
// Detail routes accept either a numeric id or a slug.
type GenreController struct {
	BaseController
	svc *service.GenreService
}

func NewGenreController(g *gin.RouterGroup, svc *service.GenreService) *GenreController {
	a := &GenreController{svc: svc}

	genres := g.Group("/genres")
	{
		genres.GET("", a.list)
		genres.POST("", a.create)
		genres.GET("/:key", a.retrieve)
		genres.PATCH("/:key", a.patch)
		genres.PUT("/:key", a.replace)
		genres.DELETE("/:key", a.delete)
	}
	return a
}

func (a *GenreController) list(c *gin.Context) {
	if !a.authorize(c, policy.List, policy.Genres) {
		return
	}

	page, pageSize := pageParams(c, service.CatalogPageSize)
	genres, count, err := a.svc.List(c.Query("search"), page, pageSize)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageResponse(c, count, page, pageSize, genres))
}

func (a *GenreController) create(c *gin.Context) {
	if !a.authorize(c, policy.Create, policy.Genres) {
		return
	}

	var req service.GenreInput
	if err := c.ShouldBindJSON(&req); err != nil {
		a.badRequestBody(c)
		return
	}

	genre, err := a.svc.Create(req)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, genre)
}

func (a *GenreController) retrieve(c *gin.Context) {
	if !a.authorize(c, policy.Retrieve, policy.Genres) {
		return
	}

	genre, err := a.svc.Get(c.Param("key"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, genre)
}

func (a *GenreController) patch(c *gin.Context) {
	if !a.authorize(c, policy.PartialUpdate, policy.Genres) {
		return
	}
	a.update(c, false)
}

func (a *GenreController) replace(c *gin.Context) {
	if !a.authorize(c, policy.Update, policy.Genres) {
		return
	}
	a.update(c, true)
}

func (a *GenreController) update(c *gin.Context, full bool) {
	genre, err := a.svc.Get(c.Param("key"))
	if err != nil {
		a.writeError(c, err)
		return
	}

	var req service.GenrePatch
	if err := c.ShouldBindJSON(&req); err != nil {
		a.badRequestBody(c)
		return
	}
	if full {
		if req.Name == nil {
			empty := ""
			req.Name = &empty
		}
		if req.Slug == nil {
			empty := ""
			req.Slug = &empty
		}
	}

	genre, err = a.svc.Update(genre, req)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, genre)
}

func (a *GenreController) delete(c *gin.Context) {
	if !a.authorize(c, policy.Destroy, policy.Genres) {
		return
	}

	genre, err := a.svc.Get(c.Param("key"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	if err := a.svc.Delete(genre); err != nil {
		a.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
