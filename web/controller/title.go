package controller

import (
	"net/http"
	"strconv"

	"github.com/Slavchick12/api-yamdb/web/policy"
	"github.com/Slavchick12/api-yamdb/web/service"

	"github.com/gin-gonic/gin"
)

// TitleController serves the title catalog: open reads with filtering,
// admin-only writes.
type TitleController struct {
	BaseController
	svc *service.TitleService
}

func NewTitleController(g *gin.RouterGroup, svc *service.TitleService) *TitleController {
	a := &TitleController{svc: svc}

	titles := g.Group("/titles")
	{
		titles.GET("", a.list)
		titles.POST("", a.create)
		titles.GET("/:id", a.retrieve)
		titles.PATCH("/:id", a.patch)
		titles.PUT("/:id", a.replace)
		titles.DELETE("/:id", a.delete)
	}
	return a
}

func (a *TitleController) list(c *gin.Context) {
	if !a.authorize(c, policy.List, policy.Titles) {
		return
	}

	filter := service.TitleFilter{
		Category: c.Query("category"),
		Genre:    c.Query("genre"),
		Name:     c.Query("name"),
	}
	if yearStr := c.Query("year"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			filter.Year = &year
		}
	}

	page, pageSize := pageParams(c, service.CatalogPageSize)
	titles, count, err := a.svc.List(filter, page, pageSize)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageResponse(c, count, page, pageSize, titles))
}

func (a *TitleController) create(c *gin.Context) {
	if !a.authorize(c, policy.Create, policy.Titles) {
		return
	}

	var req service.TitleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		a.badRequestBody(c)
		return
	}

	title, err := a.svc.Create(req)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, title)
}

func (a *TitleController) retrieve(c *gin.Context) {
	if !a.authorize(c, policy.Retrieve, policy.Titles) {
		return
	}

	title, err := a.svc.GetDTO(intParam(c, "id"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, title)
}

func (a *TitleController) patch(c *gin.Context) {
	if !a.authorize(c, policy.PartialUpdate, policy.Titles) {
		return
	}

	title, err := a.svc.Get(intParam(c, "id"))
	if err != nil {
		a.writeError(c, err)
		return
	}

	var req service.TitlePatch
	if err := c.ShouldBindJSON(&req); err != nil {
		a.badRequestBody(c)
		return
	}

	dto, err := a.svc.Patch(title, req)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// replace is PUT; titles allow full replace.
func (a *TitleController) replace(c *gin.Context) {
	if !a.authorize(c, policy.Update, policy.Titles) {
		return
	}

	title, err := a.svc.Get(intParam(c, "id"))
	if err != nil {
		a.writeError(c, err)
		return
	}

	var req service.TitleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		a.badRequestBody(c)
		return
	}

	dto, err := a.svc.Replace(title, req)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (a *TitleController) delete(c *gin.Context) {
	if !a.authorize(c, policy.Destroy, policy.Titles) {
		return
	}

	title, err := a.svc.Get(intParam(c, "id"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	if err := a.svc.Delete(title); err != nil {
		a.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
