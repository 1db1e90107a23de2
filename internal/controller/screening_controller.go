package controller

import (
	"wellmind_backend/internal/service"
	"wellmind_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ScreeningController struct {
	Service *service.ScreeningCatalogService
}

func NewScreeningController(svc *service.ScreeningCatalogService) *ScreeningController {
	return &ScreeningController{Service: svc}
}

// @Summary List the caller's institution screening flows
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/screening-flows [get]
func (c *ScreeningController) ListFlows(ctx *gin.Context) {
	claims := util.GetAccountFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	flows, err := c.Service.ListFlows(claims.InstitutionID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, flows)
}

// @Summary Screening flow with its active version
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Flow ID"
// @Success 200 {object} util.Response
// @Router /api/screening-flows/{id} [get]
func (c *ScreeningController) GetFlow(ctx *gin.Context) {
	detail, err := c.Service.GetFlow(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if detail == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, detail)
}

// @Summary Screening with its active version's questions and options
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Screening ID"
// @Success 200 {object} util.Response
// @Router /api/screenings/{id} [get]
func (c *ScreeningController) GetScreening(ctx *gin.Context) {
	detail, err := c.Service.GetScreening(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if detail == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, detail)
}
