package handler

import (
	"github.com/gin-gonic/gin"

	"issue-tracker/internal/api/middleware"
	"issue-tracker/internal/service"
	pkgErrors "issue-tracker/pkg/errors"
	"issue-tracker/pkg/utils"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Stats 仪表盘统计
// @Summary 当前用户的任务/团队统计与最近动态
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Router /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Error(c, pkgErrors.ErrUnauthorized)
		return
	}

	stats, err := h.dashboardService.Stats(actor)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, stats)
}
