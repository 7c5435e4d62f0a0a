package handler

import (
	"github.com/gin-gonic/gin"

	"issue-tracker/internal/api/middleware"
	"issue-tracker/internal/dto"
	"issue-tracker/internal/service"
	pkgErrors "issue-tracker/pkg/errors"
	"issue-tracker/pkg/utils"
)

type TeamHandler struct {
	teamService service.TeamService
}

func NewTeamHandler(teamService service.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// List 团队列表
// @Summary 查询团队列表
// @Tags 团队
// @Produce json
// @Security BearerAuth
// @Router /api/teams [get]
func (h *TeamHandler) List(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Error(c, pkgErrors.ErrUnauthorized)
		return
	}

	teams, err := h.teamService.List(actor)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, teams)
}

// Create 创建团队
// @Summary 创建团队 (仅ADMIN)
// @Tags 团队
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /api/teams [post]
func (h *TeamHandler) Create(c *gin.Context) {
	var req dto.TeamCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	team, err := h.teamService.Create(&req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Team created successfully", team)
}

// Update 更新团队
// @Summary 更新团队 (仅ADMIN)
// @Tags 团队
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /api/teams/{id} [put]
func (h *TeamHandler) Update(c *gin.Context) {
	var req dto.TeamUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	team, err := h.teamService.Update(c.Param("id"), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Team updated successfully", team)
}

// Members 团队成员列表
// @Summary 查询团队成员
// @Tags 团队
// @Produce json
// @Security BearerAuth
// @Router /api/teams/{id}/members [get]
func (h *TeamHandler) Members(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Error(c, pkgErrors.ErrUnauthorized)
		return
	}

	members, err := h.teamService.Members(actor, c.Param("id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, members)
}
