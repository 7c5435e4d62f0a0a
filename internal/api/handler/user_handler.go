package handler

import (
	"github.com/gin-gonic/gin"

	"issue-tracker/internal/api/middleware"
	"issue-tracker/internal/dto"
	"issue-tracker/internal/service"
	pkgErrors "issue-tracker/pkg/errors"
	"issue-tracker/pkg/utils"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// List 用户列表
// @Summary 分页查询用户
// @Description 支持 search/team_id/role 过滤; 非管理员仅可见活跃用户
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Router /api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Error(c, pkgErrors.ErrUnauthorized)
		return
	}

	var query dto.UserListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ValidationError(c, err)
		return
	}

	users, total, err := h.userService.List(actor, &query)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.PageSuccess(c, users, total, query.GetPage(), query.GetLimit())
}

// Create 创建用户
// @Summary 创建用户 (仅ADMIN)
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /api/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	user, err := h.userService.Create(&req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "User created successfully", user)
}

// Update 更新用户
// @Summary 更新用户 (仅ADMIN)
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /api/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	user, err := h.userService.Update(c.Param("id"), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "User updated successfully", user)
}
