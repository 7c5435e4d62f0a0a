package handler

import (
	"github.com/gin-gonic/gin"

	"issue-tracker/internal/api/middleware"
	"issue-tracker/internal/dto"
	"issue-tracker/internal/service"
	pkgErrors "issue-tracker/pkg/errors"
	"issue-tracker/pkg/utils"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login 登录
// @Summary 用户登录
// @Description 邮箱+密码登录, 返回访问/刷新Token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录请求"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Login successful", resp)
}

// Refresh 刷新Token
// @Summary 刷新访问Token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "刷新Token请求"
// @Router /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	resp, err := h.authService.RefreshToken(req.RefreshToken)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, resp)
}

// GetMe 获取当前用户信息
// @Summary 获取当前登录用户信息
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Router /api/auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Error(c, pkgErrors.ErrUnauthorized)
		return
	}

	// 返回存储中的最新信息, 而非Token快照
	me, err := h.authService.Me(actor.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, me)
}
