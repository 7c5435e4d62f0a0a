package handler

import (
	"github.com/gin-gonic/gin"

	"issue-tracker/internal/api/middleware"
	"issue-tracker/internal/dto"
	"issue-tracker/internal/service"
	pkgErrors "issue-tracker/pkg/errors"
	"issue-tracker/pkg/utils"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// Create 创建评论
// @Summary 在任务下添加评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /api/tasks/{taskId}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Error(c, pkgErrors.ErrUnauthorized)
		return
	}

	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, pkgErrors.ErrValidation.WithMessage("Comment content is required"))
		return
	}

	comment, err := h.commentService.Create(actor, c.Param("id"), req.Content)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Comment added successfully", comment)
}

// Update 更新评论
// @Summary 编辑自己的评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /api/comments/{id} [put]
func (h *CommentHandler) Update(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Error(c, pkgErrors.ErrUnauthorized)
		return
	}

	var req dto.CommentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, pkgErrors.ErrValidation.WithMessage("Comment content is required"))
		return
	}

	comment, err := h.commentService.Update(actor, c.Param("id"), req.Content)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Comment updated successfully", comment)
}

// Delete 删除评论
// @Summary 删除评论 (作者或 TEAM_LEAD/ADMIN)
// @Tags 评论
// @Produce json
// @Security BearerAuth
// @Router /api/comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Error(c, pkgErrors.ErrUnauthorized)
		return
	}

	if err := h.commentService.Delete(actor, c.Param("id")); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Message(c, "Comment deleted successfully")
}
