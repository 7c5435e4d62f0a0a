package handler

import (
	"github.com/gin-gonic/gin"

	"issue-tracker/internal/api/middleware"
	"issue-tracker/internal/dto"
	"issue-tracker/internal/service"
	pkgErrors "issue-tracker/pkg/errors"
	"issue-tracker/pkg/utils"
)

type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// List 任务列表
// @Summary 查询任务列表
// @Description 支持 team_id/assignee_id/status/priority/search 过滤
// @Tags 任务
// @Produce json
// @Security BearerAuth
// @Router /api/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	var query dto.TaskListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ValidationError(c, err)
		return
	}

	tasks, err := h.taskService.List(&query)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, tasks)
}

// Create 创建任务
// @Summary 创建任务 (TEAM_LEAD/ADMIN)
// @Tags 任务
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /api/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Error(c, pkgErrors.ErrUnauthorized)
		return
	}

	var req dto.TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	task, err := h.taskService.Create(actor, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Task created successfully", task)
}

// Get 任务详情
// @Summary 查询任务详情, 含评论与变更记录
// @Tags 任务
// @Produce json
// @Security BearerAuth
// @Router /api/tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.taskService.Get(c.Param("id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, task)
}

// Update 更新任务
// @Summary 更新任务字段, 状态转换按状态机校验
// @Tags 任务
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /api/tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Error(c, pkgErrors.ErrUnauthorized)
		return
	}

	var req dto.TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, err)
		return
	}

	task, err := h.taskService.Update(actor, c.Param("id"), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Task updated successfully", task)
}
