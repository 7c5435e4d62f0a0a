package dto

import (
	"time"

	"issue-tracker/internal/model"
)

// TaskListQuery 任务列表查询
type TaskListQuery struct {
	TeamID     string `form:"team_id"`
	AssigneeID string `form:"assignee_id"`
	Status     string `form:"status" binding:"omitempty,oneof=TODO IN_PROGRESS IN_REVIEW DONE"`
	Priority   string `form:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	Search     string `form:"search"` // 可选: 按标题/描述模糊匹配
}

// TaskCreateRequest 创建任务请求 (TEAM_LEAD/ADMIN)
type TaskCreateRequest struct {
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description" binding:"required"`
	Priority       string     `json:"priority" binding:"required,oneof=LOW MEDIUM HIGH CRITICAL"`
	AssigneeID     string     `json:"assignee_id"`
	TeamID         string     `json:"team_id" binding:"required"`
	EstimatedHours *float64   `json:"estimated_hours"`
	DueDate        *time.Time `json:"due_date"`
}

// TaskUpdateRequest 更新任务请求, 按字段部分更新
// 指针区分 "未提供" 与 "提供了零值"; AssigneeID 为空串表示清除
type TaskUpdateRequest struct {
	Status         *string    `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS IN_REVIEW DONE"`
	Priority       *string    `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	AssigneeID     *string    `json:"assignee_id"`
	EstimatedHours *float64   `json:"estimated_hours"`
	ActualHours    *float64   `json:"actual_hours"`
	DueDate        *time.Time `json:"due_date"`
}

// TaskDetailResponse 任务详情, 含评论与变更记录
type TaskDetailResponse struct {
	model.Task
	Comments []*model.Comment     `json:"comments"`
	History  []*model.TaskHistory `json:"history"`
}

// TaskUpdateResponse 更新任务响应
type TaskUpdateResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	AssigneeID     string     `json:"assignee_id,omitempty"`
	AssigneeName   string     `json:"assignee_name,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	ActualHours    *float64   `json:"actual_hours,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
