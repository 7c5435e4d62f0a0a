package dto

import "time"

// UserStats 当前用户的任务统计
type UserStats struct {
	AssignedTasks     int `json:"assigned_tasks"`
	CompletedThisWeek int `json:"completed_this_week"`
	InProgress        int `json:"in_progress"`
	Overdue           int `json:"overdue"`
}

// TeamStats 当前用户所在团队的任务统计
type TeamStats struct {
	TotalTasks int `json:"total_tasks"`
	Todo       int `json:"todo"`
	InProgress int `json:"in_progress"`
	InReview   int `json:"in_review"`
	Done       int `json:"done"`
}

// 动态类型
const (
	ActivityTaskAssigned  = "task_assigned"
	ActivityCommentAdded  = "comment_added"
	ActivityStatusChanged = "status_changed"
)

// RecentActivity 最近动态
type RecentActivity struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// DashboardStats 仪表盘统计响应
type DashboardStats struct {
	UserStats      UserStats        `json:"user_stats"`
	TeamStats      TeamStats        `json:"team_stats"`
	RecentActivity []RecentActivity `json:"recent_activity"`
}
