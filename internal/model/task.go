package model

import "time"

// Task 任务模型
// ReporterID 创建后不可变; 各 *_name 冗余字段随引用实体更新
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	AssigneeID     string     `json:"assignee_id,omitempty"`
	AssigneeName   string     `json:"assignee_name,omitempty"`
	AssigneeEmail  string     `json:"assignee_email,omitempty"`
	ReporterID     string     `json:"reporter_id"`
	ReporterName   string     `json:"reporter_name,omitempty"`
	TeamID         string     `json:"team_id"`
	TeamName       string     `json:"team_name,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	ActualHours    *float64   `json:"actual_hours,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
