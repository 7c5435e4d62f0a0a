package model

import "time"

// TaskHistory 任务变更记录, 仅追加
// 每次更新调用中, 每个实际变化的字段产生一条记录
type TaskHistory struct {
	ID           string    `json:"id"`
	TaskID       string    `json:"task_id"`
	UserID       string    `json:"user_id"`
	UserName     string    `json:"user_name"`
	FieldChanged string    `json:"field_changed"`
	OldValue     *string   `json:"old_value"`
	NewValue     *string   `json:"new_value"`
	CreatedAt    time.Time `json:"created_at"`
}
