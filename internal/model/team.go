package model

import "time"

// Team 团队模型
// MemberCount 为派生缓存: 指向该团队的活跃用户数, 由 ConsistencyService 全量重算
type Team struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	TeamLeadID   string    `json:"team_lead_id"`
	TeamLeadName string    `json:"team_lead_name,omitempty"`
	MemberCount  int       `json:"member_count"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
