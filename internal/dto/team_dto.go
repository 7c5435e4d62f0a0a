package dto

import "time"

// TeamCreateRequest 创建团队请求 (仅ADMIN)
type TeamCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	TeamLeadID  string `json:"team_lead_id" binding:"required"`
}

// TeamUpdateRequest 更新团队请求 (仅ADMIN), 按字段部分更新
type TeamUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	TeamLeadID  *string `json:"team_lead_id"`
	IsActive    *bool   `json:"is_active"`
}

// TeamResponse 团队详情
type TeamResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	TeamLeadID   string    `json:"team_lead_id"`
	TeamLeadName string    `json:"team_lead_name,omitempty"`
	MemberCount  int       `json:"member_count"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// TeamSummary 团队概要 (成员列表响应中使用)
type TeamSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	TeamLeadID   string `json:"team_lead_id"`
	TeamLeadName string `json:"team_lead_name,omitempty"`
}

// TeamMemberInfo 团队成员信息
type TeamMemberInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TeamMembersResponse 团队成员列表响应
type TeamMembersResponse struct {
	Team    TeamSummary      `json:"team"`
	Members []TeamMemberInfo `json:"members"`
}
