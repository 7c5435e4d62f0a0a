package dto

// UserListQuery 用户列表查询
type UserListQuery struct {
	PageQuery
	Search string `form:"search"`  // 可选: 按名称/邮箱模糊匹配
	TeamID string `form:"team_id"` // 可选: 按团队过滤
	Role   string `form:"role" binding:"omitempty,oneof=ADMIN TEAM_LEAD USER"`
}

// UserCreateRequest 创建用户请求 (仅ADMIN)
type UserCreateRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=ADMIN TEAM_LEAD USER"`
	TeamID   string `json:"team_id"`
}

// UserUpdateRequest 更新用户请求 (仅ADMIN), 按字段部分更新
type UserUpdateRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Role     *string `json:"role" binding:"omitempty,oneof=ADMIN TEAM_LEAD USER"`
	TeamID   *string `json:"team_id"`
	IsActive *bool   `json:"is_active"`
}

// PublicUser 对外的用户信息, 不含敏感字段
type PublicUser struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	TeamID         string `json:"team_id,omitempty"`
	TeamName       string `json:"team_name,omitempty"`
	IsActive       bool   `json:"is_active"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}
