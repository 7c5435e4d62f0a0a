package dto

import "time"

// CommentCreateRequest 创建评论请求
type CommentCreateRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentUpdateRequest 更新评论请求 (仅作者)
type CommentUpdateRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentUpdateResponse 更新评论响应
type CommentUpdateResponse struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	IsEdited  bool       `json:"is_edited"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
