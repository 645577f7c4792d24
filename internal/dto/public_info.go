package dto

import "time"

// ── 公共信息模块 DTO ──

// CreatePublicInfoRequest 创建公共信息请求
type CreatePublicInfoRequest struct {
	Title       string     `json:"title"        binding:"required,max=255"`
	Category    string     `json:"category"`
	Summary     *string    `json:"summary"`
	Content     string     `json:"content"      binding:"required"`
	Author      string     `json:"author"       binding:"omitempty,max=100"`
	PublishDate *time.Time `json:"publish_date"`
	Status      string     `json:"status"`
}

// UpdatePublicInfoRequest 更新公共信息请求（字段为空表示不修改）
type UpdatePublicInfoRequest struct {
	Title       *string    `json:"title"        binding:"omitempty,max=255"`
	Category    *string    `json:"category"`
	Summary     *string    `json:"summary"`
	Content     *string    `json:"content"`
	Author      *string    `json:"author"       binding:"omitempty,max=100"`
	PublishDate *time.Time `json:"publish_date"`
	Status      *string    `json:"status"`
}

// PublicInfoListRequest 公共信息列表查询参数
type PublicInfoListRequest struct {
	PaginationRequest
	Category string `form:"category"`
	Status   string `form:"status"`
	Keyword  string `form:"keyword" binding:"omitempty,max=100"`
}

// PublicInfoResponse 公共信息响应
type PublicInfoResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Summary     string `json:"summary,omitempty"`
	Content     string `json:"content"`
	Author      string `json:"author"`
	PublishDate string `json:"publish_date"`
	ViewsCount  int    `json:"views_count"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
