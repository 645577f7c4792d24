package dto

import "time"

// ── 设施维护模块 DTO ──

// CreateMaintenanceRequest 创建维护记录请求
type CreateMaintenanceRequest struct {
	Title             string     `json:"title"              binding:"required,max=255"`
	Facility          string     `json:"facility"           binding:"required,max=100"`
	RecordType        string     `json:"record_type"        binding:"required"`
	Description       *string    `json:"description"`
	StartDate         *time.Time `json:"start_date"         binding:"required"`
	EndDate           *time.Time `json:"end_date"`
	Status            string     `json:"status"`
	ResponsiblePerson *string    `json:"responsible_person" binding:"omitempty,max=100"`
}

// UpdateMaintenanceRequest 更新维护记录请求
type UpdateMaintenanceRequest struct {
	Title             *string    `json:"title"              binding:"omitempty,max=255"`
	Facility          *string    `json:"facility"           binding:"omitempty,max=100"`
	RecordType        *string    `json:"record_type"`
	Description       *string    `json:"description"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	ClearEndDate      bool       `json:"clear_end_date"`
	Status            *string    `json:"status"`
	ResponsiblePerson *string    `json:"responsible_person" binding:"omitempty,max=100"`
}

// MaintenanceListRequest 维护记录列表查询参数
type MaintenanceListRequest struct {
	PaginationRequest
	Facility   string `form:"facility"`
	RecordType string `form:"record_type"`
	Status     string `form:"status"`
	From       string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to"   binding:"omitempty,datetime=2006-01-02"`
}

// MaintenanceResponse 维护记录响应
type MaintenanceResponse struct {
	ID                uint   `json:"id"`
	Title             string `json:"title"`
	Facility          string `json:"facility"`
	RecordType        string `json:"record_type"`
	Description       string `json:"description,omitempty"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date,omitempty"`
	Status            string `json:"status"`
	ResponsiblePerson string `json:"responsible_person,omitempty"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}
