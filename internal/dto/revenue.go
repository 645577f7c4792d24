package dto

import "github.com/shopspring/decimal"

// ── 公共收益模块 DTO ──

// CreateRevenueRequest 创建收支明细请求
type CreateRevenueRequest struct {
	Type            string           `json:"type"             binding:"required"`
	Description     string           `json:"description"      binding:"required,max=255"`
	Amount          *decimal.Decimal `json:"amount"           binding:"required"`
	TransactionDate string           `json:"transaction_date" binding:"omitempty,datetime=2006-01-02"`
	Party           *string          `json:"party"            binding:"omitempty,max=150"`
	ReportID        *uint            `json:"report_id"        binding:"omitempty,max=2147483647"`
}

// UpdateRevenueRequest 更新收支明细请求
type UpdateRevenueRequest struct {
	Type            *string          `json:"type"`
	Description     *string          `json:"description"      binding:"omitempty,max=255"`
	Amount          *decimal.Decimal `json:"amount"`
	TransactionDate *string          `json:"transaction_date" binding:"omitempty,datetime=2006-01-02"`
	Party           *string          `json:"party"            binding:"omitempty,max=150"`
	ReportID        *uint            `json:"report_id"        binding:"omitempty,max=2147483647"`
	ClearReport     bool             `json:"clear_report"`
}

// RevenueListRequest 收支明细查询参数
type RevenueListRequest struct {
	PaginationRequest
	Type     string `form:"type"`
	ReportID *uint  `form:"report_id" binding:"omitempty,max=2147483647"`
	From     string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To       string `form:"to"   binding:"omitempty,datetime=2006-01-02"`
}

// RevenueResponse 收支明细响应，金额固定两位小数
type RevenueResponse struct {
	ID              uint   `json:"id"`
	Type            string `json:"type"`
	Description     string `json:"description"`
	Amount          string `json:"amount"`
	TransactionDate string `json:"transaction_date"`
	Party           string `json:"party,omitempty"`
	ReportID        *uint  `json:"report_id,omitempty"`
}

// RevenueSummaryResponse 收支汇总
type RevenueSummaryResponse struct {
	ReportID *uint  `json:"report_id,omitempty"`
	Income   string `json:"income"`
	Expense  string `json:"expense"`
	Balance  string `json:"balance"`
}
