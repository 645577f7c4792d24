package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 收支类型
const (
	RevenueIncome  = "income"
	RevenueExpense = "expense"
)

// AmountScale 金额保留的小数位数，与 numeric(10,2) 一致
const AmountScale = 2

// maxAmount numeric(10,2) 可表示的上限（不含）
var maxAmount = decimal.New(1, 8)

// PublicRevenue 公共收益收支明细表 — 对应 public_revenue
type PublicRevenue struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"            json:"id"`
	Type            string          `gorm:"type:varchar(10);not null"           json:"type"`
	Description     string          `gorm:"type:varchar(255);not null"          json:"description"`
	Amount          decimal.Decimal `gorm:"type:numeric(10,2);not null"         json:"amount"`
	TransactionDate time.Time       `gorm:"type:date;not null;default:CURRENT_DATE" json:"transaction_date"`
	Party           *string         `gorm:"type:varchar(150)"                   json:"party,omitempty"`
	ReportID        *uint           `gorm:"index"                               json:"report_id,omitempty"`
	BaseModel

	Report *PublicInfo `gorm:"foreignKey:ReportID;references:ID" json:"report,omitempty"`
}

// TableName 指定表名
func (PublicRevenue) TableName() string { return "public_revenue" }

// IsValidRevenueType 校验收支类型
func IsValidRevenueType(t string) bool {
	return oneOf(t, RevenueIncome, RevenueExpense)
}

// IsValidAmount 金额必须非负、至多两位小数且不超过 numeric(10,2) 的范围
func IsValidAmount(d decimal.Decimal) bool {
	if d.IsNegative() {
		return false
	}
	if !d.Equal(d.Round(AmountScale)) {
		return false
	}
	return d.LessThan(maxAmount)
}

// NormalizeAmount 将金额规整为两位小数
func NormalizeAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountScale)
}
