package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"community-portal/internal/model"
)

// RevenueFilter 收益明细过滤条件
type RevenueFilter struct {
	Type     string
	ReportID *uint
	From     *time.Time // transaction_date >= From
	To       *time.Time // transaction_date <= To
	Offset   int
	Limit    int
}

// RevenueTotals 按收支类型汇总的金额
type RevenueTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// RevenueRepository 收益明细数据访问接口
type RevenueRepository interface {
	Create(ctx context.Context, rev *model.PublicRevenue) error
	GetByID(ctx context.Context, id uint) (*model.PublicRevenue, error)
	List(ctx context.Context, filter RevenueFilter) ([]model.PublicRevenue, int64, error)
	Update(ctx context.Context, rev *model.PublicRevenue) error
	Delete(ctx context.Context, id uint) error
	Sum(ctx context.Context, filter RevenueFilter) (*RevenueTotals, error)
}

type revenueRepo struct {
	db *gorm.DB
}

// NewRevenueRepo 创建 RevenueRepository 实例
func NewRevenueRepo(db *gorm.DB) RevenueRepository {
	return &revenueRepo{db: db}
}

func (r *revenueRepo) Create(ctx context.Context, rev *model.PublicRevenue) error {
	return r.db.WithContext(ctx).Omit("Report").Create(rev).Error
}

func (r *revenueRepo) GetByID(ctx context.Context, id uint) (*model.PublicRevenue, error) {
	var rev model.PublicRevenue
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&rev).Error
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *revenueRepo) scoped(ctx context.Context, filter RevenueFilter) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.PublicRevenue{})
	if filter.Type != "" {
		db = db.Where("type = ?", filter.Type)
	}
	if filter.ReportID != nil {
		db = db.Where("report_id = ?", *filter.ReportID)
	}
	if filter.From != nil {
		db = db.Where("transaction_date >= ?", *filter.From)
	}
	if filter.To != nil {
		db = db.Where("transaction_date <= ?", *filter.To)
	}
	return db
}

func (r *revenueRepo) List(ctx context.Context, filter RevenueFilter) ([]model.PublicRevenue, int64, error) {
	var revs []model.PublicRevenue
	var total int64

	db := r.scoped(ctx, filter)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := paginate(db, filter.Offset, filter.Limit).
		Order("transaction_date ASC, id ASC").
		Find(&revs).Error; err != nil {
		return nil, 0, err
	}

	return revs, total, nil
}

func (r *revenueRepo) Update(ctx context.Context, rev *model.PublicRevenue) error {
	return r.db.WithContext(ctx).Omit("Report").Save(rev).Error
}

func (r *revenueRepo) Delete(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &model.PublicRevenue{}, id)
}

// Sum 汇总收入与支出，分页条件被忽略
func (r *revenueRepo) Sum(ctx context.Context, filter RevenueFilter) (*RevenueTotals, error) {
	var rows []struct {
		Type  string
		Total decimal.Decimal
	}

	err := r.scoped(ctx, filter).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := &RevenueTotals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, row := range rows {
		switch row.Type {
		case model.RevenueIncome:
			totals.Income = row.Total
		case model.RevenueExpense:
			totals.Expense = row.Total
		}
	}
	return totals, nil
}
