package repository

import (
	"context"

	"gorm.io/gorm"

	"community-portal/internal/model"
)

// PublicInfoFilter 公共信息列表过滤条件
type PublicInfoFilter struct {
	Category string
	Status   string
	Keyword  string // 标题/摘要模糊匹配
	Offset   int
	Limit    int
}

// PublicInfoRepository 公共信息数据访问接口
type PublicInfoRepository interface {
	Create(ctx context.Context, info *model.PublicInfo) error
	GetByID(ctx context.Context, id uint) (*model.PublicInfo, error)
	GetWithRevenues(ctx context.Context, id uint) (*model.PublicInfo, error)
	List(ctx context.Context, filter PublicInfoFilter) ([]model.PublicInfo, int64, error)
	Update(ctx context.Context, info *model.PublicInfo) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
}

type publicInfoRepo struct {
	db *gorm.DB
}

// NewPublicInfoRepo 创建 PublicInfoRepository 实例
func NewPublicInfoRepo(db *gorm.DB) PublicInfoRepository {
	return &publicInfoRepo{db: db}
}

func (r *publicInfoRepo) Create(ctx context.Context, info *model.PublicInfo) error {
	return r.db.WithContext(ctx).Create(info).Error
}

func (r *publicInfoRepo) GetByID(ctx context.Context, id uint) (*model.PublicInfo, error) {
	var info model.PublicInfo
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&info).Error
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *publicInfoRepo) GetWithRevenues(ctx context.Context, id uint) (*model.PublicInfo, error) {
	var info model.PublicInfo
	err := r.db.WithContext(ctx).
		Preload("Revenues", func(db *gorm.DB) *gorm.DB {
			return db.Order("transaction_date ASC, id ASC")
		}).
		Where("id = ?", id).
		First(&info).Error
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *publicInfoRepo) List(ctx context.Context, filter PublicInfoFilter) ([]model.PublicInfo, int64, error) {
	var items []model.PublicInfo
	var total int64

	db := r.db.WithContext(ctx).Model(&model.PublicInfo{})
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		db = db.Where("title ILIKE ? OR summary ILIKE ?", like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := paginate(db, filter.Offset, filter.Limit).
		Order("publish_date DESC, id DESC").
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// publicInfoEditable Update 可写列；views_count 只由 IncrementViews 原子累加
var publicInfoEditable = []string{
	"title", "category", "summary", "content", "author", "publish_date", "status", "updated_at",
}

func (r *publicInfoRepo) Update(ctx context.Context, info *model.PublicInfo) error {
	res := r.db.WithContext(ctx).
		Model(info).
		Select(publicInfoEditable).
		Updates(info)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *publicInfoRepo) Delete(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &model.PublicInfo{}, id)
}

// IncrementViews 原子递增浏览量，不触碰 updated_at
func (r *publicInfoRepo) IncrementViews(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&model.PublicInfo{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
