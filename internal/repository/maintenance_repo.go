package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"community-portal/internal/model"
)

// MaintenanceFilter 维护记录列表过滤条件
type MaintenanceFilter struct {
	Facility   string
	RecordType string
	Status     string
	From       *time.Time // start_date >= From
	To         *time.Time // start_date < To
	Offset     int
	Limit      int
}

// MaintenanceRepository 维护记录数据访问接口
type MaintenanceRepository interface {
	Create(ctx context.Context, rec *model.MaintenanceRecord) error
	GetByID(ctx context.Context, id uint) (*model.MaintenanceRecord, error)
	List(ctx context.Context, filter MaintenanceFilter) ([]model.MaintenanceRecord, int64, error)
	Update(ctx context.Context, rec *model.MaintenanceRecord) error
	Delete(ctx context.Context, id uint) error
}

type maintenanceRepo struct {
	db *gorm.DB
}

// NewMaintenanceRepo 创建 MaintenanceRepository 实例
func NewMaintenanceRepo(db *gorm.DB) MaintenanceRepository {
	return &maintenanceRepo{db: db}
}

func (r *maintenanceRepo) Create(ctx context.Context, rec *model.MaintenanceRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *maintenanceRepo) GetByID(ctx context.Context, id uint) (*model.MaintenanceRecord, error) {
	var rec model.MaintenanceRecord
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *maintenanceRepo) List(ctx context.Context, filter MaintenanceFilter) ([]model.MaintenanceRecord, int64, error) {
	var recs []model.MaintenanceRecord
	var total int64

	db := r.db.WithContext(ctx).Model(&model.MaintenanceRecord{})
	if filter.Facility != "" {
		db = db.Where("facility = ?", filter.Facility)
	}
	if filter.RecordType != "" {
		db = db.Where("record_type = ?", filter.RecordType)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		db = db.Where("start_date >= ?", *filter.From)
	}
	if filter.To != nil {
		db = db.Where("start_date < ?", *filter.To)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := paginate(db, filter.Offset, filter.Limit).
		Order("start_date DESC, id DESC").
		Find(&recs).Error; err != nil {
		return nil, 0, err
	}

	return recs, total, nil
}

func (r *maintenanceRepo) Update(ctx context.Context, rec *model.MaintenanceRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *maintenanceRepo) Delete(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &model.MaintenanceRecord{}, id)
}
