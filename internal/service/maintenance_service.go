package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"community-portal/internal/dto"
	"community-portal/internal/model"
	"community-portal/internal/repository"
)

// ── 设施维护模块业务错误 ──

var ErrMaintenanceNotFound = errors.New("维护记录不存在")

// 无结束时间的维护在日历中默认占用时长
const defaultMaintenanceDuration = time.Hour

// calendarLimit 日历订阅最多输出的记录数
const calendarLimit = 500

// MaintenanceService 设施维护业务接口
type MaintenanceService interface {
	Create(ctx context.Context, req *dto.CreateMaintenanceRequest) (*dto.MaintenanceResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.MaintenanceResponse, error)
	List(ctx context.Context, req *dto.MaintenanceListRequest) ([]dto.MaintenanceResponse, int64, error)
	Update(ctx context.Context, id uint, req *dto.UpdateMaintenanceRequest) (*dto.MaintenanceResponse, error)
	Delete(ctx context.Context, id uint) error
	// Calendar 导出 iCalendar (RFC 5545) 订阅内容
	Calendar(ctx context.Context, facility string) (string, error)
}

type maintenanceService struct {
	repo     *repository.Repository
	siteName string
	logger   *zap.Logger
}

// NewMaintenanceService 创建 MaintenanceService 实例
func NewMaintenanceService(siteName string, repo *repository.Repository, logger *zap.Logger) MaintenanceService {
	return &maintenanceService{repo: repo, siteName: siteName, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *maintenanceService) Create(ctx context.Context, req *dto.CreateMaintenanceRequest) (*dto.MaintenanceResponse, error) {
	rec := &model.MaintenanceRecord{
		Title:             strings.TrimSpace(req.Title),
		Facility:          strings.TrimSpace(req.Facility),
		RecordType:        req.RecordType,
		Description:       req.Description,
		EndDate:           req.EndDate,
		Status:            req.Status,
		ResponsiblePerson: req.ResponsiblePerson,
	}
	if req.StartDate != nil {
		rec.StartDate = *req.StartDate
	}
	if rec.Status == "" {
		rec.Status = model.MaintenanceScheduled
	}

	if err := validateMaintenance(rec); err != nil {
		return nil, err
	}

	if err := s.repo.Maintenance.Create(ctx, rec); err != nil {
		s.logger.Error("创建维护记录失败", zap.Error(err))
		return nil, err
	}
	return toMaintenanceResponse(rec), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *maintenanceService) GetByID(ctx context.Context, id uint) (*dto.MaintenanceResponse, error) {
	rec, err := s.repo.Maintenance.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaintenanceNotFound
		}
		s.logger.Error("查询维护记录失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toMaintenanceResponse(rec), nil
}

// ────────────────────── List ──────────────────────

func (s *maintenanceService) List(ctx context.Context, req *dto.MaintenanceListRequest) ([]dto.MaintenanceResponse, int64, error) {
	filter := repository.MaintenanceFilter{
		Facility:   strings.TrimSpace(req.Facility),
		RecordType: req.RecordType,
		Status:     req.Status,
		Offset:     req.GetOffset(),
		Limit:      req.GetPageSize(),
	}
	if filter.RecordType != "" && !model.IsValidRecordType(filter.RecordType) {
		return nil, 0, invalid("record_type", "不支持的记录类型 %q", filter.RecordType)
	}
	if filter.Status != "" && !model.IsValidMaintenanceStatus(filter.Status) {
		return nil, 0, invalid("status", "不支持的状态 %q", filter.Status)
	}

	// from/to 为闭区间日期，to 需延后一天
	if req.From != "" {
		from, err := time.ParseInLocation(dto.DateLayout, req.From, time.Local)
		if err != nil {
			return nil, 0, invalid("from", "日期格式应为 YYYY-MM-DD")
		}
		filter.From = &from
	}
	if req.To != "" {
		to, err := time.ParseInLocation(dto.DateLayout, req.To, time.Local)
		if err != nil {
			return nil, 0, invalid("to", "日期格式应为 YYYY-MM-DD")
		}
		to = to.AddDate(0, 0, 1)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, 0, invalid("to", "结束日期不能早于开始日期")
	}

	recs, total, err := s.repo.Maintenance.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询维护记录列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.MaintenanceResponse, 0, len(recs))
	for i := range recs {
		result = append(result, *toMaintenanceResponse(&recs[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *maintenanceService) Update(ctx context.Context, id uint, req *dto.UpdateMaintenanceRequest) (*dto.MaintenanceResponse, error) {
	rec, err := s.repo.Maintenance.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaintenanceNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		rec.Title = strings.TrimSpace(*req.Title)
	}
	if req.Facility != nil {
		rec.Facility = strings.TrimSpace(*req.Facility)
	}
	if req.RecordType != nil {
		rec.RecordType = *req.RecordType
	}
	if req.Description != nil {
		rec.Description = req.Description
	}
	if req.StartDate != nil {
		rec.StartDate = *req.StartDate
	}
	if req.ClearEndDate {
		rec.EndDate = nil
	} else if req.EndDate != nil {
		rec.EndDate = req.EndDate
	}
	if req.Status != nil {
		rec.Status = *req.Status
	}
	if req.ResponsiblePerson != nil {
		rec.ResponsiblePerson = req.ResponsiblePerson
	}

	if err := validateMaintenance(rec); err != nil {
		return nil, err
	}

	if err := s.repo.Maintenance.Update(ctx, rec); err != nil {
		s.logger.Error("更新维护记录失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toMaintenanceResponse(rec), nil
}

// ────────────────────── Delete ──────────────────────

func (s *maintenanceService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Maintenance.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMaintenanceNotFound
		}
		s.logger.Error("删除维护记录失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ═══════════════════════════════════════════════════════════
// Calendar 导出维护日历
// ═══════════════════════════════════════════════════════════
//
//   - 每条维护记录对应一个 VEVENT，UID 为 maintenance-<id>@community-portal
//   - 无结束时间时按开始时间 + 1 小时输出
//   - facility 非空时只导出该设施的记录

func (s *maintenanceService) Calendar(ctx context.Context, facility string) (string, error) {
	recs, _, err := s.repo.Maintenance.List(ctx, repository.MaintenanceFilter{
		Facility: strings.TrimSpace(facility),
		Limit:    calendarLimit,
	})
	if err != nil {
		s.logger.Error("查询维护日历数据失败", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//community-portal//maintenance//ZH")
	cal.SetXWRCalName(s.siteName + " 设施维护")

	now := time.Now()
	for i := range recs {
		rec := &recs[i]
		evt := cal.AddEvent(fmt.Sprintf("maintenance-%d@community-portal", rec.ID))
		evt.SetDtStampTime(now)
		if !rec.UpdatedAt.IsZero() {
			evt.SetModifiedAt(rec.UpdatedAt)
		}
		evt.SetStartAt(rec.StartDate)
		if rec.EndDate != nil {
			evt.SetEndAt(*rec.EndDate)
		} else {
			evt.SetEndAt(rec.StartDate.Add(defaultMaintenanceDuration))
		}
		evt.SetSummary(fmt.Sprintf("[%s] %s", recordTypeLabel(rec.RecordType), rec.Title))
		evt.SetLocation(rec.Facility)
		evt.SetStatus(eventStatus(rec.Status))
		evt.AddProperty(ics.ComponentPropertyCategories, rec.RecordType)

		var desc []string
		if rec.Description != nil && *rec.Description != "" {
			desc = append(desc, *rec.Description)
		}
		if rec.ResponsiblePerson != nil && *rec.ResponsiblePerson != "" {
			desc = append(desc, "负责人："+*rec.ResponsiblePerson)
		}
		if len(desc) > 0 {
			evt.SetDescription(strings.Join(desc, "\n"))
		}
	}

	return cal.Serialize(), nil
}

// ── 辅助函数 ──

func validateMaintenance(rec *model.MaintenanceRecord) error {
	if rec.Title == "" {
		return invalid("title", "标题不能为空")
	}
	if rec.Facility == "" {
		return invalid("facility", "设施不能为空")
	}
	if !model.IsValidRecordType(rec.RecordType) {
		return invalid("record_type", "不支持的记录类型 %q", rec.RecordType)
	}
	if !model.IsValidMaintenanceStatus(rec.Status) {
		return invalid("status", "不支持的状态 %q", rec.Status)
	}
	if rec.StartDate.IsZero() {
		return invalid("start_date", "开始时间不能为空")
	}
	if !rec.PeriodValid() {
		return invalid("end_date", "结束时间不能早于开始时间")
	}
	return nil
}

func recordTypeLabel(t string) string {
	if t == model.RecordTypeRepair {
		return "维修"
	}
	return "保养"
}

func eventStatus(status string) ics.ObjectStatus {
	switch status {
	case model.MaintenanceCompleted, model.MaintenanceInProgress:
		return ics.ObjectStatusConfirmed
	default:
		return ics.ObjectStatusTentative
	}
}

func toMaintenanceResponse(rec *model.MaintenanceRecord) *dto.MaintenanceResponse {
	resp := &dto.MaintenanceResponse{
		ID:         rec.ID,
		Title:      rec.Title,
		Facility:   rec.Facility,
		RecordType: rec.RecordType,
		StartDate:  rec.StartDate.Format(time.RFC3339),
		Status:     rec.Status,
		CreatedAt:  rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  rec.UpdatedAt.Format(time.RFC3339),
	}
	if rec.Description != nil {
		resp.Description = *rec.Description
	}
	if rec.EndDate != nil {
		resp.EndDate = rec.EndDate.Format(time.RFC3339)
	}
	if rec.ResponsiblePerson != nil {
		resp.ResponsiblePerson = *rec.ResponsiblePerson
	}
	return resp
}
