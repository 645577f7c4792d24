package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"community-portal/internal/dto"
	"community-portal/internal/model"
	"community-portal/internal/repository"
	pkgerrors "community-portal/pkg/errors"
)

// ── 公共收益模块业务错误 ──

var (
	ErrRevenueNotFound = errors.New("收支明细不存在")
	ErrReportNotFound  = errors.New("关联的公示不存在")
	ErrExportFailed    = errors.New("生成 Excel 文件失败")
)

// exportLimit 单次导出的最大行数
const exportLimit = 10000

// RevenueService 公共收益业务接口
type RevenueService interface {
	Create(ctx context.Context, req *dto.CreateRevenueRequest) (*dto.RevenueResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.RevenueResponse, error)
	List(ctx context.Context, req *dto.RevenueListRequest) ([]dto.RevenueResponse, int64, error)
	Update(ctx context.Context, id uint, req *dto.UpdateRevenueRequest) (*dto.RevenueResponse, error)
	Delete(ctx context.Context, id uint) error
	Summary(ctx context.Context, reportID *uint) (*dto.RevenueSummaryResponse, error)
	// Export 导出收支明细为 Excel，返回内容与建议文件名
	Export(ctx context.Context, req *dto.RevenueListRequest) (*bytes.Buffer, string, error)
}

type revenueService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRevenueService 创建 RevenueService 实例
func NewRevenueService(repo *repository.Repository, logger *zap.Logger) RevenueService {
	return &revenueService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *revenueService) Create(ctx context.Context, req *dto.CreateRevenueRequest) (*dto.RevenueResponse, error) {
	rev := &model.PublicRevenue{
		Type:        req.Type,
		Description: strings.TrimSpace(req.Description),
		Party:       req.Party,
		ReportID:    req.ReportID,
	}
	if req.Amount == nil {
		return nil, invalid("amount", "金额不能为空")
	}
	rev.Amount = *req.Amount

	rev.TransactionDate = today()
	if req.TransactionDate != "" {
		d, err := time.ParseInLocation(dto.DateLayout, req.TransactionDate, time.Local)
		if err != nil {
			return nil, invalid("transaction_date", "日期格式应为 YYYY-MM-DD")
		}
		rev.TransactionDate = d
	}

	if err := validateRevenue(rev); err != nil {
		return nil, err
	}
	rev.Amount = model.NormalizeAmount(rev.Amount)

	if err := s.ensureReport(ctx, rev.ReportID); err != nil {
		return nil, err
	}

	if err := s.repo.Revenue.Create(ctx, rev); err != nil {
		if pkgerrors.IsForeignKeyViolation(err) {
			return nil, ErrReportNotFound
		}
		s.logger.Error("创建收支明细失败", zap.Error(err))
		return nil, err
	}
	return toRevenueResponse(rev), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *revenueService) GetByID(ctx context.Context, id uint) (*dto.RevenueResponse, error) {
	rev, err := s.repo.Revenue.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRevenueNotFound
		}
		s.logger.Error("查询收支明细失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toRevenueResponse(rev), nil
}

// ────────────────────── List ──────────────────────

func (s *revenueService) List(ctx context.Context, req *dto.RevenueListRequest) ([]dto.RevenueResponse, int64, error) {
	filter, err := revenueFilter(req)
	if err != nil {
		return nil, 0, err
	}
	filter.Offset = req.GetOffset()
	filter.Limit = req.GetPageSize()

	revs, total, err := s.repo.Revenue.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询收支明细列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.RevenueResponse, 0, len(revs))
	for i := range revs {
		result = append(result, *toRevenueResponse(&revs[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *revenueService) Update(ctx context.Context, id uint, req *dto.UpdateRevenueRequest) (*dto.RevenueResponse, error) {
	rev, err := s.repo.Revenue.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRevenueNotFound
		}
		return nil, err
	}

	if req.Type != nil {
		rev.Type = *req.Type
	}
	if req.Description != nil {
		rev.Description = strings.TrimSpace(*req.Description)
	}
	if req.Amount != nil {
		rev.Amount = *req.Amount
	}
	if req.TransactionDate != nil {
		d, err := time.ParseInLocation(dto.DateLayout, *req.TransactionDate, time.Local)
		if err != nil {
			return nil, invalid("transaction_date", "日期格式应为 YYYY-MM-DD")
		}
		rev.TransactionDate = d
	}
	if req.Party != nil {
		rev.Party = req.Party
	}
	if req.ClearReport {
		rev.ReportID = nil
	} else if req.ReportID != nil {
		rev.ReportID = req.ReportID
	}

	if err := validateRevenue(rev); err != nil {
		return nil, err
	}
	rev.Amount = model.NormalizeAmount(rev.Amount)

	if err := s.ensureReport(ctx, rev.ReportID); err != nil {
		return nil, err
	}

	if err := s.repo.Revenue.Update(ctx, rev); err != nil {
		if pkgerrors.IsForeignKeyViolation(err) {
			return nil, ErrReportNotFound
		}
		s.logger.Error("更新收支明细失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toRevenueResponse(rev), nil
}

// ────────────────────── Delete ──────────────────────

func (s *revenueService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Revenue.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRevenueNotFound
		}
		s.logger.Error("删除收支明细失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Summary ──────────────────────

func (s *revenueService) Summary(ctx context.Context, reportID *uint) (*dto.RevenueSummaryResponse, error) {
	if err := s.ensureReport(ctx, reportID); err != nil {
		return nil, err
	}

	totals, err := s.repo.Revenue.Sum(ctx, repository.RevenueFilter{ReportID: reportID})
	if err != nil {
		s.logger.Error("汇总收支失败", zap.Error(err))
		return nil, err
	}

	resp := toSummaryResponse(totals)
	resp.ReportID = reportID
	return resp, nil
}

// ═══════════════════════════════════════════════════════════
// Export 导出收支明细为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单个 Sheet "收支明细"
//   - 第 1 行标题，第 2 行列头：日期 / 类型 / 摘要 / 金额 / 往来单位 / 关联公示
//   - 明细之后依次为收入合计、支出合计、结余

func (s *revenueService) Export(ctx context.Context, req *dto.RevenueListRequest) (*bytes.Buffer, string, error) {
	filter, err := revenueFilter(req)
	if err != nil {
		return nil, "", err
	}
	if err := s.ensureReport(ctx, filter.ReportID); err != nil {
		return nil, "", err
	}
	filter.Limit = exportLimit

	revs, _, err := s.repo.Revenue.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询导出数据失败", zap.Error(err))
		return nil, "", err
	}
	totals, err := s.repo.Revenue.Sum(ctx, filter)
	if err != nil {
		s.logger.Error("汇总导出数据失败", zap.Error(err))
		return nil, "", err
	}

	buf, err := s.buildLedger(revs, totals)
	if err != nil {
		s.logger.Error("生成 Excel 失败", zap.Error(err))
		return nil, "", ErrExportFailed
	}

	filename := fmt.Sprintf("收支明细_%s.xlsx", time.Now().Format("20060102"))
	if filter.ReportID != nil {
		filename = fmt.Sprintf("收支明细_公示%d_%s.xlsx", *filter.ReportID, time.Now().Format("20060102"))
	}
	return buf, filename, nil
}

func (s *revenueService) buildLedger(revs []model.PublicRevenue, totals *repository.RevenueTotals) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "收支明细"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "B", 8)
	f.SetColWidth(sheet, "C", "C", 36)
	f.SetColWidth(sheet, "D", "D", 14)
	f.SetColWidth(sheet, "E", "E", 20)
	f.SetColWidth(sheet, "F", "F", 10)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	amountFmt := "#,##0.00"
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &amountFmt})
	if err != nil {
		return nil, err
	}

	f.SetCellValue(sheet, "A1", "社区公共收益收支明细")
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	headers := []string{"日期", "类型", "摘要", "金额", "往来单位", "关联公示"}
	for i, h := range headers {
		f.SetCellValue(sheet, cell(i+1, 2), h)
	}
	f.SetCellStyle(sheet, cell(1, 2), cell(len(headers), 2), headerStyle)

	row := 3
	for _, rev := range revs {
		f.SetCellValue(sheet, cell(1, row), rev.TransactionDate.Format(dto.DateLayout))
		f.SetCellValue(sheet, cell(2, row), revenueTypeLabel(rev.Type))
		f.SetCellValue(sheet, cell(3, row), rev.Description)
		f.SetCellValue(sheet, cell(4, row), rev.Amount.InexactFloat64())
		if rev.Party != nil {
			f.SetCellValue(sheet, cell(5, row), *rev.Party)
		}
		if rev.ReportID != nil {
			f.SetCellValue(sheet, cell(6, row), *rev.ReportID)
		}
		row++
	}

	row++
	for _, line := range []struct {
		label  string
		amount decimal.Decimal
	}{
		{"收入合计", totals.Income},
		{"支出合计", totals.Expense},
		{"结余", totals.Income.Sub(totals.Expense)},
	} {
		f.SetCellValue(sheet, cell(3, row), line.label)
		f.SetCellValue(sheet, cell(4, row), line.amount.InexactFloat64())
		row++
	}
	f.SetCellStyle(sheet, cell(4, 3), cell(4, row-1), amountStyle)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ── 辅助函数 ──

// ensureReport 关联公示存在性校验，reportID 为空时跳过
func (s *revenueService) ensureReport(ctx context.Context, reportID *uint) error {
	if reportID == nil {
		return nil
	}
	if _, err := s.repo.PublicInfo.GetByID(ctx, *reportID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReportNotFound
		}
		return err
	}
	return nil
}

func revenueFilter(req *dto.RevenueListRequest) (repository.RevenueFilter, error) {
	filter := repository.RevenueFilter{Type: req.Type, ReportID: req.ReportID}
	if filter.Type != "" && !model.IsValidRevenueType(filter.Type) {
		return filter, invalid("type", "不支持的收支类型 %q", filter.Type)
	}
	if req.From != "" {
		from, err := time.ParseInLocation(dto.DateLayout, req.From, time.Local)
		if err != nil {
			return filter, invalid("from", "日期格式应为 YYYY-MM-DD")
		}
		filter.From = &from
	}
	if req.To != "" {
		to, err := time.ParseInLocation(dto.DateLayout, req.To, time.Local)
		if err != nil {
			return filter, invalid("to", "日期格式应为 YYYY-MM-DD")
		}
		filter.To = &to
	}
	return filter, nil
}

func validateRevenue(rev *model.PublicRevenue) error {
	if !model.IsValidRevenueType(rev.Type) {
		return invalid("type", "不支持的收支类型 %q", rev.Type)
	}
	if rev.Description == "" {
		return invalid("description", "摘要不能为空")
	}
	if rev.Amount.IsNegative() {
		return invalid("amount", "金额不能为负数")
	}
	if !model.IsValidAmount(rev.Amount) {
		return invalid("amount", "金额最多两位小数且小于 100000000")
	}
	return nil
}

func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func revenueTypeLabel(t string) string {
	if t == model.RevenueIncome {
		return "收入"
	}
	return "支出"
}

func toSummaryResponse(totals *repository.RevenueTotals) *dto.RevenueSummaryResponse {
	return &dto.RevenueSummaryResponse{
		Income:  totals.Income.StringFixed(model.AmountScale),
		Expense: totals.Expense.StringFixed(model.AmountScale),
		Balance: totals.Income.Sub(totals.Expense).StringFixed(model.AmountScale),
	}
}

func toRevenueResponse(rev *model.PublicRevenue) *dto.RevenueResponse {
	resp := &dto.RevenueResponse{
		ID:              rev.ID,
		Type:            rev.Type,
		Description:     rev.Description,
		Amount:          rev.Amount.StringFixed(model.AmountScale),
		TransactionDate: rev.TransactionDate.Format(dto.DateLayout),
		ReportID:        rev.ReportID,
	}
	if rev.Party != nil {
		resp.Party = *rev.Party
	}
	return resp
}
