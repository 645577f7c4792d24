package service

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"community-portal/internal/model"
	"community-portal/internal/repository"
)

// ── Mock PublicInfoRepository ──

type mockPublicInfoRepo struct {
	items     map[uint]*model.PublicInfo
	revenues  *mockRevenueRepo // GetWithRevenues 关联查询
	nextID    uint
	listCalls int
}

func newMockPublicInfoRepo() *mockPublicInfoRepo {
	return &mockPublicInfoRepo{items: make(map[uint]*model.PublicInfo), nextID: 1}
}

func (m *mockPublicInfoRepo) Create(_ context.Context, info *model.PublicInfo) error {
	if info.ID == 0 {
		info.ID = m.nextID
	}
	if info.ID >= m.nextID {
		m.nextID = info.ID + 1
	}
	m.items[info.ID] = info
	return nil
}

func (m *mockPublicInfoRepo) GetByID(_ context.Context, id uint) (*model.PublicInfo, error) {
	if info, ok := m.items[id]; ok {
		cp := *info
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPublicInfoRepo) GetWithRevenues(ctx context.Context, id uint) (*model.PublicInfo, error) {
	info, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.revenues != nil {
		revs, _, _ := m.revenues.List(ctx, repository.RevenueFilter{ReportID: &id})
		info.Revenues = revs
	}
	return info, nil
}

func (m *mockPublicInfoRepo) List(_ context.Context, filter repository.PublicInfoFilter) ([]model.PublicInfo, int64, error) {
	m.listCalls++
	var result []model.PublicInfo
	for _, info := range m.items {
		if filter.Category != "" && info.Category != filter.Category {
			continue
		}
		if filter.Status != "" && info.Status != filter.Status {
			continue
		}
		if filter.Keyword != "" && !strings.Contains(info.Title, filter.Keyword) {
			continue
		}
		result = append(result, *info)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].PublishDate.Equal(result[j].PublishDate) {
			return result[i].ID > result[j].ID
		}
		return result[i].PublishDate.After(result[j].PublishDate)
	})
	return pageOf(result, filter.Offset, filter.Limit), int64(len(result)), nil
}

func (m *mockPublicInfoRepo) Update(_ context.Context, info *model.PublicInfo) error {
	cp := *info
	m.items[info.ID] = &cp
	return nil
}

func (m *mockPublicInfoRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockPublicInfoRepo) IncrementViews(_ context.Context, id uint) error {
	info, ok := m.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	info.ViewsCount++
	return nil
}

// ── Mock MaintenanceRepository ──

type mockMaintenanceRepo struct {
	records map[uint]*model.MaintenanceRecord
	nextID  uint
}

func newMockMaintenanceRepo() *mockMaintenanceRepo {
	return &mockMaintenanceRepo{records: make(map[uint]*model.MaintenanceRecord), nextID: 1}
}

func (m *mockMaintenanceRepo) Create(_ context.Context, rec *model.MaintenanceRecord) error {
	rec.ID = m.nextID
	m.nextID++
	m.records[rec.ID] = rec
	return nil
}

func (m *mockMaintenanceRepo) GetByID(_ context.Context, id uint) (*model.MaintenanceRecord, error) {
	if rec, ok := m.records[id]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMaintenanceRepo) List(_ context.Context, filter repository.MaintenanceFilter) ([]model.MaintenanceRecord, int64, error) {
	var result []model.MaintenanceRecord
	for _, rec := range m.records {
		if filter.Facility != "" && rec.Facility != filter.Facility {
			continue
		}
		if filter.RecordType != "" && rec.RecordType != filter.RecordType {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		if filter.From != nil && rec.StartDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !rec.StartDate.Before(*filter.To) {
			continue
		}
		result = append(result, *rec)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.After(result[j].StartDate) })
	return pageOf(result, filter.Offset, filter.Limit), int64(len(result)), nil
}

func (m *mockMaintenanceRepo) Update(_ context.Context, rec *model.MaintenanceRecord) error {
	cp := *rec
	m.records[rec.ID] = &cp
	return nil
}

func (m *mockMaintenanceRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.records[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.records, id)
	return nil
}

// ── Mock RevenueRepository ──

type mockRevenueRepo struct {
	revenues map[uint]*model.PublicRevenue
	nextID   uint
}

func newMockRevenueRepo() *mockRevenueRepo {
	return &mockRevenueRepo{revenues: make(map[uint]*model.PublicRevenue), nextID: 1}
}

func (m *mockRevenueRepo) Create(_ context.Context, rev *model.PublicRevenue) error {
	rev.ID = m.nextID
	m.nextID++
	m.revenues[rev.ID] = rev
	return nil
}

func (m *mockRevenueRepo) GetByID(_ context.Context, id uint) (*model.PublicRevenue, error) {
	if rev, ok := m.revenues[id]; ok {
		cp := *rev
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRevenueRepo) match(rev *model.PublicRevenue, filter repository.RevenueFilter) bool {
	if filter.Type != "" && rev.Type != filter.Type {
		return false
	}
	if filter.ReportID != nil && (rev.ReportID == nil || *rev.ReportID != *filter.ReportID) {
		return false
	}
	if filter.From != nil && rev.TransactionDate.Before(*filter.From) {
		return false
	}
	if filter.To != nil && rev.TransactionDate.After(*filter.To) {
		return false
	}
	return true
}

func (m *mockRevenueRepo) List(_ context.Context, filter repository.RevenueFilter) ([]model.PublicRevenue, int64, error) {
	var result []model.PublicRevenue
	for _, rev := range m.revenues {
		if m.match(rev, filter) {
			result = append(result, *rev)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return pageOf(result, filter.Offset, filter.Limit), int64(len(result)), nil
}

func (m *mockRevenueRepo) Update(_ context.Context, rev *model.PublicRevenue) error {
	cp := *rev
	m.revenues[rev.ID] = &cp
	return nil
}

func (m *mockRevenueRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.revenues[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.revenues, id)
	return nil
}

func (m *mockRevenueRepo) Sum(_ context.Context, filter repository.RevenueFilter) (*repository.RevenueTotals, error) {
	totals := &repository.RevenueTotals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, rev := range m.revenues {
		if !m.match(rev, filter) {
			continue
		}
		if rev.Type == model.RevenueIncome {
			totals.Income = totals.Income.Add(rev.Amount)
		} else {
			totals.Expense = totals.Expense.Add(rev.Amount)
		}
	}
	return totals, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users     map[uint]*model.User
	nextID    uint
	createErr error // 模拟唯一约束冲突等写入错误
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, role string, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return pageOf(result, offset, limit), int64(len(result)), nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

// ── 测试辅助 ──

type mockRepos struct {
	publicInfo  *mockPublicInfoRepo
	maintenance *mockMaintenanceRepo
	revenue     *mockRevenueRepo
	user        *mockUserRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		publicInfo:  newMockPublicInfoRepo(),
		maintenance: newMockMaintenanceRepo(),
		revenue:     newMockRevenueRepo(),
		user:        newMockUserRepo(),
	}
	m.publicInfo.revenues = m.revenue
	return &repository.Repository{
		PublicInfo:  m.publicInfo,
		Maintenance: m.maintenance,
		Revenue:     m.revenue,
		User:        m.user,
	}, m
}

func pageOf[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func strPtr(s string) *string { return &s }

func uintPtr(v uint) *uint { return &v }
