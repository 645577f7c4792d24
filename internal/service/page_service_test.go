package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"community-portal/internal/model"
)

func setupTestPageService(fallback bool) (PageService, *mockRepos) {
	repo, mocks := newMockRepository()
	cfg := testPortalConfig()
	cfg.SampleFallback = fallback
	return NewPageService(cfg, repo, nil, zap.NewNop()), mocks
}

func seedInfo(m *mockRepos, id uint, category, status string, published time.Time) *model.PublicInfo {
	info := &model.PublicInfo{
		ID:          id,
		Title:       "公告" + string(rune('A'+id-1)),
		Category:    category,
		Content:     "正文",
		Author:      "社区管委会",
		PublishDate: published,
		Status:      status,
	}
	m.publicInfo.Create(context.Background(), info)
	return info
}

// ── NewsFeed ──

func TestPageService_NewsFeed_PublishedNewestFirst(t *testing.T) {
	svc, mocks := setupTestPageService(true)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	seedInfo(mocks, 1, model.CategoryNews, model.InfoStatusPublished, base)
	seedInfo(mocks, 2, model.CategoryNews, model.InfoStatusPublished, base.AddDate(0, 0, 2))
	seedInfo(mocks, 3, model.CategoryNews, model.InfoStatusDraft, base.AddDate(0, 0, 5))
	seedInfo(mocks, 4, model.CategoryReport, model.InfoStatusPublished, base.AddDate(0, 0, 1))

	feed, err := svc.NewsFeed(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), feed.Total, "草稿不应出现在首页")
	assert.Equal(t, 2, feed.TotalPages)
	require.Len(t, feed.Items, 2)
	assert.Equal(t, uint(2), feed.Items[0].ID)
	assert.Equal(t, uint(4), feed.Items[1].ID)
	assert.Equal(t, "收益公示", feed.Items[1].CategoryLabel)
	assert.True(t, feed.HasNext())
	assert.False(t, feed.HasPrev())

	reports, err := svc.NewsFeed(context.Background(), model.CategoryReport, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, reports.Page, "页码小于 1 时按第 1 页处理")
	require.Len(t, reports.Items, 1)
	assert.Equal(t, uint(4), reports.Items[0].ID)
}

func TestPageService_NewsFeed_EmptyAndInvalid(t *testing.T) {
	svc, _ := setupTestPageService(true)

	feed, err := svc.NewsFeed(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Empty(t, feed.Items)
	assert.Equal(t, 1, feed.TotalPages)

	_, err = svc.NewsFeed(context.Background(), "gossip", 1)
	assert.ErrorIs(t, err, ErrValidation)
}

// ── Detail ──

func TestPageService_Detail_SampleFallback(t *testing.T) {
	svc, _ := setupTestPageService(true)

	view, err := svc.Detail(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, view.IsSample)
	assert.Equal(t, "社区公共收益第一季度公示报告发布", view.Item.Title)
	assert.Equal(t, "2023-04-15", view.Item.PublishDate)
	assert.Equal(t, 1258, view.Item.ViewsCount)
}

func TestPageService_Detail_NotFound(t *testing.T) {
	svc, _ := setupTestPageService(true)
	_, err := svc.Detail(context.Background(), 999)
	assert.ErrorIs(t, err, ErrPublicInfoNotFound)

	noFallback, _ := setupTestPageService(false)
	_, err = noFallback.Detail(context.Background(), 1)
	assert.ErrorIs(t, err, ErrPublicInfoNotFound, "关闭演示内容后默认 id 也应返回不存在")
}

func TestPageService_Detail_DraftHidden(t *testing.T) {
	svc, mocks := setupTestPageService(true)
	seedInfo(mocks, 1, model.CategoryNews, model.InfoStatusDraft, time.Now())

	_, err := svc.Detail(context.Background(), 1)
	assert.ErrorIs(t, err, ErrPublicInfoNotFound, "草稿不应回退到演示内容")
}

func TestPageService_Detail_IncrementsViewsAndSumsRevenues(t *testing.T) {
	svc, mocks := setupTestPageService(true)
	seedInfo(mocks, 7, model.CategoryReport, model.InfoStatusPublished, time.Now())
	mocks.revenue.Create(context.Background(), &model.PublicRevenue{
		Type: model.RevenueIncome, Description: "停车费", Amount: decimal.RequireFromString("1250.50"),
		TransactionDate: time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC), ReportID: uintPtr(7),
	})
	mocks.revenue.Create(context.Background(), &model.PublicRevenue{
		Type: model.RevenueExpense, Description: "绿化养护", Amount: decimal.RequireFromString("300.25"),
		TransactionDate: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), ReportID: uintPtr(7), Party: strPtr("园林公司"),
	})

	view, err := svc.Detail(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, view.IsSample)
	assert.Equal(t, 1, view.Item.ViewsCount)
	assert.Equal(t, 1, mocks.publicInfo.items[7].ViewsCount)

	require.Len(t, view.Revenues, 2)
	assert.Equal(t, "1250.50", view.Revenues[0].Amount)
	assert.Equal(t, "园林公司", view.Revenues[1].Party)
	require.NotNil(t, view.Summary)
	assert.Equal(t, "1250.50", view.Summary.Income)
	assert.Equal(t, "300.25", view.Summary.Expense)
	assert.Equal(t, "950.25", view.Summary.Balance)
}

// ── EditForm ──

func TestPageService_EditForm(t *testing.T) {
	svc, mocks := setupTestPageService(true)

	sample, err := svc.EditForm(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, sample.IsSample)
	assert.Equal(t, "社区公共收益第一季度公示报告发布 (待修改)", sample.Item.Title)
	assert.Equal(t, model.CategoryReport, sample.Item.Category)
	assert.Len(t, sample.Categories, 4)

	_, err = svc.EditForm(context.Background(), 999)
	assert.ErrorIs(t, err, ErrPublicInfoNotFound)

	seedInfo(mocks, 3, model.CategoryNotice, model.InfoStatusDraft, time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local))
	draft, err := svc.EditForm(context.Background(), 3)
	require.NoError(t, err, "编辑页应允许草稿")
	assert.Equal(t, uint(3), draft.ItemID)
	assert.Equal(t, "2024-06-01", draft.Item.Date)
	assert.Equal(t, model.InfoStatusDraft, draft.Item.Status)
}
