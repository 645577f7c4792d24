package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"community-portal/config"
	"community-portal/internal/dto"
	"community-portal/internal/model"
	"community-portal/internal/repository"
)

// categoryLabels 分类中文名，顺序即编辑页下拉顺序
var categoryLabels = []dto.CategoryOption{
	{Value: model.CategoryNews, Label: "社区新闻"},
	{Value: model.CategoryReport, Label: "收益公示"},
	{Value: model.CategoryNotice, Label: "通知公告"},
	{Value: model.CategorySafety, Label: "安全提示"},
}

// Categories 全部分类选项
func Categories() []dto.CategoryOption {
	return append([]dto.CategoryOption(nil), categoryLabels...)
}

// CategoryLabel 返回分类的中文名，未知分类原样返回
func CategoryLabel(category string) string {
	for _, c := range categoryLabels {
		if c.Value == category {
			return c.Label
		}
	}
	return category
}

// PageService 门户页面业务接口
type PageService interface {
	// NewsFeed 首页已发布信息列表，按发布时间倒序
	NewsFeed(ctx context.Context, category string, page int) (*dto.NewsFeed, error)
	// Detail 详情页，仅展示已发布条目并累加浏览量
	Detail(ctx context.Context, id uint) (*dto.DetailView, error)
	// EditForm 编辑页，任意状态均可编辑
	EditForm(ctx context.Context, id uint) (*dto.EditView, error)
}

type pageService struct {
	repo   *repository.Repository
	cache  Cache
	portal config.PortalConfig
	logger *zap.Logger
}

// NewPageService 创建 PageService 实例，cache 可为 nil
func NewPageService(portal config.PortalConfig, repo *repository.Repository, cache Cache, logger *zap.Logger) PageService {
	return &pageService{repo: repo, cache: cache, portal: portal, logger: logger}
}

// ────────────────────── NewsFeed ──────────────────────

func (s *pageService) NewsFeed(ctx context.Context, category string, page int) (*dto.NewsFeed, error) {
	category = strings.TrimSpace(category)
	if category != "" && !model.IsValidCategory(category) {
		return nil, invalid("category", "不支持的分类 %q", category)
	}
	if page < 1 {
		page = 1
	}

	key := feedCacheKey(category, page)
	if s.cache != nil {
		var cached dto.NewsFeed
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("读取新闻列表缓存失败", zap.String("key", key), zap.Error(err))
		} else if hit {
			return &cached, nil
		}
	}

	size := s.portal.FeedPageSize
	items, total, err := s.repo.PublicInfo.List(ctx, repository.PublicInfoFilter{
		Category: category,
		Status:   model.InfoStatusPublished,
		Offset:   (page - 1) * size,
		Limit:    size,
	})
	if err != nil {
		s.logger.Error("查询新闻列表失败", zap.Error(err))
		return nil, err
	}

	feed := &dto.NewsFeed{
		Items:      make([]dto.NewsItem, 0, len(items)),
		Category:   category,
		Page:       page,
		TotalPages: int((total + int64(size) - 1) / int64(size)),
		Total:      total,
	}
	if feed.TotalPages == 0 {
		feed.TotalPages = 1
	}
	for i := range items {
		feed.Items = append(feed.Items, toNewsItem(&items[i]))
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, feed, s.portal.FeedCacheTTL); err != nil {
			s.logger.Warn("写入新闻列表缓存失败", zap.String("key", key), zap.Error(err))
		}
	}
	return feed, nil
}

// ────────────────────── Detail ──────────────────────

func (s *pageService) Detail(ctx context.Context, id uint) (*dto.DetailView, error) {
	info, err := s.repo.PublicInfo.GetWithRevenues(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if s.useSample(id) {
				return &dto.DetailView{Item: toDetailItem(sampleItem()), IsSample: true}, nil
			}
			return nil, ErrPublicInfoNotFound
		}
		s.logger.Error("查询详情失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	if !info.IsPublished() {
		return nil, ErrPublicInfoNotFound
	}

	// 浏览量累加失败不影响页面展示
	if err := s.repo.PublicInfo.IncrementViews(ctx, id); err != nil {
		s.logger.Warn("累加浏览量失败", zap.Uint("id", id), zap.Error(err))
	} else {
		info.ViewsCount++
	}

	view := &dto.DetailView{Item: toDetailItem(info)}
	if len(info.Revenues) > 0 {
		income, expense := decimal.Zero, decimal.Zero
		for _, rev := range info.Revenues {
			view.Revenues = append(view.Revenues, dto.RevenueLine{
				Date:        rev.TransactionDate.Format(dto.DateLayout),
				Type:        rev.Type,
				TypeLabel:   revenueTypeLabel(rev.Type),
				Description: rev.Description,
				Party:       deref(rev.Party),
				Amount:      rev.Amount.StringFixed(model.AmountScale),
			})
			if rev.Type == model.RevenueIncome {
				income = income.Add(rev.Amount)
			} else {
				expense = expense.Add(rev.Amount)
			}
		}
		view.Summary = toSummaryResponse(&repository.RevenueTotals{Income: income, Expense: expense})
		view.Summary.ReportID = &info.ID
	}
	return view, nil
}

// ────────────────────── EditForm ──────────────────────

func (s *pageService) EditForm(ctx context.Context, id uint) (*dto.EditView, error) {
	info, err := s.repo.PublicInfo.GetByID(ctx, id)
	isSample := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询编辑条目失败", zap.Uint("id", id), zap.Error(err))
			return nil, err
		}
		if !s.useSample(id) {
			return nil, ErrPublicInfoNotFound
		}
		info = sampleItem()
		info.Title += sampleEditSuffix
		isSample = true
	}

	return &dto.EditView{
		ItemID: id,
		Item: dto.EditItem{
			ID:       info.ID,
			Title:    info.Title,
			Category: info.Category,
			Author:   info.Author,
			Date:     info.PublishDate.Format(dto.DateLayout),
			Summary:  deref(info.Summary),
			Content:  info.Content,
			Status:   info.Status,
		},
		Categories: Categories(),
		IsSample:   isSample,
	}, nil
}

// ── 辅助函数 ──

func (s *pageService) useSample(id uint) bool {
	return s.portal.SampleFallback && id == sampleItemID
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func toNewsItem(info *model.PublicInfo) dto.NewsItem {
	return dto.NewsItem{
		ID:            info.ID,
		Title:         info.Title,
		Category:      info.Category,
		CategoryLabel: CategoryLabel(info.Category),
		Summary:       deref(info.Summary),
		Author:        info.Author,
		PublishDate:   info.PublishDate.Format(dto.DateLayout),
		ViewsCount:    info.ViewsCount,
	}
}

func toDetailItem(info *model.PublicInfo) dto.DetailItem {
	return dto.DetailItem{
		ID:            info.ID,
		Title:         info.Title,
		Category:      info.Category,
		CategoryLabel: CategoryLabel(info.Category),
		Summary:       deref(info.Summary),
		Content:       info.Content,
		Author:        info.Author,
		PublishDate:   info.PublishDate.Format(dto.DateLayout),
		ViewsCount:    info.ViewsCount,
	}
}
