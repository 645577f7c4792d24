package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"community-portal/config"
	"community-portal/internal/dto"
	"community-portal/internal/model"
	"community-portal/internal/repository"
)

// ── 公共信息模块业务错误 ──

var ErrPublicInfoNotFound = errors.New("公共信息不存在")

// PublicInfoService 公共信息业务接口
type PublicInfoService interface {
	Create(ctx context.Context, req *dto.CreatePublicInfoRequest) (*dto.PublicInfoResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.PublicInfoResponse, error)
	List(ctx context.Context, req *dto.PublicInfoListRequest) ([]dto.PublicInfoResponse, int64, error)
	Update(ctx context.Context, id uint, req *dto.UpdatePublicInfoRequest) (*dto.PublicInfoResponse, error)
	Delete(ctx context.Context, id uint) error
}

type publicInfoService struct {
	repo   *repository.Repository
	cache  Cache
	portal config.PortalConfig
	logger *zap.Logger
}

// NewPublicInfoService 创建 PublicInfoService 实例，cache 可为 nil
func NewPublicInfoService(portal config.PortalConfig, repo *repository.Repository, cache Cache, logger *zap.Logger) PublicInfoService {
	return &publicInfoService{repo: repo, cache: cache, portal: portal, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *publicInfoService) Create(ctx context.Context, req *dto.CreatePublicInfoRequest) (*dto.PublicInfoResponse, error) {
	info := &model.PublicInfo{
		Title:    strings.TrimSpace(req.Title),
		Category: req.Category,
		Summary:  req.Summary,
		Content:  req.Content,
		Author:   strings.TrimSpace(req.Author),
		Status:   req.Status,
	}
	if info.Category == "" {
		info.Category = model.CategoryNews
	}
	if info.Status == "" {
		info.Status = model.InfoStatusPublished
	}
	if info.Author == "" {
		info.Author = s.portal.DefaultAuthor
	}
	if req.PublishDate != nil {
		info.PublishDate = *req.PublishDate
	} else {
		info.PublishDate = time.Now()
	}

	if err := validatePublicInfo(info); err != nil {
		return nil, err
	}

	if err := s.repo.PublicInfo.Create(ctx, info); err != nil {
		s.logger.Error("创建公共信息失败", zap.Error(err))
		return nil, err
	}

	s.invalidateFeed(ctx)
	return toPublicInfoResponse(info), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *publicInfoService) GetByID(ctx context.Context, id uint) (*dto.PublicInfoResponse, error) {
	info, err := s.repo.PublicInfo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPublicInfoNotFound
		}
		s.logger.Error("查询公共信息失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toPublicInfoResponse(info), nil
}

// ────────────────────── List ──────────────────────

func (s *publicInfoService) List(ctx context.Context, req *dto.PublicInfoListRequest) ([]dto.PublicInfoResponse, int64, error) {
	if req.Category != "" && !model.IsValidCategory(req.Category) {
		return nil, 0, invalid("category", "不支持的分类 %q", req.Category)
	}
	if req.Status != "" && !model.IsValidInfoStatus(req.Status) {
		return nil, 0, invalid("status", "不支持的状态 %q", req.Status)
	}

	items, total, err := s.repo.PublicInfo.List(ctx, repository.PublicInfoFilter{
		Category: req.Category,
		Status:   req.Status,
		Keyword:  strings.TrimSpace(req.Keyword),
		Offset:   req.GetOffset(),
		Limit:    req.GetPageSize(),
	})
	if err != nil {
		s.logger.Error("查询公共信息列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.PublicInfoResponse, 0, len(items))
	for i := range items {
		result = append(result, *toPublicInfoResponse(&items[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *publicInfoService) Update(ctx context.Context, id uint, req *dto.UpdatePublicInfoRequest) (*dto.PublicInfoResponse, error) {
	info, err := s.repo.PublicInfo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPublicInfoNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		info.Title = strings.TrimSpace(*req.Title)
	}
	if req.Category != nil {
		info.Category = *req.Category
	}
	if req.Summary != nil {
		info.Summary = req.Summary
		if *req.Summary == "" {
			info.Summary = nil
		}
	}
	if req.Content != nil {
		info.Content = *req.Content
	}
	if req.Author != nil {
		info.Author = strings.TrimSpace(*req.Author)
	}
	if req.PublishDate != nil {
		info.PublishDate = *req.PublishDate
	}
	if req.Status != nil {
		info.Status = *req.Status
	}

	if err := validatePublicInfo(info); err != nil {
		return nil, err
	}

	if err := s.repo.PublicInfo.Update(ctx, info); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPublicInfoNotFound
		}
		s.logger.Error("更新公共信息失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	s.invalidateFeed(ctx)
	return toPublicInfoResponse(info), nil
}

// ────────────────────── Delete ──────────────────────

func (s *publicInfoService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.PublicInfo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPublicInfoNotFound
		}
		s.logger.Error("删除公共信息失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	s.invalidateFeed(ctx)
	return nil
}

// ── 辅助函数 ──

// invalidateFeed 任何写操作后清空新闻列表缓存；缓存失败不影响主流程
func (s *publicInfoService) invalidateFeed(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPrefix(ctx, feedCachePrefix); err != nil {
		s.logger.Warn("清除新闻列表缓存失败", zap.Error(err))
	}
}

func validatePublicInfo(info *model.PublicInfo) error {
	if info.Title == "" {
		return invalid("title", "标题不能为空")
	}
	if strings.TrimSpace(info.Content) == "" {
		return invalid("content", "正文不能为空")
	}
	if info.Author == "" {
		return invalid("author", "作者不能为空")
	}
	if !model.IsValidCategory(info.Category) {
		return invalid("category", "不支持的分类 %q", info.Category)
	}
	if !model.IsValidInfoStatus(info.Status) {
		return invalid("status", "不支持的状态 %q", info.Status)
	}
	if info.ViewsCount < 0 {
		return invalid("views_count", "浏览量不能为负数")
	}
	return nil
}

func toPublicInfoResponse(info *model.PublicInfo) *dto.PublicInfoResponse {
	resp := &dto.PublicInfoResponse{
		ID:          info.ID,
		Title:       info.Title,
		Category:    info.Category,
		Content:     info.Content,
		Author:      info.Author,
		PublishDate: info.PublishDate.Format(time.RFC3339),
		ViewsCount:  info.ViewsCount,
		Status:      info.Status,
		CreatedAt:   info.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   info.UpdatedAt.Format(time.RFC3339),
	}
	if info.Summary != nil {
		resp.Summary = *info.Summary
	}
	return resp
}
