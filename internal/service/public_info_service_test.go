package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"

	"community-portal/config"
	"community-portal/internal/dto"
	"community-portal/internal/model"
	"community-portal/pkg/redis"
)

// ── 测试辅助 ──

func testPortalConfig() config.PortalConfig {
	return config.PortalConfig{
		SiteName:       "测试社区",
		DefaultAuthor:  "社区管委会",
		FeedPageSize:   2,
		FeedCacheTTL:   time.Minute,
		SampleFallback: true,
	}
}

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb, err := redis.NewClient(&config.RedisConfig{Addr: mr.Addr()}, zap.NewNop())
	if err != nil {
		t.Fatalf("连接 miniredis 失败: %v", err)
	}
	t.Cleanup(func() { rdb.Close() })
	return rdb, mr
}

func setupTestPublicInfoService(cache Cache) (PublicInfoService, *mockRepos) {
	repo, mocks := newMockRepository()
	return NewPublicInfoService(testPortalConfig(), repo, cache, zap.NewNop()), mocks
}

// ── Create 测试 ──

func TestPublicInfoService_Create_Defaults(t *testing.T) {
	svc, _ := setupTestPublicInfoService(nil)

	resp, err := svc.Create(context.Background(), &dto.CreatePublicInfoRequest{
		Title:   "  电梯年检通知  ",
		Content: "本周六上午进行电梯年检",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Title != "电梯年检通知" {
		t.Errorf("标题应去除首尾空格，实际=%q", resp.Title)
	}
	if resp.Category != model.CategoryNews || resp.Status != model.InfoStatusPublished {
		t.Errorf("期望默认 news/published，实际=%s/%s", resp.Category, resp.Status)
	}
	if resp.Author != "社区管委会" {
		t.Errorf("期望默认作者，实际=%s", resp.Author)
	}
}

func TestPublicInfoService_Create_Validation(t *testing.T) {
	svc, _ := setupTestPublicInfoService(nil)

	tests := []struct {
		name  string
		req   dto.CreatePublicInfoRequest
		field string
	}{
		{"空标题", dto.CreatePublicInfoRequest{Title: "  ", Content: "x"}, "title"},
		{"空正文", dto.CreatePublicInfoRequest{Title: "t", Content: "  "}, "content"},
		{"非法分类", dto.CreatePublicInfoRequest{Title: "t", Content: "x", Category: "gossip"}, "category"},
		{"非法状态", dto.CreatePublicInfoRequest{Title: "t", Content: "x", Status: "archived"}, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("期望 ValidationError，实际: %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("期望字段 %s，实际=%s", tt.field, ve.Field)
			}
			if !errors.Is(err, ErrValidation) {
				t.Error("ValidationError 应可匹配 ErrValidation")
			}
		})
	}
}

// ── Update / Delete 测试 ──

func TestPublicInfoService_Update(t *testing.T) {
	svc, mocks := setupTestPublicInfoService(nil)
	mocks.publicInfo.items[5] = &model.PublicInfo{
		ID: 5, Title: "旧标题", Content: "正文", Author: "物业", Category: "news", Status: "published",
	}

	draft := model.InfoStatusDraft
	title := "新标题"
	resp, err := svc.Update(context.Background(), 5, &dto.UpdatePublicInfoRequest{Title: &title, Status: &draft})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.Title != "新标题" || resp.Status != "draft" {
		t.Errorf("更新结果不符: %+v", resp)
	}
	if resp.Author != "物业" {
		t.Error("未提交的字段不应被修改")
	}

	bad := "archived"
	if _, err := svc.Update(context.Background(), 5, &dto.UpdatePublicInfoRequest{Status: &bad}); !errors.Is(err, ErrValidation) {
		t.Errorf("期望校验失败，实际: %v", err)
	}
}

func TestPublicInfoService_NotFound(t *testing.T) {
	svc, _ := setupTestPublicInfoService(nil)
	ctx := context.Background()

	if _, err := svc.GetByID(ctx, 42); !errors.Is(err, ErrPublicInfoNotFound) {
		t.Errorf("GetByID 期望 ErrPublicInfoNotFound，实际: %v", err)
	}
	if _, err := svc.Update(ctx, 42, &dto.UpdatePublicInfoRequest{}); !errors.Is(err, ErrPublicInfoNotFound) {
		t.Errorf("Update 期望 ErrPublicInfoNotFound，实际: %v", err)
	}
	if err := svc.Delete(ctx, 42); !errors.Is(err, ErrPublicInfoNotFound) {
		t.Errorf("Delete 期望 ErrPublicInfoNotFound，实际: %v", err)
	}
}

func TestPublicInfoService_List_InvalidFilter(t *testing.T) {
	svc, _ := setupTestPublicInfoService(nil)

	_, _, err := svc.List(context.Background(), &dto.PublicInfoListRequest{Category: "gossip"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("期望校验失败，实际: %v", err)
	}
}

// ── 缓存失效测试 ──

func TestPublicInfoService_WriteInvalidatesFeed(t *testing.T) {
	rdb, mr := newTestRedis(t)
	repo, mocks := newMockRepository()
	pages := NewPageService(testPortalConfig(), repo, rdb, zap.NewNop())
	svc := NewPublicInfoService(testPortalConfig(), repo, rdb, zap.NewNop())
	ctx := context.Background()

	if _, err := pages.NewsFeed(ctx, "", 1); err != nil {
		t.Fatalf("NewsFeed 应成功: %v", err)
	}
	if !mr.Exists("feed:all:1") {
		t.Fatal("首次访问后应写入缓存")
	}

	if _, err := svc.Create(ctx, &dto.CreatePublicInfoRequest{Title: "新公告", Content: "内容"}); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if mr.Exists("feed:all:1") {
		t.Error("写操作后新闻列表缓存应被清除")
	}

	feed, err := pages.NewsFeed(ctx, "", 1)
	if err != nil {
		t.Fatalf("NewsFeed 应成功: %v", err)
	}
	if len(feed.Items) != 1 || feed.Items[0].Title != "新公告" {
		t.Errorf("缓存失效后应读到新数据，实际=%+v", feed.Items)
	}
	if mocks.publicInfo.listCalls != 2 {
		t.Errorf("期望查询数据库 2 次，实际=%d", mocks.publicInfo.listCalls)
	}
}
