package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"community-portal/config"
	"community-portal/internal/dto"
	"community-portal/internal/model"
	"community-portal/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService(t *testing.T, blacklist TokenBlacklist) (AuthService, *mockUserRepo, *jwt.Manager) {
	t.Helper()
	repo, mocks := newMockRepository()
	jwtMgr := jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-key-32bytes-long!!!!",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	return NewAuthService(repo, jwtMgr, blacklist, zap.NewNop()), mocks.user, jwtMgr
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, userRepo, jwtMgr := setupTestAuthService(t, nil)
	user := createTestUser(userRepo, "editor01", model.RoleEditor, nil)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "editor01", Password: "password123"})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("期望返回 Token 对")
	}
	if resp.ExpiresIn != 900 {
		t.Errorf("期望 ExpiresIn=900，实际=%d", resp.ExpiresIn)
	}

	claims, err := jwtMgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("AccessToken 应可解析: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != model.RoleEditor || claims.TokenType != jwt.TokenTypeAccess {
		t.Errorf("Claims 不符: %+v", claims)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService(t, nil)
	createTestUser(userRepo, "editor01", model.RoleEditor, nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "editor01", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("错误密码期望 ErrInvalidCredentials，实际: %v", err)
	}

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Username: "ghost", Password: "password123"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("不存在的用户期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── Refresh 测试 ──

func TestAuthService_Refresh(t *testing.T) {
	rdb, _ := newTestRedis(t)
	svc, userRepo, _ := setupTestAuthService(t, rdb)
	createTestUser(userRepo, "editor01", model.RoleEditor, nil)
	ctx := context.Background()

	login, err := svc.Login(ctx, &dto.LoginRequest{Username: "editor01", Password: "password123"})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	if _, err := svc.Refresh(ctx, login.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("AccessToken 不能用于刷新，实际: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh 应成功: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Error("期望返回新的 AccessToken")
	}

	if _, err := svc.Refresh(ctx, login.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("RefreshToken 只能使用一次，实际: %v", err)
	}
	if _, err := svc.Refresh(ctx, "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("非法 Token 期望 ErrInvalidToken，实际: %v", err)
	}
}

// ── Logout 测试 ──

func TestAuthService_Logout(t *testing.T) {
	rdb, _ := newTestRedis(t)
	svc, _, _ := setupTestAuthService(t, rdb)
	ctx := context.Background()

	if err := svc.Logout(ctx, "jti-1", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Logout 应成功: %v", err)
	}
	revoked, err := rdb.IsBlacklisted(ctx, "jti-1")
	if err != nil || !revoked {
		t.Errorf("Logout 后 Token 应进入黑名单: revoked=%v err=%v", revoked, err)
	}

	noCache, _, _ := setupTestAuthService(t, nil)
	if err := noCache.Logout(ctx, "jti-2", time.Now().Add(time.Minute)); err != nil {
		t.Errorf("无 Redis 时 Logout 应降级为空操作: %v", err)
	}
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService(t, nil)
	u := createTestUser(userRepo, "viewer01", model.RoleViewer, nil)

	resp, err := svc.GetCurrentUser(context.Background(), u.ID)
	if err != nil || resp.Username != "viewer01" {
		t.Fatalf("GetCurrentUser 结果不符: %+v err=%v", resp, err)
	}
	if _, err := svc.GetCurrentUser(context.Background(), 999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}
