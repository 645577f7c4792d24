package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"community-portal/internal/dto"
	"community-portal/internal/model"
	"community-portal/internal/repository"
	pkgerrors "community-portal/pkg/errors"
)

// ── 用户模块业务错误 ──

var (
	ErrUserNotFound   = errors.New("用户不存在")
	ErrUsernameTaken  = errors.New("用户名已存在")
	ErrEmailTaken     = errors.New("邮箱已被使用")
	ErrUserSelfDelete = errors.New("不能删除自己")
)

// bootstrapMinPassword 首个管理员密码的最小长度
const bootstrapMinPassword = 8

// UserService 用户业务接口
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	Update(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id uint, callerID uint) error
	// EnsureAdmin 用户表为空时创建首个管理员
	EnsureAdmin(ctx context.Context, username, password string) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, invalid("username", "用户名不能为空")
	}
	role := req.Role
	if role == "" {
		role = model.RoleViewer
	}
	if !model.IsValidRole(role) {
		return nil, invalid("role", "不支持的角色 %q", role)
	}
	email := normalizeEmail(req.Email)

	// 检查用户名唯一性
	if _, err := s.repo.User.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 检查邮箱唯一性
	if email != nil {
		if _, err := s.repo.User.GetByEmail(ctx, *email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		if !errors.Is(err, ErrValidation) {
			s.logger.Error("密码哈希失败", zap.Error(err))
		}
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Email:        email,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		// 并发插入时由唯一约束兜底
		if pkgerrors.IsDuplicate(err) {
			return nil, duplicateUserError(err)
		}
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("创建用户", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	return toUserResponse(user), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *userService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	if req.Role != "" && !model.IsValidRole(req.Role) {
		return nil, 0, invalid("role", "不支持的角色 %q", req.Role)
	}

	users, total, err := s.repo.User.List(ctx, req.Role, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Role != nil {
		if !model.IsValidRole(*req.Role) {
			return nil, invalid("role", "不支持的角色 %q", *req.Role)
		}
		user.Role = *req.Role
	}

	if req.Email != nil {
		email := normalizeEmail(req.Email)
		if email != nil && (user.Email == nil || *user.Email != *email) {
			if other, err := s.repo.User.GetByEmail(ctx, *email); err == nil && other.ID != user.ID {
				return nil, ErrEmailTaken
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		user.Email = email
	}

	if req.Password != nil {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			if !errors.Is(err, ErrValidation) {
				s.logger.Error("密码哈希失败", zap.Error(err))
			}
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		if pkgerrors.IsDuplicate(err) {
			return nil, duplicateUserError(err)
		}
		s.logger.Error("更新用户失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

// ────────────────────── Delete ──────────────────────

func (s *userService) Delete(ctx context.Context, id uint, callerID uint) error {
	if id == callerID {
		return ErrUserSelfDelete
	}
	if err := s.repo.User.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("删除用户失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── EnsureAdmin ──────────────────────

func (s *userService) EnsureAdmin(ctx context.Context, username, password string) error {
	n, err := s.repo.User.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if username == "" || len(password) < bootstrapMinPassword {
		s.logger.Warn("用户表为空且未配置有效的 bootstrap 管理员，管理接口将无法登录")
		return nil
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	admin := &model.User{Username: username, PasswordHash: hash, Role: model.RoleAdmin}
	if err := s.repo.User.Create(ctx, admin); err != nil {
		// 多实例同时启动时可能已被其他实例创建
		if pkgerrors.IsDuplicate(err) {
			return nil
		}
		return err
	}

	s.logger.Info("已创建初始管理员", zap.String("username", username))
	return nil
}

// ── 辅助函数 ──

// maxPasswordBytes bcrypt 仅接受不超过 72 字节的口令
const maxPasswordBytes = 72

func hashPassword(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", invalid("password", "密码不能超过 %d 字节", maxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// normalizeEmail 空串视为未设置，避免多个空邮箱触发唯一约束
func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	e := strings.ToLower(strings.TrimSpace(*email))
	if e == "" {
		return nil
	}
	return &e
}

func duplicateUserError(err error) error {
	if pkgerrors.ConstraintName(err) == "uq_user_email" {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}

func toUserResponse(user *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
	if user.Email != nil {
		resp.Email = *user.Email
	}
	return resp
}
