package dto

// ── 用户模块 DTO ──

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=80"`
	Password string  `json:"password" binding:"required,min=8,max=64"`
	Role     string  `json:"role"`
	Email    *string `json:"email"    binding:"omitempty,email,max=120"`
}

// UpdateUserRequest 更新用户请求
type UpdateUserRequest struct {
	Password *string `json:"password" binding:"omitempty,min=8,max=64"`
	Role     *string `json:"role"`
	Email    *string `json:"email"    binding:"omitempty,email,max=120"`
}

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
	Role string `form:"role"`
}

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Email     string `json:"email,omitempty"`
	CreatedAt string `json:"created_at"`
}
