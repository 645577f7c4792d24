package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrConflict 数据约束冲突（唯一键、外键）
var ErrConflict = errors.New("数据冲突")

// IsDuplicate 判断是否为唯一约束冲突
// 依赖 gorm.Config.TranslateError；兜底匹配 PostgreSQL 错误码 23505
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "SQLSTATE 23505")
}

// IsForeignKeyViolation 判断是否为外键约束冲突（23503）
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(err.Error(), "SQLSTATE 23503")
}

// IsNotFound 判断是否为记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// ConstraintName 从数据库错误信息中提取约束名，如 uq_user_email
func ConstraintName(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	i := strings.Index(msg, `constraint "`)
	if i < 0 {
		return ""
	}
	rest := msg[i+len(`constraint "`):]
	if j := strings.Index(rest, `"`); j >= 0 {
		return rest[:j]
	}
	return ""
}
