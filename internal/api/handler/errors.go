package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"community-portal/internal/service"
	"community-portal/pkg/response"
)

// bindError 处理请求绑定失败：请求体超限为 413，其余为 400
func bindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "请求体过大")
		return
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidParams, "参数校验失败", err.Error())
}

// handleServiceError 将业务层错误映射为 HTTP 响应
func handleServiceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		response.ValidationFailed(c, verr.Error())
		return
	}

	switch {
	case errors.Is(err, service.ErrPublicInfoNotFound):
		response.NotFound(c, response.CodePublicInfoNotFound, "公共信息不存在")
	case errors.Is(err, service.ErrMaintenanceNotFound):
		response.NotFound(c, response.CodeMaintenanceNotFound, "维护记录不存在")
	case errors.Is(err, service.ErrRevenueNotFound):
		response.NotFound(c, response.CodeRevenueNotFound, "收支记录不存在")
	case errors.Is(err, service.ErrReportNotFound):
		response.NotFound(c, response.CodeReportNotFound, "关联公示不存在")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, response.CodeUserNotFound, "用户不存在")
	case errors.Is(err, service.ErrUsernameTaken):
		response.Conflict(c, response.CodeUsernameTaken, "用户名已存在")
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, response.CodeEmailTaken, "邮箱已被使用")
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, response.CodeInvalidCredentials, "用户名或密码错误")
	case errors.Is(err, service.ErrInvalidToken):
		response.Unauthorized(c, response.CodeTokenInvalid, "Token 无效或已过期")
	case errors.Is(err, service.ErrUserSelfDelete):
		response.BadRequest(c, response.CodeCannotDeleteSelf, "不能删除当前登录账号")
	case errors.Is(err, service.ErrExportFailed):
		response.Error(c, http.StatusInternalServerError, response.CodeExportFailed, "导出失败")
	default:
		response.InternalError(c)
	}
}
