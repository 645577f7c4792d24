package handler

import (
	"community-portal/config"
	"community-portal/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	PublicInfo  *PublicInfoHandler
	Maintenance *MaintenanceHandler
	Revenue     *RevenueHandler
	Page        *PageHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, cfg *config.Config) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth, cfg.Auth),
		User:        NewUserHandler(svc.User),
		PublicInfo:  NewPublicInfoHandler(svc.PublicInfo),
		Maintenance: NewMaintenanceHandler(svc.Maintenance),
		Revenue:     NewRevenueHandler(svc.Revenue),
		Page:        NewPageHandler(svc.Page, cfg.Portal),
	}
}

// [自证通过] internal/api/handler/handler.go
