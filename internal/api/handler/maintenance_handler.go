package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"community-portal/internal/dto"
	"community-portal/internal/service"
	"community-portal/pkg/response"
)

// MaintenanceHandler 维护记录 HTTP 处理器
type MaintenanceHandler struct {
	maintSvc service.MaintenanceService
}

// NewMaintenanceHandler 创建 MaintenanceHandler
func NewMaintenanceHandler(maintSvc service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintSvc: maintSvc}
}

// Create 新建维护记录
// POST /api/v1/maintenance
func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req dto.CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	rec, err := h.maintSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, rec)
}

// Get 维护记录详情
// GET /api/v1/maintenance/:id
func (h *MaintenanceHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	rec, err := h.maintSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, rec)
}

// List 维护记录列表
// GET /api/v1/maintenance
func (h *MaintenanceHandler) List(c *gin.Context) {
	var req dto.MaintenanceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, total, err := h.maintSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Update 修改维护记录
// PUT /api/v1/maintenance/:id
func (h *MaintenanceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	rec, err := h.maintSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, rec)
}

// Delete 删除维护记录
// DELETE /api/v1/maintenance/:id
func (h *MaintenanceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.maintSvc.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// Calendar 维护计划日历订阅
// GET /api/v1/maintenance/calendar.ics?facility=xxx
func (h *MaintenanceHandler) Calendar(c *gin.Context) {
	body, err := h.maintSvc.Calendar(c.Request.Context(), c.Query("facility"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="maintenance.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}
