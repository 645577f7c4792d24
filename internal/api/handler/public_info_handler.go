package handler

import (
	"github.com/gin-gonic/gin"

	"community-portal/internal/dto"
	"community-portal/internal/service"
	"community-portal/pkg/response"
)

// PublicInfoHandler 公共信息 HTTP 处理器
type PublicInfoHandler struct {
	infoSvc service.PublicInfoService
}

// NewPublicInfoHandler 创建 PublicInfoHandler
func NewPublicInfoHandler(infoSvc service.PublicInfoService) *PublicInfoHandler {
	return &PublicInfoHandler{infoSvc: infoSvc}
}

// Create 发布公共信息
// POST /api/v1/public-info
func (h *PublicInfoHandler) Create(c *gin.Context) {
	var req dto.CreatePublicInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.infoSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, info)
}

// Get 公共信息详情
// GET /api/v1/public-info/:id
func (h *PublicInfoHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	info, err := h.infoSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, info)
}

// List 公共信息列表
// GET /api/v1/public-info
func (h *PublicInfoHandler) List(c *gin.Context) {
	var req dto.PublicInfoListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, total, err := h.infoSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Update 修改公共信息（部分更新）
// PUT /api/v1/public-info/:id
func (h *PublicInfoHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdatePublicInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.infoSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, info)
}

// Delete 删除公共信息
// DELETE /api/v1/public-info/:id
func (h *PublicInfoHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.infoSvc.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}
